package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundsCurrency(t *testing.T) {
	l := newTestLedger(t)

	for i := 0; i < 3; i++ {
		ok, err := l.Sell(day0, "milk", 1)
		require.NoError(t, err)
		require.True(t, ok)
	}
	_, err := l.DailyTick(day0)
	require.NoError(t, err)

	snap := l.Snapshot()
	assert.Equal(t, 4.5, snap.Revenue)
	assert.Equal(t, 91.2, snap.Expenses)
	assert.Equal(t, -86.7, snap.Profit)
	assert.Equal(t, 7, snap.OnHand["milk"])
	assert.Equal(t, 12, snap.OnOrder["milk"])
	// Demand estimates keep full precision.
	est, _ := l.DemandEstimate("milk")
	assert.Equal(t, est, snap.DemandEstimate["milk"])
	// 10 bread at 1.2, 7 milk at 0.6, 10 eggs at 2.0.
	assert.Equal(t, 36.2, snap.InventoryValue)
}

func TestSnapshotIsDetached(t *testing.T) {
	l := newTestLedger(t)
	snap := l.Snapshot()
	snap.OnHand["bread"] = 0

	onHand, _ := l.OnHand("bread")
	assert.Equal(t, DefaultStartingStock, onHand)
}
