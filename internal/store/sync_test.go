package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncLedgerConcurrentSells(t *testing.T) {
	l := newTestLedger(t)
	s := NewSyncLedger(l)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sold int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.Sell(day0, "bread", 1)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, DefaultStartingStock, sold)
	snap := s.Snapshot()
	assert.Zero(t, snap.OnHand["bread"])
	assert.Len(t, s.Sales(), DefaultStartingStock)
}

func TestSyncLedgerTickAndReads(t *testing.T) {
	s := NewSyncLedger(newTestLedger(t))

	tick, err := s.DailyTick(day0)
	require.NoError(t, err)
	assert.Len(t, tick.Placed, 3)
	assert.Len(t, s.Orders(), 3)
	assert.Len(t, s.PendingDeliveries(), 3)
	assert.Equal(t, []string{"bread", "eggs", "milk"}, s.SKUs())

	shopper := &scriptedShopper{sku: "milk", qty: 2}
	ok, err := s.Serve(day0.AddDays(1), shopper)
	require.NoError(t, err)
	assert.True(t, ok)
}
