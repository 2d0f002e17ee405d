package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForecasterStartsAtInitialEstimate(t *testing.T) {
	f := NewForecaster(DefaultAlpha, []string{"bread", "milk"})

	assert.Equal(t, InitialDemandEstimate, f.Estimate("bread"))
	assert.Equal(t, InitialDemandEstimate, f.Estimate("milk"))
}

func TestForecasterUpdate(t *testing.T) {
	f := NewForecaster(0.2, []string{"bread"})

	f.Update("bread", 3)
	assert.InDelta(t, 1.4, f.Estimate("bread"), 1e-9)

	f.Update("bread", 1)
	assert.InDelta(t, 0.2*1+0.8*1.4, f.Estimate("bread"), 1e-9)
}

func TestForecasterConvergesToSteadyDemand(t *testing.T) {
	f := NewForecaster(0.2, []string{"eggs"})
	for i := 0; i < 200; i++ {
		f.Update("eggs", 5)
	}
	assert.InDelta(t, 5.0, f.Estimate("eggs"), 1e-6)
}

func TestForecasterAlphaOneTracksLastSale(t *testing.T) {
	f := NewForecaster(1, []string{"milk"})
	f.Update("milk", 7)
	assert.Equal(t, 7.0, f.Estimate("milk"))
}

func TestForecasterEstimatesIsACopy(t *testing.T) {
	f := NewForecaster(0.2, []string{"bread"})
	est := f.Estimates()
	est["bread"] = 99

	assert.Equal(t, InitialDemandEstimate, f.Estimate("bread"))
}
