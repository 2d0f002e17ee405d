// Package customer provides a shopper that picks SKUs by learned preference
// and reinforces that preference from purchase outcomes.
package customer

import (
	"fmt"
	"math/rand"
)

const (
	defaultWeight = 1.0
	successFactor = 1.1
	failureFactor = 0.9
	minQuantity   = 1
	maxQuantity   = 3
)

// Bounds clamps preference weights after learning. A zero Min or Max leaves
// that side unbounded.
type Bounds struct {
	Min float64
	Max float64
}

// Validate rejects negative limits and a Min above a set Max.
func (b Bounds) Validate() error {
	if b.Min < 0 || b.Max < 0 {
		return fmt.Errorf("preference bounds cannot be negative, got [%g, %g]", b.Min, b.Max)
	}
	if b.Max > 0 && b.Min > b.Max {
		return fmt.Errorf("preference min %g exceeds max %g", b.Min, b.Max)
	}
	return nil
}

// Agent is one customer. It is owned by the driver and is not safe for
// concurrent use.
type Agent struct {
	preferences map[string]float64
	bounds      Bounds
	rng         *rand.Rand
}

// NewAgent creates an agent drawing from rng. Unseen SKUs weigh 1.0.
func NewAgent(rng *rand.Rand, bounds Bounds) *Agent {
	return &Agent{
		preferences: make(map[string]float64),
		bounds:      bounds,
		rng:         rng,
	}
}

// ChooseItem samples a SKU with probability proportional to its weight and
// an independent quantity uniform in [1,3]. skus must be non-empty.
func (a *Agent) ChooseItem(skus []string) (string, int) {
	total := 0.0
	for _, sku := range skus {
		total += a.Weight(sku)
	}

	pick := skus[len(skus)-1]
	r := a.rng.Float64() * total
	for _, sku := range skus {
		r -= a.Weight(sku)
		if r < 0 {
			pick = sku
			break
		}
	}

	qty := minQuantity + a.rng.Intn(maxQuantity-minQuantity+1)
	return pick, qty
}

// Learn reinforces sku by 10% after a successful purchase and weakens it by
// 10% after a stock-out.
func (a *Agent) Learn(sku string, success bool) {
	w := a.Weight(sku)
	if success {
		w *= successFactor
	} else {
		w *= failureFactor
	}
	if a.bounds.Max > 0 && w > a.bounds.Max {
		w = a.bounds.Max
	}
	if a.bounds.Min > 0 && w < a.bounds.Min {
		w = a.bounds.Min
	}
	a.preferences[sku] = w
}

// Weight returns the current preference weight for sku.
func (a *Agent) Weight(sku string) float64 {
	if w, ok := a.preferences[sku]; ok {
		return w
	}
	return defaultWeight
}

// Preferences returns a copy of the learned weights.
func (a *Agent) Preferences() map[string]float64 {
	out := make(map[string]float64, len(a.preferences))
	for sku, w := range a.preferences {
		out[sku] = w
	}
	return out
}
