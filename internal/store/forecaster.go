package store

// DefaultAlpha is the smoothing weight given to the newest observation.
const DefaultAlpha = 0.2

// InitialDemandEstimate is the units/day every SKU starts from.
const InitialDemandEstimate = 1.0

// Forecaster keeps one exponentially smoothed demand estimate per SKU.
type Forecaster struct {
	alpha    float64
	estimate map[string]float64
}

// NewForecaster seeds every SKU with InitialDemandEstimate.
func NewForecaster(alpha float64, skus []string) *Forecaster {
	estimate := make(map[string]float64, len(skus))
	for _, sku := range skus {
		estimate[sku] = InitialDemandEstimate
	}
	return &Forecaster{alpha: alpha, estimate: estimate}
}

// Update folds one successful sale of qty units into the SKU's estimate.
func (f *Forecaster) Update(sku string, qty int) {
	f.estimate[sku] = f.alpha*float64(qty) + (1.0-f.alpha)*f.estimate[sku]
}

// Estimate returns the current smoothed units/day for sku.
func (f *Forecaster) Estimate(sku string) float64 {
	return f.estimate[sku]
}

// Estimates returns a copy of every estimate.
func (f *Forecaster) Estimates() map[string]float64 {
	out := make(map[string]float64, len(f.estimate))
	for sku, v := range f.estimate {
		out[sku] = v
	}
	return out
}
