package store

// PricingPolicy nudges prices by inventory position relative to target.
type PricingPolicy struct {
	// MarginFloor is the minimum price as a multiple of unit cost.
	MarginFloor float64
	// OverstockRatio is the position/target ratio above which price is discounted.
	OverstockRatio float64
	// UnderstockRatio is the position/target ratio below which price is raised.
	UnderstockRatio float64
	Discount        float64
	Surcharge       float64
}

// DefaultPricingPolicy returns the 1.05 margin floor, 10% steps at 1.5x and 0.5x of target.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		MarginFloor:     1.05,
		OverstockRatio:  1.5,
		UnderstockRatio: 0.5,
		Discount:        0.9,
		Surcharge:       1.1,
	}
}

// Reprice returns the next price. The margin floor is applied whether or not
// a step fired.
func (p PricingPolicy) Reprice(price, unitCost, target float64, position int) float64 {
	pos := float64(position)
	switch {
	case pos > p.OverstockRatio*target:
		price *= p.Discount
	case pos < p.UnderstockRatio*target:
		price *= p.Surcharge
	}
	if floor := unitCost * p.MarginFloor; price < floor {
		price = floor
	}
	return price
}
