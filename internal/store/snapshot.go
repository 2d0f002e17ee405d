package store

import (
	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

// Snapshot returns a read-only projection of the ledger. Prices and money
// totals are rounded to cents; internal accumulators keep full precision.
func (l *Ledger) Snapshot() domain.Snapshot {
	snap := domain.Snapshot{
		OnHand:         make(map[string]int, len(l.skus)),
		OnOrder:        make(map[string]int, len(l.skus)),
		DemandEstimate: make(map[string]float64, len(l.skus)),
		Price:          make(map[string]float64, len(l.skus)),
	}

	inventoryValue := decimal.Zero
	for _, sku := range l.skus {
		snap.OnHand[sku] = l.onHand[sku]
		snap.OnOrder[sku] = l.onOrder[sku]
		snap.DemandEstimate[sku] = l.forecaster.Estimate(sku)
		snap.Price[sku] = roundCurrency(l.price[sku])

		unitCost := decimal.NewFromFloat(l.catalogue[sku].UnitCost)
		inventoryValue = inventoryValue.Add(unitCost.Mul(decimal.NewFromInt(int64(l.onHand[sku]))))
	}

	snap.Revenue = roundCurrency(l.revenue)
	snap.Expenses = roundCurrency(l.expenses)
	snap.Profit = roundCurrency(l.revenue - l.expenses)
	snap.InventoryValue = inventoryValue.Round(2).InexactFloat64()
	return snap
}

func roundCurrency(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
