package store

import (
	"math"

	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
)

// TargetPosition is the inventory position that covers expected demand over
// the lead time plus safety stock.
func TargetPosition(entry domain.CatalogueEntry, demandEstimate float64) float64 {
	return demandEstimate*float64(entry.LeadTimeDays) + entry.SafetyStock
}

// OrderQuantity returns the units to order so that on-hand plus on-order
// reaches the target position, rounded up to whole case packs. It returns 0
// when the position already meets the target.
func OrderQuantity(entry domain.CatalogueEntry, demandEstimate float64, onHand, onOrder int) int {
	gap := TargetPosition(entry, demandEstimate) - float64(onHand+onOrder)
	if gap <= 0 {
		return 0
	}
	cases := int(math.Ceil(gap / float64(entry.CasePackSize)))
	return cases * entry.CasePackSize
}
