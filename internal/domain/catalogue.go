package domain

import (
	"fmt"
	"sort"
)

// CatalogueEntry is the static supplier and shelf configuration for one SKU.
type CatalogueEntry struct {
	CasePackSize int     `json:"case" mapstructure:"case"`
	LeadTimeDays int     `json:"lead" mapstructure:"lead"`
	SafetyStock  float64 `json:"safety" mapstructure:"safety"`
	UnitCost     float64 `json:"cost" mapstructure:"cost"`
	UnitPrice    float64 `json:"price" mapstructure:"price"`
}

// Validate checks the entry against its schema.
func (e CatalogueEntry) Validate() error {
	if e.CasePackSize < 1 {
		return fmt.Errorf("case pack size must be at least 1, got %d", e.CasePackSize)
	}
	if e.LeadTimeDays < 0 {
		return fmt.Errorf("lead time cannot be negative, got %d", e.LeadTimeDays)
	}
	if e.SafetyStock < 0 {
		return fmt.Errorf("safety stock cannot be negative, got %g", e.SafetyStock)
	}
	if e.UnitCost < 0 {
		return fmt.Errorf("unit cost cannot be negative, got %g", e.UnitCost)
	}
	if e.UnitPrice < 0 {
		return fmt.Errorf("unit price cannot be negative, got %g", e.UnitPrice)
	}
	return nil
}

// Catalogue maps SKU identifiers to their configuration.
type Catalogue map[string]CatalogueEntry

// Validate checks every entry. The returned error wraps ErrInvalidCatalogue.
func (c Catalogue) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: catalogue is empty", ErrInvalidCatalogue)
	}
	for _, sku := range c.SKUs() {
		if sku == "" {
			return fmt.Errorf("%w: sku cannot be empty", ErrInvalidCatalogue)
		}
		if err := c[sku].Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidCatalogue, sku, err)
		}
	}
	return nil
}

// SKUs returns the catalogue's SKUs in sorted order.
func (c Catalogue) SKUs() []string {
	skus := make([]string, 0, len(c))
	for sku := range c {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	return skus
}

// Clone returns an independent copy of the catalogue.
func (c Catalogue) Clone() Catalogue {
	out := make(Catalogue, len(c))
	for sku, entry := range c {
		out[sku] = entry
	}
	return out
}

// DefaultCatalogue is the three-SKU grocery catalogue used when no catalogue
// is configured.
func DefaultCatalogue() Catalogue {
	return Catalogue{
		"bread": {CasePackSize: 20, LeadTimeDays: 2, SafetyStock: 15, UnitCost: 1.2, UnitPrice: 2.5},
		"milk":  {CasePackSize: 12, LeadTimeDays: 1, SafetyStock: 10, UnitCost: 0.6, UnitPrice: 1.5},
		"eggs":  {CasePackSize: 30, LeadTimeDays: 3, SafetyStock: 25, UnitCost: 2.0, UnitPrice: 3.5},
	}
}
