package store

import (
	"testing"

	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestTargetPosition(t *testing.T) {
	cat := domain.DefaultCatalogue()

	assert.InDelta(t, 17.0, TargetPosition(cat["bread"], 1.0), 1e-9)
	assert.InDelta(t, 11.0, TargetPosition(cat["milk"], 1.0), 1e-9)
	assert.InDelta(t, 28.0, TargetPosition(cat["eggs"], 1.0), 1e-9)
	assert.InDelta(t, 15.0, TargetPosition(cat["bread"], 0), 1e-9)
}

func TestOrderQuantity(t *testing.T) {
	cat := domain.DefaultCatalogue()

	tests := []struct {
		name    string
		sku     string
		est     float64
		onHand  int
		onOrder int
		want    int
	}{
		{"bread gap 7 rounds to one case", "bread", 1.0, 10, 0, 20},
		{"milk gap 1 rounds to one case", "milk", 1.0, 10, 0, 12},
		{"eggs gap 18 rounds to one case", "eggs", 1.0, 10, 0, 30},
		{"gap of exactly one case", "bread", 0, -5, 0, 20},
		{"gap just over one case", "bread", 3.0, 0, 0, 40},
		{"on order counts toward position", "bread", 1.0, 10, 20, 0},
		{"position equal to target", "milk", 1.0, 11, 0, 0},
		{"position above target", "eggs", 1.0, 40, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrderQuantity(cat[tt.sku], tt.est, tt.onHand, tt.onOrder)
			assert.Equal(t, tt.want, got)
			assert.Zero(t, got%cat[tt.sku].CasePackSize)
		})
	}
}

func TestReprice(t *testing.T) {
	p := DefaultPricingPolicy()

	tests := []struct {
		name     string
		price    float64
		cost     float64
		target   float64
		position int
		want     float64
	}{
		{"overstock discounts", 2.5, 1.2, 17, 30, 2.25},
		{"understock raises", 2.5, 1.2, 17, 8, 2.75},
		{"between thresholds unchanged", 3.5, 2.0, 28, 40, 3.5},
		{"exactly 1.5x target unchanged", 2.0, 1.0, 10, 15, 2.0},
		{"exactly 0.5x target unchanged", 2.0, 1.0, 10, 5, 2.0},
		{"discount clamped to floor", 1.3, 1.2, 17, 30, 1.26},
		{"floor applies without a step", 1.0, 1.2, 17, 20, 1.26},
		{"zero target with stock discounts", 2.0, 1.0, 0, 1, 1.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Reprice(tt.price, tt.cost, tt.target, tt.position)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, tt.cost*p.MarginFloor-1e-9)
		})
	}
}
