package customer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var skus = []string{"bread", "eggs", "milk"}

func TestChooseItemQuantityInRange(t *testing.T) {
	a := NewAgent(rand.New(rand.NewSource(7)), Bounds{})

	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		sku, qty := a.ChooseItem(skus)
		assert.Contains(t, skus, sku)
		require.GreaterOrEqual(t, qty, 1)
		require.LessOrEqual(t, qty, 3)
		seen[qty] = true
	}
	assert.Len(t, seen, 3)
}

func TestChooseItemFollowsWeights(t *testing.T) {
	a := NewAgent(rand.New(rand.NewSource(11)), Bounds{})
	for i := 0; i < 30; i++ {
		a.Learn("eggs", true)
		a.Learn("bread", false)
	}

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		sku, _ := a.ChooseItem(skus)
		counts[sku]++
	}
	assert.Greater(t, counts["eggs"], counts["milk"])
	assert.Greater(t, counts["milk"], counts["bread"])
}

func TestChooseItemSingleSKU(t *testing.T) {
	a := NewAgent(rand.New(rand.NewSource(1)), Bounds{})
	sku, _ := a.ChooseItem([]string{"milk"})
	assert.Equal(t, "milk", sku)
}

func TestLearn(t *testing.T) {
	a := NewAgent(rand.New(rand.NewSource(1)), Bounds{})
	assert.Equal(t, 1.0, a.Weight("bread"))

	a.Learn("bread", true)
	assert.InDelta(t, 1.1, a.Weight("bread"), 1e-9)

	a.Learn("bread", false)
	assert.InDelta(t, 0.99, a.Weight("bread"), 1e-9)

	a.Learn("milk", false)
	assert.InDelta(t, 0.9, a.Weight("milk"), 1e-9)
	assert.Len(t, a.Preferences(), 2)
}

func TestLearnUnboundedByDefault(t *testing.T) {
	a := NewAgent(rand.New(rand.NewSource(1)), Bounds{})
	for i := 0; i < 100; i++ {
		a.Learn("bread", true)
	}
	assert.Greater(t, a.Weight("bread"), 10000.0)
}

func TestLearnRespectsBounds(t *testing.T) {
	a := NewAgent(rand.New(rand.NewSource(1)), Bounds{Min: 0.5, Max: 2})
	for i := 0; i < 50; i++ {
		a.Learn("bread", true)
		a.Learn("milk", false)
	}
	assert.Equal(t, 2.0, a.Weight("bread"))
	assert.Equal(t, 0.5, a.Weight("milk"))
}

func TestChooseItemDeterministicForSeed(t *testing.T) {
	a := NewAgent(rand.New(rand.NewSource(99)), Bounds{})
	b := NewAgent(rand.New(rand.NewSource(99)), Bounds{})
	for i := 0; i < 20; i++ {
		skuA, qtyA := a.ChooseItem(skus)
		skuB, qtyB := b.ChooseItem(skus)
		assert.Equal(t, skuA, skuB)
		assert.Equal(t, qtyA, qtyB)
	}
}

func TestBoundsValidate(t *testing.T) {
	assert.NoError(t, Bounds{}.Validate())
	assert.NoError(t, Bounds{Min: 0.5, Max: 2}.Validate())
	assert.NoError(t, Bounds{Min: 0.5}.Validate())
	assert.NoError(t, Bounds{Max: 2}.Validate())
	assert.Error(t, Bounds{Min: 3, Max: 2}.Validate())
	assert.Error(t, Bounds{Min: -1}.Validate())
}
