// Package store is the single-store inventory controller: it records sales,
// forecasts demand, places case-rounded replenishment orders against supplier
// lead times and reprices SKUs by inventory position.
package store

import (
	"fmt"

	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/rs/zerolog"
)

// DefaultStartingStock is the on-hand quantity every SKU starts with.
const DefaultStartingStock = 10

// Config holds construction parameters for a Ledger.
type Config struct {
	Alpha         float64
	StartingStock int
	Pricing       PricingPolicy
	Logger        zerolog.Logger
}

// DefaultConfig returns α=0.2, 10 units of starting stock and the default
// pricing policy, with logging disabled.
func DefaultConfig() Config {
	return Config{
		Alpha:         DefaultAlpha,
		StartingStock: DefaultStartingStock,
		Pricing:       DefaultPricingPolicy(),
		Logger:        zerolog.Nop(),
	}
}

// Shopper is a source of purchase attempts that learns from the outcome.
type Shopper interface {
	ChooseItem(skus []string) (sku string, qty int)
	Learn(sku string, success bool)
}

// TickResult reports what a daily tick changed.
type TickResult struct {
	Day      domain.Day
	Received []domain.Delivery
	Placed   []domain.Order
}

// Ledger owns all mutable store state. It is not safe for concurrent use;
// wrap it in a SyncLedger when more than one goroutine needs it.
type Ledger struct {
	catalogue domain.Catalogue
	skus      []string
	pricing   PricingPolicy
	logger    zerolog.Logger

	onHand     map[string]int
	onOrder    map[string]int
	price      map[string]float64
	forecaster *Forecaster
	pipeline   *Pipeline

	revenue  float64
	expenses float64
	sales    []domain.Sale
	orders   []domain.Order

	initialOnHand map[string]int
	received      map[string]int
	sold          map[string]int

	lastTick domain.Day
	ticked   bool
}

// New builds a Ledger over a validated copy of the catalogue.
func New(catalogue domain.Catalogue, cfg Config) (*Ledger, error) {
	if err := catalogue.Validate(); err != nil {
		return nil, err
	}
	if !(cfg.Alpha > 0 && cfg.Alpha <= 1) {
		return nil, fmt.Errorf("%w: alpha must be in (0, 1], got %g", domain.ErrInvalidConfig, cfg.Alpha)
	}
	if cfg.StartingStock < 0 {
		return nil, fmt.Errorf("%w: starting stock cannot be negative, got %d", domain.ErrInvalidConfig, cfg.StartingStock)
	}
	if cfg.Pricing == (PricingPolicy{}) {
		cfg.Pricing = DefaultPricingPolicy()
	}

	cat := catalogue.Clone()
	skus := cat.SKUs()

	l := &Ledger{
		catalogue:     cat,
		skus:          skus,
		pricing:       cfg.Pricing,
		logger:        cfg.Logger,
		onHand:        make(map[string]int, len(skus)),
		onOrder:       make(map[string]int, len(skus)),
		price:         make(map[string]float64, len(skus)),
		forecaster:    NewForecaster(cfg.Alpha, skus),
		pipeline:      NewPipeline(),
		initialOnHand: make(map[string]int, len(skus)),
		received:      make(map[string]int, len(skus)),
		sold:          make(map[string]int, len(skus)),
	}
	for _, sku := range skus {
		l.onHand[sku] = cfg.StartingStock
		l.initialOnHand[sku] = cfg.StartingStock
		l.onOrder[sku] = 0
		l.price[sku] = cat[sku].UnitPrice
	}
	return l, nil
}

// SKUs returns the catalogue's SKUs in sorted order.
func (l *Ledger) SKUs() []string {
	out := make([]string, len(l.skus))
	copy(out, l.skus)
	return out
}

// Sell records a sale of qty units if stock allows. A stock-out returns false
// with no state change.
func (l *Ledger) Sell(day domain.Day, sku string, qty int) (bool, error) {
	if _, ok := l.catalogue[sku]; !ok {
		return false, fmt.Errorf("sell %q: %w", sku, domain.ErrUnknownSKU)
	}
	if qty < 1 {
		return false, fmt.Errorf("sell %q qty %d: %w", sku, qty, domain.ErrInvalidQuantity)
	}
	if l.onHand[sku] < qty {
		return false, nil
	}

	l.onHand[sku] -= qty
	l.sold[sku] += qty
	l.sales = append(l.sales, domain.Sale{Day: day, SKU: sku, Quantity: qty})
	l.revenue += l.price[sku] * float64(qty)
	l.forecaster.Update(sku, qty)
	return true, nil
}

// Serve lets the shopper pick an item, attempts the sale and feeds the
// outcome back to the shopper.
func (l *Ledger) Serve(day domain.Day, shopper Shopper) (bool, error) {
	sku, qty := shopper.ChooseItem(l.SKUs())
	ok, err := l.Sell(day, sku, qty)
	if err != nil {
		return false, err
	}
	shopper.Learn(sku, ok)
	return ok, nil
}

// DailyTick advances the store by one day: deliveries due are received, then
// reorders are evaluated, then prices are adjusted against the post-reorder
// position.
func (l *Ledger) DailyTick(day domain.Day) (TickResult, error) {
	if l.ticked && day.Before(l.lastTick) {
		return TickResult{}, fmt.Errorf("tick %s after %s: %w", day, l.lastTick, domain.ErrDayOutOfOrder)
	}
	l.lastTick = day
	l.ticked = true

	result := TickResult{Day: day}
	result.Received = l.receiveArrivals(day)
	result.Placed = l.reorder(day)
	l.reprice()
	return result, nil
}

func (l *Ledger) receiveArrivals(day domain.Day) []domain.Delivery {
	due := l.pipeline.Receive(day)
	for _, d := range due {
		l.onHand[d.SKU] += d.Quantity
		l.onOrder[d.SKU] -= d.Quantity
		l.received[d.SKU] += d.Quantity
		l.logger.Debug().
			Str("day", day.String()).
			Str("sku", d.SKU).
			Int("qty", d.Quantity).
			Msg("delivery received")
	}
	return due
}

func (l *Ledger) reorder(day domain.Day) []domain.Order {
	var placed []domain.Order
	for _, sku := range l.skus {
		entry := l.catalogue[sku]
		qty := OrderQuantity(entry, l.forecaster.Estimate(sku), l.onHand[sku], l.onOrder[sku])
		if qty == 0 {
			continue
		}

		cost := float64(qty) * entry.UnitCost
		arrival := day.AddDays(entry.LeadTimeDays)
		order := domain.Order{Day: day, SKU: sku, Quantity: qty, Cost: cost, Arrival: arrival}

		l.onOrder[sku] += qty
		l.expenses += cost
		l.orders = append(l.orders, order)
		l.pipeline.Schedule(arrival, sku, qty)
		placed = append(placed, order)

		l.logger.Debug().
			Str("day", day.String()).
			Str("sku", sku).
			Int("qty", qty).
			Float64("cost", cost).
			Str("arrival", arrival.String()).
			Msg("reorder placed")
	}
	return placed
}

func (l *Ledger) reprice() {
	for _, sku := range l.skus {
		entry := l.catalogue[sku]
		target := TargetPosition(entry, l.forecaster.Estimate(sku))
		position := l.onHand[sku] + l.onOrder[sku]
		l.price[sku] = l.pricing.Reprice(l.price[sku], entry.UnitCost, target, position)
	}
}

// OnHand returns the physical units of sku available to sell.
func (l *Ledger) OnHand(sku string) (int, error) {
	if _, ok := l.catalogue[sku]; !ok {
		return 0, fmt.Errorf("on hand %q: %w", sku, domain.ErrUnknownSKU)
	}
	return l.onHand[sku], nil
}

// OnOrder returns the units of sku ordered but not yet received.
func (l *Ledger) OnOrder(sku string) (int, error) {
	if _, ok := l.catalogue[sku]; !ok {
		return 0, fmt.Errorf("on order %q: %w", sku, domain.ErrUnknownSKU)
	}
	return l.onOrder[sku], nil
}

// Price returns the current selling price of sku at full precision.
func (l *Ledger) Price(sku string) (float64, error) {
	if _, ok := l.catalogue[sku]; !ok {
		return 0, fmt.Errorf("price %q: %w", sku, domain.ErrUnknownSKU)
	}
	return l.price[sku], nil
}

// DemandEstimate returns the smoothed units/day for sku.
func (l *Ledger) DemandEstimate(sku string) (float64, error) {
	if _, ok := l.catalogue[sku]; !ok {
		return 0, fmt.Errorf("demand estimate %q: %w", sku, domain.ErrUnknownSKU)
	}
	return l.forecaster.Estimate(sku), nil
}

// Revenue is the full-precision cumulative revenue.
func (l *Ledger) Revenue() float64 { return l.revenue }

// Expenses is the full-precision cumulative order cost.
func (l *Ledger) Expenses() float64 { return l.expenses }

// Received returns the cumulative units of sku received from deliveries.
func (l *Ledger) Received(sku string) int { return l.received[sku] }

// Sold returns the cumulative units of sku sold.
func (l *Ledger) Sold(sku string) int { return l.sold[sku] }

// InitialOnHand returns the starting stock of sku.
func (l *Ledger) InitialOnHand(sku string) int { return l.initialOnHand[sku] }

// Sales returns a copy of the sales log.
func (l *Ledger) Sales() []domain.Sale {
	out := make([]domain.Sale, len(l.sales))
	copy(out, l.sales)
	return out
}

// Orders returns a copy of the orders log.
func (l *Ledger) Orders() []domain.Order {
	out := make([]domain.Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// PendingDeliveries returns the deliveries still in the pipeline.
func (l *Ledger) PendingDeliveries() []domain.Delivery {
	return l.pipeline.Pending()
}
