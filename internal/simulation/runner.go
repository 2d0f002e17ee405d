// Package simulation drives a store day by day: it generates customer
// traffic, closes each day with a tick and publishes a day report.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/andresuchdata/storebrain/backend-go/internal/customer"
	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/andresuchdata/storebrain/backend-go/internal/report"
	"github.com/andresuchdata/storebrain/backend-go/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrPublish wraps a sink failure returned by Step. The day itself has
// already been applied to the store.
var ErrPublish = errors.New("publish day report")

// Mode selects the demand generator.
type Mode string

const (
	// ModeAgents lets a population of learning customers visit the store.
	ModeAgents Mode = "agents"
	// ModeRandom issues a uniform number of single-unit sale attempts on
	// uniformly chosen SKUs.
	ModeRandom Mode = "random"
)

// ParseMode accepts "agents" or "random".
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAgents, ModeRandom:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown simulation mode %q", s)
	}
}

// Store is the subset of ledger operations the driver needs. Both
// *store.Ledger and *store.SyncLedger satisfy it.
type Store interface {
	SKUs() []string
	Sell(day domain.Day, sku string, qty int) (bool, error)
	Serve(day domain.Day, shopper store.Shopper) (bool, error)
	DailyTick(day domain.Day) (store.TickResult, error)
	Snapshot() domain.Snapshot
}

// Options configures a Runner.
type Options struct {
	RunID string
	Start domain.Day
	// Days is the number of days to simulate; 0 runs until the context ends.
	Days             int
	Mode             Mode
	Customers        int
	VisitProbability float64
	MinDailyTraffic  int
	MaxDailyTraffic  int
	// TickInterval is the wall-clock pause between days.
	TickInterval time.Duration
	Bounds       customer.Bounds
	// TolerateSinkErrors logs failed report publication and keeps ticking
	// instead of ending the run.
	TolerateSinkErrors bool
}

// Summary describes a finished run.
type Summary struct {
	RunID           string
	Days            int
	LastDay         domain.Day
	Attempts        int
	StockOuts       int
	PublishFailures int
	Snapshot        domain.Snapshot
}

// Runner owns the customers and the day loop for one store.
type Runner struct {
	store     Store
	sink      report.Sink
	opts      Options
	rng       *rand.Rand
	customers []*customer.Agent
	logger    zerolog.Logger
}

// NewRunner validates opts and creates the customer population.
func NewRunner(st Store, sink report.Sink, opts Options, rng *rand.Rand, logger zerolog.Logger) (*Runner, error) {
	if opts.Days < 0 {
		return nil, fmt.Errorf("days cannot be negative, got %d", opts.Days)
	}
	switch opts.Mode {
	case ModeAgents:
		if opts.Customers < 0 {
			return nil, fmt.Errorf("customers cannot be negative, got %d", opts.Customers)
		}
		if opts.VisitProbability < 0 || opts.VisitProbability > 1 {
			return nil, fmt.Errorf("visit probability must be in [0, 1], got %g", opts.VisitProbability)
		}
		if err := opts.Bounds.Validate(); err != nil {
			return nil, err
		}
	case ModeRandom:
		if opts.MinDailyTraffic < 0 || opts.MaxDailyTraffic < opts.MinDailyTraffic {
			return nil, fmt.Errorf("invalid daily traffic range [%d, %d]", opts.MinDailyTraffic, opts.MaxDailyTraffic)
		}
	default:
		return nil, fmt.Errorf("unknown simulation mode %q", opts.Mode)
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	if sink == nil {
		sink = report.NewFanout()
	}

	r := &Runner{
		store:  st,
		sink:   sink,
		opts:   opts,
		rng:    rng,
		logger: logger,
	}
	if opts.Mode == ModeAgents {
		r.customers = make([]*customer.Agent, opts.Customers)
		for i := range r.customers {
			r.customers[i] = customer.NewAgent(rand.New(rand.NewSource(rng.Int63())), opts.Bounds)
		}
	}
	return r, nil
}

// RunID identifies this run in published reports.
func (r *Runner) RunID() string {
	return r.opts.RunID
}

// Customers exposes the agent population.
func (r *Runner) Customers() []*customer.Agent {
	return r.customers
}

// Step simulates one day: traffic, then the daily tick, then publication.
func (r *Runner) Step(ctx context.Context, day domain.Day) (domain.DayReport, error) {
	attempts, stockOuts, err := r.generateTraffic(day)
	if err != nil {
		return domain.DayReport{}, err
	}

	tick, err := r.store.DailyTick(day)
	if err != nil {
		return domain.DayReport{}, err
	}

	rep := domain.DayReport{
		RunID:     r.opts.RunID,
		Day:       day,
		Attempts:  attempts,
		StockOuts: stockOuts,
		Received:  tick.Received,
		Placed:    tick.Placed,
		Snapshot:  r.store.Snapshot(),
	}
	if err := r.sink.Publish(ctx, rep); err != nil {
		return rep, fmt.Errorf("%w: %w", ErrPublish, err)
	}
	return rep, nil
}

func (r *Runner) generateTraffic(day domain.Day) (attempts, stockOuts int, err error) {
	record := func(ok bool) {
		attempts++
		if !ok {
			stockOuts++
		}
	}

	switch r.opts.Mode {
	case ModeRandom:
		skus := r.store.SKUs()
		n := r.opts.MinDailyTraffic + r.rng.Intn(r.opts.MaxDailyTraffic-r.opts.MinDailyTraffic+1)
		for i := 0; i < n; i++ {
			ok, err := r.store.Sell(day, skus[r.rng.Intn(len(skus))], 1)
			if err != nil {
				return attempts, stockOuts, err
			}
			record(ok)
		}
	case ModeAgents:
		for _, c := range r.customers {
			if r.rng.Float64() >= r.opts.VisitProbability {
				continue
			}
			ok, err := r.store.Serve(day, c)
			if err != nil {
				return attempts, stockOuts, err
			}
			record(ok)
		}
	}
	return attempts, stockOuts, nil
}

// Run steps day by day from Start until Days have elapsed or ctx is done.
// Cancellation ends an open-ended run cleanly.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	summary := Summary{RunID: r.opts.RunID}
	day := r.opts.Start

	for r.opts.Days == 0 || summary.Days < r.opts.Days {
		if err := ctx.Err(); err != nil {
			break
		}

		rep, err := r.Step(ctx, day)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			if !errors.Is(err, ErrPublish) || !r.opts.TolerateSinkErrors {
				return summary, fmt.Errorf("day %s: %w", day, err)
			}
			summary.PublishFailures++
			r.logger.Warn().
				Err(err).
				Str("run_id", r.opts.RunID).
				Str("day", day.String()).
				Msg("day report not published")
		}
		summary.Days++
		summary.LastDay = day
		summary.Attempts += rep.Attempts
		summary.StockOuts += rep.StockOuts
		day = day.AddDays(1)

		if r.opts.TickInterval > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(r.opts.TickInterval):
			}
		}
	}

	summary.Snapshot = r.store.Snapshot()
	r.logger.Info().
		Str("run_id", summary.RunID).
		Int("days", summary.Days).
		Int("attempts", summary.Attempts).
		Int("stock_outs", summary.StockOuts).
		Int("publish_failures", summary.PublishFailures).
		Float64("profit", summary.Snapshot.Profit).
		Msg("simulation finished")
	return summary, nil
}
