package simulation

import (
	"fmt"
	"time"

	"github.com/andresuchdata/storebrain/backend-go/internal/config"
	"github.com/andresuchdata/storebrain/backend-go/internal/customer"
	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/andresuchdata/storebrain/backend-go/internal/store"
	"github.com/rs/zerolog"
)

// OptionsFromConfig maps the simulation settings onto runner options.
func OptionsFromConfig(cfg config.SimulationConfig) (Options, error) {
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return Options{}, err
	}
	start, err := domain.ParseDay(cfg.StartDate)
	if err != nil {
		return Options{}, fmt.Errorf("invalid start date %q: %w", cfg.StartDate, err)
	}
	bounds := customer.Bounds{Min: cfg.PreferenceMin, Max: cfg.PreferenceMax}
	if err := bounds.Validate(); err != nil {
		return Options{}, err
	}
	if cfg.TickIntervalMS < 0 {
		return Options{}, fmt.Errorf("tick interval cannot be negative, got %d", cfg.TickIntervalMS)
	}

	return Options{
		Start:            start,
		Days:             cfg.Days,
		Mode:             mode,
		Customers:        cfg.Customers,
		VisitProbability: cfg.VisitProbability,
		MinDailyTraffic:  cfg.MinDailyTraffic,
		MaxDailyTraffic:  cfg.MaxDailyTraffic,
		TickInterval:     time.Duration(cfg.TickIntervalMS) * time.Millisecond,
		Bounds:           bounds,
	}, nil
}

// NewLedger builds a ledger over catalogue with the configured smoothing
// factor and starting stock.
func NewLedger(catalogue domain.Catalogue, cfg config.SimulationConfig, logger zerolog.Logger) (*store.Ledger, error) {
	return store.New(catalogue, store.Config{
		Alpha:         cfg.Alpha,
		StartingStock: cfg.StartingStock,
		Pricing:       store.DefaultPricingPolicy(),
		Logger:        logger,
	})
}
