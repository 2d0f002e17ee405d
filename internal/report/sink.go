// Package report turns simulated days into day reports and delivers them to
// logging, persistence and cache sinks.
package report

import (
	"context"
	"fmt"

	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Sink receives one report per simulated day.
type Sink interface {
	Publish(ctx context.Context, report domain.DayReport) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, report domain.DayReport) error

func (f SinkFunc) Publish(ctx context.Context, report domain.DayReport) error {
	return f(ctx, report)
}

// Fanout publishes each report to every sink concurrently and returns the
// first error.
type Fanout struct {
	sinks []Sink
}

// NewFanout drops nil sinks.
func NewFanout(sinks ...Sink) *Fanout {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) Publish(ctx context.Context, report domain.DayReport) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, s := range f.sinks {
		s := s
		g.Go(func() error {
			return s.Publish(gctx, report)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("publish day %s: %w", report.Day, err)
	}
	return nil
}

// Len is the number of sinks.
func (f *Fanout) Len() int {
	return len(f.sinks)
}

// LogSink writes a one-line summary per day.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(_ context.Context, r domain.DayReport) error {
	s.logger.Info().
		Str("run_id", r.RunID).
		Str("day", r.Day.String()).
		Int("attempts", r.Attempts).
		Int("stock_outs", r.StockOuts).
		Int("received", len(r.Received)).
		Int("placed", len(r.Placed)).
		Float64("profit", r.Snapshot.Profit).
		Interface("on_hand", r.Snapshot.OnHand).
		Msg("day closed")
	return nil
}
