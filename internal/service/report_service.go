package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/andresuchdata/storebrain/backend-go/internal/cache"
	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/andresuchdata/storebrain/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

// ErrReportsUnavailable is returned when no report repository is configured.
var ErrReportsUnavailable = errors.New("report storage is not configured")

// ErrRunNotFound is returned when a run has no stored days.
var ErrRunNotFound = errors.New("run not found")

type ReportService struct {
	repo  repository.ReportRepository
	cache cache.SnapshotCache
}

// NewReportService accepts a nil repository when persistence is disabled.
func NewReportService(repo repository.ReportRepository, cacheImpl cache.SnapshotCache) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSnapshotCache()
	}
	return &ReportService{repo: repo, cache: cacheImpl}
}

// Publish stores a day report in the repository and refreshes the cache.
func (s *ReportService) Publish(ctx context.Context, report domain.DayReport) error {
	if s.repo != nil {
		if err := s.repo.SaveDayReport(ctx, report); err != nil {
			return err
		}
	}
	if err := s.cache.SetLatest(ctx, report); err != nil {
		log.Warn().Err(err).Str("run_id", report.RunID).Msg("report: cache set latest failed")
	}
	return nil
}

// Latest returns the most recent day of a run, from cache when possible.
func (s *ReportService) Latest(ctx context.Context, runID string) (*domain.DayReport, error) {
	if report, ok, err := s.cache.GetLatest(ctx, runID); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("report: cache get latest failed")
	}

	if s.repo == nil {
		return nil, ErrReportsUnavailable
	}

	totals, err := s.repo.GetDayTotals(ctx, runID, 1)
	if err != nil {
		return nil, err
	}
	if len(totals) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	rows, err := s.repo.GetSKURows(ctx, runID, totals[0].Day)
	if err != nil {
		return nil, err
	}

	report, err := assembleReport(totals[0], rows)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetLatest(ctx, *report); err != nil {
		log.Warn().Err(err).Msg("report: cache set latest failed")
	}
	return report, nil
}

// Days returns up to limit day totals of a run, newest first.
func (s *ReportService) Days(ctx context.Context, runID string, limit int) ([]domain.DayTotals, error) {
	if s.repo == nil {
		return nil, ErrReportsUnavailable
	}
	if limit <= 0 {
		limit = 30
	}
	return s.repo.GetDayTotals(ctx, runID, limit)
}

// Orders returns up to limit orders of a run, newest first.
func (s *ReportService) Orders(ctx context.Context, runID string, limit int) ([]domain.OrderRow, error) {
	if s.repo == nil {
		return nil, ErrReportsUnavailable
	}
	return s.repo.GetOrders(ctx, runID, limit)
}

// Runs lists recently published run IDs.
func (s *ReportService) Runs(ctx context.Context, limit int) ([]string, error) {
	runs, err := s.cache.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = make([]string, 0)
	}
	return runs, nil
}

func assembleReport(totals domain.DayTotals, rows []domain.SKUDayRow) (*domain.DayReport, error) {
	day, err := domain.ParseDay(totals.Day)
	if err != nil {
		return nil, err
	}

	snap := domain.Snapshot{
		OnHand:         make(map[string]int, len(rows)),
		OnOrder:        make(map[string]int, len(rows)),
		DemandEstimate: make(map[string]float64, len(rows)),
		Price:          make(map[string]float64, len(rows)),
		Revenue:        totals.Revenue,
		Expenses:       totals.Expenses,
		Profit:         totals.Profit,
		InventoryValue: totals.InventoryValue,
	}
	for _, row := range rows {
		snap.OnHand[row.SKU] = row.OnHand
		snap.OnOrder[row.SKU] = row.OnOrder
		snap.DemandEstimate[row.SKU] = row.DemandEstimate
		snap.Price[row.SKU] = row.Price
	}

	return &domain.DayReport{
		RunID:     totals.RunID,
		Day:       day,
		Attempts:  totals.Attempts,
		StockOuts: totals.StockOuts,
		Snapshot:  snap,
	}, nil
}
