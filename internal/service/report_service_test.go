package service

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	totals []domain.DayTotals
	rows   map[string][]domain.SKUDayRow
	orders []domain.OrderRow
	saved  []domain.DayReport
	err    error
}

func (f *fakeRepo) EnsureSchema(context.Context) error { return nil }

func (f *fakeRepo) SaveDayReport(_ context.Context, r domain.DayReport) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeRepo) GetDayTotals(_ context.Context, runID string, limit int) ([]domain.DayTotals, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.DayTotals
	for _, t := range f.totals {
		if t.RunID == runID && len(out) < limit {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetSKURows(_ context.Context, runID, day string) ([]domain.SKUDayRow, error) {
	return f.rows[runID+"/"+day], nil
}

func (f *fakeRepo) GetOrders(_ context.Context, runID string, limit int) ([]domain.OrderRow, error) {
	return f.orders, nil
}

type fakeCache struct {
	latest map[string]domain.DayReport
	runs   []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{latest: map[string]domain.DayReport{}}
}

func (c *fakeCache) GetLatest(_ context.Context, runID string) (*domain.DayReport, bool, error) {
	r, ok := c.latest[runID]
	if !ok {
		return nil, false, nil
	}
	return &r, true, nil
}

func (c *fakeCache) SetLatest(_ context.Context, r domain.DayReport) error {
	c.latest[r.RunID] = r
	c.runs = append(c.runs, r.RunID)
	return nil
}

func (c *fakeCache) ListRuns(context.Context, int) ([]string, error) { return c.runs, nil }
func (c *fakeCache) Invalidate(context.Context, string) error        { return nil }
func (c *fakeCache) InvalidateAll(context.Context) error             { return nil }

func storedRun() *fakeRepo {
	return &fakeRepo{
		totals: []domain.DayTotals{
			{RunID: "run-1", Day: "2025-07-14", Attempts: 29, StockOuts: 2, Revenue: 80.5, Expenses: 91.2, Profit: -10.7, InventoryValue: 120},
			{RunID: "run-1", Day: "2025-07-13", Attempts: 33},
		},
		rows: map[string][]domain.SKUDayRow{
			"run-1/2025-07-14": {
				{RunID: "run-1", Day: "2025-07-14", SKU: "bread", OnHand: 25, OnOrder: 0, DemandEstimate: 2.1, Price: 2.03},
				{RunID: "run-1", Day: "2025-07-14", SKU: "milk", OnHand: 8, OnOrder: 12, DemandEstimate: 1.7, Price: 1.35},
			},
		},
	}
}

func TestLatestFromRepositoryFillsCache(t *testing.T) {
	cache := newFakeCache()
	svc := NewReportService(storedRun(), cache)

	report, err := svc.Latest(context.Background(), "run-1")
	require.NoError(t, err)

	assert.Equal(t, civil.Date{Year: 2025, Month: 7, Day: 14}, report.Day)
	assert.Equal(t, 29, report.Attempts)
	assert.Equal(t, 25, report.Snapshot.OnHand["bread"])
	assert.Equal(t, 12, report.Snapshot.OnOrder["milk"])
	assert.Equal(t, 1.35, report.Snapshot.Price["milk"])
	assert.Equal(t, -10.7, report.Snapshot.Profit)

	_, cached := cache.latest["run-1"]
	assert.True(t, cached)
}

func TestLatestPrefersCache(t *testing.T) {
	cache := newFakeCache()
	cache.latest["run-1"] = domain.DayReport{RunID: "run-1", Attempts: 99}
	svc := NewReportService(&fakeRepo{err: errors.New("db should not be hit")}, cache)

	report, err := svc.Latest(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, 99, report.Attempts)
}

func TestLatestUnknownRun(t *testing.T) {
	svc := NewReportService(storedRun(), nil)

	_, err := svc.Latest(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestWithoutRepository(t *testing.T) {
	svc := NewReportService(nil, nil)
	ctx := context.Background()

	_, err := svc.Latest(ctx, "run-1")
	assert.ErrorIs(t, err, ErrReportsUnavailable)
	_, err = svc.Days(ctx, "run-1", 10)
	assert.ErrorIs(t, err, ErrReportsUnavailable)
	_, err = svc.Orders(ctx, "run-1", 10)
	assert.ErrorIs(t, err, ErrReportsUnavailable)

	runs, err := svc.Runs(ctx, 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)

	assert.NoError(t, svc.Publish(ctx, domain.DayReport{RunID: "run-1"}))
}

func TestPublishSavesAndCaches(t *testing.T) {
	repo := &fakeRepo{}
	cache := newFakeCache()
	svc := NewReportService(repo, cache)

	report := domain.DayReport{RunID: "run-2", Attempts: 5}
	require.NoError(t, svc.Publish(context.Background(), report))

	require.Len(t, repo.saved, 1)
	assert.Equal(t, 5, cache.latest["run-2"].Attempts)

	runs, err := svc.Runs(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-2"}, runs)
}

func TestPublishRepositoryError(t *testing.T) {
	boom := errors.New("db down")
	cache := newFakeCache()
	svc := NewReportService(&fakeRepo{err: boom}, cache)

	err := svc.Publish(context.Background(), domain.DayReport{RunID: "run-3"})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, cache.latest)
}

func TestDaysDefaultsLimit(t *testing.T) {
	svc := NewReportService(storedRun(), nil)

	days, err := svc.Days(context.Background(), "run-1", 0)
	require.NoError(t, err)
	assert.Len(t, days, 2)

	days, err = svc.Days(context.Background(), "run-1", 1)
	require.NoError(t, err)
	assert.Len(t, days, 1)
}
