// backend-go/internal/repository/report_repository.go
package repository

import (
	"context"

	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
)

// ReportRepository stores day reports of simulation runs. It is write-mostly
// reporting storage; a ledger is never rebuilt from it.
type ReportRepository interface {
	EnsureSchema(ctx context.Context) error
	SaveDayReport(ctx context.Context, report domain.DayReport) error
	GetDayTotals(ctx context.Context, runID string, limit int) ([]domain.DayTotals, error)
	GetSKURows(ctx context.Context, runID, day string) ([]domain.SKUDayRow, error)
	GetOrders(ctx context.Context, runID string, limit int) ([]domain.OrderRow, error)
}
