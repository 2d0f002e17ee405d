// backend-go/internal/repository/postgres/report_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/andresuchdata/storebrain/backend-go/internal/report"
	"github.com/andresuchdata/storebrain/backend-go/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS sim_day_totals (
	run_id          TEXT NOT NULL,
	day             DATE NOT NULL,
	attempts        INTEGER NOT NULL,
	stock_outs      INTEGER NOT NULL,
	revenue         NUMERIC(14, 2) NOT NULL,
	expenses        NUMERIC(14, 2) NOT NULL,
	profit          NUMERIC(14, 2) NOT NULL,
	inventory_value NUMERIC(14, 2) NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (run_id, day)
);

CREATE TABLE IF NOT EXISTS sim_sku_days (
	run_id          TEXT NOT NULL,
	day             DATE NOT NULL,
	sku             TEXT NOT NULL,
	on_hand         INTEGER NOT NULL,
	on_order        INTEGER NOT NULL,
	demand_estimate DOUBLE PRECISION NOT NULL,
	price           NUMERIC(14, 2) NOT NULL,
	PRIMARY KEY (run_id, day, sku)
);

CREATE TABLE IF NOT EXISTS sim_orders (
	id       BIGSERIAL PRIMARY KEY,
	run_id   TEXT NOT NULL,
	day      DATE NOT NULL,
	sku      TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	cost     NUMERIC(14, 2) NOT NULL,
	arrival  DATE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sim_orders_run_day ON sim_orders (run_id, day);
`

type reportRepository struct {
	db *DB
}

// NewReportRepository stores day reports in postgres.
func NewReportRepository(db *DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure report schema: %w", err)
	}
	return nil
}

func (r *reportRepository) SaveDayReport(ctx context.Context, rep domain.DayReport) error {
	rows, totals := report.Rows(rep)

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sim_day_totals (
				run_id, day, attempts, stock_outs, revenue, expenses, profit, inventory_value
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (run_id, day)
			DO UPDATE SET
				attempts = EXCLUDED.attempts,
				stock_outs = EXCLUDED.stock_outs,
				revenue = EXCLUDED.revenue,
				expenses = EXCLUDED.expenses,
				profit = EXCLUDED.profit,
				inventory_value = EXCLUDED.inventory_value
		`, totals.RunID, totals.Day, totals.Attempts, totals.StockOuts,
			totals.Revenue, totals.Expenses, totals.Profit, totals.InventoryValue)
		if err != nil {
			return fmt.Errorf("failed to save day totals: %w", err)
		}

		skuStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO sim_sku_days (
				run_id, day, sku, on_hand, on_order, demand_estimate, price
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (run_id, day, sku)
			DO UPDATE SET
				on_hand = EXCLUDED.on_hand,
				on_order = EXCLUDED.on_order,
				demand_estimate = EXCLUDED.demand_estimate,
				price = EXCLUDED.price
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare sku statement: %w", err)
		}
		defer skuStmt.Close()

		for _, row := range rows {
			if _, err := skuStmt.ExecContext(ctx, row.RunID, row.Day, row.SKU,
				row.OnHand, row.OnOrder, row.DemandEstimate, row.Price); err != nil {
				return fmt.Errorf("failed to save sku row %s: %w", row.SKU, err)
			}
		}

		for _, o := range rep.Placed {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO sim_orders (run_id, day, sku, quantity, cost, arrival)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, rep.RunID, o.Day.String(), o.SKU, o.Quantity, o.Cost, o.Arrival.String()); err != nil {
				return fmt.Errorf("failed to save order for %s: %w", o.SKU, err)
			}
		}
		return nil
	})
}

func (r *reportRepository) GetDayTotals(ctx context.Context, runID string, limit int) ([]domain.DayTotals, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `
		SELECT run_id, to_char(day, 'YYYY-MM-DD') AS day, attempts, stock_outs,
			revenue, expenses, profit, inventory_value
		FROM sim_day_totals
		WHERE run_id = $1
		ORDER BY day DESC
		LIMIT $2
	`

	var totals []domain.DayTotals
	if err := r.db.SelectContext(ctx, &totals, query, runID, limit); err != nil {
		return nil, fmt.Errorf("error getting day totals: %w", err)
	}
	return totals, nil
}

func (r *reportRepository) GetSKURows(ctx context.Context, runID, day string) ([]domain.SKUDayRow, error) {
	query := `
		SELECT run_id, to_char(day, 'YYYY-MM-DD') AS day, sku, on_hand, on_order,
			demand_estimate, price
		FROM sim_sku_days
		WHERE run_id = $1 AND day = $2::date
		ORDER BY sku
	`

	var rows []domain.SKUDayRow
	if err := r.db.SelectContext(ctx, &rows, query, runID, day); err != nil {
		return nil, fmt.Errorf("error getting sku rows: %w", err)
	}
	return rows, nil
}

func (r *reportRepository) GetOrders(ctx context.Context, runID string, limit int) ([]domain.OrderRow, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT run_id, to_char(day, 'YYYY-MM-DD') AS day, sku, quantity, cost,
			to_char(arrival, 'YYYY-MM-DD') AS arrival
		FROM sim_orders
		WHERE run_id = $1
		ORDER BY day DESC, id DESC
		LIMIT $2
	`

	var orders []domain.OrderRow
	if err := r.db.SelectContext(ctx, &orders, query, runID, limit); err != nil {
		return nil, fmt.Errorf("error getting orders: %w", err)
	}
	return orders, nil
}

var _ repository.ReportRepository = (*reportRepository)(nil)
