package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

var ordersHeader = []string{"day", "sku", "quantity", "cost", "arrival"}

// WriteOrdersCSV writes the orders log with costs rounded to cents.
func WriteOrdersCSV(w io.Writer, orders []domain.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ordersHeader); err != nil {
		return fmt.Errorf("write orders header: %w", err)
	}
	for _, o := range orders {
		record := []string{
			o.Day.String(),
			o.SKU,
			strconv.Itoa(o.Quantity),
			decimal.NewFromFloat(o.Cost).StringFixed(2),
			o.Arrival.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write order row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Rows flattens a report into per-SKU rows and a totals row for persistence.
func Rows(r domain.DayReport) ([]domain.SKUDayRow, domain.DayTotals) {
	day := r.Day.String()
	skus := make([]string, 0, len(r.Snapshot.OnHand))
	for sku := range r.Snapshot.OnHand {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	rows := make([]domain.SKUDayRow, 0, len(skus))
	for _, sku := range skus {
		rows = append(rows, domain.SKUDayRow{
			RunID:          r.RunID,
			Day:            day,
			SKU:            sku,
			OnHand:         r.Snapshot.OnHand[sku],
			OnOrder:        r.Snapshot.OnOrder[sku],
			DemandEstimate: r.Snapshot.DemandEstimate[sku],
			Price:          r.Snapshot.Price[sku],
		})
	}

	totals := domain.DayTotals{
		RunID:          r.RunID,
		Day:            day,
		Attempts:       r.Attempts,
		StockOuts:      r.StockOuts,
		Revenue:        r.Snapshot.Revenue,
		Expenses:       r.Snapshot.Expenses,
		Profit:         r.Snapshot.Profit,
		InventoryValue: r.Snapshot.InventoryValue,
	}
	return rows, totals
}
