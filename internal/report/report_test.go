package report

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = civil.Date{Year: 2025, Month: 7, Day: 12}

func sampleReport() domain.DayReport {
	return domain.DayReport{
		RunID:     "run-1",
		Day:       day0,
		Attempts:  31,
		StockOuts: 4,
		Placed: []domain.Order{
			{Day: day0, SKU: "bread", Quantity: 20, Cost: 24.000000000000004, Arrival: day0.AddDays(2)},
		},
		Snapshot: domain.Snapshot{
			OnHand:         map[string]int{"milk": 3, "bread": 7},
			OnOrder:        map[string]int{"milk": 0, "bread": 20},
			DemandEstimate: map[string]float64{"milk": 1.2, "bread": 2.5},
			Price:          map[string]float64{"milk": 1.5, "bread": 2.25},
			Revenue:        40.5,
			Expenses:       24,
			Profit:         16.5,
			InventoryValue: 10.2,
		},
	}
}

func TestWriteOrdersCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteOrdersCSV(&buf, []domain.Order{
		{Day: day0, SKU: "bread", Quantity: 20, Cost: 24.000000000000004, Arrival: day0.AddDays(2)},
		{Day: day0, SKU: "milk", Quantity: 12, Cost: 7.199999999999999, Arrival: day0.AddDays(1)},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"day,sku,quantity,cost,arrival\n"+
			"2025-07-12,bread,20,24.00,2025-07-14\n"+
			"2025-07-12,milk,12,7.20,2025-07-13\n",
		buf.String())
}

func TestWriteOrdersCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, nil))
	assert.Equal(t, "day,sku,quantity,cost,arrival\n", buf.String())
}

func TestRows(t *testing.T) {
	rows, totals := Rows(sampleReport())

	require.Len(t, rows, 2)
	assert.Equal(t, "bread", rows[0].SKU)
	assert.Equal(t, "milk", rows[1].SKU)
	assert.Equal(t, domain.SKUDayRow{
		RunID: "run-1", Day: "2025-07-12", SKU: "bread",
		OnHand: 7, OnOrder: 20, DemandEstimate: 2.5, Price: 2.25,
	}, rows[0])

	assert.Equal(t, domain.DayTotals{
		RunID: "run-1", Day: "2025-07-12", Attempts: 31, StockOuts: 4,
		Revenue: 40.5, Expenses: 24, Profit: 16.5, InventoryValue: 10.2,
	}, totals)
}

func TestFanoutPublishesToEverySink(t *testing.T) {
	var (
		mu  sync.Mutex
		got []string
	)
	record := func(name string) Sink {
		return SinkFunc(func(ctx context.Context, r domain.DayReport) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, name+":"+r.RunID)
			return nil
		})
	}

	f := NewFanout(record("a"), nil, record("b"))
	assert.Equal(t, 2, f.Len())
	require.NoError(t, f.Publish(context.Background(), sampleReport()))
	assert.ElementsMatch(t, []string{"a:run-1", "b:run-1"}, got)
}

func TestFanoutReturnsSinkError(t *testing.T) {
	boom := errors.New("boom")
	f := NewFanout(
		SinkFunc(func(context.Context, domain.DayReport) error { return nil }),
		SinkFunc(func(context.Context, domain.DayReport) error { return boom }),
	)

	err := f.Publish(context.Background(), sampleReport())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "2025-07-12")
}

func TestEmptyFanout(t *testing.T) {
	assert.NoError(t, NewFanout().Publish(context.Background(), sampleReport()))
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))

	require.NoError(t, sink.Publish(context.Background(), sampleReport()))
	assert.Contains(t, buf.String(), `"run_id":"run-1"`)
	assert.Contains(t, buf.String(), `"stock_outs":4`)
}

type memUploader struct {
	objects map[string][]byte
	err     error
}

func (m *memUploader) UploadObject(_ context.Context, key string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.objects[key] = data
	return nil
}

func TestArchiveOrders(t *testing.T) {
	up := &memUploader{objects: map[string][]byte{}}

	key, err := ArchiveOrders(context.Background(), up, "run-1", sampleReport().Placed)
	require.NoError(t, err)
	assert.Equal(t, "runs/run-1/orders.csv", key)
	assert.Contains(t, string(up.objects[key]), "2025-07-12,bread,20,24.00,2025-07-14")

	up.err = errors.New("bucket gone")
	_, err = ArchiveOrders(context.Background(), up, "run-1", nil)
	assert.ErrorIs(t, err, up.err)
}
