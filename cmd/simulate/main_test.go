package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/andresuchdata/storebrain/backend-go/internal/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBatchReport(t *testing.T) {
	day := civil.Date{Year: 2025, Month: 7, Day: 12}
	summary := simulation.Summary{
		RunID:     "run-1",
		Days:      1,
		LastDay:   day,
		Attempts:  40,
		StockOuts: 3,
		Snapshot: domain.Snapshot{
			OnHand:         map[string]int{"milk": 2, "bread": 5},
			OnOrder:        map[string]int{"milk": 12, "bread": 20},
			DemandEstimate: map[string]float64{"milk": 1.2, "bread": 1.8},
			Price:          map[string]float64{"milk": 1.35, "bread": 2.25},
			Revenue:        61.5,
			Expenses:       31.2,
			Profit:         30.3,
			InventoryValue: 7.2,
		},
	}
	orders := []domain.Order{
		{Day: day, SKU: "bread", Quantity: 20, Cost: 24, Arrival: day.AddDays(2)},
	}

	var buf bytes.Buffer
	require.NoError(t, writeBatchReport(&buf, summary, orders))
	out := buf.String()

	assert.Contains(t, out, "Run run-1: 1 days through 2025-07-12, 40 attempts, 3 stock-outs")
	assert.Contains(t, out, "Profit:          30.30")
	assert.Contains(t, out, "Inventory value: 7.20")
	assert.Contains(t, out, "Orders placed: 1")
	assert.Less(t, strings.Index(out, "bread"), strings.Index(out, "milk"))
	assert.Contains(t, out, "2025-07-14")
}

func TestRunCommand(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	csvPath := filepath.Join(t.TempDir(), "orders.csv")

	app := newApp()
	var buf bytes.Buffer
	app.Writer = &buf

	err := app.Run([]string{
		"simulate", "--log-level", "error",
		"run", "--days", "7", "--seed", "5", "--mode", "random", "--orders-csv", csvPath,
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), ": 7 days through 2025-07-18")
	assert.Contains(t, buf.String(), "Orders placed:")

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "day,sku,quantity,cost,arrival\n"))
}

func TestRunCommandRejectsBadMode(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"simulate", "run", "--days", "2", "--mode", "chaos"})
	assert.Error(t, err)
}

func TestCacheClearWithCacheDisabled(t *testing.T) {
	app := newApp()
	var buf bytes.Buffer
	app.Writer = &buf

	require.NoError(t, app.Run([]string{"simulate", "cache", "clear", "--run", "run-1"}))
	assert.Contains(t, buf.String(), "Cleared cached report of run run-1")
}

func TestArchivesGetRequiresRunID(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}

	err := app.Run([]string{"simulate", "archives", "get"})
	assert.EqualError(t, err, "run id is required")
}
