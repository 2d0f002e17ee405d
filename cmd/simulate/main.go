package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/andresuchdata/storebrain/backend-go/internal/config"
	"github.com/andresuchdata/storebrain/backend-go/internal/domain"
	"github.com/andresuchdata/storebrain/backend-go/internal/report"
	"github.com/andresuchdata/storebrain/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/storebrain/backend-go/internal/service"
	"github.com/andresuchdata/storebrain/backend-go/internal/simulation"
	"github.com/andresuchdata/storebrain/backend-go/internal/storage"
	"github.com/andresuchdata/storebrain/backend-go/pkg/logger"
	"github.com/urfave/cli/v2"
)

type contextKey string

const dbKey contextKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string; day reports are stored when set",
		EnvVars: []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	url := c.String("db-url")
	if url == "" {
		return nil
	}

	db, err := postgres.Open(url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "simulate",
		Usage: "Run batch simulations of the store and manage their reports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "json-logs",
				Usage: "Write logs as JSON lines to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetLevel(c.String("log-level"))
			if c.Bool("json-logs") {
				logger.SetJSON(os.Stderr)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Simulate a number of days and print the final snapshot and orders",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "config",
						Usage:   "Config file holding a catalogue",
						EnvVars: []string{"STORE_CONFIG_FILE"},
					},
					&cli.IntFlag{
						Name:  "days",
						Usage: "Number of days to simulate (overrides SIM_DAYS)",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed (overrides SIM_SEED)",
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Demand generator: agents or random (overrides SIM_MODE)",
					},
					&cli.StringFlag{
						Name:  "start",
						Usage: "First simulated day as YYYY-MM-DD (overrides SIM_START_DATE)",
					},
					&cli.BoolFlag{
						Name:  "upload",
						Usage: "Upload the orders CSV to object storage",
					},
					&cli.StringFlag{
						Name:  "orders-csv",
						Usage: "Also write the orders log as CSV to this path",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runSimulation,
			},
			archivesCommand(),
			cacheCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("simulation failed")
	}
}

func runSimulation(c *cli.Context) error {
	if file := c.String("config"); file != "" {
		if err := os.Setenv("STORE_CONFIG_FILE", file); err != nil {
			return err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	simCfg := cfg.Simulation
	if c.IsSet("days") {
		simCfg.Days = c.Int("days")
	}
	if c.IsSet("seed") {
		simCfg.Seed = c.Int64("seed")
	}
	if c.IsSet("mode") {
		simCfg.Mode = c.String("mode")
	}
	if c.IsSet("start") {
		simCfg.StartDate = c.String("start")
	}
	if simCfg.Days <= 0 {
		return fmt.Errorf("days must be positive, got %d", simCfg.Days)
	}
	// Batch runs never pause between days.
	simCfg.TickIntervalMS = 0

	ledger, err := simulation.NewLedger(cfg.Catalogue, simCfg, logger.Component("ledger"))
	if err != nil {
		return err
	}
	opts, err := simulation.OptionsFromConfig(simCfg)
	if err != nil {
		return err
	}

	sinks := []report.Sink{report.NewLogSink(logger.Component("simulation"))}
	if db, ok := c.Context.Value(dbKey).(*postgres.DB); ok && db != nil {
		repo := postgres.NewReportRepository(db)
		if err := repo.EnsureSchema(c.Context); err != nil {
			return err
		}
		sinks = append(sinks, service.NewReportService(repo, nil))
	}

	rng := rand.New(rand.NewSource(simCfg.Seed))
	runner, err := simulation.NewRunner(ledger, report.NewFanout(sinks...), opts, rng, logger.Component("simulation"))
	if err != nil {
		return err
	}

	summary, err := runner.Run(c.Context)
	if err != nil {
		return err
	}
	orders := ledger.Orders()

	if err := writeBatchReport(c.App.Writer, summary, orders); err != nil {
		return err
	}

	if path := c.String("orders-csv"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := report.WriteOrdersCSV(f, orders); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	if c.Bool("upload") {
		client, err := storage.NewMinioClient(c.Context, cfg.Storage)
		if err != nil {
			return err
		}
		key, err := report.ArchiveOrders(c.Context, client, summary.RunID, orders)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "\nOrders uploaded to %s\n", key)
	}
	return nil
}

// writeBatchReport prints the final snapshot, the money totals and every
// order placed during the run.
func writeBatchReport(w io.Writer, summary simulation.Summary, orders []domain.Order) error {
	snap := summary.Snapshot
	fmt.Fprintf(w, "Run %s: %d days through %s, %d attempts, %d stock-outs\n\n",
		summary.RunID, summary.Days, summary.LastDay, summary.Attempts, summary.StockOuts)

	skus := make([]string, 0, len(snap.OnHand))
	for sku := range snap.OnHand {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SKU\tON HAND\tON ORDER\tDEMAND EST\tPRICE")
	for _, sku := range skus {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%.2f\n",
			sku, snap.OnHand[sku], snap.OnOrder[sku], snap.DemandEstimate[sku], snap.Price[sku])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nRevenue:         %.2f\n", snap.Revenue)
	fmt.Fprintf(w, "Expenses:        %.2f\n", snap.Expenses)
	fmt.Fprintf(w, "Profit:          %.2f\n", snap.Profit)
	fmt.Fprintf(w, "Inventory value: %.2f\n", snap.InventoryValue)

	fmt.Fprintf(w, "\nOrders placed: %d\n", len(orders))
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tSKU\tQTY\tCOST\tARRIVAL")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%s\n", o.Day, o.SKU, o.Quantity, o.Cost, o.Arrival)
	}
	return tw.Flush()
}
