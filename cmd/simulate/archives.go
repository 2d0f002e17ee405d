package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/andresuchdata/storebrain/backend-go/internal/cache"
	"github.com/andresuchdata/storebrain/backend-go/internal/config"
	"github.com/andresuchdata/storebrain/backend-go/internal/report"
	"github.com/andresuchdata/storebrain/backend-go/internal/storage"
	"github.com/urfave/cli/v2"
)

func archivesCommand() *cli.Command {
	return &cli.Command{
		Name:  "archives",
		Usage: "Inspect orders exports uploaded to object storage",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List archived objects",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Only list keys with this prefix",
						Value: "runs/",
					},
				},
				Action: listArchives,
			},
			{
				Name:      "get",
				Usage:     "Download the orders export of a run",
				ArgsUsage: "<run-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Destination file",
						Value: "orders.csv",
					},
				},
				Action: getArchive,
			},
		},
	}
}

func openStorage(c *cli.Context) (storage.ObjectStorage, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return storage.NewMinioClient(c.Context, cfg.Storage)
}

func listArchives(c *cli.Context) error {
	store, err := openStorage(c)
	if err != nil {
		return err
	}
	objects, err := store.ListObjects(c.Context, c.String("prefix"))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tSIZE")
	for _, obj := range objects {
		fmt.Fprintf(tw, "%s\t%d\n", obj.Key, obj.Size)
	}
	return tw.Flush()
}

func getArchive(c *cli.Context) error {
	runID := c.Args().First()
	if runID == "" {
		return fmt.Errorf("run id is required")
	}
	store, err := openStorage(c)
	if err != nil {
		return err
	}

	key := report.OrdersKey(runID)
	if err := store.DownloadObject(c.Context, key, c.String("out")); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Downloaded %s to %s\n", key, c.String("out"))
	return nil
}

func cacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage cached day reports",
		Subcommands: []*cli.Command{
			{
				Name:  "clear",
				Usage: "Drop the cached latest report of one run, or of every run",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "run",
						Usage: "Run ID to clear; all runs when empty",
					},
				},
				Action: clearCache,
			},
		},
	}
}

func clearCache(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	snapshots, err := cache.NewSnapshotCache(cfg.Cache)
	if err != nil {
		return err
	}

	if runID := c.String("run"); runID != "" {
		if err := snapshots.Invalidate(c.Context, runID); err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "Cleared cached report of run %s\n", runID)
		return nil
	}
	if err := snapshots.InvalidateAll(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "Cleared every cached report")
	return nil
}
