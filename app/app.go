package app

import (
	"context"
	"fmt"
	"os"

	"blitz/internal/config"
	"blitz/internal/log"
	"blitz/internal/report"
	"blitz/internal/service"
	"blitz/internal/target"
	"blitz/pkg/dispatch"
	"blitz/pkg/history"

	_ "blitz/pkg/history/embedded"
	_ "blitz/pkg/history/local"

	"github.com/urfave/cli"
)

const Name = "blitz"

// LoadConfig layers defaults, the optional config file, the URL argument and any flags
// given explicitly on the command line, then validates the result.
func LoadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	if c.NArg() > 1 {
		return nil, fmt.Errorf("expected a single URL argument, got %d", c.NArg())
	}
	if url := c.Args().First(); url != "" {
		cfg.URL = url
	}

	if c.IsSet("concurrency") {
		cfg.Concurrency = c.Int("concurrency")
	}
	if c.IsSet("requests") {
		cfg.Requests = c.Int("requests")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("log") {
		cfg.Log = c.String("log")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("metrics-file") {
		cfg.MetricsFile = c.String("metrics-file")
	}
	if c.IsSet("history") {
		cfg.History.Enabled = c.Bool("history")
	}
	if c.IsSet("history-type") {
		cfg.History.Type = c.String("history-type")
	}
	if c.IsSet("history-path") {
		cfg.History.Path = c.String("history-path")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Run(c *cli.Context) error {
	cfg, err := LoadConfig(c)
	if err != nil {
		return err
	}

	if err := log.Init(cfg.Log, cfg.LogLevel); err != nil {
		return err
	}
	defer log.Close()

	d, err := dispatch.New(cfg.URL, cfg.Concurrency, cfg.Requests)
	if err != nil {
		return err
	}

	var store history.Store
	if cfg.History.Enabled {
		if store, err = history.Create(history.StoreType(cfg.History.Type), cfg.History.Path); err != nil {
			return err
		}
		defer store.Close()
	}

	result, err := service.NewBenchService(cfg, d, store).Run(context.Background())
	if err != nil {
		return err
	}

	if cfg.Output == "json" {
		return report.JSON(os.Stdout, result.Record)
	}
	return report.Text(os.Stdout, result.Summary)
}

// History lists recorded runs, or renders a single one when --id is given.
func History(c *cli.Context) error {
	if err := log.Init(c.GlobalString("log"), c.GlobalString("log-level")); err != nil {
		return err
	}
	defer log.Close()

	store, err := history.Create(history.StoreType(c.String("type")), c.String("path"))
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	asJSON := c.String("output") == "json"

	if id := c.String("id"); id != "" {
		record, err := store.Get(ctx, id)
		if err != nil {
			return err
		}
		if asJSON {
			return report.JSON(os.Stdout, record)
		}
		fmt.Fprintf(os.Stdout, "Run %s against %s (%d workers, %v)\n\n", record.ID, record.URL, record.Concurrency, record.Elapsed())
		return report.Text(os.Stdout, record.Summary())
	}

	records, err := store.List(ctx, c.Int("limit"))
	if err != nil {
		return err
	}
	if !asJSON {
		return report.Runs(os.Stdout, records)
	}
	for _, record := range records {
		if err := report.JSON(os.Stdout, record); err != nil {
			return err
		}
	}
	return nil
}

// Target serves a local calibration endpoint until the process is stopped.
func Target(c *cli.Context) error {
	if err := log.Init(c.GlobalString("log"), c.GlobalString("log-level")); err != nil {
		return err
	}
	defer log.Close()

	return target.ListenAndServe(c.String("listen"), target.Options{
		Size:  c.Int("size"),
		Delay: c.Duration("delay"),
	})
}
