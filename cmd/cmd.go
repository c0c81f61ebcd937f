package cmd

import (
	"os"

	App "blitz/app"
	"blitz/internal/log"

	"github.com/urfave/cli"
)

func NewApp(name, usage, version, commit string) *cli.App {
	app := cli.NewApp()
	app.Name = name
	app.Usage = usage
	app.Version = version
	if commit != "" {
		app.Version = version + " (" + commit + ")"
	}
	app.ArgsUsage = "URL"
	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:  "concurrency, c",
			Value: 1,
			Usage: "Number of parallel workers",
		},
		&cli.IntFlag{
			Name:  "requests, n",
			Value: 1000,
			Usage: "Total number of requests, split evenly across workers",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Optional YAML configuration file",
		},
		&cli.StringFlag{
			Name:  "output, o",
			Value: "text",
			Usage: "Report format: text or json",
		},
		&cli.StringFlag{
			Name:  "log",
			Usage: "Log file path, stderr when empty",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "Log level: debug, info, warn or error",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "Write Prometheus metrics of the run to this file",
		},
		&cli.BoolFlag{
			Name:  "history",
			Usage: "Record the run in the history store",
		},
		&cli.StringFlag{
			Name:  "history-type",
			Value: "local",
			Usage: "History store: local or mindb",
		},
		&cli.StringFlag{
			Name:  "history-path",
			Value: "./history",
			Usage: "History store location",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "history",
			Usage: "List recorded runs or show one of them",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "type", Value: "local", Usage: "History store: local or mindb"},
				&cli.StringFlag{Name: "path", Value: "./history", Usage: "History store location"},
				&cli.StringFlag{Name: "id", Usage: "Show the run with this id"},
				&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum number of runs to list, 0 for all"},
				&cli.StringFlag{Name: "output, o", Value: "text", Usage: "text or json"},
			},
			Action: App.History,
		},
		{
			Name:  "target",
			Usage: "Serve a local endpoint to benchmark against",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "listen, l", Value: ":8080", Usage: "Listen address"},
				&cli.IntFlag{Name: "size", Value: 1024, Usage: "Response body size in bytes"},
				&cli.DurationFlag{Name: "delay", Usage: "Artificial delay before each response"},
			},
			Action: App.Target,
		},
	}
	app.Action = App.Run
	return app
}

func Execute(name, usage, version, commit string) {
	app := NewApp(name, usage, version, commit)
	if err := app.Run(os.Args); err != nil {
		log.Logger.Fatal(err)
	}
}
