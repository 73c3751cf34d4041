package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/pagectx/internal/run"
	"github.com/dtnitsch/pagectx/pkg/db"
	"github.com/dtnitsch/pagectx/pkg/storage"
)

func main() {
	app := &cli.App{
		Name:  "pagectx",
		Usage: "extract LLM-ready context from web pages",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "path to the extraction history database",
				Value: db.DefaultDBName,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "extract",
				Usage:  "extract a single page and print the prompt or JSON result",
				Action: run.ExtractAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "page URL to extract",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "output format: prompt or json",
						Value: "prompt",
					},
					&cli.BoolFlag{
						Name:  "refresh",
						Usage: "drop any cached result and re-extract",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "directory for cached prompts",
						Value: "pagectx-cache",
					},
					&cli.StringFlag{
						Name:  "cache-ttl",
						Usage: "how long cached prompts stay fresh",
						Value: "1h",
					},
				},
			},
			{
				Name:   "batch",
				Usage:  "extract many URLs concurrently and print a run summary",
				Action: run.BatchAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "urls",
						Usage: "comma-separated list of URLs",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "yaml batch config file",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "number of concurrent workers",
						Value: 4,
					},
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "directory for prompt and JSON artifacts",
						Value: storage.DefaultBaseDir,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "print aggregate extraction history",
				Action: run.StatsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
