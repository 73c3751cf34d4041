package run

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/pagectx/models"
	"github.com/dtnitsch/pagectx/pkg/analytics"
	"github.com/dtnitsch/pagectx/pkg/caching"
	"github.com/dtnitsch/pagectx/pkg/db"
	"github.com/dtnitsch/pagectx/pkg/extractor"
	"github.com/dtnitsch/pagectx/pkg/fetcher"
	"github.com/dtnitsch/pagectx/pkg/formatter"
	"github.com/dtnitsch/pagectx/pkg/storage"
)

func newLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

func openDatabase(c *cli.Context, logger *slog.Logger) *db.DB {
	database, err := db.Open(c.String("db"))
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	return database
}

// ExtractAction extracts a single page and prints the result to stdout.
func ExtractAction(c *cli.Context) error {
	logger := newLogger(c)

	rawURL := c.String("url")
	if rawURL == "" {
		fmt.Fprintln(os.Stderr, "Error: No URL provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  pagectx extract --url "https://example.com/article"`)
		os.Exit(1)
	}

	cacheTTL, err := time.ParseDuration(c.String("cache-ttl"))
	if err != nil {
		logger.Error("invalid cache-ttl duration", "error", err)
		os.Exit(2)
	}

	cache, err := caching.NewCache(c.String("cache-dir"), cacheTTL)
	if err != nil {
		logger.Error("failed to initialize cache", "error", err)
		os.Exit(2)
	}

	format := strings.ToLower(c.String("format"))

	// Cached prompts short-circuit the whole pipeline. JSON output always
	// re-extracts since only the prompt is cached.
	if format == "prompt" && !c.Bool("refresh") {
		if data, ok := cache.Get(rawURL); ok {
			logger.Info("Cache hit", "url", rawURL)
			fmt.Println(string(data))
			return nil
		}
	}
	if c.Bool("refresh") {
		if err := cache.Invalidate(rawURL); err != nil {
			logger.Warn("Failed to invalidate cache entry", "url", rawURL, "error", err)
		}
	}

	database := openDatabase(c, logger)
	defer database.Close()

	f := fetcher.NewFetcher()
	doc, err := f.Document(context.Background(), rawURL)
	if err != nil {
		logger.Error("failed to fetch page", "url", rawURL, "error", err)
		os.Exit(2)
	}

	content := extractor.SafeExtract(doc, rawURL)
	EnrichLanguage(&analytics.Analytics{}, content)
	prompt := formatter.FormatForPrompt(content)

	if err := cache.Set(rawURL, []byte(prompt)); err != nil {
		logger.Warn("Failed to cache prompt", "url", rawURL, "error", err)
	}

	if urlID, err := database.InsertURL(rawURL); err != nil {
		logger.Warn("Failed to insert URL to DB", "url", rawURL, "error", err)
	} else {
		record := newExtractionRecord(rawURL, content, prompt)
		if _, err := database.SaveExtraction(urlID, record); err != nil {
			logger.Warn("Failed to save extraction to DB", "url", rawURL, "error", err)
		}
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(content, "", "  ")
		if err != nil {
			logger.Error("failed to marshal extraction", "error", err)
			os.Exit(2)
		}
		fmt.Println(string(data))
	default:
		fmt.Println(prompt)
	}
	return nil
}

// BatchAction extracts a list of URLs concurrently and prints a yaml run
// summary.
func BatchAction(c *cli.Context) error {
	logger := newLogger(c)
	startTime := time.Now()

	config := &models.BatchConfig{WorkerCount: c.Int("workers")}
	if c.IsSet("config") {
		loaded, err := models.LoadBatchConfig(c.String("config"))
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(2)
		}
		config = loaded
		if c.IsSet("workers") {
			config.WorkerCount = c.Int("workers")
		}
	}
	if c.IsSet("urls") {
		config.URLs = strings.Split(c.String("urls"), ",")
	}
	if c.IsSet("output-dir") || config.OutputDir == "" {
		config.OutputDir = c.String("output-dir")
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 4
	}

	if len(config.URLs) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No URLs provided")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  pagectx batch --urls "https://example.com,https://example.org"`)
		fmt.Fprintln(os.Stderr, `  pagectx batch --config batch.yaml`)
		os.Exit(1)
	}

	store, err := storage.NewStore(config.OutputDir)
	if err != nil {
		logger.Error("failed to initialize result store", "error", err)
		os.Exit(2)
	}

	dbPath := c.String("db")
	if config.DBPath != "" && !c.IsSet("db") {
		dbPath = config.DBPath
	}
	database, err := db.Open(dbPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	results := runBatch(context.Background(), logger, config, store, database)
	output := BuildRunOutput(results, time.Since(startTime))

	data, err := yaml.Marshal(output)
	if err != nil {
		logger.Error("failed to marshal run output", "error", err)
		os.Exit(2)
	}
	fmt.Println(string(data))

	if output.Stats.Failed == output.Stats.TotalURLs {
		os.Exit(2)
	}
	if output.Stats.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

// StatsAction prints aggregate extraction history from the database.
func StatsAction(c *cli.Context) error {
	logger := newLogger(c)

	database := openDatabase(c, logger)
	defer database.Close()

	stats, err := database.Stats()
	if err != nil {
		logger.Error("failed to read stats", "error", err)
		os.Exit(2)
	}

	data, err := yaml.Marshal(stats)
	if err != nil {
		logger.Error("failed to marshal stats", "error", err)
		os.Exit(2)
	}
	fmt.Println(string(data))
	return nil
}
