package run

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dtnitsch/pagectx/internal/common"
	"github.com/dtnitsch/pagectx/models"
	"github.com/dtnitsch/pagectx/pkg/analytics"
	"github.com/dtnitsch/pagectx/pkg/db"
	"github.com/dtnitsch/pagectx/pkg/detector"
	"github.com/dtnitsch/pagectx/pkg/extractor"
	"github.com/dtnitsch/pagectx/pkg/fetcher"
	"github.com/dtnitsch/pagectx/pkg/formatter"
	"github.com/dtnitsch/pagectx/pkg/storage"
)

// runBatch fetches and extracts config.URLs concurrently, persisting each
// result through store and database.
func runBatch(ctx context.Context, logger *slog.Logger, config *models.BatchConfig, store *storage.Store, database *db.DB) []Result {
	f := fetcher.NewFetcher()
	a := &analytics.Analytics{}

	logger.Info("Starting concurrent extraction phase", "url_count", len(config.URLs), "workers", config.WorkerCount)
	var wg sync.WaitGroup
	jobs := make(chan Job, len(config.URLs))
	results := make(chan Result, len(config.URLs))

	for w := 1; w <= config.WorkerCount; w++ {
		wg.Add(1)
		go worker(ctx, w, logger, f, a, store, database, &wg, jobs, results)
	}

	for _, rawURL := range config.URLs {
		jobs <- Job{URL: rawURL}
	}
	close(jobs)

	wg.Wait()
	close(results)
	logger.Info("All extraction workers finished")

	allResults := make([]Result, 0, len(config.URLs))
	for result := range results {
		allResults = append(allResults, result)
	}
	return allResults
}

func worker(ctx context.Context, id int, logger *slog.Logger, f *fetcher.Fetcher, a *analytics.Analytics, store *storage.Store, database *db.DB, wg *sync.WaitGroup, jobs <-chan Job, results chan<- Result) {
	defer wg.Done()
	for job := range jobs {
		logger.Info("Worker started job", "worker_id", id, "url", job.URL)
		results <- processURL(ctx, id, logger, job.URL, f, a, store, database)
	}
}

// processURL runs the full pipeline for one URL: fetch, extract, enrich,
// format, persist. Extraction itself never fails; only fetch and persistence
// errors surface in the result.
func processURL(ctx context.Context, id int, logger *slog.Logger, rawURL string, f *fetcher.Fetcher, a *analytics.Analytics, store *storage.Store, database *db.DB) Result {
	result := Result{URL: rawURL}

	var urlID int64
	if database != nil {
		var err error
		urlID, err = database.InsertURL(rawURL)
		if err != nil {
			logger.Warn("Failed to insert URL to DB", "url", rawURL, "error", err)
		}
	}

	doc, err := f.Document(ctx, rawURL)
	if err != nil {
		logger.Error("Error fetching page", "worker_id", id, "url", rawURL, "error", err)
		result.Error = err
		result.ErrorType = "fetch_error"
		return result
	}

	content := extractor.SafeExtract(doc, rawURL)
	EnrichLanguage(a, content)

	prompt := formatter.FormatForPrompt(content)
	result.Content = content
	result.Prompt = prompt

	if store != nil {
		if promptPath, err := store.SavePrompt(rawURL, prompt); err != nil {
			logger.Warn("Failed to save prompt artifact", "url", rawURL, "error", err)
		} else {
			result.PromptPath = promptPath
		}
		if jsonPath, err := store.SaveJSON(rawURL, content); err != nil {
			logger.Warn("Failed to save JSON artifact", "url", rawURL, "error", err)
		} else {
			result.JSONPath = jsonPath
		}
	}

	if database != nil && urlID > 0 {
		record := newExtractionRecord(rawURL, content, prompt)
		if _, err := database.SaveExtraction(urlID, record); err != nil {
			logger.Warn("Failed to save extraction to DB", "url", rawURL, "error", err)
		}
	}

	logger.Info("Worker finished processing", "worker_id", id, "url", rawURL, "word_count", content.WordCount)
	return result
}

// newExtractionRecord builds the database row for a finished extraction.
func newExtractionRecord(rawURL string, content *models.ExtractedContent, prompt string) db.ExtractionRecord {
	return db.ExtractionRecord{
		Variant:      detector.Detect(rawURL).String(),
		ContentHash:  common.ContentHash([]byte(content.MainContent)),
		WordCount:    content.WordCount,
		SectionCount: len(content.Sections),
		Language:     db.NewNullString(content.Metadata.Language),
		Title:        db.NewNullString(content.Metadata.Title),
		Prompt:       prompt,
	}
}

// EnrichLanguage fills in the language fields of content's metadata from its
// main content. Blank pages are left unclassified.
func EnrichLanguage(a *analytics.Analytics, content *models.ExtractedContent) {
	code, confidence := a.DetectLanguage(content.MainContent)
	content.Metadata.Language = code
	content.Metadata.LanguageConfidence = confidence
}
