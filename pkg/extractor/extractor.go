// Package extractor is the top-level entry point for page content
// extraction: it selects the extraction variant for the page, gathers
// metadata and sections, and combines them into bounded main content.
package extractor

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/dtnitsch/pagectx/internal/common"
	"github.com/dtnitsch/pagectx/models"
	"github.com/dtnitsch/pagectx/pkg/detector"
	"github.com/dtnitsch/pagectx/pkg/extract"
	"github.com/dtnitsch/pagectx/pkg/extractors"
	"github.com/dtnitsch/pagectx/pkg/formatter"
	"github.com/dtnitsch/pagectx/pkg/metadata"
)

// fallbackCharBudget caps raw-text extraction when the structured pipeline
// fails.
const fallbackCharBudget = 10000

// Extract derives structured content from a parsed page. It is a pure
// function of the document and URL and holds no state between calls;
// callers own any caching.
func Extract(doc *goquery.Document, pageURL string) *models.ExtractedContent {
	meta := metadata.FromDocument(doc, pageURL)

	var sections []models.ContentSection
	switch detector.Detect(pageURL) {
	case detector.VariantWebmail:
		sections = extractors.ExtractWebmail(doc)
	default:
		sections = extract.Sections(doc)
	}

	mainContent := formatter.Combine(sections)
	return &models.ExtractedContent{
		Metadata:    meta,
		MainContent: mainContent,
		Sections:    sections,
		WordCount:   formatter.CountWords(mainContent),
	}
}

// SafeExtract never fails: any panic from the structured pipeline is
// replaced by a raw-text extraction capped at a fixed character budget and
// tagged with the triggering error. The product is always a best-effort
// result, never a hard failure.
func SafeExtract(doc *goquery.Document, pageURL string) (content *models.ExtractedContent) {
	defer func() {
		if r := recover(); r != nil {
			content = fallbackExtract(doc, pageURL, fmt.Errorf("%v", r))
		}
	}()
	return Extract(doc, pageURL)
}

// fallbackExtract produces the tier-two recovery result: readable raw text
// via go-readability when possible, else the plain body text, capped at
// fallbackCharBudget characters.
func fallbackExtract(doc *goquery.Document, pageURL string, cause error) *models.ExtractedContent {
	var title, text string

	if doc != nil {
		if parsedURL, err := url.Parse(pageURL); err == nil {
			if rawHTML, err := doc.Html(); err == nil {
				parser := readability.NewParser()
				if article, err := parser.Parse(strings.NewReader(rawHTML), parsedURL); err == nil {
					title = article.Title
					text = article.TextContent
				}
			}
		}
		if strings.TrimSpace(text) == "" {
			text = doc.Find("body").Text()
		}
		if title == "" {
			title = strings.TrimSpace(doc.Find("title").First().Text())
		}
	}

	text = common.NormalizeText(text)
	if runes := []rune(text); len(runes) > fallbackCharBudget {
		text = string(runes[:fallbackCharBudget])
	}

	sections := []models.ContentSection{{
		Heading:    fmt.Sprintf("Page text (fallback after error: %v)", cause),
		Content:    text,
		Importance: 5,
	}}
	mainContent := formatter.Combine(sections)

	return &models.ExtractedContent{
		Metadata:    models.PageMetadata{Title: title, URL: pageURL},
		MainContent: mainContent,
		Sections:    sections,
		WordCount:   formatter.CountWords(mainContent),
	}
}
