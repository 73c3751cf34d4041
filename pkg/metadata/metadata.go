// Package metadata pulls page metadata from the document head.
package metadata

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/pagectx/models"
)

// FromDocument derives page metadata from the document title, Open Graph and
// application meta tags, and the page URL. It never fails; optional fields
// stay empty when the page declares nothing usable.
func FromDocument(doc *goquery.Document, pageURL string) models.PageMetadata {
	meta := models.PageMetadata{URL: pageURL}

	meta.Title = strings.TrimSpace(doc.Find("title").First().Text())

	meta.SiteName = firstContent(doc,
		`meta[property="og:site_name"]`,
		`meta[name="application-name"]`,
	)
	if meta.SiteName == "" {
		if u, err := url.Parse(pageURL); err == nil {
			meta.SiteName = u.Hostname()
		}
	}

	meta.Description = firstContent(doc,
		`meta[name="description"]`,
		`meta[property="og:description"]`,
	)

	return meta
}

// firstContent returns the content attribute of the first matching meta tag
// carrying a non-empty value.
func firstContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		content, ok := doc.Find(sel).First().Attr("content")
		if !ok {
			continue
		}
		if content = strings.TrimSpace(content); content != "" {
			return content
		}
	}
	return ""
}
