// Package extract implements the generic section extraction heuristic: it
// walks headings, paragraphs, and lists under the page's main content region
// and emits scored content sections.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/dtnitsch/pagectx/models"
	"github.com/dtnitsch/pagectx/pkg/visibility"
)

// mainContentSelectors are tried in priority order; the first match that
// carries any text wins.
var mainContentSelectors = []string{
	"article",
	"main",
	`[role="main"]`,
	"#content",
	".content",
	"#main-content",
	".main-content",
	".post-content",
	".article-content",
	".entry-content",
	".page-content",
}

// chromeSelector marks navigation, footer, sidebar, comment, and ad regions
// removed from the body clone when no main-content selector matches.
const chromeSelector = `nav, footer, aside, header, [role="navigation"], ` +
	".nav, .navbar, .menu, .sidebar, .footer, .comments, .comment, " +
	".ad, .ads, .advertisement"

// minWordFloor is the word count below which the heuristics are assumed to
// have under-extracted and the whole page text is appended as a
// low-confidence section.
const minWordFloor = 100

const (
	headingImportance   = 10 // h1; each deeper level subtracts one
	minImportance       = 5
	paragraphImportance = 7
	listImportance      = 6
	fallbackImportance  = 5
)

// FindMainContent returns the page's primary content region: the first
// non-empty match from the ordered selector list, else a clone of the body
// with chrome regions excised.
func FindMainContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range mainContentSelectors {
		match := doc.Find(sel).First()
		if match.Length() > 0 && strings.TrimSpace(match.Text()) != "" {
			return match
		}
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return doc.Selection
	}
	clone := body.Clone()
	clone.Find(chromeSelector).Remove()
	return clone
}

// Sections walks the main content region and emits scored content sections.
// Headings carry the strongest structural signal; lists are emitted
// independently of the heading structure because they often hold key facts.
func Sections(doc *goquery.Document) []models.ContentSection {
	root := FindMainContent(doc)
	var sections []models.ContentSection

	headings := root.Find("h1, h2, h3, h4, h5, h6")
	paragraphs := root.Find("p")
	switch {
	case headings.Length() > 0:
		headings.Each(func(_ int, h *goquery.Selection) {
			if section, ok := headingSection(h); ok {
				sections = append(sections, section)
			}
		})
	case paragraphs.Length() > 0:
		var parts []string
		paragraphs.Each(func(_ int, p *goquery.Selection) {
			if text := VisibleText(p); text != "" {
				parts = append(parts, text)
			}
		})
		if text := strings.Join(parts, "\n\n"); text != "" {
			sections = append(sections, models.ContentSection{
				Content:    text,
				Importance: paragraphImportance,
			})
		}
	default:
		if text := VisibleText(root); text != "" {
			sections = append(sections, models.ContentSection{
				Content:    text,
				Importance: fallbackImportance,
			})
		}
	}

	root.Find("ul, ol").Each(func(_ int, list *goquery.Selection) {
		if section, ok := listSection(list); ok {
			sections = append(sections, section)
		}
	})

	if totalWords(sections) < minWordFloor {
		if text := VisibleText(doc.Find("body").First()); text != "" {
			sections = append(sections, models.ContentSection{
				Content:    text,
				Importance: fallbackImportance,
			})
		}
	}

	return sections
}

// headingSection builds one section from a heading and the sibling content
// that follows it, up to the next heading at any level. Headings with
// neither own text nor following content are skipped.
func headingSection(h *goquery.Selection) (models.ContentSection, bool) {
	level := headingLevel(goquery.NodeName(h))
	importance := headingImportance - (level - 1)
	if importance < minImportance {
		importance = minImportance
	}

	heading := VisibleText(h)
	var parts []string
	for sibling := h.Next(); sibling.Length() > 0; sibling = sibling.Next() {
		if headingLevel(goquery.NodeName(sibling)) > 0 {
			break
		}
		if text := VisibleText(sibling); text != "" {
			parts = append(parts, text)
		}
	}
	content := strings.Join(parts, "\n\n")

	if heading == "" && content == "" {
		return models.ContentSection{}, false
	}
	return models.ContentSection{
		Heading:    heading,
		Content:    content,
		Importance: importance,
	}, true
}

// listSection renders a ul/ol as numbered lines, one per non-empty item.
func listSection(list *goquery.Selection) (models.ContentSection, bool) {
	var b strings.Builder
	count := 0
	list.Find("li").Each(func(_ int, item *goquery.Selection) {
		text := VisibleText(item)
		if text == "" {
			return
		}
		count++
		fmt.Fprintf(&b, "%d. %s\n", count, text)
	})
	if count == 0 {
		return models.ContentSection{}, false
	}
	return models.ContentSection{
		Content:    b.String(),
		Importance: listImportance,
	}, true
}

// headingLevel returns 1..6 for h1..h6 tags and 0 for anything else.
func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// VisibleText returns the whitespace-normalized text of a selection,
// honoring the visibility filter: excluded tags and hidden subtrees
// contribute nothing.
func VisibleText(s *goquery.Selection) string {
	var parts []string
	for _, n := range s.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	if !visibility.ShouldExtract(n) {
		return
	}
	if n.Type == html.TextNode {
		*parts = append(*parts, strings.Join(strings.Fields(n.Data), " "))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

func totalWords(sections []models.ContentSection) int {
	total := 0
	for _, section := range sections {
		total += len(strings.Fields(section.Content))
	}
	return total
}
