// Package extractors holds site-specific extraction strategies keyed on page
// origin. Each strategy produces the same scored sections the generic
// extractor does, from markup the generic heuristics handle poorly.
package extractors

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/pagectx/internal/common"
	"github.com/dtnitsch/pagectx/models"
	"github.com/dtnitsch/pagectx/pkg/visibility"
)

// Gmail markup selectors. The versioned class names (.a3s.aiL, tr.zA, .gD)
// are an artifact of Gmail's markup at time of writing; when they stop
// matching, extraction degrades to the fallbacks below rather than failing.
const (
	webmailMainSelector    = `div[role="main"]`
	subjectSelector        = "h2[data-thread-perm-id]"
	messageSelectorA       = "div[data-message-id]"
	messageBodySelectorA   = `div[dir="ltr"], div[dir="auto"]`
	messageSelectorB       = "div.a3s.aiL"
	messageContainerB      = "div.gs"
	senderSelector         = "span.gD"
	listItemSelector       = `[role="listitem"]`
	inboxRowSelector       = "tr.zA"
	inboxSenderSelector    = "span[email]"
	inboxSenderAltSelector = ".yW"
	inboxSubjectSelector   = ".bog"
	inboxSnippetSelector   = ".y2"
)

const (
	subjectImportance   = 10
	messageImportance   = 9
	listItemImportance  = 8
	rawRegionImportance = 7
	inboxImportance     = 6
	bodyTextImportance  = 5
	inboxRowThreshold   = 5
	maxInboxRows        = 20
)

// ExtractWebmail produces sections from a web-mail thread or inbox view.
// Any failure inside the method discards partial sections and falls back to
// the page's full body text.
func ExtractWebmail(doc *goquery.Document) (sections []models.ContentSection) {
	defer func() {
		if r := recover(); r != nil {
			sections = bodyTextSections(doc)
		}
	}()

	mainRegion := doc.Find(webmailMainSelector).First()
	if mainRegion.Length() == 0 {
		mainRegion = doc.Find("body").First()
	}

	if subject := threadSubject(doc); subject != "" {
		sections = append(sections, models.ContentSection{
			Heading:    "Subject",
			Content:    subject,
			Importance: subjectImportance,
		})
	}

	messages := messageSections(doc, mainRegion)
	sections = append(sections, messages...)

	// Last resort for thread views where no message selector matched.
	if len(messages) == 0 {
		if text := common.NormalizeText(mainRegion.Text()); text != "" {
			sections = append(sections, models.ContentSection{
				Content:    text,
				Importance: rawRegionImportance,
			})
		}
	}

	if inbox, ok := inboxSection(doc); ok {
		sections = append(sections, inbox)
	}

	return sections
}

// threadSubject reads the open thread's subject from the heading element
// carrying the thread identifier attribute.
func threadSubject(doc *goquery.Document) string {
	return common.NormalizeText(doc.Find(subjectSelector).First().Text())
}

// messageSections tries the message selector sets in order; the first set
// that yields any section wins. Each message is headed by the detected
// sender name, or a positional placeholder when no sender element exists.
func messageSections(doc *goquery.Document, mainRegion *goquery.Selection) []models.ContentSection {
	var sections []models.ContentSection

	// Set A: message containers with directional text divs.
	doc.Find(messageSelectorA).Each(func(_ int, msg *goquery.Selection) {
		text := common.NormalizeText(msg.Find(messageBodySelectorA).Text())
		if text == "" {
			return
		}
		sections = append(sections, models.ContentSection{
			Heading:    senderName(msg, len(sections)+1),
			Content:    text,
			Importance: messageImportance,
		})
	})
	if len(sections) > 0 {
		return sections
	}

	// Set B: versioned message-body classes.
	doc.Find(messageSelectorB).Each(func(_ int, body *goquery.Selection) {
		text := common.NormalizeText(body.Text())
		if text == "" {
			return
		}
		scope := body.Closest(messageContainerB)
		if scope.Length() == 0 {
			scope = body.Parent()
		}
		sections = append(sections, models.ContentSection{
			Heading:    senderName(scope, len(sections)+1),
			Content:    text,
			Importance: messageImportance,
		})
	})
	if len(sections) > 0 {
		return sections
	}

	// Fallback: any visible list item in the main region with text.
	mainRegion.Find(listItemSelector).Each(func(_ int, item *goquery.Selection) {
		if !visibility.IsVisible(item) {
			return
		}
		text := common.NormalizeText(item.Text())
		if text == "" {
			return
		}
		sections = append(sections, models.ContentSection{
			Heading:    senderName(item, len(sections)+1),
			Content:    text,
			Importance: listItemImportance,
		})
	})

	return sections
}

// senderName reads the sender element inside scope, preferring its name
// attribute over its text, and falls back to "Sender N".
func senderName(scope *goquery.Selection, position int) string {
	sender := scope.Find(senderSelector).First()
	if name, ok := sender.Attr("name"); ok && strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	if text := common.NormalizeText(sender.Text()); text != "" {
		return text
	}
	return fmt.Sprintf("Sender %d", position)
}

// inboxSection lists inbox rows when the page looks like an inbox: more than
// inboxRowThreshold row elements present. At most maxInboxRows lines are
// emitted; rows missing a sender or subject are skipped.
func inboxSection(doc *goquery.Document) (models.ContentSection, bool) {
	rows := doc.Find(inboxRowSelector)
	if rows.Length() <= inboxRowThreshold {
		return models.ContentSection{}, false
	}

	var b strings.Builder
	count := 0
	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if count >= maxInboxRows {
			return false
		}
		sender := firstRowText(row, inboxSenderSelector, inboxSenderAltSelector)
		subject := firstRowText(row, inboxSubjectSelector)
		if sender == "" || subject == "" {
			return true
		}
		snippet := common.NormalizeText(row.Find(inboxSnippetSelector).First().Text())
		snippet = strings.TrimPrefix(snippet, "- ")
		count++
		fmt.Fprintf(&b, "%d. From: %s - Subject: %s - %s\n", count, sender, subject, snippet)
		return true
	})
	if count == 0 {
		return models.ContentSection{}, false
	}

	return models.ContentSection{
		Heading:    "Inbox",
		Content:    b.String(),
		Importance: inboxImportance,
	}, true
}

func firstRowText(row *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if text := common.NormalizeText(row.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

func bodyTextSections(doc *goquery.Document) []models.ContentSection {
	text := common.NormalizeText(doc.Find("body").Text())
	if text == "" {
		return nil
	}
	return []models.ContentSection{{
		Content:    text,
		Importance: bodyTextImportance,
	}}
}
