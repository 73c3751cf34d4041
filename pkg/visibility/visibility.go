// Package visibility decides whether DOM nodes contribute extractable text.
package visibility

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// excludedTags never contribute extractable text regardless of styling.
var excludedTags = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"code":     {},
	"pre":      {},
	"meta":     {},
	"head":     {},
}

// IsVisible reports whether an element is rendered. Parsed documents carry no
// layout, so the check reads declared state: the hidden attribute, inline
// display/visibility/opacity, and explicit zero width or height. Elements
// that declare nothing count as visible.
func IsVisible(s *goquery.Selection) bool {
	if s == nil || s.Length() == 0 {
		return false
	}
	return isVisibleNode(s.Get(0))
}

// ShouldExtract reports whether a node contributes extractable text: false
// for comments, text nodes need non-blank content, elements must be outside
// the exclusion set and visible.
func ShouldExtract(n *html.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case html.CommentNode:
		return false
	case html.TextNode:
		return strings.TrimSpace(n.Data) != ""
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if _, excluded := excludedTags[tag]; excluded {
			return false
		}
		return isVisibleNode(n)
	}
	return true
}

func isVisibleNode(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	var style, width, height string
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "hidden":
			return false
		case "aria-hidden":
			if strings.TrimSpace(attr.Val) == "true" {
				return false
			}
		case "style":
			style = attr.Val
		case "width":
			width = attr.Val
		case "height":
			height = attr.Val
		}
	}

	if isZeroDimension(width) || isZeroDimension(height) {
		return false
	}

	if style == "" {
		return true
	}
	props := parseInlineStyle(style)
	if props["display"] == "none" || props["visibility"] == "hidden" {
		return false
	}
	if opacity, ok := props["opacity"]; ok && opacity == "0" {
		return false
	}
	if isZeroDimension(props["width"]) || isZeroDimension(props["height"]) {
		return false
	}
	return true
}

// parseInlineStyle splits a style attribute into lowercase property/value
// pairs. Malformed declarations are dropped.
func parseInlineStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		key, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))
		if key != "" && value != "" {
			props[key] = value
		}
	}
	return props
}

// isZeroDimension matches declared zero sizes like "0", "0px", or "0%".
func isZeroDimension(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	trimmed := strings.TrimRight(value, "pxremvhw%")
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if r != '0' && r != '.' {
			return false
		}
	}
	return strings.ContainsRune(trimmed, '0')
}
