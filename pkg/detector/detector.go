// Package detector selects the extraction variant for a page URL.
package detector

import (
	"net/url"
	"strings"
)

// Variant identifies an extraction strategy.
type Variant int

const (
	// VariantGeneric is the heading/paragraph/list heuristic used for
	// arbitrary pages.
	VariantGeneric Variant = iota
	// VariantWebmail is the web-mail thread and inbox extraction.
	VariantWebmail
)

func (v Variant) String() string {
	switch v {
	case VariantWebmail:
		return "webmail"
	default:
		return "generic"
	}
}

// hostMatcher binds a host predicate to a variant. Matchers are tried in
// order; the first match wins. New site-specific strategies register here.
type hostMatcher struct {
	match   func(host string) bool
	variant Variant
}

var matchers = []hostMatcher{
	{match: exactHost("mail.google.com"), variant: VariantWebmail},
}

func exactHost(want string) func(string) bool {
	return func(host string) bool { return host == want }
}

// Detect returns the extraction variant for rawURL. Unparseable URLs and
// unknown hosts get the generic variant.
func Detect(rawURL string) Variant {
	u, err := url.Parse(rawURL)
	if err != nil {
		return VariantGeneric
	}
	host := strings.ToLower(u.Hostname())
	for _, m := range matchers {
		if m.match(host) {
			return m.variant
		}
	}
	return VariantGeneric
}
