package scraper

import (
	"net/url"
	"strings"
)

// BaseURL is the marketplace origin relative listing URLs resolve against.
const BaseURL = "https://www.amazon.co.uk"

// AbsoluteURL normalizes a scraped URL: protocol-relative URLs get https,
// relative paths resolve against the marketplace origin, absolute URLs pass
// through untouched.
func AbsoluteURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}

	base, err := url.Parse(BaseURL)
	if err != nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	return base.ResolveReference(ref).String()
}
