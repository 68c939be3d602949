// Package extract implements stream locator extraction from search result markup.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Candidate pairs a normalized stream locator with the channel keyword that discovered it.
type Candidate struct {
	URL     string `json:"url"`
	Channel string `json:"channel"`
}

var (
	// Bare absolute locators anywhere in the page text.
	urlPattern = regexp.MustCompile(`(?i)https?://[^\s<>"]+?\.m3u8(?:\?[^\s<>"]*)?`)

	// Locators passed to the inline glshle() click handler.
	onclickPattern = regexp.MustCompile(`(?i)onclick="glshle\(\s*'([^']+?\.m3u8)'\s*\)"`)
)

// Extract applies all matching strategies to pageText and returns the union of
// normalized candidates attributed to channel. Absence of matches is a normal
// outcome: the result is empty, never an error. Extract is pure and performs
// no network access.
func Extract(pageText, channel string) []Candidate {
	raw := urlPattern.FindAllString(pageText, -1)

	for _, m := range onclickPattern.FindAllStringSubmatch(pageText, -1) {
		raw = append(raw, m[1])
	}

	raw = append(raw, taggedLocators(pageText)...)

	seen := make(map[string]struct{}, len(raw))
	candidates := make([]Candidate, 0, len(raw))
	for _, link := range raw {
		link, ok := Normalize(link)
		if !ok {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		candidates = append(candidates, Candidate{URL: link, Channel: channel})
	}

	return candidates
}

// taggedLocators pulls locator text out of the specially classed result elements
// the search endpoint renders alongside its click handlers.
func taggedLocators(pageText string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageText))
	if err != nil {
		// Malformed markup yields nothing here; the regex strategies still apply.
		return nil
	}

	var links []string
	doc.Find("tba.ergl").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if strings.HasSuffix(strings.ToLower(text), ".m3u8") {
			links = append(links, text)
		}
	})

	return links
}

// Normalize converts a raw match into an absolute locator. Scheme-relative
// locators are pinned to https; anything without a usable scheme is discarded.
func Normalize(link string) (string, bool) {
	lower := strings.ToLower(link)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return link, true
	case strings.HasPrefix(link, "//"):
		return "https:" + link, true
	default:
		return "", false
	}
}
