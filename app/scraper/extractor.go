package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	imageLinkRe = regexp.MustCompile(`\[!\[(.*?)\]\((.*?)\)\]\((.*?)\)`)
	linkRe      = regexp.MustCompile(`^\[(.+?)\]\((.+?)\)$`)
	starsRe     = regexp.MustCompile(`(?i)(\d(?:\.\d)?) out of 5 stars`)
	bareIntRe   = regexp.MustCompile(`\b\d+\b`)
)

// formatVocabulary is the fixed set of format labels the marketplace renders
// as a bare line within a listing block.
var formatVocabulary = map[string]bool{
	"hardcover":         true,
	"paperback":         true,
	"kindle edition":    true,
	"audible audiobook": true,
	"board book":        true,
}

const maxAuthorLineLen = 80

// Patch is the partial field update produced by one rule matching one line.
// Empty fields leave the item untouched.
type Patch struct {
	Title       string
	Author      string
	Format      string
	PriceGBP    string
	ProductURL  string
	ImageURL    string
	Rating      *float64
	ReviewCount *int
}

// Rule is a single line heuristic: it inspects a line against the fields
// gathered so far and either claims a partial update or declines.
type Rule struct {
	Name  string
	Match func(line string, sofar Item) (Patch, bool)
}

// rules run in priority order per line; the first matching rule wins the line
// and a field set by an earlier (stronger) rule is never overwritten by a
// later (weaker) one.
var rules = []Rule{
	{Name: "image-link", Match: matchImageLink},
	{Name: "simple-link", Match: matchSimpleLink},
	{Name: "format-line", Match: matchFormatLine},
	{Name: "author-fallback", Match: matchAuthorFallback},
}

// Extract folds a block's lines through the heuristic rules into an Item.
func Extract(block Block, rank int) Item {
	item := Item{Rank: rank}
	for _, line := range block {
		for _, r := range rules {
			patch, ok := r.Match(line, item)
			if !ok {
				continue
			}
			item = merge(item, patch)
			break
		}
	}
	return item
}

func merge(item Item, p Patch) Item {
	if item.Title == "" {
		item.Title = p.Title
	}
	if item.Author == "" {
		item.Author = p.Author
	}
	if item.Format == "" {
		item.Format = p.Format
	}
	if item.PriceGBP == "" {
		item.PriceGBP = p.PriceGBP
	}
	if item.ProductURL == "" {
		item.ProductURL = p.ProductURL
	}
	if item.ImageURL == "" {
		item.ImageURL = p.ImageURL
	}
	if item.Rating == nil {
		item.Rating = p.Rating
	}
	if item.ReviewCount == nil {
		item.ReviewCount = p.ReviewCount
	}
	return item
}

// matchImageLink handles composite image+link lines of the form
// [![alt](imageUrl)](productUrl), the strongest source for image and product
// URLs. The alt text doubles as a title when no title link appeared yet.
func matchImageLink(line string, sofar Item) (Patch, bool) {
	m := imageLinkRe.FindStringSubmatch(line)
	if m == nil || sofar.ImageURL != "" {
		return Patch{}, false
	}

	p := Patch{
		ImageURL:   AbsoluteURL(m[2]),
		ProductURL: AbsoluteURL(m[3]),
	}
	if alt := strings.TrimSpace(m[1]); alt != "" {
		p.Title = alt
	}
	return p, true
}

// matchSimpleLink inspects [text](href) lines by shape: price, rating plus
// review count, title link or author link.
func matchSimpleLink(line string, sofar Item) (Patch, bool) {
	m := linkRe.FindStringSubmatch(line)
	if m == nil {
		return Patch{}, false
	}
	text := strings.TrimSpace(m[1])
	href := strings.TrimSpace(m[2])

	if strings.HasPrefix(text, "£") && sofar.PriceGBP == "" {
		return Patch{PriceGBP: strings.TrimSpace(strings.ReplaceAll(text, "£", ""))}, true
	}

	if strings.Contains(strings.ToLower(text), "out of 5 stars") && sofar.Rating == nil {
		p := Patch{}
		if sm := starsRe.FindStringSubmatch(text); sm != nil {
			if v, err := strconv.ParseFloat(sm[1], 64); err == nil {
				p.Rating = &v
			}
		}
		// Review count is the last bare integer, e.g. "4.8 out of 5 stars 48"
		if nums := bareIntRe.FindAllString(text, -1); len(nums) > 0 {
			if n, err := strconv.Atoi(nums[len(nums)-1]); err == nil {
				p.ReviewCount = &n
			}
		}
		return p, true
	}

	if sofar.Title == "" && strings.Contains(href, "/dp/") {
		return Patch{Title: text, ProductURL: AbsoluteURL(href)}, true
	}

	if sofar.Author == "" && strings.Contains(href, "/e/") {
		return Patch{Author: text}, true
	}

	return Patch{}, false
}

func matchFormatLine(line string, sofar Item) (Patch, bool) {
	if sofar.Format != "" || !formatVocabulary[strings.ToLower(line)] {
		return Patch{}, false
	}
	return Patch{Format: line}, true
}

// matchAuthorFallback accepts a short plain line as the author once a title
// is known. There is no positive signal separating an author name from an
// unrelated short line, so this can mis-attribute promotional tags; kept as a
// low-confidence catch-all rather than tightened, since tightening it would
// silently drop legitimate authors.
func matchAuthorFallback(line string, sofar Item) (Patch, bool) {
	if sofar.Author != "" || sofar.Title == "" {
		return Patch{}, false
	}

	lower := strings.ToLower(line)
	if strings.HasPrefix(line, "[") ||
		strings.HasPrefix(line, "£") ||
		strings.Contains(lower, "formats available") ||
		strings.Contains(lower, "out of 5 stars") ||
		formatVocabulary[lower] ||
		utf8.RuneCountInString(line) >= maxAuthorLineLen {
		return Patch{}, false
	}

	return Patch{Author: line}, true
}
