package product

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Descriptions longer than this are cut and marked with an ellipsis.
const maxDescriptionLen = 280

var whitespaceRe = regexp.MustCompile(`\s+`)

// descriptionSelectors are the known description containers on a product
// page, strongest first.
var descriptionSelectors = []string{
	"#bookDescription_feature_div",
	"#bookDescription",
	"#productDescription",
}

const boilerplateBullet = "enter your model number"

// Description derives a short blurb from a product page's HTML. Candidates
// are tried in order: the meta description tag, the known description
// containers, the first three feature bullets, and finally whatever
// readability can pull out of the page. Returns false when no candidate
// yields non-empty text.
func Description(html string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	if meta, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if desc := collapse(meta); desc != "" {
			return truncate(desc), true
		}
	}

	for _, sel := range descriptionSelectors {
		if txt := collapse(doc.Find(sel).First().Text()); txt != "" {
			return truncate(txt), true
		}
	}

	var bullets []string
	doc.Find("#feature-bullets li span.a-list-item").Each(func(_ int, s *goquery.Selection) {
		t := collapse(s.Text())
		if t != "" && !strings.Contains(strings.ToLower(t), boilerplateBullet) {
			bullets = append(bullets, t)
		}
	})
	if len(bullets) > 0 {
		if len(bullets) > 3 {
			bullets = bullets[:3]
		}
		return truncate(strings.Join(bullets, " ")), true
	}

	if article, err := readability.FromReader(strings.NewReader(html), nil); err == nil {
		if txt := collapse(article.TextContent); txt != "" {
			return truncate(txt), true
		}
	}

	return "", false
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

func truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= maxDescriptionLen {
		return s
	}
	return string(runes[:maxDescriptionLen]) + "…"
}
