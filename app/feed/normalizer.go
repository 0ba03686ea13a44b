package feed

import (
	"strconv"
	"strings"

	"github.com/mkond/book-trend/app/table"
)

// idPrefix marks which source a feed id came from, e.g. "amz:B0ABCDEFGH".
const idPrefix = "amz"

type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Run converts table rows into identity-keyed feed items. Numeric coercion
// failures become null fields, never a dropped record or an aborted run.
func (n *Normalizer) Run(rows []table.Row) []Item {
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		url := strings.TrimSpace(row["product_url"])
		key := StableKey(url)

		items = append(items, Item{
			ID:          idPrefix + ":" + key,
			StableKey:   key,
			Rank:        toInt(row["rank"]),
			Title:       strings.TrimSpace(row["title"]),
			Author:      toText(row["author"]),
			Format:      toText(row["format"]),
			PriceGBP:    toText(row["price_gbp"]),
			Rating:      toFloat(row["rating"]),
			ReviewCount: toInt(row["review_count"]),
			AmazonURL:   toText(url),
			ImageURL:    toText(row["image_url"]),
			Description: toText(row["description"]),
		})
	}
	return items
}

func toText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// toInt tolerates thousands separators, e.g. "1,234" review counts.
func toInt(s string) *int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

func toFloat(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}
