package feed

// Item is the normalized, identity-keyed form of one table row. Optional
// fields are pointers so that absent values serialize as JSON null instead of
// empty strings or zeroes.
type Item struct {
	ID          string   `json:"id"`
	StableKey   string   `json:"stableKey"`
	Rank        *int     `json:"rank"`
	Title       string   `json:"title"`
	Author      *string  `json:"author"`
	Format      *string  `json:"format"`
	PriceGBP    *string  `json:"priceGbp"`
	Rating      *float64 `json:"rating"`
	ReviewCount *int     `json:"reviewCount"`
	AmazonURL   *string  `json:"amazonUrl"`
	ImageURL    *string  `json:"imageUrl"`
	Description *string  `json:"description"`
}

// Document is the versioned feed written for downstream display. It is
// rebuilt from scratch on every run; there is no incremental merge.
type Document struct {
	Source      string `json:"source"`
	LastUpdated string `json:"lastUpdated"`
	Items       []Item `json:"items"`
}
