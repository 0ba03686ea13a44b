package scraper

// Block is the ordered sequence of non-empty, trimmed lines belonging to one
// ranked listing within the section.
type Block []string

// Item is one ranked listing scraped from the new-releases page. String
// fields use "" for absent; Rating and ReviewCount use nil so that a parsed
// zero is distinguishable from a miss.
type Item struct {
	Rank        int
	Title       string
	Author      string
	Format      string
	PriceGBP    string
	ProductURL  string
	ImageURL    string
	Rating      *float64
	ReviewCount *int
	Description string
}
