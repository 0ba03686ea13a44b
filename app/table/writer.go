package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/mkond/book-trend/app/scraper"
)

// Write serializes scraped items as the intermediate table, fully replacing
// any previous file at path.
func Write(path string, items []scraper.Item) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create table file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, item := range items {
		record := []string{
			strconv.Itoa(item.Rank),
			item.Title,
			item.Author,
			item.Format,
			item.PriceGBP,
			formatRating(item.Rating),
			formatCount(item.ReviewCount),
			item.ProductURL,
			item.ImageURL,
			item.Description,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", item.Rank, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	return nil
}

func formatRating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'g', -1, 64)
}

func formatCount(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
