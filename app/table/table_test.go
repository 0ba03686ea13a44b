package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkond/book-trend/app/scraper"
)

func TestWriteAndRead_RoundTrip(t *testing.T) {
	rating := 4.8
	reviews := 48
	items := []scraper.Item{
		{
			Rank:        1,
			Title:       "The Midnight Library",
			Author:      "Jane Writer",
			Format:      "Paperback",
			PriceGBP:    "7.49",
			ProductURL:  "https://www.amazon.co.uk/dp/B0ABCDEFGH",
			ImageURL:    "https://images.example.com/I/midnight.jpg",
			Rating:      &rating,
			ReviewCount: &reviews,
			Description: "A book about a library, with a comma.",
		},
		{Rank: 2, Title: "Sparse Item"},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := Write(path, items); err != nil {
		t.Fatal(err)
	}

	rows, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first["rank"] != "1" {
		t.Errorf("Expected rank \"1\", got %q", first["rank"])
	}
	if first["title"] != "The Midnight Library" {
		t.Errorf("Expected title preserved, got %q", first["title"])
	}
	if first["price_gbp"] != "7.49" {
		t.Errorf("Expected price preserved, got %q", first["price_gbp"])
	}
	if first["rating"] != "4.8" {
		t.Errorf("Expected rating \"4.8\", got %q", first["rating"])
	}
	if first["review_count"] != "48" {
		t.Errorf("Expected review count \"48\", got %q", first["review_count"])
	}
	if first["description"] != "A book about a library, with a comma." {
		t.Errorf("Expected quoted comma field preserved, got %q", first["description"])
	}

	second := rows[1]
	if second["rank"] != "2" || second["title"] != "Sparse Item" {
		t.Errorf("Expected sparse row preserved, got %v", second)
	}
	if second["rating"] != "" || second["review_count"] != "" {
		t.Errorf("Expected absent numerics serialized empty, got %v", second)
	}
}

func TestWrite_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("stale content that should vanish"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Write(path, []scraper.Item{{Rank: 1, Title: "Fresh"}}); err != nil {
		t.Fatal(err)
	}

	rows, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0]["title"] != "Fresh" {
		t.Errorf("Expected the file fully replaced, got %v", rows)
	}
}

func TestRead_ToleratesExtraColumns(t *testing.T) {
	content := "rank,title,extra_col,product_url\n" +
		"1,Some Book,ignored value,https://www.amazon.co.uk/dp/B0ABCDEFGH\n"

	path := filepath.Join(t.TempDir(), "external.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rows, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0]["title"] != "Some Book" {
		t.Errorf("Expected known columns read, got %q", rows[0]["title"])
	}
	if rows[0]["extra_col"] != "ignored value" {
		t.Errorf("Expected extra column kept in the row map, got %v", rows[0])
	}
}

func TestRead_MissingFile(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Expected an error for a missing table file")
	}
}
