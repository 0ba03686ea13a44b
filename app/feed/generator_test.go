package feed

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mkond/book-trend/app/table"
)

func fixedGenerator(ts time.Time) *Generator {
	g := NewGenerator()
	g.now = func() time.Time { return ts }
	return g
}

func TestGenerator_DocumentShape(t *testing.T) {
	g := fixedGenerator(time.Date(2023, 7, 1, 12, 0, 0, 500, time.UTC))
	path := filepath.Join(t.TempDir(), "feed.json")

	rank := 1
	doc, err := g.Run("amazon_new_releases_books_69", []Item{{
		ID:        "amz:B0ABCDEFGH",
		StableKey: "B0ABCDEFGH",
		Rank:      &rank,
		Title:     "The Midnight Library",
	}}, path)
	if err != nil {
		t.Fatal(err)
	}

	if doc.Source != "amazon_new_releases_books_69" {
		t.Errorf("Expected source label embedded, got %q", doc.Source)
	}
	if doc.LastUpdated != "2023-07-01T12:00:00Z" {
		t.Errorf("Expected UTC second-precision timestamp, got %q", doc.LastUpdated)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("Expected valid JSON on disk: %v", err)
	}

	items, ok := parsed["items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("Expected 1 item in the document, got %v", parsed["items"])
	}

	first := items[0].(map[string]any)
	if first["id"] != "amz:B0ABCDEFGH" {
		t.Errorf("Expected item id serialized, got %v", first["id"])
	}
	if author, present := first["author"]; !present || author != nil {
		t.Errorf("Expected absent author serialized as null, got %v", author)
	}
}

func TestGenerator_IdempotentModuloLastUpdated(t *testing.T) {
	items := NewNormalizer().Run(sampleRows())

	dir := t.TempDir()
	docA, err := fixedGenerator(time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC)).
		Run("src", items, filepath.Join(dir, "a.json"))
	if err != nil {
		t.Fatal(err)
	}
	docB, err := fixedGenerator(time.Date(2023, 7, 2, 9, 30, 0, 0, time.UTC)).
		Run("src", items, filepath.Join(dir, "b.json"))
	if err != nil {
		t.Fatal(err)
	}

	docA.LastUpdated = ""
	docB.LastUpdated = ""
	if !reflect.DeepEqual(docA, docB) {
		t.Errorf("Expected identical documents apart from lastUpdated")
	}
}

func TestGenerator_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.json")
	if err := os.WriteFile(path, []byte(`{"stale": true}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := fixedGenerator(time.Now()).Run("src", nil, path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Items == nil || len(doc.Items) != 0 {
		t.Errorf("Expected an empty items array, got %v", doc.Items)
	}
	if doc.Source != "src" {
		t.Errorf("Expected the stale file fully replaced, got source %q", doc.Source)
	}
}

func sampleRows() []table.Row {
	return []table.Row{
		{
			"rank":        "1",
			"title":       "The Midnight Library",
			"author":      "Jane Writer",
			"price_gbp":   "7.49",
			"rating":      "4.8",
			"product_url": "https://www.amazon.co.uk/dp/B0ABCDEFGH",
		},
		{
			"rank":  "2",
			"title": "A Second Story",
		},
	}
}
