package feed

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Generator builds the feed document and writes it to disk.
type Generator struct {
	now func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Run assembles the document with a fresh generation timestamp and writes it
// to path, fully replacing any previous file.
func (g *Generator) Run(source string, items []Item, path string) (Document, error) {
	if items == nil {
		items = []Item{}
	}

	doc := Document{
		Source:      source,
		LastUpdated: g.now().UTC().Truncate(time.Second).Format(time.RFC3339),
		Items:       items,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Document{}, fmt.Errorf("failed to encode feed document: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return Document{}, fmt.Errorf("failed to write feed document: %w", err)
	}

	return doc, nil
}
