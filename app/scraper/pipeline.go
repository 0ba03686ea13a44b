package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkond/book-trend/app/product"
	"github.com/mkond/book-trend/app/proxy"
)

// Fetcher is the slice of the proxy client the pipeline depends on.
type Fetcher interface {
	Fetch(ctx context.Context, targetURL string, opts proxy.Options) (string, error)
}

// RunOptions describe one extraction run over a single listing page.
// A MaxItems of zero or less means no cap.
type RunOptions struct {
	URL              string
	Section          string
	MaxItems         int
	WithDescriptions bool
	Sleep            time.Duration
}

// Pipeline fetches a listing page as rendered markdown, isolates the target
// section, splits it into ranked blocks and extracts one Item per block,
// optionally enriching each with a description from its product page.
type Pipeline struct {
	fetcher Fetcher
}

func NewPipeline(fetcher Fetcher) *Pipeline {
	return &Pipeline{fetcher: fetcher}
}

func (p *Pipeline) Run(ctx context.Context, opts RunOptions) ([]Item, error) {
	markdown, err := p.fetcher.Fetch(ctx, opts.URL, proxy.Options{
		OutputFormat: proxy.OutputMarkdown,
		CountryCode:  "uk",
		DeviceType:   "desktop",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing page: %w", err)
	}

	section, err := LocateSection(markdown, opts.Section)
	if err != nil {
		return nil, err
	}

	blocks := SplitBlocks(section)
	if opts.MaxItems > 0 && len(blocks) > opts.MaxItems {
		blocks = blocks[:opts.MaxItems]
	}
	slog.Info("Section located", "section", opts.Section, "blocks", len(blocks))

	items := make([]Item, 0, len(blocks))
	for i, block := range blocks {
		item := Extract(block, i+1)

		if opts.WithDescriptions && item.ProductURL != "" {
			// Pace product-page requests; the listing fetch above is the
			// only other network call in a run.
			time.Sleep(opts.Sleep)

			html, err := p.fetcher.Fetch(ctx, item.ProductURL, proxy.Options{
				OutputFormat: proxy.OutputHTML,
				CountryCode:  "uk",
				DeviceType:   "desktop",
			})
			if err != nil {
				return nil, fmt.Errorf("failed to fetch product page for rank %d: %w", item.Rank, err)
			}

			if desc, ok := product.Description(html); ok {
				item.Description = desc
			}
			slog.Debug("Description extracted",
				"rank", item.Rank,
				"title", item.Title,
				"length", len(item.Description))
		}

		items = append(items, item)
	}

	return items, nil
}
