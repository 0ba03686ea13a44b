package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/jessevdk/go-flags"

	"github.com/mkond/book-trend/app/cfg"
	"github.com/mkond/book-trend/app/config"
	"github.com/mkond/book-trend/app/proxy"
	"github.com/mkond/book-trend/app/scraper"
	"github.com/mkond/book-trend/app/table"
)

const (
	exitRuntimeError = 1
	exitConfigError  = 2
)

// Options holds all extraction configuration from command-line flags and
// environment variables.
type Options struct {
	URL              string  `long:"url" env:"SCRAPE_URL" default:"https://www.amazon.co.uk/gp/new-releases/books/69" description:"Listing page URL"`
	Section          string  `long:"section" env:"SCRAPE_SECTION" default:"Hot New Releases in Children's Books" description:"Section heading to extract"`
	MaxItems         int     `long:"max-items" env:"SCRAPE_MAX_ITEMS" default:"30" description:"Maximum number of items to process"`
	WithDescriptions bool    `long:"with-descriptions" env:"SCRAPE_WITH_DESCRIPTIONS" description:"Fetch each product page for a short description"`
	Sleep            float64 `long:"sleep" env:"SCRAPE_SLEEP" default:"1.0" description:"Delay between product-page requests in seconds"`
	Out              string  `long:"out" env:"SCRAPE_OUT" default:"children_hot_new_releases_uk.csv" description:"Output CSV path"`
	TargetsDir       string  `long:"targets-dir" env:"SCRAPE_TARGETS_DIR" description:"Directory of YAML target definitions; overrides the single-target flags"`
	APIKey           string  `long:"api-key" env:"SCRAPERAPI_KEY" description:"ScraperAPI credential"`
	Debug            bool    `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// runTarget is one listing page to scrape, either from flags or from a YAML
// target definition.
type runTarget struct {
	Name string
	Out  string
	Run  scraper.RunOptions
}

func main() {
	opts := loadOptions()
	if opts == nil {
		// Help was shown, exit gracefully
		return
	}

	if opts.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Validated before any network activity; the credential is threaded into
	// the client explicitly, never read inside it.
	if opts.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Missing SCRAPERAPI_KEY environment variable")
		os.Exit(exitConfigError)
	}

	targets, err := resolveTargets(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid target configuration: %v\n", err)
		os.Exit(exitConfigError)
	}
	if len(targets) == 0 {
		fmt.Fprintln(os.Stderr, "No enabled scrape targets")
		os.Exit(exitConfigError)
	}

	client := proxy.NewClient(opts.APIKey)
	pipeline := scraper.NewPipeline(client)
	ctx := context.Background()

	slog.Info("Starting extraction", "version", cfg.GetVersion(), "targets", len(targets))

	for _, target := range targets {
		items, err := pipeline.Run(ctx, target.Run)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Scrape failed for %s: %v\n", target.Name, err)
			os.Exit(exitRuntimeError)
		}

		if err := table.Write(target.Out, items); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write table for %s: %v\n", target.Name, err)
			os.Exit(exitRuntimeError)
		}

		slog.Info("Wrote table", "target", target.Name, "rows", len(items), "path", target.Out)
	}
}

// loadOptions parses configuration from command-line flags and environment
// variables.
func loadOptions() *Options {
	var opts Options

	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil
		}
		os.Exit(exitConfigError)
	}

	return &opts
}

// resolveTargets builds the run list. Without --targets-dir the single-target
// flags define one run; with it, every enabled YAML definition becomes a run,
// inheriting the flag values for any setting the file omits.
func resolveTargets(opts *Options) ([]runTarget, error) {
	if opts.TargetsDir == "" {
		return []runTarget{{
			Name: "default",
			Out:  opts.Out,
			Run: scraper.RunOptions{
				URL:              opts.URL,
				Section:          opts.Section,
				MaxItems:         opts.MaxItems,
				WithDescriptions: opts.WithDescriptions,
				Sleep:            time.Duration(opts.Sleep * float64(time.Second)),
			},
		}}, nil
	}

	loader := config.NewLoader(opts.TargetsDir, config.Defaults{
		MaxItems:         opts.MaxItems,
		WithDescriptions: opts.WithDescriptions,
		Sleep:            opts.Sleep,
	})
	defs, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(defs))
	for file := range defs {
		files = append(files, file)
	}
	sort.Strings(files)

	var targets []runTarget
	for _, file := range files {
		def := defs[file]
		if !def.Settings.Enabled {
			slog.Debug("Target disabled, skipping", "target", def.Name)
			continue
		}
		targets = append(targets, runTarget{
			Name: def.Name,
			Out:  def.Settings.Out,
			Run: scraper.RunOptions{
				URL:              def.URL,
				Section:          def.Section,
				MaxItems:         def.Settings.MaxItems,
				WithDescriptions: def.Settings.DescriptionsEnabled(),
				Sleep:            def.Settings.GetSleep(),
			},
		})
	}

	return targets, nil
}
