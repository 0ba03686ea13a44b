package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/mkond/book-trend/app/cfg"
	"github.com/mkond/book-trend/app/feed"
	"github.com/mkond/book-trend/app/table"
)

const (
	exitRuntimeError = 1
	exitConfigError  = 2
)

// Options holds all normalization configuration from command-line flags and
// environment variables.
type Options struct {
	In     string `long:"in" env:"TREND_IN" required:"true" description:"Input CSV path"`
	Out    string `long:"out" env:"TREND_OUT" required:"true" description:"Output JSON path"`
	Source string `long:"source" env:"TREND_SOURCE" default:"amazon_new_releases_books_69" description:"Source label embedded in the feed document"`
	Debug  bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
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

	slog.Info("Starting normalization", "version", cfg.GetVersion(), "in", opts.In)

	rows, err := table.Read(opts.In)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read table: %v\n", err)
		os.Exit(exitRuntimeError)
	}

	items := feed.NewNormalizer().Run(rows)

	doc, err := feed.NewGenerator().Run(opts.Source, items, opts.Out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write feed document: %v\n", err)
		os.Exit(exitRuntimeError)
	}

	slog.Info("Wrote feed document",
		"items", len(doc.Items),
		"source", doc.Source,
		"path", opts.Out)
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
