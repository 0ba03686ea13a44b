package config

import (
	"cmp"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of scrape target definitions
type Loader struct {
	targetsDir string
	defaults   Defaults
}

// NewLoader creates a new target definition loader. Settings a target file
// omits are filled from defaults.
func NewLoader(targetsDir string, defaults Defaults) *Loader {
	return &Loader{targetsDir: targetsDir, defaults: defaults}
}

// LoadAll loads all YAML target files from the targets directory
func (l *Loader) LoadAll() (map[string]*Target, error) {
	targets := make(map[string]*Target)

	if _, err := os.Stat(l.targetsDir); os.IsNotExist(err) {
		return targets, nil // Return empty map if directory doesn't exist
	}

	files, err := filepath.Glob(filepath.Join(l.targetsDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}

	// Also check for .yml extension
	ymlFiles, err := filepath.Glob(filepath.Join(l.targetsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		target, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(target); err != nil {
			return nil, fmt.Errorf("invalid target %s: %w", file, err)
		}

		targets[file] = target
		log.Printf("Loaded target definition from %s", file)
	}

	return targets, nil
}

// loadFile loads a single YAML target file
func (l *Loader) loadFile(path string) (*Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var target Target
	if err := yaml.Unmarshal(data, &target); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&target, path)

	return &target, nil
}

// setDefaults fills omitted values from the loader defaults, falling back to
// the built-in constants when those are zero too
func (l *Loader) setDefaults(target *Target, path string) {
	if target.Name == "" {
		base := filepath.Base(path)
		target.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	target.Settings.MaxItems = cmp.Or(target.Settings.MaxItems, l.defaults.MaxItems, 30)
	target.Settings.Sleep = cmp.Or(target.Settings.Sleep, l.defaults.Sleep, 1.0) // seconds
	if target.Settings.WithDescriptions == nil {
		withDescriptions := l.defaults.WithDescriptions
		target.Settings.WithDescriptions = &withDescriptions
	}
	target.Settings.Out = cmp.Or(target.Settings.Out, target.Name+".csv")
}

// validate validates a target definition
func (l *Loader) validate(target *Target) error {
	if target.URL == "" {
		return fmt.Errorf("target URL is required")
	}
	if target.Section == "" {
		return fmt.Errorf("target section heading is required")
	}

	if target.Settings.MaxItems < 0 {
		return fmt.Errorf("max items must be non-negative")
	}
	if target.Settings.Sleep < 0 {
		return fmt.Errorf("sleep must be non-negative")
	}

	return nil
}
