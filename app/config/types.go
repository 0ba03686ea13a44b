package config

// Target describes one listing page to scrape.
type Target struct {
	Name     string         `yaml:"name"` // Derived from filename when omitted
	URL      string         `yaml:"url"`
	Section  string         `yaml:"section"`
	Settings TargetSettings `yaml:"settings"`
}

// TargetSettings contains per-target extraction settings. WithDescriptions is
// a pointer so an omitted key can fall back to the loader defaults while an
// explicit false stays false.
type TargetSettings struct {
	Enabled          bool    `yaml:"enabled"`
	MaxItems         int     `yaml:"max_items"`
	WithDescriptions *bool   `yaml:"with_descriptions"`
	Sleep            float64 `yaml:"sleep"` // seconds between product-page requests
	Out              string  `yaml:"out"`
}

// Defaults supplies fallback values for settings a target file omits.
type Defaults struct {
	MaxItems         int
	WithDescriptions bool
	Sleep            float64
}
