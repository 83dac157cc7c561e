// Package config holds the run configuration: the tracked language table,
// endpoint URLs, timeouts, and output paths. Values are resolved in the
// usual precedence order: flags override environment variables, which
// override the config file, which overrides defaults.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/enbywiki/enbyscan/pkg/errors"
)

// Default endpoints, matching the public Wikimedia services.
const (
	DefaultPetScanURL = "https://petscan.wmflabs.org/"
	DefaultSPARQLURL  = "https://query.wikidata.org/sparql"
)

// Default timeouts. Category-subcategory expansion and federated SPARQL
// queries both run for minutes on large categories.
const (
	DefaultPetScanTimeout = 3 * time.Minute
	DefaultSPARQLTimeout  = 10 * time.Minute
)

// DefaultDepth bounds subcategory recursion when a language does not
// configure its own depth.
const DefaultDepth = 10

// Language describes one tracked Wikipedia language edition.
type Language struct {
	// Code is the language code, e.g. "en".
	Code string `yaml:"code"`

	// Name is the human-facing edition name shown in report headers.
	// When empty it is derived from the language tag.
	Name string `yaml:"name,omitempty"`

	// Category is the edition's non-binary-people category.
	Category string `yaml:"category"`

	// Depth bounds subcategory recursion for this edition. Category
	// structures vary per language; a too-deep walk pulls in spuriously
	// broad subcategory graphs.
	Depth int `yaml:"depth,omitempty"`
}

// Config is the resolved run configuration.
type Config struct {
	Languages []Language `yaml:"languages"`

	PetScanURL string `yaml:"petscan_url,omitempty"`
	SPARQLURL  string `yaml:"sparql_url,omitempty"`

	PetScanTimeout time.Duration `yaml:"petscan_timeout,omitempty"`
	SPARQLTimeout  time.Duration `yaml:"sparql_timeout,omitempty"`

	// OutputPath is where the HTML report is written.
	OutputPath string `yaml:"output_path,omitempty"`

	// StatsPath is the append-only statistics log.
	StatsPath string `yaml:"stats_path,omitempty"`
}

// Defaults returns the built-in configuration: the four language editions
// the tool has always tracked, with their category names.
func Defaults() *Config {
	return &Config{
		Languages: []Language{
			{Code: "en", Name: "English", Category: "Non-binary_people"},
			{Code: "de", Name: "German", Category: "Nichtbinäre_Person"},
			{Code: "fr", Name: "French", Category: "Personnalité_non_binaire"},
			{Code: "es", Name: "Spanish", Category: "Personas no binarias"},
		},
		PetScanURL:     DefaultPetScanURL,
		SPARQLURL:      DefaultSPARQLURL,
		PetScanTimeout: DefaultPetScanTimeout,
		SPARQLTimeout:  DefaultSPARQLTimeout,
		OutputPath:     "comparison_table.html",
		StatsPath:      "stats.csv",
	}
}

// Load resolves configuration from .env files, environment variables, and
// an optional YAML config file layered over the defaults.
func Load(configFile string) (*Config, error) {
	// .env files load before Viper env binding; .env.local overrides .env.
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("ENBYSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	cfg := Defaults()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, errors.WrapIO("read", configFile, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, &errors.ConfigError{Component: "config file", Message: "invalid YAML", Err: err}
		}
	}

	if v := viper.GetString("petscan_url"); v != "" {
		cfg.PetScanURL = v
	}
	if v := viper.GetString("sparql_url"); v != "" {
		cfg.SPARQLURL = v
	}
	if v := viper.GetDuration("petscan_timeout"); v > 0 {
		cfg.PetScanTimeout = v
	}
	if v := viper.GetDuration("sparql_timeout"); v > 0 {
		cfg.SPARQLTimeout = v
	}
	if v := viper.GetString("stats_path"); v != "" {
		cfg.StatsPath = v
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration for holes a run could not survive.
func (c *Config) Validate() error {
	if len(c.Languages) == 0 {
		return &errors.ConfigError{Component: "languages", Message: "at least one tracked language is required"}
	}
	seen := make(map[string]bool, len(c.Languages))
	for i := range c.Languages {
		lang := &c.Languages[i]
		if lang.Code == "" {
			return &errors.ConfigError{Component: "languages", Message: "language entry missing code"}
		}
		if lang.Category == "" {
			return &errors.ConfigError{Component: "languages", Message: "language " + lang.Code + " missing category"}
		}
		if seen[lang.Code] {
			return &errors.ConfigError{Component: "languages", Message: "duplicate language " + lang.Code}
		}
		seen[lang.Code] = true
		if lang.Depth <= 0 {
			lang.Depth = DefaultDepth
		}
		if lang.Name == "" {
			lang.Name = displayName(lang.Code)
		}
	}
	return nil
}

// Codes returns the tracked language codes in configured order. The order
// is load-bearing: it is the join order of the reconciliation engine and
// the fallback order of the display-name chain.
func (c *Config) Codes() []string {
	codes := make([]string, len(c.Languages))
	for i, lang := range c.Languages {
		codes[i] = lang.Code
	}
	return codes
}

// Names maps language codes to display names for the report header.
func (c *Config) Names() map[string]string {
	names := make(map[string]string, len(c.Languages))
	for _, lang := range c.Languages {
		names[lang.Code] = lang.Name
	}
	return names
}
