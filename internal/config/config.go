// Package config loads the fieldmatch TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/jonwraymond/fieldmatch/logger"
	"github.com/jonwraymond/fieldmatch/reconcile"
	"github.com/jonwraymond/fieldmatch/search"
)

// ErrInvalidConfig is returned by Validate and Load for bad values.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full file configuration.
type Config struct {
	Dataset   Dataset   `toml:"dataset"`
	Search    Search    `toml:"search"`
	Reconcile Reconcile `toml:"reconcile"`
	Log       Log       `toml:"log"`
}

// Dataset names the reference table file.
type Dataset struct {
	Path        string `toml:"path"`
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
}

// Search holds search defaults.
type Search struct {
	Limit         int      `toml:"limit"`
	CaseSensitive bool     `toml:"case_sensitive"`
	Fields        []string `toml:"fields"`
}

// Reconcile holds inspect and map_synonyms defaults.
type Reconcile struct {
	Field         string `toml:"field"`
	SynonymsField string `toml:"synonyms_field"`
	Keep          string `toml:"keep"`
	CaseSensitive bool   `toml:"case_sensitive"`
}

// Log configures the logger.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	Format    string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Dataset: Dataset{Name: "default"},
		Search:  Search{Limit: search.DefaultLimit},
		Reconcile: Reconcile{
			SynonymsField: reconcile.DefaultSynonymsField,
			Keep:          reconcile.KeepAll.String(),
		},
		Log: Log{
			Verbosity: logger.DefaultVerbosity,
			Format:    string(logger.FormatConsole),
		},
	}
}

// Load reads path over the defaults. A missing file is an error; an empty
// path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML into cfg, keeping values absent from data, and validates
// the result.
func Parse(data []byte, cfg *Config) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg.Validate()
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	if _, err := logger.VerbosityLevel(c.Log.Verbosity); err != nil {
		return fmt.Errorf("%w: log.verbosity: %w", ErrInvalidConfig, err)
	}
	switch logger.Format(c.Log.Format) {
	case "", logger.FormatConsole, logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	if _, err := reconcile.ParseKeep(c.Reconcile.Keep); err != nil {
		return fmt.Errorf("%w: reconcile.keep: %w", ErrInvalidConfig, err)
	}
	if c.Reconcile.Field != "" && c.Reconcile.Field == c.Reconcile.SynonymsField {
		return fmt.Errorf("%w: reconcile.field and reconcile.synonyms_field are both %q",
			ErrInvalidConfig, c.Reconcile.Field)
	}
	return nil
}

// Keep returns the parsed keep policy. Call after Validate.
func (c Config) Keep() reconcile.Keep {
	k, _ := reconcile.ParseKeep(c.Reconcile.Keep)
	return k
}

// Logger builds the configured logger writing to w. A nil w means stderr.
func (c Config) Logger(w io.Writer) (*logger.Logger, error) {
	return logger.New(logger.Options{
		Writer:    w,
		Format:    logger.Format(c.Log.Format),
		Verbosity: c.Log.Verbosity,
	})
}
