// Package cli implements the fieldmatch command line.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/fieldmatch/catalog"
	"github.com/jonwraymond/fieldmatch/internal/config"
	"github.com/jonwraymond/fieldmatch/internal/loader"
	"github.com/jonwraymond/fieldmatch/logger"
	"github.com/jonwraymond/fieldmatch/store"
)

// ErrNoDataset is returned when neither --data nor dataset.path is set.
var ErrNoDataset = errors.New("no dataset: pass --data or set dataset.path")

var version = "dev"

var (
	configPath string
	dataPath   string
	verbosity  int
)

var rootCmd = &cobra.Command{
	Use:   "fieldmatch",
	Short: "Search and reconcile identifiers against reference tables",
	Long: `fieldmatch ranks the records of a reference table against a query and
standardizes identifiers through the table's synonym column.

The table is a JSON array of objects or a CSV/TSV file with a header row.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	pf.StringVarP(&dataPath, "data", "d", "", "path to the reference table")
	pf.IntVarP(&verbosity, "verbosity", "v", -1, "log verbosity 0-5 (default from config)")
}

// Execute runs the root command. v is the build version.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	return rootCmd.ExecuteContext(ctx)
}

// session is the loaded state shared by the subcommands.
type session struct {
	cfg     config.Config
	log     *logger.Logger
	store   *store.InMemoryStore
	dataset string
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataPath != "" {
		cfg.Dataset.Path = dataPath
	}
	if verbosity >= 0 {
		cfg.Log.Verbosity = verbosity
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	logger.CheckRuntime(log, "")

	if cfg.Dataset.Path == "" {
		return nil, ErrNoDataset
	}
	start := time.Now()
	frame, err := loader.Load(cfg.Dataset.Path)
	if err != nil {
		return nil, err
	}
	log.Info("loaded dataset", logger.Since(start), "path", cfg.Dataset.Path, "rows", frame.Len())

	st := store.NewInMemoryStore()
	id, err := st.RegisterDataset(store.DatasetID(cfg.Dataset.Name, cfg.Dataset.Version), store.Dataset{
		Name:        cfg.Dataset.Name,
		Version:     cfg.Dataset.Version,
		Description: cfg.Dataset.Description,
		Frame:       frame,
	})
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, log: log, store: st, dataset: id}, nil
}

func (s *session) catalog() (*catalog.Catalog, error) {
	return store.Catalog(s.store, s.dataset, catalog.Options{
		Fields:        s.cfg.Search.Fields,
		Limit:         s.cfg.Search.Limit,
		CaseSensitive: s.cfg.Search.CaseSensitive,
		Field:         s.cfg.Reconcile.Field,
		SynonymsField: s.cfg.Reconcile.SynonymsField,
		Keep:          s.cfg.Keep(),
		Logger:        s.log,
	})
}

// printJSON writes to stdout, unlike cmd.Println which defaults to stderr.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
