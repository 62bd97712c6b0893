package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/fieldmatch/internal/loader"
	"github.com/jonwraymond/fieldmatch/registry"
	"github.com/jonwraymond/fieldmatch/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve [tables...]",
	Short: "Serve the catalog tools over stdio",
	Long: `Starts an MCP server reading newline-delimited JSON-RPC requests from
stdin and writing responses to stdout. The loaded table is available to the
search, inspect, map_synonyms and explode_synonyms tools. Extra tables
given as arguments are registered under their file names.

Logs go to stderr.`,
	Args: cobra.ArbitraryArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	frames, err := loader.LoadAll(cmd.Context(), args)
	if err != nil {
		return err
	}
	for i, f := range frames {
		name := loader.Name(args[i])
		if _, err := s.store.RegisterDataset(name, store.Dataset{Name: name, Frame: f}); err != nil {
			return fmt.Errorf("register %s: %w", args[i], err)
		}
	}

	reg := registry.New(registry.Config{
		ServerInfo: registry.ServerInfo{Name: "fieldmatch", Version: version},
		Logger:     s.log,
	})
	if err := registry.RegisterCatalogTools(reg, s.store); err != nil {
		return fmt.Errorf("register tools: %w", err)
	}
	s.log.Info("serving", "dataset", s.dataset, "extra", len(frames), "tools", reg.Stats().TotalTools)

	return registry.Serve(cmd.Context(), reg, cmd.InOrStdin(), cmd.OutOrStdout())
}
