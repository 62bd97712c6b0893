package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/fieldmatch/catalog"
)

var (
	searchFields        string
	searchLimit         int
	searchCaseSensitive bool
	searchRank          bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Rank reference records against a query",
	Long: `Ranks every record whose searched fields match the query, a regular
expression, and prints the best matches as JSON.

Exact and synonym matches score highest, then whole-word, prefix and edge
matches. Use --limit -1 for all matches.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchFields, "field", "f", "", "comma-separated fields to search (default: all text fields)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "match case exactly")
	searchCmd.Flags().BoolVar(&searchRank, "rank", false, "include row index and rank")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	cat, err := s.catalog()
	if err != nil {
		return err
	}

	var opts []catalog.CallOption
	if searchFields != "" {
		fields := strings.Split(searchFields, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		opts = append(opts, catalog.WithFields(fields...))
	}
	if searchLimit != 0 {
		opts = append(opts, catalog.WithLimit(searchLimit))
	}
	if searchCaseSensitive {
		opts = append(opts, catalog.WithCaseSensitive(true))
	}

	res, err := cat.Search(args[0], opts...)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if !searchRank {
		return printJSON(cmd, res.Records())
	}

	out := make([]map[string]any, len(res))
	for i, h := range res {
		out[i] = map[string]any{"index": h.Index, "rank": h.Rank, "record": h.Record}
	}
	return printJSON(cmd, out)
}
