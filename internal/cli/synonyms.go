package cli

import (
	"github.com/spf13/cobra"

	"github.com/jonwraymond/fieldmatch/catalog"
	"github.com/jonwraymond/fieldmatch/reconcile"
)

var (
	mapField         string
	mapSynonymsField string
	mapKeep          string
	mapCaseSensitive bool
	mapMapper        bool
)

var mapSynonymsCmd = &cobra.Command{
	Use:   "map-synonyms [identifiers...]",
	Short: "Replace synonyms with canonical reference values",
	Long: `Looks each identifier up in the reference field and, failing that, in
the synonyms field, printing the canonical value for every input.

A synonym claimed by several records maps to all of them unless --keep
selects the first or last.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMapSynonyms,
}

func init() {
	f := mapSynonymsCmd.Flags()
	f.StringVarP(&mapField, "field", "f", "", "reference field (default from config)")
	f.StringVar(&mapSynonymsField, "synonyms-field", "", "synonyms field (default from config)")
	f.StringVar(&mapKeep, "keep", "", "all, first or last (default from config)")
	f.BoolVar(&mapCaseSensitive, "case-sensitive", false, "match case exactly")
	f.BoolVar(&mapMapper, "mapper", false, "print only the rewritten identifiers")
	rootCmd.AddCommand(mapSynonymsCmd)
}

func runMapSynonyms(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	cat, err := s.catalog()
	if err != nil {
		return err
	}

	opts := []catalog.CallOption{
		catalog.WithCaseSensitive(mapCaseSensitive || s.cfg.Reconcile.CaseSensitive),
	}
	if mapField != "" {
		opts = append(opts, catalog.WithField(mapField))
	}
	if mapSynonymsField != "" {
		opts = append(opts, catalog.WithSynonymsField(mapSynonymsField))
	}
	if mapKeep != "" {
		k, err := reconcile.ParseKeep(mapKeep)
		if err != nil {
			return err
		}
		opts = append(opts, catalog.WithKeep(k))
	}

	res, err := cat.MapSynonyms(args, opts...)
	if err != nil {
		return err
	}

	if mapMapper {
		m := make(map[string]any)
		for _, r := range res {
			if r.Rewritten {
				m[r.Input] = r.Output()
			}
		}
		return printJSON(cmd, m)
	}

	values := make([]any, len(res))
	for i, r := range res {
		values[i] = r.Output()
	}
	return printJSON(cmd, values)
}
