package cli

import (
	"github.com/spf13/cobra"

	"github.com/jonwraymond/fieldmatch/catalog"
)

var (
	inspectField         string
	inspectCaseSensitive bool
	inspectFlags         bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [identifiers...]",
	Short: "Check which identifiers occur in a reference field",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectField, "field", "f", "", "reference field (default from config)")
	inspectCmd.Flags().BoolVar(&inspectCaseSensitive, "case-sensitive", false, "match case exactly")
	inspectCmd.Flags().BoolVar(&inspectFlags, "flags", false, "print one flag per identifier")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	cat, err := s.catalog()
	if err != nil {
		return err
	}

	opts := []catalog.CallOption{
		catalog.WithCaseSensitive(inspectCaseSensitive || s.cfg.Reconcile.CaseSensitive),
	}
	if inspectField != "" {
		opts = append(opts, catalog.WithField(inspectField))
	}

	if inspectFlags {
		flags, err := cat.InspectFlags(args, opts...)
		if err != nil {
			return err
		}
		out := make([]map[string]any, len(flags))
		for i, f := range flags {
			out[i] = map[string]any{"identifier": f.Identifier, "mapped": f.Mapped}
		}
		return printJSON(cmd, out)
	}

	got, err := cat.Inspect(args, opts...)
	if err != nil {
		return err
	}
	return printJSON(cmd, map[string]any{"mapped": got.Mapped, "not_mapped": got.NotMapped})
}
