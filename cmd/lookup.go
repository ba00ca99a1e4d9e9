package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/gramsort/internal/ui"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <id>...",
	Short: "Print the category of one or more entry IDs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLookup,
}

func init() {
	lookupCmd.Flags().StringP("categories", "c", "", "category mapping TOML file (default built-in)")
	lookupCmd.Flags().String("unclassified", "", "label for IDs with no category")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	idx, err := loadIndex(cfg)
	if err != nil {
		return err
	}

	printer := ui.NewWriter(cmd.OutOrStdout(), cfg.Verbose)
	for _, id := range args {
		printer.Lookup(id, idx.Lookup(id), idx.Has(id))
	}
	return nil
}
