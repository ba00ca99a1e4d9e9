package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gramsort/internal/ui"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the category mapping",
	Long: `Prints every category label with the IDs filed under it.

With --toml the mapping is written as a TOML file that can be edited and
passed back with --categories.`,
	Args: cobra.NoArgs,
	RunE: runCategories,
}

func init() {
	categoriesCmd.Flags().StringP("categories", "c", "", "category mapping TOML file (default built-in)")
	categoriesCmd.Flags().String("unclassified", "", "label for IDs with no category")
	categoriesCmd.Flags().Bool("toml", false, "write the mapping as TOML to stdout")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := loadMapping(cfg)
	if err != nil {
		return err
	}

	if asTOML, _ := cmd.Flags().GetBool("toml"); asTOML {
		data, err := f.Marshal()
		if err != nil {
			return fmt.Errorf("encoding mapping: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	labels := make([]string, len(f.Categories))
	ids := make([][]int, len(f.Categories))
	for i, g := range f.Categories {
		labels[i] = g.Label
		ids[i] = g.IDs
	}
	ui.NewWriter(cmd.OutOrStdout(), cfg.Verbose).CategoryTable(labels, ids, f.Index().Unclassified())
	return nil
}
