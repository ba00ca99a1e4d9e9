package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gramsort/internal/table"
	"github.com/papapumpkin/gramsort/internal/ui"
	"github.com/papapumpkin/gramsort/internal/verify"
)

// errVerifyFailed is returned when the grouped document does not match its
// source, so the process exits non-zero.
var errVerifyFailed = errors.New("grouped document does not match source")

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check a grouped document against its source table",
	Long: `Reads the grouped output back as Markdown and checks that every source row
appears exactly once, unchanged, under the heading its ID maps to, that rows
keep their source order and that headings are in ascending order.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	addTableFlags(verifyCmd)
	verifyCmd.Flags().StringP("categories", "c", "", "category mapping TOML file (default built-in)")
	verifyCmd.Flags().String("unclassified", "", "label for IDs with no category")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	idx, err := loadIndex(cfg)
	if err != nil {
		return err
	}

	src, err := table.ParseFile(cfg.Input)
	if err != nil {
		return err
	}
	sections, err := verify.ReadFile(cfg.Output)
	if err != nil {
		return err
	}

	problems := verify.Check(sections, src, idx, cfg.IDColumn, cfg.CategoryColumn)
	msgs := make([]string, len(problems))
	for i, p := range problems {
		msgs[i] = p.String()
	}
	rows := 0
	for _, s := range sections {
		rows += len(s.Rows)
	}

	ui.NewWriter(cmd.ErrOrStderr(), cfg.Verbose).VerifyResult(cfg.Output, len(sections), rows, msgs)
	if len(problems) > 0 {
		return errVerifyFailed
	}
	return nil
}
