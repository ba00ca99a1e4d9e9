package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/gramsort/internal/category"
	"github.com/papapumpkin/gramsort/internal/config"
	"github.com/papapumpkin/gramsort/internal/regroup"
	"github.com/papapumpkin/gramsort/internal/telemetry"
	"github.com/papapumpkin/gramsort/internal/ui"
	"github.com/papapumpkin/gramsort/internal/watch"
)

var sortCmd = &cobra.Command{
	Use:   "sort",
	Short: "Write the grammar table grouped by category",
	Long: `Reads the pipe table from the input file, adds a category to every row from
the category mapping, and writes the rows grouped under one "##" heading per
category, headings in ascending order. The output file is replaced.

With --watch the input and mapping files are watched and the output is
rewritten after every change until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runSort,
}

func init() {
	addTableFlags(sortCmd)
	sortCmd.Flags().StringP("categories", "c", "", "category mapping TOML file (default built-in)")
	sortCmd.Flags().String("unclassified", "", "label for IDs with no category")
	sortCmd.Flags().String("telemetry", "", "append a JSONL run journal to this file")
	sortCmd.Flags().BoolP("watch", "w", false, "rerun whenever the input or mapping changes")
	rootCmd.AddCommand(sortCmd)
}

// addTableFlags registers the input, output and column flags shared by the
// commands that read the source table.
func addTableFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Markdown file holding the grammar table (default "+config.DefaultInput+")")
	cmd.Flags().StringP("output", "o", "", "grouped Markdown file (default "+config.DefaultOutput+")")
	cmd.Flags().String("id-column", "", "column holding entry IDs (default "+config.DefaultIDColumn+")")
	cmd.Flags().String("category-column", "", "scratch column for category labels (default "+config.DefaultCategoryColumn+")")
}

func runSort(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.NewWriter(cmd.ErrOrStderr(), cfg.Verbose)

	idx, err := loadIndex(cfg)
	if err != nil {
		return err
	}
	printer.Debug("%d IDs mapped to %d categories", idx.Len(), len(idx.Labels()))

	em, err := openTelemetry(cfg)
	if err != nil {
		return err
	}
	defer em.Close()

	if w, _ := cmd.Flags().GetBool("watch"); w {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return watchLoop(ctx, cfg, idx, em, printer)
	}
	return sortOnce(cfg, idx, em, printer)
}

// loadConfig loads the layered config and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cmd, &cfg)
	if cfg.IDColumn == cfg.CategoryColumn {
		return config.Config{}, fmt.Errorf("%w: %q", config.ErrSameColumn, cfg.IDColumn)
	}
	return cfg, nil
}

// applyFlagOverrides applies CLI flag values to the loaded config. Flags not
// registered on cmd are skipped.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	strs := []struct {
		flag string
		dst  *string
	}{
		{"input", &cfg.Input},
		{"output", &cfg.Output},
		{"categories", &cfg.Categories},
		{"id-column", &cfg.IDColumn},
		{"category-column", &cfg.CategoryColumn},
		{"unclassified", &cfg.Unclassified},
		{"telemetry", &cfg.Telemetry},
	}
	for _, s := range strs {
		if v, err := cmd.Flags().GetString(s.flag); err == nil && v != "" {
			*s.dst = v
		}
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}
}

// loadMapping reads the configured mapping, applying the unclassified
// override.
func loadMapping(cfg config.Config) (category.File, error) {
	f, err := category.Load(cfg.Categories)
	if err != nil {
		return category.File{}, err
	}
	if cfg.Unclassified != "" {
		f.Unclassified = cfg.Unclassified
	}
	return f, nil
}

func loadIndex(cfg config.Config) (*category.Index, error) {
	f, err := loadMapping(cfg)
	if err != nil {
		return nil, err
	}
	return f.Index(), nil
}

// openTelemetry opens the run journal, or returns a nil (no-op) emitter when
// none is configured.
func openTelemetry(cfg config.Config) (*telemetry.Emitter, error) {
	if cfg.Telemetry == "" {
		return nil, nil
	}
	return telemetry.NewEmitter(cfg.Telemetry)
}

func sortOnce(cfg config.Config, idx *category.Index, em *telemetry.Emitter, printer *ui.Printer) error {
	res, err := regroup.Run(regroup.Options{
		Input:          cfg.Input,
		Output:         cfg.Output,
		IDColumn:       cfg.IDColumn,
		CategoryColumn: cfg.CategoryColumn,
		Index:          idx,
		Telemetry:      em,
	})
	if err != nil {
		return err
	}
	printer.Debug("run %s: columns %v", res.RunID, res.Columns)

	counts := make([]ui.SectionCount, len(res.Sections))
	for i, s := range res.Sections {
		counts[i] = ui.SectionCount{Label: s.Label, Rows: s.Rows}
	}
	printer.RunDone(res.Output, res.Rows, counts, res.Unclassified)
	return nil
}

// watchLoop runs once, then reruns after every change to the input or the
// mapping file until ctx is canceled. Run failures are reported and the loop
// keeps watching.
func watchLoop(ctx context.Context, cfg config.Config, idx *category.Index, em *telemetry.Emitter, printer *ui.Printer) error {
	files := []string{cfg.Input}
	if cfg.Categories != "" {
		files = append(files, cfg.Categories)
	}
	w, err := watch.New(files...)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	if err := sortOnce(cfg, idx, em, printer); err != nil {
		printer.Error(err.Error())
	}
	printer.WatchStarted(files)

	for {
		select {
		case <-ctx.Done():
			printer.Info("stopped watching")
			return nil
		case ch, ok := <-w.Changes:
			if !ok {
				return nil
			}
			printer.WatchChange(ch.File, ch.Kind.String())
			_ = em.Emit(telemetry.Event{
				Kind: telemetry.KindWatchChange,
				Data: map[string]string{"file": ch.File, "change": ch.Kind.String()},
			})
			if ch.Kind == watch.ChangeRemoved {
				printer.Warn(ch.File + " was removed; waiting for it to return")
				continue
			}
			if cfg.Categories != "" {
				next, err := loadIndex(cfg)
				if err != nil {
					printer.Error(err.Error())
					continue
				}
				idx = next
			}
			if err := sortOnce(cfg, idx, em, printer); err != nil {
				printer.Error(err.Error())
			}
		}
	}
}
