// Package regroup runs the full pipeline: read the source grammar table,
// categorize every row by ID, and write the grouped document.
package regroup

import (
	"errors"

	"github.com/google/uuid"

	"github.com/papapumpkin/gramsort/internal/category"
	"github.com/papapumpkin/gramsort/internal/grouped"
	"github.com/papapumpkin/gramsort/internal/table"
	"github.com/papapumpkin/gramsort/internal/telemetry"
)

// ErrNoIndex indicates Options carried no category index.
var ErrNoIndex = errors.New("regroup: no category index")

// Options configures a single run.
type Options struct {
	Input          string
	Output         string
	IDColumn       string
	CategoryColumn string
	Index          *category.Index
	Telemetry      *telemetry.Emitter // nil disables the run journal
	RunID          string             // "" = generated
}

// SectionCount is one heading of the written document and its row count.
type SectionCount struct {
	Label string
	Rows  int
}

// Result summarizes a completed run.
type Result struct {
	RunID        string
	Output       string
	Rows         int
	Columns      []string
	Sections     []SectionCount
	Unclassified int
}

// Run reads opts.Input, groups its rows and writes opts.Output. The output
// file is replaced atomically; on failure a previous output is left intact.
func Run(opts Options) (Result, error) {
	if opts.Index == nil {
		return Result{}, ErrNoIndex
	}
	runID := opts.RunID
	if runID == "" {
		runID = uuid.New().String()
	}
	em := opts.Telemetry
	emit := func(kind string, data any) {
		// Journal failures never fail the run.
		_ = em.Emit(telemetry.Event{Kind: kind, RunID: runID, Data: data})
	}

	emit(telemetry.KindRunStart, map[string]string{"input": opts.Input, "output": opts.Output})

	res, err := run(opts, runID, emit)
	if err != nil {
		emit(telemetry.KindRunFailed, map[string]string{"error": err.Error()})
		return Result{}, err
	}
	return res, nil
}

func run(opts Options, runID string, emit func(string, any)) (Result, error) {
	t, err := table.ParseFile(opts.Input)
	if err != nil {
		return Result{}, err
	}
	emit(telemetry.KindTableParsed, map[string]any{"rows": len(t.Rows), "columns": t.Columns})

	columns := append([]string(nil), t.Columns...)
	if err := opts.Index.Categorize(t, opts.IDColumn, opts.CategoryColumn); err != nil {
		return Result{}, err
	}

	sections, err := grouped.Group(t, opts.CategoryColumn)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		RunID:    runID,
		Output:   opts.Output,
		Rows:     grouped.RowCount(sections),
		Columns:  columns,
		Sections: make([]SectionCount, len(sections)),
	}
	for i, s := range sections {
		res.Sections[i] = SectionCount{Label: s.Label, Rows: len(s.Table.Rows)}
		if s.Label == opts.Index.Unclassified() {
			res.Unclassified = len(s.Table.Rows)
		}
	}
	emit(telemetry.KindCategorized, map[string]int{"sections": len(sections), "unclassified": res.Unclassified})

	if err := grouped.WriteFile(opts.Output, sections); err != nil {
		return Result{}, err
	}
	emit(telemetry.KindOutputWritten, map[string]any{"path": opts.Output, "rows": res.Rows})
	return res, nil
}
