// Package engine runs report configurations against in-memory rows.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/verte-zerg/reportcraft/internal/filter"
	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/preview"
	"github.com/verte-zerg/reportcraft/internal/report"
)

// Result is the outcome of a run.
type Result struct {
	Preview    preview.Preview
	Matched    int
	Total      int
	Parameters map[string]string
}

// Engine evaluates configurations over a row source.
type Engine struct {
	projector *preview.Projector
	logger    *slog.Logger
}

// New returns an Engine. A nil logger discards output.
func New(projector *preview.Projector, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{projector: projector, logger: logger}
}

// Run validates cfg, resolves supplied parameter values and keeps the rows
// the filter chain accepts. Matched rows are projected like a preview.
func (e *Engine) Run(ctx context.Context, cfg *report.Configuration, supplied map[string]string, rows []model.Record) (Result, error) {
	values, err := cfg.CheckRunnable(supplied)
	if err != nil {
		return Result{}, err
	}

	preds := cfg.Filters().List()
	fields := make(map[string]model.Field, len(preds))
	for _, p := range preds {
		field, err := cfg.Field(p.FieldID)
		if err != nil {
			return Result{}, err
		}
		fields[p.FieldID] = field
	}

	matched := make([]model.Record, 0, len(rows))
	for i, rec := range rows {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("run cancelled at row %d: %w", i, err)
		}
		ok, err := filter.EvaluateErr(preds, func(p model.Predicate) (bool, error) {
			return filter.Match(fields[p.FieldID], p, rec[p.FieldID])
		})
		if err != nil {
			return Result{}, fmt.Errorf("failed to evaluate filters: %w", err)
		}
		if ok {
			matched = append(matched, rec)
		}
	}

	e.logger.Debug("report run",
		slog.String("report", cfg.Name()),
		slog.Int("rows", len(rows)),
		slog.Int("matched", len(matched)),
		slog.Int("filters", len(preds)),
	)

	return Result{
		Preview:    e.projector.Project(cfg, matched),
		Matched:    len(matched),
		Total:      len(rows),
		Parameters: values,
	}, nil
}
