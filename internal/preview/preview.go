// Package preview projects a report configuration onto sample rows.
//
// The projection is cosmetic: aggregations are shown as a textual wrap of the
// raw value and the filter chain is described, not applied.
package preview

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/verte-zerg/reportcraft/internal/filter"
	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/report"
)

// Header describes one output column.
type Header struct {
	FieldID string
	Title   string
	Label   string
	Numeric bool
}

// Text returns the title with the aggregation label appended, if any.
func (h Header) Text() string {
	if h.Label == "" {
		return h.Title
	}
	return fmt.Sprintf("%s (%s)", h.Title, h.Label)
}

// Counts summarises the configuration shape.
type Counts struct {
	Columns    int
	Filters    int
	Parameters int
}

// Preview is the rendered shape of a configuration.
type Preview struct {
	Name     string
	Headers  []Header
	Rows     [][]string
	Counts   Counts
	Filters  string
	Required []model.Parameter
}

// Empty reports whether there are no columns to show.
func (p Preview) Empty() bool {
	return len(p.Headers) == 0
}

// Projector formats configurations for display.
type Projector struct {
	printer *message.Printer
}

// NewProjector returns a projector formatting numbers for tag.
func NewProjector(tag language.Tag) *Projector {
	return &Projector{printer: message.NewPrinter(tag)}
}

// ParseLocale parses a BCP 47 tag, falling back to English.
func ParseLocale(s string) language.Tag {
	if s == "" {
		return language.English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	return tag
}

// Project builds the preview of cfg over rows. Rows are not filtered.
func (p *Projector) Project(cfg *report.Configuration, rows []model.Record) Preview {
	cols := cfg.Columns().List()
	preds := cfg.Filters().List()
	pv := Preview{
		Name: cfg.Name(),
		Counts: Counts{
			Columns:    len(cols),
			Filters:    len(preds),
			Parameters: cfg.Parameters().Len(),
		},
		Filters:  filter.Describe(preds, cfg.FieldName),
		Required: cfg.Parameters().RequiredParameters(),
	}
	if len(cols) == 0 {
		return pv
	}
	pv.Headers = p.Headers(cfg)
	pv.Rows = make([][]string, 0, len(rows))
	for _, rec := range rows {
		pv.Rows = append(pv.Rows, p.Row(cfg, cols, rec))
	}
	return pv
}

// Headers returns the output headers of cfg.
func (p *Projector) Headers(cfg *report.Configuration) []Header {
	cols := cfg.Columns().List()
	headers := make([]Header, 0, len(cols))
	for _, col := range cols {
		h := Header{FieldID: col.FieldID, Title: col.FieldID, Label: col.Aggregation.Label()}
		if field, err := cfg.Field(col.FieldID); err == nil {
			h.Title = field.Name
			h.Numeric = field.Type == model.TypeNumber
		}
		headers = append(headers, h)
	}
	return headers
}

// Row formats one record for the given columns.
func (p *Projector) Row(cfg *report.Configuration, cols []model.SelectedColumn, rec model.Record) []string {
	row := make([]string, 0, len(cols))
	for _, col := range cols {
		fieldType := model.TypeText
		if field, err := cfg.Field(col.FieldID); err == nil {
			fieldType = field.Type
		}
		row = append(row, p.Cell(fieldType, col.Aggregation, rec[col.FieldID]))
	}
	return row
}

// Cell formats a single value. Aggregated columns show AGG(raw).
func (p *Projector) Cell(t model.SemanticType, agg model.Aggregation, value any) string {
	if label := agg.Label(); label != "" {
		return fmt.Sprintf("%s(%s)", label, raw(value))
	}
	if t == model.TypeNumber {
		if f, ok := model.NumberOf(value); ok {
			return p.printer.Sprintf("%v", number.Decimal(f, number.MaxFractionDigits(3)))
		}
	}
	return raw(value)
}

func raw(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}
