// Package columns maintains the ordered selection of report columns.
package columns

import (
	"fmt"

	"github.com/verte-zerg/reportcraft/internal/catalog"
	"github.com/verte-zerg/reportcraft/internal/model"
)

// Set is an ordered, duplicate-free selection of catalog fields.
type Set struct {
	catalog   *catalog.Catalog
	cols      []model.SelectedColumn
	observers []func()
}

// NewSet returns an empty selection bound to cat.
func NewSet(cat *catalog.Catalog) *Set {
	return &Set{catalog: cat}
}

// OnChange registers fn to be called after every successful mutation.
func (s *Set) OnChange(fn func()) {
	s.observers = append(s.observers, fn)
}

func (s *Set) notify() {
	for _, fn := range s.observers {
		fn()
	}
}

// Add appends fieldID with no aggregation.
func (s *Set) Add(fieldID string) error {
	if s.indexOf(fieldID) >= 0 {
		return fmt.Errorf("%w: %q", model.ErrDuplicateColumn, fieldID)
	}
	if _, err := s.catalog.Resolve(fieldID); err != nil {
		return err
	}
	s.cols = append(s.cols, model.SelectedColumn{FieldID: fieldID, Aggregation: model.AggNone})
	s.notify()
	return nil
}

// Remove drops fieldID from the selection. It reports whether anything changed.
func (s *Set) Remove(fieldID string) bool {
	idx := s.indexOf(fieldID)
	if idx < 0 {
		return false
	}
	s.cols = append(s.cols[:idx], s.cols[idx+1:]...)
	s.notify()
	return true
}

// SetAggregation changes the aggregation of a selected column.
func (s *Set) SetAggregation(fieldID string, agg model.Aggregation) error {
	idx := s.indexOf(fieldID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", model.ErrColumnNotFound, fieldID)
	}
	if !agg.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidAggregation, agg)
	}
	if err := s.checkAggregation(fieldID, agg); err != nil {
		return err
	}
	s.cols[idx].Aggregation = agg
	s.notify()
	return nil
}

// Restore replaces the selection with cols, as loaded from a saved report.
// Fields missing from the catalog are kept so validation can report them.
func (s *Set) Restore(cols []model.SelectedColumn) error {
	seen := make(map[string]struct{}, len(cols))
	out := make([]model.SelectedColumn, 0, len(cols))
	for _, col := range cols {
		if _, ok := seen[col.FieldID]; ok {
			return fmt.Errorf("%w: %q", model.ErrDuplicateColumn, col.FieldID)
		}
		seen[col.FieldID] = struct{}{}
		if col.Aggregation == "" {
			col.Aggregation = model.AggNone
		}
		if !col.Aggregation.Valid() {
			return fmt.Errorf("%w: %q", model.ErrInvalidAggregation, col.Aggregation)
		}
		if s.catalog.Has(col.FieldID) {
			if err := s.checkAggregation(col.FieldID, col.Aggregation); err != nil {
				return err
			}
		}
		out = append(out, col)
	}
	s.cols = out
	s.notify()
	return nil
}

func (s *Set) checkAggregation(fieldID string, agg model.Aggregation) error {
	if agg == model.AggNone {
		return nil
	}
	field, err := s.catalog.Resolve(fieldID)
	if err != nil {
		return err
	}
	if field.Type != model.TypeNumber {
		return fmt.Errorf("%w: %s is %s", model.ErrAggregationNotApplicable, fieldID, field.Type)
	}
	return nil
}

// List returns the selection in output order.
func (s *Set) List() []model.SelectedColumn {
	return append([]model.SelectedColumn(nil), s.cols...)
}

// Len returns the number of selected columns.
func (s *Set) Len() int {
	return len(s.cols)
}

// Contains reports whether fieldID is selected.
func (s *Set) Contains(fieldID string) bool {
	return s.indexOf(fieldID) >= 0
}

// Get returns the selected column for fieldID.
func (s *Set) Get(fieldID string) (model.SelectedColumn, bool) {
	idx := s.indexOf(fieldID)
	if idx < 0 {
		return model.SelectedColumn{}, false
	}
	return s.cols[idx], true
}

func (s *Set) indexOf(fieldID string) int {
	for i, col := range s.cols {
		if col.FieldID == fieldID {
			return i
		}
	}
	return -1
}
