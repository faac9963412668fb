package report

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/reportcraft/internal/model"
)

// Problem is one validation failure.
type Problem struct {
	Code    string
	Message string
}

// Problem codes.
const (
	ProblemEmptyName        = "empty_name"
	ProblemNoColumns        = "no_columns"
	ProblemUnknownColumn    = "unknown_column"
	ProblemUnknownFilterRef = "unknown_filter_field"
)

// ValidationResult lists every problem found by Validate.
type ValidationResult struct {
	Problems []Problem
}

// OK reports whether no problems were found.
func (r ValidationResult) OK() bool {
	return len(r.Problems) == 0
}

// Err returns nil when OK, or an error wrapping model.ErrValidationFailed.
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	msgs := make([]string, len(r.Problems))
	for i, p := range r.Problems {
		msgs[i] = p.Message
	}
	return fmt.Errorf("%w: %s", model.ErrValidationFailed, strings.Join(msgs, "; "))
}

// Validate checks the configuration is complete enough to save or run.
// A configuration with zero columns may exist but does not validate.
func (c *Configuration) Validate() ValidationResult {
	var res ValidationResult
	add := func(code, format string, args ...any) {
		res.Problems = append(res.Problems, Problem{Code: code, Message: fmt.Sprintf(format, args...)})
	}
	if c.name == "" {
		add(ProblemEmptyName, "report name is empty")
	}
	if c.columns.Len() == 0 {
		add(ProblemNoColumns, "no columns selected")
	}
	for _, col := range c.columns.List() {
		if !c.catalog.Has(col.FieldID) {
			add(ProblemUnknownColumn, "column %q is not in the catalog", col.FieldID)
		}
	}
	for i, p := range c.filters.List() {
		if !c.catalog.Has(p.FieldID) {
			add(ProblemUnknownFilterRef, "filter %d references unknown field %q", i+1, p.FieldID)
		}
	}
	return res
}
