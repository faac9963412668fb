// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
)

// SemanticType classifies a schema field.
type SemanticType string

const (
	TypeNumber SemanticType = "number"
	TypeText   SemanticType = "text"
	TypeDate   SemanticType = "date"
)

// ParseSemanticType parses a semantic type name, case-insensitively.
func ParseSemanticType(s string) (SemanticType, error) {
	t := SemanticType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case TypeNumber, TypeText, TypeDate:
		return t, nil
	}
	return "", fmt.Errorf("unknown semantic type %q", s)
}

// Field is a selectable schema field.
type Field struct {
	ID   string
	Name string
	Type SemanticType
}

// Aggregation is the function applied to a selected column.
type Aggregation string

const (
	AggNone  Aggregation = "none"
	AggSum   Aggregation = "sum"
	AggAvg   Aggregation = "avg"
	AggCount Aggregation = "count"
	AggMax   Aggregation = "max"
	AggMin   Aggregation = "min"
)

// Aggregations lists every aggregation in display order.
var Aggregations = []Aggregation{AggNone, AggSum, AggAvg, AggCount, AggMax, AggMin}

// ParseAggregation parses an aggregation name. Blank means none.
func ParseAggregation(s string) (Aggregation, error) {
	a := Aggregation(strings.ToLower(strings.TrimSpace(s)))
	if a == "" {
		return AggNone, nil
	}
	if !a.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAggregation, s)
	}
	return a, nil
}

// Valid reports whether a is one of the known aggregations.
func (a Aggregation) Valid() bool {
	for _, known := range Aggregations {
		if a == known {
			return true
		}
	}
	return false
}

// Label returns the uppercase display label, or "" for none.
func (a Aggregation) Label() string {
	if a == AggNone || a == "" {
		return ""
	}
	return strings.ToUpper(string(a))
}

// Operator is a filter comparison operator.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpContains    Operator = "contains"
	OpStartsWith  Operator = "starts_with"
	OpEndsWith    Operator = "ends_with"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpBetween     Operator = "between"
	OpAfter       Operator = "after"
	OpBefore      Operator = "before"
)

// Combinator joins a predicate to the chain before it.
type Combinator string

const (
	CombinatorNone Combinator = ""
	CombinatorAnd  Combinator = "AND"
	CombinatorOr   Combinator = "OR"
)

// ParseCombinator parses AND or OR, case-insensitively.
func ParseCombinator(s string) (Combinator, error) {
	c := Combinator(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CombinatorAnd, CombinatorOr:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCombinator, s)
}

// ParamType is the value type of a run-time parameter.
type ParamType string

const (
	ParamText   ParamType = "text"
	ParamNumber ParamType = "number"
	ParamDate   ParamType = "date"
	ParamSelect ParamType = "select"
)

// ParseParamType parses a parameter type name, case-insensitively.
func ParseParamType(s string) (ParamType, error) {
	t := ParamType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case ParamText, ParamNumber, ParamDate, ParamSelect:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidParameterType, s)
}

// SelectedColumn is a chosen field with its aggregation.
type SelectedColumn struct {
	FieldID     string
	Aggregation Aggregation
}

// Predicate is one element of a filter chain.
type Predicate struct {
	ID         string
	FieldID    string
	Operator   Operator
	Value      string
	Combinator Combinator
}

// Parameter is a named placeholder supplied at run time.
type Parameter struct {
	ID           string
	Name         string
	Type         ParamType
	Required     bool
	DefaultValue string
	Options      []string
}

// Clone returns a copy that shares no slices with p.
func (p Parameter) Clone() Parameter {
	if p.Options != nil {
		p.Options = append([]string(nil), p.Options...)
	}
	return p
}

// Record is one row of a row source keyed by field id.
type Record map[string]any

// DateLayout is the layout used for date values.
const DateLayout = "2006-01-02"

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// NumberOf converts a Go numeric value to float64. Strings are not parsed.
func NumberOf(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
