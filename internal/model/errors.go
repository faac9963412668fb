package model

import "errors"

// Column selection errors.
var (
	ErrUnknownField             = errors.New("unknown field")
	ErrDuplicateColumn          = errors.New("column already selected")
	ErrColumnNotFound           = errors.New("column not selected")
	ErrAggregationNotApplicable = errors.New("aggregation not applicable to field type")
	ErrInvalidAggregation       = errors.New("invalid aggregation")
)

// Filter chain errors.
var (
	ErrInvalidOperatorForType     = errors.New("operator not valid for field type")
	ErrEmptyValue                 = errors.New("filter value is empty")
	ErrPredicateNotFound          = errors.New("predicate not found")
	ErrCombinatorOnFirstPredicate = errors.New("first predicate has no combinator")
	ErrInvalidCombinator          = errors.New("invalid combinator")
	ErrInvalidFilterValue         = errors.New("invalid filter value")
)

// Parameter errors.
var (
	ErrEmptyName                = errors.New("parameter name is empty")
	ErrDuplicateParameter       = errors.New("parameter name already used")
	ErrParameterNotFound        = errors.New("parameter not found")
	ErrInvalidParameterType     = errors.New("invalid parameter type")
	ErrEmptyOptions             = errors.New("select parameter needs at least one option")
	ErrOptionsNotApplicable     = errors.New("options only apply to select parameters")
	ErrMissingRequiredParameter = errors.New("missing required parameter")
	ErrInvalidParameterValue    = errors.New("invalid parameter value")
)

// Configuration errors.
var (
	ErrValidationFailed = errors.New("report validation failed")
)

// Collaborator errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrReportNotFound    = errors.New("report not found")
	ErrReportExists      = errors.New("report already exists")
)
