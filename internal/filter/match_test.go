package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/reportcraft/internal/model"
)

var (
	textField   = model.Field{ID: "region", Name: "Region", Type: model.TypeText}
	numberField = model.Field{ID: "sales_amount", Name: "Sales Amount", Type: model.TypeNumber}
	dateField   = model.Field{ID: "registration_date", Name: "Registration Date", Type: model.TypeDate}
)

func pred(op model.Operator, value string) model.Predicate {
	return model.Predicate{ID: "p", Operator: op, Value: value}
}

func TestMatchText(t *testing.T) {
	cases := []struct {
		op    model.Operator
		value string
		in    any
		want  bool
	}{
		{model.OpEquals, "europe", "Europe", true},
		{model.OpEquals, "Europe", "Europe West", false},
		{model.OpContains, "america", "North America", true},
		{model.OpStartsWith, "north", "North America", true},
		{model.OpEndsWith, "pacific", "Asia Pacific", true},
		{model.OpEndsWith, "asia", "Asia Pacific", false},
		{model.OpEquals, "x", nil, false},
	}
	for _, tc := range cases {
		got, err := Match(textField, pred(tc.op, tc.value), tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %q on %v", tc.op, tc.value, tc.in)
	}
}

func TestMatchNumber(t *testing.T) {
	cases := []struct {
		op    model.Operator
		value string
		in    any
		want  bool
	}{
		{model.OpEquals, "15420", 15420, true},
		{model.OpEquals, "15,420", int64(15420), true},
		{model.OpGreaterThan, "20000", 28340, true},
		{model.OpGreaterThan, "20000", 19780.0, false},
		{model.OpLessThan, "20000", "19780", true},
		{model.OpBetween, "15000,20000", 19780, true},
		{model.OpBetween, "15000..20000", 20000, true},
		{model.OpBetween, "15000,20000", 22150, false},
		{model.OpBetween, "15,000..20,000", 19780, true},
		{model.OpBetween, "1,000..2,000", 500, false},
		{model.OpEquals, "7", uint64(7), true},
		{model.OpEquals, "7", uint8(7), true},
		{model.OpEquals, "1", "not a number", false},
	}
	for _, tc := range cases {
		got, err := Match(numberField, pred(tc.op, tc.value), tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %q on %v", tc.op, tc.value, tc.in)
	}
}

func TestMatchDate(t *testing.T) {
	cases := []struct {
		op    model.Operator
		value string
		in    any
		want  bool
	}{
		{model.OpEquals, "2024-01-15", "2024-01-15", true},
		{model.OpAfter, "2024-01-01", "2024-01-15", true},
		{model.OpAfter, "2024-01-15", "2024-01-15", false},
		{model.OpBefore, "2024-01-01", "2023-12-08", true},
		{model.OpBetween, "2023-12-01,2024-01-31", "2024-01-31", true},
		{model.OpBetween, "2023-12-01,2024-01-31", "2024-02-03", false},
	}
	for _, tc := range cases {
		got, err := Match(dateField, pred(tc.op, tc.value), tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %q on %v", tc.op, tc.value, tc.in)
	}
}

func TestMatchInvalidValues(t *testing.T) {
	_, err := Match(numberField, pred(model.OpGreaterThan, "lots"), 1)
	require.ErrorIs(t, err, model.ErrInvalidFilterValue)
	_, err = Match(numberField, pred(model.OpBetween, "10"), 1)
	require.ErrorIs(t, err, model.ErrInvalidFilterValue)
	_, err = Match(numberField, pred(model.OpBetween, "1,000,2,000"), 1500)
	require.ErrorIs(t, err, model.ErrInvalidFilterValue)
	_, err = Match(numberField, pred(model.OpBetween, "1,000,2000"), 500)
	require.ErrorIs(t, err, model.ErrInvalidFilterValue)
	_, err = Match(dateField, pred(model.OpAfter, "01/02/2024"), "2024-01-15")
	require.ErrorIs(t, err, model.ErrInvalidFilterValue)
	_, err = Match(textField, pred(model.OpAfter, "x"), "y")
	require.ErrorIs(t, err, model.ErrInvalidOperatorForType)
}
