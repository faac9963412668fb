package report

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/reportcraft/internal/catalog"
	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/params"
)

func counter(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func buildSample(t *testing.T) *Configuration {
	t.Helper()
	c := NewWithOptions(catalog.Default(), "Sales Performance Q4 2024", Options{
		PredicateIDs: counter("f"),
		ParameterIDs: counter("p"),
	})
	require.NoError(t, c.Columns().Add("user_name"))
	require.NoError(t, c.Columns().Add("sales_amount"))
	require.NoError(t, c.Columns().Add("region"))
	require.NoError(t, c.Columns().SetAggregation("sales_amount", model.AggSum))

	_, err := c.Filters().Append("region", model.OpEquals, "Europe")
	require.NoError(t, err)
	p2, err := c.Filters().Append("sales_amount", model.OpGreaterThan, "1000")
	require.NoError(t, err)
	_, err = c.Filters().Append("registration_date", model.OpAfter, "2023-01-01")
	require.NoError(t, err)
	require.NoError(t, c.Filters().SetCombinator(p2.ID, model.CombinatorOr))

	_, err = c.Parameters().Add("Start", model.ParamDate, true, "")
	require.NoError(t, err)
	tier, err := c.Parameters().Add("Tier", model.ParamSelect, false, "Gold")
	require.NoError(t, err)
	_, err = c.Parameters().Update(tier.ID, params.Patch{Options: []string{"Gold", "Silver", "Bronze"}})
	require.NoError(t, err)
	return c
}

func TestValidate(t *testing.T) {
	c := New(catalog.Default(), "  ")
	res := c.Validate()
	require.False(t, res.OK())
	codes := []string{}
	for _, p := range res.Problems {
		codes = append(codes, p.Code)
	}
	assert.Equal(t, []string{ProblemEmptyName, ProblemNoColumns}, codes)
	require.ErrorIs(t, res.Err(), model.ErrValidationFailed)

	assert.True(t, buildSample(t).Validate().OK())
	assert.NoError(t, buildSample(t).Validate().Err())
}

func TestValidateReportsCatalogDrift(t *testing.T) {
	doc := buildSample(t).Document()
	narrow := catalog.MustNew([]model.Field{
		{ID: "user_name", Name: "User Name", Type: model.TypeText},
		{ID: "registration_date", Name: "Registration Date", Type: model.TypeDate},
	})
	c, err := FromDocument(narrow, doc)
	require.NoError(t, err)

	res := c.Validate()
	codes := map[string]int{}
	for _, p := range res.Problems {
		codes[p.Code]++
	}
	assert.Equal(t, map[string]int{ProblemUnknownColumn: 2, ProblemUnknownFilterRef: 2}, codes)
	require.ErrorIs(t, res.Err(), model.ErrValidationFailed)
}

func TestJSONRoundTrip(t *testing.T) {
	c := buildSample(t)
	data, err := json.Marshal(c)
	require.NoError(t, err)

	back, err := DecodeJSON(catalog.Default(), data)
	require.NoError(t, err)
	assert.Equal(t, c.Document(), back.Document())

	doc := back.Document()
	assert.Equal(t, []ColumnDocument{
		{FieldID: "user_name", Aggregation: "none"},
		{FieldID: "sales_amount", Aggregation: "sum"},
		{FieldID: "region", Aggregation: "none"},
	}, doc.Columns)
	assert.Equal(t, "", doc.Filters[0].Combinator)
	assert.Equal(t, "OR", doc.Filters[1].Combinator)
	assert.Equal(t, "AND", doc.Filters[2].Combinator)
	assert.Equal(t, []string{"Gold", "Silver", "Bronze"}, doc.Parameters[1].Options)
	assert.Nil(t, doc.Parameters[0].Options)
}

func TestJSONShape(t *testing.T) {
	data, err := json.Marshal(buildSample(t))
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.ElementsMatch(t, []string{"name", "columns", "filters", "parameters"}, keys(raw))

	filters := raw["filters"].([]any)
	first := filters[0].(map[string]any)
	_, hasComb := first["combinator"]
	assert.False(t, hasComb)
	assert.Equal(t, "region", first["fieldId"])

	ps := raw["parameters"].([]any)
	start := ps[0].(map[string]any)
	_, hasOptions := start["options"]
	assert.False(t, hasOptions)
	assert.Equal(t, true, start["required"])
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestFromDocumentWithoutIDs(t *testing.T) {
	doc := Document{
		Name:    "Imported",
		Columns: []ColumnDocument{{FieldID: "revenue", Aggregation: "AVG"}},
		Filters: []FilterDocument{
			{FieldID: "region", Operator: "contains", Value: "Asia"},
			{FieldID: "revenue", Operator: "less_than", Value: "10", Combinator: "or"},
		},
		Parameters: []ParameterDocument{{Name: "Region", Type: "TEXT"}},
	}
	c, err := FromDocument(catalog.Default(), doc)
	require.NoError(t, err)
	list := c.Filters().List()
	require.Len(t, list, 2)
	assert.NotEmpty(t, list[0].ID)
	assert.NotEqual(t, list[0].ID, list[1].ID)
	assert.Equal(t, model.CombinatorOr, list[1].Combinator)
	col, _ := c.Columns().Get("revenue")
	assert.Equal(t, model.AggAvg, col.Aggregation)
}

func TestFromDocumentRejectsBrokenInvariants(t *testing.T) {
	cases := map[string]Document{
		"head combinator": {Name: "x", Filters: []FilterDocument{
			{FieldID: "region", Operator: "equals", Value: "a", Combinator: "AND"},
		}},
		"missing combinator": {Name: "x", Filters: []FilterDocument{
			{FieldID: "region", Operator: "equals", Value: "a"},
			{FieldID: "region", Operator: "equals", Value: "b"},
		}},
		"bad combinator": {Name: "x", Filters: []FilterDocument{
			{FieldID: "region", Operator: "equals", Value: "a"},
			{FieldID: "region", Operator: "equals", Value: "b", Combinator: "XOR"},
		}},
		"text aggregation": {Name: "x", Columns: []ColumnDocument{{FieldID: "region", Aggregation: "sum"}}},
		"duplicate column": {Name: "x", Columns: []ColumnDocument{{FieldID: "region"}, {FieldID: "region"}}},
		"select without options": {Name: "x", Parameters: []ParameterDocument{{Name: "T", Type: "select"}}},
		"blank parameter": {Name: "x", Parameters: []ParameterDocument{{Name: "", Type: "text"}}},
	}
	for name, doc := range cases {
		_, err := FromDocument(catalog.Default(), doc)
		assert.Error(t, err, name)
	}
}

func TestCheckRunnable(t *testing.T) {
	c := buildSample(t)
	_, err := c.CheckRunnable(nil)
	require.ErrorIs(t, err, model.ErrMissingRequiredParameter)

	values, err := c.CheckRunnable(map[string]string{"Start": "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "Gold", values["Tier"])

	empty := New(catalog.Default(), "Empty")
	_, err = empty.CheckRunnable(nil)
	require.ErrorIs(t, err, model.ErrValidationFailed)
}

func TestOnChangeCoversAllSets(t *testing.T) {
	c := New(catalog.Default(), "x")
	calls := 0
	c.OnChange(func() { calls++ })
	require.NoError(t, c.Columns().Add("region"))
	_, err := c.Filters().Append("region", model.OpEquals, "a")
	require.NoError(t, err)
	_, err = c.Parameters().Add("A", model.ParamText, false, "")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}
