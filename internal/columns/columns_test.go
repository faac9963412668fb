package columns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/reportcraft/internal/catalog"
	"github.com/verte-zerg/reportcraft/internal/model"
)

func fieldIDs(cols []model.SelectedColumn) []string {
	ids := make([]string, len(cols))
	for i, c := range cols {
		ids[i] = c.FieldID
	}
	return ids
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	s := NewSet(catalog.Default())
	order := []string{"region", "sales_amount", "email", "last_login"}
	for _, id := range order {
		require.NoError(t, s.Add(id))
	}
	assert.Equal(t, order, fieldIDs(s.List()))
	for _, c := range s.List() {
		assert.Equal(t, model.AggNone, c.Aggregation)
	}
}

func TestAddDuplicateLeavesSetUnchanged(t *testing.T) {
	s := NewSet(catalog.Default())
	require.NoError(t, s.Add("region"))
	require.NoError(t, s.Add("email"))
	before := s.List()

	for i := 0; i < 3; i++ {
		err := s.Add("region")
		require.ErrorIs(t, err, model.ErrDuplicateColumn)
		assert.Equal(t, before, s.List())
	}
}

func TestAddUnknownField(t *testing.T) {
	s := NewSet(catalog.Default())
	require.ErrorIs(t, s.Add("missing"), model.ErrUnknownField)
	assert.Zero(t, s.Len())
}

func TestRemovePreservesOrder(t *testing.T) {
	s := NewSet(catalog.Default())
	for _, id := range []string{"region", "email", "revenue"} {
		require.NoError(t, s.Add(id))
	}
	assert.False(t, s.Remove("user_name"))
	assert.True(t, s.Remove("email"))
	assert.Equal(t, []string{"region", "revenue"}, fieldIDs(s.List()))
}

func TestSetAggregationScenario(t *testing.T) {
	s := NewSet(catalog.Default())
	require.NoError(t, s.Add("sales_amount"))
	require.NoError(t, s.Add("region"))
	require.NoError(t, s.SetAggregation("sales_amount", model.AggSum))

	err := s.SetAggregation("region", model.AggSum)
	require.ErrorIs(t, err, model.ErrAggregationNotApplicable)

	col, ok := s.Get("sales_amount")
	require.True(t, ok)
	assert.Equal(t, model.AggSum, col.Aggregation)
	col, _ = s.Get("region")
	assert.Equal(t, model.AggNone, col.Aggregation)
}

func TestSetAggregationRejectsNonNumberFields(t *testing.T) {
	s := NewSet(catalog.Default())
	require.NoError(t, s.Add("region"))
	require.NoError(t, s.Add("last_login"))
	for _, id := range []string{"region", "last_login"} {
		for _, agg := range model.Aggregations {
			err := s.SetAggregation(id, agg)
			if agg == model.AggNone {
				assert.NoError(t, err)
				continue
			}
			assert.ErrorIs(t, err, model.ErrAggregationNotApplicable, "%s %s", id, agg)
		}
	}
}

func TestSetAggregationErrors(t *testing.T) {
	s := NewSet(catalog.Default())
	require.ErrorIs(t, s.SetAggregation("revenue", model.AggSum), model.ErrColumnNotFound)
	require.NoError(t, s.Add("revenue"))
	require.ErrorIs(t, s.SetAggregation("revenue", "median"), model.ErrInvalidAggregation)
}

func TestObserversNotifiedOnlyOnMutation(t *testing.T) {
	s := NewSet(catalog.Default())
	calls := 0
	s.OnChange(func() { calls++ })

	require.NoError(t, s.Add("revenue"))
	_ = s.Add("revenue")
	require.NoError(t, s.SetAggregation("revenue", model.AggMax))
	_ = s.SetAggregation("revenue", "bogus")
	s.Remove("missing")
	s.Remove("revenue")
	assert.Equal(t, 3, calls)
}

func TestRestoreToleratesDriftButChecksInvariants(t *testing.T) {
	s := NewSet(catalog.Default())
	require.NoError(t, s.Restore([]model.SelectedColumn{
		{FieldID: "gone", Aggregation: model.AggSum},
		{FieldID: "revenue", Aggregation: model.AggAvg},
		{FieldID: "region"},
	}))
	assert.Equal(t, []string{"gone", "revenue", "region"}, fieldIDs(s.List()))
	col, _ := s.Get("region")
	assert.Equal(t, model.AggNone, col.Aggregation)

	err := s.Restore([]model.SelectedColumn{{FieldID: "region", Aggregation: model.AggSum}})
	require.ErrorIs(t, err, model.ErrAggregationNotApplicable)
	err = s.Restore([]model.SelectedColumn{{FieldID: "region"}, {FieldID: "region"}})
	require.ErrorIs(t, err, model.ErrDuplicateColumn)
	assert.Equal(t, 3, s.Len())
}
