package filter

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/reportcraft/internal/catalog"
	"github.com/verte-zerg/reportcraft/internal/model"
)

func newTestChain() *Chain {
	n := 0
	return NewChain(catalog.Default(), WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}))
}

func assertCombinatorInvariant(t *testing.T, c *Chain) {
	t.Helper()
	for i, p := range c.List() {
		if i == 0 {
			require.Equal(t, model.CombinatorNone, p.Combinator, "head combinator")
			continue
		}
		require.Contains(t, []model.Combinator{model.CombinatorAnd, model.CombinatorOr}, p.Combinator, "predicate %d", i)
	}
}

func TestOperatorsFor(t *testing.T) {
	c := newTestChain()
	ops, err := c.OperatorsFor("region")
	require.NoError(t, err)
	assert.Equal(t, []model.Operator{model.OpEquals, model.OpContains, model.OpStartsWith, model.OpEndsWith}, ops)

	ops, err = c.OperatorsFor("sales_amount")
	require.NoError(t, err)
	assert.Equal(t, []model.Operator{model.OpEquals, model.OpGreaterThan, model.OpLessThan, model.OpBetween}, ops)

	ops, err = c.OperatorsFor("last_login")
	require.NoError(t, err)
	assert.Equal(t, []model.Operator{model.OpEquals, model.OpAfter, model.OpBefore, model.OpBetween}, ops)

	_, err = c.OperatorsFor("nope")
	require.ErrorIs(t, err, model.ErrUnknownField)
}

func TestAppendRejectsIllegalOperator(t *testing.T) {
	c := newTestChain()
	cases := []struct {
		field string
		op    model.Operator
	}{
		{"region", model.OpGreaterThan},
		{"region", model.OpBetween},
		{"sales_amount", model.OpContains},
		{"sales_amount", model.OpAfter},
		{"registration_date", model.OpStartsWith},
		{"registration_date", model.OpLessThan},
		{"region", "like"},
	}
	for _, tc := range cases {
		_, err := c.Append(tc.field, tc.op, "x")
		assert.ErrorIs(t, err, model.ErrInvalidOperatorForType, "%s %s", tc.field, tc.op)
	}
	assert.Zero(t, c.Len())
}

func TestAppendLegalBecomesLast(t *testing.T) {
	c := newTestChain()
	first, err := c.Append("region", model.OpEquals, "Europe")
	require.NoError(t, err)
	assert.Equal(t, model.CombinatorNone, first.Combinator)

	second, err := c.Append("sales_amount", model.OpGreaterThan, "1000")
	require.NoError(t, err)
	assert.Equal(t, model.CombinatorAnd, second.Combinator)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, second, list[len(list)-1])
}

func TestAppendErrors(t *testing.T) {
	c := newTestChain()
	_, err := c.Append("nope", model.OpEquals, "x")
	require.ErrorIs(t, err, model.ErrUnknownField)
	_, err = c.Append("region", model.OpEquals, "   ")
	require.ErrorIs(t, err, model.ErrEmptyValue)
	assert.Zero(t, c.Len())
}

func TestSetCombinator(t *testing.T) {
	c := newTestChain()
	p1, _ := c.Append("region", model.OpEquals, "Europe")
	p2, _ := c.Append("region", model.OpEquals, "Asia Pacific")

	require.ErrorIs(t, c.SetCombinator(p1.ID, model.CombinatorOr), model.ErrCombinatorOnFirstPredicate)
	require.ErrorIs(t, c.SetCombinator("missing", model.CombinatorOr), model.ErrPredicateNotFound)
	require.ErrorIs(t, c.SetCombinator(p2.ID, model.CombinatorNone), model.ErrInvalidCombinator)

	require.NoError(t, c.SetCombinator(p2.ID, model.CombinatorOr))
	got, ok := c.Get(p2.ID)
	require.True(t, ok)
	assert.Equal(t, model.CombinatorOr, got.Combinator)
	assertCombinatorInvariant(t, c)
}

func TestRemoveHeadClearsNewHead(t *testing.T) {
	for _, prior := range []model.Combinator{model.CombinatorAnd, model.CombinatorOr} {
		c := newTestChain()
		p1, _ := c.Append("region", model.OpEquals, "Europe")
		p2, _ := c.Append("email", model.OpContains, "@example.com")
		p3, _ := c.Append("sales_amount", model.OpLessThan, "20000")
		require.NoError(t, c.SetCombinator(p2.ID, prior))
		require.NoError(t, c.SetCombinator(p3.ID, model.CombinatorOr))

		require.NoError(t, c.Remove(p1.ID))
		list := c.List()
		require.Len(t, list, 2)
		assert.Equal(t, p2.ID, list[0].ID)
		assert.Equal(t, model.CombinatorNone, list[0].Combinator)
		assert.Equal(t, model.CombinatorOr, list[1].Combinator)
	}
}

func TestRemoveMiddleLeavesCombinators(t *testing.T) {
	c := newTestChain()
	_, _ = c.Append("region", model.OpEquals, "Europe")
	p2, _ := c.Append("email", model.OpContains, "@")
	p3, _ := c.Append("revenue", model.OpGreaterThan, "1")
	require.NoError(t, c.SetCombinator(p3.ID, model.CombinatorOr))

	require.NoError(t, c.Remove(p2.ID))
	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, model.CombinatorOr, list[1].Combinator)
	require.ErrorIs(t, c.Remove(p2.ID), model.ErrPredicateNotFound)
}

func TestCombinatorInvariantUnderRandomEdits(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	fields := []string{"region", "email", "sales_amount", "registration_date"}
	ops := map[string]model.Operator{
		"region":            model.OpContains,
		"email":             model.OpEndsWith,
		"sales_amount":      model.OpBetween,
		"registration_date": model.OpAfter,
	}
	for round := 0; round < 50; round++ {
		c := newTestChain()
		for step := 0; step < 40; step++ {
			list := c.List()
			switch action := rnd.Intn(3); {
			case action == 0 || len(list) == 0:
				f := fields[rnd.Intn(len(fields))]
				_, err := c.Append(f, ops[f], "v")
				require.NoError(t, err)
			case action == 1:
				require.NoError(t, c.Remove(list[rnd.Intn(len(list))].ID))
			default:
				p := list[rnd.Intn(len(list))]
				comb := model.CombinatorAnd
				if rnd.Intn(2) == 0 {
					comb = model.CombinatorOr
				}
				err := c.SetCombinator(p.ID, comb)
				if p.ID == list[0].ID {
					require.ErrorIs(t, err, model.ErrCombinatorOnFirstPredicate)
				} else {
					require.NoError(t, err)
				}
			}
			assertCombinatorInvariant(t, c)
		}
	}
}

func TestRestoreChecksInvariants(t *testing.T) {
	c := newTestChain()
	err := c.Restore([]model.Predicate{
		{ID: "a", FieldID: "region", Operator: model.OpEquals, Value: "x", Combinator: model.CombinatorAnd},
	})
	require.ErrorIs(t, err, model.ErrCombinatorOnFirstPredicate)

	err = c.Restore([]model.Predicate{
		{ID: "a", FieldID: "region", Operator: model.OpEquals, Value: "x"},
		{ID: "b", FieldID: "region", Operator: model.OpEquals, Value: "y"},
	})
	require.ErrorIs(t, err, model.ErrInvalidCombinator)

	err = c.Restore([]model.Predicate{
		{ID: "a", FieldID: "region", Operator: model.OpAfter, Value: "x"},
	})
	require.ErrorIs(t, err, model.ErrInvalidOperatorForType)

	require.NoError(t, c.Restore([]model.Predicate{
		{FieldID: "gone", Operator: "whatever", Value: "x"},
		{ID: "b", FieldID: "region", Operator: model.OpEquals, Value: "y", Combinator: model.CombinatorOr},
	}))
	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "p1", list[0].ID)
}

func TestObserversNotified(t *testing.T) {
	c := newTestChain()
	calls := 0
	c.OnChange(func() { calls++ })
	p1, _ := c.Append("region", model.OpEquals, "x")
	p2, _ := c.Append("region", model.OpEquals, "y")
	_, _ = c.Append("region", model.OpAfter, "y")
	_ = c.SetCombinator(p2.ID, model.CombinatorOr)
	_ = c.SetCombinator(p1.ID, model.CombinatorOr)
	_ = c.Remove(p1.ID)
	assert.Equal(t, 4, calls)
}
