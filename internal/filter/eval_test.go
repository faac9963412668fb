package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/reportcraft/internal/catalog"
	"github.com/verte-zerg/reportcraft/internal/model"
)

func boolChain(values ...any) ([]model.Predicate, map[string]bool) {
	preds := make([]model.Predicate, 0, len(values))
	truth := map[string]bool{}
	comb := model.CombinatorNone
	for _, v := range values {
		switch x := v.(type) {
		case model.Combinator:
			comb = x
		case bool:
			id := string(rune('a' + len(preds)))
			preds = append(preds, model.Predicate{ID: id, Combinator: comb})
			truth[id] = x
		}
	}
	return preds, truth
}

func TestEvaluateIsLeftToRight(t *testing.T) {
	// [P1, AND P2, OR P3] with P1=false, P2=false, P3=true.
	// Sequential: (false AND false) OR true = true.
	// Precedence would give false AND (false OR true) = false.
	preds, truth := boolChain(false, model.CombinatorAnd, false, model.CombinatorOr, true)
	got := Evaluate(preds, func(p model.Predicate) bool { return truth[p.ID] })
	assert.True(t, got)

	// [P1, OR P2, AND P3] with P1=true, P2=false, P3=false.
	// Sequential: (true OR false) AND false = false.
	preds, truth = boolChain(true, model.CombinatorOr, false, model.CombinatorAnd, false)
	got = Evaluate(preds, func(p model.Predicate) bool { return truth[p.ID] })
	assert.False(t, got)
}

func TestEvaluateEmptyAndSingle(t *testing.T) {
	assert.True(t, Evaluate(nil, func(model.Predicate) bool { return false }))
	preds, truth := boolChain(false)
	assert.False(t, Evaluate(preds, func(p model.Predicate) bool { return truth[p.ID] }))
}

func TestEvaluateVisitsEveryPredicate(t *testing.T) {
	preds, _ := boolChain(true, model.CombinatorOr, true, model.CombinatorOr, true)
	visited := 0
	Evaluate(preds, func(model.Predicate) bool {
		visited++
		return true
	})
	assert.Equal(t, 3, visited)
}

func TestEvaluateErrReportsFirstError(t *testing.T) {
	preds, _ := boolChain(true, model.CombinatorOr, true, model.CombinatorAnd, true)
	boom := errors.New("boom")
	_, err := EvaluateErr(preds, func(p model.Predicate) (bool, error) {
		if p.ID == "b" {
			return false, boom
		}
		return true, nil
	})
	require.ErrorIs(t, err, boom)
}

func TestDescribeGroupsLeftToRight(t *testing.T) {
	c := newTestChain()
	cat := catalog.Default()
	_, _ = c.Append("region", model.OpEquals, "Europe")
	_, _ = c.Append("sales_amount", model.OpGreaterThan, "1000")
	p3, _ := c.Append("email", model.OpEndsWith, "@example.com")
	require.NoError(t, c.SetCombinator(p3.ID, model.CombinatorOr))

	got := Describe(c.List(), cat.DisplayName)
	want := `(Region equals "Europe" AND Sales Amount greater than "1000") OR Email ends with "@example.com"`
	assert.Equal(t, want, got)
	assert.Empty(t, Describe(nil, cat.DisplayName))
}
