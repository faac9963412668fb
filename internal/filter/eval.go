package filter

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/reportcraft/internal/model"
)

// Evaluate folds test over preds strictly left to right:
// (((p1) c1 p2) c2 p3). AND and OR bind equally. An empty chain is true.
func Evaluate(preds []model.Predicate, test func(model.Predicate) bool) bool {
	if len(preds) == 0 {
		return true
	}
	acc := test(preds[0])
	for _, p := range preds[1:] {
		v := test(p)
		if p.Combinator == model.CombinatorOr {
			acc = acc || v
		} else {
			acc = acc && v
		}
	}
	return acc
}

// EvaluateErr is Evaluate for tests that can fail. Every predicate is
// checked, so an invalid value is reported even when the result is decided.
func EvaluateErr(preds []model.Predicate, test func(model.Predicate) (bool, error)) (bool, error) {
	var firstErr error
	result := Evaluate(preds, func(p model.Predicate) bool {
		ok, err := test(p)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return ok
	})
	if firstErr != nil {
		return false, firstErr
	}
	return result, nil
}

// Evaluate applies test to the chain's predicates.
func (c *Chain) Evaluate(test func(model.Predicate) bool) bool {
	return Evaluate(c.preds, test)
}

// Describe renders preds with explicit left-nested grouping.
// nameOf maps a field id to its display name.
func Describe(preds []model.Predicate, nameOf func(string) string) string {
	if len(preds) == 0 {
		return ""
	}
	acc := describePredicate(preds[0], nameOf)
	for i, p := range preds[1:] {
		if i > 0 {
			acc = "(" + acc + ")"
		}
		comb := p.Combinator
		if comb == model.CombinatorNone {
			comb = model.CombinatorAnd
		}
		acc = fmt.Sprintf("%s %s %s", acc, comb, describePredicate(p, nameOf))
	}
	return acc
}

func describePredicate(p model.Predicate, nameOf func(string) string) string {
	name := p.FieldID
	if nameOf != nil {
		name = nameOf(p.FieldID)
	}
	return fmt.Sprintf("%s %s %q", name, strings.ReplaceAll(string(p.Operator), "_", " "), p.Value)
}
