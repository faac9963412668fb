// Package filter implements the predicate chain of a report.
package filter

import "github.com/verte-zerg/reportcraft/internal/model"

var operatorsByType = map[model.SemanticType][]model.Operator{
	model.TypeText:   {model.OpEquals, model.OpContains, model.OpStartsWith, model.OpEndsWith},
	model.TypeNumber: {model.OpEquals, model.OpGreaterThan, model.OpLessThan, model.OpBetween},
	model.TypeDate:   {model.OpEquals, model.OpAfter, model.OpBefore, model.OpBetween},
}

// OperatorsForType returns the legal operators for t in display order.
func OperatorsForType(t model.SemanticType) []model.Operator {
	return append([]model.Operator(nil), operatorsByType[t]...)
}

// OperatorAllowed reports whether op is legal for t.
func OperatorAllowed(t model.SemanticType, op model.Operator) bool {
	for _, legal := range operatorsByType[t] {
		if legal == op {
			return true
		}
	}
	return false
}
