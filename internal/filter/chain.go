package filter

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/verte-zerg/reportcraft/internal/catalog"
	"github.com/verte-zerg/reportcraft/internal/model"
)

// Chain is an ordered list of predicates joined left to right.
//
// The first predicate never carries a combinator; every later one carries
// AND or OR.
type Chain struct {
	catalog   *catalog.Catalog
	preds     []model.Predicate
	newID     func() string
	observers []func()
}

// Option configures a Chain.
type Option func(*Chain)

// WithIDGenerator overrides the predicate id source.
func WithIDGenerator(fn func() string) Option {
	return func(c *Chain) {
		c.newID = fn
	}
}

// NewChain returns an empty chain bound to cat.
func NewChain(cat *catalog.Catalog, opts ...Option) *Chain {
	c := &Chain{catalog: cat, newID: uuid.NewString}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange registers fn to be called after every successful mutation.
func (c *Chain) OnChange(fn func()) {
	c.observers = append(c.observers, fn)
}

func (c *Chain) notify() {
	for _, fn := range c.observers {
		fn()
	}
}

// OperatorsFor returns the operators legal for the given field.
func (c *Chain) OperatorsFor(fieldID string) ([]model.Operator, error) {
	field, err := c.catalog.Resolve(fieldID)
	if err != nil {
		return nil, err
	}
	return OperatorsForType(field.Type), nil
}

// Append adds a predicate to the end of the chain. Non-first predicates
// default to AND.
func (c *Chain) Append(fieldID string, op model.Operator, value string) (model.Predicate, error) {
	field, err := c.catalog.Resolve(fieldID)
	if err != nil {
		return model.Predicate{}, err
	}
	if !OperatorAllowed(field.Type, op) {
		return model.Predicate{}, fmt.Errorf("%w: %q on %s field %s", model.ErrInvalidOperatorForType, op, field.Type, fieldID)
	}
	if strings.TrimSpace(value) == "" {
		return model.Predicate{}, model.ErrEmptyValue
	}
	pred := model.Predicate{
		ID:       c.newID(),
		FieldID:  fieldID,
		Operator: op,
		Value:    value,
	}
	if len(c.preds) > 0 {
		pred.Combinator = model.CombinatorAnd
	}
	c.preds = append(c.preds, pred)
	c.notify()
	return pred, nil
}

// SetCombinator changes how a non-first predicate joins the chain.
func (c *Chain) SetCombinator(id string, comb model.Combinator) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", model.ErrPredicateNotFound, id)
	}
	if idx == 0 {
		return model.ErrCombinatorOnFirstPredicate
	}
	if comb != model.CombinatorAnd && comb != model.CombinatorOr {
		return fmt.Errorf("%w: %q", model.ErrInvalidCombinator, comb)
	}
	c.preds[idx].Combinator = comb
	c.notify()
	return nil
}

// Remove deletes a predicate. When the head is removed the new head loses
// its combinator; every other combinator is left as is.
func (c *Chain) Remove(id string) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", model.ErrPredicateNotFound, id)
	}
	c.preds = append(c.preds[:idx], c.preds[idx+1:]...)
	if idx == 0 && len(c.preds) > 0 {
		c.preds[0].Combinator = model.CombinatorNone
	}
	c.notify()
	return nil
}

// Restore replaces the chain with preds, as loaded from a saved report.
// Predicates on fields missing from the catalog are kept.
func (c *Chain) Restore(preds []model.Predicate) error {
	out := make([]model.Predicate, 0, len(preds))
	seen := make(map[string]struct{}, len(preds))
	for i, p := range preds {
		if p.ID == "" {
			p.ID = c.newID()
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("duplicate predicate id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
		if strings.TrimSpace(p.Value) == "" {
			return fmt.Errorf("predicate %d: %w", i+1, model.ErrEmptyValue)
		}
		switch {
		case i == 0 && p.Combinator != model.CombinatorNone:
			return fmt.Errorf("predicate 1: %w", model.ErrCombinatorOnFirstPredicate)
		case i > 0 && p.Combinator != model.CombinatorAnd && p.Combinator != model.CombinatorOr:
			return fmt.Errorf("predicate %d: %w: %q", i+1, model.ErrInvalidCombinator, p.Combinator)
		}
		if field, err := c.catalog.Resolve(p.FieldID); err == nil && !OperatorAllowed(field.Type, p.Operator) {
			return fmt.Errorf("predicate %d: %w: %q on %s field %s", i+1, model.ErrInvalidOperatorForType, p.Operator, field.Type, p.FieldID)
		}
		out = append(out, p)
	}
	c.preds = out
	c.notify()
	return nil
}

// List returns the predicates in chain order.
func (c *Chain) List() []model.Predicate {
	return append([]model.Predicate(nil), c.preds...)
}

// Len returns the number of predicates.
func (c *Chain) Len() int {
	return len(c.preds)
}

// Get returns the predicate with the given id.
func (c *Chain) Get(id string) (model.Predicate, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return model.Predicate{}, false
	}
	return c.preds[idx], true
}

func (c *Chain) indexOf(id string) int {
	for i, p := range c.preds {
		if p.ID == id {
			return i
		}
	}
	return -1
}
