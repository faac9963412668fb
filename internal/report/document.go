package report

import (
	"encoding/json"
	"fmt"

	"github.com/verte-zerg/reportcraft/internal/catalog"
	"github.com/verte-zerg/reportcraft/internal/model"
)

// Document is the serializable form of a configuration. Column, filter and
// parameter order is significant.
type Document struct {
	Name       string              `json:"name" msgpack:"name"`
	Columns    []ColumnDocument    `json:"columns" msgpack:"columns"`
	Filters    []FilterDocument    `json:"filters" msgpack:"filters"`
	Parameters []ParameterDocument `json:"parameters" msgpack:"parameters"`
}

// ColumnDocument is a serialized selected column.
type ColumnDocument struct {
	FieldID     string `json:"fieldId" msgpack:"fieldId"`
	Aggregation string `json:"aggregation" msgpack:"aggregation"`
}

// FilterDocument is a serialized predicate.
type FilterDocument struct {
	ID         string `json:"id,omitempty" msgpack:"id,omitempty"`
	FieldID    string `json:"fieldId" msgpack:"fieldId"`
	Operator   string `json:"operator" msgpack:"operator"`
	Value      string `json:"value" msgpack:"value"`
	Combinator string `json:"combinator,omitempty" msgpack:"combinator,omitempty"`
}

// ParameterDocument is a serialized parameter.
type ParameterDocument struct {
	ID           string   `json:"id,omitempty" msgpack:"id,omitempty"`
	Name         string   `json:"name" msgpack:"name"`
	Type         string   `json:"type" msgpack:"type"`
	Required     bool     `json:"required" msgpack:"required"`
	DefaultValue string   `json:"defaultValue" msgpack:"defaultValue"`
	Options      []string `json:"options,omitempty" msgpack:"options,omitempty"`
}

// Document returns the serializable form of c.
func (c *Configuration) Document() Document {
	doc := Document{
		Name:       c.name,
		Columns:    []ColumnDocument{},
		Filters:    []FilterDocument{},
		Parameters: []ParameterDocument{},
	}
	for _, col := range c.columns.List() {
		doc.Columns = append(doc.Columns, ColumnDocument{
			FieldID:     col.FieldID,
			Aggregation: string(col.Aggregation),
		})
	}
	for _, p := range c.filters.List() {
		doc.Filters = append(doc.Filters, FilterDocument{
			ID:         p.ID,
			FieldID:    p.FieldID,
			Operator:   string(p.Operator),
			Value:      p.Value,
			Combinator: string(p.Combinator),
		})
	}
	for _, p := range c.params.List() {
		doc.Parameters = append(doc.Parameters, ParameterDocument{
			ID:           p.ID,
			Name:         p.Name,
			Type:         string(p.Type),
			Required:     p.Required,
			DefaultValue: p.DefaultValue,
			Options:      p.Options,
		})
	}
	return doc
}

// FromDocument rebuilds a configuration from doc. Structural invariants are
// enforced; references to fields missing from cat are kept and reported by
// Validate.
func FromDocument(cat *catalog.Catalog, doc Document) (*Configuration, error) {
	return FromDocumentWithOptions(cat, doc, Options{})
}

// FromDocumentWithOptions is FromDocument with explicit id generators.
func FromDocumentWithOptions(cat *catalog.Catalog, doc Document, opts Options) (*Configuration, error) {
	c := NewWithOptions(cat, doc.Name, opts)

	cols := make([]model.SelectedColumn, 0, len(doc.Columns))
	for _, cd := range doc.Columns {
		agg, err := model.ParseAggregation(cd.Aggregation)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", cd.FieldID, err)
		}
		cols = append(cols, model.SelectedColumn{FieldID: cd.FieldID, Aggregation: agg})
	}
	if err := c.columns.Restore(cols); err != nil {
		return nil, fmt.Errorf("failed to restore columns: %w", err)
	}

	preds := make([]model.Predicate, 0, len(doc.Filters))
	for i, fd := range doc.Filters {
		comb := model.CombinatorNone
		if fd.Combinator != "" {
			parsed, err := model.ParseCombinator(fd.Combinator)
			if err != nil {
				return nil, fmt.Errorf("filter %d: %w", i+1, err)
			}
			comb = parsed
		}
		preds = append(preds, model.Predicate{
			ID:         fd.ID,
			FieldID:    fd.FieldID,
			Operator:   model.Operator(fd.Operator),
			Value:      fd.Value,
			Combinator: comb,
		})
	}
	if err := c.filters.Restore(preds); err != nil {
		return nil, fmt.Errorf("failed to restore filters: %w", err)
	}

	ps := make([]model.Parameter, 0, len(doc.Parameters))
	for _, pd := range doc.Parameters {
		typ, err := model.ParseParamType(pd.Type)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", pd.Name, err)
		}
		ps = append(ps, model.Parameter{
			ID:           pd.ID,
			Name:         pd.Name,
			Type:         typ,
			Required:     pd.Required,
			DefaultValue: pd.DefaultValue,
			Options:      pd.Options,
		})
	}
	if err := c.params.Restore(ps); err != nil {
		return nil, fmt.Errorf("failed to restore parameters: %w", err)
	}
	return c, nil
}

// MarshalJSON encodes the configuration as its Document.
func (c *Configuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Document())
}

// DecodeJSON parses a JSON document and rebuilds the configuration.
func DecodeJSON(cat *catalog.Catalog, data []byte) (*Configuration, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return FromDocument(cat, doc)
}
