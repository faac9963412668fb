// Package catalog provides the read-only registry of selectable fields.
package catalog

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/reportcraft/internal/model"
)

// Catalog is an immutable field registry. It is safe for concurrent use.
type Catalog struct {
	fields []model.Field
	byID   map[string]int
}

// New builds a catalog from fields, keeping their order.
func New(fields []model.Field) (*Catalog, error) {
	c := &Catalog{
		fields: make([]model.Field, 0, len(fields)),
		byID:   make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		f.ID = strings.TrimSpace(f.ID)
		if f.ID == "" {
			return nil, fmt.Errorf("catalog field id is empty")
		}
		if _, ok := c.byID[f.ID]; ok {
			return nil, fmt.Errorf("duplicate catalog field %q", f.ID)
		}
		t, err := model.ParseSemanticType(string(f.Type))
		if err != nil {
			return nil, fmt.Errorf("catalog field %q: %w", f.ID, err)
		}
		f.Type = t
		if strings.TrimSpace(f.Name) == "" {
			f.Name = f.ID
		}
		c.byID[f.ID] = len(c.fields)
		c.fields = append(c.fields, f)
	}
	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(fields []model.Field) *Catalog {
	c, err := New(fields)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in sample catalog.
func Default() *Catalog {
	return MustNew([]model.Field{
		{ID: "user_name", Name: "User Name", Type: model.TypeText},
		{ID: "email", Name: "Email", Type: model.TypeText},
		{ID: "sales_amount", Name: "Sales Amount", Type: model.TypeNumber},
		{ID: "order_count", Name: "Order Count", Type: model.TypeNumber},
		{ID: "registration_date", Name: "Registration Date", Type: model.TypeDate},
		{ID: "last_login", Name: "Last Login", Type: model.TypeDate},
		{ID: "region", Name: "Region", Type: model.TypeText},
		{ID: "product_category", Name: "Product Category", Type: model.TypeText},
		{ID: "revenue", Name: "Revenue", Type: model.TypeNumber},
		{ID: "discount_applied", Name: "Discount Applied", Type: model.TypeNumber},
	})
}

// Resolve looks up a field by id.
func (c *Catalog) Resolve(id string) (model.Field, error) {
	idx, ok := c.byID[id]
	if !ok {
		return model.Field{}, fmt.Errorf("%w: %q", model.ErrUnknownField, id)
	}
	return c.fields[idx], nil
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// DisplayName returns the field's display name, or id itself when unknown.
func (c *Catalog) DisplayName(id string) string {
	if idx, ok := c.byID[id]; ok {
		return c.fields[idx].Name
	}
	return id
}

// List returns all fields in catalog order.
func (c *Catalog) List() []model.Field {
	return append([]model.Field(nil), c.fields...)
}

// Len returns the number of fields.
func (c *Catalog) Len() int {
	return len(c.fields)
}
