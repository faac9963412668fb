// Package report aggregates columns, filters and parameters into a report
// configuration.
package report

import (
	"strings"

	"github.com/verte-zerg/reportcraft/internal/catalog"
	"github.com/verte-zerg/reportcraft/internal/columns"
	"github.com/verte-zerg/reportcraft/internal/filter"
	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/params"
)

// Configuration is the unit that is saved, run and exported.
type Configuration struct {
	name    string
	catalog *catalog.Catalog
	columns *columns.Set
	filters *filter.Chain
	params  *params.Set
}

// Options carries optional id generators, mostly for tests.
type Options struct {
	PredicateIDs func() string
	ParameterIDs func() string
}

// New returns an empty configuration bound to cat.
func New(cat *catalog.Catalog, name string) *Configuration {
	return NewWithOptions(cat, name, Options{})
}

// NewWithOptions is New with explicit id generators.
func NewWithOptions(cat *catalog.Catalog, name string, opts Options) *Configuration {
	var chainOpts []filter.Option
	if opts.PredicateIDs != nil {
		chainOpts = append(chainOpts, filter.WithIDGenerator(opts.PredicateIDs))
	}
	var paramOpts []params.Option
	if opts.ParameterIDs != nil {
		paramOpts = append(paramOpts, params.WithIDGenerator(opts.ParameterIDs))
	}
	return &Configuration{
		name:    strings.TrimSpace(name),
		catalog: cat,
		columns: columns.NewSet(cat),
		filters: filter.NewChain(cat, chainOpts...),
		params:  params.NewSet(paramOpts...),
	}
}

// Name returns the report name.
func (c *Configuration) Name() string { return c.name }

// SetName renames the report.
func (c *Configuration) SetName(name string) { c.name = strings.TrimSpace(name) }

// Catalog returns the schema catalog the configuration is bound to.
func (c *Configuration) Catalog() *catalog.Catalog { return c.catalog }

// Columns returns the column selection.
func (c *Configuration) Columns() *columns.Set { return c.columns }

// Filters returns the filter chain.
func (c *Configuration) Filters() *filter.Chain { return c.filters }

// Parameters returns the parameter set.
func (c *Configuration) Parameters() *params.Set { return c.params }

// OnChange registers fn on all three component sets.
func (c *Configuration) OnChange(fn func()) {
	c.columns.OnChange(fn)
	c.filters.OnChange(fn)
	c.params.OnChange(fn)
}

// CheckRunnable validates the configuration and resolves parameter values.
func (c *Configuration) CheckRunnable(supplied map[string]string) (map[string]string, error) {
	if err := c.Validate().Err(); err != nil {
		return nil, err
	}
	return c.params.Resolve(supplied)
}

// FieldName returns the display name of a field, or the id when unknown.
func (c *Configuration) FieldName(fieldID string) string {
	return c.catalog.DisplayName(fieldID)
}

// Field resolves a field through the bound catalog.
func (c *Configuration) Field(fieldID string) (model.Field, error) {
	return c.catalog.Resolve(fieldID)
}
