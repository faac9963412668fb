// Package params manages the run-time parameters of a report.
package params

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/reportcraft/internal/model"
)

// DefaultOptions seeds the options of a new select parameter.
var DefaultOptions = []string{"Option 1", "Option 2"}

// Set is an insertion-ordered collection of parameters keyed by id.
type Set struct {
	params    []model.Parameter
	newID     func() string
	observers []func()
}

// Option configures a Set.
type Option func(*Set)

// WithIDGenerator overrides the parameter id source.
func WithIDGenerator(fn func() string) Option {
	return func(s *Set) {
		s.newID = fn
	}
}

// NewSet returns an empty parameter set.
func NewSet(opts ...Option) *Set {
	s := &Set{newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Patch lists the fields to change in Update. Nil fields are left alone.
type Patch struct {
	Name         *string
	Type         *model.ParamType
	Required     *bool
	DefaultValue *string
	Options      []string
}

// OnChange registers fn to be called after every successful mutation.
func (s *Set) OnChange(fn func()) {
	s.observers = append(s.observers, fn)
}

func (s *Set) notify() {
	for _, fn := range s.observers {
		fn()
	}
}

// Add creates a parameter. Select parameters start with DefaultOptions.
func (s *Set) Add(name string, typ model.ParamType, required bool, defaultValue string) (model.Parameter, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Parameter{}, model.ErrEmptyName
	}
	if _, err := model.ParseParamType(string(typ)); err != nil {
		return model.Parameter{}, err
	}
	if s.nameTaken(name, "") {
		return model.Parameter{}, fmt.Errorf("%w: %q", model.ErrDuplicateParameter, name)
	}
	p := model.Parameter{
		ID:           s.newID(),
		Name:         name,
		Type:         typ,
		Required:     required,
		DefaultValue: defaultValue,
	}
	if typ == model.ParamSelect {
		p.Options = append([]string(nil), DefaultOptions...)
	}
	s.params = append(s.params, p)
	s.notify()
	return p.Clone(), nil
}

// Update merges patch into the parameter with the given id.
func (s *Set) Update(id string, patch Patch) (model.Parameter, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Parameter{}, fmt.Errorf("%w: %q", model.ErrParameterNotFound, id)
	}
	p := s.params[idx].Clone()
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return model.Parameter{}, model.ErrEmptyName
		}
		if s.nameTaken(name, id) {
			return model.Parameter{}, fmt.Errorf("%w: %q", model.ErrDuplicateParameter, name)
		}
		p.Name = name
	}
	if patch.Type != nil {
		if _, err := model.ParseParamType(string(*patch.Type)); err != nil {
			return model.Parameter{}, err
		}
		p.Type = *patch.Type
	}
	if patch.Required != nil {
		p.Required = *patch.Required
	}
	if patch.DefaultValue != nil {
		p.DefaultValue = *patch.DefaultValue
	}
	if patch.Options != nil {
		if p.Type != model.ParamSelect {
			return model.Parameter{}, model.ErrOptionsNotApplicable
		}
		opts := cleanOptions(patch.Options)
		if len(opts) == 0 {
			return model.Parameter{}, model.ErrEmptyOptions
		}
		p.Options = opts
	}
	switch {
	case p.Type == model.ParamSelect && len(p.Options) == 0:
		p.Options = append([]string(nil), DefaultOptions...)
	case p.Type != model.ParamSelect:
		p.Options = nil
	}
	s.params[idx] = p
	s.notify()
	return p.Clone(), nil
}

// Remove deletes the parameter with the given id.
func (s *Set) Remove(id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", model.ErrParameterNotFound, id)
	}
	s.params = append(s.params[:idx], s.params[idx+1:]...)
	s.notify()
	return nil
}

// Restore replaces the set with params, as loaded from a saved report.
func (s *Set) Restore(params []model.Parameter) error {
	out := make([]model.Parameter, 0, len(params))
	ids := make(map[string]struct{}, len(params))
	names := make(map[string]struct{}, len(params))
	for _, p := range params {
		p = p.Clone()
		if p.ID == "" {
			p.ID = s.newID()
		}
		if _, ok := ids[p.ID]; ok {
			return fmt.Errorf("duplicate parameter id %q", p.ID)
		}
		ids[p.ID] = struct{}{}
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return model.ErrEmptyName
		}
		key := strings.ToLower(p.Name)
		if _, ok := names[key]; ok {
			return fmt.Errorf("%w: %q", model.ErrDuplicateParameter, p.Name)
		}
		names[key] = struct{}{}
		if _, err := model.ParseParamType(string(p.Type)); err != nil {
			return err
		}
		if p.Type == model.ParamSelect {
			p.Options = cleanOptions(p.Options)
			if len(p.Options) == 0 {
				return fmt.Errorf("parameter %q: %w", p.Name, model.ErrEmptyOptions)
			}
		} else if len(p.Options) > 0 {
			return fmt.Errorf("parameter %q: %w", p.Name, model.ErrOptionsNotApplicable)
		} else {
			p.Options = nil
		}
		out = append(out, p)
	}
	s.params = out
	s.notify()
	return nil
}

// Get returns the parameter with the given id.
func (s *Set) Get(id string) (model.Parameter, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Parameter{}, false
	}
	return s.params[idx].Clone(), true
}

// List returns all parameters in insertion order.
func (s *Set) List() []model.Parameter {
	out := make([]model.Parameter, len(s.params))
	for i, p := range s.params {
		out[i] = p.Clone()
	}
	return out
}

// Len returns the number of parameters.
func (s *Set) Len() int {
	return len(s.params)
}

// RequiredParameters returns the required parameters in insertion order.
func (s *Set) RequiredParameters() []model.Parameter {
	var out []model.Parameter
	for _, p := range s.params {
		if p.Required {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Resolve returns the effective value of every parameter keyed by name.
// Required parameters must be supplied; their defaults are only a hint for
// the caller. Optional parameters fall back to their default. Every
// unsupplied required parameter is named in ErrMissingRequiredParameter.
func (s *Set) Resolve(supplied map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(s.params))
	var missing []string
	for _, p := range s.params {
		v, ok := lookup(supplied, p.Name)
		if !ok || strings.TrimSpace(v) == "" {
			if p.Required {
				missing = append(missing, p.Name)
				continue
			}
			v = p.DefaultValue
		}
		if strings.TrimSpace(v) == "" {
			continue
		}
		if err := checkValue(p, v); err != nil {
			return nil, err
		}
		values[p.Name] = v
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrMissingRequiredParameter, strings.Join(missing, ", "))
	}
	return values, nil
}

func lookup(supplied map[string]string, name string) (string, bool) {
	if v, ok := supplied[name]; ok {
		return v, true
	}
	for k, v := range supplied {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

func checkValue(p model.Parameter, v string) error {
	v = strings.TrimSpace(v)
	switch p.Type {
	case model.ParamNumber:
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", model.ErrInvalidParameterValue, p.Name, v)
		}
	case model.ParamDate:
		if _, err := time.Parse(model.DateLayout, v); err != nil {
			return fmt.Errorf("%w: %s=%q is not a YYYY-MM-DD date", model.ErrInvalidParameterValue, p.Name, v)
		}
	case model.ParamSelect:
		for _, opt := range p.Options {
			if opt == v {
				return nil
			}
		}
		return fmt.Errorf("%w: %s=%q is not one of %s", model.ErrInvalidParameterValue, p.Name, v, strings.Join(p.Options, ", "))
	}
	return nil
}

func cleanOptions(opts []string) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// ParseOptions splits a comma-separated option list.
func ParseOptions(s string) []string {
	return cleanOptions(strings.Split(s, ","))
}

func (s *Set) nameTaken(name, exceptID string) bool {
	for _, p := range s.params {
		if p.ID != exceptID && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

func (s *Set) indexOf(id string) int {
	for i, p := range s.params {
		if p.ID == id {
			return i
		}
	}
	return -1
}
