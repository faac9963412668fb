package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/reportcraft/internal/model"
)

// Match reports whether value satisfies p for a field of the given type.
// A nil value never matches. Malformed predicate values return
// ErrInvalidFilterValue.
//
// A between value is "low,high" or "low..high", inclusive. Number bounds
// with digit grouping commas must use "..", as in "1,000..2,000"; a value
// with more than one comma and no ".." is rejected.
func Match(field model.Field, p model.Predicate, value any) (bool, error) {
	if !OperatorAllowed(field.Type, p.Operator) {
		return false, fmt.Errorf("%w: %q on %s field %s", model.ErrInvalidOperatorForType, p.Operator, field.Type, field.ID)
	}
	switch field.Type {
	case model.TypeText:
		return matchText(p, value), nil
	case model.TypeNumber:
		return matchNumber(p, value)
	case model.TypeDate:
		return matchDate(p, value)
	}
	return false, fmt.Errorf("unsupported field type %q", field.Type)
}

func matchText(p model.Predicate, value any) bool {
	if value == nil {
		return false
	}
	got := strings.ToLower(fmt.Sprint(value))
	want := strings.ToLower(p.Value)
	switch p.Operator {
	case model.OpEquals:
		return got == want
	case model.OpContains:
		return strings.Contains(got, want)
	case model.OpStartsWith:
		return strings.HasPrefix(got, want)
	case model.OpEndsWith:
		return strings.HasSuffix(got, want)
	}
	return false
}

func matchNumber(p model.Predicate, value any) (bool, error) {
	if p.Operator == model.OpBetween {
		lo, hi, err := splitRange(p.Value)
		if err != nil {
			return false, err
		}
		low, err := parseNumber(lo)
		if err != nil {
			return false, err
		}
		high, err := parseNumber(hi)
		if err != nil {
			return false, err
		}
		got, ok := numberValue(value)
		if !ok {
			return false, nil
		}
		return got >= low && got <= high, nil
	}
	want, err := parseNumber(p.Value)
	if err != nil {
		return false, err
	}
	got, ok := numberValue(value)
	if !ok {
		return false, nil
	}
	switch p.Operator {
	case model.OpEquals:
		return got == want, nil
	case model.OpGreaterThan:
		return got > want, nil
	case model.OpLessThan:
		return got < want, nil
	}
	return false, nil
}

func matchDate(p model.Predicate, value any) (bool, error) {
	if p.Operator == model.OpBetween {
		lo, hi, err := splitRange(p.Value)
		if err != nil {
			return false, err
		}
		low, err := parseDate(lo)
		if err != nil {
			return false, err
		}
		high, err := parseDate(hi)
		if err != nil {
			return false, err
		}
		got, ok := dateValue(value)
		if !ok {
			return false, nil
		}
		return !got.Before(low) && !got.After(high), nil
	}
	want, err := parseDate(p.Value)
	if err != nil {
		return false, err
	}
	got, ok := dateValue(value)
	if !ok {
		return false, nil
	}
	switch p.Operator {
	case model.OpEquals:
		return got.Equal(want), nil
	case model.OpAfter:
		return got.After(want), nil
	case model.OpBefore:
		return got.Before(want), nil
	}
	return false, nil
}

// splitRange splits a between value. Bounds joined by ".." may carry digit
// grouping commas; a comma-joined range must contain exactly one comma.
func splitRange(s string) (string, string, error) {
	if lo, hi, ok := strings.Cut(s, ".."); ok {
		return strings.TrimSpace(lo), strings.TrimSpace(hi), nil
	}
	switch strings.Count(s, ",") {
	case 1:
		lo, hi, _ := strings.Cut(s, ",")
		return strings.TrimSpace(lo), strings.TrimSpace(hi), nil
	case 0:
		return "", "", fmt.Errorf("%w: %q is not a low,high range", model.ErrInvalidFilterValue, s)
	}
	return "", "", fmt.Errorf("%w: %q is ambiguous; use low..high when bounds contain commas", model.ErrInvalidFilterValue, s)
}

func parseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", model.ErrInvalidFilterValue, s)
	}
	return f, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", model.ErrInvalidFilterValue, s)
	}
	return t, nil
}

func numberValue(v any) (float64, bool) {
	if f, ok := model.NumberOf(v); ok {
		return f, true
	}
	if str, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		return f, err == nil
	}
	return 0, false
}

func dateValue(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		y, m, day := d.Date()
		return time.Date(y, m, day, 0, 0, 0, 0, time.UTC), true
	case string:
		t, err := time.Parse(model.DateLayout, strings.TrimSpace(d))
		return t, err == nil
	}
	return time.Time{}, false
}
