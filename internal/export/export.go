// Package export hands validated configurations to an external exporter.
package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/report"
)

// Format is an export target.
type Format string

const (
	FormatExcel Format = "excel"
	FormatPDF   Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatExcel, FormatPDF}

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatExcel, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (want excel or pdf)", model.ErrUnsupportedFormat, s)
}

// Envelope is what an exporter receives.
type Envelope struct {
	Format    Format          `msgpack:"format"`
	CreatedAt time.Time       `msgpack:"createdAt"`
	Report    report.Document `msgpack:"report"`
}

// Exporter renders an envelope somewhere. Implementations own the output.
type Exporter interface {
	Export(ctx context.Context, env Envelope) (string, error)
}

// Handoff validates cfg and passes it to exp in the given format.
// It returns the location reported by the exporter.
func Handoff(ctx context.Context, cfg *report.Configuration, format Format, exp Exporter) (string, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return "", err
	}
	if err := cfg.Validate().Err(); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	env := Envelope{
		Format:    format,
		CreatedAt: time.Now().UTC(),
		Report:    cfg.Document(),
	}
	return exp.Export(ctx, env)
}
