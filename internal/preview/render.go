package preview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// EmptyHint is shown when no columns are selected.
const EmptyHint = "Add columns to see a preview of your report data."

// RenderOptions controls Render output.
type RenderOptions struct {
	Styled bool
}

// Lines renders the preview table as aligned text lines.
func Lines(pv Preview) []string {
	if pv.Empty() {
		return nil
	}
	headers := make([]string, len(pv.Headers))
	rightAlign := map[int]bool{}
	for i, h := range pv.Headers {
		headers[i] = h.Text()
		if h.Numeric && h.Label == "" {
			rightAlign[i] = true
		}
	}
	return formatTable(headers, pv.Rows, rightAlign)
}

// Render writes the preview with its configuration summary to w.
func Render(w io.Writer, pv Preview, opts RenderOptions) error {
	style := func(s lipgloss.Style, text string) string {
		if !opts.Styled {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	name := pv.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintln(&b, style(titleStyle, "Report: "+name))
	fmt.Fprintln(&b, style(mutedStyle, fmt.Sprintf("Columns: %d  Filters: %d  Parameters: %d",
		pv.Counts.Columns, pv.Counts.Filters, pv.Counts.Parameters)))
	b.WriteByte('\n')

	if pv.Empty() {
		fmt.Fprintln(&b, style(mutedStyle, EmptyHint))
	} else {
		lines := Lines(pv)
		for i, line := range lines {
			if i == 0 {
				line = style(headerStyle, line)
			}
			fmt.Fprintln(&b, line)
		}
		if len(pv.Rows) == 0 {
			fmt.Fprintln(&b, style(mutedStyle, "(no sample rows)"))
		}
	}

	if pv.Filters != "" {
		b.WriteByte('\n')
		fmt.Fprintln(&b, "Filters: "+pv.Filters)
	}
	if len(pv.Required) > 0 {
		parts := make([]string, len(pv.Required))
		for i, p := range pv.Required {
			parts[i] = fmt.Sprintf("%s (%s)", p.Name, p.Type)
		}
		b.WriteByte('\n')
		fmt.Fprintln(&b, "Required parameters: "+strings.Join(parts, ", "))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}
	return nil
}
