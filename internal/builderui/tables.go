package builderui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/reportcraft/internal/report"
)

func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithHeight(1),
	)
	t.SetStyles(tableStyles())
	return t
}

func setRows(t *table.Model, rows []table.Row) {
	cursor := t.Cursor()
	t.SetRows(rows)
	switch {
	case len(rows) == 0:
		t.SetCursor(0)
	case cursor >= len(rows):
		t.SetCursor(len(rows) - 1)
	case cursor < 0:
		t.SetCursor(0)
	}
}

func columnTableColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Field", Width: 20},
		{Title: "Id", Width: 20},
		{Title: "Type", Width: 7},
		{Title: "Aggregation", Width: 11},
	}
}

func columnRows(cfg *report.Configuration) []table.Row {
	cols := cfg.Columns().List()
	rows := make([]table.Row, 0, len(cols))
	for i, col := range cols {
		typ := "?"
		if f, err := cfg.Field(col.FieldID); err == nil {
			typ = string(f.Type)
		}
		agg := col.Aggregation.Label()
		if agg == "" {
			agg = "-"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			cfg.FieldName(col.FieldID),
			col.FieldID,
			typ,
			agg,
		})
	}
	return rows
}

func filterTableColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Logic", Width: 5},
		{Title: "Field", Width: 20},
		{Title: "Operator", Width: 12},
		{Title: "Value", Width: 24},
	}
}

func filterRows(cfg *report.Configuration) []table.Row {
	preds := cfg.Filters().List()
	rows := make([]table.Row, 0, len(preds))
	for i, p := range preds {
		logic := string(p.Combinator)
		if logic == "" {
			logic = "WHERE"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			logic,
			cfg.FieldName(p.FieldID),
			strings.ReplaceAll(string(p.Operator), "_", " "),
			p.Value,
		})
	}
	return rows
}

func paramTableColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Name", Width: 16},
		{Title: "Type", Width: 7},
		{Title: "Required", Width: 8},
		{Title: "Default", Width: 14},
		{Title: "Options", Width: 24},
	}
}

func paramRows(cfg *report.Configuration) []table.Row {
	list := cfg.Parameters().List()
	rows := make([]table.Row, 0, len(list))
	for i, p := range list {
		required := "no"
		if p.Required {
			required = "yes"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			p.Name,
			string(p.Type),
			required,
			p.DefaultValue,
			strings.Join(p.Options, ", "),
		})
	}
	return rows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}
