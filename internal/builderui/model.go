// Package builderui provides the Bubble Tea report builder interface.
package builderui

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/params"
	"github.com/verte-zerg/reportcraft/internal/preview"
	"github.com/verte-zerg/reportcraft/internal/report"
)

const (
	tabColumns = iota
	tabFilters
	tabParameters
	tabPreview
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7FB77E"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Saver persists a configuration document.
type Saver interface {
	Save(ctx context.Context, doc report.Document) error
}

// Model implements the Bubble Tea builder UI.
type Model struct {
	cfg       *report.Configuration
	saver     Saver
	projector *preview.Projector
	rows      []model.Record

	tabs      []string
	activeTab int
	tables    []table.Model
	preview   viewport.Model

	width  int
	height int

	inputMode bool
	input     textinput.Model

	errMsg string
	status string
	dirty  bool
}

// NewModel constructs a builder bound to cfg. Saving is disabled when saver is nil.
func NewModel(cfg *report.Configuration, saver Saver, projector *preview.Projector, rows []model.Record) *Model {
	m := &Model{
		cfg:       cfg,
		saver:     saver,
		projector: projector,
		rows:      rows,
		tabs:      []string{"Columns", "Filters", "Parameters", "Preview"},
		preview:   viewport.New(0, 0),
	}
	m.tables = []table.Model{
		newTable(columnTableColumns()),
		newTable(filterTableColumns()),
		newTable(paramTableColumns()),
	}
	m.input = textinput.New()
	m.input.CharLimit = 0
	m.input.Cursor.SetMode(cursor.CursorBlink)
	cfg.OnChange(m.onConfigChange)
	m.refresh()
	m.focusActive()
	return m
}

// Dirty reports whether there are unsaved changes.
func (m *Model) Dirty() bool {
	return m.dirty
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.inputMode {
			return m.updateInput(msg)
		}
		m.errMsg = ""
		m.status = ""
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h", "shift+tab":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l", "tab":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "n":
			if m.activeTab == tabPreview {
				return m, nil
			}
			return m.startInput()
		case "a":
			if m.activeTab == tabColumns {
				m.showErr(m.cycleAggregation())
			}
			return m, nil
		case "o":
			if m.activeTab == tabFilters {
				m.showErr(m.toggleCombinator())
			}
			return m, nil
		case "r":
			if m.activeTab == tabParameters {
				m.showErr(m.toggleRequired())
			}
			return m, nil
		case "x", "delete":
			m.showErr(m.removeSelected())
			return m, nil
		case "s":
			m.save()
			return m, nil
		default:
			if m.activeTab == tabPreview {
				var cmd tea.Cmd
				m.preview, cmd = m.preview.Update(msg)
				return m, cmd
			}
			var cmd tea.Cmd
			m.tables[m.activeTab], cmd = m.tables[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) onConfigChange() {
	m.dirty = true
	m.refresh()
}

func (m *Model) showErr(err error) {
	if err != nil {
		m.errMsg = err.Error()
	}
}

func (m *Model) save() {
	if m.saver == nil {
		m.errMsg = "saving is not available"
		return
	}
	if err := m.saver.Save(context.Background(), m.cfg.Document()); err != nil {
		m.errMsg = fmt.Sprintf("save failed: %v", err)
		return
	}
	m.dirty = false
	m.status = fmt.Sprintf("Saved %q", m.cfg.Name())
}

func (m *Model) selected() int {
	if m.activeTab >= len(m.tables) {
		return -1
	}
	t := m.tables[m.activeTab]
	if len(t.Rows()) == 0 {
		return -1
	}
	return t.Cursor()
}

func (m *Model) cycleAggregation() error {
	idx := m.selected()
	cols := m.cfg.Columns().List()
	if idx < 0 || idx >= len(cols) {
		return nil
	}
	col := cols[idx]
	next := model.Aggregations[0]
	for i, agg := range model.Aggregations {
		if agg == col.Aggregation {
			next = model.Aggregations[(i+1)%len(model.Aggregations)]
			break
		}
	}
	return m.cfg.Columns().SetAggregation(col.FieldID, next)
}

func (m *Model) toggleCombinator() error {
	idx := m.selected()
	preds := m.cfg.Filters().List()
	if idx < 0 || idx >= len(preds) {
		return nil
	}
	next := model.CombinatorOr
	if preds[idx].Combinator == model.CombinatorOr {
		next = model.CombinatorAnd
	}
	return m.cfg.Filters().SetCombinator(preds[idx].ID, next)
}

func (m *Model) toggleRequired() error {
	idx := m.selected()
	list := m.cfg.Parameters().List()
	if idx < 0 || idx >= len(list) {
		return nil
	}
	required := !list[idx].Required
	_, err := m.cfg.Parameters().Update(list[idx].ID, params.Patch{Required: &required})
	return err
}

func (m *Model) removeSelected() error {
	idx := m.selected()
	if idx < 0 {
		return nil
	}
	switch m.activeTab {
	case tabColumns:
		cols := m.cfg.Columns().List()
		if idx < len(cols) {
			m.cfg.Columns().Remove(cols[idx].FieldID)
		}
	case tabFilters:
		preds := m.cfg.Filters().List()
		if idx < len(preds) {
			return m.cfg.Filters().Remove(preds[idx].ID)
		}
	case tabParameters:
		list := m.cfg.Parameters().List()
		if idx < len(list) {
			return m.cfg.Parameters().Remove(list[idx].ID)
		}
	}
	return nil
}

func (m *Model) startInput() (tea.Model, tea.Cmd) {
	m.inputMode = true
	m.input.SetValue("")
	switch m.activeTab {
	case tabColumns:
		m.input.Prompt = "Field id: "
		m.input.Placeholder = "sales_amount"
	case tabFilters:
		m.input.Prompt = "Filter: "
		m.input.Placeholder = "region equals Europe"
	case tabParameters:
		m.input.Prompt = "Parameter: "
		m.input.Placeholder = "Start date required"
	}
	m.updateLayout()
	return m, m.input.Focus()
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = false
		m.input.Blur()
		m.errMsg = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyInput(strings.TrimSpace(m.input.Value())); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.inputMode = false
		m.input.Blur()
		m.errMsg = ""
		m.tables[m.activeTab].GotoBottom()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) applyInput(value string) error {
	switch m.activeTab {
	case tabColumns:
		return m.cfg.Columns().Add(value)
	case tabFilters:
		fieldID, op, rest, err := parseFilterInput(value)
		if err != nil {
			return err
		}
		_, err = m.cfg.Filters().Append(fieldID, op, rest)
		return err
	case tabParameters:
		name, typ, required, err := parseParamInput(value)
		if err != nil {
			return err
		}
		_, err = m.cfg.Parameters().Add(name, typ, required, "")
		return err
	}
	return nil
}

// parseFilterInput splits "field operator value...".
func parseFilterInput(s string) (string, model.Operator, string, error) {
	parts := strings.Fields(s)
	if len(parts) < 2 {
		return "", "", "", fmt.Errorf("expected: <field> <operator> <value>")
	}
	return parts[0], model.Operator(strings.ToLower(parts[1])), strings.Join(parts[2:], " "), nil
}

// parseParamInput splits "name [type] [required]". Type defaults to text.
func parseParamInput(s string) (string, model.ParamType, bool, error) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return "", "", false, model.ErrEmptyName
	}
	typ := model.ParamText
	required := false
	for _, part := range parts[1:] {
		if strings.EqualFold(part, "required") {
			required = true
			continue
		}
		t, err := model.ParseParamType(part)
		if err != nil {
			return "", "", false, err
		}
		typ = t
	}
	return parts[0], typ, required, nil
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	m.focusActive()
}

func (m *Model) focusActive() {
	for i := range m.tables {
		if i == m.activeTab {
			m.tables[i].Focus()
		} else {
			m.tables[i].Blur()
		}
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.errMsg != "" || m.status != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.preview.Width = m.width
	m.preview.Height = bodyHeight
	for i := range m.tables {
		m.tables[i].SetWidth(m.width)
		m.tables[i].SetHeight(maxInt(1, bodyHeight-1))
	}
	promptWidth := lipgloss.Width(m.input.Prompt)
	m.input.Width = maxInt(10, m.width-promptWidth-2)
}

func (m *Model) refresh() {
	setRows(&m.tables[tabColumns], columnRows(m.cfg))
	setRows(&m.tables[tabFilters], filterRows(m.cfg))
	setRows(&m.tables[tabParameters], paramRows(m.cfg))

	var buf bytes.Buffer
	pv := m.projector.Project(m.cfg, m.rows)
	if err := preview.Render(&buf, pv, preview.RenderOptions{Styled: true}); err != nil {
		m.preview.SetContent(fmt.Sprintf("Failed to render preview: %v", err))
		return
	}
	m.preview.SetContent(strings.TrimRight(buf.String(), "\n"))
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	name := m.cfg.Name()
	if name == "" {
		name = "(unnamed)"
	}
	marker := ""
	if m.dirty {
		marker = " *"
	}
	summary := fmt.Sprintf("Report: %s%s  columns=%d  filters=%d  parameters=%d",
		name, marker, m.cfg.Columns().Len(), m.cfg.Filters().Len(), m.cfg.Parameters().Len())
	return tabs + "\n" + headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderHelp() string {
	var help string
	switch {
	case m.inputMode:
		help = "enter: add  esc: cancel"
	case m.activeTab == tabColumns:
		help = "Nav: left/right  Add: n  Aggregation: a  Remove: x  Save: s  Quit: q"
	case m.activeTab == tabFilters:
		help = "Nav: left/right  Add: n  AND/OR: o  Remove: x  Save: s  Quit: q"
	case m.activeTab == tabParameters:
		help = "Nav: left/right  Add: n  Required: r  Remove: x  Save: s  Quit: q"
	default:
		help = "Nav: left/right  Scroll: up/down/pgup/pgdn  Save: s  Quit: q"
	}
	return headerStyle.Render(help)
}

func (m *Model) renderFooter() string {
	switch {
	case m.errMsg != "":
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	case m.status != "":
		return m.renderHelp() + "\n" + statusStyle.Render(m.status)
	}
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabPreview {
		return fitLines(m.preview.View(), m.width, height)
	}
	var lines []string
	if m.inputMode {
		lines = append(lines, m.input.View())
		if m.activeTab == tabColumns {
			lines = append(lines, mutedStyle.Render("Fields: "+strings.Join(m.availableFields(), ", ")))
		}
		lines = append(lines, "")
	}
	t := m.tables[m.activeTab]
	if len(t.Rows()) == 0 {
		lines = append(lines, emptyHint(m.activeTab))
	} else {
		lines = append(lines, mutedStyle.Render(t.View()))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) availableFields() []string {
	var ids []string
	for _, f := range m.cfg.Catalog().List() {
		if !m.cfg.Columns().Contains(f.ID) {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

func emptyHint(tab int) string {
	switch tab {
	case tabColumns:
		return "No columns selected. Press n to add a field."
	case tabFilters:
		return "No filters. Press n to add one."
	case tabParameters:
		return "No parameters. Press n to add one."
	}
	return ""
}
