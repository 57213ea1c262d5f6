package calendar

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/punchcal/internal/calendar"
	"github.com/julianstephens/punchcal/internal/i18n"
)

const cellWidth = 5

var (
	baseCell = lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)

	cellStyles = map[calendar.CellStyle]lipgloss.Style{
		calendar.StyleToday:             baseCell.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39")).Bold(true),
		calendar.StyleFuture:            baseCell.Foreground(lipgloss.Color("240")),
		calendar.StyleNormal:            baseCell.Foreground(lipgloss.Color("252")),
		calendar.StyleAbnormal:          baseCell.Foreground(lipgloss.Color("196")).Bold(true),
		calendar.StyleDayOff:            baseCell.Foreground(lipgloss.Color("42")),
		calendar.StylePendingAdjustment: baseCell.Foreground(lipgloss.Color("214")),
		calendar.StylePendingVirtual:    baseCell.Foreground(lipgloss.Color("214")).Italic(true),
		calendar.StyleApprovedVirtual:   baseCell.Foreground(lipgloss.Color("81")).Italic(true),
	}

	headerStyle = baseCell.Foreground(lipgloss.Color("244")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

// SelectDayMsg asks the parent to show one day's records.
type SelectDayMsg struct {
	Request calendar.DetailRequest
}

type PrevMonthMsg struct{}

type NextMonthMsg struct{}

// StyleFor returns the lipgloss style of a cell style.
func StyleFor(s calendar.CellStyle) lipgloss.Style {
	if st, ok := cellStyles[s]; ok {
		return st
	}
	return baseCell
}

// RenderGrid draws a month grid, Sunday first. cursor is the highlighted
// day of the month, or 0 for none.
func RenderGrid(g calendar.Grid, tr *i18n.Translator, cursor int) string {
	var b strings.Builder

	title := tr.T("MONTH_YEAR_TEMPLATE", i18n.Params{"month": int(g.Month), "year": g.Year})
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	header := make([]string, 7)
	for i := range header {
		header[i] = headerStyle.Render(tr.T("WEEKDAY_" + strconv.Itoa(i)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	row := make([]string, 0, 7)
	for i := 0; i < g.Leading; i++ {
		row = append(row, baseCell.Render(""))
	}
	for _, c := range g.Cells {
		st := StyleFor(c.Style)
		if c.Day == cursor {
			st = st.Reverse(true)
		}
		row = append(row, st.Render(strconv.Itoa(c.Day)))
		if len(row) == 7 {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
			b.WriteString("\n")
			row = row[:0]
		}
	}
	if len(row) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}
	return b.String()
}

var legendOrder = []struct {
	style calendar.CellStyle
	key   string
}{
	{calendar.StyleToday, "CATEGORY_TODAY"},
	{calendar.StyleFuture, "CATEGORY_FUTURE"},
	{calendar.StyleNormal, calendar.CategoryNormal.TranslationKey()},
	{calendar.StyleAbnormal, calendar.CategoryAbnormal.TranslationKey()},
	{calendar.StyleDayOff, calendar.CategoryDayOff.TranslationKey()},
	{calendar.StylePendingAdjustment, calendar.CategoryPendingAdjustment.TranslationKey()},
	{calendar.StylePendingVirtual, calendar.CategoryPendingVirtual.TranslationKey()},
	{calendar.StyleApprovedVirtual, calendar.CategoryApprovedVirtual.TranslationKey()},
}

// RenderLegend lists every cell style with its label.
func RenderLegend(tr *i18n.Translator) string {
	parts := make([]string, len(legendOrder))
	for i, l := range legendOrder {
		swatch := StyleFor(l.style).Width(3).Render("■")
		parts[i] = swatch + tr.T(l.key)
	}
	return strings.Join(parts, "  ")
}

type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Select    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "show day")),
	}
}

type Model struct {
	tr      *i18n.Translator
	keys    KeyMap
	grid    calendar.Grid
	loaded  bool
	cursor  int
	loading bool
	failed  bool
}

func New(tr *i18n.Translator) Model {
	return Model{tr: tr, keys: DefaultKeyMap()}
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// SetGrid replaces the displayed month, keeping the cursor on the same day
// where possible.
func (m *Model) SetGrid(g calendar.Grid) {
	m.grid = g
	m.loaded = true
	m.loading = false
	m.failed = false
	if m.cursor < 1 {
		m.cursor = 1
	}
	if n := len(g.Cells); m.cursor > n {
		m.cursor = n
	}
}

func (m *Model) SetLoading(loading bool) {
	m.loading = loading
	if loading {
		m.failed = false
	}
}

// SetFailed drops the displayed grid after the month on screen failed to
// load, so no day of another month stays selectable.
func (m *Model) SetFailed() {
	m.grid = calendar.Grid{}
	m.loaded = false
	m.loading = false
	m.failed = true
}

func (m Model) Failed() bool {
	return m.failed
}

func (m Model) Loading() bool {
	return m.loading
}

func (m Model) Grid() (calendar.Grid, bool) {
	return m.grid, m.loaded
}

func (m Model) Cursor() int {
	return m.cursor
}

func (m *Model) SetCursor(day int) {
	if day >= 1 && day <= len(m.grid.Cells) {
		m.cursor = day
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.PrevMonth):
		return m, func() tea.Msg { return PrevMonthMsg{} }
	case key.Matches(km, m.keys.NextMonth):
		return m, func() tea.Msg { return NextMonthMsg{} }
	}
	if !m.loaded {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Left):
		m.SetCursor(m.cursor - 1)
	case key.Matches(km, m.keys.Right):
		m.SetCursor(m.cursor + 1)
	case key.Matches(km, m.keys.Up):
		m.SetCursor(m.cursor - 7)
	case key.Matches(km, m.keys.Down):
		m.SetCursor(m.cursor + 7)
	case key.Matches(km, m.keys.Select):
		cell, ok := m.grid.Cell(m.cursor)
		if !ok || !cell.Interactive || cell.Action == nil {
			return m, nil
		}
		req := *cell.Action
		return m, func() tea.Msg { return SelectDayMsg{Request: req} }
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		if m.failed {
			return m.tr.T("ERROR_FETCH_RECORDS")
		}
		return m.tr.T("LOADING")
	}
	out := RenderGrid(m.grid, m.tr, m.cursor) + "\n" + RenderLegend(m.tr)
	if m.loading {
		out = m.tr.T("LOADING") + "\n" + out
	}
	return out
}
