package daily

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/punchcal/internal/calendar"
	"github.com/julianstephens/punchcal/internal/i18n"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(6)

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Width(12)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// RenderDetail draws a day's records: one status line per record followed
// by its punches.
func RenderDetail(d calendar.DayDetail, tr *i18n.Translator) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(tr.T("DAILY_RECORDS_TITLE", i18n.Params{"dateKey": d.DateKey})))
	b.WriteString("\n")

	if d.Empty() {
		b.WriteString(mutedStyle.Render(tr.T("DAILY_RECORDS_EMPTY")))
		b.WriteString("\n")
		return b.String()
	}

	for _, rec := range d.Records {
		if rec.Reason != "" {
			label := tr.T(calendar.ReasonKey(rec.Reason))
			style := calendar.Classify(rec.Reason).Style()
			b.WriteString(tr.T("RECORD_REASON_PREFIX"))
			b.WriteString(reasonStyle(style).Render(label))
			b.WriteString("\n")
		}
		for _, e := range rec.Record {
			line := timeStyle.Render(e.Time) + "- " + typeStyle.Render(tr.T(e.Type.TranslationKey()))
			if e.Location != "" {
				line += " @ " + e.Location
			}
			b.WriteString(line)
			b.WriteString("\n")
			if e.Note != "" {
				b.WriteString(mutedStyle.Render("  " + tr.T("RECORD_NOTE_PREFIX") + e.Note))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func reasonStyle(s calendar.CellStyle) lipgloss.Style {
	switch s {
	case calendar.StyleAbnormal:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	case calendar.StylePendingAdjustment, calendar.StylePendingVirtual:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	case calendar.StyleApprovedVirtual:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	}
}

// Model shows the most recently selected day in a scrollable viewport.
type Model struct {
	tr       *i18n.Translator
	viewport viewport.Model
	detail   *calendar.DayDetail
	loading  bool
}

func New(tr *i18n.Translator, width, height int) Model {
	return Model{tr: tr, viewport: viewport.New(width, height)}
}

func (m *Model) SetLoading() {
	m.loading = true
	m.detail = nil
	m.viewport.SetContent(m.tr.T("LOADING"))
}

func (m *Model) SetDetail(d calendar.DayDetail) {
	m.loading = false
	m.detail = &d
	m.viewport.SetContent(RenderDetail(d, m.tr))
	m.viewport.GotoTop()
}

func (m *Model) Clear() {
	m.loading = false
	m.detail = nil
	m.viewport.SetContent("")
}

func (m Model) Detail() (calendar.DayDetail, bool) {
	if m.detail == nil {
		return calendar.DayDetail{}, false
	}
	return *m.detail, true
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.detail == nil && !m.loading {
		return ""
	}
	return m.viewport.View()
}
