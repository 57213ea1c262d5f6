package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/punchcal/internal/calendar"
	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/models"
)

var (
	welcomeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	buttonStyle   = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("39"))
	disabledStyle = buttonStyle.BorderForeground(lipgloss.Color("240")).Foreground(lipgloss.Color("240"))
	sectionStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	abnormalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

type PunchMsg struct {
	Type models.PunchType
}

// AdjustMsg asks for an adjustment form prefilled from an abnormal record.
type AdjustMsg struct {
	Record models.AttendanceRecord
}

type KeyMap struct {
	PunchIn  key.Binding
	PunchOut key.Binding
	Up       key.Binding
	Down     key.Binding
	Adjust   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PunchIn:  key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "clock in")),
		PunchOut: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "clock out")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Adjust:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "request adjustment")),
	}
}

// Abnormal returns the records of a month whose day classifies as abnormal.
func Abnormal(records []models.AttendanceRecord) []models.AttendanceRecord {
	var out []models.AttendanceRecord
	for _, r := range records {
		if calendar.Classify(r.Reason) == calendar.CategoryAbnormal {
			out = append(out, r)
		}
	}
	return out
}

type Model struct {
	tr         *i18n.Translator
	keys       KeyMap
	spinner    spinner.Model
	user       models.User
	processing bool
	loading    bool
	abnormal   []models.AttendanceRecord
	cursor     int
}

func New(tr *i18n.Translator) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return Model{tr: tr, keys: DefaultKeyMap(), spinner: s, loading: true}
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m *Model) SetUser(u models.User) {
	m.user = u
}

// SetProcessing toggles the in-flight state of a punch; punch keys are
// ignored while it is set.
func (m *Model) SetProcessing(p bool) tea.Cmd {
	m.processing = p
	if p {
		return m.spinner.Tick
	}
	return nil
}

func (m Model) Processing() bool {
	return m.processing
}

func (m *Model) SetAbnormal(records []models.AttendanceRecord) {
	m.loading = false
	m.abnormal = records
	if m.cursor >= len(records) {
		m.cursor = 0
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.processing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.PunchIn), key.Matches(msg, m.keys.PunchOut):
			if m.processing {
				return m, nil
			}
			typ := models.PunchIn
			if key.Matches(msg, m.keys.PunchOut) {
				typ = models.PunchOut
			}
			return m, func() tea.Msg { return PunchMsg{Type: typ} }
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.abnormal)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Adjust):
			if len(m.abnormal) == 0 {
				return m, nil
			}
			rec := m.abnormal[m.cursor]
			return m, func() tea.Msg { return AdjustMsg{Record: rec} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	if m.user.Name != "" {
		b.WriteString(welcomeStyle.Render(m.tr.T("WELCOME", i18n.Params{"name": m.user.Name})))
		b.WriteString("\n\n")
	}

	in := "[i] " + m.tr.T("PUNCH_IN")
	out := "[o] " + m.tr.T("PUNCH_OUT")
	style := buttonStyle
	if m.processing {
		style = disabledStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, style.Render(in), " ", style.Render(out)))
	if m.processing {
		b.WriteString(" " + m.spinner.View() + m.tr.T("PROCESSING"))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render(m.tr.T("ABNORMAL_TITLE")))
	b.WriteString("\n")
	switch {
	case m.loading:
		b.WriteString(mutedStyle.Render(m.tr.T("LOADING")))
	case len(m.abnormal) == 0:
		b.WriteString(mutedStyle.Render(m.tr.T("ABNORMAL_EMPTY")))
	default:
		for i, r := range m.abnormal {
			line := r.Date + "  " + abnormalStyle.Render(m.tr.T(calendar.ReasonKey(r.Reason)))
			if i == m.cursor {
				line = selectedStyle.Render(r.Date) + "  " + abnormalStyle.Render(m.tr.T(calendar.ReasonKey(r.Reason)))
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}
