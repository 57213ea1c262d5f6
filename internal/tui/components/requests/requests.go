package requests

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/models"
)

type ReviewMsg struct {
	ID      string
	Date    string
	Approve bool
}

type Item struct {
	Request models.ReviewRequest
	tr      *i18n.Translator
}

func (i Item) Title() string {
	return fmt.Sprintf("%s  %s %s", i.Request.Name, i.Request.Date, i.Request.Time)
}

func (i Item) Description() string {
	desc := i.tr.T(i.Request.Type.TranslationKey())
	if i.Request.Note != "" {
		desc += " | " + i.Request.Note
	}
	return desc
}

func (i Item) FilterValue() string { return i.Request.Name }

type KeyMap struct {
	Approve key.Binding
	Reject  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Approve: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "approve"),
		),
		Reject: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reject"),
		),
	}
}

type Model struct {
	tr      *i18n.Translator
	list    list.Model
	keys    KeyMap
	pending string
}

func New(tr *i18n.Translator, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = tr.T("REQUESTS_TITLE")
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Approve, keys.Reject}
	}
	return Model{tr: tr, list: l, keys: keys}
}

func (m *Model) SetRequests(reqs []models.ReviewRequest) {
	items := make([]list.Item, len(reqs))
	for i, r := range reqs {
		items[i] = Item{Request: r, tr: m.tr}
	}
	m.list.SetItems(items)
	m.pending = ""
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// Pending returns the id of the request awaiting a backend decision.
func (m Model) Pending() string {
	return m.pending
}

func (m *Model) ClearPending() {
	m.pending = ""
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && m.pending == "" {
		approve := key.Matches(km, m.keys.Approve)
		if approve || key.Matches(km, m.keys.Reject) {
			i, ok := m.list.SelectedItem().(Item)
			if !ok {
				return m, nil
			}
			m.pending = i.Request.ID
			id, date := i.Request.ID, i.Request.Date
			return m, func() tea.Msg { return ReviewMsg{ID: id, Date: date, Approve: approve} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  " + m.tr.T("REQUESTS_EMPTY")
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
