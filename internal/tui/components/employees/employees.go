package employees

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/models"
)

type SelectEmployeeMsg struct {
	User models.User
}

type Item struct {
	User models.User
}

func (i Item) Title() string       { return i.User.Name }
func (i Item) Description() string { return i.User.UserID + " | " + i.User.Dept }
func (i Item) FilterValue() string { return i.User.Name }

type Model struct {
	tr     *i18n.Translator
	list   list.Model
	choose key.Binding
}

func New(tr *i18n.Translator, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = tr.T("EMPLOYEES_TITLE")
	l.SetShowHelp(false)
	return Model{
		tr:     tr,
		list:   l,
		choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}

func (m *Model) SetEmployees(users []models.User) {
	items := make([]list.Item, len(users))
	for i, u := range users {
		items[i] = Item{User: u}
	}
	m.list.SetItems(items)
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(km, m.choose) {
			if i, ok := m.list.SelectedItem().(Item); ok {
				u := i.User
				return m, func() tea.Msg { return SelectEmployeeMsg{User: u} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
