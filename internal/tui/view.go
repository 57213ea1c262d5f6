package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/i18n"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case constants.StateDashboard:
		content = docStyle.Render(m.dashboardModel.View())
	case constants.StateMonthly:
		content = docStyle.Render(m.viewMonthly())
	case constants.StateAdmin:
		content = docStyle.Render(m.viewAdmin())
	case constants.StateEmployeePicker:
		content = docStyle.Render(m.employeesModel.View())
	case constants.StateAdjustForm:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewNotice(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	titles := []string{m.tr.T("TAB_DASHBOARD"), m.tr.T("TAB_MONTHLY")}
	if m.admin {
		titles = append(titles, m.tr.T("TAB_ADMIN"))
	}
	var tabs []string
	for i, title := range titles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewNotice() string {
	if m.notice == "" {
		return ""
	}
	if m.noticeErr {
		return dangerStyle.Render("❌ " + m.notice)
	}
	return infoStyle.Render(m.notice)
}

func (m Model) viewMonthly() string {
	cal := m.monthly.View()
	if detail := m.daily.View(); detail != "" {
		return lipgloss.JoinVertical(lipgloss.Left, cal, "", detail)
	}
	return cal
}

func (m Model) viewAdmin() string {
	if m.pane == paneRequests {
		return m.requestsModel.View()
	}
	if m.subject == nil {
		return mutedStyle.Render(m.tr.T("SELECT_EMPLOYEE_HINT"))
	}

	title := titleStyle.Render(m.tr.T("EMPLOYEE_CALENDAR_TITLE", i18n.Params{"name": m.subject.Name}))
	cal := m.adminCal.View()
	parts := []string{title, "", cal}
	if detail := m.adminDaily.View(); detail != "" {
		parts = append(parts, "", detail)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
