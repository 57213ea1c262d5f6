package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/punchcal/internal/api"
	"github.com/julianstephens/punchcal/internal/calendar"
	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/logger"
	"github.com/julianstephens/punchcal/internal/models"
	calview "github.com/julianstephens/punchcal/internal/tui/components/calendar"
	"github.com/julianstephens/punchcal/internal/tui/components/dashboard"
	"github.com/julianstephens/punchcal/internal/tui/components/employees"
	"github.com/julianstephens/punchcal/internal/tui/components/requests"
	"github.com/julianstephens/punchcal/internal/validation"
)

const tabCount = 3

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle Adjustment Form State
	if m.state == constants.StateAdjustForm {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		listHeight := max(msg.Height-8, 5)
		m.requestsModel.SetSize(msg.Width-4, listHeight)
		m.employeesModel.SetSize(msg.Width-4, listHeight)
		m.daily.SetSize(msg.Width-4, 10)
		m.adminDaily.SetSize(msg.Width-4, 10)
		return m, nil

	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
		return m, cmd

	case monthLoadedMsg:
		return m.handleMonthLoaded(msg)

	case dayLoadedMsg:
		if msg.err != nil {
			if msg.target == targetAdmin {
				m.adminDaily.Clear()
			} else {
				m.daily.Clear()
			}
			return m, m.notifyErr(msg.err, "ERROR_FETCH_RECORDS")
		}
		if msg.target == targetAdmin {
			m.adminDaily.SetDetail(msg.detail)
		} else {
			m.daily.SetDetail(msg.detail)
		}
		return m, nil

	case abnormalLoadedMsg:
		if msg.err != nil {
			m.dashboardModel.SetAbnormal(nil)
			return m, m.notifyErr(msg.err, "ERROR_FETCH_RECORDS")
		}
		m.dashboardModel.SetAbnormal(msg.records)
		return m, nil

	case dashboard.PunchMsg:
		return m.startPunch(msg.Type)

	case punchDoneMsg:
		m.dashboardModel.SetProcessing(false)
		if msg.err != nil {
			return m, m.notifyErr(msg.err, "")
		}
		text := m.tr.T("PUNCH_SUCCESS", i18n.Params{"type": m.tr.T(msg.typ.TranslationKey())})
		if msg.msg != "" {
			text += ": " + msg.msg
		}
		notice := m.notify(text, false)
		today := m.now()
		return m, tea.Batch(notice, m.refreshMonth(models.MonthKey(today.Year(), today.Month())))

	case dashboard.AdjustMsg:
		m.adjustForm = adjustFormFor(msg.Record)
		m.form = NewAdjustForm(m.adjustForm, m.tr)
		m.previousState = m.state
		m.state = constants.StateAdjustForm
		return m, m.form.Init()

	case adjustDoneMsg:
		if msg.err != nil {
			return m, m.notifyErr(msg.err, "")
		}
		notice := m.notify(m.tr.T("ADJUST_SUBMITTED"), false)
		monthKey, err := models.MonthKeyOf(msg.date)
		if err != nil {
			return m, notice
		}
		return m, tea.Batch(notice, m.refreshMonth(monthKey))

	case calview.SelectDayMsg:
		return m.showDay(msg.Request)

	case calview.PrevMonthMsg:
		return m.shiftMonth(-1)

	case calview.NextMonthMsg:
		return m.shiftMonth(1)

	case requestsLoadedMsg:
		if msg.err != nil {
			return m, m.notifyErr(msg.err, "")
		}
		m.requestsLoaded = true
		m.requestsModel.SetRequests(msg.requests)
		return m, nil

	case requests.ReviewMsg:
		return m, reviewCmd(m.backend, msg.ID, msg.Date, msg.Approve)

	case reviewDoneMsg:
		m.requestsModel.ClearPending()
		if msg.err != nil {
			return m, m.notifyErr(msg.err, "")
		}
		text := m.tr.T("REQUEST_REJECTED")
		if msg.approve {
			text = m.tr.T("REQUEST_APPROVED")
		}
		if monthKey, err := models.MonthKeyOf(msg.date); err == nil {
			m.registry.Invalidate(monthKey)
		}
		return m, tea.Batch(m.notify(text, false), requestsCmd(m.backend))

	case employeesLoadedMsg:
		if msg.err != nil {
			m.state = constants.StateAdmin
			return m, m.notifyErr(msg.err, "")
		}
		m.employeesLoaded = true
		m.employeesModel.SetEmployees(msg.users)
		return m, nil

	case employees.SelectEmployeeMsg:
		u := msg.User
		m.subject = &u
		m.state = constants.StateAdmin
		m.pane = paneCalendar
		m.adminDaily.Clear()
		return m, m.showAdminMonth()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == constants.StateEmployeePicker {
		if key.Matches(msg, m.keys.Back) {
			m.state = constants.StateAdmin
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.employeesModel, cmd = m.employeesModel.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		return m.switchTab(1)
	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchTab(-1)
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateDashboard:
		if key.Matches(msg, m.keys.Refresh) {
			today := m.now()
			return m, m.refreshMonth(models.MonthKey(today.Year(), today.Month()))
		}
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)

	case constants.StateMonthly:
		switch {
		case key.Matches(msg, m.keys.Refresh):
			m.selfCache().Invalidate(models.MonthKey(m.year, m.month))
			return m, m.showSelfMonth()
		case msg.String() == "pgup" || msg.String() == "pgdown":
			m.daily, cmd = m.daily.Update(msg)
		default:
			m.monthly, cmd = m.monthly.Update(msg)
		}

	case constants.StateAdmin:
		switch {
		case key.Matches(msg, m.keys.SwitchPane):
			if m.pane == paneRequests {
				m.pane = paneCalendar
			} else {
				m.pane = paneRequests
			}
			return m, nil
		case key.Matches(msg, m.keys.PickEmployee):
			m.state = constants.StateEmployeePicker
			if !m.employeesLoaded {
				return m, employeesCmd(m.backend)
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if m.pane == paneRequests {
				return m, requestsCmd(m.backend)
			}
			if m.subject != nil {
				m.registry.For(m.subject.UserID).Invalidate(models.MonthKey(m.adminYear, m.adminMonth))
				return m, m.showAdminMonth()
			}
			return m, nil
		}
		if m.pane == paneRequests {
			m.requestsModel, cmd = m.requestsModel.Update(msg)
		} else if m.subject != nil {
			m.adminCal, cmd = m.adminCal.Update(msg)
		}
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.Type == tea.KeyEsc {
		m.state = m.previousState
		m.form = nil
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.previousState
		req := m.adjustForm.Request()
		m.form = nil
		if err := validation.Struct(req, m.tr); err != nil {
			return m, m.notify(err.Error(), true)
		}
		cmds = append(cmds, m.notify(m.tr.T("PROCESSING"), false), adjustCmd(m.backend, req))
	case huh.StateAborted:
		m.state = m.previousState
		m.form = nil
	}
	return m, tea.Batch(cmds...)
}

func (m Model) switchTab(delta int) (tea.Model, tea.Cmd) {
	if int(m.state) >= tabCount {
		return m, nil
	}
	next := constants.SessionState((int(m.state) + delta + tabCount) % tabCount)
	if next == constants.StateAdmin && !m.admin {
		// Non-admins are told why and moved past the admin tab.
		notice := m.notify(m.tr.T("ERR_NO_PERMISSION"), true)
		next = constants.SessionState((int(next) + delta + tabCount) % tabCount)
		m.state = next
		return m, notice
	}
	m.state = next
	if next == constants.StateAdmin && !m.requestsLoaded {
		return m, requestsCmd(m.backend)
	}
	return m, nil
}

func (m Model) startPunch(typ models.PunchType) (tea.Model, tea.Cmd) {
	if m.dashboardModel.Processing() {
		return m, nil
	}
	req := models.PunchRequest{Type: typ}
	if err := validation.Struct(req, m.tr); err != nil {
		return m, m.notify(err.Error(), true)
	}
	spin := m.dashboardModel.SetProcessing(true)
	return m, tea.Batch(spin, punchCmd(m.backend, req))
}

// refreshMonth drops a month from every cache and reloads the views that
// show it.
func (m *Model) refreshMonth(monthKey string) tea.Cmd {
	m.registry.Invalidate(monthKey)

	var cmds []tea.Cmd
	today := m.now()
	if monthKey == models.MonthKey(today.Year(), today.Month()) {
		cmds = append(cmds, abnormalCmd(m.selfCache(), monthKey))
	}
	if monthKey == models.MonthKey(m.year, m.month) {
		cmds = append(cmds, m.showSelfMonth())
	}
	if m.subject != nil && monthKey == models.MonthKey(m.adminYear, m.adminMonth) {
		cmds = append(cmds, m.showAdminMonth())
	}
	return tea.Batch(cmds...)
}

// showSelfMonth renders the personal month, synchronously when it is cached.
func (m *Model) showSelfMonth() tea.Cmd {
	cache := m.selfCache()
	r := calendar.NewRenderer(cache, calendar.ViewOptions{})
	m.daily.Clear()
	if _, ok := cache.Get(models.MonthKey(m.year, m.month)); ok {
		if grid, err := r.Render(context.Background(), m.year, m.month, m.now()); err == nil {
			m.setGrid(&m.monthly, grid)
			return nil
		}
	}
	m.monthly.SetLoading(true)
	return renderMonthCmd(targetSelf, r, m.user.UserID, m.year, m.month, m.now())
}

func (m *Model) showAdminMonth() tea.Cmd {
	if m.subject == nil {
		return nil
	}
	cache := m.registry.For(m.subject.UserID)
	r := calendar.NewRenderer(cache, calendar.ViewOptions{Admin: true, SubjectUserID: m.subject.UserID})
	m.adminDaily.Clear()
	if _, ok := cache.Get(models.MonthKey(m.adminYear, m.adminMonth)); ok {
		if grid, err := r.Render(context.Background(), m.adminYear, m.adminMonth, m.now()); err == nil {
			m.setGrid(&m.adminCal, grid)
			return nil
		}
	}
	m.adminCal.SetLoading(true)
	return renderMonthCmd(targetAdmin, r, m.subject.UserID, m.adminYear, m.adminMonth, m.now())
}

// setGrid installs a grid and moves the cursor to today when the month is
// the current one.
func (m *Model) setGrid(c *calview.Model, grid calendar.Grid) {
	c.SetGrid(grid)
	today := m.now()
	if grid.Year == today.Year() && grid.Month == today.Month() {
		c.SetCursor(today.Day())
	}
}

func (m Model) handleMonthLoaded(msg monthLoadedMsg) (tea.Model, tea.Cmd) {
	switch msg.target {
	case targetSelf:
		if msg.year != m.year || msg.month != m.month {
			return m, nil
		}
		if msg.err != nil {
			m.monthly.SetFailed()
			return m, m.notifyErr(msg.err, "ERROR_FETCH_RECORDS")
		}
		m.setGrid(&m.monthly, msg.grid)
	case targetAdmin:
		if m.subject == nil || msg.userID != m.subject.UserID || msg.year != m.adminYear || msg.month != m.adminMonth {
			return m, nil
		}
		if msg.err != nil {
			m.adminCal.SetFailed()
			return m, m.notifyErr(msg.err, "ERROR_FETCH_RECORDS")
		}
		m.setGrid(&m.adminCal, msg.grid)
	}
	return m, nil
}

func (m Model) shiftMonth(delta int) (tea.Model, tea.Cmd) {
	if m.state == constants.StateAdmin {
		y, mo := addMonths(m.adminYear, m.adminMonth, delta)
		m.adminYear, m.adminMonth = y, mo
		return m, m.showAdminMonth()
	}
	m.year, m.month = addMonths(m.year, m.month, delta)
	return m, m.showSelfMonth()
}

func (m Model) showDay(req calendar.DetailRequest) (tea.Model, tea.Cmd) {
	if req.Admin {
		view := calendar.NewDailyRecordView(m.registry.For(req.SubjectUserID))
		m.adminDaily.SetLoading()
		return m, showDayCmd(targetAdmin, view, req.Date)
	}
	view := calendar.NewDailyRecordView(m.selfCache())
	m.daily.SetLoading()
	return m, showDayCmd(targetSelf, view, req.Date)
}

func (m *Model) notify(text string, isErr bool) tea.Cmd {
	m.noticeSeq++
	m.notice = text
	m.noticeErr = isErr
	return clearNoticeCmd(m.noticeSeq)
}

// notifyErr logs err and shows it translated, optionally behind a
// translated prefix.
func (m *Model) notifyErr(err error, prefixKey string) tea.Cmd {
	logger.Error("TUI operation failed", "error", err)
	text := api.Describe(err, m.tr)
	if prefixKey != "" {
		text = m.tr.T(prefixKey) + ": " + text
	}
	return m.notify(text, true)
}

func addMonths(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}
