package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/punchcal/internal/calendar"
	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/models"
	calview "github.com/julianstephens/punchcal/internal/tui/components/calendar"
	"github.com/julianstephens/punchcal/internal/tui/components/daily"
	"github.com/julianstephens/punchcal/internal/tui/components/dashboard"
	"github.com/julianstephens/punchcal/internal/tui/components/employees"
	"github.com/julianstephens/punchcal/internal/tui/components/requests"
)

// Backend is the part of the API client the TUI calls directly. Month
// fetches go through the calendar registry instead.
type Backend interface {
	Punch(ctx context.Context, req models.PunchRequest) (string, error)
	SubmitAdjustment(ctx context.Context, req models.AdjustmentRequest) (string, error)
	ReviewRequests(ctx context.Context) ([]models.ReviewRequest, error)
	ApproveRequest(ctx context.Context, id string) (string, error)
	RejectRequest(ctx context.Context, id string) (string, error)
	Employees(ctx context.Context) ([]models.User, error)
}

type Options struct {
	Backend    Backend
	Registry   *calendar.Registry
	Translator *i18n.Translator
	User       models.User
	Admin      bool
	Now        func() time.Time
}

type adminPane int

const (
	paneRequests adminPane = iota
	paneCalendar
)

type Model struct {
	backend  Backend
	registry *calendar.Registry
	tr       *i18n.Translator
	user     models.User
	admin    bool
	now      func() time.Time

	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model

	dashboardModel dashboard.Model
	monthly        calview.Model
	daily          daily.Model
	year           int
	month          time.Month

	requestsModel   requests.Model
	requestsLoaded  bool
	employeesModel  employees.Model
	employeesLoaded bool
	adminCal        calview.Model
	adminDaily      daily.Model
	subject         *models.User
	adminYear       int
	adminMonth      time.Month
	pane            adminPane

	form       *huh.Form
	adjustForm *AdjustFormModel

	notice    string
	noticeErr bool
	noticeSeq int

	quitting bool
	width    int
	height   int
}

func NewModel(opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	today := now()

	return Model{
		backend:        opts.Backend,
		registry:       opts.Registry,
		tr:             opts.Translator,
		user:           opts.User,
		admin:          opts.Admin,
		now:            now,
		state:          constants.StateDashboard,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		dashboardModel: newDashboard(opts.Translator, opts.User),
		monthly:        calview.New(opts.Translator),
		daily:          daily.New(opts.Translator, 40, 10),
		year:           today.Year(),
		month:          today.Month(),
		requestsModel:  requests.New(opts.Translator, 0, 0),
		employeesModel: employees.New(opts.Translator, 0, 0),
		adminCal:       calview.New(opts.Translator),
		adminDaily:     daily.New(opts.Translator, 40, 10),
		adminYear:      today.Year(),
		adminMonth:     today.Month(),
	}
}

func newDashboard(tr *i18n.Translator, u models.User) dashboard.Model {
	d := dashboard.New(tr)
	d.SetUser(u)
	return d
}

func (m Model) Init() tea.Cmd {
	today := m.now()
	cache := m.selfCache()
	cmds := []tea.Cmd{
		renderMonthCmd(targetSelf, calendar.NewRenderer(cache, calendar.ViewOptions{}), m.user.UserID, m.year, m.month, today),
		abnormalCmd(cache, models.MonthKey(today.Year(), today.Month())),
	}
	return tea.Batch(cmds...)
}

func (m Model) selfCache() *calendar.RecordCache {
	return m.registry.For(m.user.UserID)
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateDashboard:
		dk := m.dashboardModel.Keys()
		keys = append(keys, dk.PunchIn, dk.PunchOut, dk.Adjust)
	case constants.StateMonthly:
		ck := m.monthly.Keys()
		keys = append(keys, ck.PrevMonth, ck.NextMonth, ck.Select)
	case constants.StateAdmin:
		keys = append(keys, m.keys.SwitchPane, m.keys.PickEmployee)
	case constants.StateEmployeePicker:
		keys = append(keys, m.keys.Back)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}

	var actions []key.Binding
	switch m.state {
	case constants.StateDashboard:
		dk := m.dashboardModel.Keys()
		actions = []key.Binding{dk.PunchIn, dk.PunchOut, dk.Up, dk.Down, dk.Adjust}
	case constants.StateMonthly:
		ck := m.monthly.Keys()
		actions = []key.Binding{ck.Up, ck.Down, ck.Left, ck.Right, ck.PrevMonth, ck.NextMonth, ck.Select}
	case constants.StateAdmin:
		rk := requests.DefaultKeyMap()
		actions = []key.Binding{m.keys.SwitchPane, m.keys.PickEmployee, rk.Approve, rk.Reject}
	}

	return [][]key.Binding{global, actions}
}
