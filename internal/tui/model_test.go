package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/punchcal/internal/calendar"
	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/models"
	"github.com/julianstephens/punchcal/internal/tui/components/dashboard"
)

type fakeBackend struct {
	punches []models.PunchRequest
}

func (f *fakeBackend) Punch(ctx context.Context, req models.PunchRequest) (string, error) {
	f.punches = append(f.punches, req)
	return "ok", nil
}
func (f *fakeBackend) SubmitAdjustment(ctx context.Context, req models.AdjustmentRequest) (string, error) {
	return "ok", nil
}
func (f *fakeBackend) ReviewRequests(ctx context.Context) ([]models.ReviewRequest, error) {
	return nil, nil
}
func (f *fakeBackend) ApproveRequest(ctx context.Context, id string) (string, error) { return "", nil }
func (f *fakeBackend) RejectRequest(ctx context.Context, id string) (string, error)  { return "", nil }
func (f *fakeBackend) Employees(ctx context.Context) ([]models.User, error)          { return nil, nil }

type countingLoader struct {
	calls int
}

func (l *countingLoader) FetchMonth(ctx context.Context, userID, monthKey string) ([]models.AttendanceRecord, error) {
	l.calls++
	return []models.AttendanceRecord{{Date: monthKey + "-10", Reason: "PUNCH_OUT_MISSING"}}, nil
}

func newTestModel(t *testing.T, admin bool) (Model, *fakeBackend, *countingLoader) {
	t.Helper()
	tr, err := i18n.New("en-US")
	if err != nil {
		t.Fatal(err)
	}
	backend := &fakeBackend{}
	loader := &countingLoader{}
	m := NewModel(Options{
		Backend:    backend,
		Registry:   calendar.NewRegistry(loader),
		Translator: tr,
		User:       models.User{UserID: "U1", Name: "Mei"},
		Admin:      admin,
		Now:        func() time.Time { return time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC) },
	})
	return m, backend, loader
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestAdminTabGated(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	m.state = constants.StateMonthly

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state == constants.StateAdmin {
		t.Fatal("non-admin reached the admin tab")
	}
	if !m.noticeErr || !strings.Contains(m.notice, "permission") {
		t.Errorf("notice = %q, want permission error", m.notice)
	}
	if strings.Contains(m.viewTabs(), "Admin") {
		t.Error("admin tab rendered for non-admin")
	}
}

func TestAdminTabOpens(t *testing.T) {
	m, _, _ := newTestModel(t, true)
	m.state = constants.StateMonthly

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != constants.StateAdmin {
		t.Fatalf("state = %v, want admin", m.state)
	}
	if cmd == nil {
		t.Error("expected review requests to be loaded on first visit")
	}
}

func TestPunchDisabledWhileProcessing(t *testing.T) {
	m, _, _ := newTestModel(t, false)

	m, cmd := update(t, m, dashboard.PunchMsg{Type: models.PunchIn})
	if cmd == nil || !m.dashboardModel.Processing() {
		t.Fatal("first punch should start processing")
	}
	_, cmd = update(t, m, dashboard.PunchMsg{Type: models.PunchOut})
	if cmd != nil {
		t.Error("second punch while processing should be ignored")
	}
}

func TestPunchDoneInvalidatesMonth(t *testing.T) {
	m, _, loader := newTestModel(t, false)
	cache := m.selfCache()
	if _, err := cache.Load(context.Background(), "2024-01"); err != nil {
		t.Fatal(err)
	}
	m.dashboardModel.SetProcessing(true)

	m, _ = update(t, m, punchDoneMsg{typ: models.PunchIn})
	if m.dashboardModel.Processing() {
		t.Error("processing flag not cleared")
	}
	if m.notice != "Clock in recorded" {
		t.Errorf("notice = %q", m.notice)
	}
	if _, ok := cache.Get("2024-01"); ok {
		t.Error("punched month still cached")
	}
	if loader.calls != 1 {
		t.Errorf("loader calls = %d, refetch should be deferred to a command", loader.calls)
	}
}

func TestCachedMonthRendersWithoutFetch(t *testing.T) {
	m, _, loader := newTestModel(t, false)
	if _, err := m.selfCache().Load(context.Background(), "2023-12"); err != nil {
		t.Fatal(err)
	}
	m.state = constants.StateMonthly

	next, cmd := m.shiftMonth(-1)
	mm := next.(Model)
	if cmd != nil {
		t.Error("cached month should render synchronously")
	}
	grid, ok := mm.monthly.Grid()
	if !ok || grid.Month != time.December || grid.Year != 2023 {
		t.Errorf("grid = %d-%d loaded=%v", grid.Year, grid.Month, ok)
	}
	if loader.calls != 1 {
		t.Errorf("loader calls = %d, want 1", loader.calls)
	}
}

func TestStaleMonthIgnored(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	grid := calendar.Build(2023, time.November, m.now(), nil, calendar.ViewOptions{})

	m, _ = update(t, m, monthLoadedMsg{target: targetSelf, userID: "U1", year: 2023, month: time.November, grid: grid})
	if _, ok := m.monthly.Grid(); ok {
		t.Error("grid of a month no longer shown was installed")
	}
}

func TestMonthLoadedMovesCursorToToday(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	grid := calendar.Build(2024, time.January, m.now(), nil, calendar.ViewOptions{})

	m, _ = update(t, m, monthLoadedMsg{target: targetSelf, userID: "U1", year: 2024, month: time.January, grid: grid})
	if m.monthly.Cursor() != 15 {
		t.Errorf("cursor = %d, want 15", m.monthly.Cursor())
	}
}

func TestAdjustFormFor(t *testing.T) {
	tests := []struct {
		reason string
		want   models.PunchType
		time   string
	}{
		{"STATUS_PUNCH_IN_MISSING", models.PunchIn, "09:00"},
		{"PUNCH_OUT_MISSING", models.PunchOut, "18:00"},
	}
	for _, tt := range tests {
		fm := adjustFormFor(models.AttendanceRecord{Date: "2024-01-10", Reason: tt.reason})
		if fm.Type != tt.want || fm.Time != tt.time || fm.Date != "2024-01-10" {
			t.Errorf("adjustFormFor(%s) = %+v", tt.reason, fm)
		}
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		delta int
		wantY int
		wantM time.Month
	}{
		{2024, time.January, -1, 2023, time.December},
		{2024, time.December, 1, 2025, time.January},
		{2024, time.June, 0, 2024, time.June},
	}
	for _, tt := range tests {
		y, mo := addMonths(tt.year, tt.month, tt.delta)
		if y != tt.wantY || mo != tt.wantM {
			t.Errorf("addMonths(%d, %v, %d) = %d, %v", tt.year, tt.month, tt.delta, y, mo)
		}
	}
}

func TestFailedDayClearsLoading(t *testing.T) {
	tests := []struct {
		name   string
		target target
	}{
		{"self", targetSelf},
		{"admin", targetAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestModel(t, true)
			m.daily.SetLoading()
			m.adminDaily.SetLoading()

			m, _ = update(t, m, dayLoadedMsg{target: tt.target, err: errors.New("connection reset")})

			view := m.daily.View()
			if tt.target == targetAdmin {
				view = m.adminDaily.View()
			}
			if strings.Contains(view, "Loading") {
				t.Errorf("day view still loading after a failed fetch: %q", view)
			}
			if !m.noticeErr {
				t.Error("failed fetch should post an error notice")
			}
		})
	}
}

func TestFailedMonthDropsPreviousGrid(t *testing.T) {
	t.Run("self", func(t *testing.T) {
		m, _, _ := newTestModel(t, false)
		m.monthly.SetGrid(calendar.Build(2024, time.January, m.now(), nil, calendar.ViewOptions{}))
		m.month = time.February
		m.monthly.SetLoading(true)

		m, _ = update(t, m, monthLoadedMsg{target: targetSelf, userID: "U1", year: 2024, month: time.February, err: errors.New("timeout")})

		if _, ok := m.monthly.Grid(); ok {
			t.Error("January grid still installed while February is shown")
		}
		if got := m.monthly.View(); got != "Failed to fetch attendance records" {
			t.Errorf("view = %q", got)
		}
		if _, cmd := m.monthly.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
			t.Error("enter on a failed month should not select a day")
		}
	})

	t.Run("admin", func(t *testing.T) {
		m, _, _ := newTestModel(t, true)
		m.subject = &models.User{UserID: "U7", Name: "Ken"}
		m.adminCal.SetGrid(calendar.Build(2024, time.January, m.now(), nil, calendar.ViewOptions{Admin: true, SubjectUserID: "U7"}))
		m.adminMonth = time.February

		m, _ = update(t, m, monthLoadedMsg{target: targetAdmin, userID: "U7", year: 2024, month: time.February, err: errors.New("timeout")})

		if _, ok := m.adminCal.Grid(); ok {
			t.Error("admin grid of the previous month still installed")
		}
		if !m.adminCal.Failed() {
			t.Error("admin calendar not marked failed")
		}
	})
}

func TestPunchNoticeIncludesBackendMessage(t *testing.T) {
	m, backend, _ := newTestModel(t, false)
	req := models.PunchRequest{Type: models.PunchOut}

	msg := punchCmd(backend, req)()
	done, ok := msg.(punchDoneMsg)
	if !ok {
		t.Fatalf("msg = %T, want punchDoneMsg", msg)
	}
	if done.msg != "ok" {
		t.Errorf("msg = %q, want backend message", done.msg)
	}

	m, _ = update(t, m, done)
	if m.notice != "Clock out recorded: ok" {
		t.Errorf("notice = %q", m.notice)
	}
}
