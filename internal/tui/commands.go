package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/punchcal/internal/calendar"
	"github.com/julianstephens/punchcal/internal/models"
	"github.com/julianstephens/punchcal/internal/tui/components/dashboard"
)

const noticeDuration = 4 * time.Second

func renderMonthCmd(t target, r *calendar.Renderer, userID string, year int, month time.Month, today time.Time) tea.Cmd {
	return func() tea.Msg {
		grid, err := r.Render(context.Background(), year, month, today)
		return monthLoadedMsg{target: t, userID: userID, year: year, month: month, grid: grid, err: err}
	}
}

func showDayCmd(t target, v *calendar.DailyRecordView, dateKey string) tea.Cmd {
	return func() tea.Msg {
		detail, err := v.Show(context.Background(), dateKey)
		return dayLoadedMsg{target: t, detail: detail, err: err}
	}
}

func abnormalCmd(cache *calendar.RecordCache, monthKey string) tea.Cmd {
	return func() tea.Msg {
		records, err := cache.Load(context.Background(), monthKey)
		if err != nil {
			return abnormalLoadedMsg{err: err}
		}
		return abnormalLoadedMsg{records: dashboard.Abnormal(records)}
	}
}

func punchCmd(b Backend, req models.PunchRequest) tea.Cmd {
	return func() tea.Msg {
		msg, err := b.Punch(context.Background(), req)
		return punchDoneMsg{typ: req.Type, msg: msg, err: err}
	}
}

func adjustCmd(b Backend, req models.AdjustmentRequest) tea.Cmd {
	return func() tea.Msg {
		_, err := b.SubmitAdjustment(context.Background(), req)
		return adjustDoneMsg{date: req.Date, err: err}
	}
}

func requestsCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		reqs, err := b.ReviewRequests(context.Background())
		return requestsLoadedMsg{requests: reqs, err: err}
	}
}

func reviewCmd(b Backend, id, date string, approve bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if approve {
			_, err = b.ApproveRequest(context.Background(), id)
		} else {
			_, err = b.RejectRequest(context.Background(), id)
		}
		return reviewDoneMsg{approve: approve, date: date, err: err}
	}
}

func employeesCmd(b Backend) tea.Cmd {
	return func() tea.Msg {
		users, err := b.Employees(context.Background())
		return employeesLoadedMsg{users: users, err: err}
	}
}

func clearNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}
