package tui

import (
	"time"

	"github.com/julianstephens/punchcal/internal/calendar"
	"github.com/julianstephens/punchcal/internal/models"
)

// target distinguishes the personal calendar from the admin's view of an
// employee.
type target int

const (
	targetSelf target = iota
	targetAdmin
)

type monthLoadedMsg struct {
	target target
	userID string
	year   int
	month  time.Month
	grid   calendar.Grid
	err    error
}

type dayLoadedMsg struct {
	target target
	detail calendar.DayDetail
	err    error
}

type abnormalLoadedMsg struct {
	records []models.AttendanceRecord
	err     error
}

type punchDoneMsg struct {
	typ models.PunchType
	msg string
	err error
}

type adjustDoneMsg struct {
	date string
	err  error
}

type requestsLoadedMsg struct {
	requests []models.ReviewRequest
	err      error
}

type reviewDoneMsg struct {
	approve bool
	date    string
	err     error
}

type employeesLoadedMsg struct {
	users []models.User
	err   error
}

type clearNoticeMsg struct {
	seq int
}
