package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/punchcal/internal/constants"
)

type PunchType string

const (
	PunchIn  PunchType = "clock-in"
	PunchOut PunchType = "clock-out"
)

// Labels the backend writes into punch entries
const (
	legacyPunchIn  = "上班"
	legacyPunchOut = "下班"
)

// UnmarshalText accepts both the canonical values and the backend's legacy labels.
func (p *PunchType) UnmarshalText(text []byte) error {
	switch s := string(text); s {
	case legacyPunchIn, string(PunchIn):
		*p = PunchIn
	case legacyPunchOut, string(PunchOut):
		*p = PunchOut
	default:
		*p = PunchType(s)
	}
	return nil
}

// Legacy returns the label the backend expects on write requests.
func (p PunchType) Legacy() string {
	switch p {
	case PunchIn:
		return legacyPunchIn
	case PunchOut:
		return legacyPunchOut
	default:
		return string(p)
	}
}

// TranslationKey returns the i18n key used to display the punch type.
func (p PunchType) TranslationKey() string {
	if p == PunchIn {
		return "PUNCH_IN"
	}
	return "PUNCH_OUT"
}

type PunchEntry struct {
	Time     string    `json:"time"` // HH:MM format
	Type     PunchType `json:"type"`
	Location string    `json:"location"`
	Note     string    `json:"note"`
}

// AttendanceRecord is one day of punches as returned by the backend.
// Records are never patched after they are fetched.
type AttendanceRecord struct {
	Date   string       `json:"date"` // YYYY-MM-DD format
	Reason string       `json:"reason"`
	Record []PunchEntry `json:"record"`
}

// FilterByDate returns the records whose date equals dateKey, in input order.
func FilterByDate(records []AttendanceRecord, dateKey string) []AttendanceRecord {
	var out []AttendanceRecord
	for _, r := range records {
		if r.Date == dateKey {
			out = append(out, r)
		}
	}
	return out
}

// MonthKey formats a year and month as YYYY-MM.
func MonthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// DateKey formats a calendar date as YYYY-MM-DD.
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// MonthKeyOf derives the month-key of a date-key.
func MonthKeyOf(dateKey string) (string, error) {
	d, err := time.Parse(constants.DateFormat, dateKey)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", dateKey, err)
	}
	return d.Format(constants.MonthFormat), nil
}

// ParseMonthKey splits a YYYY-MM key into its year and month.
func ParseMonthKey(monthKey string) (int, time.Month, error) {
	d, err := time.Parse(constants.MonthFormat, monthKey)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q, use YYYY-MM: %w", monthKey, err)
	}
	return d.Year(), d.Month(), nil
}
