package calendar

import (
	"context"
	"encoding/json"
	"time"

	"github.com/julianstephens/punchcal/internal/models"
)

type CellStyle string

const (
	StyleToday             CellStyle = "today"
	StyleFuture            CellStyle = "future-day"
	StyleNormal            CellStyle = "normal-day"
	StyleAbnormal          CellStyle = "abnormal-day"
	StyleDayOff            CellStyle = "day-off"
	StylePendingAdjustment CellStyle = "pending-adjustment"
	StylePendingVirtual    CellStyle = "pending-virtual"
	StyleApprovedVirtual   CellStyle = "approved-virtual"
)

// Style returns the cell style of a category.
func (c DayCategory) Style() CellStyle {
	switch c {
	case CategoryAbnormal:
		return StyleAbnormal
	case CategoryDayOff:
		return StyleDayOff
	case CategoryPendingAdjustment:
		return StylePendingAdjustment
	case CategoryPendingVirtual:
		return StylePendingVirtual
	case CategoryApprovedVirtual:
		return StyleApprovedVirtual
	default:
		return StyleNormal
	}
}

// ViewOptions selects between the personal and the administrative calendar.
type ViewOptions struct {
	Admin         bool
	SubjectUserID string
}

// DetailRequest asks for the records of one day.
type DetailRequest struct {
	Date          string
	SubjectUserID string
	Admin         bool
}

type Cell struct {
	Day         int
	DateKey     string
	Records     []models.AttendanceRecord
	Category    DayCategory
	Style       CellStyle
	Interactive bool
	Action      *DetailRequest
}

// Snapshot serializes the day's records.
func (c Cell) Snapshot() string {
	records := c.Records
	if records == nil {
		records = []models.AttendanceRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "[]"
	}
	return string(data)
}

type Grid struct {
	Year    int
	Month   time.Month
	Leading int // blank cells before day 1, Sunday first
	Cells   []Cell
}

func (g Grid) MonthKey() string {
	return models.MonthKey(g.Year, g.Month)
}

// Cell returns the cell of a day of the month.
func (g Grid) Cell(day int) (Cell, bool) {
	if day < 1 || day > len(g.Cells) {
		return Cell{}, false
	}
	return g.Cells[day-1], true
}

// DaysIn returns the number of days in a month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Build lays out a month. It never mutates records and always returns a fresh grid.
func Build(year int, month time.Month, today time.Time, records []models.AttendanceRecord, view ViewOptions) Grid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := DaysIn(year, month)

	grid := Grid{
		Year:    year,
		Month:   month,
		Leading: int(first.Weekday()),
		Cells:   make([]Cell, 0, days),
	}

	for day := 1; day <= days; day++ {
		dateKey := models.DateKey(year, month, day)
		dayRecords := models.FilterByDate(records, dateKey)
		category := ClassifyDay(dayRecords)
		cellDate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		cell := Cell{
			Day:         day,
			DateKey:     dateKey,
			Records:     dayRecords,
			Category:    category,
			Style:       category.Style(),
			Interactive: true,
		}

		switch {
		case cellDate.Equal(todayDate):
			cell.Style = StyleToday
		case cellDate.After(todayDate):
			cell.Style = StyleFuture
			cell.Interactive = false
		}

		if cell.Interactive {
			cell.Action = detailRequest(dateKey, view)
		}
		grid.Cells = append(grid.Cells, cell)
	}

	return grid
}

func detailRequest(dateKey string, view ViewOptions) *DetailRequest {
	if view.Admin && view.SubjectUserID != "" {
		return &DetailRequest{Date: dateKey, SubjectUserID: view.SubjectUserID, Admin: true}
	}
	return &DetailRequest{Date: dateKey}
}

// Renderer builds grids from a user's record cache.
type Renderer struct {
	cache *RecordCache
	view  ViewOptions
}

func NewRenderer(cache *RecordCache, view ViewOptions) *Renderer {
	return &Renderer{cache: cache, view: view}
}

// Render loads the month through the cache, fetching it on a miss, and builds its grid.
func (r *Renderer) Render(ctx context.Context, year int, month time.Month, today time.Time) (Grid, error) {
	records, err := r.cache.Load(ctx, models.MonthKey(year, month))
	if err != nil {
		return Grid{}, err
	}
	return Build(year, month, today, records, r.view), nil
}
