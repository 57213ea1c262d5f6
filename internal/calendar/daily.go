package calendar

import (
	"context"

	"github.com/julianstephens/punchcal/internal/models"
)

type DayDetail struct {
	DateKey string
	Records []models.AttendanceRecord
}

func (d DayDetail) Empty() bool {
	return len(d.Records) == 0
}

// DailyRecordView looks up one day in a user's cached month.
type DailyRecordView struct {
	cache *RecordCache
}

func NewDailyRecordView(cache *RecordCache) *DailyRecordView {
	return &DailyRecordView{cache: cache}
}

// Show filters the day's records out of its month on every call; only months are cached.
func (v *DailyRecordView) Show(ctx context.Context, dateKey string) (DayDetail, error) {
	monthKey, err := models.MonthKeyOf(dateKey)
	if err != nil {
		return DayDetail{}, err
	}
	records, err := v.cache.Load(ctx, monthKey)
	if err != nil {
		return DayDetail{}, err
	}
	return DayDetail{
		DateKey: dateKey,
		Records: models.FilterByDate(records, dateKey),
	}, nil
}
