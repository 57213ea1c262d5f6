package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/punchcal/internal/calendar"
	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/models"
)

type AdjustFormModel struct {
	Date string
	Time string
	Type models.PunchType
	Note string
}

// adjustFormFor prefills a form from an abnormal record: the missing punch
// type and its usual time.
func adjustFormFor(rec models.AttendanceRecord) *AdjustFormModel {
	fm := &AdjustFormModel{Date: rec.Date, Type: models.PunchOut, Time: "18:00"}
	if strings.TrimPrefix(rec.Reason, "STATUS_") == calendar.ReasonPunchInMissing {
		fm.Type = models.PunchIn
		fm.Time = "09:00"
	}
	return fm
}

func (fm *AdjustFormModel) Request() models.AdjustmentRequest {
	return models.AdjustmentRequest{
		Date: strings.TrimSpace(fm.Date),
		Time: strings.TrimSpace(fm.Time),
		Type: fm.Type,
		Note: strings.TrimSpace(fm.Note),
	}
}

func validateLayout(layout, msg string) func(string) error {
	return func(s string) error {
		if _, err := time.Parse(layout, strings.TrimSpace(s)); err != nil {
			return errors.New(msg)
		}
		return nil
	}
}

// NewAdjustForm builds the adjustment request form.
func NewAdjustForm(fm *AdjustFormModel, tr *i18n.Translator) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(tr.T("ADJUST_DATE")).
				Value(&fm.Date).
				Validate(validateLayout(constants.DateFormat, tr.T("VALIDATION_INVALID", i18n.Params{"field": "date"}))),
			huh.NewInput().
				Title(tr.T("ADJUST_TIME")).
				Value(&fm.Time).
				Validate(validateLayout(constants.TimeFormat, tr.T("VALIDATION_INVALID", i18n.Params{"field": "time"}))),
			huh.NewSelect[models.PunchType]().
				Title(tr.T("ADJUST_TYPE")).
				Options(
					huh.NewOption(tr.T("PUNCH_IN"), models.PunchIn),
					huh.NewOption(tr.T("PUNCH_OUT"), models.PunchOut),
				).
				Value(&fm.Type),
			huh.NewText().
				Title(tr.T("ADJUST_NOTE")).
				CharLimit(200).
				Value(&fm.Note).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New(tr.T("VALIDATION_REQUIRED", i18n.Params{"field": "note"}))
					}
					return nil
				}),
		).Title(tr.T("ADJUST_TITLE")),
	).WithShowHelp(true)
}
