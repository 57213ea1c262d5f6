// Package export writes a month of attendance records as a spreadsheet.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/punchcal/internal/calendar"
	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/models"
)

var headerKeys = []string{
	"EXPORT_HEADER_DATE",
	"EXPORT_HEADER_STATUS",
	"EXPORT_HEADER_TIME",
	"EXPORT_HEADER_TYPE",
	"EXPORT_HEADER_LOCATION",
	"EXPORT_HEADER_NOTE",
}

// MonthReport builds a workbook with one row per punch. Days without punches
// get a single row carrying only their status. The caller must Close it.
func MonthReport(monthKey string, records []models.AttendanceRecord, tr *i18n.Translator) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := fmt.Sprintf("%s %s", tr.T("EXPORT_SHEET"), monthKey)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(headerKeys))
	for i, key := range headerKeys {
		header[i] = tr.T(key)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		f.Close()
		return nil, err
	}

	sorted := make([]models.AttendanceRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	row := 2
	for _, rec := range sorted {
		status := statusLabel(rec, tr)
		entries := rec.Record
		if len(entries) == 0 {
			entries = []models.PunchEntry{{}}
		}
		for _, e := range entries {
			typ := ""
			if e.Type != "" {
				typ = tr.T(e.Type.TranslationKey())
			}
			values := []any{rec.Date, status, e.Time, typ, e.Location, e.Note}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				f.Close()
				return nil, err
			}
			row++
		}
	}

	if err := f.SetColWidth(sheet, "A", "F", 16); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func statusLabel(rec models.AttendanceRecord, tr *i18n.Translator) string {
	if key := calendar.ReasonKey(rec.Reason); key != "" && tr.Has(key) {
		return tr.T(key)
	}
	return tr.T(calendar.Classify(rec.Reason).TranslationKey())
}

// WriteMonth streams the month report as .xlsx to w.
func WriteMonth(w io.Writer, monthKey string, records []models.AttendanceRecord, tr *i18n.Translator) error {
	f, err := MonthReport(monthKey, records, tr)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

// SaveMonth writes the month report to path.
func SaveMonth(path, monthKey string, records []models.AttendanceRecord, tr *i18n.Translator) error {
	f, err := MonthReport(monthKey, records, tr)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
