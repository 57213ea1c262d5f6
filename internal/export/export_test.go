package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/models"
)

func sampleRecords() []models.AttendanceRecord {
	return []models.AttendanceRecord{
		{Date: "2024-01-10", Reason: "STATUS_PUNCH_IN_MISSING", Record: []models.PunchEntry{
			{Time: "18:02", Type: models.PunchOut, Location: "HQ"},
		}},
		{Date: "2024-01-02", Record: []models.PunchEntry{
			{Time: "09:00", Type: models.PunchIn, Location: "HQ"},
			{Time: "18:00", Type: models.PunchOut, Location: "HQ", Note: "late train"},
		}},
		{Date: "2024-01-20", Reason: "REPAIR_PENDING"},
	}
}

func readRows(t *testing.T, f *excelize.File) [][]string {
	t.Helper()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	return rows
}

func TestMonthReport(t *testing.T) {
	tr, err := i18n.New("en-US")
	if err != nil {
		t.Fatal(err)
	}

	f, err := MonthReport("2024-01", sampleRecords(), tr)
	if err != nil {
		t.Fatalf("MonthReport() error = %v", err)
	}
	defer f.Close()

	if name := f.GetSheetName(0); name != "Attendance 2024-01" {
		t.Errorf("sheet name = %q", name)
	}

	rows := readRows(t, f)
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want header + 4", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][5] != "Note" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "2024-01-02" || rows[1][3] != "Clock in" {
		t.Errorf("first data row = %v", rows[1])
	}
	if rows[2][5] != "late train" {
		t.Errorf("note column = %v", rows[2])
	}
	if rows[3][1] != "Missing clock-in" {
		t.Errorf("status = %q, want translated reason", rows[3][1])
	}
	if rows[4][0] != "2024-01-20" || rows[4][1] != "Repair pending review" {
		t.Errorf("empty day row = %v", rows[4])
	}
}

func TestSaveMonthReopens(t *testing.T) {
	tr, _ := i18n.New("en-US")
	path := filepath.Join(t.TempDir(), "2024-01.xlsx")
	if err := SaveMonth(path, "2024-01", sampleRecords(), tr); err != nil {
		t.Fatalf("SaveMonth() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer f.Close()
	if rows := readRows(t, f); len(rows) != 5 {
		t.Errorf("reopened rows = %d, want 5", len(rows))
	}
}

func TestWriteMonthEmpty(t *testing.T) {
	tr, _ := i18n.New("en-US")
	var buf bytes.Buffer
	if err := WriteMonth(&buf, "2024-02", nil, tr); err != nil {
		t.Fatalf("WriteMonth() error = %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()
	if rows := readRows(t, f); len(rows) != 1 {
		t.Errorf("rows = %d, want header only", len(rows))
	}
}
