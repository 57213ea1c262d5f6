package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPunchTypeUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want PunchType
	}{
		{"legacy clock-in label", `"上班"`, PunchIn},
		{"legacy clock-out label", `"下班"`, PunchOut},
		{"canonical clock-in", `"clock-in"`, PunchIn},
		{"unknown value is kept", `"break"`, PunchType("break")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got PunchType
			if err := json.Unmarshal([]byte(tt.raw), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAttendanceRecordDecode(t *testing.T) {
	body := `{"date":"2024-01-10","reason":"STATUS_PUNCH_IN_MISSING","record":[
		{"time":"18:02","type":"下班","location":"HQ","note":""}]}`

	var rec AttendanceRecord
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if rec.Date != "2024-01-10" || len(rec.Record) != 1 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Record[0].Type != PunchOut {
		t.Errorf("Type = %q, want %q", rec.Record[0].Type, PunchOut)
	}
}

func TestFilterByDate(t *testing.T) {
	records := []AttendanceRecord{
		{Date: "2024-01-10", Reason: "A"},
		{Date: "2024-01-11", Reason: "B"},
		{Date: "2024-01-10", Reason: "C"},
	}

	got := FilterByDate(records, "2024-01-10")
	if len(got) != 2 || got[0].Reason != "A" || got[1].Reason != "C" {
		t.Errorf("FilterByDate() = %+v, want records A and C in order", got)
	}
	if got := FilterByDate(records, "2024-01-12"); len(got) != 0 {
		t.Errorf("FilterByDate() = %+v, want empty", got)
	}
}

func TestMonthKeys(t *testing.T) {
	if got := MonthKey(2024, time.January); got != "2024-01" {
		t.Errorf("MonthKey() = %q", got)
	}
	if got := DateKey(2024, time.March, 5); got != "2024-03-05" {
		t.Errorf("DateKey() = %q", got)
	}

	mk, err := MonthKeyOf("2024-12-31")
	if err != nil || mk != "2024-12" {
		t.Errorf("MonthKeyOf() = %q, %v", mk, err)
	}
	if _, err := MonthKeyOf("2024/12/31"); err == nil {
		t.Error("MonthKeyOf() should reject malformed date")
	}

	y, m, err := ParseMonthKey("2023-02")
	if err != nil || y != 2023 || m != time.February {
		t.Errorf("ParseMonthKey() = %d, %v, %v", y, m, err)
	}
}

func TestUserIsAdmin(t *testing.T) {
	if !(User{Dept: "管理員"}).IsAdmin() {
		t.Error("admin department should be admin")
	}
	if !(User{Dept: "Admin"}).IsAdmin() {
		t.Error("admin should match case-insensitively")
	}
	if (User{Dept: "Sales"}).IsAdmin() {
		t.Error("sales should not be admin")
	}
}
