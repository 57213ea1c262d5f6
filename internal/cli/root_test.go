package cli

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/punchcal/internal/api"
	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/models"
	"github.com/julianstephens/punchcal/internal/storage/sqlite"
)

func TestParseMonth(t *testing.T) {
	now := time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		in        string
		wantYear  int
		wantMonth time.Month
		wantErr   bool
	}{
		{"", 2024, time.March, false},
		{"2023-12", 2023, time.December, false},
		{" 2024-01 ", 2024, time.January, false},
		{"2024-13", 0, 0, true},
		{"March", 0, 0, true},
	}
	for _, tt := range tests {
		y, m, err := ParseMonth(tt.in, now)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMonth(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (y != tt.wantYear || m != tt.wantMonth) {
			t.Errorf("ParseMonth(%q) = %d-%v, want %d-%v", tt.in, y, m, tt.wantYear, tt.wantMonth)
		}
	}
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "2024-03-01", false},
		{"today", "2024-03-01", false},
		{"Yesterday", "2024-02-29", false},
		{"2024-01-10", "2024-01-10", false},
		{"2024-02-30", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in, now)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseDate(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestParsePunchType(t *testing.T) {
	tests := []struct {
		in      string
		want    models.PunchType
		wantErr bool
	}{
		{"in", models.PunchIn, false},
		{"OUT", models.PunchOut, false},
		{"clock-in", models.PunchIn, false},
		{"lunch", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePunchType(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePunchType(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func setupContext(t *testing.T, handler http.HandlerFunc) *Context {
	t.Helper()
	gokeyring.MockInit()
	t.Setenv(constants.EnvSessionToken, "")

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "punchcal.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tr, err := i18n.New("en-US")
	if err != nil {
		t.Fatalf("i18n.New() error = %v", err)
	}
	return NewContext(store, api.New(srv.URL), tr)
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}
}

func TestRequireLogin(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		handler http.HandlerFunc
		wantErr string
	}{
		{"no token", "", respond(`{"ok":true}`), "Not signed in"},
		{"rejected token", "tok", respond(`{"ok":false,"code":"ERR_SESSION_INVALID"}`), "Your session has expired"},
		{"undecodable response", "tok", respond(`<html>`), "Network error"},
		{"valid token", "tok", respond(`{"ok":true,"user":{"userId":"U1","name":"Amy","dept":"Sales"}}`), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupContext(t, tt.handler)
			t.Setenv(constants.EnvSessionToken, tt.token)

			res, err := ctx.RequireLogin(context.Background())
			if tt.wantErr == "" {
				if err != nil || !res.LoggedIn || res.User.UserID != "U1" {
					t.Errorf("RequireLogin() = %+v, %v", res, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("RequireLogin() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	ctx := setupContext(t, respond(`{"ok":true,"user":{"userId":"U1","dept":"Sales"}}`))
	t.Setenv(constants.EnvSessionToken, "tok")

	_, err := ctx.RequireAdmin(context.Background())
	if err == nil || err.Error() != ctx.T("ERR_NO_PERMISSION") {
		t.Errorf("RequireAdmin() error = %v, want ERR_NO_PERMISSION", err)
	}
}

func TestFailKeepsCause(t *testing.T) {
	ctx := setupContext(t, respond(`{"ok":true}`))
	cause := &api.ApplicationError{Action: "punch", Code: "ERR_SESSION_INVALID"}

	err := ctx.Fail(cause, "ERROR_FETCH_RECORDS")
	want := ctx.T("ERROR_FETCH_RECORDS") + ": " + ctx.T("ERR_SESSION_INVALID")
	if err.Error() != want {
		t.Errorf("Fail() = %q, want %q", err, want)
	}
	var appErr *api.ApplicationError
	if !errors.As(err, &appErr) {
		t.Error("Fail() should wrap the cause")
	}
}
