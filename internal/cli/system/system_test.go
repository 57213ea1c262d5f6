package system

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/punchcal/internal/api"
	"github.com/julianstephens/punchcal/internal/cli"
	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/keyring"
	"github.com/julianstephens/punchcal/internal/storage/sqlite"
)

type fakeProcess struct {
	pid int
	exe string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.exe }

func stubProcesses(t *testing.T, procs ...ps.Process) {
	t.Helper()
	orig := processesFunc
	processesFunc = func() ([]ps.Process, error) { return procs, nil }
	t.Cleanup(func() { processesFunc = orig })
}

func setupTestContext(t *testing.T, handler http.HandlerFunc, initStore bool) (*cli.Context, *sqlite.Store, string) {
	t.Helper()
	gokeyring.MockInit()
	t.Setenv(constants.EnvSessionToken, "")

	dbPath := filepath.Join(t.TempDir(), "punchcal.db")
	store := sqlite.NewStore(dbPath)
	if initStore {
		if err := store.Init(); err != nil {
			t.Fatalf("failed to init store: %v", err)
		}
	}
	t.Cleanup(func() { store.Close() })

	endpoint := ""
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		endpoint = srv.URL
	}

	tr, err := i18n.New("en-US")
	if err != nil {
		t.Fatalf("i18n.New() error = %v", err)
	}
	return cli.NewContext(store, api.New(endpoint), tr), store, dbPath
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestInitCmd_Success(t *testing.T) {
	ctx, _, dbPath := setupTestContext(t, nil, false)

	cmd := &InitCmd{APIURL: "https://script.example.com/exec"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	got, err := ctx.Store.GetSetting(constants.SettingAPIURL)
	if err != nil || got != "https://script.example.com/exec" {
		t.Errorf("api_url = %q, %v", got, err)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, _ := setupTestContext(t, nil, false)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := ctx.Store.SetSetting(constants.SettingLang, "ja"); err != nil {
		t.Fatalf("SetSetting() error = %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}
	if got, _ := ctx.Store.GetSetting(constants.SettingLang); got != "ja" {
		t.Errorf("lang = %q after second init, want ja", got)
	}
}

func TestInitCmd_Force(t *testing.T) {
	ctx, _, _ := setupTestContext(t, nil, true)
	if err := ctx.Store.SetSetting(constants.SettingLang, "ja"); err != nil {
		t.Fatalf("SetSetting() error = %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
	if _, err := ctx.Store.GetSetting(constants.SettingLang); err == nil {
		t.Error("settings survived a forced init")
	}
}

func TestMigrateCmd_UpToDate(t *testing.T) {
	ctx, _, _ := setupTestContext(t, nil, true)
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Errorf("migrate failed: %v", err)
	}
}

func TestMigrateCmd_Uninitialized(t *testing.T) {
	ctx, _, _ := setupTestContext(t, nil, false)
	if err := (&MigrateCmd{}).Run(ctx); err == nil {
		t.Error("migrate should fail before init")
	}
}

func TestDoctorCmd_HealthyOffline(t *testing.T) {
	ctx, _, _ := setupTestContext(t, nil, true)
	stubProcesses(t)

	if err := (&DoctorCmd{Offline: true}).Run(ctx); err != nil {
		t.Errorf("doctor failed on healthy database: %v", err)
	}
}

func TestDoctorCmd_OtherInstanceIsWarning(t *testing.T) {
	ctx, _, _ := setupTestContext(t, nil, true)
	stubProcesses(t,
		fakeProcess{pid: os.Getpid(), exe: constants.AppName},
		fakeProcess{pid: 999999, exe: constants.AppName},
		fakeProcess{pid: 42, exe: "bash"},
	)

	if err := (&DoctorCmd{Offline: true}).Run(ctx); err != nil {
		t.Errorf("another instance should only warn: %v", err)
	}
	pids, err := otherInstances()
	if err != nil || len(pids) != 1 || pids[0] != 999999 {
		t.Errorf("otherInstances() = %v, %v", pids, err)
	}
}

func TestDoctorCmd_BrokenSchema(t *testing.T) {
	ctx, store, _ := setupTestContext(t, nil, true)
	stubProcesses(t)

	if _, err := store.GetDB().Exec("DELETE FROM schema_version"); err != nil {
		t.Fatalf("failed to reset schema version: %v", err)
	}
	if err := (&DoctorCmd{Offline: true}).Run(ctx); err == nil {
		t.Error("doctor should fail on an outdated schema")
	}
}

func TestDoctorCmd_Session(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]any
		wantErr bool
	}{
		{"valid session", map[string]any{"ok": true, "user": map[string]any{"userId": "U1", "name": "Amy"}}, false},
		{"rejected session", map[string]any{"ok": false, "code": "ERR_SESSION_INVALID"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, _ := setupTestContext(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.body)
			}, true)
			stubProcesses(t)
			t.Setenv(constants.EnvSessionToken, "tok")

			err := (&DoctorCmd{}).Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("doctor error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDoctorCmd_NotLoggedInIsSkipped(t *testing.T) {
	calls := 0
	ctx, _, _ := setupTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, map[string]any{"ok": true})
	}, true)
	stubProcesses(t)

	if err := (&DoctorCmd{}).Run(ctx); err != nil {
		t.Errorf("doctor without a session should pass: %v", err)
	}
	if calls != 0 {
		t.Errorf("backend called %d times without a token", calls)
	}
}

func TestLangCmd(t *testing.T) {
	ctx, _, _ := setupTestContext(t, nil, true)

	if err := (&LangCmd{Lang: "zh_TW.UTF-8"}).Run(ctx); err != nil {
		t.Fatalf("lang failed: %v", err)
	}
	if got := ctx.Session.Lang(); got != "zh-TW" {
		t.Errorf("stored lang = %q, want zh-TW", got)
	}
	if got := ctx.Translator.Lang(); got != "zh-TW" {
		t.Errorf("translator lang = %q, want zh-TW", got)
	}
	if err := (&LangCmd{}).Run(ctx); err != nil {
		t.Errorf("showing the language failed: %v", err)
	}
}

func TestKeyringCommands(t *testing.T) {
	ctx, _, _ := setupTestContext(t, nil, true)

	if err := (&KeyringGetCmd{}).Run(ctx); err == nil {
		t.Error("get should fail when nothing is stored")
	}
	if err := (&KeyringSetCmd{ConnectionString: "not a conn string"}).Run(ctx); err == nil {
		t.Error("set should reject a non-PostgreSQL string")
	}
	if err := (&KeyringSetCmd{ConnectionString: "postgres://amy:secret@db:5432/punchcal"}).Run(ctx); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if got, _ := keyring.GetConnectionString(); got != "postgres://amy:secret@db:5432/punchcal" {
		t.Errorf("stored connection string = %q", got)
	}
	if err := (&KeyringStatusCmd{}).Run(ctx); err != nil {
		t.Errorf("status failed: %v", err)
	}
	if err := (&KeyringDeleteCmd{}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := keyring.GetConnectionString(); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("connection string still stored: %v", err)
	}
}

func TestMaskPassword(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://amy:secret@db:5432/punchcal", "postgres://amy:****@db:5432/punchcal"},
		{"postgres://amy@db/punchcal", "postgres://amy@db/punchcal"},
		{"host=db user=amy password=secret dbname=punchcal", "host=db user=amy password=**** dbname=punchcal"},
		{"host=db user=amy", "host=db user=amy"},
	}
	for _, tt := range tests {
		if got := maskPassword(tt.in); got != tt.want {
			t.Errorf("maskPassword(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
