package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/punchcal/internal/api"
	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/keyring"
	"github.com/julianstephens/punchcal/internal/storage/sqlite"
)

func setup(t *testing.T, handler http.HandlerFunc) (*Manager, *sqlite.Store) {
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

	return NewManager(store, api.New(srv.URL)), store
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestEnsureLoginWithoutToken(t *testing.T) {
	calls := 0
	m, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, map[string]any{"ok": true})
	})

	res := m.EnsureLogin(context.Background())
	if res.LoggedIn || res.Err != nil || res.Code != "" {
		t.Errorf("EnsureLogin() = %+v, want logged out", res)
	}
	if calls != 0 {
		t.Errorf("backend called %d times without a token", calls)
	}
}

func TestEnsureLoginPersistsUser(t *testing.T) {
	m, store := setup(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("token"); got != "tok" {
			t.Errorf("token = %q, want tok", got)
		}
		writeJSON(w, map[string]any{
			"ok":   true,
			"user": map[string]any{"userId": "U9", "name": "Mei", "dept": constants.AdminDept},
		})
	})
	if err := keyring.SetSessionToken("tok"); err != nil {
		t.Fatal(err)
	}

	res := m.EnsureLogin(context.Background())
	if !res.LoggedIn || !res.Admin || res.User.Name != "Mei" {
		t.Fatalf("EnsureLogin() = %+v", res)
	}
	if m.UserID() != "U9" || !m.IsAdmin() {
		t.Errorf("persisted user = %q admin=%v", m.UserID(), m.IsAdmin())
	}
	if v, _ := store.GetSetting(constants.SettingIsAdmin); v != "true" {
		t.Errorf("is_admin setting = %q", v)
	}
}

func TestEnsureLoginRejected(t *testing.T) {
	m, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": false, "code": "ERR_SESSION_EXPIRED"})
	})
	t.Setenv(constants.EnvSessionToken, "stale")

	res := m.EnsureLogin(context.Background())
	if res.LoggedIn || res.Code != "ERR_SESSION_EXPIRED" || res.Err != nil {
		t.Errorf("EnsureLogin() = %+v, want rejected with code", res)
	}
}

func TestEnsureLoginNetworkFailure(t *testing.T) {
	m, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	})
	t.Setenv(constants.EnvSessionToken, "tok")

	res := m.EnsureLogin(context.Background())
	if res.LoggedIn || res.Err == nil {
		t.Errorf("EnsureLogin() = %+v, want network error", res)
	}
}

func TestLoginAndLogout(t *testing.T) {
	m, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("action") {
		case api.ActionGetProfile:
			writeJSON(w, map[string]any{"ok": true, "sToken": "fresh"})
		case api.ActionCheckSession:
			writeJSON(w, map[string]any{"ok": true, "user": map[string]any{"userId": "U1", "dept": "Sales"}})
		}
	})

	res, err := m.Login(context.Background(), "code123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !res.LoggedIn || res.Admin {
		t.Errorf("Login() = %+v", res)
	}
	if tok, _ := m.Token(); tok != "fresh" {
		t.Errorf("Token() = %q, want fresh", tok)
	}

	if err := m.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if tok, _ := m.Token(); tok != "" {
		t.Errorf("Token() after logout = %q", tok)
	}
	if m.UserID() != "" || m.IsAdmin() {
		t.Error("logout left user state behind")
	}
	if err := m.Logout(); err != nil {
		t.Errorf("second Logout() error = %v", err)
	}
}

func TestLoginRequiresCode(t *testing.T) {
	m, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {})
	if _, err := m.Login(context.Background(), ""); err == nil {
		t.Error("Login() with empty code should fail")
	}
}

func TestLang(t *testing.T) {
	m, _ := setup(t, func(w http.ResponseWriter, r *http.Request) {})
	if m.Lang() != "" {
		t.Errorf("Lang() = %q, want empty", m.Lang())
	}
	if err := m.SetLang("ja"); err != nil {
		t.Fatal(err)
	}
	if m.Lang() != "ja" {
		t.Errorf("Lang() = %q, want ja", m.Lang())
	}
}
