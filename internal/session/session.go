// Package session tracks who is logged in: the backend token in the OS
// keyring and the user id, admin flag and language in the state store.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/julianstephens/punchcal/internal/api"
	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/keyring"
	"github.com/julianstephens/punchcal/internal/logger"
	"github.com/julianstephens/punchcal/internal/models"
	"github.com/julianstephens/punchcal/internal/storage"
)

// Backend is the subset of the API client a session needs.
type Backend interface {
	SetToken(token string)
	ExchangeCode(ctx context.Context, otoken string) (string, error)
	CheckSession(ctx context.Context) (models.User, error)
}

// Result describes the outcome of a login check.
type Result struct {
	LoggedIn bool
	Admin    bool
	User     models.User
	// Code is the backend error code when the session was rejected.
	Code string
	// Err is set when the backend could not be reached.
	Err error
}

type Manager struct {
	store   storage.Provider
	backend Backend
}

func NewManager(store storage.Provider, backend Backend) *Manager {
	return &Manager{store: store, backend: backend}
}

// Token returns the session token, preferring the environment override.
// An empty string with a nil error means no session exists.
func (m *Manager) Token() (string, error) {
	if token := os.Getenv(constants.EnvSessionToken); token != "" {
		return token, nil
	}
	token, err := keyring.GetSessionToken()
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return token, err
}

func (m *Manager) SaveToken(token string) error {
	if err := keyring.SetSessionToken(token); err != nil {
		return err
	}
	m.backend.SetToken(token)
	return nil
}

// EnsureLogin validates the stored token with the backend. On success the
// user id and admin flag are persisted.
func (m *Manager) EnsureLogin(ctx context.Context) Result {
	token, err := m.Token()
	if err != nil {
		logger.Warn("Failed to read session token", "error", err)
		return Result{Err: err}
	}
	if token == "" {
		return Result{}
	}
	m.backend.SetToken(token)

	user, err := m.backend.CheckSession(ctx)
	if err != nil {
		var appErr *api.ApplicationError
		if errors.As(err, &appErr) {
			logger.Info("Session rejected", "code", appErr.Key())
			return Result{Code: appErr.Key()}
		}
		logger.Error("Session check failed", "error", err)
		return Result{Err: err}
	}

	admin := user.IsAdmin()
	if err := m.store.SetSetting(constants.SettingUserID, user.UserID); err != nil {
		return Result{Err: fmt.Errorf("failed to persist user id: %w", err)}
	}
	if err := m.store.SetSetting(constants.SettingIsAdmin, strconv.FormatBool(admin)); err != nil {
		return Result{Err: fmt.Errorf("failed to persist admin flag: %w", err)}
	}

	return Result{LoggedIn: true, Admin: admin, User: user}
}

// Login trades a one-time login code for a token, stores it and checks the
// resulting session.
func (m *Manager) Login(ctx context.Context, otoken string) (Result, error) {
	if otoken == "" {
		return Result{}, errors.New("login code cannot be empty")
	}
	token, err := m.backend.ExchangeCode(ctx, otoken)
	if err != nil {
		return Result{}, err
	}
	if err := m.SaveToken(token); err != nil {
		return Result{}, err
	}
	return m.EnsureLogin(ctx), nil
}

// Logout removes the token, the admin flag and the user id.
func (m *Manager) Logout() error {
	if err := keyring.DeleteSessionToken(); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	m.backend.SetToken("")
	for _, key := range []string{constants.SettingIsAdmin, constants.SettingUserID} {
		if err := m.store.DeleteSetting(key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}

// UserID returns the persisted id of the logged-in user, or "".
func (m *Manager) UserID() string {
	return m.setting(constants.SettingUserID, "")
}

func (m *Manager) IsAdmin() bool {
	return m.setting(constants.SettingIsAdmin, "false") == "true"
}

// Lang returns the persisted language, or "" when none was chosen.
func (m *Manager) Lang() string {
	return m.setting(constants.SettingLang, "")
}

func (m *Manager) SetLang(lang string) error {
	return m.store.SetSetting(constants.SettingLang, lang)
}

func (m *Manager) setting(key, fallback string) string {
	value, err := m.store.GetSetting(key)
	if err != nil {
		if !errors.Is(err, storage.ErrSettingNotFound) {
			logger.Warn("Failed to read setting", "key", key, "error", err)
		}
		return fallback
	}
	return value
}
