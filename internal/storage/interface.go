package storage

import (
	"errors"
	"net/url"
	"strings"
)

var ErrSettingNotFound = errors.New("setting not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	Migrate(logFn func(string)) (int, error)

	// Settings
	GetSetting(key string) (string, error)
	GetSettings() (map[string]string, error)
	SetSetting(key, value string) error
	DeleteSetting(key string) error

	// Utils
	GetConfigPath() string
	SchemaStatus() (current, latest int, err error)
}

// IsPostgres reports whether config names a PostgreSQL database rather than
// a SQLite file path.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL URL carries a password.
func HasEmbeddedCredentials(config string) bool {
	if !IsPostgres(config) {
		return false
	}
	u, err := url.Parse(config)
	if err != nil {
		return false
	}
	_, set := u.User.Password()
	return set
}
