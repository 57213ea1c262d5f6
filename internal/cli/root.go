package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/punchcal/internal/api"
	"github.com/julianstephens/punchcal/internal/calendar"
	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/logger"
	"github.com/julianstephens/punchcal/internal/models"
	"github.com/julianstephens/punchcal/internal/session"
	"github.com/julianstephens/punchcal/internal/storage"
)

type Context struct {
	Store      storage.Provider
	API        *api.Client
	Session    *session.Manager
	Translator *i18n.Translator
	Registry   *calendar.Registry
	Now        func() time.Time
}

// NewContext wires the session manager and the record registry around an
// API client.
func NewContext(store storage.Provider, client *api.Client, tr *i18n.Translator) *Context {
	return &Context{
		Store:      store,
		API:        client,
		Session:    session.NewManager(store, client),
		Translator: tr,
		Registry:   calendar.NewRegistry(client),
		Now:        time.Now,
	}
}

// T translates key with the active language.
func (c *Context) T(key string, params ...i18n.Params) string {
	return c.Translator.T(key, params...)
}

func (c *Context) Today() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// RequireLogin validates the stored session and turns every logged-out
// outcome into a translated error.
func (c *Context) RequireLogin(ctx context.Context) (session.Result, error) {
	res := c.Session.EnsureLogin(ctx)
	switch {
	case res.LoggedIn:
		return res, nil
	case res.Err != nil:
		return res, c.Fail(res.Err, "")
	case res.Code != "":
		msg := c.T(res.Code)
		return res, fmt.Errorf("%s. %s", msg, c.T("PLEASE_RELOGIN"))
	default:
		return res, errors.New(c.T("NOT_LOGGED_IN"))
	}
}

// RequireAdmin is RequireLogin plus the administrator check.
func (c *Context) RequireAdmin(ctx context.Context) (session.Result, error) {
	res, err := c.RequireLogin(ctx)
	if err != nil {
		return res, err
	}
	if !res.Admin {
		return res, errors.New(c.T("ERR_NO_PERMISSION"))
	}
	return res, nil
}

// Fail logs a backend failure and returns it with a translated message.
// prefixKey, when set, names the operation that failed.
func (c *Context) Fail(err error, prefixKey string) error {
	logger.Error("Backend request failed", "error", err)
	msg := api.Describe(err, c.Translator)
	if prefixKey != "" {
		msg = c.T(prefixKey) + ": " + msg
	}
	return &DescribedError{Msg: msg, Err: err}
}

// DescribedError carries a user-facing message for a wrapped failure.
type DescribedError struct {
	Msg string
	Err error
}

func (e *DescribedError) Error() string {
	return e.Msg
}

func (e *DescribedError) Unwrap() error {
	return e.Err
}

// ParseMonth parses an optional YYYY-MM argument, defaulting to the month
// of now.
func ParseMonth(s string, now time.Time) (int, time.Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.Year(), now.Month(), nil
	}
	return models.ParseMonthKey(s)
}

// ParseDate parses an optional YYYY-MM-DD argument, defaulting to now.
// "today" and "yesterday" are accepted as shortcuts.
func ParseDate(s string, now time.Time) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return now.Format(constants.DateFormat), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format(constants.DateFormat), nil
	}
	if _, err := models.MonthKeyOf(s); err != nil {
		return "", err
	}
	return s, nil
}

// ParsePunchType maps the in/out argument to a punch type.
func ParsePunchType(s string) (models.PunchType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", string(models.PunchIn):
		return models.PunchIn, nil
	case "out", string(models.PunchOut):
		return models.PunchOut, nil
	default:
		return "", fmt.Errorf("invalid punch type %q, use in or out", s)
	}
}
