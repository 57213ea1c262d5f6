package api

import (
	"errors"
	"fmt"

	"github.com/julianstephens/punchcal/internal/i18n"
)

// NetworkError reports a request that never produced a usable response:
// transport failures, timeouts, unexpected HTTP status or an undecodable body.
type NetworkError struct {
	Action string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network failure: %v", e.Action, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ApplicationError reports an `ok:false` response from the backend.
type ApplicationError struct {
	Action string
	Code   string
	Msg    string
}

func (e *ApplicationError) Error() string {
	switch {
	case e.Code != "" && e.Msg != "":
		return fmt.Sprintf("%s: %s (%s)", e.Action, e.Msg, e.Code)
	case e.Code != "":
		return fmt.Sprintf("%s: %s", e.Action, e.Code)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Action, e.Msg)
	default:
		return fmt.Sprintf("%s: request rejected", e.Action)
	}
}

// Key returns the identifier used to translate the failure for display.
func (e *ApplicationError) Key() string {
	if e.Code != "" {
		return e.Code
	}
	return "UNKNOWN_ERROR"
}

// Describe renders err as a translated line for the user.
func Describe(err error, tr *i18n.Translator) string {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		if !tr.Has(appErr.Key()) && appErr.Msg != "" {
			return appErr.Msg
		}
		return tr.T(appErr.Key(), i18n.Params{"msg": appErr.Msg})
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return tr.T("ERR_NETWORK")
	}
	return err.Error()
}
