package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/skip2/go-qrcode"

	"github.com/julianstephens/punchcal/internal/cli"
	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/logger"
)

type LoginCmd struct {
	Code       string `help:"One-time code or the full redirect URL; prompted for when omitted."`
	Production bool   `help:"Ask the backend for the production login page." default:"true" negatable:""`
	NoQR       bool   `name:"no-qr" help:"Do not print the login URL as a QR code."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	bg := context.Background()

	input := c.Code
	if input == "" {
		loginURL, err := ctx.API.LoginURL(bg, c.Production)
		if err != nil {
			return ctx.Fail(err, "")
		}
		fmt.Println(ctx.T("LOGIN_VISIT_URL"))
		fmt.Println(loginURL)
		if !c.NoQR {
			printQR(loginURL)
		}

		err = huh.NewInput().
			Title(ctx.T("LOGIN_ENTER_CODE")).
			Description(ctx.T("LOGIN_ENTER_CODE_HINT")).
			Value(&input).
			Run()
		if err != nil {
			return err
		}
	}

	code := ExtractCode(input)
	if code == "" {
		return errors.New(ctx.T("VALIDATION_REQUIRED", i18n.Params{"field": "code"}))
	}

	fmt.Println(ctx.T("VERIFYING_AUTH"))
	res, err := ctx.Session.Login(bg, code)
	if err != nil {
		return ctx.Fail(err, "")
	}
	if !res.LoggedIn {
		if res.Err != nil {
			return ctx.Fail(res.Err, "")
		}
		return errors.New(ctx.T("ERROR_LOGIN_FAILED", i18n.Params{"msg": ctx.T(res.Code)}))
	}

	fmt.Println(ctx.T("LOGIN_SUCCESS"))
	fmt.Println(ctx.T("WELCOME", i18n.Params{"name": res.User.Name}))
	return nil
}

// ExtractCode accepts either the bare code or the URL the browser was
// redirected to and returns the code.
func ExtractCode(input string) string {
	input = strings.TrimSpace(input)
	if !strings.Contains(input, "?") {
		return input
	}
	u, err := url.Parse(input)
	if err != nil {
		return ""
	}
	return u.Query().Get("code")
}

func printQR(content string) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		logger.Warn("Failed to render login QR code", "error", err)
		return
	}
	fmt.Println(qr.ToSmallString(false))
}
