package auth

import (
	"context"
	"fmt"

	"github.com/julianstephens/punchcal/internal/cli"
	"github.com/julianstephens/punchcal/internal/i18n"
)

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if err := ctx.Session.Logout(); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	fmt.Println(ctx.T("LOGOUT_SUCCESS"))
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	fmt.Println(ctx.T("CHECKING_LOGIN"))
	res, err := ctx.RequireLogin(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(ctx.T("WHOAMI", i18n.Params{
		"name":   res.User.Name,
		"userId": res.User.UserID,
		"dept":   res.User.Dept,
	}))
	if res.Admin {
		fmt.Println(ctx.T("ROLE_ADMIN"))
	}
	return nil
}
