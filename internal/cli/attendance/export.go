package attendance

import (
	"context"
	"fmt"

	"github.com/julianstephens/punchcal/internal/cli"
	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/export"
	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/models"
)

type ExportCmd struct {
	Month string `arg:"" optional:"" help:"Month as YYYY-MM, defaults to the current month."`
	User  string `help:"Employee user id to export (admin only)."`
	Out   string `short:"o" help:"Output .xlsx path, defaults to punchcal-<user>-<month>.xlsx."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	year, month, err := cli.ParseMonth(c.Month, ctx.Today())
	if err != nil {
		return err
	}
	monthKey := models.MonthKey(year, month)

	bg := context.Background()
	res, err := ctx.RequireLogin(bg)
	if err != nil {
		return err
	}
	cache, _, err := subject(ctx, res, c.User)
	if err != nil {
		return err
	}

	records, err := cache.Load(bg, monthKey)
	if err != nil {
		return ctx.Fail(err, "ERROR_FETCH_RECORDS")
	}

	path := c.Out
	if path == "" {
		path = fmt.Sprintf("%s-%s-%s.xlsx", constants.AppName, cache.UserID(), monthKey)
	}
	if err := export.SaveMonth(path, monthKey, records, ctx.Translator); err != nil {
		return err
	}
	fmt.Println(ctx.T("EXPORT_DONE", i18n.Params{"path": path}))
	return nil
}
