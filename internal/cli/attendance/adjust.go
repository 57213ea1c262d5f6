package attendance

import (
	"context"
	"fmt"

	"github.com/julianstephens/punchcal/internal/cli"
	"github.com/julianstephens/punchcal/internal/models"
	"github.com/julianstephens/punchcal/internal/tui"
	"github.com/julianstephens/punchcal/internal/validation"
)

// AdjustCmd files an adjustment request. Without --date, --time and --note
// it opens the interactive form.
type AdjustCmd struct {
	Date string `help:"Date to adjust as YYYY-MM-DD."`
	Time string `help:"Punch time as HH:MM."`
	Type string `enum:"in,out" default:"in" help:"Punch direction: in or out."`
	Note string `help:"Reason for the adjustment."`
}

func (c *AdjustCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireLogin(bg); err != nil {
		return err
	}

	req, err := c.request(ctx)
	if err != nil {
		return err
	}
	if err := validation.Struct(req, ctx.Translator); err != nil {
		return err
	}

	msg, err := ctx.API.SubmitAdjustment(bg, req)
	if err != nil {
		return ctx.Fail(err, "")
	}
	if monthKey, err := models.MonthKeyOf(req.Date); err == nil {
		ctx.Registry.Invalidate(monthKey)
	}

	fmt.Println(ctx.T("ADJUST_SUBMITTED"))
	if msg != "" {
		fmt.Println(msg)
	}
	return nil
}

func (c *AdjustCmd) request(ctx *cli.Context) (models.AdjustmentRequest, error) {
	typ, err := cli.ParsePunchType(c.Type)
	if err != nil {
		return models.AdjustmentRequest{}, err
	}
	fm := &tui.AdjustFormModel{Date: c.Date, Time: c.Time, Type: typ, Note: c.Note}
	if c.Date == "" || c.Time == "" || c.Note == "" {
		if err := tui.NewAdjustForm(fm, ctx.Translator).Run(); err != nil {
			return models.AdjustmentRequest{}, err
		}
	}
	return fm.Request(), nil
}
