package attendance

import (
	"context"
	"fmt"

	"github.com/julianstephens/punchcal/internal/calendar"
	"github.com/julianstephens/punchcal/internal/cli"
	"github.com/julianstephens/punchcal/internal/tui/components/daily"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date as YYYY-MM-DD, 'today' or 'yesterday'."`
	User string `help:"Employee user id to show (admin only)."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	dateKey, err := cli.ParseDate(c.Date, ctx.Today())
	if err != nil {
		return err
	}

	bg := context.Background()
	res, err := ctx.RequireLogin(bg)
	if err != nil {
		return err
	}
	cache, _, err := subject(ctx, res, c.User)
	if err != nil {
		return err
	}

	detail, err := calendar.NewDailyRecordView(cache).Show(bg, dateKey)
	if err != nil {
		return ctx.Fail(err, "ERROR_FETCH_RECORDS")
	}
	fmt.Println(daily.RenderDetail(detail, ctx.Translator))
	return nil
}
