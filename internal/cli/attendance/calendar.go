package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/punchcal/internal/calendar"
	"github.com/julianstephens/punchcal/internal/cli"
	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/models"
	"github.com/julianstephens/punchcal/internal/session"
	calview "github.com/julianstephens/punchcal/internal/tui/components/calendar"
	"github.com/julianstephens/punchcal/internal/tui/components/dashboard"
)

type CalendarCmd struct {
	Month    string `arg:"" optional:"" help:"Month as YYYY-MM, defaults to the current month."`
	User     string `help:"Employee user id to show (admin only)."`
	Abnormal bool   `help:"Also list the month's abnormal days."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	today := ctx.Today()
	year, month, err := cli.ParseMonth(c.Month, today)
	if err != nil {
		return err
	}

	bg := context.Background()
	res, err := ctx.RequireLogin(bg)
	if err != nil {
		return err
	}
	cache, view, err := subject(ctx, res, c.User)
	if err != nil {
		return err
	}

	grid, err := calendar.NewRenderer(cache, view).Render(bg, year, month, today)
	if err != nil {
		return ctx.Fail(err, "ERROR_FETCH_RECORDS")
	}

	cursor := 0
	if today.Year() == year && today.Month() == month {
		cursor = today.Day()
	}
	fmt.Print(calview.RenderGrid(grid, ctx.Translator, cursor))
	fmt.Println()
	fmt.Println(calview.RenderLegend(ctx.Translator))

	if c.Abnormal {
		records, _ := cache.Get(grid.MonthKey())
		printAbnormal(ctx, dashboard.Abnormal(records))
	}
	return nil
}

// subject picks the cache and view options for the logged-in user or, for
// administrators, another employee.
func subject(ctx *cli.Context, res session.Result, userID string) (*calendar.RecordCache, calendar.ViewOptions, error) {
	if userID == "" || userID == res.User.UserID {
		return ctx.Registry.For(res.User.UserID), calendar.ViewOptions{}, nil
	}
	if !res.Admin {
		return nil, calendar.ViewOptions{}, errors.New(ctx.T("ERR_NO_PERMISSION"))
	}
	return ctx.Registry.For(userID), calendar.ViewOptions{Admin: true, SubjectUserID: userID}, nil
}

func printAbnormal(ctx *cli.Context, records []models.AttendanceRecord) {
	fmt.Println()
	fmt.Println(ctx.T("ABNORMAL_TITLE"))
	if len(records) == 0 {
		fmt.Println("  " + ctx.T("ABNORMAL_EMPTY"))
		return
	}
	for _, r := range records {
		fmt.Printf("  %s  %s\n", r.Date, ctx.T(calendar.ReasonKey(r.Reason)))
	}
	fmt.Println(ctx.T("ABNORMAL_ADJUST_HINT", i18n.Params{"cmd": constants.AppName + " adjust"}))
}
