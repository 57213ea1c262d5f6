package attendance

import (
	"context"
	"fmt"

	"github.com/julianstephens/punchcal/internal/cli"
	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/i18n"
	"github.com/julianstephens/punchcal/internal/models"
	"github.com/julianstephens/punchcal/internal/validation"
)

type PunchCmd struct {
	Type string   `arg:"" enum:"in,out" help:"Punch direction: in or out."`
	Lat  *float64 `help:"Latitude of the punch site."`
	Lng  *float64 `help:"Longitude of the punch site."`
	Note string   `help:"Optional note stored with the punch."`
}

func (c *PunchCmd) Run(ctx *cli.Context) error {
	typ, err := cli.ParsePunchType(c.Type)
	if err != nil {
		return err
	}
	req := models.PunchRequest{Type: typ, Lat: c.Lat, Lng: c.Lng, Note: c.Note}
	if err := validation.Struct(req, ctx.Translator); err != nil {
		return err
	}

	bg := context.Background()
	if _, err := ctx.RequireLogin(bg); err != nil {
		return err
	}

	fmt.Println(ctx.T("PROCESSING"))
	msg, err := ctx.API.Punch(bg, req)
	if err != nil {
		return ctx.Fail(err, "")
	}
	ctx.Registry.Invalidate(ctx.Today().Format(constants.MonthFormat))

	fmt.Println(ctx.T("PUNCH_SUCCESS", i18n.Params{"type": ctx.T(typ.TranslationKey())}))
	if msg != "" {
		fmt.Println(msg)
	}
	return nil
}
