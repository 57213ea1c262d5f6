package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/punchcal/internal/cli"
	"github.com/julianstephens/punchcal/internal/models"
	"github.com/julianstephens/punchcal/internal/validation"
)

type LocationsCmd struct {
	List LocationListCmd `cmd:"" help:"List allowed punch locations." default:"1"`
	Add  LocationAddCmd  `cmd:"" help:"Add a punch location."`
}

type LocationListCmd struct{}

func (c *LocationListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireAdmin(bg); err != nil {
		return err
	}

	locs, err := ctx.API.Locations(bg)
	if err != nil {
		return ctx.Fail(err, "")
	}

	fmt.Println(ctx.T("LOCATIONS_TITLE"))
	if len(locs) == 0 {
		fmt.Println("  " + ctx.T("LOCATIONS_EMPTY"))
		return nil
	}
	for _, l := range locs {
		fmt.Printf("  %-20s %.6f, %.6f  %dm\n", l.Name, l.Lat, l.Lng, l.Radius)
	}
	return nil
}

type LocationAddCmd struct {
	Name   string  `arg:"" help:"Display name of the location."`
	Lat    float64 `required:"" help:"Latitude."`
	Lng    float64 `required:"" help:"Longitude."`
	Radius int     `default:"100" help:"Allowed distance in meters."`
}

func (c *LocationAddCmd) Run(ctx *cli.Context) error {
	loc := models.Location{Name: strings.TrimSpace(c.Name), Lat: c.Lat, Lng: c.Lng, Radius: c.Radius}
	if err := validation.Struct(loc, ctx.Translator); err != nil {
		return err
	}

	bg := context.Background()
	if _, err := ctx.RequireAdmin(bg); err != nil {
		return err
	}
	msg, err := ctx.API.AddLocation(bg, loc)
	if err != nil {
		return ctx.Fail(err, "")
	}

	fmt.Println(ctx.T("LOCATION_ADDED"))
	if msg != "" {
		fmt.Println(msg)
	}
	return nil
}
