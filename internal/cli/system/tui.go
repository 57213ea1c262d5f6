package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/punchcal/internal/cli"
	"github.com/julianstephens/punchcal/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	res, err := ctx.RequireLogin(context.Background())
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(tui.Options{
		Backend:    ctx.API,
		Registry:   ctx.Registry,
		Translator: ctx.Translator,
		User:       res.User,
		Admin:      res.Admin,
		Now:        ctx.Now,
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
