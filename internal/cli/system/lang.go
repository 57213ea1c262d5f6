package system

import (
	"fmt"

	"github.com/julianstephens/punchcal/internal/cli"
	"github.com/julianstephens/punchcal/internal/i18n"
)

// LangCmd shows or persists the display language.
type LangCmd struct {
	Lang string `arg:"" optional:"" help:"Language to switch to (en-US, zh-TW, ja, vi, id)."`
}

func (c *LangCmd) Run(ctx *cli.Context) error {
	if c.Lang == "" {
		fmt.Println(ctx.Translator.Lang())
		return nil
	}

	lang := i18n.Match(c.Lang)
	if err := ctx.Session.SetLang(lang); err != nil {
		return fmt.Errorf("failed to save language: %w", err)
	}
	tr, err := i18n.New(lang)
	if err != nil {
		return err
	}
	ctx.Translator = tr
	fmt.Println(tr.T("LANG_SET", i18n.Params{"lang": lang}))
	return nil
}
