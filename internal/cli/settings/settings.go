package settings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/punchcal/internal/cli"
	"github.com/julianstephens/punchcal/internal/constants"
)

type SettingsCmd struct {
	List   bool    `help:"List current settings."`
	APIURL *string `name:"api-url" help:"Set the backend endpoint; an empty value clears it."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	if c.APIURL != nil {
		value := strings.TrimSpace(*c.APIURL)
		var err error
		if value == "" {
			err = ctx.Store.DeleteSetting(constants.SettingAPIURL)
		} else {
			err = ctx.Store.SetSetting(constants.SettingAPIURL, value)
		}
		if err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
		if !c.List {
			return nil
		}
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println("Current Settings:")
	fmt.Printf("  %-10s %s\n", "storage", ctx.Store.GetConfigPath())
	fmt.Printf("  %-10s %s\n", "language", ctx.Translator.Lang())
	for _, k := range keys {
		fmt.Printf("  %-10s %s\n", k, settings[k])
	}
	return nil
}
