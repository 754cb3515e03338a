package app

import (
	"fmt"
	"strings"

	"ryt/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// HandleConfigShow prints the current settings.
func (a *App) HandleConfigShow() {
	values := config.Values(a.Settings)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SETTING", "VALUE")
	for _, key := range config.Keys {
		t.Row(key, values[key])
	}

	fmt.Fprintln(a.UI.Out(), t.Render())
	a.UI.Info("Config file: %s", a.Files.ConfigFile)
	a.UI.Info("Change a setting with: ryt config set <setting> <value>")
}

// HandleConfigPath prints the config file location.
func (a *App) HandleConfigPath() {
	fmt.Fprintln(a.UI.Out(), a.Files.ConfigFile)
}

// HandleConfigSet validates, applies and saves one setting.
func (a *App) HandleConfigSet(key, value string) error {
	if err := config.Set(a.Settings, key, value); err != nil {
		return err
	}
	if err := a.Store.Save(a.Settings); err != nil {
		return err
	}
	key = strings.ToLower(key)
	a.UI.Success("Set %s = %s", key, config.Values(a.Settings)[key])
	return nil
}
