package cfg

import (
	"strings"

	"ryt/internal/config"

	"github.com/spf13/cobra"
)

// configCmd shows and edits settings.
func (s *session) configCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show settings",
		Long:  "Show the saved settings. Use the subcommands to print the file location or change a setting.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.skip {
				return nil
			}
			s.app.HandleConfigShow()
			return nil
		},
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.skip {
				return nil
			}
			s.app.HandleConfigPath()
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:       "set <setting> <value>",
		Short:     "Change a setting",
		Long:      "Validate and save one setting. Settings: " + strings.Join(config.Keys, ", ") + ".",
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.Keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			if s.skip {
				return nil
			}
			return s.app.Report(s.app.HandleConfigSet(args[0], args[1]))
		},
	})

	return configCmd
}
