package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsHelp = `
This command prints the effective settings as JSON, after the config file,
environment and flags have been applied.

With --save the settings are also written to the given file, which can be
passed back with --config.
`

var settingsCommand = &cobra.Command{
	Use:   "settings",
	Short: "print or save the effective settings",
	Long:  settingsHelp,
	Args:  cobra.NoArgs,
	RunE:  settingsCmd,
}

var settingsSave string

func init() {
	settingsCommand.Flags().StringVar(&settingsSave, "save", "", "write the settings to this file")

	RootCommand.AddCommand(settingsCommand)
}

func settingsCmd(cmd *cobra.Command, args []string) error {
	if settingsSave != "" {
		if err := settings.Save(settingsSave); err != nil {
			return err
		}
		logEntry().WithField("path", settingsSave).Info("settings saved")
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
