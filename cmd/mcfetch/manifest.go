package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var manifestHelp = `
This command prints the version manifest.

Without an argument it prints the version list. With a version id (or
'release' / 'snapshot') it prints the URL of that version's manifest.
`

var manifestCommand = &cobra.Command{
	Use:   "manifest [VERSION]",
	Short: "print the version manifest",
	Long:  manifestHelp,
	Args:  cobra.MaximumNArgs(1),
	RunE:  manifestCmd,
}

func init() {
	RootCommand.AddCommand(manifestCommand)
}

func manifestCmd(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	m := newManager(logEntry())

	if len(args) == 1 {
		url, err := m.ResolveVersion(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), url)
		return nil
	}

	list, err := m.FetchVersionManifest(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
