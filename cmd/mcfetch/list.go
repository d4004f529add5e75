package main

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/handiism/minecraft-fetcher/internal/minecraft/dto"
)

var listHelp = `
This command lists the versions published in the version manifest, newest
first.

By default only releases are shown. Use '--type snapshot' for snapshots or
'--type all' for every version type (old_beta, old_alpha, ...).

	$ mcfetch list --max 3
	ID    	TYPE   	RELEASED
	1.21.4	release	2024-12-03
	1.21.3	release	2024-10-23
	1.21.2	release	2024-10-22
`

var listCommand = &cobra.Command{
	Use:     "list",
	Short:   "list available versions",
	Long:    listHelp,
	Args:    cobra.NoArgs,
	RunE:    listCmd,
	Aliases: []string{"ls"},
}

var (
	listType string
	listMax  int
)

func init() {
	f := listCommand.Flags()
	f.StringVarP(&listType, "type", "t", "release", "version type to show, or 'all'")
	f.IntVarP(&listMax, "max", "m", 20, "maximum number of versions to show (0 for all)")

	RootCommand.AddCommand(listCommand)
}

func listCmd(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	list, err := newManager(logEntry()).FetchVersionManifest(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "latest release: %s, latest snapshot: %s\n\n", list.Latest.Release, list.Latest.Snapshot)
	fmt.Fprintln(cmd.OutOrStdout(), formatList(filterVersions(list.Versions, listType, listMax)))
	return nil
}

func filterVersions(versions []dto.VersionEntry, kind string, limit int) []dto.VersionEntry {
	var out []dto.VersionEntry
	for _, v := range versions {
		if kind != "all" && v.Type != kind {
			continue
		}
		out = append(out, v)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func formatList(versions []dto.VersionEntry) string {
	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("ID", "TYPE", "RELEASED")
	for _, v := range versions {
		table.AddRow(v.ID, v.Type, v.ReleaseTime.Format("2006-01-02"))
	}
	return table.String()
}
