package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/handiism/minecraft-fetcher/internal/download"
	"github.com/handiism/minecraft-fetcher/internal/model"
)

var downloadHelp = `
This command downloads a version and everything it needs into the game
directory.

The argument is a version id, one of the aliases 'release' or 'snapshot',
a version manifest URL, or a JSON object with a "url" field:

	$ mcfetch download 1.20.4
	$ mcfetch download release
	$ mcfetch download https://piston-meta.mojang.com/v1/packages/<sha1>/1.20.4.json
	$ mcfetch download '{"id": "1.20.4", "url": "https://..."}'

The command fails when the client jar, a library or an asset could not be
downloaded and verified. A missing logging config or mappings file only
produces a warning.
`

var downloadCommand = &cobra.Command{
	Use:   "download [VERSION|URL|JSON]",
	Short: "download a version",
	Long:  downloadHelp,
	Args:  cobra.ExactArgs(1),
	RunE:  downloadCmd,
}

func init() {
	RootCommand.AddCommand(downloadCommand)
}

func downloadCmd(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	entry := logEntry().WithField("root", settings.RootDir)
	res, err := newManager(entry).DownloadVersion(ctx, args[0])

	var runErr *download.RunError
	if err != nil && !errors.As(err, &runErr) {
		return err
	}

	printSummary(cmd.OutOrStdout(), res)
	return err
}

func printSummary(w io.Writer, res *download.Result) {
	table := uitable.New()
	table.AddRow("CATEGORY", "OK", "FAILED", "TOTAL")
	for _, c := range []model.Category{
		model.CategoryClient,
		model.CategoryLogging,
		model.CategoryLibrary,
		model.CategoryAsset,
		model.CategoryMappings,
	} {
		count := res.Counts[c]
		table.AddRow(c.String(), count.Succeeded, count.Failed, count.Total)
	}

	fmt.Fprintf(w, "\n%s (%s/%s) in %s\n\n", res.VersionID, res.Platform.OS, res.Platform.Arch, res.Elapsed.Round(time.Millisecond))
	fmt.Fprintln(w, table)
}
