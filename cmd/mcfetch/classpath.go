package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/minecraft-fetcher/internal/model"
)

var classpathHelp = `
This command prints the Java classpath of the downloaded libraries, sorted
and joined with the platform path separator.

With --version the client jar of that version is appended, and
--natives prints the matching -Djava.library.path argument instead.
`

var classpathCommand = &cobra.Command{
	Use:   "classpath",
	Short: "print the library classpath",
	Long:  classpathHelp,
	Args:  cobra.NoArgs,
	RunE:  classpathCmd,
}

var (
	classpathVersion string
	classpathNatives bool
)

func init() {
	f := classpathCommand.Flags()
	f.StringVar(&classpathVersion, "version", "", "append the client jar of this version id")
	f.BoolVar(&classpathNatives, "natives", false, "print the natives directory of --version")

	RootCommand.AddCommand(classpathCommand)
}

func classpathCmd(cmd *cobra.Command, args []string) error {
	layout := model.NewLayout(settings.RootDir)

	if classpathNatives {
		if classpathVersion == "" {
			return fmt.Errorf("--natives requires --version")
		}
		dir := layout.AbsolutePath(layout.NativesDir(classpathVersion))
		if dir == "" {
			return fmt.Errorf("natives of %s not found under %s", classpathVersion, settings.RootDir)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "-Djava.library.path=%s\n", dir)
		return nil
	}

	entries := layout.LibrariesClasspath()
	sort.Strings(entries)

	if classpathVersion != "" {
		jar := layout.AbsolutePath(layout.VersionJar(classpathVersion))
		if jar == "" {
			return fmt.Errorf("client jar of %s not found under %s", classpathVersion, settings.RootDir)
		}
		entries = append(entries, jar)
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(entries, string(os.PathListSeparator)))
	return nil
}
