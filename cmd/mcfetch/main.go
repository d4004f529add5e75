package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/handiism/minecraft-fetcher/internal/config"
	"github.com/handiism/minecraft-fetcher/internal/download"
	"github.com/handiism/minecraft-fetcher/internal/platform"
)

var globalUsage = `Download Minecraft versions: client jar, libraries, natives and assets.

Every downloaded file is checked against the SHA-1 declared in the version
manifest. Settings are read from --config (JSON), then from a .env file and
the MCFETCH_* environment variables, then from flags.

Environment:
  $MCFETCH_ROOT             game directory (default ~/.minecraft)
  $MCFETCH_MANIFEST_URL     version list URL
  $MCFETCH_ASSET_BASE_URL   asset object base URL
  $MCFETCH_MAX_BPS          download bandwidth cap in bytes per second
`

var (
	configPath string
	rootDir    string
	verbose    bool

	settings *config.Settings
	log      = logrus.New()
)

// RootCommand is the top-level mcfetch command.
var RootCommand = &cobra.Command{
	Use:               "mcfetch",
	Short:             "Minecraft version downloader",
	Long:              globalUsage,
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

func init() {
	p := RootCommand.PersistentFlags()
	p.StringVar(&configPath, "config", "", "path to a JSON settings file")
	p.StringVar(&rootDir, "root", "", "game directory (overrides config and environment)")
	p.BoolVarP(&verbose, "verbose", "v", false, "show debug output")
}

func main() {
	if err := RootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSettings(cmd *cobra.Command, args []string) error {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	s := config.DefaultSettings()
	if configPath != "" {
		var err error
		if s, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if err := s.LoadEnv(); err != nil {
		return err
	}
	if rootDir != "" {
		s.RootDir = rootDir
	}

	settings = s
	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func logEntry() *logrus.Entry {
	return logrus.NewEntry(log)
}

func newManager(entry *logrus.Entry) *download.Manager {
	return download.NewManager(settings, platform.NewDetector(), func(event download.ProgressEvent) {
		logEvent(entry, event)
	})
}

// logEvent renders a progress event through logrus.
func logEvent(entry *logrus.Entry, event download.ProgressEvent) {
	if event.RunID != "" {
		entry = entry.WithField("run", event.RunID)
	}

	switch event.Level {
	case download.LevelVerbose:
		entry.Debug(event.Message)
	case download.LevelWarning:
		entry.Warn(event.Message)
	case download.LevelError:
		entry.Error(event.Message)
	case download.LevelSuccess:
		entry.WithField("status", "ok").Info(event.Message)
	default:
		entry.Info(event.Message)
	}
}
