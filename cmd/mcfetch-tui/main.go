package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/minecraft-fetcher/internal/config"
	"github.com/handiism/minecraft-fetcher/internal/platform"
	"github.com/handiism/minecraft-fetcher/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file")
	rootFlag := flag.String("root", "", "Game directory (overrides config)")
	flag.Parse()

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := settings.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}
	if *rootFlag != "" {
		settings.RootDir = *rootFlag
	}

	if err := tui.Run(settings, platform.NewDetector()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
