// Package config provides configuration management for minecraft-fetcher.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Environment overrides, optionally read from a .env file
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Downloads into ~/.minecraft
//	// 50 concurrent library downloads, 250 concurrent asset downloads
//	// 3 attempts per file, 5 more in the final pass
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Environment
//
//	// MCFETCH_ROOT=/games/mc mcfetch download 1.20.4
//	err := settings.LoadEnv()
//
// Recognised variables are MCFETCH_ROOT, MCFETCH_MANIFEST_URL,
// MCFETCH_ASSET_BASE_URL and MCFETCH_MAX_BPS.
package config
