package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables consulted by LoadEnv.
const (
	EnvRoot         = "MCFETCH_ROOT"
	EnvManifestURL  = "MCFETCH_MANIFEST_URL"
	EnvAssetBaseURL = "MCFETCH_ASSET_BASE_URL"
	EnvMaxBPS       = "MCFETCH_MAX_BPS"
)

const (
	DefaultVersionManifestURL = "https://piston-meta.mojang.com/mc/game/version_manifest.json"
	DefaultAssetBaseURL       = "https://resources.download.minecraft.net"
)

// Settings holds all configuration options.
type Settings struct {
	// Layout
	RootDir string `json:"root_dir"`

	// Remote endpoints
	VersionManifestURL string `json:"version_manifest_url"`
	AssetBaseURL       string `json:"asset_base_url"`

	// Download settings
	LibraryConcurrency    int     `json:"library_concurrency"`
	AssetConcurrency      int     `json:"asset_concurrency"`
	DownloadMaxRetries    int     `json:"download_max_retries"`
	FinalPassRetries      int     `json:"final_pass_retries"`
	DownloadRetryCooldown float64 `json:"download_retry_cooldown"`

	// HTTP settings
	RequestTimeout    float64 `json:"request_timeout"`
	MaxBytesPerSecond int64   `json:"max_bytes_per_second"` // 0 disables the limit
	UserAgent         string  `json:"user_agent"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		RootDir: filepath.Join(homeDir, ".minecraft"),

		VersionManifestURL: DefaultVersionManifestURL,
		AssetBaseURL:       DefaultAssetBaseURL,

		LibraryConcurrency:    50,
		AssetConcurrency:      250,
		DownloadMaxRetries:    3,
		FinalPassRetries:      5,
		DownloadRetryCooldown: 1.0,

		RequestTimeout:    300,
		MaxBytesPerSecond: 0,
		UserAgent:         "minecraft-fetcher",
	}
}

// Load reads settings from a JSON file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// LoadEnv loads the given dotenv files (".env" when none are given) into the
// process environment and applies the MCFETCH_* overrides to s. Missing
// dotenv files are not an error.
func (s *Settings) LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) > 0 {
		if err := godotenv.Load(existing...); err != nil {
			return err
		}
	}

	if v, ok := os.LookupEnv(EnvRoot); ok && v != "" {
		s.RootDir = v
	}
	if v, ok := os.LookupEnv(EnvManifestURL); ok && v != "" {
		s.VersionManifestURL = v
	}
	if v, ok := os.LookupEnv(EnvAssetBaseURL); ok && v != "" {
		s.AssetBaseURL = v
	}
	if v, ok := os.LookupEnv(EnvMaxBPS); ok && v != "" {
		bps, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		s.MaxBytesPerSecond = bps
	}

	return nil
}

// RetryCooldown returns the fixed pause between attempts.
func (s *Settings) RetryCooldown() time.Duration {
	return time.Duration(s.DownloadRetryCooldown * float64(time.Second))
}

// Timeout returns the per-request HTTP timeout.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.RequestTimeout * float64(time.Second))
}
