package ioutils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/handiism/minecraft-fetcher/internal/platform"
)

// ShouldExtract reports whether an archive entry is a native library for
// the given platform and architecture.
//
// The rules are:
//   - entries under META-INF, and .txt or .git files, are never extracted
//   - windows: .dll, .so and .dylib, skipping 32-bit dlls on 64-bit hosts and
//     64-bit dlls on 32-bit hosts
//   - osx: .dylib only
//   - linux: .so only
//   - anything else: nothing
//
// Matching is case-insensitive.
func ShouldExtract(name, osName, arch string) bool {
	name = strings.ToLower(name)

	if strings.Contains(name, "meta-inf") || strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".git") {
		return false
	}

	switch osName {
	case platform.Windows:
		excluded := "32.dll"
		if arch != platform.Arch64 {
			excluded = "64.dll"
		}
		if strings.Contains(name, excluded) {
			return false
		}
		return strings.HasSuffix(name, ".dll") ||
			strings.HasSuffix(name, ".so") ||
			strings.HasSuffix(name, ".dylib")
	case platform.OSX:
		return strings.HasSuffix(name, ".dylib")
	case platform.Linux:
		return strings.HasSuffix(name, ".so")
	default:
		return false
	}
}

// ExtractResult counts what happened to the entries of one archive.
type ExtractResult struct {
	Extracted []string
	Skipped   int
}

// NativesExtractor copies platform native libraries out of jar archives.
//
// Accepted entries are written by base name only, so directory structure
// inside the archive is discarded and two archives that contain the same
// file name overwrite each other (last one wins).
//
// Example usage:
//
//	ex := NewNativesExtractor(platform.Info{OS: "linux", Arch: "64"})
//	res, err := ex.Extract(ctx, "/mc/libraries/org/lwjgl/lwjgl/3.3.3/lwjgl-3.3.3-natives-linux.jar",
//	    "/mc/versions/1.20.4/1.20.4-natives")
type NativesExtractor struct {
	platform platform.Info
}

// NewNativesExtractor creates a new NativesExtractor for the given platform.
func NewNativesExtractor(p platform.Info) *NativesExtractor {
	return &NativesExtractor{platform: p}
}

// Extract writes every accepted entry of archivePath into destDir.
func (e *NativesExtractor) Extract(ctx context.Context, archivePath, destDir string) (*ExtractResult, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	if err := EnsureDir(destDir); err != nil {
		return nil, fmt.Errorf("create natives dir: %w", err)
	}

	result := &ExtractResult{}
	for _, entry := range reader.File {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if entry.FileInfo().IsDir() || !ShouldExtract(entry.Name, e.platform.OS, e.platform.Arch) {
			result.Skipped++
			continue
		}

		base := path.Base(entry.Name)
		if err := extractEntry(entry, filepath.Join(destDir, base)); err != nil {
			return result, fmt.Errorf("extract %s: %w", entry.Name, err)
		}
		result.Extracted = append(result.Extracted, base)
	}

	return result, nil
}

func extractEntry(entry *zip.File, target string) error {
	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
