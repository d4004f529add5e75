package ioutils

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/minecraft-fetcher/internal/platform"
)

func TestShouldExtract(t *testing.T) {
	tests := []struct {
		os   string
		arch string
		name string
		want bool
	}{
		{"windows", "64", "foo32.dll", false},
		{"windows", "64", "foo64.dll", true},
		{"linux", "64", "libfoo.so", true},
		{"osx", "64", "libfoo.so", false},

		// always rejected
		{"windows", "64", "META-INF/MANIFEST.MF", false},
		{"windows", "64", "meta-inf/lwjgl.dll", false},
		{"linux", "64", "LICENSE.txt", false},
		{"linux", "64", "libfoo.so.git", false},

		// windows
		{"windows", "64", "lwjgl.dll", true},
		{"windows", "64", "windows/x64/org/lwjgl/LWJGL.DLL", true},
		{"windows", "64", "libfoo.so", true},
		{"windows", "64", "libfoo.dylib", true},
		{"windows", "32", "foo64.dll", false},
		{"windows", "32", "foo32.dll", true},
		{"windows", "64", "foo.jar", false},

		// osx
		{"osx", "64", "liblwjgl.dylib", true},
		{"osx", "64", "lwjgl.dll", false},

		// linux
		{"linux", "64", "linux/x64/org/lwjgl/liblwjgl.so", true},
		{"linux", "64", "liblwjgl.dylib", false},
		{"linux", "64", "lwjgl.dll", false},

		// unsupported platform
		{"freebsd", "64", "libfoo.so", false},
	}

	for _, tt := range tests {
		t.Run(tt.os+"/"+tt.arch+"/"+tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldExtract(tt.name, tt.os, tt.arch))
		})
	}
}

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(entries[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestNativesExtractor_FlattensAcceptedEntries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "lwjgl-natives-linux.jar")
	writeZip(t, archive, map[string]string{
		"META-INF/MANIFEST.MF":             "Manifest-Version: 1.0",
		"linux/x64/org/lwjgl/liblwjgl.so":  "lwjgl",
		"linux/x64/org/lwjgl/libglfw.so":   "glfw",
		"linux/x64/org/lwjgl/liblwjgl.sha": "digest",
		"README.txt":                       "readme",
		"windows/lwjgl.dll":                "dll",
	})

	natives := filepath.Join(dir, "natives")
	ex := NewNativesExtractor(platform.Info{OS: platform.Linux, Arch: platform.Arch64})

	res, err := ex.Extract(context.Background(), archive, natives)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"liblwjgl.so", "libglfw.so"}, res.Extracted)
	assert.Equal(t, 4, res.Skipped)
	assert.Equal(t, []string{"libglfw.so", "liblwjgl.so"}, listDir(t, natives))

	data, err := os.ReadFile(filepath.Join(natives, "liblwjgl.so"))
	require.NoError(t, err)
	assert.Equal(t, "lwjgl", string(data))
}

func TestNativesExtractor_SameBaseNameOverwrites(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.jar")
	second := filepath.Join(dir, "b.jar")
	writeZip(t, first, map[string]string{"x64/libshared.so": "from-a"})
	writeZip(t, second, map[string]string{"other/libshared.so": "from-b"})

	natives := filepath.Join(dir, "natives")
	ex := NewNativesExtractor(platform.Info{OS: platform.Linux, Arch: platform.Arch64})

	_, err := ex.Extract(context.Background(), first, natives)
	require.NoError(t, err)
	_, err = ex.Extract(context.Background(), second, natives)
	require.NoError(t, err)

	assert.Equal(t, []string{"libshared.so"}, listDir(t, natives))
	data, err := os.ReadFile(filepath.Join(natives, "libshared.so"))
	require.NoError(t, err)
	assert.Equal(t, "from-b", string(data))
}

func TestNativesExtractor_NotAnArchive(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(dir, "bogus.jar")
	require.NoError(t, os.WriteFile(bogus, []byte("definitely not a zip"), 0644))

	ex := NewNativesExtractor(platform.Info{OS: platform.Linux, Arch: platform.Arch64})
	_, err := ex.Extract(context.Background(), bogus, filepath.Join(dir, "natives"))
	assert.Error(t, err)
}

func TestNativesExtractor_UnsupportedPlatformExtractsNothing(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "natives.jar")
	writeZip(t, archive, map[string]string{"libfoo.so": "so", "foo.dll": "dll"})

	natives := filepath.Join(dir, "natives")
	ex := NewNativesExtractor(platform.Info{OS: "plan9", Arch: platform.Arch64})

	res, err := ex.Extract(context.Background(), archive, natives)
	require.NoError(t, err)
	assert.Empty(t, res.Extracted)
	assert.Equal(t, 2, res.Skipped)
}
