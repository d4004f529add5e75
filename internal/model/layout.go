package model

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Names of the files written for a single version.
const (
	LoggingConfigName = "client-1.12.xml"
)

// Layout maps a game root directory to the deterministic subtrees the
// fetcher writes into.
//
// Example:
//
//	layout := NewLayout("/home/user/.minecraft")
//	layout.VersionJar("1.20.4")  // /home/user/.minecraft/versions/1.20.4/1.20.4.jar
//	layout.NativesDir("1.20.4")  // /home/user/.minecraft/versions/1.20.4/1.20.4-natives
//	layout.AssetObject("ab12…")  // /home/user/.minecraft/assets/objects/ab/ab12…
type Layout struct {
	// BaseDir is the game root directory.
	BaseDir string

	// VersionsDir holds one directory per version id.
	VersionsDir string

	// LibrariesDir holds library archives at their manifest-declared paths.
	LibrariesDir string

	// AssetsDir holds the asset indexes and content-addressed objects.
	AssetsDir string
}

// NewLayout creates a Layout rooted at baseDir.
func NewLayout(baseDir string) *Layout {
	return &Layout{
		BaseDir:      baseDir,
		VersionsDir:  filepath.Join(baseDir, "versions"),
		LibrariesDir: filepath.Join(baseDir, "libraries"),
		AssetsDir:    filepath.Join(baseDir, "assets"),
	}
}

// VersionDir returns versions/<id>.
func (l *Layout) VersionDir(id string) string {
	return filepath.Join(l.VersionsDir, id)
}

// NativesDir returns versions/<id>/<id>-natives.
func (l *Layout) NativesDir(id string) string {
	return filepath.Join(l.VersionDir(id), id+"-natives")
}

// VersionJar returns versions/<id>/<id>.jar.
func (l *Layout) VersionJar(id string) string {
	return filepath.Join(l.VersionDir(id), id+".jar")
}

// LoggingConfig returns versions/<id>/client-1.12.xml.
func (l *Layout) LoggingConfig(id string) string {
	return filepath.Join(l.VersionDir(id), LoggingConfigName)
}

// Mappings returns versions/<id>/<id>-mappings.txt.
func (l *Layout) Mappings(id string) string {
	return filepath.Join(l.VersionDir(id), id+"-mappings.txt")
}

// Library returns libraries/<path> for a manifest artifact path.
func (l *Layout) Library(path string) string {
	return filepath.Join(l.LibrariesDir, filepath.FromSlash(path))
}

// AssetIndex returns assets/indexes/<id>.json.
func (l *Layout) AssetIndex(id string) string {
	return filepath.Join(l.AssetsDir, "indexes", id+".json")
}

// AssetObject returns assets/objects/<hash[0:2]>/<hash>. Identical hashes
// always map to the same file.
func (l *Layout) AssetObject(hash string) string {
	return filepath.Join(l.AssetsDir, "objects", hash[:2], hash)
}

// EnsureDirs creates the root and the versions, libraries and assets
// directories. It is safe to call repeatedly.
func (l *Layout) EnsureDirs() error {
	for _, dir := range []string{l.BaseDir, l.VersionsDir, l.LibrariesDir, l.AssetsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// AbsolutePath canonicalizes path, resolving symlinks and stripping the
// Windows verbatim prefix. It returns an empty string when path does not
// exist.
func (l *Layout) AbsolutePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(resolved, `\\?\`)
}

// LibrariesClasspath walks the libraries tree and returns the absolute path
// of every .jar file. Callers that need a stable classpath must sort it.
func (l *Layout) LibrariesClasspath() []string {
	var jars []string
	_ = filepath.WalkDir(l.LibrariesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".jar" {
			return nil
		}
		if abs := l.AbsolutePath(path); abs != "" {
			jars = append(jars, abs)
		}
		return nil
	})
	return jars
}
