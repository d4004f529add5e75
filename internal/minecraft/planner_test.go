package minecraft

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/minecraft-fetcher/internal/minecraft/dto"
	"github.com/handiism/minecraft-fetcher/internal/model"
	"github.com/handiism/minecraft-fetcher/internal/platform"
)

const (
	clientSHA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	guavaSHA  = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	lwjglSHA  = "cccccccccccccccccccccccccccccccccccccccc"
	nativeSHA = "dddddddddddddddddddddddddddddddddddddddd"
)

const versionJSON = `{
  "id": "1.20.4",
  "type": "release",
  "downloads": {
    "client": {"url": "https://example.com/client.jar", "sha1": "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", "size": 10},
    "client_mappings": {"url": "https://example.com/client.txt", "sha1": "eeee", "size": 5}
  },
  "logging": {"client": {"argument": "-Dlog4j.configurationFile=${path}", "file": {"id": "client-1.12.xml", "url": "https://example.com/client-1.12.xml"}}},
  "assetIndex": {"id": "12", "url": "https://example.com/indexes/12.json", "sha1": "ffff"},
  "libraries": [
    {"name": "com.google:guava:32", "downloads": {"artifact": {"path": "com/google/guava/guava-32.jar", "url": "https://example.com/guava.jar", "sha1": "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"}}},
    {"name": "org.lwjgl:lwjgl:3", "downloads": {
        "artifact": {"path": "org/lwjgl/lwjgl-3.jar", "url": "https://example.com/lwjgl.jar", "sha1": "cccccccccccccccccccccccccccccccccccccccc"},
        "classifiers": {"natives-linux": {"path": "org/lwjgl/lwjgl-3-natives-linux.jar", "url": "https://example.com/lwjgl-natives-linux.jar", "sha1": "dddddddddddddddddddddddddddddddddddddddd"}}},
      "rules": [{"action": "allow", "os": {"name": "linux"}}]},
    {"name": "multi:rule:1", "downloads": {"artifact": {"path": "multi/rule.jar", "url": "https://example.com/multi.jar", "sha1": "cccccccccccccccccccccccccccccccccccccccc"}},
      "rules": [{"action": "allow"}, {"action": "allow", "os": {"name": "linux"}}]},
    {"name": "broken:url:1", "downloads": {"artifact": {"path": "broken/url.jar", "url": 42, "sha1": "cccccccccccccccccccccccccccccccccccccccc"}}},
    {"name": "broken:downloads:1", "downloads": "nope"},
    {"name": "escape:path:1", "downloads": {"artifact": {"path": "../../etc/passwd", "url": "https://example.com/x.jar", "sha1": "cccccccccccccccccccccccccccccccccccccccc"}}},
    "not an object"
  ]
}`

func newTestPlanner(t *testing.T, osName string) (*Planner, *model.Layout, *[]string) {
	t.Helper()

	layout := model.NewLayout(t.TempDir())
	var skipped []string
	p := NewPlanner(layout, platform.Info{OS: osName, Arch: platform.Arch64}, "https://resources.example.com/", func(reason string) {
		skipped = append(skipped, reason)
	})
	return p, layout, &skipped
}

func parseTestVersion(t *testing.T, doc string) *dto.Version {
	t.Helper()

	v, err := ParseVersion([]byte(doc))
	require.NoError(t, err)
	return v
}

func TestPlanner_ClientTask(t *testing.T) {
	p, layout, _ := newTestPlanner(t, platform.Linux)
	v := parseTestVersion(t, versionJSON)

	task, ok := p.ClientTask(v)
	require.True(t, ok)

	assert.Equal(t, "https://example.com/client.jar", task.URL)
	assert.Equal(t, layout.VersionJar("1.20.4"), task.Path)
	assert.Equal(t, clientSHA, task.SHA1, "checksum is normalized to lowercase")
	assert.Equal(t, model.CategoryClient, task.Category)
	assert.DirExists(t, layout.VersionDir("1.20.4"))
}

func TestPlanner_ScalarTasksAreUnverified(t *testing.T) {
	p, layout, _ := newTestPlanner(t, platform.Linux)
	v := parseTestVersion(t, versionJSON)

	logging, ok := p.LoggingTask(v)
	require.True(t, ok)
	assert.Equal(t, layout.LoggingConfig("1.20.4"), logging.Path)
	assert.Empty(t, logging.SHA1)
	assert.Equal(t, model.CategoryLogging, logging.Category)

	mappings, ok := p.MappingsTask(v)
	require.True(t, ok)
	assert.Equal(t, layout.Mappings("1.20.4"), mappings.Path)
	assert.Empty(t, mappings.SHA1)
	assert.Equal(t, model.CategoryMappings, mappings.Category)
}

func TestPlanner_AssetIndex(t *testing.T) {
	p, layout, _ := newTestPlanner(t, platform.Linux)
	v := parseTestVersion(t, versionJSON)

	u, path, ok := p.AssetIndex(v)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/indexes/12.json", u)
	assert.Equal(t, layout.AssetIndex("12"), path)
}

func TestPlanner_MissingSectionsAreSkipped(t *testing.T) {
	p, _, skipped := newTestPlanner(t, platform.Linux)
	v := parseTestVersion(t, `{"id": "bare", "downloads": {"client": {"url": "ftp://nope", "sha1": "`+clientSHA+`"}}, "logging": 7}`)

	_, ok := p.ClientTask(v)
	assert.False(t, ok)
	_, ok = p.LoggingTask(v)
	assert.False(t, ok)
	_, ok = p.MappingsTask(v)
	assert.False(t, ok)
	_, _, ok = p.AssetIndex(v)
	assert.False(t, ok)
	assert.Empty(t, p.LibraryTasks(v))

	assert.Len(t, *skipped, 4)
}

func TestPlanner_ClientWithoutChecksumIsSkipped(t *testing.T) {
	p, _, _ := newTestPlanner(t, platform.Linux)
	v := parseTestVersion(t, `{"id": "x", "downloads": {"client": {"url": "https://example.com/c.jar"}}}`)

	_, ok := p.ClientTask(v)
	assert.False(t, ok)
}

func TestPlanner_LibraryTasks_Linux(t *testing.T) {
	p, layout, skipped := newTestPlanner(t, platform.Linux)
	v := parseTestVersion(t, versionJSON)

	tasks := p.LibraryTasks(v)
	require.Len(t, tasks, 3)

	guava := tasks[0]
	assert.Equal(t, "com.google:guava:32", guava.Name)
	assert.Equal(t, layout.Library("com/google/guava/guava-32.jar"), guava.Path)
	assert.Equal(t, guavaSHA, guava.SHA1)
	assert.False(t, guava.Native)

	lwjgl := tasks[1]
	assert.True(t, lwjgl.Native)
	assert.Equal(t, "https://example.com/lwjgl-natives-linux.jar", lwjgl.URL)
	assert.Equal(t, layout.Library("org/lwjgl/lwjgl-3-natives-linux.jar"), lwjgl.Path)
	assert.Equal(t, nativeSHA, lwjgl.SHA1)
	assert.DirExists(t, filepath.Dir(lwjgl.Path))

	// Only the first rule is consulted; it has no os, so this library is
	// not native even though a later rule names linux.
	multi := tasks[2]
	assert.Equal(t, "multi:rule:1", multi.Name)
	assert.False(t, multi.Native)

	// broken url, broken downloads, escaping path, non-object entry
	assert.Len(t, *skipped, 4)
}

func TestPlanner_LibraryTasks_OtherPlatform(t *testing.T) {
	p, layout, _ := newTestPlanner(t, platform.Windows)
	v := parseTestVersion(t, versionJSON)

	tasks := p.LibraryTasks(v)
	require.Len(t, tasks, 3)

	lwjgl := tasks[1]
	assert.False(t, lwjgl.Native)
	assert.Equal(t, layout.Library("org/lwjgl/lwjgl-3.jar"), lwjgl.Path)
	assert.Equal(t, lwjglSHA, lwjgl.SHA1)
}

func TestPlanner_NativeWithoutClassifierFallsBack(t *testing.T) {
	p, layout, _ := newTestPlanner(t, platform.OSX)
	v := parseTestVersion(t, `{"id": "x", "libraries": [
		{"name": "a:b:1", "downloads": {"artifact": {"path": "a/b.jar", "url": "https://example.com/b.jar", "sha1": "`+lwjglSHA+`"},
		  "classifiers": {"natives-linux": {"path": "a/b-linux.jar", "url": "https://example.com/b-linux.jar", "sha1": "`+nativeSHA+`"}}},
		 "rules": [{"action": "allow", "os": {"name": "osx"}}]}
	]}`)

	tasks := p.LibraryTasks(v)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Native)
	assert.Equal(t, layout.Library("a/b.jar"), tasks[0].Path)
}

func TestPlanner_OSXPrefersMacOSClassifier(t *testing.T) {
	p, layout, _ := newTestPlanner(t, platform.OSX)
	v := parseTestVersion(t, `{"id": "x", "libraries": [
		{"name": "a:b:1", "downloads": {
		  "classifiers": {
		    "natives-osx": {"path": "a/b-osx.jar", "url": "https://example.com/b-osx.jar", "sha1": "`+nativeSHA+`"},
		    "natives-macos": {"path": "a/b-macos.jar", "url": "https://example.com/b-macos.jar", "sha1": "`+nativeSHA+`"}}},
		 "rules": [{"action": "allow", "os": {"name": "osx"}}]}
	]}`)

	tasks := p.LibraryTasks(v)
	require.Len(t, tasks, 1)
	assert.Equal(t, layout.Library("a/b-macos.jar"), tasks[0].Path)
}

func TestPlanner_AssetTasks(t *testing.T) {
	p, layout, skipped := newTestPlanner(t, platform.Linux)

	const hash = "0123456789abcdef0123456789abcdef01234567"
	index := &dto.AssetIndex{Objects: dto.AssetObjects{
		"minecraft/sounds/a.ogg":  {Hash: hash},
		"minecraft/sounds/b.ogg":  {Hash: "0123456789ABCDEF0123456789ABCDEF01234567"},
		"minecraft/lang/en.json":  {Hash: "ffffffffffffffffffffffffffffffffffffffff"},
		"minecraft/broken/c.json": {Hash: "xyz"},
	}}

	tasks := p.AssetTasks(index)
	require.Len(t, tasks, 2)
	assert.Len(t, *skipped, 1)

	byHash := map[string]model.Task{}
	for _, task := range tasks {
		byHash[task.SHA1] = task
	}

	obj, ok := byHash[hash]
	require.True(t, ok, "entries sharing a hash collapse into one task")
	assert.Equal(t, "https://resources.example.com/01/"+hash, obj.URL)
	assert.Equal(t, layout.AssetObject(hash), obj.Path)
	assert.Equal(t, model.CategoryAsset, obj.Category)
	assert.DirExists(t, filepath.Dir(obj.Path))
}

func TestPlanner_DirectoryFailureDoesNotStopPlanning(t *testing.T) {
	root := t.TempDir()
	// A file where the libraries directory should be makes every mkdir fail.
	require.NoError(t, os.WriteFile(filepath.Join(root, "libraries"), []byte("x"), 0644))

	layout := model.NewLayout(root)
	var skipped []string
	p := NewPlanner(layout, platform.Info{OS: platform.Linux, Arch: platform.Arch64}, "https://r.example.com", func(reason string) {
		skipped = append(skipped, reason)
	})

	tasks := p.LibraryTasks(parseTestVersion(t, versionJSON))
	assert.Len(t, tasks, 3)
	assert.NotEmpty(t, skipped)
}

func TestPlanner_LibraryTasks_DuplicatePathPlannedOnce(t *testing.T) {
	p, layout, skipped := newTestPlanner(t, platform.Linux)
	v := parseTestVersion(t, `{
  "id": "1.20.4",
  "libraries": [
    {"name": "org.lwjgl:lwjgl:3", "downloads": {"artifact": {"path": "org/lwjgl/lwjgl-3.jar", "url": "https://example.com/lwjgl.jar", "sha1": "cccccccccccccccccccccccccccccccccccccccc"}}},
    {"name": "org.lwjgl:lwjgl:3:natives", "downloads": {"artifact": {"path": "org/lwjgl/lwjgl-3.jar", "url": "https://example.com/lwjgl.jar", "sha1": "cccccccccccccccccccccccccccccccccccccccc"}},
      "rules": [{"action": "allow", "os": {"name": "linux"}}]}
  ]
}`)

	tasks := p.LibraryTasks(v)
	require.Len(t, tasks, 1)
	assert.Equal(t, layout.Library("org/lwjgl/lwjgl-3.jar"), tasks[0].Path)
	assert.Equal(t, "org.lwjgl:lwjgl:3", tasks[0].Name)
	assert.True(t, tasks[0].Native, "a native duplicate keeps the planned task extractable")
	require.Len(t, *skipped, 1)
	assert.Contains(t, (*skipped)[0], "already planned")
}
