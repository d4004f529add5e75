package minecraft

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/handiism/minecraft-fetcher/internal/minecraft/dto"
	"github.com/handiism/minecraft-fetcher/internal/model"
	"github.com/handiism/minecraft-fetcher/internal/platform"
)

var sha1Pattern = regexp.MustCompile(`^[0-9a-f]{40}$`)

// Planner turns a parsed manifest into download tasks.
//
// A section whose URL (or, for verified categories, checksum) is missing or
// malformed produces no task; the reason is passed to the skip callback and
// planning continues. Parent directories of every destination are created
// while planning so permission problems surface early, but a failed mkdir
// never stops planning either.
//
// Example:
//
//	planner := NewPlanner(layout, platform.Static{OS: "linux", Arch: "64"}.Detect(ctx),
//	    settings.AssetBaseURL, func(reason string) { log.Println(reason) })
//
//	if task, ok := planner.ClientTask(version); ok {
//	    // download task.URL into task.Path and verify task.SHA1
//	}
//	libs := planner.LibraryTasks(version)
type Planner struct {
	layout       *model.Layout
	platform     platform.Info
	assetBaseURL string
	onSkip       func(reason string)

	madeDirs map[string]bool
}

// NewPlanner creates a Planner writing into layout for the given platform.
// onSkip may be nil.
func NewPlanner(layout *model.Layout, p platform.Info, assetBaseURL string, onSkip func(reason string)) *Planner {
	return &Planner{
		layout:       layout,
		platform:     p,
		assetBaseURL: strings.TrimRight(assetBaseURL, "/"),
		onSkip:       onSkip,
		madeDirs:     make(map[string]bool),
	}
}

// ClientTask plans the client jar download.
func (p *Planner) ClientTask(v *dto.Version) (model.Task, bool) {
	if v.Downloads == nil || v.Downloads.Client == nil {
		p.skip("client jar: no downloads.client entry")
		return model.Task{}, false
	}
	art := v.Downloads.Client
	hash, ok := p.checkVerified("client jar", art.URL.String(), art.SHA1.String())
	if !ok {
		return model.Task{}, false
	}

	task := model.Task{
		URL:      art.URL.String(),
		Path:     p.layout.VersionJar(v.ID.String()),
		SHA1:     hash,
		Name:     v.ID.String() + ".jar",
		Category: model.CategoryClient,
	}
	p.ensureParent(task.Path)
	return task, true
}

// LoggingTask plans the logging configuration download. It is not verified.
func (p *Planner) LoggingTask(v *dto.Version) (model.Task, bool) {
	if v.Logging == nil || v.Logging.Client == nil || v.Logging.Client.File == nil {
		p.skip("logging config: no logging.client.file entry")
		return model.Task{}, false
	}
	file := v.Logging.Client.File
	if !validURL(file.URL.String()) {
		p.skip(fmt.Sprintf("logging config: invalid url %q", file.URL))
		return model.Task{}, false
	}

	task := model.Task{
		URL:      file.URL.String(),
		Path:     p.layout.LoggingConfig(v.ID.String()),
		Name:     model.LoggingConfigName,
		Category: model.CategoryLogging,
	}
	p.ensureParent(task.Path)
	return task, true
}

// MappingsTask plans the client mappings download. It is not verified.
func (p *Planner) MappingsTask(v *dto.Version) (model.Task, bool) {
	if v.Downloads == nil || v.Downloads.ClientMappings == nil {
		p.skip("mappings: no downloads.client_mappings entry")
		return model.Task{}, false
	}
	art := v.Downloads.ClientMappings
	if !validURL(art.URL.String()) {
		p.skip(fmt.Sprintf("mappings: invalid url %q", art.URL))
		return model.Task{}, false
	}

	task := model.Task{
		URL:      art.URL.String(),
		Path:     p.layout.Mappings(v.ID.String()),
		Name:     v.ID.String() + "-mappings.txt",
		Category: model.CategoryMappings,
	}
	p.ensureParent(task.Path)
	return task, true
}

// AssetIndex returns where the asset index is fetched from and where it is
// stored. The file is named after the index id, falling back to the
// version id when the manifest does not carry one.
func (p *Planner) AssetIndex(v *dto.Version) (indexURL, path string, ok bool) {
	if v.AssetIndex == nil || !validURL(v.AssetIndex.URL.String()) {
		p.skip("asset index: no valid assetIndex.url")
		return "", "", false
	}

	id := v.AssetIndex.ID.String()
	if id == "" || !filepath.IsLocal(id) {
		id = v.ID.String()
	}
	path = p.layout.AssetIndex(id)
	p.ensureParent(path)
	return v.AssetIndex.URL.String(), path, true
}

// LibraryTasks plans one task per downloadable library.
//
// A library is native when its first rule names the running OS. Only the
// first rule is consulted, even when a manifest lists several os-scoped
// rules. Native libraries use the platform classifier when one exists and
// otherwise fall back to the plain artifact, staying flagged for
// extraction. Entries resolving to an already planned path are dropped; a
// native duplicate marks the planned task native.
func (p *Planner) LibraryTasks(v *dto.Version) []model.Task {
	var tasks []model.Task
	planned := make(map[string]int)

	for i, lib := range v.Libraries {
		name := lib.Name.String()
		if name == "" {
			name = fmt.Sprintf("libraries[%d]", i)
		}
		if lib.Downloads == nil {
			p.skip(fmt.Sprintf("library %s: no downloads entry", name))
			continue
		}

		native := p.isNative(lib)
		art := lib.Downloads.Artifact
		if native {
			if c := p.classifier(lib.Downloads.Classifiers); c != nil {
				art = c
			}
		}
		if art == nil {
			p.skip(fmt.Sprintf("library %s: no artifact for %s", name, p.platform.OS))
			continue
		}

		rel := filepath.FromSlash(art.Path.String())
		if rel == "" || !filepath.IsLocal(rel) {
			p.skip(fmt.Sprintf("library %s: invalid path %q", name, art.Path))
			continue
		}
		hash, ok := p.checkVerified("library "+name, art.URL.String(), art.SHA1.String())
		if !ok {
			continue
		}

		path := p.layout.Library(art.Path.String())
		if idx, ok := planned[path]; ok {
			tasks[idx].Native = tasks[idx].Native || native
			p.skip(fmt.Sprintf("library %s: %s already planned", name, art.Path))
			continue
		}

		task := model.Task{
			URL:      art.URL.String(),
			Path:     path,
			SHA1:     hash,
			Native:   native,
			Name:     name,
			Category: model.CategoryLibrary,
		}
		p.ensureParent(task.Path)
		planned[path] = len(tasks)
		tasks = append(tasks, task)
	}

	return tasks
}

// AssetTasks plans one task per distinct asset object.
//
// Objects are content addressed, so entries sharing a hash collapse into a
// single task. Keys are visited in sorted order to keep plans stable.
func (p *Planner) AssetTasks(index *dto.AssetIndex) []model.Task {
	keys := make([]string, 0, len(index.Objects))
	for key := range index.Objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seen := make(map[string]bool, len(keys))
	tasks := make([]model.Task, 0, len(keys))

	for _, key := range keys {
		hash := strings.ToLower(index.Objects[key].Hash.String())
		if !sha1Pattern.MatchString(hash) {
			p.skip(fmt.Sprintf("asset %s: invalid hash %q", key, index.Objects[key].Hash))
			continue
		}
		if seen[hash] {
			continue
		}
		seen[hash] = true

		task := model.Task{
			URL:      p.AssetURL(hash),
			Path:     p.layout.AssetObject(hash),
			SHA1:     hash,
			Name:     key,
			Category: model.CategoryAsset,
		}
		p.ensureParent(task.Path)
		tasks = append(tasks, task)
	}

	return tasks
}

// AssetURL returns the download URL of the object with the given hash:
// <base>/<hash[0:2]>/<hash>.
func (p *Planner) AssetURL(hash string) string {
	return p.assetBaseURL + "/" + hash[:2] + "/" + hash
}

func (p *Planner) isNative(lib dto.Library) bool {
	if len(lib.Rules) == 0 || lib.Rules[0].OS == nil {
		return false
	}
	return lib.Rules[0].OS.Name.String() == p.platform.OS
}

func (p *Planner) classifier(classifiers dto.Classifiers) *dto.Artifact {
	for _, key := range p.platform.NativesClassifiers() {
		if art := classifiers[key]; art != nil && art.URL != "" {
			return art
		}
	}
	return nil
}

// checkVerified validates the url and checksum of a verified download and
// returns the normalized checksum.
func (p *Planner) checkVerified(what, rawURL, sum string) (string, bool) {
	if !validURL(rawURL) {
		p.skip(fmt.Sprintf("%s: invalid url %q", what, rawURL))
		return "", false
	}
	sum = strings.ToLower(sum)
	if !sha1Pattern.MatchString(sum) {
		p.skip(fmt.Sprintf("%s: invalid sha1 %q", what, sum))
		return "", false
	}
	return sum, true
}

func (p *Planner) ensureParent(path string) {
	dir := filepath.Dir(path)
	if p.madeDirs[dir] {
		return
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		p.skip(fmt.Sprintf("creating %s: %v", dir, err))
		return
	}
	p.madeDirs[dir] = true
}

func (p *Planner) skip(reason string) {
	if p.onSkip != nil {
		p.onSkip(reason)
	}
}

func validURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
