package download

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/handiism/minecraft-fetcher/internal/config"
	"github.com/handiism/minecraft-fetcher/internal/http"
	ioutils "github.com/handiism/minecraft-fetcher/internal/io"
	"github.com/handiism/minecraft-fetcher/internal/minecraft"
	"github.com/handiism/minecraft-fetcher/internal/minecraft/dto"
	"github.com/handiism/minecraft-fetcher/internal/model"
	"github.com/handiism/minecraft-fetcher/internal/platform"
)

// CategoryCount holds the outcome of one download category.
type CategoryCount struct {
	Total     int
	Succeeded int
	Failed    int
}

// StageTiming records how long a stage took.
type StageTiming struct {
	Stage   Stage
	Elapsed time.Duration
}

// Result describes a finished version download.
type Result struct {
	RunID     string
	VersionID string
	Platform  platform.Info

	// Manifest is the version manifest exactly as served.
	Manifest json.RawMessage
	Version  *dto.Version

	Counts  map[model.Category]CategoryCount
	Timings []StageTiming
	Elapsed time.Duration
}

func (r *Result) record(c model.Category, b BatchResult) {
	count := r.Counts[c]
	count.Total += b.Total
	count.Succeeded += b.Succeeded
	count.Failed += len(b.Failed)
	r.Counts[c] = count
}

func (r *Result) fail(c model.Category, n int) {
	count := r.Counts[c]
	count.Total += n
	count.Failed += n
	r.Counts[c] = count
}

// demote moves n downloaded files of c from succeeded to failed.
func (r *Result) demote(c model.Category, n int) {
	count := r.Counts[c]
	n = min(n, count.Succeeded)
	count.Succeeded -= n
	count.Failed += n
	r.Counts[c] = count
}

// err returns a *RunError when a verified category has failures.
func (r *Result) err() error {
	failed := make(map[model.Category]int)
	for c, count := range r.Counts {
		if c.Verified() && count.Failed > 0 {
			failed[c] = count.Failed
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &RunError{VersionID: r.VersionID, Failed: failed}
}

// Manager coordinates version downloads.
//
// A download runs as a fixed pipeline: client jar, logging config,
// libraries followed by natives extraction, asset index and objects, then
// the client mappings. Libraries (extraction included) always finish before
// the first asset is requested. Only failures in the client, library and
// asset categories fail the run; logging config and mappings are best
// effort.
//
// Example usage:
//
//	m := download.NewManager(settings, platform.NewDetector(), func(e download.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//
//	res, err := m.DownloadVersion(ctx, "https://piston-meta.mojang.com/v1/packages/…/1.20.4.json")
//	var runErr *download.RunError
//	if errors.As(err, &runErr) {
//	    fmt.Println(runErr.Failed)
//	}
type Manager struct {
	settings   *config.Settings
	layout     *model.Layout
	detector   platform.Detector
	client     *minecraft.Client
	downloader *Downloader

	onProgress func(ProgressEvent)

	mu       sync.RWMutex
	stage    Stage
	runID    string
	current  *Progress
	versions *dto.VersionList
}

// NewManager creates a new download Manager.
func NewManager(settings *config.Settings, detector platform.Detector, onProgress func(ProgressEvent)) *Manager {
	opts := []http.Option{http.WithRateLimit(settings.MaxBytesPerSecond)}
	if settings.RequestTimeout > 0 {
		opts = append(opts, http.WithTimeout(settings.Timeout()))
	}
	if settings.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(settings.UserAgent))
	}
	httpClient := http.NewClient(opts...)

	m := &Manager{
		settings:   settings,
		layout:     model.NewLayout(settings.RootDir),
		detector:   detector,
		client:     minecraft.NewClient(httpClient),
		onProgress: onProgress,
		stage:      StageIdle,
		current:    &Progress{},
	}
	m.downloader = NewDownloader(httpClient, settings.RetryCooldown(), m.progress)
	return m
}

// Layout returns the directory layout downloads are written to.
func (m *Manager) Layout() *model.Layout {
	return m.layout
}

// FetchVersionManifest downloads the top-level version list.
func (m *Manager) FetchVersionManifest(ctx context.Context) (*dto.VersionList, error) {
	list, err := m.client.FetchVersionList(ctx, m.settings.VersionManifestURL)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.versions = list
	m.mu.Unlock()
	return list, nil
}

// ResolveVersion returns the manifest URL of a version id. The aliases
// "release" and "snapshot" name the latest version of that type. The
// version list is fetched once and reused.
func (m *Manager) ResolveVersion(ctx context.Context, id string) (string, error) {
	m.mu.RLock()
	list := m.versions
	m.mu.RUnlock()

	if list == nil {
		var err error
		if list, err = m.FetchVersionManifest(ctx); err != nil {
			return "", err
		}
	}

	entry, ok := list.Find(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownVersion, id)
	}
	return entry.URL, nil
}

// ParseVersionInput extracts the manifest URL from a raw URL or from a JSON
// object with a "url" field.
func ParseVersionInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrNoURL
	}
	if !strings.HasPrefix(input, "{") {
		return input, nil
	}

	var ref struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(input), &ref); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoURL, err)
	}
	if ref.URL == "" {
		return "", ErrNoURL
	}
	return ref.URL, nil
}

// DownloadVersion downloads everything a version needs.
//
// input is a manifest URL, a JSON object with a "url" field, or a version
// id (resolved through the version list). On success the Result carries the
// manifest as served. When a verified category ends with terminal failures
// the Result is still returned, together with a *RunError.
func (m *Manager) DownloadVersion(ctx context.Context, input string) (*Result, error) {
	start := time.Now()

	manifestURL, err := ParseVersionInput(input)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(manifestURL, "://") {
		if manifestURL, err = m.ResolveVersion(ctx, manifestURL); err != nil {
			return nil, err
		}
	}

	m.setStage(StageManifest, nil)
	version, raw, err := m.client.FetchVersion(ctx, manifestURL)
	if err != nil {
		m.setStage(StageIdle, nil)
		return nil, fmt.Errorf("fetching version manifest: %w", err)
	}

	if err := m.layout.EnsureDirs(); err != nil {
		m.setStage(StageIdle, nil)
		return nil, err
	}

	info := m.detector.Detect(ctx)
	res := &Result{
		RunID:     m.startRun(),
		VersionID: version.ID.String(),
		Platform:  info,
		Manifest:  raw,
		Version:   version,
		Counts:    make(map[model.Category]CategoryCount),
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Downloading %s for %s/%s", res.VersionID, info.OS, info.Arch),
		Level:   LevelInfo,
	})

	planner := minecraft.NewPlanner(m.layout, info, m.settings.AssetBaseURL, func(reason string) {
		m.progress(ProgressEvent{Message: "Skipping " + reason, Level: LevelVerbose})
	})

	m.timed(res, StageClient, func() {
		if task, ok := planner.ClientTask(version); ok {
			res.record(model.CategoryClient, m.runStage(ctx, StageClient, []model.Task{task}, 1, res.VersionID, nil))
		}
	})

	m.timed(res, StageLogging, func() {
		if task, ok := planner.LoggingTask(version); ok {
			b := m.runStage(ctx, StageLogging, []model.Task{task}, 1, res.VersionID, nil)
			res.record(model.CategoryLogging, b)
			if len(b.Failed) > 0 {
				m.progress(ProgressEvent{Message: "Logging config unavailable, continuing", Level: LevelWarning})
			}
		}
	})

	m.timed(res, StageLibraries, func() {
		natives := &NativesQueue{}
		tasks := planner.LibraryTasks(version)
		res.record(model.CategoryLibrary, m.runStage(ctx, StageLibraries, tasks, m.settings.LibraryConcurrency, res.VersionID, natives))

		m.setStage(StageNatives, nil)
		if n := m.extractNatives(ctx, natives, info); n > 0 {
			res.demote(model.CategoryLibrary, n)
		}
	})

	m.timed(res, StageAssets, func() {
		m.setStage(StageAssets, nil)
		tasks, err := m.planAssets(ctx, planner, version)
		if err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error loading asset index: %v", err), Level: LevelError})
			res.fail(model.CategoryAsset, 1)
			return
		}
		res.record(model.CategoryAsset, m.runStage(ctx, StageAssets, tasks, m.settings.AssetConcurrency, res.VersionID, nil))
	})

	m.timed(res, StageMappings, func() {
		if task, ok := planner.MappingsTask(version); ok {
			b := m.runStage(ctx, StageMappings, []model.Task{task}, 1, res.VersionID, nil)
			res.record(model.CategoryMappings, b)
			if len(b.Failed) > 0 {
				m.progress(ProgressEvent{Message: "Client mappings unavailable, continuing", Level: LevelWarning})
			}
		}
	})

	res.Elapsed = time.Since(start)
	m.setStage(StageDone, nil)
	m.reportTimings(res)
	defer m.endRun()

	if err := res.err(); err != nil {
		m.progress(ProgressEvent{Message: err.Error(), Level: LevelError})
		return res, err
	}

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Downloaded %s in %s", res.VersionID, res.Elapsed.Round(time.Millisecond)),
		Level:   LevelSuccess,
	})
	return res, nil
}

// GetProgress returns the current stage and its counters.
func (m *Manager) GetProgress() ProgressSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return ProgressSnapshot{
		Stage:   m.stage,
		Total:   m.current.Total(),
		Success: m.current.Success(),
		Failed:  m.current.Failed(),
	}
}

func (m *Manager) runStage(ctx context.Context, stage Stage, tasks []model.Task, concurrency int, versionID string, natives *NativesQueue) BatchResult {
	progress := &Progress{}
	m.setStage(stage, progress)

	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Downloading %d %s files", len(tasks), stage),
		Level:   LevelInfo,
	})

	return m.downloader.RunBatch(ctx, tasks, BatchOptions{
		Label:            string(stage),
		Concurrency:      concurrency,
		Retries:          m.settings.DownloadMaxRetries,
		FinalPassRetries: m.settings.FinalPassRetries,
		VersionID:        versionID,
	}, progress, natives)
}

// extractNatives drains the queue into each version's natives directory
// and returns the number of archives that could not be extracted.
func (m *Manager) extractNatives(ctx context.Context, queue *NativesQueue, info platform.Info) int {
	if queue.Len() == 0 {
		return 0
	}
	m.progress(ProgressEvent{
		Message: fmt.Sprintf("Extracting %d native archives", queue.Len()),
		Level:   LevelInfo,
	})
	archives := queue.Drain()

	extractor := ioutils.NewNativesExtractor(info)
	failures := 0
	for _, a := range archives {
		dir := m.layout.NativesDir(a.VersionID)
		res, err := extractor.Extract(ctx, a.ArchivePath, dir)
		if err != nil {
			failures++
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error extracting %s: %v", a.ArchivePath, err), Level: LevelError})
			continue
		}
		m.progress(ProgressEvent{
			Message: fmt.Sprintf("Extracted %d natives from %s", len(res.Extracted), a.ArchivePath),
			Level:   LevelVerbose,
		})
	}
	return failures
}

// planAssets fetches the asset index, stores it and plans its objects.
func (m *Manager) planAssets(ctx context.Context, planner *minecraft.Planner, version *dto.Version) ([]model.Task, error) {
	indexURL, indexPath, ok := planner.AssetIndex(version)
	if !ok {
		return nil, nil
	}

	index, raw, err := m.client.FetchAssetIndex(ctx, indexURL)
	if err != nil {
		return nil, err
	}
	if err := ioutils.WriteFile(ctx, indexPath, raw); err != nil {
		return nil, fmt.Errorf("saving asset index: %w", err)
	}

	return planner.AssetTasks(index), nil
}

func (m *Manager) timed(res *Result, stage Stage, fn func()) {
	start := time.Now()
	fn()
	res.Timings = append(res.Timings, StageTiming{Stage: stage, Elapsed: time.Since(start)})
}

func (m *Manager) reportTimings(res *Result) {
	parts := make([]string, 0, len(res.Timings))
	for _, t := range res.Timings {
		parts = append(parts, fmt.Sprintf("%s %s", t.Stage, t.Elapsed.Round(time.Millisecond)))
	}
	m.progress(ProgressEvent{Message: "Timings: " + strings.Join(parts, ", "), Level: LevelVerbose})
}

func (m *Manager) setStage(stage Stage, progress *Progress) {
	if progress == nil {
		progress = &Progress{}
	}
	m.mu.Lock()
	m.stage = stage
	m.current = progress
	m.mu.Unlock()
}

// startRun assigns a new run id, stamped on every event until endRun.
func (m *Manager) startRun() string {
	id := uuid.NewString()
	m.mu.Lock()
	m.runID = id
	m.mu.Unlock()
	return id
}

func (m *Manager) endRun() {
	m.mu.Lock()
	m.runID = ""
	m.mu.Unlock()
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress == nil {
		return
	}
	if event.RunID == "" {
		m.mu.RLock()
		event.RunID = m.runID
		m.mu.RUnlock()
	}
	m.onProgress(event)
}
