package download

import (
	"sync"
	"sync/atomic"

	"github.com/handiism/minecraft-fetcher/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lowercase level name.
func (l ProgressLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// ProgressEvent represents a download progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel

	// RunID identifies the download run that emitted the event; empty
	// outside a run.
	RunID string
}

// Stage names a step of a version download.
type Stage string

const (
	StageIdle      Stage = "idle"
	StageManifest  Stage = "manifest"
	StageClient    Stage = "client"
	StageLogging   Stage = "logging"
	StageLibraries Stage = "libraries"
	StageNatives   Stage = "natives"
	StageAssets    Stage = "assets"
	StageMappings  Stage = "mappings"
	StageDone      Stage = "done"
)

// Progress holds the counters of one batch. Counters only grow and are
// updated by completed task outcomes.
type Progress struct {
	total   atomic.Int64
	success atomic.Int64
	failed  atomic.Int64
}

// Total returns the number of tasks in the batch.
func (p *Progress) Total() int64 { return p.total.Load() }

// Success returns the number of verified downloads.
func (p *Progress) Success() int64 { return p.success.Load() }

// Failed returns the number of terminal failures.
func (p *Progress) Failed() int64 { return p.failed.Load() }

// ProgressSnapshot is a point-in-time copy of the manager's progress.
type ProgressSnapshot struct {
	Stage   Stage
	Total   int64
	Success int64
	Failed  int64
}

// Done returns the number of tasks with a final outcome.
func (s ProgressSnapshot) Done() int64 {
	return s.Success + s.Failed
}

// Percent returns completion in [0, 1].
func (s ProgressSnapshot) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Done()) / float64(s.Total)
}

// taskList is a mutex guarded list of tasks, drained once.
type taskList struct {
	mu    sync.Mutex
	tasks []model.Task
}

func (l *taskList) add(task model.Task) {
	l.mu.Lock()
	l.tasks = append(l.tasks, task)
	l.mu.Unlock()
}

func (l *taskList) drain() []model.Task {
	l.mu.Lock()
	defer l.mu.Unlock()

	tasks := l.tasks
	l.tasks = nil
	return tasks
}

// NativesQueue collects verified native archives until the library batch is
// complete. It is safe for concurrent use.
type NativesQueue struct {
	mu    sync.Mutex
	items []model.NativeArchive
}

// Push appends an archive.
func (q *NativesQueue) Push(a model.NativeArchive) {
	q.mu.Lock()
	q.items = append(q.items, a)
	q.mu.Unlock()
}

// Drain returns every queued archive and empties the queue.
func (q *NativesQueue) Drain() []model.NativeArchive {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	return items
}

// Len returns the number of queued archives.
func (q *NativesQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
