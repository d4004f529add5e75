package download

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/handiism/minecraft-fetcher/internal/http"
	ioutils "github.com/handiism/minecraft-fetcher/internal/io"
	"github.com/handiism/minecraft-fetcher/internal/model"
)

// BatchOptions configures one RunBatch call.
type BatchOptions struct {
	// Label prefixes progress messages ("libraries", "assets", ...).
	Label string

	// Concurrency is both the semaphore size and the chunk size.
	Concurrency int

	// Retries is the per-task attempt budget of the first pass.
	Retries int

	// FinalPassRetries is the budget used for tasks that failed the first
	// pass.
	FinalPassRetries int

	// VersionID tags queued native archives.
	VersionID string
}

// BatchResult summarizes a finished batch.
type BatchResult struct {
	Total     int
	Succeeded int

	// Failed holds the tasks that failed both passes.
	Failed []model.Task
}

// Downloader fetches and verifies tasks with bounded concurrency.
//
// Every attempt streams the body straight to the destination. A transfer
// error or a Content-Length mismatch deletes the file and is retried after a
// fixed cooldown. The SHA-1 check runs once, after the transfer succeeded;
// a mismatch deletes the file and returns ErrHashMismatch without retrying,
// leaving the decision to the caller.
//
// Example usage:
//
//	d := NewDownloader(http.NewClient(), time.Second, onProgress)
//	res := d.RunBatch(ctx, tasks, BatchOptions{
//	    Label: "assets", Concurrency: 250, Retries: 3, FinalPassRetries: 5,
//	}, &Progress{}, nil)
//	if len(res.Failed) > 0 {
//	    // terminal failures
//	}
type Downloader struct {
	http       *http.Client
	cooldown   time.Duration
	onProgress func(ProgressEvent)
}

// NewDownloader creates a Downloader. cooldown is the fixed pause between
// attempts of the same task.
func NewDownloader(client *http.Client, cooldown time.Duration, onProgress func(ProgressEvent)) *Downloader {
	return &Downloader{
		http:       client,
		cooldown:   cooldown,
		onProgress: onProgress,
	}
}

// DownloadAndVerify downloads task while holding one permit of sem, making
// at most budget attempts. When it returns a non-nil error no file is left
// at task.Path.
func (d *Downloader) DownloadAndVerify(ctx context.Context, sem *semaphore.Weighted, task model.Task, budget int) error {
	if err := sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer sem.Release(1)

	if budget < 1 {
		budget = 1
	}

	var err error
	for attempt := 1; attempt <= budget; attempt++ {
		if err = d.fetch(ctx, task); err == nil {
			break
		}
		_ = ioutils.RemoveFile(task.Path)

		if ctx.Err() != nil || attempt == budget {
			break
		}
		d.progress(ProgressEvent{
			Message: fmt.Sprintf("Retry %d/%d for %s: %v", attempt, budget, task.Name, err),
			Level:   LevelVerbose,
		})
		d.wait(ctx)
	}
	if err != nil {
		return err
	}

	if task.SHA1 == "" {
		return nil
	}

	sum, err := ioutils.FileSHA1(task.Path)
	if err != nil {
		_ = ioutils.RemoveFile(task.Path)
		return fmt.Errorf("hashing %s: %w", task.Path, err)
	}
	if sum != task.SHA1 {
		_ = ioutils.RemoveFile(task.Path)
		return fmt.Errorf("%s: %w: got %s, want %s", task.Name, ErrHashMismatch, sum, task.SHA1)
	}

	return nil
}

// RunBatch downloads tasks in chunks of opts.Concurrency. Chunks run one
// after another; the tasks of a chunk run concurrently. Tasks failing the
// first pass are retried at the end with opts.FinalPassRetries, and only
// failures surviving that pass are counted in progress and returned.
//
// Verified native tasks are pushed to natives, which may be nil.
func (d *Downloader) RunBatch(ctx context.Context, tasks []model.Task, opts BatchOptions, progress *Progress, natives *NativesQueue) BatchResult {
	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}
	sem := semaphore.NewWeighted(int64(limit))
	progress.total.Add(int64(len(tasks)))

	var retry taskList

	for start := 0; start < len(tasks); start += limit {
		end := min(start+limit, len(tasks))

		var g errgroup.Group
		for _, task := range tasks[start:end] {
			task := task
			g.Go(func() error {
				if err := d.DownloadAndVerify(ctx, sem, task, opts.Retries); err != nil {
					d.progress(ProgressEvent{
						Message: fmt.Sprintf("Failed %s, will retry: %v", task.Name, err),
						Level:   LevelVerbose,
					})
					retry.add(task)
					return nil
				}
				d.succeed(task, opts.VersionID, progress, natives)
				return nil
			})
		}
		_ = g.Wait()

		d.progress(ProgressEvent{
			Message: fmt.Sprintf("%s: %d/%d", opts.Label, progress.Success()+progress.Failed(), progress.Total()),
			Level:   LevelVerbose,
		})
	}

	result := BatchResult{Total: len(tasks)}

	if pending := retry.drain(); len(pending) > 0 {
		d.progress(ProgressEvent{
			Message: fmt.Sprintf("%s: retrying %d failed downloads", opts.Label, len(pending)),
			Level:   LevelWarning,
		})

		var failed taskList
		var g errgroup.Group
		g.SetLimit(limit)
		for _, task := range pending {
			task := task
			g.Go(func() error {
				if err := d.DownloadAndVerify(ctx, sem, task, opts.FinalPassRetries); err != nil {
					progress.failed.Add(1)
					failed.add(task)
					d.progress(ProgressEvent{
						Message: fmt.Sprintf("Error downloading %s: %v", task.Name, describe(err)),
						Level:   LevelError,
					})
					return nil
				}
				d.succeed(task, opts.VersionID, progress, natives)
				return nil
			})
		}
		_ = g.Wait()

		result.Failed = failed.drain()
	}

	result.Succeeded = result.Total - len(result.Failed)
	return result
}

func (d *Downloader) fetch(ctx context.Context, task model.Task) error {
	res, err := d.http.DownloadFile(ctx, task.URL, task.Path, nil)
	if err != nil {
		return err
	}
	if res.ContentLength > 0 && res.Written != res.ContentLength {
		return fmt.Errorf("%w: wrote %d of %d bytes", ErrSizeMismatch, res.Written, res.ContentLength)
	}
	return nil
}

func (d *Downloader) succeed(task model.Task, versionID string, progress *Progress, natives *NativesQueue) {
	progress.success.Add(1)
	if task.Native && natives != nil {
		natives.Push(model.NativeArchive{ArchivePath: task.Path, VersionID: versionID})
	}
}

func (d *Downloader) wait(ctx context.Context) {
	if d.cooldown <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(d.cooldown):
	}
}

func (d *Downloader) progress(event ProgressEvent) {
	if d.onProgress != nil {
		d.onProgress(event)
	}
}

func describe(err error) string {
	var statusErr *http.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return err.Error()
}
