// Package download fetches and verifies everything a Minecraft version
// needs and extracts its native libraries.
//
// # Manager
//
// The Manager runs one version download as a pipeline of stages:
//
//  1. Fetch the version manifest
//  2. Download the client jar (verified)
//  3. Download the logging config (best effort)
//  4. Download libraries (verified), then extract natives
//  5. Download the asset index and asset objects (verified)
//  6. Download the client mappings (best effort)
//
// # Basic Usage
//
//	manager := download.NewManager(settings, platform.NewDetector(), func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//
//	res, err := manager.DownloadVersion(ctx, "1.20.4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.RunID, res.Counts)
//
// # Concurrency
//
// Tasks are run in chunks the size of the category's bound
// (settings.LibraryConcurrency, settings.AssetConcurrency). A chunk starts
// only after the previous one finished, and a semaphore of the same size
// gates the fetches inside it.
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress returns the current stage and its counters for polling UIs.
//
// # Retry Logic
//
// A task gets settings.DownloadMaxRetries attempts separated by a fixed
// settings.DownloadRetryCooldown. Tasks that still fail are retried once
// more after the whole batch with settings.FinalPassRetries attempts; what
// fails then is a terminal failure. A checksum mismatch ends the current
// attempt budget immediately.
package download
