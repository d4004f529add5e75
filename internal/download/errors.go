package download

import (
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/minecraft-fetcher/internal/model"
)

var (
	// ErrHashMismatch is returned when a downloaded file's SHA-1 differs
	// from the declared one. The file has been deleted.
	ErrHashMismatch = errors.New("sha1 mismatch")

	// ErrSizeMismatch is returned when fewer or more bytes arrived than the
	// server's Content-Length announced.
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrNoURL is returned when a version input carries no manifest URL.
	ErrNoURL = errors.New("no version manifest url")

	// ErrUnknownVersion is returned when a version id is not in the
	// version list.
	ErrUnknownVersion = errors.New("unknown version")
)

// RunError reports the verified categories that ended with terminal
// failures.
type RunError struct {
	VersionID string
	Failed    map[model.Category]int
}

func (e *RunError) Error() string {
	var parts []string
	for _, c := range []model.Category{model.CategoryClient, model.CategoryLibrary, model.CategoryAsset} {
		if n := e.Failed[c]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, c))
		}
	}
	return fmt.Sprintf("download of %s failed: %s files failed", e.VersionID, strings.Join(parts, ", "))
}

// Total returns the number of failed files across categories.
func (e *RunError) Total() int {
	n := 0
	for _, v := range e.Failed {
		n += v
	}
	return n
}
