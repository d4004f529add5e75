package model

// Category groups tasks that share a concurrency bound and a failure verdict.
type Category int

const (
	// CategoryClient is the version's client jar (verified).
	CategoryClient Category = iota

	// CategoryLibrary is a shared library archive (verified).
	CategoryLibrary

	// CategoryAsset is a content-addressed asset object (verified).
	CategoryAsset

	// CategoryLogging is the logging descriptor (best effort).
	CategoryLogging

	// CategoryMappings is the client mapping file (best effort).
	CategoryMappings
)

// String returns a human readable category name.
func (c Category) String() string {
	switch c {
	case CategoryClient:
		return "client"
	case CategoryLibrary:
		return "libraries"
	case CategoryAsset:
		return "assets"
	case CategoryLogging:
		return "logging"
	case CategoryMappings:
		return "mappings"
	default:
		return "unknown"
	}
}

// Verified reports whether failures in the category fail the whole run.
func (c Category) Verified() bool {
	return c == CategoryClient || c == CategoryLibrary || c == CategoryAsset
}

// Task is one planned download. It is created by the planner and consumed
// exactly once by the downloader.
type Task struct {
	// URL is the remote location of the file.
	URL string

	// Path is the local destination.
	Path string

	// SHA1 is the expected lowercase hex digest. Empty means the file is
	// not verified.
	SHA1 string

	// Native marks library archives whose platform files must be extracted.
	Native bool

	// Name is a display name (library coordinate, asset key, ...).
	Name string

	Category Category
}

// NativeArchive is a verified native library archive waiting for extraction.
type NativeArchive struct {
	ArchivePath string
	VersionID   string
}
