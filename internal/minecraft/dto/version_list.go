package dto

import "time"

// VersionList is the top-level version manifest listing every release.
type VersionList struct {
	Latest   Latest         `json:"latest"`
	Versions []VersionEntry `json:"versions"`
}

// Latest names the newest release and snapshot ids.
type Latest struct {
	Release  string `json:"release"`
	Snapshot string `json:"snapshot"`
}

// VersionEntry is one version in the list.
type VersionEntry struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	URL         string    `json:"url"`
	Time        time.Time `json:"time"`
	ReleaseTime time.Time `json:"releaseTime"`
}

// Find returns the entry with the given id. The aliases "release" and
// "snapshot" resolve to the latest id of that type.
func (l *VersionList) Find(id string) (*VersionEntry, bool) {
	switch id {
	case "release":
		id = l.Latest.Release
	case "snapshot":
		id = l.Latest.Snapshot
	}

	for i := range l.Versions {
		if l.Versions[i].ID == id {
			return &l.Versions[i], true
		}
	}
	return nil, false
}
