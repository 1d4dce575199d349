package entities

import "time"

// Repository holds the hosting-service metadata for a single repository,
// as returned by the provider API. It is immutable once fetched; size
// measurements live in SizeMeasurement.
type Repository struct {
	ID            int64
	Name          string
	Owner         string
	FullName      string // "owner/name"
	Description   string
	Visibility    string // "public" or "private"
	DefaultBranch string
	CloneURL      string
	SSHURL        string
	HTMLURL       string
	SizeKB        int64 // API-reported size, in KiB
	Stars         int
	Forks         int
	Watchers      int
	Subscribers   int
	OpenIssues    int
	Fork          bool
	Archived      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PushedAt      time.Time
	ProviderName  string
}
