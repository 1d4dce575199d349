package entities

// Row statuses recorded on a report row after the inspection phase.
const (
	StatusOK          = "ok"          // measured successfully
	StatusUnavailable = "unavailable" // clone or measurement failed
	StatusSkipped     = "skipped"     // measurement was not requested
)

// SizeMeasurement holds the sizes obtained by cloning a repository.
// A nil *SizeMeasurement on a row means no measurement exists, either
// because it was skipped or because the clone failed.
type SizeMeasurement struct {
	WorkingTreeBytes int64 // working tree on disk, .git excluded
	LFSBytes         int64 // sum of all LFS object sizes
	LFSObjects       int   // number of LFS objects counted
}
