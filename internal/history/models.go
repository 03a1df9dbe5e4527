package history

import "time"

// RunStatus represents the lifecycle of a processing run.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// Run records one catalog operation against a song.
type Run struct {
	ID         string
	SongID     string
	Operation  string
	Status     RunStatus
	Detail     string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// Duration returns the elapsed run time, or zero while still running.
func (r *Run) Duration() time.Duration {
	if r == nil || r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// StemRecord captures the last successful encode of one track.
type StemRecord struct {
	SongID         string
	TrackID        string
	SourceFile     string
	SourceChecksum string
	MP3File        string
	OGGFile        string
	PeaksFile      string
	ProcessedAt    time.Time
}
