package registry

import (
	"context"
	"time"
)

// Store persists fitted model runs so a learned RDN can be reloaded
// without refitting.
type Store interface {
	Close() error

	// SaveRun stores a run and returns its assigned id.
	SaveRun(ctx context.Context, r Run) (string, error)

	// GetRun loads a run by id.
	GetRun(ctx context.Context, id string) (Run, error)

	// ListRuns returns summaries, newest first. An empty target lists
	// every run.
	ListRuns(ctx context.Context, target string) ([]RunSummary, error)
}

// Run is one fitted model: hyperparameters, the rendered background and
// the ordered tree artifacts. Threshold is the last value reported by an
// inference run, zero if the model never ran inference.
type Run struct {
	ID           string
	Target       string
	NodeSize     int
	MaxTreeDepth int
	Background   string
	Trees        []string
	Threshold    float64
	CreatedAt    time.Time
}

// RunSummary is the listing view of a run.
type RunSummary struct {
	ID        string
	Target    string
	Trees     int
	CreatedAt time.Time
}
