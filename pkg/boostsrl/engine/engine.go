package engine

import "context"

// Engine runs the external learner. The real implementation shells out
// to the BoostSRL jar (see the boost subpackage); tests substitute fakes.
type Engine interface {
	// Train runs one structure/parameter learning pass. On success the
	// engine has written job.Trees tree artifacts under the model
	// directory inside job.TrainDir.
	Train(ctx context.Context, job TrainJob) error

	// Infer runs inference against previously learned trees and returns
	// the decision threshold the engine reports for this run.
	Infer(ctx context.Context, job InferJob) (float64, error)
}

// TrainJob describes one training invocation.
type TrainJob struct {
	TrainDir string
	Target   string
	Trees    int
	LogPath  string
}

// InferJob describes one inference invocation.
type InferJob struct {
	TestDir  string
	ModelDir string
	Target   string
	Trees    int
	LogPath  string
}
