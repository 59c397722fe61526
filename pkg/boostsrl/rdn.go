// Package boostsrl learns Relational Dependency Networks by driving the
// BoostSRL engine as an external process: background knowledge and a
// relational database are serialized into the engine's workspace layout,
// the engine is invoked for learning or inference, and its textual
// artifacts are parsed back into memory.
package boostsrl

import (
	"context"
	"fmt"
	"os"

	"github.com/Munyola/boostsrl/pkg/boostsrl/background"
	"github.com/Munyola/boostsrl/pkg/boostsrl/database"
	"github.com/Munyola/boostsrl/pkg/boostsrl/engine"
	"github.com/Munyola/boostsrl/pkg/boostsrl/filesystem"
	"github.com/Munyola/boostsrl/pkg/boostsrl/internalerr"
	"github.com/Munyola/boostsrl/pkg/boostsrl/registry"
	"github.com/Munyola/boostsrl/pkg/boostsrl/results"
)

// RDN is a Relational Dependency Network estimator. It is unfitted
// until Fit succeeds; Predict and PredictProba fail before that. Model
// state is only ever replaced by a successful Fit, never mutated by
// inference. An RDN owns its workspace exclusively and is not safe for
// concurrent calls.
type RDN struct {
	background   *background.Background
	target       string
	nEstimators  int
	nodeSize     int
	maxTreeDepth int

	fs  *filesystem.Layout
	eng engine.Engine

	fitted    bool
	trees     []string
	threshold float64
	classes   []int
}

// Options configures an RDN. Target, positive counts, Background and
// Engine are required; a nil Layout allocates a temporary workspace.
type Options struct {
	Background   *background.Background
	Target       string
	NEstimators  int
	NodeSize     int
	MaxTreeDepth int
	Engine       engine.Engine
	Layout       *filesystem.Layout
}

// New validates the hyperparameters and returns a configured, unfitted
// RDN. Validation happens before any filesystem work.
func New(opts Options) (*RDN, error) {
	if opts.Target == "" || opts.Target == "None" {
		return nil, fmt.Errorf("%w: target predicate is required", internalerr.ErrInvalidConfig)
	}
	if opts.NEstimators <= 0 {
		return nil, fmt.Errorf("%w: nEstimators must be positive, got %d", internalerr.ErrInvalidConfig, opts.NEstimators)
	}
	if opts.NodeSize <= 0 {
		return nil, fmt.Errorf("%w: nodeSize must be positive, got %d", internalerr.ErrInvalidConfig, opts.NodeSize)
	}
	if opts.MaxTreeDepth <= 0 {
		return nil, fmt.Errorf("%w: maxTreeDepth must be positive, got %d", internalerr.ErrInvalidConfig, opts.MaxTreeDepth)
	}
	if opts.Background == nil {
		return nil, fmt.Errorf("%w: background knowledge is required", internalerr.ErrInvalidConfig)
	}
	if err := opts.Background.Validate(); err != nil {
		return nil, err
	}
	if opts.Engine == nil {
		return nil, fmt.Errorf("%w: engine is required", internalerr.ErrInvalidConfig)
	}

	fs := opts.Layout
	if fs == nil {
		var err error
		if fs, err = filesystem.New(""); err != nil {
			return nil, err
		}
	}

	return &RDN{
		background:   opts.Background,
		target:       opts.Target,
		nEstimators:  opts.NEstimators,
		nodeSize:     opts.NodeSize,
		maxTreeDepth: opts.MaxTreeDepth,
		fs:           fs,
		eng:          opts.Engine,
	}, nil
}

// Layout returns the workspace this estimator writes into.
func (r *RDN) Layout() *filesystem.Layout {
	return r.fs
}

// IsFitted reports whether a successful Fit has produced model state.
func (r *RDN) IsFitted() bool {
	return r.fitted
}

// Trees returns a copy of the fitted tree artifacts, one per estimator
// index.
func (r *RDN) Trees() []string {
	return append([]string(nil), r.trees...)
}

// Threshold returns the decision threshold from the most recent
// inference run.
func (r *RDN) Threshold() float64 {
	return r.threshold
}

// Classes returns the 0/1 labels from the most recent inference run,
// in the same class-grouped order as PredictProba.
func (r *RDN) Classes() []int {
	return append([]int(nil), r.classes...)
}

// Fit learns structure and parameters from a database of positive
// examples, negative examples and facts. On any failure no model state
// is committed and the estimator stays unfitted; refitting discards the
// previous model before the engine runs.
func (r *RDN) Fit(ctx context.Context, db *database.Database) error {
	if db == nil {
		return fmt.Errorf("%w: database is required", internalerr.ErrInvalidConfig)
	}

	r.fitted = false
	r.trees = nil
	r.threshold = 0
	r.classes = nil

	if err := r.writeInputs(db, r.fs.TrainDir(), "train"); err != nil {
		return err
	}

	job := engine.TrainJob{
		TrainDir: r.fs.TrainDir(),
		Target:   r.target,
		Trees:    r.nEstimators,
		LogPath:  r.fs.TrainLog(),
	}
	if err := r.eng.Train(ctx, job); err != nil {
		return err
	}

	trees := make([]string, 0, r.nEstimators)
	for i := 0; i < r.nEstimators; i++ {
		data, err := os.ReadFile(r.fs.TreeFile(r.target, i))
		if err != nil {
			return fmt.Errorf("%w: tree artifact %d: %v", internalerr.ErrParse, i, err)
		}
		trees = append(trees, string(data))
	}

	r.trees = trees
	r.fitted = true
	return nil
}

// PredictProba runs inference on a test database and returns the
// positive-class probability for every example, grouped by predicted
// class: positives first, then negatives as 1-score.
func (r *RDN) PredictProba(ctx context.Context, db *database.Database) ([]float64, error) {
	res, err := r.runInference(ctx, db)
	if err != nil {
		return nil, err
	}
	return res.Proba(), nil
}

// Predict runs inference and applies the run's decision threshold,
// returning booleans in the same class-grouped order as PredictProba.
func (r *RDN) Predict(ctx context.Context, db *database.Database) ([]bool, error) {
	res, err := r.runInference(ctx, db)
	if err != nil {
		return nil, err
	}
	return res.Labels(r.threshold), nil
}

// Save persists the fitted model to a registry and returns the run id.
func (r *RDN) Save(ctx context.Context, store registry.Store) (string, error) {
	if !r.fitted {
		return "", fmt.Errorf("%w: nothing to save", internalerr.ErrNotFitted)
	}
	return store.SaveRun(ctx, registry.Run{
		Target:       r.target,
		NodeSize:     r.nodeSize,
		MaxTreeDepth: r.maxTreeDepth,
		Background:   r.renderedBackground().String(),
		Trees:        r.trees,
		Threshold:    r.threshold,
	})
}

// Load restores a fitted RDN from a registry run. The returned estimator
// predicts without refitting; its tree artifacts are written back into
// the workspace on the next inference call.
func Load(ctx context.Context, store registry.Store, id string, eng engine.Engine, layout *filesystem.Layout) (*RDN, error) {
	run, err := store.GetRun(ctx, id)
	if err != nil {
		return nil, err
	}

	bk, err := background.Parse(run.Background)
	if err != nil {
		return nil, err
	}

	r, err := New(Options{
		Background:   bk,
		Target:       run.Target,
		NEstimators:  len(run.Trees),
		NodeSize:     run.NodeSize,
		MaxTreeDepth: run.MaxTreeDepth,
		Engine:       eng,
		Layout:       layout,
	})
	if err != nil {
		return nil, err
	}

	r.trees = append([]string(nil), run.Trees...)
	r.threshold = run.Threshold
	r.fitted = true
	return r, nil
}

// runInference performs one write, invoke, read-back cycle against the
// fitted model. The threshold is recomputed every call; the engine
// reports it per run.
func (r *RDN) runInference(ctx context.Context, db *database.Database) (*results.Results, error) {
	if !r.fitted {
		return nil, fmt.Errorf("%w: call Fit first", internalerr.ErrNotFitted)
	}
	if db == nil {
		return nil, fmt.Errorf("%w: database is required", internalerr.ErrInvalidConfig)
	}

	if err := r.writeInputs(db, r.fs.TestDir(), "test"); err != nil {
		return nil, err
	}

	// Restore tree artifacts so a registry-loaded model has its files in
	// place; after a local Fit this rewrites identical content.
	for i, tree := range r.trees {
		if err := os.WriteFile(r.fs.TreeFile(r.target, i), []byte(tree), 0644); err != nil {
			return nil, err
		}
	}

	job := engine.InferJob{
		TestDir:  r.fs.TestDir(),
		ModelDir: r.fs.ModelsDir(),
		Target:   r.target,
		Trees:    r.nEstimators,
		LogPath:  r.fs.TestLog(),
	}
	threshold, err := r.eng.Infer(ctx, job)
	if err != nil {
		return nil, err
	}
	r.threshold = threshold

	f, err := os.Open(r.fs.ResultsFile(r.target))
	if err != nil {
		return nil, fmt.Errorf("%w: results file: %v", internalerr.ErrParse, err)
	}
	defer f.Close()

	res, err := results.Parse(f)
	if err != nil {
		return nil, err
	}
	r.classes = res.Classes()
	return res, nil
}

// writeInputs serializes background and database into dir under the
// given filename prefix. The estimator's own nodeSize and maxTreeDepth
// override whatever the background carries.
func (r *RDN) writeInputs(db *database.Database, dir, prefix string) error {
	bk := r.renderedBackground()
	if err := bk.Write(dir, prefix); err != nil {
		return err
	}
	return db.Write(dir, prefix)
}

func (r *RDN) renderedBackground() *background.Background {
	bk := *r.background
	bk.NodeSize = r.nodeSize
	bk.MaxTreeDepth = r.maxTreeDepth
	return &bk
}
