package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout maps the estimator's named artifacts onto one workspace
// directory in the layout the engine expects. A Layout is exclusive to
// one estimator instance; nothing guards concurrent use of the same
// workspace.
type Layout struct {
	root string
	temp bool
}

// New prepares a workspace rooted at root, creating the training,
// testing and model directories. An empty root allocates a temporary
// workspace that Cleanup will remove.
func New(root string) (*Layout, error) {
	temp := false
	if root == "" {
		dir, err := os.MkdirTemp("", "boostsrl-*")
		if err != nil {
			return nil, err
		}
		root = dir
		temp = true
	}

	l := &Layout{root: root, temp: temp}
	for _, dir := range []string{l.TrainDir(), l.TestDir(), l.TreesDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Root returns the workspace root directory.
func (l *Layout) Root() string {
	return l.root
}

// TrainDir is where training background, examples and facts are written.
func (l *Layout) TrainDir() string {
	return filepath.Join(l.root, "train")
}

// TestDir is where inference inputs and the results file live.
func (l *Layout) TestDir() string {
	return filepath.Join(l.root, "test")
}

// ModelsDir is the directory passed to the engine's -model flag.
func (l *Layout) ModelsDir() string {
	return filepath.Join(l.TrainDir(), "models")
}

// TreesDir is where the engine writes per-tree artifacts.
func (l *Layout) TreesDir() string {
	return filepath.Join(l.ModelsDir(), "bRDNs", "Trees")
}

// TrainLog is the file training stdout/stderr is redirected to.
func (l *Layout) TrainLog() string {
	return filepath.Join(l.root, "train_output.txt")
}

// TestLog is the file inference stdout/stderr is redirected to.
func (l *Layout) TestLog() string {
	return filepath.Join(l.root, "test_output.txt")
}

// TreeFile returns the path of one tree artifact, named by target and
// zero-based tree index.
func (l *Layout) TreeFile(target string, index int) string {
	return filepath.Join(l.TreesDir(), fmt.Sprintf("%sTree%d.tree", target, index))
}

// ResultsFile returns the path of the inference results file for target.
func (l *Layout) ResultsFile(target string) string {
	return filepath.Join(l.TestDir(), fmt.Sprintf("results_%s.db", target))
}

// Cleanup removes the workspace if this Layout owns a temporary one.
// Caller-provided roots are left in place.
func (l *Layout) Cleanup() error {
	if !l.temp {
		return nil
	}
	return os.RemoveAll(l.root)
}
