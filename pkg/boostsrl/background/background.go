package background

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Munyola/boostsrl/pkg/boostsrl/internalerr"
)

// Background is the declarative knowledge handed to the engine before
// learning and inference: predicate modes plus the search parameters
// that bound tree growth.
type Background struct {
	Modes                []string
	NodeSize             int
	MaxTreeDepth         int
	NumberOfClauses      int
	NumberOfCycles       int
	UseStdLogicVariables bool
	UsePrologVariables   bool
}

// New returns a Background with the engine's default search parameters.
// Modes must be added before use.
func New(modes ...string) *Background {
	return &Background{
		Modes:           modes,
		NodeSize:        2,
		MaxTreeDepth:    3,
		NumberOfClauses: 100,
		NumberOfCycles:  100,
	}
}

// Validate checks that the background can be rendered for the engine.
func (b *Background) Validate() error {
	if len(b.Modes) == 0 {
		return fmt.Errorf("%w: background requires at least one mode", internalerr.ErrInvalidConfig)
	}
	if b.NodeSize <= 0 {
		return fmt.Errorf("%w: nodeSize must be positive, got %d", internalerr.ErrInvalidConfig, b.NodeSize)
	}
	if b.MaxTreeDepth <= 0 {
		return fmt.Errorf("%w: maxTreeDepth must be positive, got %d", internalerr.ErrInvalidConfig, b.MaxTreeDepth)
	}
	if b.NumberOfClauses <= 0 {
		return fmt.Errorf("%w: numberOfClauses must be positive, got %d", internalerr.ErrInvalidConfig, b.NumberOfClauses)
	}
	if b.NumberOfCycles <= 0 {
		return fmt.Errorf("%w: numberOfCycles must be positive, got %d", internalerr.ErrInvalidConfig, b.NumberOfCycles)
	}
	return nil
}

// String renders the background-file syntax the engine reads:
// setParam lines first, then variable-convention switches, then modes.
func (b *Background) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "setParam: nodeSize=%d.\n", b.NodeSize)
	fmt.Fprintf(&sb, "setParam: maxTreeDepth=%d.\n", b.MaxTreeDepth)
	fmt.Fprintf(&sb, "setParam: numberOfClauses=%d.\n", b.NumberOfClauses)
	fmt.Fprintf(&sb, "setParam: numberOfCycles=%d.\n", b.NumberOfCycles)
	if b.UseStdLogicVariables {
		sb.WriteString("useStdLogicVariables: true.\n")
	}
	if b.UsePrologVariables {
		sb.WriteString("usePrologVariables: true.\n")
	}
	for _, mode := range b.Modes {
		fmt.Fprintf(&sb, "mode: %s.\n", strings.TrimSuffix(mode, "."))
	}
	return sb.String()
}

// Write serializes the background into dir as <prefix>_bk.txt.
func (b *Background) Write(dir, prefix string) error {
	if err := b.Validate(); err != nil {
		return err
	}
	path := filepath.Join(dir, prefix+"_bk.txt")
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// Parse reads a rendered background back into a Background. It accepts
// the same syntax String produces; unknown setParams are ignored.
func Parse(text string) (*Background, error) {
	b := New()
	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		line = strings.TrimSuffix(line, ".")

		switch {
		case strings.HasPrefix(line, "setParam:"):
			kv := strings.TrimSpace(strings.TrimPrefix(line, "setParam:"))
			key, val, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, fmt.Errorf("%w: background line %d: bad setParam %q", internalerr.ErrParse, lineNum, kv)
			}
			n, err := strconv.Atoi(strings.TrimSpace(val))
			if err != nil {
				continue
			}
			switch strings.TrimSpace(key) {
			case "nodeSize":
				b.NodeSize = n
			case "maxTreeDepth":
				b.MaxTreeDepth = n
			case "numberOfClauses":
				b.NumberOfClauses = n
			case "numberOfCycles":
				b.NumberOfCycles = n
			}
		case strings.HasPrefix(line, "useStdLogicVariables:"):
			b.UseStdLogicVariables = strings.TrimSpace(strings.TrimPrefix(line, "useStdLogicVariables:")) == "true"
		case strings.HasPrefix(line, "usePrologVariables:"):
			b.UsePrologVariables = strings.TrimSpace(strings.TrimPrefix(line, "usePrologVariables:")) == "true"
		case strings.HasPrefix(line, "mode:"):
			b.Modes = append(b.Modes, strings.TrimSpace(strings.TrimPrefix(line, "mode:")))
		default:
			return nil, fmt.Errorf("%w: background line %d: unrecognized directive %q", internalerr.ErrParse, lineNum, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return b, nil
}
