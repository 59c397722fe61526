package results

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/Munyola/boostsrl/pkg/boostsrl/internalerr"
)

// Results holds the classifications read back from one inference run.
// Rows keep their file order internally; the exported views are grouped
// by class, positives first, matching the layout downstream consumers
// expect.
type Results struct {
	rows []row
}

type row struct {
	positive bool
	score    float64
}

// Parse reads the engine's results file: one example per line, first
// column the ground literal, second column the reported score. A literal
// starting with '!' marks a negative example; anything else is positive.
// Extra columns are ignored.
func Parse(r io.Reader) (*Results, error) {
	res := &Results{}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: results line %d: expected at least 2 columns, got %d", internalerr.ErrParse, lineNum, len(fields))
		}

		score, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: results line %d: bad score %q", internalerr.ErrParse, lineNum, fields[1])
		}

		res.rows = append(res.rows, row{
			positive: fields[0][0] != '!',
			score:    score,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

// Len returns the number of parsed examples.
func (r *Results) Len() int {
	return len(r.rows)
}

// Proba returns the positive-class probability for every example,
// grouped by class: positives first with their scores as reported, then
// negatives with 1-score.
func (r *Results) Proba() []float64 {
	out := make([]float64, 0, len(r.rows))
	for _, row := range r.rows {
		if row.positive {
			out = append(out, row.score)
		}
	}
	for _, row := range r.rows {
		if !row.positive {
			out = append(out, 1-row.score)
		}
	}
	return out
}

// Classes returns the 0/1 class labels aligned with Proba.
func (r *Results) Classes() []int {
	out := make([]int, 0, len(r.rows))
	for _, row := range r.rows {
		if row.positive {
			out = append(out, 1)
		}
	}
	for _, row := range r.rows {
		if !row.positive {
			out = append(out, 0)
		}
	}
	return out
}

// Labels applies a strict greater-than threshold to the probabilities,
// in the same class-grouped order as Proba.
func (r *Results) Labels(threshold float64) []bool {
	proba := r.Proba()
	out := make([]bool, len(proba))
	for i, p := range proba {
		out[i] = p > threshold
	}
	return out
}

var thresholdPattern = regexp.MustCompile(`% Threshold = (\d+(?:\.\d+)?)`)

// ParseThreshold extracts the decision threshold the engine reports in
// its inference log. Exactly one "% Threshold = <float>" line must be
// present; none or several make the log ambiguous.
func ParseThreshold(logText string) (float64, error) {
	matches := thresholdPattern.FindAllStringSubmatch(logText, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("%w: no threshold line in inference log", internalerr.ErrParse)
	}
	if len(matches) > 1 {
		return 0, fmt.Errorf("%w: %d threshold lines in inference log", internalerr.ErrParse, len(matches))
	}

	val, err := strconv.ParseFloat(matches[0][1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad threshold %q", internalerr.ErrParse, matches[0][1])
	}
	return val, nil
}
