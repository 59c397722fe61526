package background

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Munyola/boostsrl/pkg/boostsrl/internalerr"
)

func TestStringRendering(t *testing.T) {
	b := New("friends(+Person,-Person)", "smokes(+Person)")
	b.UseStdLogicVariables = true

	want := `setParam: nodeSize=2.
setParam: maxTreeDepth=3.
setParam: numberOfClauses=100.
setParam: numberOfCycles=100.
useStdLogicVariables: true.
mode: friends(+Person,-Person).
mode: smokes(+Person).
`
	if got := b.String(); got != want {
		t.Errorf("String:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestStringTrimsTrailingDot(t *testing.T) {
	b := New("smokes(+Person).")
	if !strings.Contains(b.String(), "mode: smokes(+Person).\n") {
		t.Errorf("mode with trailing dot double-rendered:\n%s", b.String())
	}
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	b := New("smokes(+Person)")

	if err := b.Write(dir, "train"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "train_bk.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != b.String() {
		t.Errorf("file content differs from String output")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Background)
	}{
		{"no modes", func(b *Background) { b.Modes = nil }},
		{"zero node size", func(b *Background) { b.NodeSize = 0 }},
		{"zero depth", func(b *Background) { b.MaxTreeDepth = 0 }},
		{"zero clauses", func(b *Background) { b.NumberOfClauses = 0 }},
		{"zero cycles", func(b *Background) { b.NumberOfCycles = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New("smokes(+Person)")
			tc.mutate(b)
			if err := b.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := New("smokes(+Person)").Validate(); err != nil {
		t.Errorf("valid background rejected: %v", err)
	}
}

func TestParseRoundTrip(t *testing.T) {
	orig := New("friends(+Person,-Person)", "cancer(+Person)")
	orig.NodeSize = 4
	orig.MaxTreeDepth = 5
	orig.UsePrologVariables = true

	parsed, err := Parse(orig.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if parsed.String() != orig.String() {
		t.Errorf("round trip changed rendering:\ngot:\n%s\nwant:\n%s", parsed.String(), orig.String())
	}
	if parsed.NodeSize != 4 || parsed.MaxTreeDepth != 5 {
		t.Errorf("params not restored: nodeSize=%d maxTreeDepth=%d", parsed.NodeSize, parsed.MaxTreeDepth)
	}
	if !parsed.UsePrologVariables {
		t.Error("usePrologVariables not restored")
	}
	if len(parsed.Modes) != 2 {
		t.Errorf("expected 2 modes, got %d", len(parsed.Modes))
	}
}

func TestParseUnknownDirective(t *testing.T) {
	if _, err := Parse("bridger: nope.\n"); !errors.Is(err, internalerr.ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}

func TestParseSkipsCommentsAndBlanks(t *testing.T) {
	text := "// header comment\n\nmode: smokes(+Person).\n"
	b, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(b.Modes) != 1 {
		t.Errorf("expected 1 mode, got %d", len(b.Modes))
	}
}
