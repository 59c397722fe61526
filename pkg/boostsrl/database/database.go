package database

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// Database holds the relational data handed to the engine: positive
// examples, negative examples and ground facts, one literal per entry.
type Database struct {
	Pos   []string
	Neg   []string
	Facts []string
}

// New returns an empty Database.
func New() *Database {
	return &Database{}
}

// Write serializes the database into dir as <prefix>_pos.txt,
// <prefix>_neg.txt and <prefix>_facts.txt. Empty sections still produce
// their file; the engine expects all three to exist.
func (d *Database) Write(dir, prefix string) error {
	if err := writeLiterals(filepath.Join(dir, prefix+"_pos.txt"), d.Pos); err != nil {
		return err
	}
	if err := writeLiterals(filepath.Join(dir, prefix+"_neg.txt"), d.Neg); err != nil {
		return err
	}
	return writeLiterals(filepath.Join(dir, prefix+"_facts.txt"), d.Facts)
}

// Load reads a database from three literal files in the same layout
// Write produces. Blank lines and // comments are skipped.
func Load(posPath, negPath, factsPath string) (*Database, error) {
	pos, err := readLiterals(posPath)
	if err != nil {
		return nil, err
	}
	neg, err := readLiterals(negPath)
	if err != nil {
		return nil, err
	}
	facts, err := readLiterals(factsPath)
	if err != nil {
		return nil, err
	}
	return &Database{Pos: pos, Neg: neg, Facts: facts}, nil
}

func writeLiterals(path string, literals []string) error {
	var sb strings.Builder
	for _, lit := range literals {
		sb.WriteString(lit)
		sb.WriteString("\n")
	}
	return os.WriteFile(path, []byte(sb.String()), 0644)
}

func readLiterals(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
