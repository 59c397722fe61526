// Package dataset loads the plain-text mode and example files the cmd
// tools accept.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Munyola/boostsrl/pkg/boostsrl/background"
	"github.com/Munyola/boostsrl/pkg/boostsrl/database"
	"github.com/Munyola/boostsrl/pkg/boostsrl/internalerr"
)

// Modes reads predicate modes from a file, one per line. Blank lines and
// // comments are skipped.
func Modes(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var modes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		modes = append(modes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(modes) == 0 {
		return nil, fmt.Errorf("%w: no modes in %s", internalerr.ErrInvalidConfig, path)
	}
	return modes, nil
}

// Load builds a Background from a modes file and a Database from the
// three example/fact files.
func Load(modesPath, posPath, negPath, factsPath string) (*background.Background, *database.Database, error) {
	modes, err := Modes(modesPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Load(posPath, negPath, factsPath)
	if err != nil {
		return nil, nil, err
	}
	return background.New(modes...), db, nil
}
