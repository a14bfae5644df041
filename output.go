package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// inputDir is the root of the per-year input tree.
const inputDir = "inputs"

// inputPath returns the deterministic output path for a puzzle input.
func inputPath(year, day int) string {
	return filepath.Join(inputDir, strconv.Itoa(year), strconv.Itoa(day))
}

// writeInput writes the puzzle input body to inputs/<year>/<day>, creating
// directories as needed. An existing file is overwritten: rerunning a get
// refreshes the cached input.
func writeInput(year, day int, body []byte) (string, error) {
	path := inputPath(year, day)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir input dir: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write input: %w", err)
	}
	return path, nil
}
