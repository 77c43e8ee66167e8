package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// readInput reads path, or standard input for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or to stdout for "-". Parent
// directories are created as needed.
func (r *root) writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := r.stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func baseName(path string) string {
	if path == "-" {
		return ""
	}
	return filepath.Base(path)
}
