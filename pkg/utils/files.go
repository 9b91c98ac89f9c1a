package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetPathInfo resolves relPath to an absolute path and its directory.
func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", err
	}
	parentDir = filepath.Dir(fullPath)
	return fullPath, parentDir, nil
}

// ReadSource reads a Verilog source file. The returned path is absolute.
func ReadSource(relPath string) (fullPath string, src string, err error) {
	fullPath, _, err = GetPathInfo(relPath)
	if err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return fullPath, "", fmt.Errorf("failed to read source file %q: %w", relPath, err)
	}
	return fullPath, string(data), nil
}

// WriteOutput writes text to path, or to stdout when path is empty or "-".
func WriteOutput(path string, text string) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprint(os.Stdout, text)
		return err
	}
	return os.WriteFile(path, []byte(text), 0o644)
}
