// Package adapters holds the built-in output adapters and the file helpers
// they share.
package adapters

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteFile writes data to rel under destDir, creating parent directories.
// The file is written to a temporary name and renamed into place so readers
// never observe a partial file.
func WriteFile(destDir, rel string, data []byte) (string, error) {
	if destDir == "" {
		return "", errors.New("destination directory is required")
	}
	cleanRel := filepath.Clean(rel)
	if rel == "" || filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q must be relative to the destination", rel)
	}

	fullPath := filepath.Join(destDir, cleanRel)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	tmp := fullPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", fmt.Errorf("write temp output: %w", err)
	}
	if err := os.Rename(tmp, fullPath); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("atomic rename output: %w", err)
	}
	return fullPath, nil
}
