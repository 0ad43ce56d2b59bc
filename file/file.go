// Package file loads faren source files for the command line driver.
package file

import (
	"fmt"
	"os"
	"path/filepath"
)

// Extension is the conventional suffix for faren source files.
const Extension = ".frn"

// HasExtension reports whether path carries the conventional source
// extension. The driver only warns on a mismatch; any readable file is
// accepted.
func HasExtension(path string) bool {
	return filepath.Ext(path) == Extension
}

// Read returns the contents of the source file at path.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(data), nil
}
