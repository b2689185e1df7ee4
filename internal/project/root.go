// Package project locates App Builder project roots.
package project

import (
	"os"
	"path/filepath"
)

// MarkerFile identifies the root of an App Builder project.
const MarkerFile = "app.config.yaml"

// FindRoot walks up from dir looking for the project marker file. Returns
// the directory containing it, or false when no project root exists on the
// path to the filesystem root.
func FindRoot(dir string) (string, bool) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		if IsRoot(current) {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// IsRoot reports whether dir directly contains the project marker file.
func IsRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, MarkerFile))
	return err == nil && !info.IsDir()
}
