package utils

import (
	"os"
	"path/filepath"
)

func DirectoryExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureParentDir creates the directory that will hold file, if needed.
func EnsureParentDir(file string) error {
	dir := filepath.Dir(file)
	if DirectoryExists(dir) {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
