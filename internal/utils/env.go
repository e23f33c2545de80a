package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// LoadEnv loads path into the process environment without overriding
// variables that are already set. An empty path means "<project root>/.env",
// falling back to "./.env". A missing default file is not an error; a missing
// explicit file is.
func LoadEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
		if root, err := FindProjectRoot(); err == nil {
			path = filepath.Join(root, ".env")
		}
	}
	err := godotenv.Load(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
