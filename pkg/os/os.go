package os

import (
	"errors"
	"os"
)

func Exists(path string) bool {
	if path == "" {
		return false
	}

	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// IsDirectory reports whether path names an existing directory, following
// symbolic links.
func IsDirectory(path string) bool {
	if path == "" {
		return false
	}

	fileInfo, err := os.Stat(path)
	return err == nil && fileInfo.IsDir()
}
