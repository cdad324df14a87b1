package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFileNames are the config files looked for, in order, in every directory.
var ConfigFileNames = []string{"aadata.yaml", "aadata.yml", ".aadata.yaml"}

// ErrNoConfig is returned by FindConfig when no config file exists in
// startDir or any of its parents.
var ErrNoConfig = errors.New("config file not found")

// FindConfig looks upwards from startDir for a config file and returns its
// absolute path.
func FindConfig(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		for _, name := range ConfigFileNames {
			if isFile(filepath.Join(dir, name)) {
				return filepath.Join(dir, name), nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrNoConfig
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
