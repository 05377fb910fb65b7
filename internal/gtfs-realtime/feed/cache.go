package feed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// cachePath maps a feed name to its on-disk cache file.
func cachePath(cacheDir, name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	return filepath.Join(cacheDir, fmt.Sprintf("feed_%s.pb", safe))
}

// saveCache writes the raw feed bytes via a temp file and rename so a
// concurrent reader never sees a partial file.
func saveCache(cacheDir, name string, data []byte) error {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return err
	}

	path := cachePath(cacheDir, name)
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// loadCache returns the cached bytes for name if the file is younger than
// maxAge.
func loadCache(cacheDir, name string, maxAge time.Duration) ([]byte, error) {
	path := cachePath(cacheDir, name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if time.Since(info.ModTime()) > maxAge {
		return nil, fmt.Errorf("cached feed %s is stale", name)
	}
	return os.ReadFile(path)
}
