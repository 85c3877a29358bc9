// Package cache stores the last quality report of a project on disk.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/openkraft/lowgen/internal/domain"
)

// Store is a file-based implementation of domain.ReportCache.
type Store struct{}

// New creates a new file-based cache store.
func New() *Store {
	return &Store{}
}

// Load reads the cached report of a project. Returns (nil, nil) if no cache
// exists or the cache file cannot be decoded; a stale format is a miss.
func (s *Store) Load(projectPath string) (*domain.CachedReport, error) {
	data, err := os.ReadFile(cachePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var cached domain.CachedReport
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, nil
	}
	return &cached, nil
}

// Save writes the report to disk, creating directories as needed.
func (s *Store) Save(projectPath string, cached *domain.CachedReport) error {
	if err := os.MkdirAll(cacheDir(projectPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(cachePath(projectPath), data, 0644)
}

// Invalidate removes the cache file for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(cachePath(projectPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cacheDir(projectPath string) string {
	return filepath.Join(projectPath, ".lowgen", "cache")
}

func cachePath(projectPath string) string {
	return filepath.Join(cacheDir(projectPath), "report.json")
}
