// Package filesystem provides the file system adapters for generated output.
package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// OS implements domain.FileSystem on the real file system. Paths use "/"
// and are converted to the host separator.
type OS struct{}

func NewOS() *OS {
	return &OS{}
}

func (OS) Exists(path string) (bool, error) {
	_, err := os.Stat(filepath.FromSlash(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (OS) Read(path string) (string, error) {
	data, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write creates parent directories as needed.
func (OS) Write(path, content string) error {
	p := filepath.FromSlash(path)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	return os.WriteFile(p, []byte(content), 0644)
}

// Memory is an in-memory domain.FileSystem for dry runs and tests.
type Memory struct {
	mu    sync.RWMutex
	files map[string]string
}

func NewMemory() *Memory {
	return &Memory{files: make(map[string]string)}
}

func (m *Memory) Exists(path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[filepath.ToSlash(path)]
	return ok, nil
}

func (m *Memory) Read(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.files[filepath.ToSlash(path)]
	if !ok {
		return "", fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}
	return content, nil
}

func (m *Memory) Write(path, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.ToSlash(path)] = content
	return nil
}

// Paths lists the stored paths, sorted.
func (m *Memory) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
