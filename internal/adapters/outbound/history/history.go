// Package history keeps a JSON ledger of generation runs next to the
// generated output.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/lowgen/internal/domain"
)

const historyFile = ".lowgen/history/runs.json"

// DefaultMaxEntries bounds the ledger; older runs are dropped first.
const DefaultMaxEntries = 200

// FileHistory implements domain.RunHistory using JSON file storage.
type FileHistory struct {
	maxEntries int
}

func New() *FileHistory {
	return &FileHistory{maxEntries: DefaultMaxEntries}
}

// WithMaxEntries returns h keeping at most n entries. n <= 0 keeps everything.
func (h *FileHistory) WithMaxEntries(n int) *FileHistory {
	h.maxEntries = n
	return h
}

func (h *FileHistory) Save(outputDir string, entry domain.RunEntry) error {
	entries, err := h.Load(outputDir)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if h.maxEntries > 0 && len(entries) > h.maxEntries {
		entries = entries[len(entries)-h.maxEntries:]
	}

	fp := filepath.Join(outputDir, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

func (h *FileHistory) Load(outputDir string) ([]domain.RunEntry, error) {
	fp := filepath.Join(outputDir, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}

	return entries, nil
}

// Last returns the most recent run, or nil when the ledger is empty.
func (h *FileHistory) Last(outputDir string) (*domain.RunEntry, error) {
	entries, err := h.Load(outputDir)
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[len(entries)-1], nil
}
