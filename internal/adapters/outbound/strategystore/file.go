package strategystore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/openkraft/lowgen/internal/domain"
)

// ReadFile decodes a strategy document. YAML and JSON are both accepted;
// the keys are the snake_case field names.
func ReadFile(path string) (domain.GenerationStrategy, error) {
	var s domain.GenerationStrategy
	if err := readDocument(path, &s); err != nil {
		return domain.GenerationStrategy{}, err
	}
	return s, nil
}

// ReadPatch decodes a partial strategy document for an update.
func ReadPatch(path string) (domain.StrategyPatch, error) {
	var p domain.StrategyPatch
	if err := readDocument(path, &p); err != nil {
		return domain.StrategyPatch{}, err
	}
	return p, nil
}

// ReadDir decodes every *.yaml, *.yml and *.json document in dir, in name
// order.
func ReadDir(dir string) ([]domain.GenerationStrategy, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading strategies dir: %w", err)
	}
	var out []domain.GenerationStrategy
	for _, e := range entries {
		if e.IsDir() || !isDocument(e.Name()) {
			continue
		}
		s, err := ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// WriteFile encodes s as YAML.
func WriteFile(path string, s domain.GenerationStrategy) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding strategy %s: %w", s.Name, err)
	}
	return os.WriteFile(path, data, 0644)
}

func readDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading strategy file: %w", err)
	}
	// JSON is a subset of YAML and the fields carry matching tags.
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return nil
}

func isDocument(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}
