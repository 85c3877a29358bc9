// Package strategystore persists generation strategies: in memory, in a
// SQLite registry database, and as YAML or JSON documents on disk.
package strategystore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/openkraft/lowgen/internal/domain"
)

// Memory implements domain.StrategyRepository in process memory.
type Memory struct {
	mu     sync.RWMutex
	byName map[string]domain.GenerationStrategy
}

func NewMemory() *Memory {
	return &Memory{byName: make(map[string]domain.GenerationStrategy)}
}

func (m *Memory) List(ctx context.Context) ([]domain.GenerationStrategy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.GenerationStrategy, 0, len(m.byName))
	for _, s := range m.byName {
		out = append(out, s.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) Get(ctx context.Context, name string) (*domain.GenerationStrategy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrStrategyNotFound, name)
	}
	c := s.Clone()
	return &c, nil
}

func (m *Memory) Save(ctx context.Context, s domain.GenerationStrategy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byName[s.Name] = s.Clone()
	return nil
}

func (m *Memory) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byName[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrStrategyNotFound, name)
	}
	delete(m.byName, name)
	return nil
}
