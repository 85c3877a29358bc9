package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/openkraft/lowgen/internal/domain"
	"github.com/openkraft/lowgen/internal/domain/strategy"
)

// StrategyService is the strategy registry. Reads are served from memory;
// every mutation is written through to the repository before it becomes
// visible.
type StrategyService struct {
	mu     sync.RWMutex
	repo   domain.StrategyRepository
	byName map[string]domain.GenerationStrategy
	logger *slog.Logger
}

func NewStrategyService(repo domain.StrategyRepository, logger *slog.Logger) *StrategyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StrategyService{
		repo:   repo,
		byName: make(map[string]domain.GenerationStrategy),
		logger: logger,
	}
}

// Init loads the repository into memory. An empty repository is seeded with
// the built-in strategies.
func (s *StrategyService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading strategies: %w", err)
	}
	if len(stored) == 0 {
		for _, b := range strategy.Builtins() {
			if err := s.repo.Save(ctx, b); err != nil {
				return fmt.Errorf("seeding strategy %s: %w", b.Name, err)
			}
			stored = append(stored, b)
		}
		s.logger.Debug("seeded built-in strategies", "count", len(stored))
	}

	s.byName = make(map[string]domain.GenerationStrategy, len(stored))
	for _, st := range stored {
		s.byName[st.Name] = st
	}
	return nil
}

// Get returns a copy of the named strategy.
func (s *StrategyService) Get(name string) (*domain.GenerationStrategy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrStrategyNotFound, name)
	}
	c := st.Clone()
	return &c, nil
}

// List returns copies of all strategies sorted by name.
func (s *StrategyService) List() []domain.GenerationStrategy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.GenerationStrategy, 0, len(s.byName))
	for _, st := range s.byName {
		out = append(out, st.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Create registers a new strategy.
func (s *StrategyService) Create(ctx context.Context, st domain.GenerationStrategy) error {
	if err := strategy.Validate(st); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[st.Name]; ok {
		return fmt.Errorf("%w: %s", domain.ErrStrategyExists, st.Name)
	}
	return s.store(ctx, st)
}

// Put creates or replaces a strategy. Used to load strategy files.
func (s *StrategyService) Put(ctx context.Context, st domain.GenerationStrategy) error {
	if err := strategy.Validate(st); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store(ctx, st)
}

// Update merges patch into the named strategy and returns the result.
func (s *StrategyService) Update(ctx context.Context, name string, patch domain.StrategyPatch) (*domain.GenerationStrategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrStrategyNotFound, name)
	}
	updated := patch.Apply(current)
	if err := strategy.Validate(updated); err != nil {
		return nil, err
	}
	if err := s.store(ctx, updated); err != nil {
		return nil, err
	}
	c := updated.Clone()
	return &c, nil
}

// Delete removes the named strategy.
func (s *StrategyService) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrStrategyNotFound, name)
	}
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("deleting strategy %s: %w", name, err)
	}
	delete(s.byName, name)
	return nil
}

// store must be called with mu held.
func (s *StrategyService) store(ctx context.Context, st domain.GenerationStrategy) error {
	if err := s.repo.Save(ctx, st); err != nil {
		return fmt.Errorf("saving strategy %s: %w", st.Name, err)
	}
	s.byName[st.Name] = st.Clone()
	return nil
}
