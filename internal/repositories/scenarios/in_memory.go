package scenarios

import (
	"context"
	"sync"

	"github.com/mystira/mystira-server/internal/domain/game"
	apperrors "github.com/mystira/mystira-server/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu        sync.RWMutex
	scenarios map[string]*game.Scenario
}

// NewInMemoryRepository creates a new in-memory scenario repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		scenarios: make(map[string]*game.Scenario),
	}
}

// Create stores a new scenario
func (r *inMemoryRepository) Create(ctx context.Context, scenario *game.Scenario) error {
	if scenario == nil {
		return apperrors.InvalidArgument("scenario cannot be nil")
	}
	if scenario.ID == "" {
		return apperrors.InvalidArgument("scenario ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scenarios[scenario.ID]; exists {
		return apperrors.AlreadyExistsf("scenario with ID %s already exists", scenario.ID)
	}

	// Store a copy to avoid external modifications
	scenarioCopy := *scenario
	r.scenarios[scenario.ID] = &scenarioCopy

	return nil
}

// Get retrieves a scenario by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*game.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scenario, exists := r.scenarios[id]
	if !exists {
		return nil, apperrors.NotFoundf("scenario not found: %s", id)
	}

	scenarioCopy := *scenario
	return &scenarioCopy, nil
}

// Update replaces an existing scenario
func (r *inMemoryRepository) Update(ctx context.Context, scenario *game.Scenario) error {
	if scenario == nil {
		return apperrors.InvalidArgument("scenario cannot be nil")
	}
	if scenario.ID == "" {
		return apperrors.InvalidArgument("scenario ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scenarios[scenario.ID]; !exists {
		return apperrors.NotFoundf("scenario not found: %s", scenario.ID)
	}

	scenarioCopy := *scenario
	r.scenarios[scenario.ID] = &scenarioCopy

	return nil
}

// Delete removes a scenario
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scenarios[id]; !exists {
		return apperrors.NotFoundf("scenario not found: %s", id)
	}

	delete(r.scenarios, id)
	return nil
}

// List retrieves all stored scenarios
func (r *inMemoryRepository) List(ctx context.Context) ([]*game.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scenarios := make([]*game.Scenario, 0, len(r.scenarios))
	for _, scenario := range r.scenarios {
		scenarioCopy := *scenario
		scenarios = append(scenarios, &scenarioCopy)
	}

	return scenarios, nil
}
