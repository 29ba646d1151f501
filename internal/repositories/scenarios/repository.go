package scenarios

//go:generate mockgen -destination=mock/mock_repository.go -package=mockscenarios -source=repository.go

import (
	"context"

	"github.com/mystira/mystira-server/internal/domain/game"
)

// Repository defines the interface for scenario storage. Scenarios are
// treated as immutable during gameplay; writes happen only through the
// authoring surface.
type Repository interface {
	// Create stores a new scenario
	Create(ctx context.Context, scenario *game.Scenario) error

	// Get retrieves a scenario by ID
	Get(ctx context.Context, id string) (*game.Scenario, error)

	// Update replaces an existing scenario
	Update(ctx context.Context, scenario *game.Scenario) error

	// Delete removes a scenario
	Delete(ctx context.Context, id string) error

	// List retrieves all stored scenarios
	List(ctx context.Context) ([]*game.Scenario, error)
}
