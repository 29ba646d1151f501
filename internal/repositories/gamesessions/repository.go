package gamesessions

//go:generate mockgen -destination=mock/mock_repository.go -package=mockgamesessions -source=repository.go

import (
	"context"

	"github.com/mystira/mystira-server/internal/domain/game"
)

// Repository defines the interface for game session storage
type Repository interface {
	// Create creates a new session
	Create(ctx context.Context, session *game.GameSession) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*game.GameSession, error)

	// Update updates an existing session
	Update(ctx context.Context, session *game.GameSession) error

	// Delete removes a session
	Delete(ctx context.Context, id string) error

	// GetByAccount retrieves all sessions owned by an account
	GetByAccount(ctx context.Context, accountID string) ([]*game.GameSession, error)

	// GetByProfile retrieves all sessions played by a profile
	GetByProfile(ctx context.Context, profileID string) ([]*game.GameSession, error)

	// GetActiveByScenarioAndAccount retrieves in-progress or paused sessions
	// for one scenario/account pair
	GetActiveByScenarioAndAccount(ctx context.Context, scenarioID, accountID string) ([]*game.GameSession, error)

	// CountActive counts all in-progress or paused sessions
	CountActive(ctx context.Context) (int, error)
}
