package gamesessions

import (
	"context"
	"sync"

	"github.com/mystira/mystira-server/internal/domain/game"
	apperrors "github.com/mystira/mystira-server/internal/errors"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*game.GameSession
}

// NewInMemoryRepository creates a new in-memory session repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		sessions: make(map[string]*game.GameSession),
	}
}

// Create creates a new session
func (r *inMemoryRepository) Create(ctx context.Context, session *game.GameSession) error {
	if session == nil {
		return apperrors.InvalidArgument("session cannot be nil")
	}
	if session.ID == "" {
		return apperrors.InvalidArgument("session ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return apperrors.AlreadyExistsf("session with ID %s already exists", session.ID)
	}

	// Store a copy to avoid external modifications
	sessionCopy := *session
	r.sessions[session.ID] = &sessionCopy

	return nil
}

// Get retrieves a session by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*game.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		return nil, apperrors.NotFoundf("session not found: %s", id)
	}

	sessionCopy := *session
	return &sessionCopy, nil
}

// Update updates an existing session
func (r *inMemoryRepository) Update(ctx context.Context, session *game.GameSession) error {
	if session == nil {
		return apperrors.InvalidArgument("session cannot be nil")
	}
	if session.ID == "" {
		return apperrors.InvalidArgument("session ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; !exists {
		return apperrors.NotFoundf("session not found: %s", session.ID)
	}

	sessionCopy := *session
	r.sessions[session.ID] = &sessionCopy

	return nil
}

// Delete removes a session
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		return apperrors.NotFoundf("session not found: %s", id)
	}

	delete(r.sessions, id)
	return nil
}

// GetByAccount retrieves all sessions owned by an account
func (r *inMemoryRepository) GetByAccount(ctx context.Context, accountID string) ([]*game.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*game.GameSession
	for _, session := range r.sessions {
		if session.AccountID == accountID {
			sessionCopy := *session
			sessions = append(sessions, &sessionCopy)
		}
	}

	return sessions, nil
}

// GetByProfile retrieves all sessions played by a profile
func (r *inMemoryRepository) GetByProfile(ctx context.Context, profileID string) ([]*game.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*game.GameSession
	for _, session := range r.sessions {
		if session.ProfileID == profileID {
			sessionCopy := *session
			sessions = append(sessions, &sessionCopy)
		}
	}

	return sessions, nil
}

// GetActiveByScenarioAndAccount retrieves in-progress or paused sessions for
// one scenario/account pair
func (r *inMemoryRepository) GetActiveByScenarioAndAccount(ctx context.Context, scenarioID, accountID string) ([]*game.GameSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*game.GameSession
	for _, session := range r.sessions {
		if session.ScenarioID == scenarioID && session.AccountID == accountID && session.IsActive() {
			sessionCopy := *session
			sessions = append(sessions, &sessionCopy)
		}
	}

	return sessions, nil
}

// CountActive counts all in-progress or paused sessions
func (r *inMemoryRepository) CountActive(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, session := range r.sessions {
		if session.IsActive() {
			count++
		}
	}

	return count, nil
}
