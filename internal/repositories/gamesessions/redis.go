package gamesessions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/mystira/mystira-server/internal/domain/game"
	apperrors "github.com/mystira/mystira-server/internal/errors"
)

const (
	sessionKeyPrefix   = "session:"
	activeSessionsKey  = "sessions:active"
	accountSessionsKey = "account:%s:sessions"
	profileSessionsKey = "profile:%s:sessions"
)

// redisRepository implements Repository using Redis
type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed session repository
func NewRedisRepository(client redis.UniversalClient) Repository {
	if client == nil {
		panic("redis client is required")
	}
	return &redisRepository{client: client}
}

// Create creates a new session
func (r *redisRepository) Create(ctx context.Context, session *game.GameSession) error {
	if session == nil {
		return apperrors.InvalidArgument("session cannot be nil")
	}
	if session.ID == "" {
		return apperrors.InvalidArgument("session ID cannot be empty")
	}

	key := sessionKeyPrefix + session.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check session existence: %w", err)
	}
	if exists > 0 {
		return apperrors.AlreadyExistsf("session with ID %s already exists", session.ID)
	}

	if err := r.write(ctx, key, session); err != nil {
		return err
	}

	if err := r.client.SAdd(ctx, fmt.Sprintf(accountSessionsKey, session.AccountID), session.ID).Err(); err != nil {
		return fmt.Errorf("failed to index session by account: %w", err)
	}
	if err := r.client.SAdd(ctx, fmt.Sprintf(profileSessionsKey, session.ProfileID), session.ID).Err(); err != nil {
		return fmt.Errorf("failed to index session by profile: %w", err)
	}

	return nil
}

// Get retrieves a session by ID
func (r *redisRepository) Get(ctx context.Context, id string) (*game.GameSession, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFoundf("session not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session game.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to deserialize session: %w", err)
	}

	return &session, nil
}

// Update updates an existing session
func (r *redisRepository) Update(ctx context.Context, session *game.GameSession) error {
	if session == nil {
		return apperrors.InvalidArgument("session cannot be nil")
	}
	if session.ID == "" {
		return apperrors.InvalidArgument("session ID cannot be empty")
	}

	key := sessionKeyPrefix + session.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check session existence: %w", err)
	}
	if exists == 0 {
		return apperrors.NotFoundf("session not found: %s", session.ID)
	}

	return r.write(ctx, key, session)
}

// write serializes the session, stores it, and keeps the active index in
// step with the session status
func (r *redisRepository) write(ctx context.Context, key string, session *game.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	if session.IsActive() {
		if err := r.client.SAdd(ctx, activeSessionsKey, session.ID).Err(); err != nil {
			return fmt.Errorf("failed to index active session: %w", err)
		}
	} else {
		if err := r.client.SRem(ctx, activeSessionsKey, session.ID).Err(); err != nil {
			return fmt.Errorf("failed to unindex active session: %w", err)
		}
	}

	return nil
}

// Delete removes a session
func (r *redisRepository) Delete(ctx context.Context, id string) error {
	session, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if err := r.client.SRem(ctx, activeSessionsKey, id).Err(); err != nil {
		return fmt.Errorf("failed to unindex active session: %w", err)
	}
	if err := r.client.SRem(ctx, fmt.Sprintf(accountSessionsKey, session.AccountID), id).Err(); err != nil {
		return fmt.Errorf("failed to unindex session by account: %w", err)
	}
	if err := r.client.SRem(ctx, fmt.Sprintf(profileSessionsKey, session.ProfileID), id).Err(); err != nil {
		return fmt.Errorf("failed to unindex session by profile: %w", err)
	}

	return nil
}

// GetByAccount retrieves all sessions owned by an account
func (r *redisRepository) GetByAccount(ctx context.Context, accountID string) ([]*game.GameSession, error) {
	ids, err := r.client.SMembers(ctx, fmt.Sprintf(accountSessionsKey, accountID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get account sessions: %w", err)
	}

	return r.getMultiple(ctx, ids)
}

// GetByProfile retrieves all sessions played by a profile
func (r *redisRepository) GetByProfile(ctx context.Context, profileID string) ([]*game.GameSession, error) {
	ids, err := r.client.SMembers(ctx, fmt.Sprintf(profileSessionsKey, profileID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get profile sessions: %w", err)
	}

	return r.getMultiple(ctx, ids)
}

// GetActiveByScenarioAndAccount retrieves in-progress or paused sessions for
// one scenario/account pair
func (r *redisRepository) GetActiveByScenarioAndAccount(ctx context.Context, scenarioID, accountID string) ([]*game.GameSession, error) {
	sessions, err := r.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var active []*game.GameSession
	for _, session := range sessions {
		if session.ScenarioID == scenarioID && session.IsActive() {
			active = append(active, session)
		}
	}

	return active, nil
}

// CountActive counts all in-progress or paused sessions
func (r *redisRepository) CountActive(ctx context.Context) (int, error) {
	count, err := r.client.SCard(ctx, activeSessionsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}
	return int(count), nil
}

// getMultiple retrieves sessions for the given IDs, skipping index entries
// whose documents no longer exist
func (r *redisRepository) getMultiple(ctx context.Context, ids []string) ([]*game.GameSession, error) {
	sessions := make([]*game.GameSession, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			session, err := r.Get(ctx, id)
			if err != nil {
				if apperrors.IsNotFound(err) {
					return nil
				}
				return fmt.Errorf("failed to get session %s: %w", id, err)
			}
			sessions[i] = session
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*game.GameSession, 0, len(sessions))
	for _, session := range sessions {
		if session != nil {
			result = append(result, session)
		}
	}

	return result, nil
}
