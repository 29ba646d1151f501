package scenarios

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
	scenarioKeyPrefix = "scenario:"
	scenarioIndexKey  = "scenarios:all"
)

// redisRepository implements Repository using Redis
type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed scenario repository
func NewRedisRepository(client redis.UniversalClient) Repository {
	if client == nil {
		panic("redis client is required")
	}
	return &redisRepository{client: client}
}

// Create stores a new scenario
func (r *redisRepository) Create(ctx context.Context, scenario *game.Scenario) error {
	if scenario == nil {
		return apperrors.InvalidArgument("scenario cannot be nil")
	}
	if scenario.ID == "" {
		return apperrors.InvalidArgument("scenario ID cannot be empty")
	}

	key := scenarioKeyPrefix + scenario.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check scenario existence: %w", err)
	}
	if exists > 0 {
		return apperrors.AlreadyExistsf("scenario with ID %s already exists", scenario.ID)
	}

	data, err := json.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("failed to serialize scenario: %w", err)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store scenario: %w", err)
	}
	if err := r.client.SAdd(ctx, scenarioIndexKey, scenario.ID).Err(); err != nil {
		return fmt.Errorf("failed to index scenario: %w", err)
	}

	return nil
}

// Get retrieves a scenario by ID
func (r *redisRepository) Get(ctx context.Context, id string) (*game.Scenario, error) {
	data, err := r.client.Get(ctx, scenarioKeyPrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFoundf("scenario not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}

	var scenario game.Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to deserialize scenario: %w", err)
	}

	return &scenario, nil
}

// Update replaces an existing scenario
func (r *redisRepository) Update(ctx context.Context, scenario *game.Scenario) error {
	if scenario == nil {
		return apperrors.InvalidArgument("scenario cannot be nil")
	}
	if scenario.ID == "" {
		return apperrors.InvalidArgument("scenario ID cannot be empty")
	}

	key := scenarioKeyPrefix + scenario.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check scenario existence: %w", err)
	}
	if exists == 0 {
		return apperrors.NotFoundf("scenario not found: %s", scenario.ID)
	}

	data, err := json.Marshal(scenario)
	if err != nil {
		return fmt.Errorf("failed to serialize scenario: %w", err)
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store scenario: %w", err)
	}

	return nil
}

// Delete removes a scenario
func (r *redisRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.client.Del(ctx, scenarioKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	if deleted == 0 {
		return apperrors.NotFoundf("scenario not found: %s", id)
	}

	if err := r.client.SRem(ctx, scenarioIndexKey, id).Err(); err != nil {
		return fmt.Errorf("failed to unindex scenario: %w", err)
	}

	return nil
}

// List retrieves all stored scenarios
func (r *redisRepository) List(ctx context.Context) ([]*game.Scenario, error) {
	ids, err := r.client.SMembers(ctx, scenarioIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}

	scenarios := make([]*game.Scenario, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			scenario, err := r.Get(ctx, id)
			if err != nil {
				if apperrors.IsNotFound(err) {
					// Index entry outlived the document; skip it
					return nil
				}
				return fmt.Errorf("failed to get scenario %s: %w", id, err)
			}
			scenarios[i] = scenario
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*game.Scenario, 0, len(scenarios))
	for _, scenario := range scenarios {
		if scenario != nil {
			result = append(result, scenario)
		}
	}

	return result, nil
}
