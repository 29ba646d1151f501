package scenario

//go:generate mockgen -destination=mock/mock_service.go -package=mockscenario -source=service.go

import (
	"context"
	"strings"

	"github.com/mystira/mystira-server/internal/domain/game"
	apperrors "github.com/mystira/mystira-server/internal/errors"
	"github.com/mystira/mystira-server/internal/repositories/scenarios"
	"github.com/mystira/mystira-server/internal/uuid"
)

// Repository is an alias for the scenario repository interface
type Repository = scenarios.Repository

// Service defines the scenario service interface
type Service interface {
	// CreateScenario validates and stores a new scenario
	CreateScenario(ctx context.Context, scenario *game.Scenario) (*game.Scenario, error)

	// GetScenario retrieves a scenario by ID
	GetScenario(ctx context.Context, id string) (*game.Scenario, error)

	// ListScenarios retrieves all stored scenarios
	ListScenarios(ctx context.Context) ([]*game.Scenario, error)

	// UpdateScenario validates and replaces an existing scenario
	UpdateScenario(ctx context.Context, scenario *game.Scenario) (*game.Scenario, error)

	// DeleteScenario removes a scenario
	DeleteScenario(ctx context.Context, id string) error

	// ValidateScenario checks a scenario's internal consistency
	ValidateScenario(scenario *game.Scenario) error
}

// service implements the Service interface
type service struct {
	repository    Repository
	uuidGenerator uuid.Generator
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository     // Required
	UUIDGenerator uuid.Generator // Optional, will use default if nil
}

// NewService creates a new scenario service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository: cfg.Repository,
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	return svc
}

// CreateScenario validates and stores a new scenario
func (s *service) CreateScenario(ctx context.Context, scenario *game.Scenario) (*game.Scenario, error) {
	if scenario == nil {
		return nil, apperrors.InvalidArgument("scenario cannot be nil")
	}

	if err := s.ValidateScenario(scenario); err != nil {
		return nil, err
	}

	if strings.TrimSpace(scenario.ID) == "" {
		scenario.ID = s.uuidGenerator.New()
	}

	if err := s.repository.Create(ctx, scenario); err != nil {
		return nil, apperrors.Wrap(err, "failed to create scenario").
			WithMeta("scenario_id", scenario.ID).
			WithMeta("scenario_title", scenario.Title)
	}

	return scenario, nil
}

// GetScenario retrieves a scenario by ID
func (s *service) GetScenario(ctx context.Context, id string) (*game.Scenario, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.InvalidArgument("scenario ID is required")
	}

	scenario, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get scenario '%s'", id).
			WithMeta("scenario_id", id)
	}

	return scenario, nil
}

// ListScenarios retrieves all stored scenarios
func (s *service) ListScenarios(ctx context.Context) ([]*game.Scenario, error) {
	scenarios, err := s.repository.List(ctx)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list scenarios")
	}

	return scenarios, nil
}

// UpdateScenario validates and replaces an existing scenario
func (s *service) UpdateScenario(ctx context.Context, scenario *game.Scenario) (*game.Scenario, error) {
	if scenario == nil {
		return nil, apperrors.InvalidArgument("scenario cannot be nil")
	}
	if strings.TrimSpace(scenario.ID) == "" {
		return nil, apperrors.InvalidArgument("scenario ID is required")
	}

	if err := s.ValidateScenario(scenario); err != nil {
		return nil, err
	}

	if err := s.repository.Update(ctx, scenario); err != nil {
		return nil, apperrors.Wrapf(err, "failed to update scenario '%s'", scenario.ID).
			WithMeta("scenario_id", scenario.ID)
	}

	return scenario, nil
}

// DeleteScenario removes a scenario
func (s *service) DeleteScenario(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.InvalidArgument("scenario ID is required")
	}

	if err := s.repository.Delete(ctx, id); err != nil {
		return apperrors.Wrapf(err, "failed to delete scenario '%s'", id).
			WithMeta("scenario_id", id)
	}

	return nil
}
