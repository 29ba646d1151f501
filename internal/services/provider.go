package services

import (
	"github.com/mystira/mystira-server/internal/repositories/gamesessions"
	"github.com/mystira/mystira-server/internal/repositories/scenarios"
	gamesessionService "github.com/mystira/mystira-server/internal/services/gamesession"
	scenarioService "github.com/mystira/mystira-server/internal/services/scenario"
)

// Provider holds all service instances
type Provider struct {
	ScenarioService scenarioService.Service
	SessionService  gamesessionService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	ScenarioRepository scenarios.Repository
	SessionRepository  gamesessions.Repository
	Thresholds         gamesessionService.ThresholdLookup
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repositories if none provided
	scenarioRepo := cfg.ScenarioRepository
	if scenarioRepo == nil {
		scenarioRepo = scenarios.NewInMemoryRepository()
	}

	sessionRepo := cfg.SessionRepository
	if sessionRepo == nil {
		sessionRepo = gamesessions.NewInMemoryRepository()
	}

	scenarioSvc := scenarioService.NewService(&scenarioService.ServiceConfig{
		Repository: scenarioRepo,
	})

	sessionSvc := gamesessionService.NewService(&gamesessionService.ServiceConfig{
		Repository:      sessionRepo,
		ScenarioService: scenarioSvc,
		Thresholds:      cfg.Thresholds,
	})

	return &Provider{
		ScenarioService: scenarioSvc,
		SessionService:  sessionSvc,
	}
}
