package gamesession

//go:generate mockgen -destination=mock/mock_service.go -package=mockgamesession -source=service.go

import (
	"context"
	"strings"
	"time"

	"github.com/mystira/mystira-server/internal/domain/game"
	apperrors "github.com/mystira/mystira-server/internal/errors"
	"github.com/mystira/mystira-server/internal/repositories/gamesessions"
	"github.com/mystira/mystira-server/internal/services/scenario"
	"github.com/mystira/mystira-server/internal/uuid"
)

// Repository is an alias for the game session repository interface
type Repository = gamesessions.Repository

// Service defines the session lifecycle engine interface
type Service interface {
	// StartSession validates age compatibility, force-completes any active
	// session for the same scenario/account pair, and creates a new session
	StartSession(ctx context.Context, input *StartSessionInput) (*game.GameSession, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, sessionID string) (*game.GameSession, error)

	// MakeChoice applies a branch choice to an in-progress session
	MakeChoice(ctx context.Context, input *MakeChoiceInput) (*game.GameSession, error)

	// PauseSession pauses an in-progress session
	PauseSession(ctx context.Context, sessionID string) (*game.GameSession, error)

	// ResumeSession resumes a paused session
	ResumeSession(ctx context.Context, sessionID string) (*game.GameSession, error)

	// EndSession completes a session regardless of its current status
	EndSession(ctx context.Context, sessionID string) (*game.GameSession, error)

	// ProgressSessionScene moves an in-progress session to a new scene
	// without recording a choice
	ProgressSessionScene(ctx context.Context, sessionID, newSceneID string) (*game.GameSession, error)

	// SelectCharacter sets the session's selected character
	SelectCharacter(ctx context.Context, sessionID, characterID string) (*game.GameSession, error)

	// DeleteSession removes a session; returns false if it did not exist
	DeleteSession(ctx context.Context, sessionID string) (bool, error)

	// GetSessionStats summarizes a session's progress
	GetSessionStats(ctx context.Context, sessionID string) (*SessionStats, error)

	// CheckAchievements returns achievements the session has newly earned
	// but not yet been awarded
	CheckAchievements(ctx context.Context, sessionID string) ([]game.SessionAchievement, error)

	// ListSessionsByAccount lists all sessions owned by an account
	ListSessionsByAccount(ctx context.Context, accountID string) ([]*game.GameSession, error)

	// ListSessionsByProfile lists all sessions played by a profile
	ListSessionsByProfile(ctx context.Context, profileID string) ([]*game.GameSession, error)

	// GetActiveSessionsCount counts in-progress and paused sessions
	GetActiveSessionsCount(ctx context.Context) (int, error)
}

// StartSessionInput contains data for starting a session
type StartSessionInput struct {
	ScenarioID     string
	AccountID      string
	ProfileID      string
	PlayerNames    []string
	TargetAgeGroup string
}

// MakeChoiceInput contains data for applying a choice
type MakeChoiceInput struct {
	SessionID   string
	SceneID     string
	ChoiceText  string
	NextSceneID string
}

// SessionStats summarizes a session's progress
type SessionStats struct {
	SessionID        string             `json:"session_id"`
	ScenarioID       string             `json:"scenario_id"`
	Status           game.SessionStatus `json:"status"`
	CurrentSceneID   string             `json:"current_scene_id"`
	ChoiceCount      int                `json:"choice_count"`
	EchoCount        int                `json:"echo_count"`
	AchievementCount int                `json:"achievement_count"`
	ElapsedTime      time.Duration      `json:"elapsed_time"`
	CompassValues    map[string]float64 `json:"compass_values"`
}

// service implements the Service interface
type service struct {
	repository      Repository
	scenarioService scenario.Service
	uuidGenerator   uuid.Generator
	thresholds      ThresholdLookup
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository      Repository       // Required
	ScenarioService scenario.Service // Required
	UUIDGenerator   uuid.Generator   // Optional, will use default if nil
	Thresholds      ThresholdLookup  // Optional, will use the global default if nil
}

// NewService creates a new session service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.ScenarioService == nil {
		panic("scenario service is required")
	}

	svc := &service{
		repository:      cfg.Repository,
		scenarioService: cfg.ScenarioService,
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}

	if cfg.Thresholds != nil {
		svc.thresholds = cfg.Thresholds
	} else {
		svc.thresholds = DefaultThresholds()
	}

	return svc
}

// StartSession validates age compatibility, force-completes any active
// session for the same scenario/account pair, and creates a new session
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*game.GameSession, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.ScenarioID) == "" {
		return nil, apperrors.InvalidArgument("scenario ID is required")
	}
	if strings.TrimSpace(input.AccountID) == "" {
		return nil, apperrors.InvalidArgument("account ID is required")
	}
	if strings.TrimSpace(input.ProfileID) == "" {
		return nil, apperrors.InvalidArgument("profile ID is required")
	}

	scen, err := s.scenarioService.GetScenario(ctx, input.ScenarioID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get scenario '%s'", input.ScenarioID).
			WithMeta("scenario_id", input.ScenarioID)
	}

	// Age check is permissive: an unresolvable age group skips it
	if minAge, ok := game.ResolveMinimumAge(input.TargetAgeGroup); ok && scen.MinimumAge > minAge {
		return nil, apperrors.Validationf(
			"scenario '%s' requires minimum age %d but age group '%s' starts at %d",
			scen.Title, scen.MinimumAge, input.TargetAgeGroup, minAge).
			WithMeta("scenario_id", scen.ID).
			WithMeta("target_age_group", input.TargetAgeGroup)
	}

	// One active session per scenario/account pair: force-complete the rest
	active, err := s.repository.GetActiveByScenarioAndAccount(ctx, input.ScenarioID, input.AccountID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to look up active sessions").
			WithMeta("scenario_id", input.ScenarioID).
			WithMeta("account_id", input.AccountID)
	}
	now := time.Now()
	for _, prior := range active {
		prior.Complete(now)
		if err := s.repository.Update(ctx, prior); err != nil {
			return nil, apperrors.Wrapf(err, "failed to complete prior session '%s'", prior.ID).
				WithMeta("session_id", prior.ID)
		}
	}

	session := game.NewGameSession(s.uuidGenerator.New(), scen, input.AccountID, input.ProfileID, input.PlayerNames, input.TargetAgeGroup)

	if err := s.repository.Create(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, "failed to create session").
			WithMeta("session_id", session.ID).
			WithMeta("scenario_id", scen.ID)
	}

	return session, nil
}

// GetSession retrieves a session by ID
func (s *service) GetSession(ctx context.Context, sessionID string) (*game.GameSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.InvalidArgument("session ID is required")
	}

	session, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get session '%s'", sessionID).
			WithMeta("session_id", sessionID)
	}

	return session, nil
}

// MakeChoice applies a branch choice to an in-progress session
func (s *service) MakeChoice(ctx context.Context, input *MakeChoiceInput) (*game.GameSession, error) {
	if input == nil {
		return nil, apperrors.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.SessionID) == "" {
		return nil, apperrors.InvalidArgument("session ID is required")
	}

	session, err := s.repository.Get(ctx, input.SessionID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get session '%s'", input.SessionID).
			WithMeta("session_id", input.SessionID)
	}

	if session.Status != game.SessionStatusInProgress {
		return nil, apperrors.InvalidState("can only make choices in sessions in progress").
			WithMeta("session_id", session.ID).
			WithMeta("status", string(session.Status))
	}

	scen, err := s.scenarioService.GetScenario(ctx, session.ScenarioID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get scenario '%s'", session.ScenarioID).
			WithMeta("scenario_id", session.ScenarioID)
	}

	scene := scen.FindScene(input.SceneID)
	if scene == nil {
		return nil, apperrors.NotFoundf("scene '%s' not found in scenario '%s'", input.SceneID, scen.ID).
			WithMeta("session_id", session.ID)
	}

	branch := scene.FindBranch(input.ChoiceText)
	if branch == nil {
		return nil, apperrors.NotFoundf("no branch with choice '%s' on scene '%s'", input.ChoiceText, scene.ID).
			WithMeta("session_id", session.ID)
	}

	now := time.Now()

	session.ChoiceHistory = append(session.ChoiceHistory, game.SessionChoice{
		SceneID:       scene.ID,
		SceneTitle:    scene.Title,
		ChoiceText:    input.ChoiceText,
		NextSceneID:   input.NextSceneID,
		Timestamp:     now,
		Echo:          branch.Echo,
		CompassChange: branch.CompassChange,
	})

	if branch.Echo != nil {
		session.EchoHistory = append(session.EchoHistory, game.EchoLog{
			Type:        branch.Echo.Type,
			Description: branch.Echo.Description,
			Strength:    branch.Echo.Strength,
			Timestamp:   now,
		})
	}

	if branch.CompassChange != nil {
		session.ApplyCompassChange(*branch.CompassChange, now)
	}

	session.CurrentSceneID = input.NextSceneID
	session.UpdateElapsed(now)

	for _, achievement := range s.evaluateAchievements(session, now) {
		session.AddAchievement(achievement)
	}

	// A next scene that doesn't resolve, and a resolved scene with no
	// branches, both mean the narrative is over
	next := scen.FindScene(input.NextSceneID)
	if next == nil || len(next.Branches) == 0 {
		session.Complete(now)
	}

	if err := s.repository.Update(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, "failed to update session").
			WithMeta("session_id", session.ID)
	}

	return session, nil
}

// PauseSession pauses an in-progress session
func (s *service) PauseSession(ctx context.Context, sessionID string) (*game.GameSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.InvalidArgument("session ID is required")
	}

	session, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get session '%s'", sessionID).
			WithMeta("session_id", sessionID)
	}

	if !session.Pause() {
		return nil, apperrors.InvalidState("can only pause sessions in progress").
			WithMeta("session_id", sessionID).
			WithMeta("status", string(session.Status))
	}

	if err := s.repository.Update(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, "failed to update session").
			WithMeta("session_id", sessionID)
	}

	return session, nil
}

// ResumeSession resumes a paused session
func (s *service) ResumeSession(ctx context.Context, sessionID string) (*game.GameSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.InvalidArgument("session ID is required")
	}

	session, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get session '%s'", sessionID).
			WithMeta("session_id", sessionID)
	}

	if !session.Resume() {
		return nil, apperrors.InvalidState("can only resume paused sessions").
			WithMeta("session_id", sessionID).
			WithMeta("status", string(session.Status))
	}

	if err := s.repository.Update(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, "failed to update session").
			WithMeta("session_id", sessionID)
	}

	return session, nil
}

// EndSession completes a session regardless of its current status. Ending
// an already-completed session rewrites its end timestamps.
func (s *service) EndSession(ctx context.Context, sessionID string) (*game.GameSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.InvalidArgument("session ID is required")
	}

	session, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get session '%s'", sessionID).
			WithMeta("session_id", sessionID)
	}

	session.Complete(time.Now())

	if err := s.repository.Update(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, "failed to update session").
			WithMeta("session_id", sessionID)
	}

	return session, nil
}

// ProgressSessionScene moves an in-progress session to a new scene without
// recording a choice. Used when the caller resolved the branch externally.
func (s *service) ProgressSessionScene(ctx context.Context, sessionID, newSceneID string) (*game.GameSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.InvalidArgument("session ID is required")
	}

	session, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get session '%s'", sessionID).
			WithMeta("session_id", sessionID)
	}

	if session.Status != game.SessionStatusInProgress {
		return nil, apperrors.InvalidState("can only progress sessions in progress").
			WithMeta("session_id", sessionID).
			WithMeta("status", string(session.Status))
	}

	session.CurrentSceneID = newSceneID
	session.UpdateElapsed(time.Now())

	if err := s.repository.Update(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, "failed to update session").
			WithMeta("session_id", sessionID)
	}

	return session, nil
}

// SelectCharacter sets the session's selected character
func (s *service) SelectCharacter(ctx context.Context, sessionID, characterID string) (*game.GameSession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, apperrors.InvalidArgument("session ID is required")
	}
	if strings.TrimSpace(characterID) == "" {
		return nil, apperrors.InvalidArgument("character ID is required")
	}

	session, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to get session '%s'", sessionID).
			WithMeta("session_id", sessionID)
	}

	session.SelectedCharacterID = characterID

	if err := s.repository.Update(ctx, session); err != nil {
		return nil, apperrors.Wrap(err, "failed to update session").
			WithMeta("session_id", sessionID)
	}

	return session, nil
}

// DeleteSession removes a session; returns false if it did not exist
func (s *service) DeleteSession(ctx context.Context, sessionID string) (bool, error) {
	if strings.TrimSpace(sessionID) == "" {
		return false, apperrors.InvalidArgument("session ID is required")
	}

	if err := s.repository.Delete(ctx, sessionID); err != nil {
		if apperrors.IsNotFound(err) {
			return false, nil
		}
		return false, apperrors.Wrapf(err, "failed to delete session '%s'", sessionID).
			WithMeta("session_id", sessionID)
	}

	return true, nil
}

// GetSessionStats summarizes a session's progress
func (s *service) GetSessionStats(ctx context.Context, sessionID string) (*SessionStats, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	compass := make(map[string]float64, len(session.CompassTracking))
	for axis, tracker := range session.CompassTracking {
		compass[axis] = tracker.CurrentValue
	}

	return &SessionStats{
		SessionID:        session.ID,
		ScenarioID:       session.ScenarioID,
		Status:           session.Status,
		CurrentSceneID:   session.CurrentSceneID,
		ChoiceCount:      len(session.ChoiceHistory),
		EchoCount:        len(session.EchoHistory),
		AchievementCount: len(session.Achievements),
		ElapsedTime:      session.ElapsedTime,
		CompassValues:    compass,
	}, nil
}

// CheckAchievements returns achievements the session has newly earned but
// not yet been awarded. Read-only; the caller merges them.
func (s *service) CheckAchievements(ctx context.Context, sessionID string) ([]game.SessionAchievement, error) {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return s.evaluateAchievements(session, time.Now()), nil
}

// ListSessionsByAccount lists all sessions owned by an account
func (s *service) ListSessionsByAccount(ctx context.Context, accountID string) ([]*game.GameSession, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, apperrors.InvalidArgument("account ID is required")
	}

	sessions, err := s.repository.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to list sessions for account '%s'", accountID).
			WithMeta("account_id", accountID)
	}

	return sessions, nil
}

// ListSessionsByProfile lists all sessions played by a profile
func (s *service) ListSessionsByProfile(ctx context.Context, profileID string) ([]*game.GameSession, error) {
	if strings.TrimSpace(profileID) == "" {
		return nil, apperrors.InvalidArgument("profile ID is required")
	}

	sessions, err := s.repository.GetByProfile(ctx, profileID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to list sessions for profile '%s'", profileID).
			WithMeta("profile_id", profileID)
	}

	return sessions, nil
}

// GetActiveSessionsCount counts in-progress and paused sessions
func (s *service) GetActiveSessionsCount(ctx context.Context) (int, error) {
	count, err := s.repository.CountActive(ctx)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count active sessions")
	}

	return count, nil
}
