package gamesession_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mystira/mystira-server/internal/domain/game"
	apperrors "github.com/mystira/mystira-server/internal/errors"
	"github.com/mystira/mystira-server/internal/repositories/gamesessions"
	"github.com/mystira/mystira-server/internal/repositories/scenarios"
	"github.com/mystira/mystira-server/internal/services/gamesession"
	"github.com/mystira/mystira-server/internal/services/scenario"
	mockscenario "github.com/mystira/mystira-server/internal/services/scenario/mock"
)

// MockUUIDGenerator produces predictable IDs for testing
type MockUUIDGenerator struct {
	prefix  string
	counter int
}

func NewMockUUIDGenerator(prefix string) *MockUUIDGenerator {
	return &MockUUIDGenerator{prefix: prefix}
}

func (m *MockUUIDGenerator) New() string {
	m.counter++
	return m.prefix + "-" + string(rune('0'+m.counter))
}

func woodsScenario() *game.Scenario {
	return &game.Scenario{
		ID:          "woods",
		Title:       "The Whispering Woods",
		Description: "A walk through a forest full of choices",
		MinimumAge:  6,
		CoreAxes:    []string{"courage"},
		Scenes: []game.Scene{
			{
				ID:    "A",
				Title: "The Edge of the Woods",
				Type:  game.SceneTypeChoice,
				Branches: []game.Branch{
					{
						ChoiceText:  "Step into the trees",
						NextSceneID: "B",
						Echo: &game.EchoEvent{
							Type:        "courage",
							Description: "You took the first step",
							Strength:    0.5,
						},
						CompassChange: &game.CompassChange{Axis: "courage", Delta: 1.0},
					},
					{ChoiceText: "Turn back home", NextSceneID: game.SceneEndSentinel},
				},
			},
			{
				ID:    "B",
				Title: "The Clearing",
				Type:  game.SceneTypeChoice,
				Branches: []game.Branch{
					{
						ChoiceText:    "Follow the fireflies",
						NextSceneID:   game.SceneEndSentinel,
						CompassChange: &game.CompassChange{Axis: "courage", Delta: 1.5},
					},
				},
			},
		},
	}
}

// newTestService wires a session service against in-memory repositories and
// seeds the given scenarios
func newTestService(t *testing.T, seed ...*game.Scenario) (gamesession.Service, gamesessions.Repository) {
	t.Helper()

	scenarioSvc := scenario.NewService(&scenario.ServiceConfig{
		Repository: scenarios.NewInMemoryRepository(),
	})
	for _, s := range seed {
		_, err := scenarioSvc.CreateScenario(context.Background(), s)
		require.NoError(t, err)
	}

	sessionRepo := gamesessions.NewInMemoryRepository()
	svc := gamesession.NewService(&gamesession.ServiceConfig{
		Repository:      sessionRepo,
		ScenarioService: scenarioSvc,
		UUIDGenerator:   NewMockUUIDGenerator("session"),
	})

	return svc, sessionRepo
}

func startInput() *gamesession.StartSessionInput {
	return &gamesession.StartSessionInput{
		ScenarioID:     "woods",
		AccountID:      "account-1",
		ProfileID:      "profile-1",
		PlayerNames:    []string{"Maya"},
		TargetAgeGroup: "middle_grade",
	}
}

func TestStartSession(t *testing.T) {
	t.Run("creates an in-progress session at the first scene", func(t *testing.T) {
		svc, _ := newTestService(t, woodsScenario())

		session, err := svc.StartSession(context.Background(), startInput())
		require.NoError(t, err)

		assert.Equal(t, game.SessionStatusInProgress, session.Status)
		assert.Equal(t, "A", session.CurrentSceneID)
		assert.Equal(t, "woods", session.ScenarioID)
		require.Contains(t, session.CompassTracking, "courage")
		assert.Zero(t, session.CompassTracking["courage"].CurrentValue)
	})

	t.Run("fails when scenario does not exist", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.StartSession(context.Background(), startInput())
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("fails when age group is too young", func(t *testing.T) {
		scen := woodsScenario()
		scen.MinimumAge = 10
		svc, _ := newTestService(t, scen)

		input := startInput()
		input.TargetAgeGroup = "early_reader" // resolves to 4
		_, err := svc.StartSession(context.Background(), input)
		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
	})

	t.Run("skips age check for unresolvable age groups", func(t *testing.T) {
		scen := woodsScenario()
		scen.MinimumAge = 10
		svc, _ := newTestService(t, scen)

		input := startInput()
		input.TargetAgeGroup = "whole_family"
		_, err := svc.StartSession(context.Background(), input)
		require.NoError(t, err)
	})

	t.Run("force-completes prior active session for the same scenario and account", func(t *testing.T) {
		svc, repo := newTestService(t, woodsScenario())

		first, err := svc.StartSession(context.Background(), startInput())
		require.NoError(t, err)

		second, err := svc.StartSession(context.Background(), startInput())
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		prior, err := repo.Get(context.Background(), first.ID)
		require.NoError(t, err)
		assert.Equal(t, game.SessionStatusCompleted, prior.Status)
		assert.NotNil(t, prior.EndTime)

		active, err := repo.GetActiveByScenarioAndAccount(context.Background(), "woods", "account-1")
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, second.ID, active[0].ID)
	})

	t.Run("also completes paused sessions", func(t *testing.T) {
		svc, repo := newTestService(t, woodsScenario())

		first, err := svc.StartSession(context.Background(), startInput())
		require.NoError(t, err)
		_, err = svc.PauseSession(context.Background(), first.ID)
		require.NoError(t, err)

		_, err = svc.StartSession(context.Background(), startInput())
		require.NoError(t, err)

		prior, err := repo.Get(context.Background(), first.ID)
		require.NoError(t, err)
		assert.Equal(t, game.SessionStatusCompleted, prior.Status)
	})
}

func TestStartSessionPropagatesScenarioErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockScenarios := mockscenario.NewMockService(ctrl)
	mockScenarios.EXPECT().
		GetScenario(gomock.Any(), "woods").
		Return(nil, apperrors.NotFoundf("scenario not found: %s", "woods"))

	svc := gamesession.NewService(&gamesession.ServiceConfig{
		Repository:      gamesessions.NewInMemoryRepository(),
		ScenarioService: mockScenarios,
	})

	_, err := svc.StartSession(context.Background(), startInput())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMakeChoice(t *testing.T) {
	start := func(t *testing.T) (gamesession.Service, *game.GameSession) {
		svc, _ := newTestService(t, woodsScenario())
		session, err := svc.StartSession(context.Background(), startInput())
		require.NoError(t, err)
		return svc, session
	}

	t.Run("records history and advances the scene", func(t *testing.T) {
		svc, session := start(t)

		updated, err := svc.MakeChoice(context.Background(), &gamesession.MakeChoiceInput{
			SessionID:   session.ID,
			SceneID:     "A",
			ChoiceText:  "Step into the trees",
			NextSceneID: "B",
		})
		require.NoError(t, err)

		assert.Equal(t, game.SessionStatusInProgress, updated.Status)
		assert.Equal(t, "B", updated.CurrentSceneID)

		require.Len(t, updated.ChoiceHistory, 1)
		choice := updated.ChoiceHistory[0]
		assert.Equal(t, "A", choice.SceneID)
		assert.Equal(t, "The Edge of the Woods", choice.SceneTitle, "scene title is snapshotted")
		assert.Equal(t, "Step into the trees", choice.ChoiceText)
		assert.Equal(t, "B", choice.NextSceneID)

		require.Len(t, updated.EchoHistory, 1)
		assert.Equal(t, "courage", updated.EchoHistory[0].Type)

		assert.Equal(t, 1.0, updated.CompassTracking["courage"].CurrentValue)
	})

	t.Run("completes the narrative on the END sentinel", func(t *testing.T) {
		svc, session := start(t)

		_, err := svc.MakeChoice(context.Background(), &gamesession.MakeChoiceInput{
			SessionID:   session.ID,
			SceneID:     "A",
			ChoiceText:  "Step into the trees",
			NextSceneID: "B",
		})
		require.NoError(t, err)

		updated, err := svc.MakeChoice(context.Background(), &gamesession.MakeChoiceInput{
			SessionID:   session.ID,
			SceneID:     "B",
			ChoiceText:  "Follow the fireflies",
			NextSceneID: game.SceneEndSentinel,
		})
		require.NoError(t, err)

		assert.Equal(t, game.SessionStatusCompleted, updated.Status)
		require.NotNil(t, updated.EndTime)
	})

	t.Run("completes when the next scene is a dead end", func(t *testing.T) {
		scen := woodsScenario()
		scen.Scenes[1].Branches = nil // B becomes a dead end
		svc, _ := newTestService(t, scen)
		session, err := svc.StartSession(context.Background(), startInput())
		require.NoError(t, err)

		updated, err := svc.MakeChoice(context.Background(), &gamesession.MakeChoiceInput{
			SessionID:   session.ID,
			SceneID:     "A",
			ChoiceText:  "Step into the trees",
			NextSceneID: "B",
		})
		require.NoError(t, err)
		assert.Equal(t, game.SessionStatusCompleted, updated.Status)
	})

	t.Run("clamps compass value while history keeps raw deltas", func(t *testing.T) {
		scen := woodsScenario()
		// Loop A -> A with a +1.5 delta to apply it twice
		scen.Scenes[0].Branches[0].NextSceneID = "A"
		scen.Scenes[0].Branches[0].CompassChange.Delta = 1.5
		scen.Scenes[0].Branches[0].Echo = nil
		scen.Scenes[0].Type = game.SceneTypeChoice
		svc, _ := newTestService(t, scen)
		session, err := svc.StartSession(context.Background(), startInput())
		require.NoError(t, err)

		for i := 0; i < 2; i++ {
			_, err = svc.MakeChoice(context.Background(), &gamesession.MakeChoiceInput{
				SessionID:   session.ID,
				SceneID:     "A",
				ChoiceText:  "Step into the trees",
				NextSceneID: "A",
			})
			require.NoError(t, err)
		}

		updated, err := svc.GetSession(context.Background(), session.ID)
		require.NoError(t, err)

		tracker := updated.CompassTracking["courage"]
		assert.Equal(t, 2.0, tracker.CurrentValue, "value is clamped, not 3.0")
		require.Len(t, tracker.History, 2)
		assert.Equal(t, 1.5, tracker.History[0].Delta)
		assert.Equal(t, 1.5, tracker.History[1].Delta)
	})

	t.Run("fails on paused sessions", func(t *testing.T) {
		svc, session := start(t)
		_, err := svc.PauseSession(context.Background(), session.ID)
		require.NoError(t, err)

		_, err = svc.MakeChoice(context.Background(), &gamesession.MakeChoiceInput{
			SessionID:   session.ID,
			SceneID:     "A",
			ChoiceText:  "Step into the trees",
			NextSceneID: "B",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidState(err))
	})

	t.Run("fails on unknown scene", func(t *testing.T) {
		svc, session := start(t)

		_, err := svc.MakeChoice(context.Background(), &gamesession.MakeChoiceInput{
			SessionID:   session.ID,
			SceneID:     "Z",
			ChoiceText:  "Step into the trees",
			NextSceneID: "B",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("fails on unknown choice text", func(t *testing.T) {
		svc, session := start(t)

		_, err := svc.MakeChoice(context.Background(), &gamesession.MakeChoiceInput{
			SessionID:   session.ID,
			SceneID:     "A",
			ChoiceText:  "step into the trees", // wrong case
			NextSceneID: "B",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("fails on missing session", func(t *testing.T) {
		svc, _ := newTestService(t, woodsScenario())

		_, err := svc.MakeChoice(context.Background(), &gamesession.MakeChoiceInput{
			SessionID:   "nope",
			SceneID:     "A",
			ChoiceText:  "Step into the trees",
			NextSceneID: "B",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestPauseResumeEnd(t *testing.T) {
	start := func(t *testing.T) (gamesession.Service, *game.GameSession) {
		svc, _ := newTestService(t, woodsScenario())
		session, err := svc.StartSession(context.Background(), startInput())
		require.NoError(t, err)
		return svc, session
	}

	t.Run("pause then resume", func(t *testing.T) {
		svc, session := start(t)

		paused, err := svc.PauseSession(context.Background(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, game.SessionStatusPaused, paused.Status)
		assert.True(t, paused.IsPaused)

		resumed, err := svc.ResumeSession(context.Background(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, game.SessionStatusInProgress, resumed.Status)
		assert.False(t, resumed.IsPaused)
	})

	t.Run("cannot pause a paused session", func(t *testing.T) {
		svc, session := start(t)
		_, err := svc.PauseSession(context.Background(), session.ID)
		require.NoError(t, err)

		_, err = svc.PauseSession(context.Background(), session.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidState(err))
		assert.Contains(t, err.Error(), "can only pause sessions in progress")
	})

	t.Run("cannot resume an in-progress session", func(t *testing.T) {
		svc, session := start(t)

		_, err := svc.ResumeSession(context.Background(), session.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidState(err))
		assert.Contains(t, err.Error(), "can only resume paused sessions")
	})

	t.Run("end completes from any status", func(t *testing.T) {
		svc, session := start(t)
		_, err := svc.PauseSession(context.Background(), session.ID)
		require.NoError(t, err)

		ended, err := svc.EndSession(context.Background(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, game.SessionStatusCompleted, ended.Status)
		assert.False(t, ended.IsPaused)
		require.NotNil(t, ended.EndTime)

		// Re-ending silently rewrites the end timestamps
		reEnded, err := svc.EndSession(context.Background(), session.ID)
		require.NoError(t, err)
		assert.Equal(t, game.SessionStatusCompleted, reEnded.Status)
	})
}

func TestProgressSessionScene(t *testing.T) {
	svc, _ := newTestService(t, woodsScenario())
	session, err := svc.StartSession(context.Background(), startInput())
	require.NoError(t, err)

	updated, err := svc.ProgressSessionScene(context.Background(), session.ID, "B")
	require.NoError(t, err)
	assert.Equal(t, "B", updated.CurrentSceneID)
	assert.Empty(t, updated.ChoiceHistory, "progressing does not record a choice")

	_, err = svc.EndSession(context.Background(), session.ID)
	require.NoError(t, err)

	_, err = svc.ProgressSessionScene(context.Background(), session.ID, "A")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidState(err))
}

func TestSelectCharacter(t *testing.T) {
	svc, _ := newTestService(t, woodsScenario())
	session, err := svc.StartSession(context.Background(), startInput())
	require.NoError(t, err)

	updated, err := svc.SelectCharacter(context.Background(), session.ID, "char-7")
	require.NoError(t, err)
	assert.Equal(t, "char-7", updated.SelectedCharacterID)

	// No state-machine constraint: works on completed sessions too
	_, err = svc.EndSession(context.Background(), session.ID)
	require.NoError(t, err)
	updated, err = svc.SelectCharacter(context.Background(), session.ID, "char-8")
	require.NoError(t, err)
	assert.Equal(t, "char-8", updated.SelectedCharacterID)
}

func TestDeleteSession(t *testing.T) {
	svc, _ := newTestService(t, woodsScenario())
	session, err := svc.StartSession(context.Background(), startInput())
	require.NoError(t, err)

	deleted, err := svc.DeleteSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	// Idempotent: deleting again reports false without error
	deleted, err = svc.DeleteSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = svc.GetSession(context.Background(), session.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetSessionStats(t *testing.T) {
	svc, _ := newTestService(t, woodsScenario())
	session, err := svc.StartSession(context.Background(), startInput())
	require.NoError(t, err)

	_, err = svc.MakeChoice(context.Background(), &gamesession.MakeChoiceInput{
		SessionID:   session.ID,
		SceneID:     "A",
		ChoiceText:  "Step into the trees",
		NextSceneID: "B",
	})
	require.NoError(t, err)

	stats, err := svc.GetSessionStats(context.Background(), session.ID)
	require.NoError(t, err)

	assert.Equal(t, session.ID, stats.SessionID)
	assert.Equal(t, 1, stats.ChoiceCount)
	assert.Equal(t, 1, stats.EchoCount)
	assert.Equal(t, game.SessionStatusInProgress, stats.Status)
	assert.Equal(t, "B", stats.CurrentSceneID)
	assert.Equal(t, 1.0, stats.CompassValues["courage"])
}

func TestGetActiveSessionsCount(t *testing.T) {
	svc, _ := newTestService(t, woodsScenario())

	count, err := svc.GetActiveSessionsCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	session, err := svc.StartSession(context.Background(), startInput())
	require.NoError(t, err)

	count, err = svc.GetActiveSessionsCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svc.EndSession(context.Background(), session.ID)
	require.NoError(t, err)

	count, err = svc.GetActiveSessionsCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListSessions(t *testing.T) {
	svc, _ := newTestService(t, woodsScenario())

	session, err := svc.StartSession(context.Background(), startInput())
	require.NoError(t, err)

	byAccount, err := svc.ListSessionsByAccount(context.Background(), "account-1")
	require.NoError(t, err)
	require.Len(t, byAccount, 1)
	assert.Equal(t, session.ID, byAccount[0].ID)

	byProfile, err := svc.ListSessionsByProfile(context.Background(), "profile-1")
	require.NoError(t, err)
	require.Len(t, byProfile, 1)

	byOther, err := svc.ListSessionsByAccount(context.Background(), "account-2")
	require.NoError(t, err)
	assert.Empty(t, byOther)
}
