package game

import (
	"time"
)

// SessionStatus represents the current state of a game session
type SessionStatus string

const (
	SessionStatusInProgress SessionStatus = "in_progress" // Session is being played
	SessionStatusPaused     SessionStatus = "paused"      // Session is temporarily paused
	SessionStatusCompleted  SessionStatus = "completed"   // Session has concluded
)

// CompassValueMin and CompassValueMax bound an axis accumulator. The current
// value is clamped on every write; logged deltas are never altered, so the
// history may sum outside these bounds.
const (
	CompassValueMin = -2.0
	CompassValueMax = 2.0
)

// CompassTracking is the per-axis accumulator for one session
type CompassTracking struct {
	Axis         string          `json:"axis"`
	CurrentValue float64         `json:"current_value"`
	History      []CompassChange `json:"history"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// Apply adds the delta to the current value, clamps the result, and appends
// the raw change to the history
func (t *CompassTracking) Apply(change CompassChange, now time.Time) {
	t.CurrentValue += change.Delta
	if t.CurrentValue > CompassValueMax {
		t.CurrentValue = CompassValueMax
	}
	if t.CurrentValue < CompassValueMin {
		t.CurrentValue = CompassValueMin
	}
	t.History = append(t.History, change)
	t.LastUpdated = now
}

// SessionChoice is an immutable audit record of one choice taken. The scene
// title is snapshotted at choice time, not joined live.
type SessionChoice struct {
	SceneID       string         `json:"scene_id"`
	SceneTitle    string         `json:"scene_title"`
	ChoiceText    string         `json:"choice_text"`
	NextSceneID   string         `json:"next_scene_id"`
	Timestamp     time.Time      `json:"timestamp"`
	Echo          *EchoEvent     `json:"echo,omitempty"`
	CompassChange *CompassChange `json:"compass_change,omitempty"`
}

// EchoLog is a materialized echo event in a session's history
type EchoLog struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Strength    float64   `json:"strength"`
	Timestamp   time.Time `json:"timestamp"`
}

// AchievementType classifies how an achievement was earned
type AchievementType string

const (
	AchievementTypeCompassThreshold AchievementType = "compass_threshold"
	AchievementTypeFirstChoice      AchievementType = "first_choice"
	AchievementTypeSessionComplete  AchievementType = "session_complete"
)

// SessionAchievement is a badge earned within a single session. IDs are
// deterministic per session and trigger, so awards are idempotent.
type SessionAchievement struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Type        AchievementType `json:"type"`
	Axis        string          `json:"axis,omitempty"`
	Threshold   float64         `json:"threshold,omitempty"`
	EarnedAt    time.Time       `json:"earned_at"`
}

// GameSession is one playthrough of a scenario by a profile/account
type GameSession struct {
	ID                  string                      `json:"id"`
	ScenarioID          string                      `json:"scenario_id"`
	AccountID           string                      `json:"account_id"`
	ProfileID           string                      `json:"profile_id"`
	PlayerNames         []string                    `json:"player_names"`
	Status              SessionStatus               `json:"status"`
	CurrentSceneID      string                      `json:"current_scene_id"`
	StartTime           time.Time                   `json:"start_time"`
	EndTime             *time.Time                  `json:"end_time,omitempty"`
	PausedAt            *time.Time                  `json:"paused_at,omitempty"`
	IsPaused            bool                        `json:"is_paused"`
	ElapsedTime         time.Duration               `json:"elapsed_time"`
	TargetAgeGroup      string                      `json:"target_age_group"`
	SceneCount          int                         `json:"scene_count"`
	SelectedCharacterID string                      `json:"selected_character_id,omitempty"`
	CompassTracking     map[string]*CompassTracking `json:"compass_tracking"`
	ChoiceHistory       []SessionChoice             `json:"choice_history"`
	EchoHistory         []EchoLog                   `json:"echo_history"`
	Achievements        []SessionAchievement        `json:"achievements"`
}

// NewGameSession creates an in-progress session positioned at the scenario's
// opening scene, with one zeroed compass tracker per declared core axis
func NewGameSession(id string, scenario *Scenario, accountID, profileID string, playerNames []string, targetAgeGroup string) *GameSession {
	now := time.Now()

	session := &GameSession{
		ID:              id,
		ScenarioID:      scenario.ID,
		AccountID:       accountID,
		ProfileID:       profileID,
		PlayerNames:     playerNames,
		Status:          SessionStatusInProgress,
		StartTime:       now,
		TargetAgeGroup:  targetAgeGroup,
		SceneCount:      len(scenario.Scenes),
		CompassTracking: make(map[string]*CompassTracking),
	}

	if first := scenario.FirstScene(); first != nil {
		session.CurrentSceneID = first.ID
	}

	for _, axis := range scenario.CoreAxes {
		session.CompassTracking[axis] = &CompassTracking{
			Axis:         axis,
			CurrentValue: 0.0,
			LastUpdated:  now,
		}
	}

	return session
}

// IsActive reports whether the session still accepts gameplay (in progress
// or paused)
func (s *GameSession) IsActive() bool {
	return s.Status == SessionStatusInProgress || s.Status == SessionStatusPaused
}

// Pause pauses an in-progress session
func (s *GameSession) Pause() bool {
	if s.Status != SessionStatusInProgress {
		return false
	}

	now := time.Now()
	s.Status = SessionStatusPaused
	s.IsPaused = true
	s.PausedAt = &now
	return true
}

// Resume resumes a paused session
func (s *GameSession) Resume() bool {
	if s.Status != SessionStatusPaused {
		return false
	}

	s.Status = SessionStatusInProgress
	s.IsPaused = false
	s.PausedAt = nil
	return true
}

// Complete marks the session finished at the given time. Unconditional:
// completing an already-completed session rewrites its end timestamps.
func (s *GameSession) Complete(now time.Time) {
	s.Status = SessionStatusCompleted
	s.EndTime = &now
	s.ElapsedTime = now.Sub(s.StartTime)
	s.IsPaused = false
	s.PausedAt = nil
}

// UpdateElapsed recomputes the running elapsed time
func (s *GameSession) UpdateElapsed(now time.Time) {
	s.ElapsedTime = now.Sub(s.StartTime)
}

// HasAchievement reports whether an achievement with the given ID has
// already been earned
func (s *GameSession) HasAchievement(id string) bool {
	for i := range s.Achievements {
		if s.Achievements[i].ID == id {
			return true
		}
	}
	return false
}

// AddAchievement appends the achievement unless one with the same ID is
// already present
func (s *GameSession) AddAchievement(a SessionAchievement) bool {
	if s.HasAchievement(a.ID) {
		return false
	}
	s.Achievements = append(s.Achievements, a)
	return true
}

// ApplyCompassChange routes a change to the matching axis tracker. Changes
// for axes the scenario never declared are dropped.
func (s *GameSession) ApplyCompassChange(change CompassChange, now time.Time) bool {
	tracker, ok := s.CompassTracking[change.Axis]
	if !ok {
		return false
	}
	tracker.Apply(change, now)
	return true
}
