package gamesession

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/mystira/mystira-server/internal/domain/game"
)

// defaultCompassThreshold is the absolute axis value that earns a compass
// badge when no per-axis configuration is provided
const defaultCompassThreshold = 3.0

// ThresholdLookup resolves the compass badge threshold for an axis and age
// group. Injected so tests and future per-scenario configuration can swap
// the global default.
type ThresholdLookup interface {
	Threshold(axis, ageGroup string) float64
}

// staticThresholds applies one threshold to every axis and age group
type staticThresholds struct {
	value float64
}

func (t staticThresholds) Threshold(_, _ string) float64 {
	return t.value
}

// DefaultThresholds returns the global default threshold lookup
func DefaultThresholds() ThresholdLookup {
	return staticThresholds{value: defaultCompassThreshold}
}

// StaticThresholds returns a lookup with a single fixed threshold
func StaticThresholds(value float64) ThresholdLookup {
	return staticThresholds{value: value}
}

// evaluateAchievements derives badges from the session's current state.
// Pure: returns only candidates not already on the session, never mutates.
func (s *service) evaluateAchievements(session *game.GameSession, now time.Time) []game.SessionAchievement {
	var earned []game.SessionAchievement

	for axis, tracker := range session.CompassTracking {
		threshold := s.thresholds.Threshold(axis, session.TargetAgeGroup)
		if math.Abs(tracker.CurrentValue) < threshold {
			continue
		}

		id := fmt.Sprintf("%s_%s_threshold", session.ID, axis)
		if session.HasAchievement(id) {
			continue
		}

		earned = append(earned, game.SessionAchievement{
			ID:          id,
			Title:       axisTitle(axis) + " Badge",
			Description: fmt.Sprintf("Reached a strong %s value", strings.ReplaceAll(axis, "_", " ")),
			Icon:        "compass",
			Type:        game.AchievementTypeCompassThreshold,
			Axis:        axis,
			Threshold:   threshold,
			EarnedAt:    now,
		})
	}

	// First choice triggers on exactly one recorded choice
	if len(session.ChoiceHistory) == 1 {
		id := session.ID + "_first_choice"
		if !session.HasAchievement(id) {
			earned = append(earned, game.SessionAchievement{
				ID:          id,
				Title:       "First Steps",
				Description: "Made the first choice of the adventure",
				Icon:        "footprints",
				Type:        game.AchievementTypeFirstChoice,
				EarnedAt:    now,
			})
		}
	}

	if session.Status == game.SessionStatusCompleted {
		id := session.ID + "_completion"
		if !session.HasAchievement(id) {
			earned = append(earned, game.SessionAchievement{
				ID:          id,
				Title:       "Story Complete",
				Description: "Finished the adventure from beginning to end",
				Icon:        "trophy",
				Type:        game.AchievementTypeSessionComplete,
				EarnedAt:    now,
			})
		}
	}

	return earned
}

// axisTitle turns an axis name like "kindness_courage" into "Kindness Courage"
func axisTitle(axis string) string {
	words := strings.Split(strings.ReplaceAll(axis, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
