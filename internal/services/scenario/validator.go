package scenario

import (
	"strings"

	"github.com/mystira/mystira-server/internal/domain/game"
	apperrors "github.com/mystira/mystira-server/internal/errors"
)

// ValidateScenario checks a scenario's internal consistency: required
// fields, echo and compass value ranges, and scene-graph references. Runs
// at create/update time, after the wire-level schema check has passed.
func (s *service) ValidateScenario(scenario *game.Scenario) error {
	if scenario == nil {
		return apperrors.InvalidArgument("scenario cannot be nil")
	}

	if strings.TrimSpace(scenario.Title) == "" {
		return apperrors.Validation("scenario title is required")
	}
	if strings.TrimSpace(scenario.Description) == "" {
		return apperrors.Validation("scenario description is required")
	}
	if len(scenario.Scenes) == 0 {
		return apperrors.Validation("scenario must have at least one scene")
	}

	sceneIDs := make(map[string]struct{}, len(scenario.Scenes))
	for i := range scenario.Scenes {
		scene := &scenario.Scenes[i]
		if strings.TrimSpace(scene.ID) == "" {
			return apperrors.Validationf("scene at index %d has no ID", i)
		}
		if strings.TrimSpace(scene.Title) == "" {
			return apperrors.Validationf("scene '%s' has no title", scene.ID)
		}
		sceneIDs[scene.ID] = struct{}{}
	}

	for i := range scenario.Scenes {
		scene := &scenario.Scenes[i]
		for j := range scene.Branches {
			branch := &scene.Branches[j]

			if branch.Echo != nil {
				if scene.Type != game.SceneTypeChoice {
					return apperrors.Validationf(
						"scene '%s' has type '%s' but carries an echo log; only choice scenes may have echo logs",
						scene.ID, scene.Type)
				}
				if err := validateEcho(scene.ID, branch); err != nil {
					return err
				}
			}

			if branch.CompassChange != nil {
				if err := validateCompassChange(scene.ID, branch); err != nil {
					return err
				}
			}

			if !game.IsTerminalSceneID(branch.NextSceneID) {
				if _, ok := sceneIDs[branch.NextSceneID]; !ok {
					return apperrors.Validationf(
						"branch '%s' in scene '%s' references non-existent next scene ID '%s'",
						branch.ChoiceText, scene.ID, branch.NextSceneID)
				}
			}
		}
	}

	return nil
}

func validateEcho(sceneID string, branch *game.Branch) error {
	echo := branch.Echo

	if echo.Strength < game.EchoStrengthMin || echo.Strength > game.EchoStrengthMax {
		return apperrors.Validationf(
			"echo log on branch '%s' in scene '%s' has strength %.2f outside [%.1f, %.1f]",
			branch.ChoiceText, sceneID, echo.Strength, game.EchoStrengthMin, game.EchoStrengthMax)
	}
	if _, ok := game.ParseEchoType(echo.Type); !ok {
		return apperrors.Validationf(
			"echo log on branch '%s' in scene '%s' has unknown echo type '%s'",
			branch.ChoiceText, sceneID, echo.Type)
	}
	if strings.TrimSpace(echo.Description) == "" {
		return apperrors.Validationf(
			"echo log on branch '%s' in scene '%s' has no description",
			branch.ChoiceText, sceneID)
	}

	return nil
}

func validateCompassChange(sceneID string, branch *game.Branch) error {
	change := branch.CompassChange

	if change.Delta < game.CompassDeltaMin || change.Delta > game.CompassDeltaMax {
		return apperrors.Validationf(
			"compass change on branch '%s' in scene '%s' has delta %.2f outside [%.1f, %.1f]",
			branch.ChoiceText, sceneID, change.Delta, game.CompassDeltaMin, game.CompassDeltaMax)
	}
	if strings.TrimSpace(change.Axis) == "" {
		return apperrors.Validationf(
			"compass change on branch '%s' in scene '%s' has no axis",
			branch.ChoiceText, sceneID)
	}

	// TODO(content): enforce that change.Axis appears in scenario.CoreAxes
	// once legacy packs declare their axes. Several shipped packs still use
	// undeclared axes, so the check stays off for now.
	//
	// if !slices.Contains(scenario.CoreAxes, change.Axis) {
	// 	return apperrors.Validationf(
	// 		"compass change on branch '%s' in scene '%s' uses undeclared axis '%s'",
	// 		branch.ChoiceText, sceneID, change.Axis)
	// }

	return nil
}
