package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mystira/mystira-server/internal/domain/game"
)

func TestScenarioLookups(t *testing.T) {
	scenario := &game.Scenario{
		ID: "scenario-1",
		Scenes: []game.Scene{
			{
				ID:    "scene-a",
				Title: "Opening",
				Type:  game.SceneTypeChoice,
				Branches: []game.Branch{
					{ChoiceText: "Go left", NextSceneID: "scene-b"},
					{ChoiceText: "Go right", NextSceneID: game.SceneEndSentinel},
				},
			},
			{ID: "scene-b", Title: "The Cave", Type: game.SceneTypeNarrative},
		},
	}

	t.Run("FindScene", func(t *testing.T) {
		scene := scenario.FindScene("scene-b")
		require.NotNil(t, scene)
		assert.Equal(t, "The Cave", scene.Title)

		assert.Nil(t, scenario.FindScene("scene-z"))
		assert.Nil(t, scenario.FindScene(game.SceneEndSentinel))
	})

	t.Run("FirstScene follows declared order", func(t *testing.T) {
		first := scenario.FirstScene()
		require.NotNil(t, first)
		assert.Equal(t, "scene-a", first.ID)

		empty := &game.Scenario{}
		assert.Nil(t, empty.FirstScene())
	})

	t.Run("FindBranch matches choice text exactly", func(t *testing.T) {
		scene := scenario.FindScene("scene-a")
		require.NotNil(t, scene)

		branch := scene.FindBranch("Go left")
		require.NotNil(t, branch)
		assert.Equal(t, "scene-b", branch.NextSceneID)

		assert.Nil(t, scene.FindBranch("go left"), "match must be case sensitive")
		assert.Nil(t, scene.FindBranch("Go forward"))
	})
}

func TestIsTerminalSceneID(t *testing.T) {
	assert.True(t, game.IsTerminalSceneID(""))
	assert.True(t, game.IsTerminalSceneID("END"))
	assert.False(t, game.IsTerminalSceneID("end"))
	assert.False(t, game.IsTerminalSceneID("scene-a"))
}

func TestParseEchoType(t *testing.T) {
	parsed, ok := game.ParseEchoType("courage")
	assert.True(t, ok)
	assert.Equal(t, game.EchoTypeCourage, parsed)

	_, ok = game.ParseEchoType("bravado")
	assert.False(t, ok)

	_, ok = game.ParseEchoType("")
	assert.False(t, ok)
}
