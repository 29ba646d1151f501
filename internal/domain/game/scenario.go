package game

// SceneType classifies how a scene is presented to the player
type SceneType string

const (
	SceneTypeNarrative  SceneType = "narrative"  // Linear storytelling beat
	SceneTypeChoice     SceneType = "choice"     // Player picks a branch
	SceneTypeReflection SceneType = "reflection" // Guided reflection prompt
	SceneTypeMinigame   SceneType = "minigame"   // Embedded activity
)

// EchoType is the vocabulary of narrative flavor events a branch may emit
type EchoType string

const (
	EchoTypeCourage   EchoType = "courage"
	EchoTypeCuriosity EchoType = "curiosity"
	EchoTypeEmpathy   EchoType = "empathy"
	EchoTypeHonesty   EchoType = "honesty"
	EchoTypeWonder    EchoType = "wonder"
)

// echoTypes is the set of defined echo types
var echoTypes = map[EchoType]struct{}{
	EchoTypeCourage:   {},
	EchoTypeCuriosity: {},
	EchoTypeEmpathy:   {},
	EchoTypeHonesty:   {},
	EchoTypeWonder:    {},
}

// ParseEchoType resolves a name against the known echo-type vocabulary
func ParseEchoType(name string) (EchoType, bool) {
	t := EchoType(name)
	_, ok := echoTypes[t]
	return t, ok
}

// EchoStrength bounds for authored echo events
const (
	EchoStrengthMin = 0.1
	EchoStrengthMax = 1.0
)

// CompassDeltaMin and CompassDeltaMax bound a single authored compass delta
const (
	CompassDeltaMin = -1.0
	CompassDeltaMax = 1.0
)

// SceneEndSentinel marks a branch that ends the narrative explicitly
const SceneEndSentinel = "END"

// IsTerminalSceneID reports whether a next-scene reference ends the narrative
// rather than pointing at another scene
func IsTerminalSceneID(id string) bool {
	return id == "" || id == SceneEndSentinel
}

// EchoEvent is an authored narrative flavor event attached to a branch
type EchoEvent struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Strength    float64 `json:"strength"`
}

// CompassChange is a single delta applied to a named compass axis
type CompassChange struct {
	Axis  string  `json:"axis"`
	Delta float64 `json:"delta"`
}

// Branch is one outgoing choice edge from a scene
type Branch struct {
	ChoiceText    string         `json:"choice_text"`
	NextSceneID   string         `json:"next_scene_id"`
	Echo          *EchoEvent     `json:"echo,omitempty"`
	CompassChange *CompassChange `json:"compass_change,omitempty"`
}

// Scene is a single narrative beat within a scenario
type Scene struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Type     SceneType `json:"type"`
	MediaID  string    `json:"media_id,omitempty"`
	Branches []Branch  `json:"branches,omitempty"`
}

// Scenario is an authored branching-narrative definition. It is immutable
// for the lifetime of any session playing it.
type Scenario struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	MinimumAge   int      `json:"minimum_age"`
	CoverImageID string   `json:"cover_image_id,omitempty"`
	CoreAxes     []string `json:"core_axes"`
	Scenes       []Scene  `json:"scenes"`
}

// FindScene returns the scene with the given ID, or nil if absent
func (s *Scenario) FindScene(id string) *Scene {
	for i := range s.Scenes {
		if s.Scenes[i].ID == id {
			return &s.Scenes[i]
		}
	}
	return nil
}

// FirstScene returns the opening scene in declared order, or nil if the
// scenario has no scenes
func (s *Scenario) FirstScene() *Scene {
	if len(s.Scenes) == 0 {
		return nil
	}
	return &s.Scenes[0]
}

// FindBranch returns the branch on the scene whose choice text matches
// exactly, or nil if none does
func (sc *Scene) FindBranch(choiceText string) *Branch {
	for i := range sc.Branches {
		if sc.Branches[i].ChoiceText == choiceText {
			return &sc.Branches[i]
		}
	}
	return nil
}
