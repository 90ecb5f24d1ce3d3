package component

// WorldMode is the single source of truth for the light/shadow state.
// Exactly one entity carries it. InShadow flips only when a completed
// transition commits; Blend is the continuous value during one
// (0 = light, 1 = shadow). Enabled goes false for the whole session
// when the dissolve shader template cannot be resolved at scene build;
// queries stay answerable, commands become no-ops.
type WorldMode struct {
	InShadow      bool
	Blend         float64
	Transitioning bool
	Enabled       bool
	Duration      float64 // seconds per global transition
}

var WorldModeComponent = NewKind[WorldMode]()

// ModeSwitchRequest asks the duality system to start a global
// transition. Spawned as a one-shot entity; the system consumes every
// request each tick and honors at most one.
type ModeSwitchRequest struct{}

var ModeSwitchRequestComponent = NewKind[ModeSwitchRequest]()

// ModeTransition is the transient runtime for one in-flight global
// transition, held on its own entity and destroyed on completion.
type ModeTransition struct {
	Elapsed float64
	From    float64 // blend at start
	To      float64 // blend at completion, 0 or 1
}

var ModeTransitionComponent = NewKind[ModeTransition]()
