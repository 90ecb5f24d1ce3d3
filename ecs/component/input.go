package component

// InputState is the per-tick sampled input for an entity. The shell's
// input adapter writes it; systems only read.
type InputState struct {
	MoveX float64 // strafe, -1..1
	MoveY float64 // forward, -1..1
	LookX float64 // yaw delta this tick, radians
	LookY float64 // pitch delta this tick, radians

	JumpPressed   bool
	CrouchHeld    bool
	GrappleHeld   bool
	SwitchPressed bool
}

var InputStateComponent = NewKind[InputState]()
