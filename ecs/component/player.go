package component

// PlayerTag marks the player entity.
type PlayerTag struct{}

var PlayerTagComponent = NewKind[PlayerTag]()

// PlayerController is the ground locomotion tuning. Heights are capsule
// heights; the crouch blend smooths Body.Height between them.
type PlayerController struct {
	MoveSpeed    float64
	JumpSpeed    float64
	StandHeight  float64
	CrouchHeight float64
	CrouchRate   float64 // exponential smoothing rate, per second
}

var PlayerControllerComponent = NewKind[PlayerController]()

// CameraRig accumulates look input. Pitch is clamped to +/-90 degrees
// and smoothed exponentially toward the raw target; the swing rate is
// the faster constant used while grappling.
type CameraRig struct {
	Pitch       float64 // smoothed, radians
	TargetPitch float64 // clamped raw accumulation
	SmoothRate  float64
	SwingRate   float64
	EyeOffset   float64 // current eye height above feet
	EyeStand    float64
	EyeCrouch   float64
}

var CameraRigComponent = NewKind[CameraRig]()
