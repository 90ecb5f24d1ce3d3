package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/softglow/duality/scene"
)

// GrappleState is the swing state machine's phase.
type GrappleState int

const (
	GrappleIdle GrappleState = iota
	GrappleSwinging
)

// Grapple holds the swing traversal tuning plus the live rope state.
// Anchor and RopeLength are captured at attach and fixed for the
// duration of one swing.
type Grapple struct {
	State      GrappleState
	Anchor     mgl64.Vec3
	RopeLength float64

	MaxRange      float64
	CastRadius    float64
	Layer         scene.Layer
	SwingAccel    float64 // lateral input thrust, units/s^2
	AirAccel      float64 // weaker control while idle and airborne
	SpringAccel   float64 // corrective accel per unit of overshoot
	MaxSwingSpeed float64
	ReleaseBoost  float64 // tangential multiplier on release
}

var GrappleComponent = NewKind[Grapple]()

// RopeLine is the rope's renderable segment, fed to the line renderer
// while a swing is active.
type RopeLine struct {
	Start   mgl64.Vec3
	End     mgl64.Vec3
	Width   float64
	Visible bool
}

var RopeLineComponent = NewKind[RopeLine]()
