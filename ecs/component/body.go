package component

import "github.com/go-gl/mathgl/mgl64"

// Body is the physical state the physics system integrates. Velocity
// is written by the grapple while Swinging (and by its air control
// when airborne), and by locomotion only while grounded; airborne
// momentum is never direct-set away.
type Body struct {
	Velocity   mgl64.Vec3
	Radius     float64
	Height     float64
	Grounded   bool
	UseGravity bool
	Swinging   bool
}

var BodyComponent = NewKind[Body]()
