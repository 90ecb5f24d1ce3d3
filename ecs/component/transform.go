package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is world position plus body yaw in radians. Pitch lives on
// the camera rig; bodies never pitch.
type Transform struct {
	Position mgl64.Vec3
	Yaw      float64
}

// Forward is the horizontal view direction for the current yaw.
func (t *Transform) Forward() mgl64.Vec3 {
	if t == nil {
		return mgl64.Vec3{0, 0, 1}
	}
	s, c := sincos(t.Yaw)
	return mgl64.Vec3{s, 0, c}
}

// Right is the horizontal strafe direction for the current yaw.
func (t *Transform) Right() mgl64.Vec3 {
	if t == nil {
		return mgl64.Vec3{1, 0, 0}
	}
	s, c := sincos(t.Yaw)
	return mgl64.Vec3{c, 0, -s}
}

func sincos(a float64) (float64, float64) {
	return math.Sin(a), math.Cos(a)
}

var TransformComponent = NewKind[Transform]()
