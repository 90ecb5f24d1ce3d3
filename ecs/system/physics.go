package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/softglow/duality/common"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
	"github.com/softglow/duality/scene"
)

const (
	groundProbeHeight = 0.5
	groundSnapMargin  = 0.08
)

// PhysicsSystem integrates every body: gravity, velocity, and the
// downward ground probe that sets the grounded flag. It runs after the
// controller systems so it integrates the velocity they decided this
// tick.
type PhysicsSystem struct {
	index *scene.Index
	dt    float64
}

func NewPhysicsSystem(index *scene.Index, dt float64) *PhysicsSystem {
	return &PhysicsSystem{index: index, dt: dt}
}

func (s *PhysicsSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.BodyComponent, component.TransformComponent, func(_ ecs.Entity, body *component.Body, tr *component.Transform) {
		if body.UseGravity {
			body.Velocity[1] += common.Gravity * s.dt
		}
		tr.Position = tr.Position.Add(body.Velocity.Mul(s.dt))
		s.probeGround(body, tr)
	})
}

// probeGround sphere-casts down from just above the feet and snaps the
// body onto whatever solid surface it finds within the margin.
func (s *PhysicsSystem) probeGround(body *component.Body, tr *component.Transform) {
	if s.index == nil {
		// No scene: keep bodies from falling through the origin plane.
		if tr.Position.Y() <= 0 {
			tr.Position[1] = 0
			if body.Velocity.Y() < 0 {
				body.Velocity[1] = 0
			}
			body.Grounded = true
			return
		}
		body.Grounded = false
		return
	}

	origin := tr.Position.Add(mgl64.Vec3{0, groundProbeHeight, 0})
	hit, ok := s.index.Raycast(origin, mgl64.Vec3{0, -1, 0}, groundProbeHeight+groundSnapMargin, scene.LayerWorld)
	if ok && body.Velocity.Y() <= 0 {
		tr.Position[1] = hit.Point.Y()
		body.Velocity[1] = 0
		body.Grounded = true
		return
	}
	body.Grounded = false
}
