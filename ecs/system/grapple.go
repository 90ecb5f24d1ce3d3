package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
	"github.com/softglow/duality/scene"
)

// GrappleSystem is the swing traversal state machine. Grappling is
// permitted only in shadow mode, and only against surfaces whose
// affinity marks them grapple-eligible; a hit that fails either check
// leaves the player idle. While swinging, the rope is an inextensible
// constraint that only ever pulls.
type GrappleSystem struct {
	index *scene.Index
	dt    float64
}

func NewGrappleSystem(index *scene.Index, dt float64) *GrappleSystem {
	return &GrappleSystem{index: index, dt: dt}
}

func (s *GrappleSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.ID())
	if !ok {
		return
	}
	g, ok := ecs.Get(w, player, component.GrappleComponent)
	if !ok {
		return
	}
	body, ok := ecs.Get(w, player, component.BodyComponent)
	if !ok {
		return
	}
	tr, ok := ecs.Get(w, player, component.TransformComponent)
	if !ok {
		return
	}
	rig, ok := ecs.Get(w, player, component.CameraRigComponent)
	if !ok {
		return
	}
	in, ok := ecs.Get(w, player, component.InputStateComponent)
	if !ok {
		in = &component.InputState{}
	}

	switch g.State {
	case component.GrappleSwinging:
		if !in.GrappleHeld {
			s.release(w, g, body)
			return
		}
		s.swingStep(g, body, tr, in)
	default:
		if in.GrappleHeld && IsInShadowMode(w) {
			s.tryAttach(w, g, body, tr, rig)
			if g.State == component.GrappleSwinging {
				return
			}
		}
		if !body.Grounded {
			s.airControl(g, body, tr, in)
		}
	}
}

// tryAttach sphere-casts along the view ray and starts a swing when the
// struck surface is grapple-eligible for the current mode.
func (s *GrappleSystem) tryAttach(w *ecs.World, g *component.Grapple, body *component.Body, tr *component.Transform, rig *component.CameraRig) {
	eye := tr.Position.Add(mgl64.Vec3{0, rig.EyeOffset, 0})
	dir := viewDir(tr.Yaw, rig.Pitch)

	mask := g.Layer
	if mask == 0 {
		mask = scene.LayerGrapple
	}
	hit, ok := s.index.SphereCast(eye, dir, g.CastRadius, g.MaxRange, mask)
	if !ok {
		return
	}
	subject, ok := hit.Object.UserData.(ecs.Entity)
	if !ok {
		return
	}
	affinity, ok := ecs.Get(w, subject, component.AffinityComponent)
	if !ok || *affinity != component.AffinityShadow {
		return
	}

	g.Anchor = hit.Point
	g.RopeLength = g.Anchor.Sub(tr.Position).Len()
	g.State = component.GrappleSwinging
	body.Swinging = true

	if rl, ok := ecs.Get(w, ecsFirstOr(w, component.RopeLineComponent.ID()), component.RopeLineComponent); ok {
		rl.Start = tr.Position
		rl.End = g.Anchor
		rl.Visible = true
	}
	RequestCue(w, "grapple_attach")
}

// swingStep is one fixed physics step of the swing: lateral thrust,
// then the rope constraint, then the speed ceiling.
func (s *GrappleSystem) swingStep(g *component.Grapple, body *component.Body, tr *component.Transform, in *component.InputState) {
	if thrust := cameraRelativeInput(tr, in); thrust.Len() > 0 {
		body.Velocity = body.Velocity.Add(thrust.Mul(g.SwingAccel * s.dt))
	}

	toPlayer := tr.Position.Sub(g.Anchor)
	dist := toPlayer.Len()
	if dist > g.RopeLength && dist > 0 {
		n := toPlayer.Mul(1 / dist) // outward, away from the anchor
		if outward := body.Velocity.Dot(n); outward > 0 {
			body.Velocity = body.Velocity.Sub(n.Mul(outward))
		}
		// Soft spring on the overshoot: the hard constraint alone lets
		// discrete steps drift the player past the rope length.
		overshoot := dist - g.RopeLength
		body.Velocity = body.Velocity.Sub(n.Mul(g.SpringAccel * overshoot * s.dt))
	}

	if speed := body.Velocity.Len(); g.MaxSwingSpeed > 0 && speed > g.MaxSwingSpeed {
		body.Velocity = body.Velocity.Mul(g.MaxSwingSpeed / speed)
	}
}

// release discards the along-anchor velocity component and keeps the
// boosted tangential remainder. The unconditional multiply is the
// release-and-fling feel.
func (s *GrappleSystem) release(w *ecs.World, g *component.Grapple, body *component.Body) {
	player, _ := ecs.First(w, component.PlayerTagComponent.ID())
	if tr, ok := ecs.Get(w, player, component.TransformComponent); ok {
		toAnchor := g.Anchor.Sub(tr.Position)
		if l := toAnchor.Len(); l > 0 {
			n := toAnchor.Mul(1 / l)
			radial := n.Mul(body.Velocity.Dot(n))
			tangential := body.Velocity.Sub(radial)
			boost := g.ReleaseBoost
			if boost <= 0 {
				boost = 1
			}
			body.Velocity = tangential.Mul(boost)
		}
	}

	g.State = component.GrappleIdle
	g.RopeLength = 0
	body.Swinging = false

	if rl, ok := ecs.Get(w, ecsFirstOr(w, component.RopeLineComponent.ID()), component.RopeLineComponent); ok {
		rl.Visible = false
	}
	RequestCue(w, "grapple_release")
}

// airControl gives limited camera-relative steering while idle and
// airborne, deliberately weaker than swing thrust.
func (s *GrappleSystem) airControl(g *component.Grapple, body *component.Body, tr *component.Transform, in *component.InputState) {
	thrust := cameraRelativeInput(tr, in)
	if thrust.Len() == 0 {
		return
	}
	body.Velocity = body.Velocity.Add(thrust.Mul(g.AirAccel * s.dt))
}

// cameraRelativeInput maps the 2D move vector onto the body's
// horizontal forward/right basis, normalized to unit magnitude.
func cameraRelativeInput(tr *component.Transform, in *component.InputState) mgl64.Vec3 {
	dir := tr.Forward().Mul(in.MoveY).Add(tr.Right().Mul(in.MoveX))
	if l := dir.Len(); l > 0 {
		return dir.Mul(1 / l)
	}
	return mgl64.Vec3{}
}

// viewDir is the camera ray for a yaw/pitch pair; positive pitch looks
// up.
func viewDir(yaw, pitch float64) mgl64.Vec3 {
	cp := math.Cos(pitch)
	return mgl64.Vec3{
		math.Sin(yaw) * cp,
		math.Sin(pitch),
		math.Cos(yaw) * cp,
	}
}

func ecsFirstOr(w *ecs.World, id component.ID) ecs.Entity {
	if ent, ok := ecs.First(w, id); ok {
		return ent
	}
	return 0
}
