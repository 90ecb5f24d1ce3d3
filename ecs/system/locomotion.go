package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/softglow/duality/common"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
)

const pitchLimit = math.Pi / 2

// LocomotionSystem is the ground controller: direct horizontal
// velocity while grounded, clamped smoothed pitch, jump, and the
// crouch blend. Airborne it leaves velocity alone, so swing exits and
// the grapple's air control carry through; while the grapple swings
// the body it cedes velocity ownership entirely.
type LocomotionSystem struct {
	dt float64
}

func NewLocomotionSystem(dt float64) *LocomotionSystem {
	return &LocomotionSystem{dt: dt}
}

func (s *LocomotionSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.ID())
	if !ok {
		return
	}
	pc, ok := ecs.Get(w, player, component.PlayerControllerComponent)
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

	// Yaw is applied directly, unclamped. Pitch accumulates into a
	// clamped target and the visible pitch chases it exponentially,
	// faster while swinging so fast anchor swings stay responsive.
	tr.Yaw += in.LookX
	rig.TargetPitch = common.Clamp(rig.TargetPitch+in.LookY, -pitchLimit, pitchLimit)
	rate := rig.SmoothRate
	if body.Swinging {
		rate = rig.SwingRate
	}
	rig.Pitch = common.Damp(rig.Pitch, rig.TargetPitch, rate, s.dt)

	// Crouch: capsule height and eye offset chase a binary target.
	targetHeight := pc.StandHeight
	targetEye := rig.EyeStand
	if in.CrouchHeld {
		targetHeight = pc.CrouchHeight
		targetEye = rig.EyeCrouch
	}
	body.Height = common.Damp(body.Height, targetHeight, pc.CrouchRate, s.dt)
	rig.EyeOffset = common.Damp(rig.EyeOffset, targetEye, pc.CrouchRate, s.dt)

	if body.Swinging || !body.Grounded {
		return
	}

	move := tr.Forward().Mul(in.MoveY).Add(tr.Right().Mul(in.MoveX))
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}
	horizontal := move.Mul(pc.MoveSpeed)
	body.Velocity = mgl64.Vec3{horizontal.X(), body.Velocity.Y(), horizontal.Z()}

	if in.JumpPressed {
		body.Velocity[1] = 0
		body.Velocity[1] += pc.JumpSpeed
	}
}
