package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
)

func locomotionSetup() (*ecs.World, *LocomotionSystem, ecs.Entity) {
	w := newModeWorld(false)
	player := spawnPlayer(w, mgl64.Vec3{})
	return w, NewLocomotionSystem(testDT), player
}

func TestLocomotionMoveIsDirectVelocity(t *testing.T) {
	w, sys, player := locomotionSetup()
	in, _ := ecs.Get(w, player, component.InputStateComponent)
	body, _ := ecs.Get(w, player, component.BodyComponent)
	pc, _ := ecs.Get(w, player, component.PlayerControllerComponent)

	body.Grounded = true
	in.MoveY = 1
	sys.Update(w)

	// Yaw zero: forward is +Z. Horizontal speed is the full move speed
	// on the very first tick, no acceleration ramp.
	want := mgl64.Vec3{0, 0, pc.MoveSpeed}
	if body.Velocity.Sub(want).Len() > 1e-9 {
		t.Fatalf("expected direct velocity %v, got %v", want, body.Velocity)
	}

	in.MoveY = 0
	sys.Update(w)
	if body.Velocity.Len() != 0 {
		t.Fatalf("releasing input must stop horizontal motion at once, got %v", body.Velocity)
	}
}

func TestLocomotionDiagonalIsNotFaster(t *testing.T) {
	w, sys, player := locomotionSetup()
	in, _ := ecs.Get(w, player, component.InputStateComponent)
	body, _ := ecs.Get(w, player, component.BodyComponent)
	pc, _ := ecs.Get(w, player, component.PlayerControllerComponent)

	body.Grounded = true
	in.MoveX = 1
	in.MoveY = 1
	sys.Update(w)
	if speed := body.Velocity.Len(); math.Abs(speed-pc.MoveSpeed) > 1e-9 {
		t.Fatalf("diagonal speed %v must equal move speed %v", speed, pc.MoveSpeed)
	}
}

func TestLocomotionPitchClampAndSmoothing(t *testing.T) {
	w, sys, player := locomotionSetup()
	in, _ := ecs.Get(w, player, component.InputStateComponent)
	rig, _ := ecs.Get(w, player, component.CameraRigComponent)

	// Crank the look input far past vertical. The target clamps, and
	// the visible pitch approaches it smoothly from below.
	in.LookY = 10
	sys.Update(w)
	if rig.TargetPitch != math.Pi/2 {
		t.Fatalf("target pitch must clamp to +pi/2, got %v", rig.TargetPitch)
	}
	if rig.Pitch >= rig.TargetPitch {
		t.Fatalf("pitch must lag the target on the first tick")
	}

	in.LookY = 0
	prev := rig.Pitch
	for i := 0; i < 300; i++ {
		sys.Update(w)
		if rig.Pitch < prev {
			t.Fatalf("pitch approach must be monotonic")
		}
		prev = rig.Pitch
	}
	if math.Abs(rig.Pitch-rig.TargetPitch) > 1e-3 {
		t.Fatalf("pitch should have converged, at %v", rig.Pitch)
	}
}

func TestLocomotionYawUnclamped(t *testing.T) {
	w, sys, player := locomotionSetup()
	in, _ := ecs.Get(w, player, component.InputStateComponent)
	tr, _ := ecs.Get(w, player, component.TransformComponent)

	in.LookX = 1
	for i := 0; i < 10; i++ {
		sys.Update(w)
	}
	if tr.Yaw != 10 {
		t.Fatalf("yaw accumulates without clamping, got %v", tr.Yaw)
	}
}

func TestLocomotionJumpRequiresGround(t *testing.T) {
	w, sys, player := locomotionSetup()
	in, _ := ecs.Get(w, player, component.InputStateComponent)
	body, _ := ecs.Get(w, player, component.BodyComponent)
	pc, _ := ecs.Get(w, player, component.PlayerControllerComponent)

	in.JumpPressed = true
	body.Grounded = false
	sys.Update(w)
	if body.Velocity.Y() != 0 {
		t.Fatalf("airborne jump press must do nothing")
	}

	body.Grounded = true
	body.Velocity[1] = -3 // landing remnant must not eat the impulse
	sys.Update(w)
	if body.Velocity.Y() != pc.JumpSpeed {
		t.Fatalf("expected jump impulse %v, got %v", pc.JumpSpeed, body.Velocity.Y())
	}
}

func TestLocomotionCrouchBlendsHeight(t *testing.T) {
	w, sys, player := locomotionSetup()
	in, _ := ecs.Get(w, player, component.InputStateComponent)
	body, _ := ecs.Get(w, player, component.BodyComponent)
	pc, _ := ecs.Get(w, player, component.PlayerControllerComponent)
	rig, _ := ecs.Get(w, player, component.CameraRigComponent)

	in.CrouchHeld = true
	sys.Update(w)
	if body.Height >= pc.StandHeight || body.Height <= pc.CrouchHeight {
		t.Fatalf("crouch must blend, not snap: height %v", body.Height)
	}

	runLoco := func(n int) {
		for i := 0; i < n; i++ {
			sys.Update(w)
		}
	}
	runLoco(300)
	if math.Abs(body.Height-pc.CrouchHeight) > 1e-3 {
		t.Fatalf("height should converge to crouch, at %v", body.Height)
	}
	if math.Abs(rig.EyeOffset-rig.EyeCrouch) > 1e-3 {
		t.Fatalf("eye offset should converge with the crouch, at %v", rig.EyeOffset)
	}

	in.CrouchHeld = false
	runLoco(300)
	if math.Abs(body.Height-pc.StandHeight) > 1e-3 {
		t.Fatalf("height should recover to standing, at %v", body.Height)
	}
}

func TestLocomotionPreservesAirborneMomentum(t *testing.T) {
	w, sys, player := locomotionSetup()
	in, _ := ecs.Get(w, player, component.InputStateComponent)
	body, _ := ecs.Get(w, player, component.BodyComponent)

	// A swing exit left the body flying. Neither idle input nor held
	// input may direct-set that velocity away mid-air.
	body.Grounded = false
	body.Velocity = mgl64.Vec3{12, 2, 0}
	sys.Update(w)
	if body.Velocity != (mgl64.Vec3{12, 2, 0}) {
		t.Fatalf("airborne velocity must carry with no input, got %v", body.Velocity)
	}

	in.MoveY = 1
	sys.Update(w)
	if body.Velocity != (mgl64.Vec3{12, 2, 0}) {
		t.Fatalf("airborne input must not overwrite momentum, got %v", body.Velocity)
	}
}

func TestLocomotionCedesToSwing(t *testing.T) {
	w, sys, player := locomotionSetup()
	in, _ := ecs.Get(w, player, component.InputStateComponent)
	body, _ := ecs.Get(w, player, component.BodyComponent)

	body.Swinging = true
	body.Velocity = mgl64.Vec3{3, 1, 2}
	in.MoveY = 1
	in.JumpPressed = true
	body.Grounded = true

	sys.Update(w)
	if body.Velocity != (mgl64.Vec3{3, 1, 2}) {
		t.Fatalf("locomotion must not touch velocity while swinging, got %v", body.Velocity)
	}
}
