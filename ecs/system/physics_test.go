package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
	"github.com/softglow/duality/scene"
)

func TestPhysicsGravityAndGroundSnap(t *testing.T) {
	index := scene.NewIndex()
	w := newModeWorld(false)

	// A wide visible platform under the player.
	ground := &scene.Collider{Shape: scene.ShapeBox, Half: mgl64.Vec3{10, 0.5, 10}, Layer: scene.LayerWorld}
	index.Add(scene.NewObject("ground", mgl64.Vec3{0, -0.5, 0}, nil, ground))

	player := spawnPlayer(w, mgl64.Vec3{0, 2, 0})
	body, _ := ecs.Get(w, player, component.BodyComponent)
	tr, _ := ecs.Get(w, player, component.TransformComponent)

	sys := NewPhysicsSystem(index, testDT)
	sys.Update(w)
	if body.Velocity.Y() >= 0 {
		t.Fatalf("gravity must pull the body down")
	}
	if body.Grounded {
		t.Fatalf("body two units up must not be grounded yet")
	}

	runTicks(ecs.NewScheduler(sys), w, 120)
	if !body.Grounded {
		t.Fatalf("body should have landed")
	}
	if tr.Position.Y() != 0 {
		t.Fatalf("feet must snap to the surface, at y=%v", tr.Position.Y())
	}
	if body.Velocity.Y() != 0 {
		t.Fatalf("vertical velocity must zero on landing")
	}
}

func TestPhysicsDissolvedGroundDoesNotCarry(t *testing.T) {
	index := scene.NewIndex()
	w := newModeWorld(false)

	ground := &scene.Collider{Shape: scene.ShapeBox, Half: mgl64.Vec3{10, 0.5, 10}, Layer: scene.LayerWorld}
	obj := scene.NewObject("ground", mgl64.Vec3{0, -0.5, 0}, nil, ground)
	index.Add(obj)

	player := spawnPlayer(w, mgl64.Vec3{0, 2, 0})
	body, _ := ecs.Get(w, player, component.BodyComponent)
	tr, _ := ecs.Get(w, player, component.TransformComponent)

	sys := NewPhysicsSystem(index, testDT)
	runTicks(ecs.NewScheduler(sys), w, 120)
	if !body.Grounded {
		t.Fatalf("precondition: landed")
	}

	// Platform dissolves out from under the player.
	obj.SetCollidersEnabled(false)
	runTicks(ecs.NewScheduler(sys), w, 60)
	if body.Grounded {
		t.Fatalf("a dissolved platform must stop supporting bodies")
	}
	if tr.Position.Y() >= 0 {
		t.Fatalf("body should be falling, at y=%v", tr.Position.Y())
	}
}

func TestPhysicsNoIndexUsesOriginPlane(t *testing.T) {
	w := newModeWorld(false)
	player := spawnPlayer(w, mgl64.Vec3{0, 1, 0})
	body, _ := ecs.Get(w, player, component.BodyComponent)
	tr, _ := ecs.Get(w, player, component.TransformComponent)

	sys := NewPhysicsSystem(nil, testDT)
	runTicks(ecs.NewScheduler(sys), w, 120)
	if !body.Grounded || tr.Position.Y() != 0 {
		t.Fatalf("expected rest on the origin plane, y=%v grounded=%v", tr.Position.Y(), body.Grounded)
	}
}
