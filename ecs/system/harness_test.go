package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
	"github.com/softglow/duality/scene"
)

const testDT = 1.0 / 60.0

func newTestLibrary() *scene.Library {
	return scene.NewLibrary(&scene.Material{
		Name:   "dissolve",
		Shader: scene.DissolveShader,
		Floats: map[string]float64{scene.DissolveProperty: 0},
	})
}

func newModeWorld(inShadow bool) *ecs.World {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.WorldModeComponent, &component.WorldMode{
		InShadow: inShadow,
		Blend:    blendFor(inShadow),
		Enabled:  true,
		Duration: 1.0,
	})
	return w
}

func blendFor(inShadow bool) float64 {
	if inShadow {
		return 1
	}
	return 0
}

// spawnSubject creates a tracked object with one solid collider and one
// detect trigger, snapped to the visibility its affinity implies for
// the starting mode.
func spawnSubject(w *ecs.World, index *scene.Index, name string, affinity component.Affinity, pos mgl64.Vec3, inShadow bool) (ecs.Entity, *scene.Object) {
	base := &scene.Material{Name: name, Shader: "duality/lit", Floats: map[string]float64{}}
	renderer := &scene.Renderer{Enabled: true, Materials: []*scene.Material{base}}
	solid := &scene.Collider{Shape: scene.ShapeSphere, Radius: 1, Layer: scene.LayerWorld | scene.LayerGrapple}
	detect := &scene.Collider{Shape: scene.ShapeSphere, Radius: 1, Layer: scene.LayerDetect, Trigger: true}
	obj := scene.NewObject(name, pos, renderer, solid, detect)
	if index != nil {
		index.Add(obj)
	}

	e := ecs.CreateEntity(w)
	obj.UserData = e
	_ = ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: pos})
	_ = ecs.Add(w, e, component.SceneObjectComponent, &component.SceneObject{Object: obj})
	aff := affinity
	_ = ecs.Add(w, e, component.AffinityComponent, &aff)

	visible := affinity.VisibleIn(inShadow)
	ds := &component.DissolveState{TargetVisible: visible, Speed: DefaultDissolveSpeed}
	if !visible {
		ds.Current = 1
		renderer.Enabled = false
	}
	obj.SetCollidersEnabled(visible)
	_ = ecs.Add(w, e, component.DissolveStateComponent, ds)
	return e, obj
}

func spawnPlayer(w *ecs.World, pos mgl64.Vec3) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{})
	_ = ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: pos})
	_ = ecs.Add(w, e, component.BodyComponent, &component.Body{Radius: 0.35, Height: 1.8, UseGravity: true})
	_ = ecs.Add(w, e, component.InputStateComponent, &component.InputState{})
	_ = ecs.Add(w, e, component.PlayerControllerComponent, &component.PlayerController{
		MoveSpeed:    6,
		JumpSpeed:    8,
		StandHeight:  1.8,
		CrouchHeight: 1.0,
		CrouchRate:   12,
	})
	_ = ecs.Add(w, e, component.CameraRigComponent, &component.CameraRig{
		SmoothRate: 18,
		SwingRate:  30,
		EyeOffset:  1.6,
		EyeStand:   1.6,
		EyeCrouch:  0.9,
	})
	_ = ecs.Add(w, e, component.GrappleComponent, &component.Grapple{
		MaxRange:      25,
		CastRadius:    0.4,
		Layer:         scene.LayerGrapple,
		SwingAccel:    10,
		AirAccel:      4,
		SpringAccel:   30,
		MaxSwingSpeed: 18,
		ReleaseBoost:  1.15,
	})
	return e
}

func spawnRopeLine(w *ecs.World) ecs.Entity {
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.RopeLineComponent, &component.RopeLine{Width: 0.05})
	return e
}

func dissolveOf(w *ecs.World, e ecs.Entity) *component.DissolveState {
	ds, _ := ecs.Get(w, e, component.DissolveStateComponent)
	return ds
}

func solidCollider(obj *scene.Object) *scene.Collider {
	for _, c := range obj.Colliders {
		if !c.Trigger {
			return c
		}
	}
	return nil
}

func runTicks(sched *ecs.Scheduler, w *ecs.World, n int) {
	for i := 0; i < n; i++ {
		sched.Update(w)
	}
}
