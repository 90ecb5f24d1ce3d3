package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
	"github.com/softglow/duality/ecs/system"
	"github.com/softglow/duality/prefabs"
	"github.com/softglow/duality/scene"
)

const (
	defaultTransitionSeconds = 1.5
	defaultDissolveSpeed     = system.DefaultDissolveSpeed
)

// buildResult is everything the game shell needs from one scene build.
type buildResult struct {
	world  *ecs.World
	index  *scene.Index
	player ecs.Entity
}

func vec3(v prefabs.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[1], v[2]}
}

// buildWorld turns a scene spec into the ECS world and the scene
// ownership index. The index is built once here; systems never walk
// the object graph afterwards.
func buildWorld(spec *prefabs.SceneSpec) (*buildResult, error) {
	if spec == nil {
		return nil, fmt.Errorf("build: nil scene spec")
	}
	w := ecs.NewWorld()
	index := scene.NewIndex()

	duration := spec.Mode.TransitionSeconds
	if duration <= 0 {
		duration = defaultTransitionSeconds
	}
	dissolveSpeed := spec.Mode.DissolveSpeed
	if dissolveSpeed <= 0 {
		dissolveSpeed = defaultDissolveSpeed
	}

	modeEnt := ecs.CreateEntity(w)
	if err := ecs.Add(w, modeEnt, component.WorldModeComponent, &component.WorldMode{
		Enabled:  true,
		Duration: duration,
	}); err != nil {
		return nil, fmt.Errorf("build: world mode: %w", err)
	}

	for _, os := range spec.Objects {
		if err := buildObject(w, index, os, dissolveSpeed); err != nil {
			return nil, err
		}
	}
	for _, ls := range spec.Lights {
		buildLight(w, ls)
	}
	for _, vs := range spec.Volumes {
		buildVolume(w, vs)
	}
	for _, zs := range spec.Zones {
		buildZone(w, zs)
	}
	for _, gs := range spec.Guides {
		if err := buildGuide(w, index, gs); err != nil {
			return nil, err
		}
	}

	player, err := buildPlayer(w, spec.Player)
	if err != nil {
		return nil, err
	}

	// Rope renderable, hidden until the first swing.
	ropeEnt := ecs.CreateEntity(w)
	_ = ecs.Add(w, ropeEnt, component.RopeLineComponent, &component.RopeLine{Width: 0.05})

	return &buildResult{world: w, index: index, player: player}, nil
}

func buildObject(w *ecs.World, index *scene.Index, spec prefabs.ObjectSpec, dissolveSpeed float64) error {
	affinity, err := component.ParseAffinity(spec.Affinity)
	if err != nil {
		return fmt.Errorf("build: object %q: %w", spec.Name, err)
	}

	base := &scene.Material{
		Name:   spec.Name,
		Shader: "duality/lit",
		Floats: map[string]float64{scene.MetallicProperty: 0, scene.SmoothnessProperty: 0.5},
	}
	renderer := &scene.Renderer{Enabled: true, Materials: []*scene.Material{base}}

	solidLayer := scene.LayerWorld
	if spec.Grappleable {
		solidLayer |= scene.LayerGrapple
	}
	var solid, detect *scene.Collider
	if spec.Shape == "sphere" {
		solid = &scene.Collider{Shape: scene.ShapeSphere, Radius: spec.Radius, Layer: solidLayer}
		detect = &scene.Collider{Shape: scene.ShapeSphere, Radius: spec.Radius, Layer: scene.LayerDetect, Trigger: true}
	} else {
		half := vec3(spec.Size).Mul(0.5)
		solid = &scene.Collider{Shape: scene.ShapeBox, Half: half, Layer: solidLayer}
		detect = &scene.Collider{Shape: scene.ShapeBox, Half: half, Layer: scene.LayerDetect, Trigger: true}
	}
	obj := scene.NewObject(spec.Name, vec3(spec.Position), renderer, solid, detect)
	index.Add(obj)

	e := ecs.CreateEntity(w)
	obj.UserData = e
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: obj.Position}); err != nil {
		return fmt.Errorf("build: object %q: %w", spec.Name, err)
	}
	_ = ecs.Add(w, e, component.SceneObjectComponent, &component.SceneObject{Object: obj})
	aff := affinity
	_ = ecs.Add(w, e, component.AffinityComponent, &aff)

	// Snap the initial visibility for the starting mode (light) instead
	// of fading in on the first frame.
	visible := affinity.VisibleIn(false)
	ds := &component.DissolveState{TargetVisible: visible, Speed: dissolveSpeed}
	if !visible {
		ds.Current = 1
		renderer.Enabled = false
	}
	obj.SetCollidersEnabled(visible)
	_ = ecs.Add(w, e, component.DissolveStateComponent, ds)
	return nil
}

func buildLight(w *ecs.World, spec prefabs.LightSpec) {
	affinity, _ := component.ParseAffinity(spec.Affinity)
	intensity := spec.Intensity
	if intensity <= 0 {
		intensity = 1
	}
	light := &scene.Light{Name: spec.Name}
	if affinity.VisibleIn(false) {
		light.Enabled = true
		light.Intensity = intensity
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.ModeLightComponent, &component.ModeLight{
		Affinity:      affinity,
		Light:         light,
		BaseIntensity: intensity,
	})
}

func buildVolume(w *ecs.World, spec prefabs.VolumeSpec) {
	affinity, _ := component.ParseAffinity(spec.Affinity)
	vol := &scene.Volume{Name: spec.Name, Enabled: affinity.VisibleIn(false)}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.ModeVolumeComponent, &component.ModeVolume{Affinity: affinity, Volume: vol})
}

func buildZone(w *ecs.World, spec prefabs.ZoneSpec) {
	active := true
	if spec.Active != nil {
		active = *spec.Active
	}
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: vec3(spec.Position)})
	_ = ecs.Add(w, e, component.RevealZoneComponent, &component.RevealZone{
		Radius: spec.Radius,
		Layer:  scene.LayerDetect,
		Active: active,
	})
}

// guideDetectRadius is the body size of a patrolling agent's own
// detect collider.
const guideDetectRadius = 0.6

func buildGuide(w *ecs.World, index *scene.Index, spec prefabs.GuideSpec) error {
	affinity, err := component.ParseAffinity(spec.Affinity)
	if err != nil {
		return fmt.Errorf("build: guide %q: %w", spec.Name, err)
	}
	policy, err := component.ParsePatrolPolicy(spec.Policy)
	if err != nil {
		return fmt.Errorf("build: guide %q: %w", spec.Name, err)
	}

	start := mgl64.Vec3{}
	if len(spec.Waypoints) > 0 {
		start = vec3(spec.Waypoints[0])
	}
	waypoints := make([]mgl64.Vec3, 0, len(spec.Waypoints))
	for _, wp := range spec.Waypoints {
		waypoints = append(waypoints, vec3(wp))
	}

	moveSpeed := spec.MoveSpeed
	if moveSpeed <= 0 {
		moveSpeed = 2
	}
	circle := spec.CircleRadius
	if circle <= 0 {
		circle = 3
	}

	e := ecs.CreateEntity(w)

	// The agent's own presence in the index: detect layer only, solid
	// (not a trigger) so deactivating the guide switches it off too.
	detect := &scene.Collider{Shape: scene.ShapeSphere, Radius: guideDetectRadius, Layer: scene.LayerDetect}
	obj := scene.NewObject(spec.Name, start, nil, detect)
	obj.UserData = e
	obj.SetCollidersEnabled(affinity.VisibleIn(false))
	index.Add(obj)

	_ = ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: start})
	aff := affinity
	_ = ecs.Add(w, e, component.AffinityComponent, &aff)
	_ = ecs.Add(w, e, component.SceneObjectComponent, &component.SceneObject{Object: obj})
	_ = ecs.Add(w, e, component.PatrolComponent, &component.Patrol{
		Waypoints:    waypoints,
		Forward:      true,
		Policy:       policy,
		MoveSpeed:    moveSpeed,
		DwellSeconds: spec.DwellSeconds,
		ActiveInMode: affinity.VisibleIn(false),
		CircleRadius: circle,
		ScriptPath:   spec.Script,
	})
	return nil
}

func buildPlayer(w *ecs.World, spec prefabs.PlayerSpec) (ecs.Entity, error) {
	moveSpeed := orDefault(spec.MoveSpeed, 6)
	standHeight := orDefault(spec.StandHeight, 1.8)

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("build: player: %w", err)
	}
	_ = ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: vec3(spec.Spawn)})
	_ = ecs.Add(w, e, component.BodyComponent, &component.Body{
		Radius:     0.35,
		Height:     standHeight,
		UseGravity: true,
	})
	_ = ecs.Add(w, e, component.InputStateComponent, &component.InputState{})
	_ = ecs.Add(w, e, component.PlayerControllerComponent, &component.PlayerController{
		MoveSpeed:    moveSpeed,
		JumpSpeed:    orDefault(spec.JumpSpeed, 8),
		StandHeight:  standHeight,
		CrouchHeight: orDefault(spec.CrouchHeight, 1.0),
		CrouchRate:   orDefault(spec.CrouchRate, 12),
	})
	eyeStand := standHeight * 0.9
	_ = ecs.Add(w, e, component.CameraRigComponent, &component.CameraRig{
		SmoothRate: 18,
		SwingRate:  30,
		EyeOffset:  eyeStand,
		EyeStand:   eyeStand,
		EyeCrouch:  orDefault(spec.CrouchHeight, 1.0) * 0.9,
	})
	_ = ecs.Add(w, e, component.GrappleComponent, &component.Grapple{
		MaxRange:      orDefault(spec.GrappleRange, 25),
		CastRadius:    orDefault(spec.GrappleRadius, 0.4),
		Layer:         scene.LayerGrapple,
		SwingAccel:    orDefault(spec.SwingAccel, 10),
		AirAccel:      orDefault(spec.AirAccel, 4),
		SpringAccel:   orDefault(spec.SpringAccel, 30),
		MaxSwingSpeed: orDefault(spec.MaxSwingSpeed, 18),
		ReleaseBoost:  orDefault(spec.ReleaseBoost, 1.15),
	})
	return e, nil
}

func orDefault(v, fallback float64) float64 {
	if v <= 0 {
		return fallback
	}
	return v
}
