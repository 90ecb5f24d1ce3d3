package system

import (
	"github.com/softglow/duality/common"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
	"github.com/softglow/duality/scene"
)

// DefaultDissolveSpeed makes a full ramp take half a second.
const DefaultDissolveSpeed = 2.0

// DissolveSystem advances every in-flight per-subject visibility ramp
// by one tick. Ramps are plain state records, not goroutines; canceling
// one is just rewriting its target. While a global transition runs the
// duality system owns every subject's dissolve value and this system
// stands down.
type DissolveSystem struct {
	lib      *scene.Library
	template *scene.Material
	dt       float64
}

func NewDissolveSystem(lib *scene.Library, dt float64) *DissolveSystem {
	template, _ := lib.Resolve(scene.DissolveShader)
	return &DissolveSystem{lib: lib, template: template, dt: dt}
}

func (s *DissolveSystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.template == nil {
		return
	}
	if IsTransitioning(w) {
		return
	}

	ecs.ForEach(w, component.DissolveStateComponent, func(e ecs.Entity, ds *component.DissolveState) {
		if !ds.Transitioning {
			return
		}
		so, ok := ecs.Get(w, e, component.SceneObjectComponent)
		if !ok || so.Object == nil {
			ds.Transitioning = false
			return
		}

		target := 1.0
		if ds.TargetVisible {
			target = 0.0
		}
		speed := ds.Speed
		if speed <= 0 {
			speed = DefaultDissolveSpeed
		}
		ds.Current = common.MoveToward(ds.Current, target, speed*s.dt)
		applyDissolveValue(ds)

		if ds.Current == target {
			completeDissolve(s.lib, so.Object, ds)
		}
	})
}

// EnsureDissolveState lazily registers a subject on first encounter,
// initializing its dissolve value to whatever visibility the current
// mode implies for its affinity.
func EnsureDissolveState(w *ecs.World, e ecs.Entity, affinity component.Affinity, inShadow bool) *component.DissolveState {
	if ds, ok := ecs.Get(w, e, component.DissolveStateComponent); ok {
		return ds
	}
	visible := affinity.VisibleIn(inShadow)
	ds := &component.DissolveState{
		TargetVisible: visible,
		Speed:         DefaultDissolveSpeed,
	}
	if !visible {
		ds.Current = 1
	}
	if err := ecs.Add(w, e, component.DissolveStateComponent, ds); err != nil {
		return nil
	}
	return ds
}

// StartDissolve begins (or retargets) a subject's ramp toward the given
// visibility. A ramp already in flight is cancelled in place: the new
// one continues from the current dissolve value. Materials are
// instanced on demand and the renderer is re-enabled so a dissolve-out
// is actually seen.
func StartDissolve(lib *scene.Library, template *scene.Material, obj *scene.Object, ds *component.DissolveState, visible bool) {
	if lib == nil || template == nil || obj == nil || obj.Renderer == nil || ds == nil {
		return
	}
	if ds.Transitioning {
		if ds.TargetVisible == visible {
			return
		}
	} else {
		target := 1.0
		if visible {
			target = 0.0
		}
		if ds.Current == target {
			return
		}
	}

	if len(ds.Instanced) == 0 {
		ds.Originals = obj.Renderer.Materials
		ds.Instanced = make([]*scene.Material, 0, len(ds.Originals))
		for _, base := range ds.Originals {
			ds.Instanced = append(ds.Instanced, lib.Instance(base, template))
		}
	}
	obj.Renderer.Materials = ds.Instanced
	obj.Renderer.Enabled = true

	ds.TargetVisible = visible
	ds.Transitioning = true
	applyDissolveValue(ds)
}

// completeDissolve commits a finished ramp: restore-and-free on the way
// in, renderer-off on the way out, colliders in lockstep either way.
func completeDissolve(lib *scene.Library, obj *scene.Object, ds *component.DissolveState) {
	ds.Transitioning = false
	if ds.TargetVisible {
		if obj.Renderer != nil {
			obj.Renderer.Materials = ds.Originals
			obj.Renderer.Enabled = true
		}
		lib.Release(ds.Instanced...)
		ds.Instanced = nil
		ds.Originals = nil
	} else if obj.Renderer != nil {
		obj.Renderer.Enabled = false
	}
	obj.SetCollidersEnabled(ds.TargetVisible)
}

func applyDissolveValue(ds *component.DissolveState) {
	for _, m := range ds.Instanced {
		m.SetFloat(scene.DissolveProperty, ds.Current)
	}
}
