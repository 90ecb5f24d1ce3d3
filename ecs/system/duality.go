package system

import (
	"fmt"

	"github.com/softglow/duality/common"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
	"github.com/softglow/duality/scene"
)

// TriggerDimensionSwitch asks for a world-wide mode flip by spawning a
// one-shot request entity. The duality system ignores it while a
// transition is already running.
func TriggerDimensionSwitch(w *ecs.World) {
	if w == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.ModeSwitchRequestComponent, &component.ModeSwitchRequest{})
}

// IsInShadowMode reads the current stable mode. Safe on any world,
// including one whose duality system is disabled: it reports the
// last-known value and never fails.
func IsInShadowMode(w *ecs.World) bool {
	if w == nil {
		return false
	}
	if _, wm, ok := worldMode(w); ok {
		return wm.InShadow
	}
	return false
}

// IsTransitioning reports whether a global transition is in flight.
func IsTransitioning(w *ecs.World) bool {
	if w == nil {
		return false
	}
	if _, wm, ok := worldMode(w); ok {
		return wm.Transitioning
	}
	return false
}

func worldMode(w *ecs.World) (ecs.Entity, *component.WorldMode, bool) {
	ent, ok := ecs.First(w, component.WorldModeComponent.ID())
	if !ok {
		return 0, nil, false
	}
	wm, ok := ecs.Get(w, ent, component.WorldModeComponent)
	if !ok {
		return 0, nil, false
	}
	return ent, wm, true
}

// DualitySystem orchestrates the world-wide light/shadow flip: it owns
// WorldMode, drives the crossfade dissolve over every tracked light and
// shadow object, crossfades the two mode lights, and snaps everything
// binary on completion. If the dissolve shader template cannot be
// resolved the system disables itself for the session; queries keep
// answering, commands do nothing.
type DualitySystem struct {
	lib      *scene.Library
	template *scene.Material
	dt       float64

	checked bool
}

func NewDualitySystem(lib *scene.Library, dt float64) *DualitySystem {
	template, _ := lib.Resolve(scene.DissolveShader)
	return &DualitySystem{lib: lib, template: template, dt: dt}
}

func (s *DualitySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	_, wm, ok := worldMode(w)
	if !ok {
		return
	}

	if !s.checked {
		s.checked = true
		wm.Enabled = s.template != nil
		if !wm.Enabled {
			fmt.Printf("duality: dissolve shader %q not found; dimension switching disabled\n", scene.DissolveShader)
		}
	}

	requested := s.consumeRequests(w)

	if rtEnt, rt, ok := s.runtime(w); ok {
		s.advance(w, wm, rtEnt, rt)
		return
	}

	if !requested || !wm.Enabled || wm.Transitioning {
		return
	}
	s.begin(w, wm)
}

func (s *DualitySystem) consumeRequests(w *ecs.World) bool {
	reqs := ecs.Query(w, component.ModeSwitchRequestComponent.ID())
	for _, ent := range reqs {
		ecs.DestroyEntity(w, ent)
	}
	return len(reqs) > 0
}

func (s *DualitySystem) runtime(w *ecs.World) (ecs.Entity, *component.ModeTransition, bool) {
	ent, ok := ecs.First(w, component.ModeTransitionComponent.ID())
	if !ok {
		return 0, nil, false
	}
	rt, ok := ecs.Get(w, ent, component.ModeTransitionComponent)
	return ent, rt, ok
}

// begin activates every tracked object so the crossfade is visible,
// swaps dissolve instances in, and lights both worlds at once.
func (s *DualitySystem) begin(w *ecs.World, wm *component.WorldMode) {
	wm.Transitioning = true

	to := 1.0
	if wm.InShadow {
		to = 0.0
	}
	rtEnt := ecs.CreateEntity(w)
	_ = ecs.Add(w, rtEnt, component.ModeTransitionComponent, &component.ModeTransition{
		From: wm.Blend,
		To:   to,
	})

	s.forEachSubject(w, wm, func(e ecs.Entity, affinity component.Affinity, obj *scene.Object, ds *component.DissolveState) {
		ds.Transitioning = false // the global fade owns the value now
		if len(ds.Instanced) == 0 {
			ds.Originals = obj.Renderer.Materials
			ds.Instanced = make([]*scene.Material, 0, len(ds.Originals))
			for _, base := range ds.Originals {
				ds.Instanced = append(ds.Instanced, s.lib.Instance(base, s.template))
			}
		}
		obj.Renderer.Materials = ds.Instanced
		obj.Renderer.Enabled = true
		obj.SetCollidersEnabled(true)
		s.applyGroupValue(wm.Blend, affinity, ds)
	})

	ecs.ForEach(w, component.ModeLightComponent, func(_ ecs.Entity, ml *component.ModeLight) {
		if ml.Light != nil {
			ml.Light.Enabled = true
		}
	})
	ecs.ForEach(w, component.ModeVolumeComponent, func(_ ecs.Entity, mv *component.ModeVolume) {
		if mv.Volume != nil {
			mv.Volume.Enabled = true
		}
	})

	RequestCue(w, "mode_switch")
}

func (s *DualitySystem) advance(w *ecs.World, wm *component.WorldMode, rtEnt ecs.Entity, rt *component.ModeTransition) {
	duration := wm.Duration
	if duration <= 0 {
		duration = 1
	}
	rt.Elapsed += s.dt
	t := common.Clamp01(rt.Elapsed / duration)
	wm.Blend = common.Lerp(rt.From, rt.To, t)

	s.forEachSubject(w, wm, func(_ ecs.Entity, affinity component.Affinity, _ *scene.Object, ds *component.DissolveState) {
		s.applyGroupValue(wm.Blend, affinity, ds)
	})

	ecs.ForEach(w, component.ModeLightComponent, func(_ ecs.Entity, ml *component.ModeLight) {
		if ml.Light == nil {
			return
		}
		switch ml.Affinity {
		case component.AffinityShadow:
			ml.Light.Intensity = ml.BaseIntensity * wm.Blend
		default:
			ml.Light.Intensity = ml.BaseIntensity * (1 - wm.Blend)
		}
	})

	if t >= 1 {
		s.complete(w, wm, rtEnt, rt)
	}
}

// complete flips the stable mode exactly once, snaps every binary
// state, and hands all instanced materials back to keep instance growth
// bounded.
func (s *DualitySystem) complete(w *ecs.World, wm *component.WorldMode, rtEnt ecs.Entity, rt *component.ModeTransition) {
	wm.InShadow = rt.To == 1
	wm.Blend = rt.To
	wm.Transitioning = false
	ecs.DestroyEntity(w, rtEnt)

	s.forEachSubject(w, wm, func(_ ecs.Entity, affinity component.Affinity, obj *scene.Object, ds *component.DissolveState) {
		visible := affinity.VisibleIn(wm.InShadow)
		if obj.Renderer != nil {
			obj.Renderer.Materials = ds.Originals
			obj.Renderer.Enabled = visible
		}
		s.lib.Release(ds.Instanced...)
		ds.Instanced = nil
		ds.Originals = nil
		obj.SetCollidersEnabled(visible)
		ds.TargetVisible = visible
		ds.Transitioning = false
		ds.Affected = false
		if visible {
			ds.Current = 0
		} else {
			ds.Current = 1
		}
	})

	ecs.ForEach(w, component.ModeLightComponent, func(_ ecs.Entity, ml *component.ModeLight) {
		if ml.Light == nil {
			return
		}
		active := ml.Affinity.VisibleIn(wm.InShadow)
		ml.Light.Enabled = active
		if active {
			ml.Light.Intensity = ml.BaseIntensity
		} else {
			ml.Light.Intensity = 0
		}
	})
	ecs.ForEach(w, component.ModeVolumeComponent, func(_ ecs.Entity, mv *component.ModeVolume) {
		if mv.Volume != nil {
			mv.Volume.Enabled = mv.Affinity.VisibleIn(wm.InShadow)
		}
	})
}

// forEachSubject visits every tracked light/shadow object, registering
// dissolve state lazily on first encounter. Neutral objects are not
// part of the global fade.
func (s *DualitySystem) forEachSubject(w *ecs.World, wm *component.WorldMode, fn func(ecs.Entity, component.Affinity, *scene.Object, *component.DissolveState)) {
	ecs.ForEach2(w, component.SceneObjectComponent, component.AffinityComponent, func(e ecs.Entity, so *component.SceneObject, affinity *component.Affinity) {
		if *affinity == component.AffinityNeutral || so.Object == nil || so.Object.Renderer == nil {
			return
		}
		ds := EnsureDissolveState(w, e, *affinity, wm.InShadow)
		if ds == nil {
			return
		}
		fn(e, *affinity, so.Object, ds)
	})
}

// applyGroupValue writes one subject's share of the crossfade: the
// light group dissolves with the blend, the shadow group against it, so
// the two always sum to one.
func (s *DualitySystem) applyGroupValue(blend float64, affinity component.Affinity, ds *component.DissolveState) {
	if affinity == component.AffinityShadow {
		ds.Current = 1 - blend
	} else {
		ds.Current = blend
	}
	applyDissolveValue(ds)
}
