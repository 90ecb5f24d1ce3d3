package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
	"github.com/softglow/duality/scene"
)

// areaReveal is the shared local-override machinery: a polled
// membership set per owner (a zone or a guide) with the invert rule
// applied on entry and the mode-derived default restored on exit.
// Exit restoration happens on the poll that first observes the subject
// absent, so it can lag one step behind a concurrent global flip. That
// ordering is contractual.
type areaReveal struct {
	lib      *scene.Library
	template *scene.Material
	index    *scene.Index

	members map[ecs.Entity]map[ecs.Entity]bool
}

func newAreaReveal(lib *scene.Library, index *scene.Index) areaReveal {
	template, _ := lib.Resolve(scene.DissolveShader)
	return areaReveal{
		lib:      lib,
		template: template,
		index:    index,
		members:  make(map[ecs.Entity]map[ecs.Entity]bool),
	}
}

func (a *areaReveal) ready() bool {
	return a != nil && a.template != nil && a.index != nil
}

// reconcile is one owner's polling pass: apply the override rule to
// current members, restore anything observed absent.
func (a *areaReveal) reconcile(w *ecs.World, wm *component.WorldMode, owner ecs.Entity, center mgl64.Vec3, radius float64, layer scene.Layer, active bool) {
	cur := make(map[ecs.Entity]bool)
	if active && radius > 0 {
		mask := layer
		if mask == 0 {
			mask = scene.LayerDetect
		}
		for _, obj := range a.index.OverlapSphere(center, radius, mask) {
			subject, ok := obj.UserData.(ecs.Entity)
			if !ok || subject == owner || !ecs.IsAlive(w, subject) {
				continue
			}
			affinity, ok := ecs.Get(w, subject, component.AffinityComponent)
			if !ok || *affinity == component.AffinityNeutral {
				continue
			}
			cur[subject] = true

			ds := EnsureDissolveState(w, subject, *affinity, wm.InShadow)
			if ds == nil {
				continue
			}
			// The override inverts the mode-derived default: an object
			// of the other world is revealed, one of this world is
			// hidden. Applying is idempotent while the target matches,
			// so re-checking every step only re-triggers on an actual
			// change (entry, or a mode flip while still inside).
			desired := !affinity.VisibleIn(wm.InShadow)
			StartDissolve(a.lib, a.template, obj, ds, desired)
			ds.Affected = true
		}
	}

	for subject := range a.members[owner] {
		if !cur[subject] {
			a.restore(w, wm, subject)
		}
	}
	a.members[owner] = cur
}

// restore hands a subject back to its mode-derived default visibility.
// The target is recomputed against the mode at restore time, not simply
// inverted from the override.
func (a *areaReveal) restore(w *ecs.World, wm *component.WorldMode, subject ecs.Entity) {
	if !ecs.IsAlive(w, subject) {
		return
	}
	ds, ok := ecs.Get(w, subject, component.DissolveStateComponent)
	if !ok || !ds.Affected {
		return
	}
	so, okObj := ecs.Get(w, subject, component.SceneObjectComponent)
	affinity, okAff := ecs.Get(w, subject, component.AffinityComponent)
	if !okObj || !okAff || so.Object == nil {
		return
	}
	StartDissolve(a.lib, a.template, so.Object, ds, affinity.VisibleIn(wm.InShadow))
	ds.Affected = false
}

// dropOwner releases every member of an owner that no longer exists.
func (a *areaReveal) dropOwner(w *ecs.World, wm *component.WorldMode, owner ecs.Entity) {
	for subject := range a.members[owner] {
		a.restore(w, wm, subject)
	}
	delete(a.members, owner)
}

// RevealZoneSystem applies volume-scoped visibility overrides for every
// static reveal zone in the scene.
type RevealZoneSystem struct {
	reveal areaReveal
}

func NewRevealZoneSystem(lib *scene.Library, index *scene.Index) *RevealZoneSystem {
	return &RevealZoneSystem{reveal: newAreaReveal(lib, index)}
}

func (s *RevealZoneSystem) Update(w *ecs.World) {
	if s == nil || w == nil || !s.reveal.ready() {
		return
	}
	_, wm, ok := worldMode(w)
	if !ok || wm.Transitioning {
		// The global fade is atomic; zones reevaluate after it commits.
		return
	}

	ecs.ForEach2(w, component.RevealZoneComponent, component.TransformComponent, func(zoneEnt ecs.Entity, zone *component.RevealZone, tr *component.Transform) {
		s.reveal.reconcile(w, wm, zoneEnt, tr.Position, zone.Radius, zone.Layer, zone.Active)
	})

	// Zones that disappeared entirely still owe their members a restore.
	for owner := range s.reveal.members {
		if ecs.IsAlive(w, owner) && ecs.Has(w, owner, component.RevealZoneComponent) {
			continue
		}
		s.reveal.dropOwner(w, wm, owner)
	}
}
