package system

import (
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
	"github.com/softglow/duality/scene"
)

const waypointArriveEpsilon = 0.05

// GuideSystem runs the patrolling reveal agents: waypoint movement with
// a dwell at each stop, combined with the zone invert rule over a
// circle that travels with the agent. An agent tagged for one world is
// active only while that world is current; deactivating freezes the
// patrol cursor in place and releases the circle's members.
type GuideSystem struct {
	reveal  areaReveal
	dt      float64
	scripts map[ecs.Entity]*guideScriptRuntime

	// ScriptDir is where guide behavior scripts are resolved from.
	ScriptDir string
}

func NewGuideSystem(lib *scene.Library, index *scene.Index, dt float64) *GuideSystem {
	return &GuideSystem{
		reveal:  newAreaReveal(lib, index),
		dt:      dt,
		scripts: make(map[ecs.Entity]*guideScriptRuntime),
	}
}

func (s *GuideSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	_, wm, ok := worldMode(w)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.PatrolComponent, component.TransformComponent, func(e ecs.Entity, p *component.Patrol, tr *component.Transform) {
		affinity := component.AffinityNeutral
		if a, ok := ecs.Get(w, e, component.AffinityComponent); ok {
			affinity = *a
		}
		// A light-tagged guide works only in light, a shadow-tagged one
		// only in shadow, untagged always.
		active := affinity.VisibleIn(wm.InShadow)
		modeFlip := active != p.ActiveInMode
		p.ActiveInMode = active

		if active && !p.Paused {
			s.step(w, e, p, tr, wm)
		}

		if so, ok := ecs.Get(w, e, component.SceneObjectComponent); ok && so.Object != nil {
			if modeFlip {
				so.Object.SetCollidersEnabled(active)
			}
			// The index object trails the patrol so overlaps see the
			// agent where it actually is.
			so.Object.Position = tr.Position
		}

		if s.reveal.ready() && !wm.Transitioning {
			s.reveal.reconcile(w, wm, e, tr.Position, p.CircleRadius, scene.LayerDetect, active)
		}
	})

	if s.reveal.ready() {
		for owner := range s.reveal.members {
			if ecs.IsAlive(w, owner) && ecs.Has(w, owner, component.PatrolComponent) {
				continue
			}
			s.reveal.dropOwner(w, wm, owner)
			delete(s.scripts, owner)
		}
	}
}

// step advances the patrol cursor by one tick: move, dwell, advance.
// An empty waypoint list is a normal negative result, not a failure.
func (s *GuideSystem) step(w *ecs.World, e ecs.Entity, p *component.Patrol, tr *component.Transform, wm *component.WorldMode) {
	if len(p.Waypoints) == 0 || p.Done {
		return
	}
	if p.Index < 0 || p.Index >= len(p.Waypoints) {
		p.Index = 0
	}

	if p.Dwelling {
		p.DwellLeft -= s.dt
		if p.DwellLeft <= 0 {
			p.Dwelling = false
			s.advance(e, p, wm)
		}
		return
	}

	target := p.Waypoints[p.Index]
	delta := target.Sub(tr.Position)
	dist := delta.Len()
	stepLen := p.MoveSpeed * s.dt
	if dist <= stepLen || dist < waypointArriveEpsilon {
		tr.Position = target
		p.Dwelling = true
		p.DwellLeft = p.DwellSeconds
		return
	}
	tr.Position = tr.Position.Add(delta.Mul(stepLen / dist))
}

// advance picks the next waypoint. A behavior script, when configured,
// gets first say; script errors log once per run and fall back to the
// configured policy.
func (s *GuideSystem) advance(e ecs.Entity, p *component.Patrol, wm *component.WorldMode) {
	if p.ScriptPath != "" {
		if next, ok := s.runScript(e, p, wm); ok {
			p.Index = next
			return
		}
	}

	switch p.Policy {
	case component.PatrolPingPong:
		if len(p.Waypoints) < 2 {
			return
		}
		if p.Forward {
			if p.Index >= len(p.Waypoints)-1 {
				p.Forward = false
				p.Index--
			} else {
				p.Index++
			}
		} else {
			if p.Index <= 0 {
				p.Forward = true
				p.Index++
			} else {
				p.Index--
			}
		}
	case component.PatrolOnce:
		if p.Index >= len(p.Waypoints)-1 {
			p.Done = true
			return
		}
		p.Index++
	default: // PatrolLoop
		p.Index = (p.Index + 1) % len(p.Waypoints)
	}
}
