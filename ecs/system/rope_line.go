package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
)

// RopeLineSystem keeps the rope renderable's endpoints glued to the
// player and the anchor while a swing is active.
type RopeLineSystem struct{}

func NewRopeLineSystem() *RopeLineSystem {
	return &RopeLineSystem{}
}

func (s *RopeLineSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	lineEnt, ok := ecs.First(w, component.RopeLineComponent.ID())
	if !ok {
		return
	}
	rl, ok := ecs.Get(w, lineEnt, component.RopeLineComponent)
	if !ok {
		return
	}

	player, ok := ecs.First(w, component.PlayerTagComponent.ID())
	if !ok {
		rl.Visible = false
		return
	}
	g, okG := ecs.Get(w, player, component.GrappleComponent)
	tr, okT := ecs.Get(w, player, component.TransformComponent)
	if !okG || !okT || g.State != component.GrappleSwinging {
		rl.Visible = false
		return
	}

	start := tr.Position
	if rig, ok := ecs.Get(w, player, component.CameraRigComponent); ok {
		start = start.Add(mgl64.Vec3{0, rig.EyeOffset * 0.8, 0})
	}
	rl.Start = start
	rl.End = g.Anchor
	rl.Visible = true
}
