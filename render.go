package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/softglow/duality/common"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
	"github.com/softglow/duality/ecs/system"
	"github.com/softglow/duality/scene"
)

const debugPixelsPerUnit = 18.0

var (
	lightObjectColor  = color.RGBA{R: 235, G: 210, B: 120, A: 255}
	shadowObjectColor = color.RGBA{R: 120, G: 110, B: 230, A: 255}
	neutralColor      = color.RGBA{R: 170, G: 170, B: 170, A: 255}
	zoneColor         = color.RGBA{R: 90, G: 200, B: 160, A: 160}
	guideColor        = color.RGBA{R: 230, G: 120, B: 120, A: 255}
	playerColor       = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	ropeColor         = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// debugView draws a top-down map of the simulation. The real game has
// no 2D renderer; this is the development view of the headless world.
type debugView struct {
	player ecs.Entity
	// verbose adds the zone overlay and timing readout.
	verbose bool
}

// project maps a world position onto the screen, camera locked to the
// player. World X runs right, world Z runs up the screen.
func (v *debugView) project(w *ecs.World, x, z float64) (float32, float32) {
	var cx, cz float64
	if tf, ok := ecs.Get(w, v.player, component.TransformComponent); ok {
		cx, cz = tf.Position.X(), tf.Position.Z()
	}
	sx := common.BaseWidth/2 + (x-cx)*debugPixelsPerUnit
	sy := common.BaseHeight/2 - (z-cz)*debugPixelsPerUnit
	return float32(sx), float32(sy)
}

func (v *debugView) Draw(screen *ebiten.Image, w *ecs.World) {
	ecs.ForEach2(w, component.SceneObjectComponent, component.AffinityComponent,
		func(e ecs.Entity, so *component.SceneObject, aff *component.Affinity) {
			if so.Object == nil {
				return
			}
			c := neutralColor
			switch *aff {
			case component.AffinityLight:
				c = lightObjectColor
			case component.AffinityShadow:
				c = shadowObjectColor
			}
			alpha := 1.0
			if ds, ok := ecs.Get(w, e, component.DissolveStateComponent); ok {
				alpha = common.Clamp01(1 - ds.Current)
			}
			c.A = uint8(alpha * 255)
			v.drawObject(screen, w, so.Object, c)
		})

	ecs.ForEach2(w, component.RevealZoneComponent, component.TransformComponent,
		func(e ecs.Entity, rz *component.RevealZone, tf *component.Transform) {
			if !rz.Active || !v.verbose {
				return
			}
			x, y := v.project(w, tf.Position.X(), tf.Position.Z())
			vector.StrokeCircle(screen, x, y, float32(rz.Radius*debugPixelsPerUnit), 1, zoneColor, true)
		})

	ecs.ForEach2(w, component.PatrolComponent, component.TransformComponent,
		func(e ecs.Entity, p *component.Patrol, tf *component.Transform) {
			x, y := v.project(w, tf.Position.X(), tf.Position.Z())
			c := guideColor
			if !p.ActiveInMode {
				c.A = 70
			}
			vector.DrawFilledCircle(screen, x, y, 5, c, true)
		})

	ecs.ForEach(w, component.RopeLineComponent, func(e ecs.Entity, rl *component.RopeLine) {
		if !rl.Visible {
			return
		}
		x0, y0 := v.project(w, rl.Start.X(), rl.Start.Z())
		x1, y1 := v.project(w, rl.End.X(), rl.End.Z())
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, ropeColor, true)
	})

	if tf, ok := ecs.Get(w, v.player, component.TransformComponent); ok {
		x, y := v.project(w, tf.Position.X(), tf.Position.Z())
		vector.DrawFilledCircle(screen, x, y, 6, playerColor, true)
	}

	v.drawHUD(screen, w)
}

func (v *debugView) drawObject(screen *ebiten.Image, w *ecs.World, obj *scene.Object, c color.RGBA) {
	for _, col := range obj.Colliders {
		if col.Trigger {
			continue
		}
		center := obj.Position.Add(col.Center)
		x, y := v.project(w, center.X(), center.Z())
		switch col.Shape {
		case scene.ShapeSphere:
			vector.DrawFilledCircle(screen, x, y, float32(col.Radius*debugPixelsPerUnit), c, true)
		case scene.ShapeBox:
			hw := float32(col.Half.X() * debugPixelsPerUnit)
			hd := float32(col.Half.Z() * debugPixelsPerUnit)
			vector.DrawFilledRect(screen, x-hw, y-hd, hw*2, hd*2, c, false)
		}
	}
}

func (v *debugView) drawHUD(screen *ebiten.Image, w *ecs.World) {
	mode := "light"
	if system.IsInShadowMode(w) {
		mode = "shadow"
	}
	status := fmt.Sprintf("mode: %s", mode)
	if system.IsTransitioning(w) {
		status += " (shifting)"
	}
	if g, ok := ecs.Get(w, v.player, component.GrappleComponent); ok && g.State == component.GrappleSwinging {
		status += fmt.Sprintf("  rope: %.1f", g.RopeLength)
	}
	if tf, ok := ecs.Get(w, v.player, component.TransformComponent); ok {
		status += fmt.Sprintf("  pos: %.1f %.1f %.1f", tf.Position.X(), tf.Position.Y(), tf.Position.Z())
	}
	ebitenutil.DebugPrintAt(screen, status, 10, 10)
	if v.verbose {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tps: %0.0f", ebiten.ActualTPS()), 10, 26)
	}
}
