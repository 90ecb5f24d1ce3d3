package component

import "github.com/softglow/duality/scene"

// RevealZone is a sphere volume that locally overrides mode-derived
// visibility: objects of the opposite mode's affinity are revealed,
// objects of the current mode's affinity are hidden, neutral objects
// are left alone. Active false releases every member through the normal
// restore path.
type RevealZone struct {
	Radius float64
	Layer  scene.Layer
	Active bool
}

func (z *RevealZone) SetLightActive(active bool) {
	if z != nil {
		z.Active = active
	}
}

func (z *RevealZone) ToggleLight() {
	if z != nil {
		z.Active = !z.Active
	}
}

var RevealZoneComponent = NewKind[RevealZone]()
