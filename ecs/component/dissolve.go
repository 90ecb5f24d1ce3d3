package component

import "github.com/softglow/duality/scene"

// DissolveState tracks one object's visibility ramp. Current runs 0
// (fully visible) to 1 (fully dissolved). At most one transition is in
// flight per subject; starting another cancels the first in place and
// the new ramp continues from whatever Current had reached.
type DissolveState struct {
	Current       float64
	TargetVisible bool
	Transitioning bool
	Speed         float64 // full ramp takes 1/Speed seconds

	// Affected marks that a local override (zone or guide) currently
	// supersedes the mode-derived default; cleared when the override
	// hands visibility back.
	Affected bool

	// Originals is the renderer's material set before instancing;
	// Instanced are the engine-owned dissolve clones, nil whenever the
	// subject is fully visible so instance memory stays bounded.
	Originals []*scene.Material
	Instanced []*scene.Material
}

var DissolveStateComponent = NewKind[DissolveState]()

// SceneObject links an entity to its scene index entry.
type SceneObject struct {
	Object *scene.Object
}

var SceneObjectComponent = NewKind[SceneObject]()
