package component

import "github.com/softglow/duality/scene"

// ModeLight binds a directional light to one world. During a global
// transition both mode lights stay enabled and their intensities
// crossfade between BaseIntensity and zero.
type ModeLight struct {
	Affinity      Affinity
	Light         *scene.Light
	BaseIntensity float64
}

var ModeLightComponent = NewKind[ModeLight]()

// ModeVolume binds a post-processing volume to one world. Both volumes
// are enabled for the duration of a transition, then snapped binary.
type ModeVolume struct {
	Affinity Affinity
	Volume   *scene.Volume
}

var ModeVolumeComponent = NewKind[ModeVolume]()
