package prefabs

import (
	"fmt"
	"os"

	"github.com/softglow/duality/ecs/component"
	"gopkg.in/yaml.v3"
)

// Vec3 is a YAML-friendly [x, y, z] triple.
type Vec3 [3]float64

// SceneSpec is the external scene composition: which objects belong to
// which world, where the lights and zones sit, and how the player and
// guides are tuned. Logic lives in the systems; this is pure data.
type SceneSpec struct {
	Name    string       `yaml:"name"`
	Mode    ModeSpec     `yaml:"mode"`
	Player  PlayerSpec   `yaml:"player"`
	Objects []ObjectSpec `yaml:"objects"`
	Lights  []LightSpec  `yaml:"lights"`
	Volumes []VolumeSpec `yaml:"volumes"`
	Zones   []ZoneSpec   `yaml:"zones"`
	Guides  []GuideSpec  `yaml:"guides"`
}

type ModeSpec struct {
	TransitionSeconds float64 `yaml:"transition_seconds"`
	DissolveSpeed     float64 `yaml:"dissolve_speed"`
}

type PlayerSpec struct {
	Spawn         Vec3    `yaml:"spawn"`
	MoveSpeed     float64 `yaml:"move_speed"`
	JumpSpeed     float64 `yaml:"jump_speed"`
	StandHeight   float64 `yaml:"stand_height"`
	CrouchHeight  float64 `yaml:"crouch_height"`
	CrouchRate    float64 `yaml:"crouch_rate"`
	GrappleRange  float64 `yaml:"grapple_range"`
	GrappleRadius float64 `yaml:"grapple_radius"`
	SwingAccel    float64 `yaml:"swing_accel"`
	AirAccel      float64 `yaml:"air_accel"`
	SpringAccel   float64 `yaml:"spring_accel"`
	MaxSwingSpeed float64 `yaml:"max_swing_speed"`
	ReleaseBoost  float64 `yaml:"release_boost"`
}

type ObjectSpec struct {
	Name        string  `yaml:"name"`
	Affinity    string  `yaml:"affinity"`
	Shape       string  `yaml:"shape"` // box | sphere
	Position    Vec3    `yaml:"position"`
	Size        Vec3    `yaml:"size"`   // box full extents
	Radius      float64 `yaml:"radius"` // sphere
	Grappleable bool    `yaml:"grappleable"`
}

type LightSpec struct {
	Name      string  `yaml:"name"`
	Affinity  string  `yaml:"affinity"`
	Intensity float64 `yaml:"intensity"`
}

type VolumeSpec struct {
	Name     string `yaml:"name"`
	Affinity string `yaml:"affinity"`
}

type ZoneSpec struct {
	Name     string  `yaml:"name"`
	Position Vec3    `yaml:"position"`
	Radius   float64 `yaml:"radius"`
	Active   *bool   `yaml:"active"` // nil means active
}

type GuideSpec struct {
	Name         string  `yaml:"name"`
	Affinity     string  `yaml:"affinity"`
	Waypoints    []Vec3  `yaml:"waypoints"`
	MoveSpeed    float64 `yaml:"move_speed"`
	DwellSeconds float64 `yaml:"dwell_seconds"`
	Policy       string  `yaml:"policy"` // loop | pingpong | once
	CircleRadius float64 `yaml:"circle_radius"`
	Script       string  `yaml:"script"`
}

// LoadSceneSpec reads and validates one scene file.
func LoadSceneSpec(path string) (*SceneSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", path, err)
	}
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", path, err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", path, err)
	}
	return &spec, nil
}

// Validate rejects affinity, shape, and policy strings the builders
// would otherwise silently misread.
func (s *SceneSpec) Validate() error {
	for _, o := range s.Objects {
		if _, err := component.ParseAffinity(o.Affinity); err != nil {
			return fmt.Errorf("object %q: %w", o.Name, err)
		}
		switch o.Shape {
		case "box", "sphere", "":
		default:
			return fmt.Errorf("object %q: unknown shape %q", o.Name, o.Shape)
		}
	}
	for _, l := range s.Lights {
		if _, err := component.ParseAffinity(l.Affinity); err != nil {
			return fmt.Errorf("light %q: %w", l.Name, err)
		}
	}
	for _, v := range s.Volumes {
		if _, err := component.ParseAffinity(v.Affinity); err != nil {
			return fmt.Errorf("volume %q: %w", v.Name, err)
		}
	}
	for _, g := range s.Guides {
		if _, err := component.ParseAffinity(g.Affinity); err != nil {
			return fmt.Errorf("guide %q: %w", g.Name, err)
		}
		if _, err := component.ParsePatrolPolicy(g.Policy); err != nil {
			return fmt.Errorf("guide %q: %w", g.Name, err)
		}
	}
	return nil
}
