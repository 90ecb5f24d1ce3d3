package component

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// PatrolPolicy selects how the waypoint index advances after a dwell.
type PatrolPolicy int

const (
	PatrolLoop PatrolPolicy = iota
	PatrolPingPong
	PatrolOnce
)

func ParsePatrolPolicy(s string) (PatrolPolicy, error) {
	switch s {
	case "loop", "":
		return PatrolLoop, nil
	case "pingpong":
		return PatrolPingPong, nil
	case "once":
		return PatrolOnce, nil
	}
	return PatrolLoop, fmt.Errorf("component: unknown patrol policy %q", s)
}

// Patrol drives a guide along fixed waypoints at constant speed with a
// dwell at each stop. ActiveInMode is derived every tick from the
// guide's affinity against the world mode; deactivating pauses the
// cursor in place so reactivation resumes from the same index.
type Patrol struct {
	Waypoints    []mgl64.Vec3
	Index        int
	Forward      bool
	Policy       PatrolPolicy
	MoveSpeed    float64
	DwellSeconds float64
	Dwelling     bool
	DwellLeft    float64
	Done         bool // PatrolOnce reached the final waypoint
	Paused       bool // external pause, independent of mode activity
	ActiveInMode bool

	// CircleRadius scopes the guide's reveal area; ScriptPath names an
	// optional tengo behavior script consulted when a dwell completes.
	CircleRadius float64
	ScriptPath   string
}

func (p *Patrol) SetMoveSpeed(speed float64) {
	if p != nil && speed >= 0 {
		p.MoveSpeed = speed
	}
}

func (p *Patrol) SetCircleRadius(radius float64) {
	if p != nil && radius >= 0 {
		p.CircleRadius = radius
	}
}

func (p *Patrol) PauseMovement() {
	if p != nil {
		p.Paused = true
	}
}

func (p *Patrol) ResumeMovement() {
	if p != nil {
		p.Paused = false
	}
}

var PatrolComponent = NewKind[Patrol]()
