package component

import "fmt"

// Affinity classifies an entity as belonging to the light world, the
// shadow world, or neither. Neutral objects are visible in both.
type Affinity int

const (
	AffinityNeutral Affinity = iota
	AffinityLight
	AffinityShadow
)

func (a Affinity) String() string {
	switch a {
	case AffinityLight:
		return "light"
	case AffinityShadow:
		return "shadow"
	default:
		return "neutral"
	}
}

// VisibleIn reports whether an object of this affinity is visible under
// the given world mode with no local override in effect.
func (a Affinity) VisibleIn(inShadow bool) bool {
	switch a {
	case AffinityLight:
		return !inShadow
	case AffinityShadow:
		return inShadow
	default:
		return true
	}
}

func ParseAffinity(s string) (Affinity, error) {
	switch s {
	case "light":
		return AffinityLight, nil
	case "shadow":
		return AffinityShadow, nil
	case "neutral", "":
		return AffinityNeutral, nil
	}
	return AffinityNeutral, fmt.Errorf("component: unknown affinity %q", s)
}

var AffinityComponent = NewKind[Affinity]()
