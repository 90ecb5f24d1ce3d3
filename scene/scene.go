package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Layer is a collision filter bitmask.
type Layer uint32

const (
	LayerWorld Layer = 1 << iota
	LayerGrapple
	LayerPlayer
	LayerDetect
)

const LayerAll = Layer(^uint32(0))

// ColliderShape selects the collider primitive.
type ColliderShape int

const (
	ShapeSphere ColliderShape = iota
	ShapeBox
)

// Collider is one collision primitive owned by an Object. Trigger
// colliders participate in casts and overlaps regardless of the
// object's visibility; only non-trigger colliders get toggled when an
// object dissolves out.
type Collider struct {
	Shape   ColliderShape
	Center  mgl64.Vec3
	Radius  float64    // ShapeSphere
	Half    mgl64.Vec3 // ShapeBox half extents
	Trigger bool
	Layer   Layer
	Enabled bool
	Object  *Object
}

// Renderer is the drawable surface of an Object: a material stack and
// an enabled flag. Systems swap Materials wholesale during dissolves.
type Renderer struct {
	Enabled   bool
	Materials []*Material
}

// Object is one tracked scene entry: a renderer plus its collider list,
// built once at scene load (no per-tick graph walks). UserData carries
// the owning game entity.
type Object struct {
	Name      string
	Position  mgl64.Vec3
	Renderer  *Renderer
	Colliders []*Collider
	UserData  any
}

// NewObject wires collider back-references and returns the object.
func NewObject(name string, pos mgl64.Vec3, r *Renderer, colliders ...*Collider) *Object {
	o := &Object{Name: name, Position: pos, Renderer: r, Colliders: colliders}
	for _, c := range colliders {
		c.Object = o
		c.Enabled = true
	}
	return o
}

// SetCollidersEnabled toggles every non-trigger collider. Triggers are
// deliberately left alone so detection volumes keep working while the
// object is dissolved out.
func (o *Object) SetCollidersEnabled(enabled bool) {
	if o == nil {
		return
	}
	for _, c := range o.Colliders {
		if c.Trigger {
			continue
		}
		c.Enabled = enabled
	}
}

// Hit is the first intersection along a cast.
type Hit struct {
	Point    mgl64.Vec3
	Distance float64
	Object   *Object
	Collider *Collider
}

// Index is the scene's ownership index: the flat list of tracked
// objects all spatial queries run against.
type Index struct {
	objects []*Object
}

func NewIndex() *Index {
	return &Index{}
}

func (s *Index) Add(o *Object) {
	if s == nil || o == nil {
		return
	}
	s.objects = append(s.objects, o)
}

func (s *Index) Objects() []*Object {
	if s == nil {
		return nil
	}
	return s.objects
}

// Raycast returns the nearest enabled collider hit along dir within
// maxDist, honoring the layer mask.
func (s *Index) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask Layer) (Hit, bool) {
	return s.SphereCast(origin, dir, 0, maxDist, mask)
}

// SphereCast is a cone-tolerant raycast: the ray is thickened by
// radius, so near-misses within the tolerance still count.
func (s *Index) SphereCast(origin, dir mgl64.Vec3, radius, maxDist float64, mask Layer) (Hit, bool) {
	if s == nil || maxDist <= 0 {
		return Hit{}, false
	}
	if dir.Len() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()

	best := Hit{Distance: math.MaxFloat64}
	found := false
	for _, o := range s.objects {
		for _, c := range o.Colliders {
			if !c.Enabled || c.Layer&mask == 0 {
				continue
			}
			d, ok := castCollider(c, origin, dir, radius)
			if !ok || d > maxDist || d >= best.Distance {
				continue
			}
			best = Hit{
				Point:    origin.Add(dir.Mul(d)),
				Distance: d,
				Object:   o,
				Collider: c,
			}
			found = true
		}
	}
	if !found {
		return Hit{}, false
	}
	return best, true
}

// OverlapSphere returns every object with at least one enabled collider
// intersecting the sphere. Each object appears once.
func (s *Index) OverlapSphere(center mgl64.Vec3, radius float64, mask Layer) []*Object {
	if s == nil || radius <= 0 {
		return nil
	}
	var out []*Object
	for _, o := range s.objects {
		for _, c := range o.Colliders {
			if !c.Enabled || c.Layer&mask == 0 {
				continue
			}
			if colliderOverlapsSphere(c, center, radius) {
				out = append(out, o)
				break
			}
		}
	}
	return out
}

func castCollider(c *Collider, origin, dir mgl64.Vec3, castRadius float64) (float64, bool) {
	switch c.Shape {
	case ShapeSphere:
		return raySphere(origin, dir, worldCenter(c), c.Radius+castRadius)
	case ShapeBox:
		// Expanding the box by the cast radius is a conservative
		// Minkowski approximation; corners become slightly generous.
		half := c.Half.Add(mgl64.Vec3{castRadius, castRadius, castRadius})
		return rayAABB(origin, dir, worldCenter(c), half)
	}
	return 0, false
}

func colliderOverlapsSphere(c *Collider, center mgl64.Vec3, radius float64) bool {
	wc := worldCenter(c)
	switch c.Shape {
	case ShapeSphere:
		r := c.Radius + radius
		return wc.Sub(center).Len() <= r
	case ShapeBox:
		closest := mgl64.Vec3{
			clampf(center.X(), wc.X()-c.Half.X(), wc.X()+c.Half.X()),
			clampf(center.Y(), wc.Y()-c.Half.Y(), wc.Y()+c.Half.Y()),
			clampf(center.Z(), wc.Z()-c.Half.Z(), wc.Z()+c.Half.Z()),
		}
		return closest.Sub(center).Len() <= radius
	}
	return false
}

func worldCenter(c *Collider) mgl64.Vec3 {
	if c.Object == nil {
		return c.Center
	}
	return c.Object.Position.Add(c.Center)
}

func raySphere(origin, dir, center mgl64.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	cc := oc.Dot(oc) - radius*radius
	if cc > 0 && b > 0 {
		return 0, false
	}
	disc := b*b - cc
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t < 0 {
		t = 0 // origin inside the sphere
	}
	return t, true
}

func rayAABB(origin, dir, center, half mgl64.Vec3) (float64, bool) {
	tMin := 0.0
	tMax := math.MaxFloat64
	for i := 0; i < 3; i++ {
		lo := center[i] - half[i]
		hi := center[i] + half[i]
		if math.Abs(dir[i]) < 1e-12 {
			if origin[i] < lo || origin[i] > hi {
				return 0, false
			}
			continue
		}
		inv := 1.0 / dir[i]
		t1 := (lo - origin[i]) * inv
		t2 := (hi - origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
