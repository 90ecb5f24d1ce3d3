package scene

// Material property names shared between the dissolve systems and the
// render side. DissolveProperty runs 0 (opaque) to 1 (fully clipped).
const (
	DissolveProperty   = "_DissolveAmount"
	MetallicProperty   = "_Metallic"
	SmoothnessProperty = "_Smoothness"
)

// DissolveShader is the shader name the Library must resolve for the
// duality systems to operate at all.
const DissolveShader = "duality/dissolve"

// Material is a render material: a shader name plus its parameter
// block. Base materials are owned by the scene; instanced copies are
// owned by whoever cloned them and must be released.
type Material struct {
	Name        string
	Shader      string
	Texture     string
	NormalMap   string
	Color       [4]float64
	RenderQueue int
	Floats      map[string]float64
	Keywords    map[string]bool

	instanced bool
}

func (m *Material) SetFloat(name string, v float64) {
	if m == nil {
		return
	}
	if m.Floats == nil {
		m.Floats = make(map[string]float64)
	}
	m.Floats[name] = v
}

func (m *Material) Float(name string) float64 {
	if m == nil {
		return 0
	}
	return m.Floats[name]
}

func (m *Material) Instanced() bool {
	return m != nil && m.instanced
}

// Library resolves shader templates and tracks live material instances
// so instance growth stays observable (and bounded by release calls).
type Library struct {
	templates map[string]*Material
	liveCount int
}

func NewLibrary(templates ...*Material) *Library {
	lib := &Library{templates: make(map[string]*Material)}
	for _, t := range templates {
		if t != nil {
			lib.templates[t.Shader] = t
		}
	}
	return lib
}

// Resolve returns the template for a shader name. A missing dissolve
// template is the spec'd startup failure: the caller disables itself.
func (l *Library) Resolve(shader string) (*Material, bool) {
	if l == nil {
		return nil, false
	}
	t, ok := l.templates[shader]
	return t, ok
}

// Instance clones base onto the template's shader, copying every
// rendering property so the dissolved look matches the original.
func (l *Library) Instance(base, template *Material) *Material {
	if l == nil || base == nil || template == nil {
		return nil
	}
	inst := &Material{
		Name:        base.Name + " (instance)",
		Shader:      template.Shader,
		Texture:     base.Texture,
		NormalMap:   base.NormalMap,
		Color:       base.Color,
		RenderQueue: base.RenderQueue,
		Floats:      make(map[string]float64, len(base.Floats)+1),
		Keywords:    make(map[string]bool, len(base.Keywords)),
		instanced:   true,
	}
	for k, v := range base.Floats {
		inst.Floats[k] = v
	}
	for k, v := range base.Keywords {
		inst.Keywords[k] = v
	}
	for k, v := range template.Keywords {
		inst.Keywords[k] = v
	}
	inst.Floats[DissolveProperty] = 0
	l.liveCount++
	return inst
}

// Release frees instanced materials. Base materials passed in are
// ignored; double releases are not tracked per material, so callers
// release each instance set exactly once.
func (l *Library) Release(materials ...*Material) {
	if l == nil {
		return
	}
	for _, m := range materials {
		if m != nil && m.instanced {
			l.liveCount--
		}
	}
}

// LiveInstances reports the number of instanced materials not yet
// released.
func (l *Library) LiveInstances() int {
	if l == nil {
		return 0
	}
	return l.liveCount
}
