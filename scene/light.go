package scene

// Light is a directional light record the duality system drives during
// a world transition. Intensity is linear; zero means fully dark.
type Light struct {
	Name      string
	Intensity float64
	Enabled   bool
}

// Volume is a post-processing volume; the core only ever toggles it.
type Volume struct {
	Name    string
	Enabled bool
}
