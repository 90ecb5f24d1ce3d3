package component

// CueRequest asks the audio system to play a named one-shot cue.
// Spawned as a one-shot entity, consumed and destroyed the same tick.
type CueRequest struct {
	Name string
}

var CueRequestComponent = NewKind[CueRequest]()
