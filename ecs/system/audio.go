package system

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
)

const audioSampleRate = 44100

// RequestCue asks the audio system to play a named one-shot cue.
func RequestCue(w *ecs.World, name string) {
	if w == nil || name == "" {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.CueRequestComponent, &component.CueRequest{Name: name})
}

// AudioSystem plays one-shot cues from wav files in a directory. A
// missing directory disables the system for the session with a single
// log line; cue requests are then consumed and dropped. Cues are pure
// side effects, so nothing else depends on this system's health.
type AudioSystem struct {
	ctx      *audio.Context
	dir      string
	pcm      map[string][]byte
	disabled bool
}

func NewAudioSystem(dir string) *AudioSystem {
	s := &AudioSystem{dir: dir, pcm: make(map[string][]byte)}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		s.disabled = true
		fmt.Printf("audio: cue directory %q unavailable; audio disabled\n", dir)
		return s
	}
	if ctx := audio.CurrentContext(); ctx != nil {
		s.ctx = ctx
	} else {
		s.ctx = audio.NewContext(audioSampleRate)
	}
	return s
}

func (s *AudioSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, ent := range ecs.Query(w, component.CueRequestComponent.ID()) {
		req, ok := ecs.Get(w, ent, component.CueRequestComponent)
		ecs.DestroyEntity(w, ent)
		if !ok || s.disabled {
			continue
		}
		s.play(req.Name)
	}
}

func (s *AudioSystem) play(name string) {
	pcm, ok := s.pcm[name]
	if !ok {
		data, err := os.ReadFile(filepath.Join(s.dir, name+".wav"))
		if err != nil {
			// Cache the miss so an absent cue logs once, not per play.
			s.pcm[name] = nil
			fmt.Printf("audio: cue %q: %v\n", name, err)
			return
		}
		stream, err := wav.DecodeWithSampleRate(audioSampleRate, bytes.NewReader(data))
		if err != nil {
			s.pcm[name] = nil
			fmt.Printf("audio: cue %q: %v\n", name, err)
			return
		}
		pcm, err = io.ReadAll(stream)
		if err != nil {
			s.pcm[name] = nil
			fmt.Printf("audio: cue %q: %v\n", name, err)
			return
		}
		s.pcm[name] = pcm
	}
	if len(pcm) == 0 || s.ctx == nil {
		return
	}
	// A fresh player per request lets rapid cues overlap.
	s.ctx.NewPlayerFromBytes(pcm).Play()
}
