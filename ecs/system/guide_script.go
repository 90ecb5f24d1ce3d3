package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
)

// guideDispatchScript calls the script's next_index function with the
// guide snapshot and captures the result. The user script only has to
// declare next_index(guide).
const guideDispatchScript = `
__result := next_index(__guide)
`

type guideScriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	logged   bool
}

// runScript consults a guide's behavior script for the next waypoint
// index. Returns false (fall back to the policy) when the script is
// missing, errors, or returns an out-of-range index.
func (s *GuideSystem) runScript(e ecs.Entity, p *component.Patrol, wm *component.WorldMode) (int, bool) {
	rt, err := s.scriptRuntime(e, p.ScriptPath)
	if err != nil {
		if !rt.logged {
			rt.logged = true
			fmt.Printf("guide: entity=%s load script %s: %v\n", e, p.ScriptPath, err)
		}
		return 0, false
	}

	guide := map[string]any{
		"index":     int64(p.Index),
		"count":     int64(len(p.Waypoints)),
		"forward":   p.Forward,
		"in_shadow": wm.InShadow,
	}
	if err := rt.compiled.Set("__guide", guide); err != nil {
		fmt.Printf("guide: entity=%s set script state: %v\n", e, err)
		return 0, false
	}
	if err := rt.compiled.Run(); err != nil {
		fmt.Printf("guide: entity=%s script error: %v\n", e, err)
		return 0, false
	}

	next := int(rt.compiled.Get("__result").Int())
	if next < 0 || next >= len(p.Waypoints) {
		return 0, false
	}
	return next, true
}

func (s *GuideSystem) scriptRuntime(e ecs.Entity, path string) (*guideScriptRuntime, error) {
	if rt, ok := s.scripts[e]; ok && rt.path == path {
		if rt.compiled == nil {
			return rt, fmt.Errorf("script previously failed to load")
		}
		return rt, nil
	}

	rt := &guideScriptRuntime{path: path}
	s.scripts[e] = rt

	full := path
	if s.ScriptDir != "" && !filepath.IsAbs(path) {
		full = filepath.Join(s.ScriptDir, path)
	}
	src, err := os.ReadFile(full)
	if err != nil {
		return rt, err
	}

	script := tengo.NewScript(append(src, []byte(guideDispatchScript)...))
	script.SetImports(stdlib.GetModuleMap("math", "rand"))
	if err := script.Add("__guide", map[string]any{}); err != nil {
		return rt, err
	}
	compiled, err := script.Compile()
	if err != nil {
		return rt, err
	}
	rt.compiled = compiled
	return rt, nil
}
