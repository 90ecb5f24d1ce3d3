package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
	"github.com/softglow/duality/scene"
)

func TestDimensionSwitchFlipsOnce(t *testing.T) {
	lib := newTestLibrary()
	w := newModeWorld(false)
	lightEnt, lightObj := spawnSubject(w, nil, "light-wall", component.AffinityLight, mgl64.Vec3{}, false)
	shadowEnt, shadowObj := spawnSubject(w, nil, "shadow-wall", component.AffinityShadow, mgl64.Vec3{5, 0, 0}, false)
	sys := NewDualitySystem(lib, testDT)

	TriggerDimensionSwitch(w)
	sys.Update(w) // consumes the request, begins the fade

	if !IsTransitioning(w) {
		t.Fatalf("expected transition in flight")
	}
	if IsInShadowMode(w) {
		t.Fatalf("stable mode must not flip until the fade completes")
	}
	if !lightObj.Renderer.Enabled || !shadowObj.Renderer.Enabled {
		t.Fatalf("both groups must render during the crossfade")
	}

	// The two groups' dissolve values are complementary the whole way.
	for i := 0; i < 30; i++ {
		sys.Update(w)
		sum := dissolveOf(w, lightEnt).Current + dissolveOf(w, shadowEnt).Current
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("expected complementary dissolve values, sum=%v at tick %d", sum, i)
		}
	}

	runTicks(ecs.NewScheduler(sys), w, 60)
	if IsTransitioning(w) {
		t.Fatalf("transition should have completed")
	}
	if !IsInShadowMode(w) {
		t.Fatalf("expected shadow mode after the flip")
	}
	if lightObj.Renderer.Enabled {
		t.Fatalf("light object must be hidden in shadow mode")
	}
	if !shadowObj.Renderer.Enabled {
		t.Fatalf("shadow object must be visible in shadow mode")
	}
	if solidCollider(lightObj).Enabled || !solidCollider(shadowObj).Enabled {
		t.Fatalf("colliders must match visibility after the flip")
	}
	if lib.LiveInstances() != 0 {
		t.Fatalf("all instances must be released on completion, %d live", lib.LiveInstances())
	}
}

func TestDimensionSwitchIgnoredWhileTransitioning(t *testing.T) {
	lib := newTestLibrary()
	w := newModeWorld(false)
	spawnSubject(w, nil, "wall", component.AffinityLight, mgl64.Vec3{}, false)
	sys := NewDualitySystem(lib, testDT)

	TriggerDimensionSwitch(w)
	sys.Update(w)
	// A second request mid-fade must not queue a second flip.
	TriggerDimensionSwitch(w)
	runTicks(ecs.NewScheduler(sys), w, 120)

	if !IsInShadowMode(w) {
		t.Fatalf("expected exactly one flip, ended in light mode")
	}
	if IsTransitioning(w) {
		t.Fatalf("no second transition should be running")
	}
}

func TestDimensionSwitchCoalescesSameTickRequests(t *testing.T) {
	lib := newTestLibrary()
	w := newModeWorld(false)
	spawnSubject(w, nil, "wall", component.AffinityLight, mgl64.Vec3{}, false)
	sys := NewDualitySystem(lib, testDT)

	// Three requests queued before the system runs collapse into one flip.
	TriggerDimensionSwitch(w)
	TriggerDimensionSwitch(w)
	TriggerDimensionSwitch(w)
	runTicks(ecs.NewScheduler(sys), w, 120)

	if !IsInShadowMode(w) {
		t.Fatalf("expected a single flip into shadow mode")
	}
	if IsTransitioning(w) {
		t.Fatalf("no follow-up transition should be running")
	}
	if reqs := ecs.Query(w, component.ModeSwitchRequestComponent.ID()); len(reqs) != 0 {
		t.Fatalf("all requests must be consumed, %d left", len(reqs))
	}
}

func TestDimensionSwitchRoundTrip(t *testing.T) {
	lib := newTestLibrary()
	w := newModeWorld(false)
	e, obj := spawnSubject(w, nil, "wall", component.AffinityLight, mgl64.Vec3{}, false)
	sys := NewDualitySystem(lib, testDT)

	TriggerDimensionSwitch(w)
	runTicks(ecs.NewScheduler(sys), w, 120)
	TriggerDimensionSwitch(w)
	runTicks(ecs.NewScheduler(sys), w, 120)

	if IsInShadowMode(w) {
		t.Fatalf("expected light mode after a round trip")
	}
	ds := dissolveOf(w, e)
	if ds.Current != 0 || !ds.TargetVisible {
		t.Fatalf("light object must be fully visible again, got %v", ds.Current)
	}
	if !obj.Renderer.Enabled || !solidCollider(obj).Enabled {
		t.Fatalf("renderer and colliders must be restored")
	}
}

func TestDualityDisabledWithoutShader(t *testing.T) {
	lib := scene.NewLibrary() // no dissolve template
	w := newModeWorld(false)
	spawnSubject(w, nil, "wall", component.AffinityLight, mgl64.Vec3{}, false)
	sys := NewDualitySystem(lib, testDT)

	TriggerDimensionSwitch(w)
	runTicks(ecs.NewScheduler(sys), w, 120)

	// Commands do nothing, queries keep answering.
	if IsInShadowMode(w) || IsTransitioning(w) {
		t.Fatalf("disabled system must never flip the mode")
	}
	_, wm, _ := worldMode(w)
	if wm.Enabled {
		t.Fatalf("manager should report disabled")
	}
}

func TestModeLightsCrossfade(t *testing.T) {
	lib := newTestLibrary()
	w := newModeWorld(false)
	spawnSubject(w, nil, "wall", component.AffinityLight, mgl64.Vec3{}, false)

	sun := &scene.Light{Name: "sun", Enabled: true, Intensity: 1.2}
	moon := &scene.Light{Name: "moon"}
	se := ecs.CreateEntity(w)
	_ = ecs.Add(w, se, component.ModeLightComponent, &component.ModeLight{Affinity: component.AffinityLight, Light: sun, BaseIntensity: 1.2})
	me := ecs.CreateEntity(w)
	_ = ecs.Add(w, me, component.ModeLightComponent, &component.ModeLight{Affinity: component.AffinityShadow, Light: moon, BaseIntensity: 0.6})

	sys := NewDualitySystem(lib, testDT)
	TriggerDimensionSwitch(w)
	sys.Update(w)

	if !sun.Enabled || !moon.Enabled {
		t.Fatalf("both lights participate in the crossfade")
	}
	runTicks(ecs.NewScheduler(sys), w, 30)
	if sun.Intensity >= 1.2 || moon.Intensity <= 0 {
		t.Fatalf("expected mid-fade intensities, sun=%v moon=%v", sun.Intensity, moon.Intensity)
	}

	runTicks(ecs.NewScheduler(sys), w, 60)
	if sun.Enabled || sun.Intensity != 0 {
		t.Fatalf("light-world light must be off in shadow mode")
	}
	if !moon.Enabled || moon.Intensity != 0.6 {
		t.Fatalf("shadow-world light must be at base intensity, got %v", moon.Intensity)
	}
}
