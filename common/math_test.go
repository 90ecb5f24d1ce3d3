package common

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"below", -1, 0, 1, 0},
		{"inside", 0.4, 0, 1, 0.4},
		{"above", 3, 0, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Clamp(c.v, c.lo, c.hi); got != c.want {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
			}
		})
	}
}

func TestMoveToward(t *testing.T) {
	cases := []struct {
		name            string
		current, target float64
		maxDelta, want  float64
	}{
		{"steps_up", 0, 1, 0.25, 0.25},
		{"steps_down", 1, 0, 0.25, 0.75},
		{"snaps_at_target", 0.9, 1, 0.25, 1},
		{"already_there", 1, 1, 0.25, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := MoveToward(c.current, c.target, c.maxDelta); got != c.want {
				t.Fatalf("MoveToward(%v, %v, %v) = %v, want %v", c.current, c.target, c.maxDelta, got, c.want)
			}
		})
	}
}

func TestDampConverges(t *testing.T) {
	v := 0.0
	prev := v
	for i := 0; i < 600; i++ {
		v = Damp(v, 1, 10, 1.0/60.0)
		if v < prev || v > 1 {
			t.Fatalf("damp must approach monotonically without overshoot, %v -> %v", prev, v)
		}
		prev = v
	}
	if math.Abs(v-1) > 1e-6 {
		t.Fatalf("expected convergence, at %v", v)
	}
}

func TestDampFrameRateIndependent(t *testing.T) {
	// One big step and many small steps over the same wall time land in
	// the same place.
	coarse := Damp(0, 1, 5, 1.0)
	fine := 0.0
	for i := 0; i < 60; i++ {
		fine = Damp(fine, 1, 5, 1.0/60.0)
	}
	if math.Abs(coarse-fine) > 1e-9 {
		t.Fatalf("damp must be frame-rate independent: %v vs %v", coarse, fine)
	}
}

func TestDampZeroRateIsIdentity(t *testing.T) {
	if got := Damp(0.3, 1, 0, 1.0/60.0); got != 0.3 {
		t.Fatalf("zero rate must leave the value, got %v", got)
	}
}
