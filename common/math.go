package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Damp exponentially smooths current toward target; rate is the decay
// constant per second, so the result is frame-rate independent.
func Damp(current, target, rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return current
	}
	return Lerp(current, target, 1-math.Exp(-rate*dt))
}

// MoveToward advances current toward target by at most maxDelta,
// never overshooting.
func MoveToward(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}
