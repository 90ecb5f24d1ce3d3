package component

import "testing"

func TestAffinityVisibleIn(t *testing.T) {
	cases := []struct {
		name     string
		affinity Affinity
		inShadow bool
		want     bool
	}{
		{"light_in_light", AffinityLight, false, true},
		{"light_in_shadow", AffinityLight, true, false},
		{"shadow_in_light", AffinityShadow, false, false},
		{"shadow_in_shadow", AffinityShadow, true, true},
		{"neutral_in_light", AffinityNeutral, false, true},
		{"neutral_in_shadow", AffinityNeutral, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.affinity.VisibleIn(c.inShadow); got != c.want {
				t.Fatalf("VisibleIn(%v) = %v, want %v", c.inShadow, got, c.want)
			}
		})
	}
}

func TestParseAffinity(t *testing.T) {
	if a, err := ParseAffinity("shadow"); err != nil || a != AffinityShadow {
		t.Fatalf("got %v, %v", a, err)
	}
	if a, err := ParseAffinity(""); err != nil || a != AffinityNeutral {
		t.Fatalf("empty string defaults to neutral, got %v, %v", a, err)
	}
	if _, err := ParseAffinity("dusk"); err == nil {
		t.Fatalf("expected an error for unknown affinity")
	}
}
