package profile

import (
	"math"
	"sort"
	"testing"
)

func TestRGB(t *testing.T) {
	tests := []struct {
		c       RGB
		r, g, b int
		valid   bool
	}{
		{Gray(0), 0, 0, 0, true},
		{Gray(1), 255, 255, 255, true},
		{RGB{0.5, 0.25, 1}, 128, 64, 255, true},
		{RGB{1.5, -1, 0}, 255, 0, 0, false},
		{RGB{math.NaN(), 0, 0}, 0, 0, 0, false},
	}
	for _, tt := range tests {
		if tt.valid {
			r, g, b := tt.c.Bytes()
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("%+v.Bytes() = %d %d %d, want %d %d %d", tt.c, r, g, b, tt.r, tt.g, tt.b)
			}
		}
		if got := tt.c.Valid(); got != tt.valid {
			t.Errorf("%+v.Valid() = %v, want %v", tt.c, got, tt.valid)
		}
	}
}

func TestPresets(t *testing.T) {
	for _, names := range [][]string{DeviceNames(), DensityNames(), ColorSchemeNames()} {
		if len(names) == 0 || !sort.StringsAreSorted(names) {
			t.Errorf("names = %v, want a sorted non-empty list", names)
		}
	}
	for name, d := range Devices {
		if d.Name != name || d.Width <= 2*d.Margin || d.Height <= 2*d.Margin {
			t.Errorf("device %q = %+v", name, d)
		}
	}
	for name, c := range ColorSchemes {
		for _, v := range []RGB{c.Background, c.Text, c.Muted, c.Line, c.FaintLine, c.Dot, c.Accent} {
			if !v.Valid() {
				t.Errorf("color scheme %q has invalid colour %+v", name, v)
			}
		}
	}
	if _, ok := LookupDevice("remarkable2"); !ok {
		t.Error("LookupDevice(remarkable2) not found")
	}
	if _, ok := LookupDensity("nope"); ok {
		t.Error("LookupDensity(nope) found")
	}
}
