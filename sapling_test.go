package sapling

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertPoint(t *testing.T, name string, got, want Point) {
	t.Helper()
	if math.Abs(got.X-want.X) > epsilon || math.Abs(got.Y-want.Y) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", Color{1, 1, 1, 1}},
		{"#000", Color{0, 0, 0, 1}},
		{"f00", Color{1, 0, 0, 1}},
		{"#0f08", Color{0, 1, 0, 136.0 / 255}},
		{"#336699", Color{0x33 / 255.0, 0x66 / 255.0, 0x99 / 255.0, 1}},
		{"#33669980", Color{0x33 / 255.0, 0x66 / 255.0, 0x99 / 255.0, 0x80 / 255.0}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if err != nil {
				t.Fatalf("ParseColor(%q): %v", tt.in, err)
			}
			assertNear(t, "R", got.R, tt.want.R)
			assertNear(t, "G", got.G, tt.want.G)
			assertNear(t, "B", got.B, tt.want.B)
			assertNear(t, "A", got.A, tt.want.A)
		})
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#12345", "#ggg", "#12345z"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) = nil error, want error", in)
		}
	}
}

func TestMustParseColorPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustParseColor("nope")
}

func TestColorRGBAPremultiplied(t *testing.T) {
	c := Color{1, 0, 0, 0.5}
	p := c.toRGBA()
	if p.R != 127 || p.A != 127 || p.G != 0 {
		t.Errorf("toRGBA = %+v, want R=127 A=127", p)
	}
}

func TestEventTypeNames(t *testing.T) {
	for et := EventMouseMove; et <= EventClick; et++ {
		got, ok := ParseEventType(et.String())
		if !ok || got != et {
			t.Errorf("ParseEventType(%q) = %v, %v", et.String(), got, ok)
		}
	}
	if _, ok := ParseEventType("dblclick"); ok {
		t.Error("dblclick should not parse")
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseAtTarget.String() != "atTarget" {
		t.Errorf("PhaseAtTarget = %q", PhaseAtTarget.String())
	}
}
