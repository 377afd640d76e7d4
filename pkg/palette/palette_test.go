package palette

import (
	"fmt"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestLinearEndpoints(t *testing.T) {
	black := colorful.Color{}
	l := NewLinear(white, black)

	if got := l.Hex(0); got != "#ffffff" {
		t.Errorf("At(0) = %s, want #ffffff", got)
	}
	if got := l.Hex(1); got != "#000000" {
		t.Errorf("At(1) = %s, want #000000", got)
	}
	if got := l.Hex(-3); got != "#ffffff" {
		t.Errorf("At(-3) = %s, want clamp to #ffffff", got)
	}
	if got := l.Hex(7); got != "#000000" {
		t.Errorf("At(7) = %s, want clamp to #000000", got)
	}
	if got := l.Hex(math.NaN()); got != "#ffffff" {
		t.Errorf("At(NaN) = %s, want #ffffff", got)
	}
}

func TestLinearMonotonicLightness(t *testing.T) {
	l := Default()
	prev := math.Inf(1)
	for i := 0; i <= 10; i++ {
		lum, _, _ := l.At(float64(i) / 10).Lab()
		if lum > prev+0.01 {
			t.Fatalf("lightness increased at t=%v: %v > %v", float64(i)/10, lum, prev)
		}
		prev = lum
	}
	if got := l.Hex(1); got != DefaultBase {
		t.Errorf("Default().At(1) = %s, want %s", got, DefaultBase)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec      string
		wantStops int
		wantErr   bool
	}{
		{"", 2, false},
		{"#3b5998", 2, false},
		{"3b5998", 2, false},
		{"#fff, #3b5998, #000", 3, false},
		{"#zzzzzz", 0, true},
		{"#fff,nope", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			l, err := Parse(tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
			if err == nil && len(l.Stops()) != tt.wantStops {
				t.Errorf("Parse(%q) stops = %v, want %d", tt.spec, l.Stops(), tt.wantStops)
			}
		})
	}
}

func TestSingleStop(t *testing.T) {
	red := colorful.Color{R: 1}
	l := NewLinear(red)
	if l.Hex(0.5) != "#ff0000" {
		t.Errorf("single stop should be constant, got %s", l.Hex(0.5))
	}
	if (&Linear{}).Hex(0.5) != "#000000" {
		t.Error("empty scale should yield black")
	}
}

func ExampleParse() {
	l, _ := Parse("#ffffff,#000000")
	fmt.Println(l.Hex(0), l.Hex(1))
	// Output: #ffffff #000000
}
