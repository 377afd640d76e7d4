package glyph

import "testing"

func TestRendererMeasure(t *testing.T) {
	r := NewRenderer(nil)
	defer r.Close()

	small, err := r.Measure("hello", Font{Family: "sans", Size: 10})
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	large, err := r.Measure("hello", Font{Family: "sans", Size: 40})
	if err != nil {
		t.Fatalf("Measure() error: %v", err)
	}
	if small.Width <= 0 || small.Height <= 0 {
		t.Fatalf("Measure() = %+v, want positive extent", small)
	}
	if large.Width <= small.Width*3 {
		t.Errorf("40px width %v should be ~4x 10px width %v", large.Width, small.Width)
	}

	empty, _ := r.Measure("", Font{Family: "sans", Size: 20})
	if empty.Width != 0 {
		t.Errorf("Measure(\"\").Width = %v, want 0", empty.Width)
	}
}

func TestRendererFaceCache(t *testing.T) {
	r := NewRenderer(nil)
	defer r.Close()

	a := r.Face(Font{Family: "Go", Size: 12})
	b := r.Face(Font{Family: "sans", Weight: "400", Size: 12})
	if a != b {
		t.Error("equivalent fonts should share a cached face")
	}
	if c := r.Face(Font{Family: "sans", Size: 13}); c == a {
		t.Error("different sizes should not share a face")
	}
}

func inked(s Surface) (count int, minX, minY, maxX, maxY int) {
	minX, minY = s.Width(), s.Height()
	maxX, maxY = -1, -1
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Alpha(x, y) == 0 {
				continue
			}
			count++
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	return
}

func TestSurfaceDrawText(t *testing.T) {
	r := NewRenderer(nil)
	defer r.Close()
	s := r.NewSurface(128, 64)

	if n, _, _, _, _ := inked(s); n != 0 {
		t.Fatalf("new surface has %d inked pixels", n)
	}

	s.DrawText("Wx", Font{Family: "sans", Size: 24}, 64, 40, 0, 0)
	n, minX, _, maxX, maxY := inked(s)
	if n == 0 {
		t.Fatal("DrawText produced no ink")
	}
	if maxY > 40+8 {
		t.Errorf("ink extends to y=%d, expected near baseline 40", maxY)
	}
	if mid := (minX + maxX) / 2; mid < 58 || mid > 70 {
		t.Errorf("ink centre x=%d, want ~64", mid)
	}

	plain := n
	s.Clear()
	if n, _, _, _, _ := inked(s); n != 0 {
		t.Fatalf("Clear left %d inked pixels", n)
	}

	s.DrawText("Wx", Font{Family: "sans", Size: 24}, 64, 40, 0, 1)
	if outlined, _, _, _, _ := inked(s); outlined <= plain {
		t.Errorf("outlined ink %d should exceed plain ink %d", outlined, plain)
	}
}

func TestSurfaceDrawRotated(t *testing.T) {
	r := NewRenderer(nil)
	defer r.Close()
	s := r.NewSurface(128, 128)

	s.DrawText("MMMMM", Font{Family: "sans", Size: 16}, 64, 64, 90, 0)
	_, minX, minY, maxX, maxY := inked(s)
	if w, h := maxX-minX, maxY-minY; h <= w {
		t.Errorf("90 degree text should be taller than wide, got %dx%d", w, h)
	}
}

func TestSurfaceAlphaOutOfRange(t *testing.T) {
	s := NewRenderer(nil).NewSurface(4, 4)
	if s.Alpha(-1, 0) != 0 || s.Alpha(4, 4) != 0 {
		t.Error("Alpha outside the surface should be 0")
	}
}
