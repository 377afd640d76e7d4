package cloud

import "math"

// Mode selects the spiral the placer walks.
type Mode string

const (
	ModeSpiral      Mode = "spiral"
	ModeRectangular Mode = "rectangular"
)

// spiral returns the offset from the seed point at step t = 0, 1, 2, ….
// Rectangular spirals are stateful, so each placement needs a fresh one.
type spiral func(t int) (dx, dy float64)

// newSpiral returns a fresh spiral for mode over a width×height canvas.
func newSpiral(mode Mode, width, height int) spiral {
	if mode == ModeRectangular {
		return rectangularSpiral(width, height)
	}
	return archimedeanSpiral(width, height)
}

// archimedeanSpiral stretches r = θ horizontally by the canvas aspect ratio.
func archimedeanSpiral(width, height int) spiral {
	e := float64(width) / float64(height)
	return func(t int) (float64, float64) {
		a := float64(t) * 0.1
		return e * a * math.Cos(a), a * math.Sin(a)
	}
}

// rectangularSpiral walks the perimeters of growing rectangles. The side
// taken at step t is chosen from the triangular root of t: the run lengths
// 1, 1, 2, 2, 3, 3, … fall out of ⌊√(1+4t)−1⌋ mod 4.
func rectangularSpiral(width, height int) spiral {
	const dy = 4.0
	dx := dy * float64(width) / float64(height)
	var x, y float64
	return func(t int) (float64, float64) {
		switch int(math.Sqrt(float64(1+4*t))-1) & 3 {
		case 0:
			x += dx
		case 1:
			y += dy
		case 2:
			x -= dx
		default:
			y -= dy
		}
		return x, y
	}
}
