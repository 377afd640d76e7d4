package cloud

import "math"

// place walks the spiral out from t's current anchor until t fits.
//
// Candidates whose occupancy rectangle leaves the canvas are skipped. The
// first tag of a pass takes the first in-bounds candidate; later tags must
// not collide with the board and must overlap the running bounds, which
// keeps the cloud contiguous. On success the sprite is merged into the
// board. The search gives up once the spiral has left every point that
// could still be on the canvas; t's anchor is then restored.
func (p *pass) place(t *Tag) bool {
	startX, startY := t.X, t.Y
	w, h := p.params.Width, p.params.Height
	maxDelta := math.Hypot(float64(w), float64(h))
	next := newSpiral(p.params.Mode, w, h)

	for step := 0; ; step++ {
		fx, fy := next(step)
		dx, dy := int(fx), int(fy)
		if math.Min(math.Abs(float64(dx)), math.Abs(float64(dy))) >= maxDelta {
			break
		}

		t.X, t.Y = startX+dx, startY+dy
		if t.X+t.X0 < 0 || t.Y+t.Y0 < 0 || t.X+t.X1 > w || t.Y+t.Y1 > h {
			continue
		}
		if p.bounds.Valid && (p.board.Collides(t) || !p.bounds.Touches(t)) {
			continue
		}
		p.board.Merge(t)
		return true
	}

	t.X, t.Y = startX, startY
	return false
}
