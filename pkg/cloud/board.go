package cloud

// Board is the occupancy bitmap of the canvas. Bits are only ever set;
// a fresh layout pass starts from a fresh board.
type Board struct {
	bm            *Bitmap
	width, height int
}

// NewBoard returns an empty board for a width×height canvas. Rows are
// padded to a whole number of words.
func NewBoard(width, height int) *Board {
	return &Board{bm: NewBitmap(width, height), width: width, height: height}
}

// Collides reports whether t's sprite, at its current anchor, shares a set
// bit with the board.
func (b *Board) Collides(t *Tag) bool {
	return b.walk(t, false)
}

// Merge ORs t's sprite into the board at its current anchor.
func (b *Board) Merge(t *Tag) {
	b.walk(t, true)
}

// Bitmap exposes the underlying bits.
func (b *Board) Bitmap() *Bitmap { return b.bm }

// walk visits every board word t's sprite overlaps. Sprite rows are shifted
// right by the sub-word offset of the tag's left edge, so each row touches
// Words()+1 board words. With merge set it ORs, otherwise it returns true at
// the first non-zero AND.
func (b *Board) walk(t *Tag, merge bool) bool {
	w := t.Words()
	if w == 0 || len(t.Sprite) == 0 {
		return false
	}
	lx := t.X + t.X0
	sx := uint(lx & (wordBits - 1))
	col := lx >> 5
	stride := b.bm.Stride

	for j := 0; j < t.Y1-t.Y0; j++ {
		y := t.Y + t.Y0 + j
		if y < 0 || y >= b.height {
			continue
		}
		row := b.bm.Row(y)
		src := t.Sprite[j*w : (j+1)*w]
		var last uint32
		for i := 0; i <= w; i++ {
			var cur uint32
			if i < w {
				cur = src[i]
			}
			v := shiftRight(last, cur, sx)
			last = cur
			c := col + i
			if v == 0 || c < 0 || c >= stride {
				continue
			}
			if merge {
				row[c] |= v
			} else if row[c]&v != 0 {
				return true
			}
		}
	}
	return false
}
