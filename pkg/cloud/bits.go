package cloud

import "math/bits"

// wordBits is the number of pixels packed into one sprite or board word.
const wordBits = 32

// roundUpWord rounds px up to the next multiple of wordBits.
func roundUpWord(px int) int {
	return (px + wordBits - 1) &^ (wordBits - 1)
}

// wordsFor returns the number of words that hold px pixels.
func wordsFor(px int) int {
	return (px + wordBits - 1) / wordBits
}

// bit returns the mask for pixel column x within its word. The leftmost
// pixel of a word is its most significant bit.
func bit(x int) uint32 {
	return 1 << (wordBits - 1 - uint(x&(wordBits-1)))
}

// shiftRight returns the word seen through a window that starts sx bits
// before cur: the low sx bits of prev followed by the high bits of cur.
// sx must be in [0, 32); a zero shift yields cur.
func shiftRight(prev, cur uint32, sx uint) uint32 {
	return prev<<(wordBits-sx) | cur>>sx
}

// Bitmap is a row-major 1-bit-per-pixel image.
type Bitmap struct {
	Stride int // words per row
	Rows   int
	Words  []uint32
}

// NewBitmap allocates a cleared bitmap wide enough for width pixels.
func NewBitmap(width, rows int) *Bitmap {
	stride := wordsFor(width)
	return &Bitmap{Stride: stride, Rows: rows, Words: make([]uint32, stride*rows)}
}

// Row returns the words of row y.
func (b *Bitmap) Row(y int) []uint32 {
	return b.Words[y*b.Stride : (y+1)*b.Stride]
}

// in reports whether (x, y) addresses a stored pixel.
func (b *Bitmap) in(x, y int) bool {
	return x >= 0 && y >= 0 && y < b.Rows && x>>5 < b.Stride
}

// Set sets pixel (x, y). Out-of-range pixels are ignored.
func (b *Bitmap) Set(x, y int) {
	if b.in(x, y) {
		b.Words[y*b.Stride+x>>5] |= bit(x)
	}
}

// Get reports whether pixel (x, y) is set.
func (b *Bitmap) Get(x, y int) bool {
	return b.in(x, y) && b.Words[y*b.Stride+x>>5]&bit(x) != 0
}

// Count returns the number of set pixels.
func (b *Bitmap) Count() int {
	n := 0
	for _, w := range b.Words {
		n += bits.OnesCount32(w)
	}
	return n
}
