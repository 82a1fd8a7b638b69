package huffman

import (
	"github.com/chronos-tachyon/assert"
)

// BitCursor is a forward-only reader over a string of '0' and '1' characters.
// It cannot be rewound.
//
// Callers must check HasMore before every call to Next.
//
type BitCursor struct {
	bits string
	pos  int
}

// NewBitCursor returns a BitCursor positioned at the first character of bits.
func NewBitCursor(bits string) *BitCursor {
	return &BitCursor{bits: bits}
}

// HasMore returns true iff at least one more character can be read.
func (c *BitCursor) HasMore() bool {
	return c.pos < len(c.bits)
}

// Next returns the next character and advances past it.  The character is
// returned as-is; it is up to the caller to reject anything other than '0' or
// '1'.
//
// It is a programming error to call Next when HasMore is false.
//
func (c *BitCursor) Next() byte {
	assert.Assertf(c.pos < len(c.bits), "BitCursor.Next: read past end of %d bits", len(c.bits))
	ch := c.bits[c.pos]
	c.pos++
	return ch
}

// Pos returns the number of characters consumed so far.
func (c *BitCursor) Pos() int {
	return c.pos
}

// Remaining returns the number of characters not yet consumed.
func (c *BitCursor) Remaining() int {
	return len(c.bits) - c.pos
}
