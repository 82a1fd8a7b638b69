package huffman

import (
	"fmt"
	"strconv"
)

// Symbol represents one character of the alphabet.  The alphabet is fixed at
// 8-bit character codes, so every Symbol in 0 .. 255 is valid.
type Symbol byte

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(255)

// symbolBits is the number of bits used to represent a Symbol in a serialized
// tree.
const symbolBits = 8

// Bits returns the 8-character bit string for this Symbol, most significant
// bit first.
func (sym Symbol) Bits() string {
	var buf [symbolBits]byte
	for i := 0; i < symbolBits; i++ {
		if sym&(0x80>>uint(i)) != 0 {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf[:])
}

// String returns the Symbol as a single-quoted character literal.  Line breaks
// and other control characters are escaped so that a Symbol never disrupts
// line-oriented output.
func (sym Symbol) String() string {
	return strconv.QuoteRuneToASCII(rune(sym))
}

// GoString returns the Symbol as a Go expression.
func (sym Symbol) GoString() string {
	return fmt.Sprintf("Symbol(%d)", byte(sym))
}

var _ fmt.Stringer = Symbol(0)
var _ fmt.GoStringer = Symbol(0)
