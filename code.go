package huffman

import (
	"fmt"
	"strconv"
	"strings"
)

// Code represents the sequence of bits that leads from the root of a tree to
// one of its leaves.  Each byte of a Code is either '0' or '1'.
//
// The Code of a tree whose root is itself a leaf is the empty string.
//
type Code string

// Size returns the number of bits in this Code.
func (hc Code) Size() int {
	return len(hc)
}

// HasPrefix returns true iff other is a prefix of this Code.
func (hc Code) HasPrefix(other Code) bool {
	return strings.HasPrefix(string(hc), string(other))
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(string(hc))
}

var _ fmt.Stringer = Code("")
