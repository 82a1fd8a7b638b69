package huffman

import (
	"github.com/pkg/errors"
)

var (
	// ErrEmptyAlphabet is returned by Build when the frequency table has no
	// entries, so there is nothing to build a tree from.
	ErrEmptyAlphabet = errors.New("huffman: empty alphabet")

	// ErrExhaustedBits is reported when a bit is required but the input has
	// run out.  Deserialize fails outright; Decode drops the incomplete
	// trailing character and keeps everything decoded before it.
	ErrExhaustedBits = errors.New("huffman: ran out of bits")

	// ErrMalformedBit is reported when a character other than '0' or '1'
	// appears where a bit is expected.
	ErrMalformedBit = errors.New("huffman: malformed bit")

	// ErrTreeTooDeep is returned by Deserialize for a bit representation that
	// nests Internal nodes deeper than MaxDepth.  No tree over the 8-bit
	// alphabet is that deep.
	ErrTreeTooDeep = errors.New("huffman: tree too deep")

	// ErrTrailingBits is reported when input remains after a complete tree
	// or the requested number of characters was read.  It is a warning: the
	// result returned alongside it is usable.
	ErrTrailingBits = errors.New("huffman: trailing bits")
)

func exhaustedAt(pos int) error {
	return errors.Wrapf(ErrExhaustedBits, "at bit %d", pos)
}

func malformedAt(pos int, ch byte) error {
	return errors.Wrapf(ErrMalformedBit, "%q at bit %d", ch, pos)
}

func trailingAt(pos int, n int) error {
	return errors.Wrapf(ErrTrailingBits, "%d unused bits starting at bit %d", n, pos)
}

func tooDeepAt(pos int) error {
	return errors.Wrapf(ErrTreeTooDeep, "at bit %d", pos)
}
