package huffman

import (
	"fmt"
	"io"
	"strings"

	"github.com/chronos-tachyon/assert"
	"go.uber.org/multierr"
)

// Decode decodes bits by walking the tree rooted at root: each Internal node
// consumes one bit and descends to its Zero or One child, and each Leaf emits
// its Symbol and restarts the walk at root.  Decoding continues until bits is
// exhausted.
//
// Decode never gives up on the whole input.  The decoded text is always
// returned, and the returned error, if non-nil, combines one diagnostic per
// anomaly (use multierr.Errors to list them):
//
//   - ErrMalformedBit: a character other than '0' or '1' was found.  The
//     character being decoded is dropped and decoding restarts at root with
//     the next bit.
//
//   - ErrExhaustedBits: bits ended partway through a code.  The incomplete
//     trailing character is dropped.
//
//   - ErrTrailingBits: root is a bare Leaf, which consumes no bits, so the
//     input could not be consumed.  Use DecodeN for such trees.
//
func Decode(root Node, bits string) (string, error) {
	return DecodeN(root, bits, -1)
}

// DecodeN is like Decode, but stops after n characters have been emitted.
// If n < 0, there is no limit.  Any bits left unread after the n'th character
// are reported with ErrTrailingBits.
//
// DecodeN is the only way to decode with a tree whose root is a bare Leaf:
// such a tree consumes zero bits per character, so the number of characters
// cannot be recovered from the bits alone.
//
func DecodeN(root Node, bits string, n int) (string, error) {
	assert.Assertf(!isNil(root), "DecodeN: root is nil")

	var sb strings.Builder
	var errs error
	c := NewBitCursor(bits)

	if leaf, ok := root.(*Leaf); ok {
		for i := 0; i < n; i++ {
			sb.WriteByte(byte(leaf.sym))
		}
	} else {
		for count := 0; (n < 0 || count < n) && c.HasMore(); {
			sym, err := decodeOne(root, c)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			sb.WriteByte(byte(sym))
			count++
		}
	}

	if c.HasMore() {
		errs = multierr.Append(errs, trailingAt(c.Pos(), c.Remaining()))
	}
	return sb.String(), errs
}

// decodeOne walks from root to a leaf, consuming one bit per Internal node.
func decodeOne(root Node, c *BitCursor) (Symbol, error) {
	n := root
	for {
		switch x := n.(type) {
		case *Leaf:
			return x.sym, nil

		case *Internal:
			if !c.HasMore() {
				return 0, exhaustedAt(c.Pos())
			}
			pos := c.Pos()
			bit := c.Next()
			child := x.Child(bit)
			if child == nil {
				return 0, malformedAt(pos, bit)
			}
			n = child
		}
	}
}

// Decoder decodes bits with one tree.
type Decoder struct {
	root Node
}

// Init initializes this Decoder to decode with the tree rooted at root.
func (d *Decoder) Init(root Node) {
	assert.Assertf(!isNil(root), "Decoder.Init: root is nil")
	*d = Decoder{root: root}
}

// Root returns the root of the tree used by this Decoder.
func (d Decoder) Root() Node {
	return d.root
}

// Decode decodes bits.  See the package-level Decode function.
func (d Decoder) Decode(bits string) (string, error) {
	return Decode(d.root, bits)
}

// DecodeN decodes at most n characters from bits.  See the package-level
// DecodeN function.
func (d Decoder) DecodeN(bits string, n int) (string, error) {
	return DecodeN(d.root, bits, n)
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	return Derive(d.root).Dump(w)
}

// String returns a brief description of this Decoder.
func (d Decoder) String() string {
	return fmt.Sprintf("(Huffman decoder with %d symbols, with a tree of depth %d)",
		len(Leaves(d.root)), Depth(d.root))
}

var _ fmt.Stringer = Decoder{}
