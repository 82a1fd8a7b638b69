package huffman

import (
	"strings"
)

// Serialize returns the bit representation of the tree rooted at root.
//
// Nodes are written in preorder.  An Internal node is written as '0'
// followed by its Zero subtree and then its One subtree.  A Leaf is written
// as '1' followed by the 8 bits of its Symbol, most significant bit first.
// Frequencies are not written.
//
func Serialize(root Node) string {
	var sb strings.Builder
	serializeNode(&sb, root)
	return sb.String()
}

func serializeNode(sb *strings.Builder, n Node) {
	switch x := n.(type) {
	case *Leaf:
		sb.WriteByte('1')
		sb.WriteString(x.sym.Bits())
	case *Internal:
		sb.WriteByte('0')
		serializeNode(sb, x.zero)
		serializeNode(sb, x.one)
	}
}

// Deserialize reads exactly one tree from c, in the format produced by
// Serialize.  Every Leaf of the result has frequency 0.
//
// If c runs out before the tree is complete, Deserialize returns an error
// wrapping ErrExhaustedBits.  If a character other than '0' or '1' is
// encountered, it returns an error wrapping ErrMalformedBit.  If the tree
// would be deeper than MaxDepth, it returns an error wrapping ErrTreeTooDeep.
// In all cases no tree is returned.
//
// Deserialize does not check whether c has characters left over; see
// ParseTree.
//
func Deserialize(c *BitCursor) (Node, error) {
	return deserializeNode(c, 0)
}

// MaxDepth is the greatest depth of any tree over the 8-bit alphabet: a tree
// with 256 distinct leaves has at most 255 levels of Internal nodes above its
// deepest leaf.
const MaxDepth = int(MaxSymbol)

func deserializeNode(c *BitCursor, depth int) (Node, error) {
	if !c.HasMore() {
		return nil, exhaustedAt(c.Pos())
	}
	pos := c.Pos()
	switch ch := c.Next(); ch {
	case '0':
		if depth >= MaxDepth {
			return nil, tooDeepAt(pos)
		}
		zero, err := deserializeNode(c, depth+1)
		if err != nil {
			return nil, err
		}
		one, err := deserializeNode(c, depth+1)
		if err != nil {
			return nil, err
		}
		return NewInternal(zero, one), nil

	case '1':
		var sym Symbol
		for i := 0; i < symbolBits; i++ {
			if !c.HasMore() {
				return nil, exhaustedAt(c.Pos())
			}
			bitPos := c.Pos()
			bit := c.Next()
			if !isBit(bit) {
				return nil, malformedAt(bitPos, bit)
			}
			sym = (sym << 1) | Symbol(bit-'0')
		}
		return NewLeaf(sym, 0), nil

	default:
		return nil, malformedAt(pos, ch)
	}
}

// ParseTree deserializes the tree held in bits.
//
// If bits holds a complete tree followed by extra characters, ParseTree
// returns the tree together with an error wrapping ErrTrailingBits.  The tree
// is usable in that case; callers that only want to warn about the leftover
// input should test for it with errors.Is.
//
func ParseTree(bits string) (Node, error) {
	c := NewBitCursor(bits)
	root, err := Deserialize(c)
	if err != nil {
		return nil, err
	}
	if c.HasMore() {
		return root, trailingAt(c.Pos(), c.Remaining())
	}
	return root, nil
}
