package huffman

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// Node is a node of a Huffman tree.  It is always either a *Leaf or an
// *Internal; no other implementations exist.
//
// Trees are immutable once built.  It is safe to share a tree between
// goroutines that only encode, decode, or serialize with it.
//
type Node interface {
	// Frequency returns the total number of occurrences of the symbols at or
	// below this node.  Trees loaded by Deserialize have frequency 0
	// everywhere.
	Frequency() uint64

	fmt.Stringer

	isNode()
}

// Leaf is a Node that holds exactly one Symbol and has no children.
type Leaf struct {
	sym  Symbol
	freq uint64
}

// NewLeaf constructs a Leaf.
func NewLeaf(sym Symbol, freq uint64) *Leaf {
	return &Leaf{sym: sym, freq: freq}
}

// Symbol returns the Symbol held by this Leaf.
func (leaf *Leaf) Symbol() Symbol {
	return leaf.sym
}

// Frequency fulfills Node.
func (leaf *Leaf) Frequency() uint64 {
	return leaf.freq
}

// String returns a brief description of this Leaf.
func (leaf *Leaf) String() string {
	return fmt.Sprintf("Leaf(%v, %d)", leaf.sym, leaf.freq)
}

func (*Leaf) isNode() {}

// Internal is a Node with exactly two children, labeled Zero and One after
// the bit that selects them.
type Internal struct {
	zero Node
	one  Node
	freq uint64
}

// NewInternal constructs an Internal node whose frequency is the sum of its
// children's frequencies.  Both children must be non-nil.
func NewInternal(zero Node, one Node) *Internal {
	assert.Assertf(!isNil(zero), "NewInternal: zero child is nil")
	assert.Assertf(!isNil(one), "NewInternal: one child is nil")
	return &Internal{
		zero: zero,
		one:  one,
		freq: zero.Frequency() + one.Frequency(),
	}
}

// Zero returns the child selected by a '0' bit.
func (in *Internal) Zero() Node {
	return in.zero
}

// One returns the child selected by a '1' bit.
func (in *Internal) One() Node {
	return in.one
}

// Child returns the child selected by the given bit character, or nil if bit
// is neither '0' nor '1'.
func (in *Internal) Child(bit byte) Node {
	switch bit {
	case '0':
		return in.zero
	case '1':
		return in.one
	default:
		return nil
	}
}

// Frequency fulfills Node.
func (in *Internal) Frequency() uint64 {
	return in.freq
}

// String returns a brief description of this Internal node.
func (in *Internal) String() string {
	return fmt.Sprintf("Internal(%d)", in.freq)
}

func (*Internal) isNode() {}

var _ Node = (*Leaf)(nil)
var _ Node = (*Internal)(nil)

// Equal returns true iff a and b have the same shape and the same Symbol at
// each leaf.  Frequencies are not compared, since they do not survive
// serialization.
func Equal(a, b Node) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	switch x := a.(type) {
	case *Leaf:
		y, ok := b.(*Leaf)
		return ok && x.sym == y.sym
	case *Internal:
		y, ok := b.(*Internal)
		return ok && Equal(x.zero, y.zero) && Equal(x.one, y.one)
	default:
		return false
	}
}

// Leaves returns the Symbols of every leaf under root, in preorder.
func Leaves(root Node) []Symbol {
	var out []Symbol
	var walk func(Node)
	walk = func(n Node) {
		switch x := n.(type) {
		case *Leaf:
			out = append(out, x.sym)
		case *Internal:
			walk(x.zero)
			walk(x.one)
		}
	}
	if !isNil(root) {
		walk(root)
	}
	return out
}

// Depth returns the length of the longest path from root to a leaf.  A tree
// consisting of a single leaf has depth 0.
func Depth(root Node) int {
	in, ok := root.(*Internal)
	if !ok || in == nil {
		return 0
	}
	zd, od := Depth(in.zero), Depth(in.one)
	if zd < od {
		zd = od
	}
	return zd + 1
}

func isNil(n Node) bool {
	switch x := n.(type) {
	case nil:
		return true
	case *Leaf:
		return x == nil
	case *Internal:
		return x == nil
	default:
		return false
	}
}
