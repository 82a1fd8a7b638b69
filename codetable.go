package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// CodeTable maps each leaf Symbol of a tree to its Code.
//
// A CodeTable is always derived from a tree; see Derive.
//
type CodeTable map[Symbol]Code

// Derive walks the tree rooted at root and returns the Code of every leaf.
// Descending into the Zero child appends '0' to the code, and descending into
// the One child appends '1'.
//
// Because codes only end at leaves, no Code in the result is a prefix of
// another.  If root is itself a Leaf, its Code is empty.
//
func Derive(root Node) CodeTable {
	codes := make(CodeTable)
	if isNil(root) {
		return codes
	}
	deriveNode(codes, root, make([]byte, 0, Depth(root)))
	return codes
}

func deriveNode(codes CodeTable, n Node, prefix []byte) {
	switch x := n.(type) {
	case *Leaf:
		codes[x.sym] = Code(prefix)
	case *Internal:
		deriveNode(codes, x.zero, append(prefix, '0'))
		deriveNode(codes, x.one, append(prefix, '1'))
	}
}

// Symbols returns the symbols of this table in ascending order.
func (codes CodeTable) Symbols() []Symbol {
	out := make(bySymbol, 0, len(codes))
	for sym := range codes {
		out = append(out, sym)
	}
	out.Sort()
	return out
}

// MinSize is the bit length of the shortest Code.
func (codes CodeTable) MinSize() int {
	first := true
	var min int
	for _, hc := range codes {
		if first || hc.Size() < min {
			min = hc.Size()
			first = false
		}
	}
	return min
}

// MaxSize is the bit length of the longest Code.
func (codes CodeTable) MaxSize() int {
	var max int
	for _, hc := range codes {
		if hc.Size() > max {
			max = hc.Size()
		}
	}
	return max
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer, in ascending Symbol order.
func (codes CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", codes.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", codes.MaxSize())
	for _, sym := range codes.Symbols() {
		fmt.Fprintf(&buf, "\tEncode(%v) = %s\n", sym, codes[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
