package huffman

import (
	"bufio"
	"io"
)

// Display writes a drawing of the tree rooted at root to w, with the root at
// the left and one leaf per line at the right.  Each branch is labeled with
// its bit, followed by a space.
//
// If allBits is true, every line repeats the full path of bits leading to its
// leaf.  Otherwise each branch bit is drawn only once and the rest of the path
// is indented with spaces, which shows the branching structure.
//
// For the tree with codes {a:"1", b:"00", c:"01"} and allBits == false:
//
//     0 0 'b'
//       1 'c'
//     1 'a'
//
func Display(w io.Writer, root Node, allBits bool) error {
	bw := bufio.NewWriter(w)
	prefix := make([]byte, 0, 2*Depth(root))
	displayNode(bw, root, prefix, allBits)
	return bw.Flush()
}

func displayNode(bw *bufio.Writer, n Node, prefix []byte, allBits bool) {
	switch x := n.(type) {
	case *Leaf:
		bw.WriteString(x.sym.String())
		bw.WriteByte('\n')

	case *Internal:
		displayBranch(bw, x.zero, '0', prefix, allBits)
		bw.Write(prefix)
		displayBranch(bw, x.one, '1', prefix, allBits)
	}
}

func displayBranch(bw *bufio.Writer, child Node, bit byte, prefix []byte, allBits bool) {
	bw.WriteByte(bit)
	bw.WriteByte(' ')
	if allBits {
		prefix = append(prefix, bit, ' ')
	} else {
		prefix = append(prefix, ' ', ' ')
	}
	displayNode(bw, child, prefix, allBits)
}
