package huffman

import (
	_ "embed"
	"strings"

	"github.com/pkg/errors"
)

// The standard tree was built from a passage of English prose with the
// mandatory symbols widened in, so it can encode most English text.  The test
// tree covers only the characters of "a man, a plan, a canal, panama".

//go:embed trees/standard.bits
var standardTreeBits string

//go:embed trees/test.bits
var testTreeBits string

const (
	// StandardTreeName names the standard reference tree.
	StandardTreeName = "standard"

	// TestTreeName names the small test reference tree.
	TestTreeName = "test"
)

// ErrUnknownTree is returned by ReferenceTree for a name it does not know.
var ErrUnknownTree = errors.New("huffman: unknown reference tree")

// ReferenceTreeNames lists the names accepted by ReferenceTree.
func ReferenceTreeNames() []string {
	return []string{StandardTreeName, TestTreeName}
}

// ReferenceTreeBits returns the bit representation of the named reference
// tree.
func ReferenceTreeBits(name string) (string, error) {
	switch name {
	case StandardTreeName:
		return strings.TrimSpace(standardTreeBits), nil
	case TestTreeName:
		return strings.TrimSpace(testTreeBits), nil
	default:
		return "", errors.Wrapf(ErrUnknownTree, "%q", name)
	}
}

// ReferenceTree loads the named reference tree through ParseTree.  As with
// ParseTree, an error wrapping ErrTrailingBits accompanies a usable tree.
func ReferenceTree(name string) (Node, error) {
	bits, err := ReferenceTreeBits(name)
	if err != nil {
		return nil, err
	}
	root, err := ParseTree(bits)
	if err != nil {
		return root, errors.Wrapf(err, "loading %s tree", name)
	}
	return root, nil
}

// StandardTree loads the standard reference tree.
func StandardTree() (Node, error) {
	return ReferenceTree(StandardTreeName)
}

// TestTree loads the small test reference tree.
func TestTree() (Node, error) {
	return ReferenceTree(TestTreeName)
}
