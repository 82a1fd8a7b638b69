package huffman

import (
	"errors"
	"strings"
	"testing"
)

func TestSerialize_SingleLeaf(t *testing.T) {
	expect := "101111000"
	actual := Serialize(NewLeaf('x', 0))
	if expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}

	root, err := ParseTree(actual)
	if err != nil {
		t.Fatalf("ParseTree failed: %v", err)
	}
	leaf, ok := root.(*Leaf)
	if !ok {
		t.Fatalf("expected a bare *Leaf, got %T", root)
	}
	if leaf.Symbol() != 'x' {
		t.Errorf("expected 'x', got %v", leaf.Symbol())
	}
	if leaf.Frequency() != 0 {
		t.Errorf("expected frequency 0, got %d", leaf.Frequency())
	}
}

func TestSerialize_Scenario(t *testing.T) {
	root, err := Build(FrequencyTable{'a': 3, 'b': 1, 'c': 1})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	expect := "0" + "0" + "1" + Symbol('b').Bits() + "1" + Symbol('c').Bits() + "1" + Symbol('a').Bits()
	actual := Serialize(root)
	if expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
}

func TestSerialize_RoundTrip(t *testing.T) {
	texts := []string{
		"x",
		"ab",
		"a man, a plan, a canal, panama",
		"It was the best of times, it was the worst of times.\r\n",
		"\x00\x01\x02\xfe\xff\xff",
	}
	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			root, err := Build(Count([]byte(text)))
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			bits := Serialize(root)
			loaded, err := ParseTree(bits)
			if err != nil {
				t.Fatalf("ParseTree failed: %v", err)
			}
			if !Equal(root, loaded) {
				t.Errorf("tree changed by round trip:\n\texpect: %s\n\tactual: %s", bits, Serialize(loaded))
			}
		})
	}
}

func TestDeserialize_Errors(t *testing.T) {
	type testRow struct {
		name   string
		bits   string
		expect error
		pos    int
	}

	testData := [...]testRow{
		{name: "empty", bits: "", expect: ErrExhaustedBits},
		{name: "lone internal", bits: "0", expect: ErrExhaustedBits},
		{name: "short leaf", bits: "1011", expect: ErrExhaustedBits},
		{name: "missing one child", bits: "0101111000", expect: ErrExhaustedBits},
		{name: "bad node type", bits: "2", expect: ErrMalformedBit},
		{name: "bad leaf bit", bits: "10111x000", expect: ErrMalformedBit},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			root, err := Deserialize(NewBitCursor(row.bits))
			if !errors.Is(err, row.expect) {
				t.Errorf("expected %v, got %v", row.expect, err)
			}
			if root != nil {
				t.Errorf("expected no tree, got %v", root)
			}
		})
	}
}

func TestDeserialize_CursorPosition(t *testing.T) {
	c := NewBitCursor("101111000" + "0110")
	root, err := Deserialize(c)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if !Equal(root, NewLeaf('x', 0)) {
		t.Errorf("wrong tree: %v", root)
	}
	if c.Pos() != 9 {
		t.Errorf("expected cursor at 9, got %d", c.Pos())
	}
	if c.Remaining() != 4 {
		t.Errorf("expected 4 bits remaining, got %d", c.Remaining())
	}
}

func TestParseTree_TrailingBits(t *testing.T) {
	root, err := ParseTree("101111000" + "01")
	if !errors.Is(err, ErrTrailingBits) {
		t.Fatalf("expected ErrTrailingBits, got %v", err)
	}
	if !Equal(root, NewLeaf('x', 0)) {
		t.Errorf("expected the tree to be returned with the warning, got %v", root)
	}
}

// chain returns a tree of the given depth in which every Internal node has a
// Leaf as its Zero child.
func chain(depth int) Node {
	var root Node = NewLeaf(Symbol(depth&0xff), 0)
	for i := depth - 1; i >= 0; i-- {
		root = NewInternal(NewLeaf(Symbol(i&0xff), 0), root)
	}
	return root
}

func TestDeserialize_Depth(t *testing.T) {
	deepest := chain(MaxDepth)
	root, err := ParseTree(Serialize(deepest))
	if err != nil {
		t.Fatalf("ParseTree failed on a tree of depth %d: %v", MaxDepth, err)
	}
	if !Equal(root, deepest) {
		t.Errorf("wrong tree for depth %d", MaxDepth)
	}

	type testRow struct {
		name string
		bits string
	}

	testData := [...]testRow{
		{name: "one level too deep", bits: Serialize(chain(MaxDepth + 1))},
		{name: "run of zeros", bits: strings.Repeat("0", 1<<20)},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			root, err := ParseTree(row.bits)
			if !errors.Is(err, ErrTreeTooDeep) {
				t.Errorf("expected ErrTreeTooDeep, got %v", err)
			}
			if root != nil {
				t.Errorf("expected no tree, got %v", root)
			}
		})
	}
}
