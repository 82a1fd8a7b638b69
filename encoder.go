package huffman

import (
	"fmt"
	"io"
	"strings"
)

// Encode returns the concatenation of the Code of each byte of text.
//
// Bytes with no entry in codes are skipped: they contribute nothing to the
// output, and cannot be recovered by decoding.
//
func Encode(codes CodeTable, text []byte) string {
	out, _ := encode(codes, text)
	return out
}

func encode(codes CodeTable, text []byte) (string, int) {
	var sb strings.Builder
	var skipped int
	for _, ch := range text {
		hc, found := codes[Symbol(ch)]
		if !found {
			skipped++
			continue
		}
		sb.WriteString(string(hc))
	}
	return sb.String(), skipped
}

// Encoder encodes text with the codes of one tree.
type Encoder struct {
	codes   CodeTable
	skipped int
}

// Init initializes this Encoder with the codes derived from the tree rooted
// at root.
func (e *Encoder) Init(root Node) {
	*e = Encoder{codes: Derive(root)}
}

// Encode encodes text.  See the package-level Encode function.
func (e *Encoder) Encode(text []byte) string {
	out, skipped := encode(e.codes, text)
	e.skipped = skipped
	return out
}

// Skipped returns the number of bytes that the most recent call to Encode
// dropped because they have no Code.
func (e Encoder) Skipped() int {
	return e.skipped
}

// Codes returns the CodeTable used by this Encoder.
func (e Encoder) Codes() CodeTable {
	return e.codes
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	return e.codes.Dump(w)
}

// String returns a brief description of this Encoder.
func (e Encoder) String() string {
	return fmt.Sprintf("(Huffman encoder with %d symbols, with coded lengths of %d .. %d bits)",
		len(e.codes), e.codes.MinSize(), e.codes.MaxSize())
}

var _ fmt.Stringer = Encoder{}
