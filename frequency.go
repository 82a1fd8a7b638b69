package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"
)

// FrequencyTable maps each Symbol to the number of times it occurs.  Symbols
// that never occurred have no entry unless the table was widened.
type FrequencyTable map[Symbol]uint64

// Count returns a FrequencyTable with one entry for each distinct byte of
// text.  An empty text yields an empty table.
func Count(text []byte) FrequencyTable {
	table := make(FrequencyTable)
	for _, ch := range text {
		table[Symbol(ch)]++
	}
	return table
}

// mandatorySymbols lists the characters that Widen guarantees an entry for,
// beyond the letters.
const mandatorySymbols = " !\"'(),-./\n\r:;?"

// MandatorySymbols returns the fixed set of symbols that a widened table
// always contains: all uppercase letters, all lowercase letters, and the
// common punctuation and whitespace of English text.
func MandatorySymbols() []Symbol {
	out := make([]Symbol, 0, 26+26+len(mandatorySymbols))
	for ch := 'A'; ch <= 'Z'; ch++ {
		out = append(out, Symbol(ch))
	}
	for ch := 'a'; ch <= 'z'; ch++ {
		out = append(out, Symbol(ch))
	}
	for i := 0; i < len(mandatorySymbols); i++ {
		out = append(out, Symbol(mandatorySymbols[i]))
	}
	return out
}

// Widen returns a copy of this table in which every Symbol of mandatory has
// an entry.  Symbols that were absent are given frequency 0; existing counts
// are left untouched.
//
// A tree built from a widened table can encode the mandatory symbols even if
// the source text never used them.
//
func (table FrequencyTable) Widen(mandatory []Symbol) FrequencyTable {
	out := make(FrequencyTable, len(table)+len(mandatory))
	for sym, freq := range table {
		out[sym] = freq
	}
	for _, sym := range mandatory {
		if _, found := out[sym]; !found {
			out[sym] = 0
		}
	}
	return out
}

// Symbols returns the symbols of this table in ascending order.
func (table FrequencyTable) Symbols() []Symbol {
	out := make(bySymbol, 0, len(table))
	for sym := range table {
		out = append(out, sym)
	}
	out.Sort()
	return out
}

// FrequencyStats summarizes a FrequencyTable.
type FrequencyStats struct {
	// Unique is the number of symbols that occurred at least once.
	Unique int

	// Total is the sum of all frequencies.
	Total uint64
}

// Stats computes summary statistics for this table.  Entries with frequency
// 0, such as those added by Widen, are not counted as unique.
func (table FrequencyTable) Stats() FrequencyStats {
	var stats FrequencyStats
	for _, freq := range table {
		if freq > 0 {
			stats.Unique++
			stats.Total += freq
		}
	}
	return stats
}

// Dump writes a programmer-readable debugging dump of the table to the given
// writer, in ascending Symbol order.
func (table FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	for _, sym := range table.Symbols() {
		fmt.Fprintf(&buf, "\t%v: %d\n", sym, table[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type bySymbol {{{

type bySymbol []Symbol

func (list bySymbol) Sort() {
	sort.Sort(list)
}

func (list bySymbol) Len() int {
	return len(list)
}

func (list bySymbol) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySymbol) Less(i, j int) bool {
	return list[i] < list[j]
}

var _ sort.Interface = bySymbol(nil)

// }}}
