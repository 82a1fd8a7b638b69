package huffman

import (
	"strings"
	"testing"
)

func TestDisplay(t *testing.T) {
	root, err := Build(FrequencyTable{'a': 3, 'b': 1, '\n': 1})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	type testRow struct {
		name    string
		allBits bool
		expect  string
	}

	testData := [...]testRow{
		{
			name:    "branches",
			allBits: false,
			expect: strings.Join([]string{
				"0 0 '\\n'\n",
				"  1 'b'\n",
				"1 'a'\n",
			}, ""),
		},
		{
			name:    "all bits",
			allBits: true,
			expect: strings.Join([]string{
				"0 0 '\\n'\n",
				"0 1 'b'\n",
				"1 'a'\n",
			}, ""),
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var buf strings.Builder
			if err := Display(&buf, root, row.allBits); err != nil {
				t.Fatalf("Display failed: %v", err)
			}
			if actual := buf.String(); actual != row.expect {
				t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
			}
		})
	}
}

func TestDisplay_SingleLeaf(t *testing.T) {
	var buf strings.Builder
	if err := Display(&buf, NewLeaf('x', 1), true); err != nil {
		t.Fatalf("Display failed: %v", err)
	}
	if expect, actual := "'x'\n", buf.String(); expect != actual {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
}
