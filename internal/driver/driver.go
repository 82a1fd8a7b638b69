// Package driver runs the build, display, encode, and decode stages of the
// huffman command against files on disk.
package driver

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	huffman "github.com/chronos-tachyon/huffmantree"
	"github.com/chronos-tachyon/huffmantree/internal/config"
	"github.com/chronos-tachyon/huffmantree/internal/store"
)

// Tree is a Huffman tree together with where it came from.
type Tree struct {
	// Root is the root of the tree.  It is never nil.
	Root huffman.Node

	// Source is the tree source that actually produced Root.  It differs
	// from the configured source when MakeTree fell back to the standard
	// tree.
	Source string

	// Frequencies is the table the tree was built from, or nil for trees
	// loaded from a bit representation.
	Frequencies huffman.FrequencyTable
}

// Report summarizes a call to Run.
type Report struct {
	Tree *Tree

	// Encoded is the output of the encode stage, if it ran.
	Encoded string

	// Skipped counts the input bytes the encode stage could not encode.
	Skipped int

	// Decoded is the output of the decode stage, if it ran.
	Decoded string

	// Warnings combines every non-fatal problem.  Use multierr.Errors to
	// list them.
	Warnings error
}

// Driver carries the configuration and output streams shared by the stages.
type Driver struct {
	cfg    *config.Config
	format store.Format
	out    io.Writer
	logger zerolog.Logger

	// encoded maps each file written by Encode to the number of characters
	// it holds.  Decode needs the count for single-symbol trees.
	encoded map[string]int
}

// ErrUnknownCount is reported by Decode when the tree is a single Leaf and
// the input was not written by this Driver's Encode.  Such a tree encodes
// every character as zero bits, so the character count cannot be recovered
// from the file and nothing is decoded.
var ErrUnknownCount = errors.New("single-symbol tree: character count unknown")

// New returns a Driver that prints its results to out and its diagnostics to
// logger.
func New(cfg *config.Config, out io.Writer, logger zerolog.Logger) (*Driver, error) {
	format, err := store.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	return &Driver{cfg: cfg, format: format, out: out, logger: logger, encoded: make(map[string]int)}, nil
}

// MakeTree produces the configured tree.  If the configured source cannot
// produce a tree, a warning is logged and the standard tree is used instead;
// the returned error is non-nil only if the standard tree fails as well.
func (d *Driver) MakeTree() (*Tree, error) {
	tree, err := d.makeTree(d.cfg.Tree.Source)
	if err == nil {
		return tree, nil
	}
	if d.cfg.Tree.Source == config.SourceStandard {
		return nil, errors.Wrap(err, "invalid tree")
	}

	d.logger.Warn().Err(err).Str("source", d.cfg.Tree.Source).Msg("Could not make tree, using standard tree")
	tree, err = d.makeTree(config.SourceStandard)
	if err != nil {
		return nil, errors.Wrap(err, "invalid tree")
	}
	return tree, nil
}

func (d *Driver) makeTree(source string) (*Tree, error) {
	switch source {
	case config.SourceStandard, config.SourceTest:
		d.logger.Info().Str("tree", source).Msg("Using reference tree")
		root, err := huffman.ReferenceTree(source)
		if err != nil {
			return nil, err
		}
		return &Tree{Root: root, Source: source}, nil

	case config.SourceText:
		d.logger.Info().Str("path", d.cfg.Tree.TextPath).Bool("fill_gaps", d.cfg.Tree.FillGaps).Msg("Generating tree from text")
		text, err := store.ReadText(d.cfg.Tree.TextPath)
		if err != nil {
			return nil, err
		}
		return BuildTree(text, d.cfg.Tree.FillGaps)

	case config.SourceFile:
		d.logger.Info().Str("path", d.cfg.Tree.BitsPath).Msg("Loading saved tree")
		bits, err := store.ReadBits(d.cfg.Tree.BitsPath, d.format)
		if err != nil {
			return nil, err
		}
		root, err := huffman.ParseTree(strings.TrimSpace(bits))
		if root == nil {
			return nil, err
		}
		if err != nil {
			d.logger.Warn().Err(err).Msg("Saved tree has trailing bits")
		}
		return &Tree{Root: root, Source: source}, nil

	default:
		return nil, errors.Errorf("unknown tree source %q", source)
	}
}

// BuildTree counts the bytes of text and builds a tree from the counts.  With
// fillGaps, the mandatory symbols are added so the tree can encode ordinary
// English text beyond the sample.
func BuildTree(text string, fillGaps bool) (*Tree, error) {
	table := huffman.Count([]byte(text))
	if fillGaps {
		table = table.Widen(huffman.MandatorySymbols())
	}
	root, err := huffman.Build(table)
	if err != nil {
		return nil, err
	}
	return &Tree{Root: root, Source: config.SourceText, Frequencies: table}, nil
}

// Show prints the tree drawing, its code table, and, for trees built from
// text, the character statistics and the tree's bit representation.
func (d *Driver) Show(tree *Tree) error {
	banner(d.out, "GENERATING TREE")
	if err := huffman.Display(d.out, tree.Root, d.cfg.Output.DisplayAllBits); err != nil {
		return err
	}
	if _, err := huffman.Derive(tree.Root).Dump(d.out); err != nil {
		return err
	}
	if tree.Frequencies != nil {
		stats := tree.Frequencies.Stats()
		fmt.Fprintf(d.out, "Unique characters: %d\n", stats.Unique)
		fmt.Fprintf(d.out, "Total characters: %d\n", stats.Total)
	}
	if tree.Source != config.SourceStandard {
		fmt.Fprintln(d.out, "Bit representation of the tree:")
		fmt.Fprintln(d.out, huffman.Serialize(tree.Root))
	}
	return nil
}

// SaveTree writes the bit representation of the tree to the configured path.
func (d *Driver) SaveTree(tree *Tree) error {
	path := d.cfg.Output.TreePath
	if err := store.WriteBits(path, huffman.Serialize(tree.Root), d.format); err != nil {
		return errors.Wrapf(err, "saving tree to %s", path)
	}
	d.logger.Info().Str("path", path).Msg("Saved tree")
	return nil
}

// Encode reads the configured input, encodes it with the tree, and writes
// the bits to the configured output.
func (d *Driver) Encode(tree *Tree) (bits string, skipped int, err error) {
	banner(d.out, "ENCODING FILE")
	in, out := d.cfg.Encode.Input, d.cfg.Encode.Output
	fmt.Fprintf(d.out, "Attempting to encode %s\n", in)

	text, err := store.ReadText(in)
	if err != nil {
		return "", 0, errors.Wrapf(err, "could not read file to encode: %s", in)
	}

	var enc huffman.Encoder
	enc.Init(tree.Root)
	bits = enc.Encode([]byte(text))
	skipped = enc.Skipped()
	if skipped > 0 {
		d.logger.Warn().Int("skipped", skipped).Msg("Characters without a code were skipped")
	}

	d.echo("Encoded text", bits)
	if err := store.WriteBits(out, bits, d.format); err != nil {
		return bits, skipped, errors.Wrapf(err, "could not write encoded text to %s", out)
	}
	d.encoded[out] = len(text) - skipped
	fmt.Fprintf(d.out, "Encoded text written to %s\n", out)
	return bits, skipped, nil
}

// Decode reads bits from the configured input, decodes them with the tree,
// and writes the text to the configured output.  Decoding diagnostics are
// logged as warnings and returned in warnings; err reports only I/O failures.
func (d *Driver) Decode(tree *Tree) (text string, warnings error, err error) {
	banner(d.out, "DECODING FILE")
	in, out := d.cfg.Decode.Input, d.cfg.Decode.Output
	fmt.Fprintf(d.out, "Attempting to decode %s\n", in)

	bits, err := store.ReadBits(in, d.format)
	if err != nil {
		return "", nil, errors.Wrapf(err, "could not read file to decode: %s", in)
	}
	if d.format == store.Text {
		bits = strings.TrimRight(bits, "\r\n")
	}

	var dec huffman.Decoder
	dec.Init(tree.Root)
	if _, isLeaf := tree.Root.(*huffman.Leaf); isLeaf {
		if n, found := d.encoded[in]; found {
			text, warnings = dec.DecodeN(bits, n)
		} else {
			text, warnings = dec.Decode(bits)
			warnings = multierr.Append(errors.Wrapf(ErrUnknownCount, "decoding %s", in), warnings)
		}
	} else {
		text, warnings = dec.Decode(bits)
	}
	for _, w := range multierr.Errors(warnings) {
		d.logger.Warn().Err(w).Msg("Decoding problem")
	}

	d.echo("Decoded text", text)
	if err := store.WriteText(out, text); err != nil {
		return text, warnings, errors.Wrapf(err, "could not write decoded text to %s", out)
	}
	fmt.Fprintf(d.out, "Decoded text written to %s\n", out)
	return text, warnings, nil
}

// Run makes the tree, shows it, optionally saves it, and then runs the encode
// and decode stages for whichever inputs are configured.  A stage that fails
// is logged and recorded in Report.Warnings, and the remaining stages still
// run.  Run returns an error only when no tree can be made or ctx is done.
func (d *Driver) Run(ctx context.Context) (*Report, error) {
	tree, err := d.MakeTree()
	if err != nil {
		return nil, err
	}
	report := &Report{Tree: tree}

	if err := d.Show(tree); err != nil {
		return report, err
	}
	if d.cfg.Output.SaveTree {
		if err := d.SaveTree(tree); err != nil {
			d.warn(report, err)
		}
	}

	if d.cfg.Encode.Input != "" {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		bits, skipped, err := d.Encode(tree)
		report.Encoded, report.Skipped = bits, skipped
		if err != nil {
			d.warn(report, err)
		}
	}

	if d.cfg.Decode.Input != "" {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		text, warnings, err := d.Decode(tree)
		report.Decoded = text
		report.Warnings = multierr.Append(report.Warnings, warnings)
		if err != nil {
			d.warn(report, err)
		}
	}

	return report, nil
}

func (d *Driver) warn(report *Report, err error) {
	d.logger.Warn().Err(err).Msg("Stage failed")
	report.Warnings = multierr.Append(report.Warnings, err)
}

func (d *Driver) echo(label string, s string) {
	fmt.Fprintf(d.out, "%s length: %d\n", label, len(s))
	if len(s) < d.cfg.Output.DisplayLimit {
		fmt.Fprintf(d.out, "%s:\n%s\n", label, s)
	} else {
		fmt.Fprintf(d.out, "%s too long to display, see file.\n", label)
	}
}

func banner(w io.Writer, title string) {
	line := strings.Repeat("=", len(title))
	fmt.Fprintf(w, "\n%s\n%s\n%s\n", line, title, line)
}
