// Package store reads and writes the text and bit-string files handled by the
// command: input passages, saved trees, and encoded output.
package store

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/icza/bitio"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	huffman "github.com/chronos-tachyon/huffmantree"
)

// Format selects how a bit string is laid out on disk.
type Format string

const (
	// Text stores the bit string verbatim, one ASCII '0' or '1' per bit.
	Text Format = "text"

	// Packed stores a 32-bit big-endian bit count followed by the bits, eight
	// per byte, most significant bit first.  The last byte is padded with
	// zeroes.
	Packed Format = "packed"

	// Zstd stores the Packed layout compressed with zstd.
	Zstd Format = "zstd"
)

// ErrUnknownFormat is returned for a Format other than the ones above.
var ErrUnknownFormat = errors.New("store: unknown format")

// ErrNotBits is returned by Pack when its input is not a bit string.
var ErrNotBits = errors.New("store: not a bit string")

// ParseFormat maps a configuration value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case Text, Packed, Zstd:
		return f, nil
	case "":
		return Text, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// ReadText returns the contents of the file at path.  A missing file yields
// an error satisfying errors.Is(err, os.ErrNotExist).
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading text")
	}
	return string(data), nil
}

// WriteText replaces the file at path with s.
func WriteText(path string, s string) error {
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return errors.Wrap(err, "writing text")
	}
	return nil
}

// ReadBits reads a bit string stored in the given format.  Text files are
// returned verbatim; validating them is left to the decoder, which reports
// malformed bits with their positions.
func ReadBits(path string, format Format) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "reading bits")
	}
	switch format {
	case Text:
		return string(data), nil
	case Packed:
		return Unpack(data)
	case Zstd:
		plain, err := decompress(data)
		if err != nil {
			return "", err
		}
		return Unpack(plain)
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

// WriteBits stores bits at path in the given format.
func WriteBits(path string, bits string, format Format) error {
	var data []byte
	switch format {
	case Text:
		data = []byte(bits)
	case Packed:
		packed, err := Pack(bits)
		if err != nil {
			return err
		}
		data = packed
	case Zstd:
		packed, err := Pack(bits)
		if err != nil {
			return err
		}
		data, err = compress(packed)
		if err != nil {
			return err
		}
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "writing bits")
	}
	return nil
}

// Pack converts a bit string into the Packed layout.
func Pack(bits string) ([]byte, error) {
	if !huffman.IsBitString(bits) {
		return nil, ErrNotBits
	}
	if uint64(len(bits)) > math.MaxUint32 {
		return nil, errors.Wrapf(ErrNotBits, "%d bits is too long", len(bits))
	}

	buf := new(bytes.Buffer)
	w := bitio.NewWriter(buf)
	if err := w.WriteBits(uint64(len(bits)), 32); err != nil {
		return nil, errors.Wrap(err, "packing bit count")
	}
	for i := 0; i < len(bits); i++ {
		if err := w.WriteBool(bits[i] == '1'); err != nil {
			return nil, errors.Wrapf(err, "packing bit %d", i)
		}
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "packing bits")
	}
	return buf.Bytes(), nil
}

// Unpack converts the Packed layout back into a bit string.
func Unpack(data []byte) (string, error) {
	r := bitio.NewReader(bytes.NewReader(data))
	n, err := r.ReadBits(32)
	if err != nil {
		return "", errors.Wrap(err, "unpacking bit count")
	}
	if n > uint64(len(data)-4)*8 {
		return "", errors.Wrapf(io.ErrUnexpectedEOF, "unpacking %d bits from %d bytes", n, len(data)-4)
	}

	out := make([]byte, n)
	for i := range out {
		b, err := r.ReadBool()
		if err != nil {
			return "", errors.Wrapf(err, "unpacking bit %d", i)
		}
		out[i] = '0'
		if b {
			out[i] = '1'
		}
	}
	return string(out), nil
}

func compress(data []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc, err := zstd.NewWriter(buf)
	if err != nil {
		return nil, errors.Wrap(err, "zstd writer")
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		return nil, errors.Wrap(err, "zstd compress")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "zstd compress")
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "zstd reader")
	}
	defer dec.Close()

	plain, err := io.ReadAll(dec)
	if err != nil {
		return nil, errors.Wrap(err, "zstd decompress")
	}
	return plain, nil
}
