// Package compress restores raw SR-4731 trace bytes from the compression
// containers traces are commonly archived in.
//
// Instruments write plain .sor files, but archives and transfer pipelines
// frequently store them as .sor.gz, .sor.zst, .sor.lz4 or snappy-framed
// streams. Detect sniffs the container from leading magic bytes and
// Decompress restores the raw stream, so callers can hand either form to the
// decoder.
package compress

import (
	"fmt"

	"github.com/arloliu/otdr/errs"
)

// Format identifies a compression container.
type Format uint8

const (
	// FormatNone means the input carries no recognized compression
	// container and is used as-is.
	FormatNone Format = iota
	FormatGzip
	FormatZstd
	FormatLZ4
	FormatS2
)

func (f Format) String() string {
	switch f {
	case FormatNone:
		return "none"
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	case FormatS2:
		return "s2"
	default:
		return "unknown"
	}
}

// Decompressor restores the original bytes from one compression container.
//
// Implementations return a newly allocated slice owned by the caller and
// never modify the input.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

var magics = []struct {
	format Format
	magic  []byte
}{
	{FormatGzip, []byte{0x1f, 0x8b}},
	{FormatZstd, []byte{0x28, 0xb5, 0x2f, 0xfd}},
	{FormatLZ4, []byte{0x04, 0x22, 0x4d, 0x18}},
	// Snappy/S2 framed stream identifier chunk: 0xff <len> "sNaPpY".
	{FormatS2, []byte{0xff, 0x06, 0x00, 0x00, 0x73, 0x4e, 0x61, 0x50, 0x70, 0x59}},
}

// Detect sniffs the compression container from the input's leading magic
// bytes. Input that matches no known container, including a plain trace, is
// reported as FormatNone.
func Detect(data []byte) Format {
	for _, m := range magics {
		if len(data) >= len(m.magic) && string(data[:len(m.magic)]) == string(m.magic) {
			return m.format
		}
	}

	return FormatNone
}

// ForFormat returns the Decompressor for a container format, or false for
// FormatNone and unknown formats.
func ForFormat(f Format) (Decompressor, bool) {
	switch f {
	case FormatGzip:
		return GzipDecompressor{}, true
	case FormatZstd:
		return ZstdDecompressor{}, true
	case FormatLZ4:
		return LZ4Decompressor{}, true
	case FormatS2:
		return S2Decompressor{}, true
	default:
		return nil, false
	}
}

// Decompress sniffs the input's container and restores the raw bytes.
// Unrecognized input is returned unchanged, so plain traces pass through.
func Decompress(data []byte) ([]byte, error) {
	format := Detect(data)
	if format == FormatNone {
		return data, nil
	}

	dec, ok := ForFormat(format)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCompression, format)
	}

	out, err := dec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("decompress %s input: %w", format, err)
	}

	return out, nil
}
