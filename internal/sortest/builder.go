// Package sortest builds synthetic SR-4731 v2 trace files for tests.
//
// Production code must not import this package; tests encode a fixture with
// it and then assert on the decoded result, since the library itself has no
// encoder.
package sortest

import "encoding/binary"

// Writer appends little-endian fields to a byte buffer.
type Writer struct {
	buf []byte
}

// Str appends a NUL-terminated string.
func (w *Writer) Str(s string) *Writer {
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0x00)

	return w
}

// Fixed appends a fixed-length string without terminator.
func (w *Writer) Fixed(s string) *Writer {
	w.buf = append(w.buf, s...)

	return w
}

// Raw appends raw bytes.
func (w *Writer) Raw(b []byte) *Writer {
	w.buf = append(w.buf, b...)

	return w
}

func (w *Writer) U16(v uint16) *Writer {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)

	return w
}

func (w *Writer) U32(v uint32) *Writer {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)

	return w
}

func (w *Writer) I16(v int16) *Writer {
	return w.U16(uint16(v))
}

func (w *Writer) I32(v int32) *Writer {
	return w.U32(uint32(v))
}

func (w *Writer) Bytes() []byte {
	return w.buf
}

// Block is one non-Map block of a fixture file: its name, declared format
// revision (raw, revision x 100), and body bytes after the name header.
type Block struct {
	Name    string
	Version uint16
	Body    []byte
}

// FileOption tweaks how BuildFile assembles a fixture.
type FileOption func(*fileConfig)

type fileConfig struct {
	declaredBlocks int
}

// WithDeclaredBlocks overrides the numblocks count the Map declares, to
// craft directory-mismatch fixtures. The default is the true count, the Map
// itself included.
func WithDeclaredBlocks(n int) FileOption {
	return func(c *fileConfig) {
		c.declaredBlocks = n
	}
}

// BuildFile assembles a complete v2 trace file: a Map block enumerating
// every block (itself included in the count), followed by each block as its
// NUL-terminated name plus body.
func BuildFile(blocks []Block, opts ...FileOption) []byte {
	cfg := fileConfig{declaredBlocks: len(blocks) + 1}
	for _, opt := range opts {
		opt(&cfg)
	}

	const mapVersion = 200 // revision 2.0

	// Map block length: its own name header, version, numbytes, numblocks,
	// plus one {name, version, numbytes} entry per following block.
	mapBytes := len("Map") + 1 + 2 + 4 + 2
	for _, b := range blocks {
		mapBytes += len(b.Name) + 1 + 2 + 4
	}

	w := &Writer{}
	w.Str("Map").U16(mapVersion).U32(uint32(mapBytes)).U16(uint16(cfg.declaredBlocks))
	for _, b := range blocks {
		numbytes := len(b.Name) + 1 + len(b.Body)
		w.Str(b.Name).U16(b.Version).U32(uint32(numbytes))
	}
	for _, b := range blocks {
		w.Str(b.Name).Raw(b.Body)
	}

	return w.Bytes()
}
