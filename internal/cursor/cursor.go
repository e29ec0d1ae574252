// Package cursor implements a sequential, bounds-checked reader over an
// in-memory byte buffer.
//
// Every read either consumes exactly the requested bytes and advances the
// offset, or fails wrapping errs.ErrTruncatedData without consuming anything.
// No read returns a partial result.
//
// All multi-byte integers are little-endian, as mandated by SR-4731.
package cursor

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/otdr/errs"
)

// DefaultReplacement is substituted for byte sequences in string fields that
// do not form valid UTF-8. Text decoding is permissive: undecodable bytes
// never abort the parse.
const DefaultReplacement = "�"

// Reader reads typed values sequentially from a fixed byte buffer.
//
// Reader is not safe for concurrent use; a decode pipeline owns exactly one.
type Reader struct {
	data        []byte
	off         int
	replacement string
	replaced    int
}

// New creates a Reader over data, positioned at offset 0, with the default
// text replacement policy.
func New(data []byte) *Reader {
	return &Reader{data: data, replacement: DefaultReplacement}
}

// SetReplacement changes the substitution string used for undecodable text.
func (r *Reader) SetReplacement(s string) {
	r.replacement = s
}

// Offset returns the current absolute offset.
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// Replacements returns how many string fields required text substitution so
// far. Callers surface a warning when this is non-zero.
func (r *Reader) Replacements() int {
	return r.replaced
}

// Seek moves the cursor to an absolute offset inside the buffer.
func (r *Reader) Seek(off int) error {
	if off < 0 || off > len(r.data) {
		return fmt.Errorf("%w: seek to %d outside buffer of %d bytes",
			errs.ErrTruncatedData, off, len(r.data))
	}
	r.off = off

	return nil
}

// Skip advances the cursor by n bytes without interpreting them.
func (r *Reader) Skip(n int) error {
	_, err := r.Bytes(n)

	return err
}

// Bytes consumes exactly n raw bytes. The returned slice aliases the
// underlying buffer and must not be modified.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read of %d bytes", errs.ErrTruncatedData, n)
	}
	if r.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, %d remain",
			errs.ErrTruncatedData, n, r.off, r.Remaining())
	}
	b := r.data[r.off : r.off+n]
	r.off += n

	return b, nil
}

// Sub consumes exactly n bytes and returns a child Reader over them. The
// child inherits the parent's text replacement policy and shares the
// underlying storage.
func (r *Reader) Sub(n int) (*Reader, error) {
	b, err := r.Bytes(n)
	if err != nil {
		return nil, err
	}

	return &Reader{data: b, replacement: r.replacement}, nil
}

// Uint8 consumes one byte.
func (r *Reader) Uint8() (uint8, error) {
	b, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// Uint16 consumes a little-endian unsigned 16-bit integer.
func (r *Reader) Uint16() (uint16, error) {
	b, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 consumes a little-endian unsigned 32-bit integer.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 consumes a little-endian unsigned 64-bit integer.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(b), nil
}

// Int8 consumes a signed byte.
func (r *Reader) Int8() (int8, error) {
	v, err := r.Uint8()

	return int8(v), err
}

// Int16 consumes a little-endian signed 16-bit integer.
func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()

	return int16(v), err
}

// Int32 consumes a little-endian signed 32-bit integer.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()

	return int32(v), err
}

// Int64 consumes a little-endian signed 64-bit integer.
func (r *Reader) Int64() (int64, error) {
	v, err := r.Uint64()

	return int64(v), err
}

// String consumes bytes up to and including the next NUL terminator and
// returns the text before it, whitespace-trimmed. Fails with
// errs.ErrTruncatedData when no terminator exists in the remaining bytes.
func (r *Reader) String() (string, error) {
	rest := r.data[r.off:]
	i := 0
	for i < len(rest) && rest[i] != 0x00 {
		i++
	}
	if i == len(rest) {
		return "", fmt.Errorf("%w: unterminated string at offset %d",
			errs.ErrTruncatedData, r.off)
	}
	s := r.decodeText(rest[:i])
	r.off += i + 1

	return s, nil
}

// FixedString consumes exactly n bytes and returns them as
// whitespace-trimmed text.
func (r *Reader) FixedString(n int) (string, error) {
	b, err := r.Bytes(n)
	if err != nil {
		return "", err
	}

	return r.decodeText(b), nil
}

func (r *Reader) decodeText(b []byte) string {
	s := string(b)
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, r.replacement)
		r.replaced++
	}

	return strings.TrimSpace(s)
}
