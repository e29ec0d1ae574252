package cursor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/otdr/errs"
)

func TestReader_Integers(t *testing.T) {
	r := New([]byte{
		0x2a,                   // uint8
		0x34, 0x12,             // uint16
		0x78, 0x56, 0x34, 0x12, // uint32
		0xff, 0xff, // int16 -1
		0xfe, 0xff, 0xff, 0xff, // int32 -2
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80, // uint64
	})

	u8, err := r.Uint8()
	require.NoError(t, err)
	require.Equal(t, uint8(0x2a), u8)

	u16, err := r.Uint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16)

	u32, err := r.Uint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x12345678), u32)

	i16, err := r.Int16()
	require.NoError(t, err)
	require.Equal(t, int16(-1), i16)

	i32, err := r.Int32()
	require.NoError(t, err)
	require.Equal(t, int32(-2), i32)

	u64, err := r.Uint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x8000000000000001), u64)

	require.Equal(t, 0, r.Remaining())
	require.Equal(t, 21, r.Offset())

	// Signed variants share the unsigned raw reads.
	r = New([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x80})
	i64, err := r.Int64()
	require.NoError(t, err)
	require.Equal(t, int64(-1), i64)
	i8, err := r.Int8()
	require.NoError(t, err)
	require.Equal(t, int8(-128), i8)
}

func TestReader_Truncation(t *testing.T) {
	t.Run("Integer past end", func(t *testing.T) {
		r := New([]byte{0x01})
		_, err := r.Uint32()
		require.ErrorIs(t, err, errs.ErrTruncatedData)
		// Nothing consumed on failure.
		require.Equal(t, 0, r.Offset())
	})

	t.Run("Bytes past end", func(t *testing.T) {
		r := New([]byte{0x01, 0x02})
		_, err := r.Bytes(3)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})

	t.Run("Unterminated string", func(t *testing.T) {
		r := New([]byte("no terminator"))
		_, err := r.String()
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})

	t.Run("Fixed string past end", func(t *testing.T) {
		r := New([]byte{'m'})
		_, err := r.FixedString(2)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
	})
}

func TestReader_Strings(t *testing.T) {
	t.Run("NUL terminated", func(t *testing.T) {
		r := New([]byte("  hello \x00next\x00"))
		s, err := r.String()
		require.NoError(t, err)
		require.Equal(t, "hello", s)

		s, err = r.String()
		require.NoError(t, err)
		require.Equal(t, "next", s)
		require.Equal(t, 0, r.Remaining())
	})

	t.Run("Empty string", func(t *testing.T) {
		r := New([]byte{0x00})
		s, err := r.String()
		require.NoError(t, err)
		require.Equal(t, "", s)
	})

	t.Run("Fixed length", func(t *testing.T) {
		r := New([]byte("BC rest"))
		s, err := r.FixedString(2)
		require.NoError(t, err)
		require.Equal(t, "BC", s)
		require.Equal(t, 2, r.Offset())
	})
}

func TestReader_PermissiveText(t *testing.T) {
	t.Run("Invalid bytes substituted", func(t *testing.T) {
		r := New([]byte{'a', 0xff, 'b', 0x00})
		s, err := r.String()
		require.NoError(t, err)
		require.Equal(t, "a�b", s)
		require.Equal(t, 1, r.Replacements())
	})

	t.Run("Custom replacement", func(t *testing.T) {
		r := New([]byte{'a', 0xff, 'b', 0x00})
		r.SetReplacement("?")
		s, err := r.String()
		require.NoError(t, err)
		require.Equal(t, "a?b", s)
	})

	t.Run("Valid text untouched", func(t *testing.T) {
		r := New([]byte("plain\x00"))
		_, err := r.String()
		require.NoError(t, err)
		require.Equal(t, 0, r.Replacements())
	})
}

func TestReader_SeekSkip(t *testing.T) {
	r := New([]byte{1, 2, 3, 4})

	require.NoError(t, r.Skip(2))
	require.Equal(t, 2, r.Offset())

	require.NoError(t, r.Seek(1))
	require.Equal(t, 1, r.Offset())
	require.Equal(t, 3, r.Remaining())

	require.ErrorIs(t, r.Seek(5), errs.ErrTruncatedData)
	require.ErrorIs(t, r.Seek(-1), errs.ErrTruncatedData)
}

func TestReader_Sub(t *testing.T) {
	r := New([]byte{1, 2, 3, 4, 5})
	r.SetReplacement("?")

	sub, err := r.Sub(3)
	require.NoError(t, err)
	require.Equal(t, 3, sub.Remaining())
	require.Equal(t, 0, sub.Offset())
	require.Equal(t, 3, r.Offset())

	b, err := sub.Bytes(3)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, b)

	_, err = r.Sub(10)
	require.ErrorIs(t, err, errs.ErrTruncatedData)
}
