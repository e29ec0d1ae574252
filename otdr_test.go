package otdr_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/otdr"
	"github.com/arloliu/otdr/internal/sortest"
	"github.com/arloliu/otdr/sor"
)

func TestParse(t *testing.T) {
	trace, err := otdr.Parse(sortest.CanonicalFile())
	require.NoError(t, err)

	require.Equal(t, "ACME OTDR 9000", trace.SupParams.OtdrName)
	require.Len(t, trace.DataPts.Points, sortest.NumberOfPoints)
	require.Len(t, trace.KeyEvents.Events, 2)
}

func TestParse_CompressedInput(t *testing.T) {
	raw := sortest.CanonicalFile()

	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(raw)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	trace, err := otdr.Parse(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, "CABLE-001", trace.GenParams.CableID)

	// The fingerprint is taken from the decompressed bytes, so both input
	// forms identify the same trace.
	plain, err := otdr.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, plain.Fingerprint, trace.Fingerprint)
}

func TestParseBlocks(t *testing.T) {
	blocks, err := otdr.ParseBlocks(sortest.CanonicalFile())
	require.NoError(t, err)
	require.Len(t, blocks, 8)
	require.Equal(t, "Map", blocks[0].BlockName())
	require.Equal(t, "Cksum", blocks[len(blocks)-1].BlockName())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.sor")
	require.NoError(t, os.WriteFile(path, sortest.CanonicalFile(), 0o644))

	trace, err := otdr.ParseFile(path)
	require.NoError(t, err)
	require.Equal(t, "FIBER-42", trace.GenParams.FiberID)

	t.Run("Missing file", func(t *testing.T) {
		_, err := otdr.ParseFile(filepath.Join(t.TempDir(), "nope.sor"))
		require.Error(t, err)
	})
}

func TestParse_Options(t *testing.T) {
	_, err := otdr.Parse(sortest.CanonicalFile(), sor.WithStrictDirectory())
	require.NoError(t, err)
}
