package sor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/otdr/errs"
	"github.com/arloliu/otdr/format"
	"github.com/arloliu/otdr/internal/sortest"
	"github.com/arloliu/otdr/sor"
)

func decodeCanonical(t *testing.T) *sor.Trace {
	t.Helper()

	decoder, err := sor.NewDecoder(sortest.CanonicalFile())
	require.NoError(t, err)
	trace, err := decoder.Decode()
	require.NoError(t, err)

	return trace
}

func TestDecoder_Decode(t *testing.T) {
	trace := decodeCanonical(t)

	t.Run("One block per directory entry", func(t *testing.T) {
		require.Len(t, trace.Blocks, 8)
		require.Empty(t, trace.Warnings)
		require.NotZero(t, trace.Fingerprint)

		require.NotNil(t, trace.Directory)
		require.Len(t, trace.Directory.Entries, 8)
		require.Equal(t, uint16(8), trace.Directory.DeclaredBlocks)
	})

	t.Run("GenParams", func(t *testing.T) {
		g := trace.GenParams
		require.NotNil(t, g)
		require.Equal(t, "CABLE-001", g.CableID)
		require.Equal(t, "FIBER-42", g.FiberID)
		require.Equal(t, uint16(652), g.FiberType)
		require.Equal(t, "ITU-T G.652 (standard single-mode fiber)", g.FiberTypeDescription)
		require.Equal(t, uint16(1550), g.Wavelength)
		require.Equal(t, "STATION-A", g.LocationA)
		require.Equal(t, "STATION-B", g.LocationB)
		require.Equal(t, "BC", g.BuildCondition)
		require.Equal(t, "as-built", g.BuildConditionDescription)
		require.Equal(t, "operator-1", g.Operator)
		require.Equal(t, "acceptance test", g.Comments)
	})

	t.Run("SupParams", func(t *testing.T) {
		s := trace.SupParams
		require.NotNil(t, s)
		require.Equal(t, "ACME Photonics", s.SupplierName)
		require.Equal(t, "ACME OTDR 9000", s.OtdrName)
		require.Equal(t, "SN-0042", s.OtdrSerialNumber)
		require.Equal(t, "4.2.1", s.SoftwareVersion)
		require.Equal(t, "", s.Other)
	})

	t.Run("FxdParams", func(t *testing.T) {
		f := trace.FxdParams
		require.NotNil(t, f)
		require.Equal(t, int64(1700000000), f.DateTime.Unix())
		require.Equal(t, format.UnitMeter, f.Units)
		require.InDelta(t, 1550.0, f.Wavelength, 1e-9)
		require.Equal(t, uint16(30), f.PulseWidth)
		require.Equal(t, uint32(sortest.SampleSpacing), f.SampleSpacing)
		require.Equal(t, uint32(sortest.NumberOfPoints), f.NumberOfDataPoints)
		require.InDelta(t, 1.5, f.IndexOfRefraction, 1e-9)
		require.InDelta(t, -79.0, f.BackscatteringCoefficient, 1e-9)
		require.InDelta(t, 0.05, f.LossThreshold, 1e-9)
		require.InDelta(t, 0.065, f.ReflectionThreshold, 1e-9)
		require.InDelta(t, -0.003, f.EndOfTransmissionThreshold, 1e-9)
		require.Equal(t, "ST", f.TraceType)
		require.Equal(t, "standard trace", f.TraceTypeDescription)
	})

	t.Run("DataPts", func(t *testing.T) {
		d := trace.DataPts
		require.NotNil(t, d)
		require.Equal(t, uint32(10), d.NumberOfDataPoints)
		require.Equal(t, uint32(10), d.NumberOfDataPoints2)
		require.Equal(t, uint16(1000), d.ScalingFactor)
		require.Len(t, d.Points, 10)

		// Raw code 10000 at scaling factor 1000 is -10 dB.
		require.Equal(t, 0.0, d.Points[0].Distance)
		require.InDelta(t, -10.0, d.Points[0].Power, 1e-9)

		// Distances grow strictly and linearly with the sample index.
		perSample := 1.0 * 299.792458 / 1.5
		for i, p := range d.Points {
			require.InDelta(t, float64(i)*perSample, p.Distance, 1e-6)
			if i > 0 {
				require.Greater(t, p.Distance, d.Points[i-1].Distance)
			}
		}
	})

	t.Run("KeyEvents", func(t *testing.T) {
		k := trace.KeyEvents
		require.NotNil(t, k)
		require.Equal(t, uint16(2), k.NumberOfEvents)
		require.Len(t, k.Events, 2)

		splice := k.Events[0]
		require.Equal(t, uint16(1), splice.EventNumber)
		require.InDelta(t, 1250.0, splice.TimeOfTravel, 1e-9)
		require.InDelta(t, 0.1, splice.Slope, 1e-9)
		require.InDelta(t, 0.05, splice.SpliceLoss, 1e-9)
		require.InDelta(t, -0.42, splice.ReflectionLoss, 1e-9)
		require.Equal(t, "0F9999LS", splice.EventType)
		require.Equal(t, sor.EventTypeDetails{
			Event:                    "non-reflective",
			Note:                     "found-by-software",
			LandmarkNumber:           9999,
			LossMeasurementTechnique: "least-square",
		}, splice.EventTypeDetails)
		require.Equal(t, "splice", splice.Comment)
		require.InDelta(t, 1.25*299.792458/1.5, splice.DistanceOfTravel, 1e-6)

		end := k.Events[1]
		require.Equal(t, "saturated-reflective", end.EventTypeDetails.Event)
		require.Equal(t, "end-of-fiber", end.EventTypeDetails.Note)

		require.InDelta(t, 1.234, k.TotalLoss, 1e-9)
		require.Equal(t, int32(-25), k.FiberStartPosition)
		require.Equal(t, uint32(50210), k.FiberLength)
		require.InDelta(t, 18.0, k.OpticalReturnLoss, 1e-9)
		require.Equal(t, int32(-25), k.FiberStartPosition2)
		require.Equal(t, uint32(50210), k.FiberLength2)
	})

	t.Run("Checksum surfaced but not validated", func(t *testing.T) {
		require.NotNil(t, trace.Checksum)
		require.Equal(t, uint16(0xbeef), trace.Checksum.Value)
		require.Equal(t, "beef", trace.Checksum.Hex)
	})

	t.Run("Vendor block preserved as raw bytes", func(t *testing.T) {
		block, ok := trace.Blocks["AcmeProprietary"]
		require.True(t, ok)

		raw, ok := block.(*sor.RawBlock)
		require.True(t, ok)
		require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, raw.Payload)
		require.Equal(t, format.Version(200), raw.BlockVersion())
	})
}

func TestDecoder_BlockAccounting(t *testing.T) {
	data := sortest.CanonicalFile()
	trace, err := mustDecode(data)
	require.NoError(t, err)

	total := 0
	for _, entry := range trace.Directory.Entries {
		total += int(entry.Numbytes)
	}
	require.Equal(t, len(data), total)

	for _, entry := range trace.Directory.Entries {
		block, ok := trace.Blocks[entry.Name]
		require.True(t, ok, entry.Name)
		require.Equal(t, entry.Numbytes, block.BlockSize())
	}
}

func mustDecode(data []byte) (*sor.Trace, error) {
	decoder, err := sor.NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return decoder.Decode()
}

func TestDecoder_DecodeBlocks(t *testing.T) {
	data := sortest.CanonicalFile()

	decoder, err := sor.NewDecoder(data)
	require.NoError(t, err)

	blocks, err := decoder.DecodeBlocks()
	require.NoError(t, err)
	require.Len(t, blocks, 8)
	require.Empty(t, decoder.Warnings())

	wantOrder := []string{
		"Map", "GenParams", "SupParams", "FxdParams",
		"DataPts", "KeyEvents", "AcmeProprietary", "Cksum",
	}
	for i, block := range blocks {
		require.Equal(t, wantOrder[i], block.BlockName())
	}

	t.Run("Agrees with the mapping form", func(t *testing.T) {
		trace, err := mustDecode(data)
		require.NoError(t, err)

		for _, block := range blocks {
			require.Equal(t, trace.Blocks[block.BlockName()], block)
		}
	})
}

func TestDecoder_DuplicateBlockName(t *testing.T) {
	first := sortest.GenParamsBody()

	second := (&sortest.Writer{}).
		Str("CABLE-OTHER").Str("FIBER-OTHER").
		U16(655).U16(1310).
		Str("X").Str("Y").Str("").
		Fixed("OT").U32(0).U32(0).
		Str("op2").Str("").Bytes()

	data := sortest.BuildFile([]sortest.Block{
		{Name: "GenParams", Version: 200, Body: first},
		{Name: "GenParams", Version: 200, Body: second},
	})

	t.Run("Legacy form keeps both occurrences", func(t *testing.T) {
		decoder, err := sor.NewDecoder(data)
		require.NoError(t, err)
		blocks, err := decoder.DecodeBlocks()
		require.NoError(t, err)
		require.Len(t, blocks, 3)

		g1, ok := blocks[1].(*sor.GenParams)
		require.True(t, ok)
		require.Equal(t, "CABLE-001", g1.CableID)

		g2, ok := blocks[2].(*sor.GenParams)
		require.True(t, ok)
		require.Equal(t, "CABLE-OTHER", g2.CableID)
	})

	t.Run("Mapping form keeps the last occurrence", func(t *testing.T) {
		trace, err := mustDecode(data)
		require.NoError(t, err)
		require.Len(t, trace.Blocks, 2)
		require.Equal(t, "CABLE-OTHER", trace.GenParams.CableID)
		require.Equal(t, uint16(655), trace.GenParams.FiberType)
	})
}

func TestDecoder_Warnings(t *testing.T) {
	t.Run("Directory count mismatch", func(t *testing.T) {
		data := sortest.BuildFile(sortest.CanonicalBlocks(), sortest.WithDeclaredBlocks(99))

		trace, err := mustDecode(data)
		require.NoError(t, err)

		// All blocks are still decoded.
		require.Len(t, trace.Blocks, 8)
		require.Len(t, trace.Warnings, 1)
		require.Equal(t, sor.WarnDirectoryMismatch, trace.Warnings[0].Code)
	})

	t.Run("Strict directory makes the mismatch fatal", func(t *testing.T) {
		data := sortest.BuildFile(sortest.CanonicalBlocks(), sortest.WithDeclaredBlocks(99))

		decoder, err := sor.NewDecoder(data, sor.WithStrictDirectory())
		require.NoError(t, err)
		_, err = decoder.Decode()
		require.ErrorIs(t, err, errs.ErrInvalidBlockHeader)
	})

	t.Run("Unsupported block version", func(t *testing.T) {
		blocks := []sortest.Block{
			{Name: "Cksum", Version: 321, Body: sortest.ChecksumBody(0x1234)},
		}
		trace, err := mustDecode(sortest.BuildFile(blocks))
		require.NoError(t, err)

		// Decoded best-effort with the v2 layout.
		require.Equal(t, uint16(0x1234), trace.Checksum.Value)
		require.Len(t, trace.Warnings, 1)
		require.Equal(t, sor.WarnUnsupportedVersion, trace.Warnings[0].Code)
		require.Equal(t, "Cksum", trace.Warnings[0].Block)
	})

	t.Run("Data before FxdParams is uncalibrated", func(t *testing.T) {
		blocks := []sortest.Block{
			{Name: "DataPts", Version: 200, Body: sortest.CanonicalDataPtsBody()},
			{Name: "FxdParams", Version: 200, Body: sortest.FxdParamsBody()},
		}
		trace, err := mustDecode(sortest.BuildFile(blocks))
		require.NoError(t, err)
		require.Len(t, trace.DataPts.Points, sortest.NumberOfPoints)

		// Without FxdParams the sample spacing is unknown, so every
		// distance decodes as zero.
		for _, p := range trace.DataPts.Points {
			require.Zero(t, p.Distance)
		}

		var codes []sor.WarningCode
		for _, w := range trace.Warnings {
			codes = append(codes, w.Code)
		}
		require.Contains(t, codes, sor.WarnUncalibrated)
	})

	t.Run("Undecodable text substituted", func(t *testing.T) {
		body := (&sortest.Writer{}).
			Raw([]byte{'C', 0xff, 'B', 0x00}). // cable id with a stray byte
			Str("F").
			U16(652).U16(1550).
			Str("A").Str("B").Str("").
			Fixed("BC").U32(0).U32(0).
			Str("op").Str("").Bytes()

		data := sortest.BuildFile([]sortest.Block{
			{Name: "GenParams", Version: 200, Body: body},
		})

		trace, err := mustDecode(data)
		require.NoError(t, err)
		require.Equal(t, "C�B", trace.GenParams.CableID)
		require.Len(t, trace.Warnings, 1)
		require.Equal(t, sor.WarnUndecodableText, trace.Warnings[0].Code)
		require.Equal(t, "GenParams", trace.Warnings[0].Block)
	})

	t.Run("Custom replacement option", func(t *testing.T) {
		body := (&sortest.Writer{}).
			Raw([]byte{'C', 0xff, 'B', 0x00}).
			Str("F").
			U16(652).U16(1550).
			Str("A").Str("B").Str("").
			Fixed("BC").U32(0).U32(0).
			Str("op").Str("").Bytes()

		data := sortest.BuildFile([]sortest.Block{
			{Name: "GenParams", Version: 200, Body: body},
		})

		decoder, err := sor.NewDecoder(data, sor.WithTextReplacement("?"))
		require.NoError(t, err)
		trace, err := decoder.Decode()
		require.NoError(t, err)
		require.Equal(t, "C?B", trace.GenParams.CableID)
	})
}

func TestDecoder_FatalErrors(t *testing.T) {
	t.Run("Empty input", func(t *testing.T) {
		_, err := sor.NewDecoder(nil)
		require.ErrorIs(t, err, errs.ErrEmptyData)
	})

	t.Run("Truncated data points", func(t *testing.T) {
		// Declares 10 points but carries 5.
		body := sortest.DataPtsBody(make([]uint16, 5), 1000)
		body[0] = 10 // number_of_data_points low byte

		data := sortest.BuildFile([]sortest.Block{
			{Name: "FxdParams", Version: 200, Body: sortest.FxdParamsBody()},
			{Name: "DataPts", Version: 200, Body: body},
		})

		trace, err := mustDecode(data)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
		require.Nil(t, trace)

		var be *errs.BlockError
		require.ErrorAs(t, err, &be)
		require.Equal(t, "DataPts", be.Name)
	})

	t.Run("Huge declared point count", func(t *testing.T) {
		// Declares 4294967295 points over 5 actual samples. The count is
		// rejected against the block length before any allocation.
		body := sortest.DataPtsBody(make([]uint16, 5), 1000)
		body[0], body[1], body[2], body[3] = 0xff, 0xff, 0xff, 0xff

		data := sortest.BuildFile([]sortest.Block{
			{Name: "FxdParams", Version: 200, Body: sortest.FxdParamsBody()},
			{Name: "DataPts", Version: 200, Body: body},
		})

		trace, err := mustDecode(data)
		require.ErrorIs(t, err, errs.ErrTruncatedData)
		require.Nil(t, trace)

		var be *errs.BlockError
		require.ErrorAs(t, err, &be)
		require.Equal(t, "DataPts", be.Name)
	})

	t.Run("File shorter than directory claims", func(t *testing.T) {
		data := sortest.CanonicalFile()
		trace, err := mustDecode(data[:len(data)-4])
		require.ErrorIs(t, err, errs.ErrTruncatedData)
		require.Nil(t, trace)
	})

	t.Run("Not a trace file", func(t *testing.T) {
		_, err := mustDecode([]byte("PK\x03\x04 definitely a zip\x00"))
		require.ErrorIs(t, err, errs.ErrNotSorFile)
	})
}

func TestDecoder_Fingerprint(t *testing.T) {
	data := sortest.CanonicalFile()

	a, err := mustDecode(data)
	require.NoError(t, err)
	b, err := mustDecode(data)
	require.NoError(t, err)
	require.Equal(t, a.Fingerprint, b.Fingerprint)

	// A different payload yields a different fingerprint.
	other := sortest.BuildFile(sortest.CanonicalBlocks()[:3])
	c, err := mustDecode(other)
	require.NoError(t, err)
	require.NotEqual(t, a.Fingerprint, c.Fingerprint)
}
