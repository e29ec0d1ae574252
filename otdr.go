// Package otdr decodes OTDR (Optical Time-Domain Reflectometer) trace files
// in the Telcordia SR-4731 Version 2 ".sor" format.
//
// A decoded trace exposes the instrument's acquisition parameters, the
// sampled power-vs-distance curve calibrated with the fiber's index of
// refraction, and the list of detected fiber events (splices, reflections,
// breaks). Vendor-specific blocks are preserved as raw bytes.
//
// # Basic Usage
//
//	trace, err := otdr.ParseFile("link-1550nm.sor")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(trace.SupParams.OtdrName)
//	fmt.Printf("%d samples, %d events\n",
//	    len(trace.DataPts.Points), len(trace.KeyEvents.Events))
//
// Compressed inputs (gzip, zstd, lz4, snappy/s2) are detected from their
// magic bytes and decompressed transparently.
//
// This package provides convenient top-level wrappers around the sor
// package, which holds the decoder itself; use sor directly for decode
// options and the legacy ordered-slice result form.
package otdr

import (
	"fmt"
	"os"

	"github.com/arloliu/otdr/compress"
	"github.com/arloliu/otdr/sor"
)

// Parse decodes one SR-4731 v2 trace from data, transparently decompressing
// recognized compression containers first.
//
// Returns:
//   - *sor.Trace: Decoded trace, blocks keyed by name, non-fatal conditions
//     in Warnings
//   - error: Fatal decode error; see the errs package for the taxonomy
func Parse(data []byte, opts ...sor.Option) (*sor.Trace, error) {
	raw, err := compress.Decompress(data)
	if err != nil {
		return nil, err
	}

	decoder, err := sor.NewDecoder(raw, opts...)
	if err != nil {
		return nil, err
	}

	return decoder.Decode()
}

// ParseBlocks decodes one trace into the legacy form: an ordered slice of
// blocks in directory order, with repeated block names each kept as a
// separate entry.
func ParseBlocks(data []byte, opts ...sor.Option) ([]sor.Block, error) {
	raw, err := compress.Decompress(data)
	if err != nil {
		return nil, err
	}

	decoder, err := sor.NewDecoder(raw, opts...)
	if err != nil {
		return nil, err
	}

	return decoder.DecodeBlocks()
}

// ParseFile reads and decodes the trace file at path.
func ParseFile(path string, opts ...sor.Option) (*sor.Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace file: %w", err)
	}

	return Parse(data, opts...)
}
