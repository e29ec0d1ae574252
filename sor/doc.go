// Package sor decodes OTDR trace files in the Telcordia SR-4731 Version 2
// binary format into structured, queryable data: instrument parameters, a
// calibrated power-vs-distance trace, and the detected fiber events.
//
// # Decoding
//
// The whole file is decoded in one sequential pass. The first block is
// always the directory (Map), which lists every block's name, format
// revision and byte length; each later block is located purely from its
// directory entry and materialized in full before its fields are decoded,
// so a malformed block can never corrupt the decoding of its neighbors.
//
//	decoder, err := sor.NewDecoder(data)
//	if err != nil {
//	    return err
//	}
//	trace, err := decoder.Decode()
//	if err != nil {
//	    return err
//	}
//	for _, p := range trace.DataPts.Points {
//	    fmt.Printf("%.2f %s  %.3f dB\n", p.Distance, trace.FxdParams.Units, p.Power)
//	}
//
// DecodeBlocks returns the same content as an ordered slice in directory
// order, for callers that need repeated block names kept apart.
//
// # Errors and warnings
//
// Truncated input and implausible block headers are fatal and surface a
// *errs.BlockError naming the offending block and offset. Recoverable
// conditions (directory count mismatch, unknown format revisions,
// undecodable text, calibration falling back) are recorded as Warnings on
// the result instead.
//
// Blocks with unrecognized names, typically vendor extensions, are preserved
// as RawBlock payloads and excluded from field-level interpretation. The
// trailing checksum is surfaced but never validated. Only single-trace v2
// files are supported.
package sor
