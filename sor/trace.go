package sor

import (
	"fmt"

	"github.com/arloliu/otdr/format"
	"github.com/arloliu/otdr/section"
)

// Block is the interface satisfied by every decoded block variant: one
// concrete type per standard block name, plus RawBlock for vendor blocks.
type Block interface {
	// BlockName returns the block's directory name.
	BlockName() string
	// BlockVersion returns the block's declared format revision.
	BlockVersion() format.Version
	// BlockSize returns the block's total byte length, its name header
	// included.
	BlockSize() uint32
}

// BlockInfo carries the directory bookkeeping shared by all block variants.
// It is embedded in every concrete block type.
type BlockInfo struct {
	Name     string
	Version  format.Version
	Numbytes uint32
}

func (b BlockInfo) BlockName() string            { return b.Name }
func (b BlockInfo) BlockVersion() format.Version { return b.Version }
func (b BlockInfo) BlockSize() uint32            { return b.Numbytes }

// MapBlock is the decoded directory: the ordered list of entries describing
// every block in the file, itself included as Entries[0].
type MapBlock struct {
	BlockInfo
	DeclaredBlocks uint16
	Entries        []section.Entry
}

// RawBlock preserves a block whose name this decoder does not recognize.
// Payload holds the body bytes after the name header, unchanged; no field
// interpretation is attempted.
type RawBlock struct {
	BlockInfo
	Payload []byte
}

// Trace is the decoded result of one SR-4731 trace file.
//
// Blocks holds every decoded block keyed by directory name; when a name
// repeats, the last occurrence in directory order wins. The typed fields
// (GenParams, DataPts, ...) are conveniences pointing at the same decoded
// blocks. All of it is immutable once Decode returns.
type Trace struct {
	// Fingerprint is the 64-bit xxHash of the raw trace bytes, usable as a
	// cache or deduplication key.
	Fingerprint uint64

	Directory *MapBlock
	GenParams *GenParams
	SupParams *SupParams
	FxdParams *FxdParams
	DataPts   *DataPts
	KeyEvents *KeyEvents
	Checksum  *Checksum

	Blocks map[string]Block

	// Warnings records the non-fatal conditions encountered while decoding.
	Warnings []Warning
}

// WarningCode classifies a non-fatal decode condition.
type WarningCode uint8

const (
	// WarnDirectoryMismatch: the directory's declared block count disagrees
	// with the entries actually present.
	WarnDirectoryMismatch WarningCode = iota + 1
	// WarnUnsupportedVersion: a block declares a format revision this
	// decoder does not understand; it was decoded assuming the v2 layout.
	WarnUnsupportedVersion
	// WarnUndecodableText: a string field contained bytes that are not valid
	// text; they were substituted, not dropped.
	WarnUndecodableText
	// WarnUncalibrated: DataPts or KeyEvents appeared before FxdParams, so
	// distances could not use the instrument's sample spacing and index of
	// refraction.
	WarnUncalibrated
)

func (c WarningCode) String() string {
	switch c {
	case WarnDirectoryMismatch:
		return "directory mismatch"
	case WarnUnsupportedVersion:
		return "unsupported version"
	case WarnUndecodableText:
		return "undecodable text"
	case WarnUncalibrated:
		return "uncalibrated distances"
	default:
		return "unknown"
	}
}

// Warning is a non-fatal condition recorded against the result instead of
// aborting the decode.
type Warning struct {
	Code    WarningCode
	Block   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.Block, w.Code, w.Message)
}
