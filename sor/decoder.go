package sor

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/otdr/errs"
	"github.com/arloliu/otdr/format"
	"github.com/arloliu/otdr/internal/cursor"
	"github.com/arloliu/otdr/section"
)

// Decoder decodes one SR-4731 v2 trace from an in-memory byte buffer.
//
// A Decoder is stateless between calls: Decode and DecodeBlocks each run the
// full pipeline over the same input and may be called in any order. Distinct
// Decoder instances are independent and safe to use concurrently; a single
// instance is not.
type Decoder struct {
	data        []byte
	replacement string
	strict      bool

	warnings []Warning
	calib    Calibration
	haveCal  bool
}

// Option configures a Decoder.
type Option func(*Decoder) error

// WithTextReplacement sets the substitution string used when a string field
// contains undecodable bytes. The default is the Unicode replacement
// character U+FFFD.
func WithTextReplacement(s string) Option {
	return func(d *Decoder) error {
		d.replacement = s
		return nil
	}
}

// WithStrictDirectory makes a directory block-count mismatch fatal instead
// of a warning.
func WithStrictDirectory() Option {
	return func(d *Decoder) error {
		d.strict = true
		return nil
	}
}

// NewDecoder creates a Decoder over data, which must hold one complete,
// uncompressed SR-4731 v2 trace.
//
// Returns:
//   - *Decoder: New decoder ready for Decode or DecodeBlocks
//   - error: errs.ErrEmptyData for empty input, or an option error
func NewDecoder(data []byte, opts ...Option) (*Decoder, error) {
	if len(data) == 0 {
		return nil, errs.ErrEmptyData
	}

	d := &Decoder{
		data:        data,
		replacement: cursor.DefaultReplacement,
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Decode runs the pipeline and returns the current (mapping) form: a Trace
// whose Blocks map is keyed by block name, with typed convenience fields for
// the standard blocks.
//
// When a block name repeats in the directory, the last occurrence in
// directory order wins in both the map and the typed fields.
func (d *Decoder) Decode() (*Trace, error) {
	blocks, err := d.decode()
	if err != nil {
		return nil, err
	}

	trace := &Trace{
		Fingerprint: xxhash.Sum64(d.data),
		Blocks:      make(map[string]Block, len(blocks)),
		Warnings:    d.warnings,
	}
	for _, block := range blocks {
		trace.Blocks[block.BlockName()] = block
		switch b := block.(type) {
		case *MapBlock:
			trace.Directory = b
		case *GenParams:
			trace.GenParams = b
		case *SupParams:
			trace.SupParams = b
		case *FxdParams:
			trace.FxdParams = b
		case *DataPts:
			trace.DataPts = b
		case *KeyEvents:
			trace.KeyEvents = b
		case *Checksum:
			trace.Checksum = b
		}
	}

	return trace, nil
}

// DecodeBlocks runs the pipeline and returns the legacy form: every decoded
// block as an ordered slice in directory order, repeated names each kept as
// a separate entry. Warnings from the run are available via Warnings.
func (d *Decoder) DecodeBlocks() ([]Block, error) {
	return d.decode()
}

// Warnings returns the non-fatal conditions recorded by the most recent
// Decode or DecodeBlocks call.
func (d *Decoder) Warnings() []Warning {
	return d.warnings
}

func (d *Decoder) decode() ([]Block, error) {
	d.warnings = nil
	d.calib = Calibration{}
	d.haveCal = false

	r := cursor.New(d.data)
	r.SetReplacement(d.replacement)

	dir, err := section.ParseDirectory(r)
	if err != nil {
		return nil, err
	}
	if dir.Mismatch() {
		if d.strict {
			return nil, fmt.Errorf("%w: directory declares %d blocks but lists %d",
				errs.ErrInvalidBlockHeader, dir.DeclaredBlocks, len(dir.Entries))
		}
		d.warn(WarnDirectoryMismatch, format.BlockMap,
			fmt.Sprintf("declared %d blocks, found %d", dir.DeclaredBlocks, len(dir.Entries)))
	}
	if r.Replacements()+dir.Substitutions > 0 {
		d.warn(WarnUndecodableText, format.BlockMap, "substituted undecodable bytes")
	}
	if !dir.Version.Supported() {
		d.warn(WarnUnsupportedVersion, format.BlockMap,
			fmt.Sprintf("version %s decoded assuming the v2 layout", dir.Version))
	}

	blocks := make([]Block, 0, len(dir.Entries))
	blocks = append(blocks, &MapBlock{
		BlockInfo: BlockInfo{
			Name:     format.BlockMap,
			Version:  dir.Version,
			Numbytes: dir.Numbytes,
		},
		DeclaredBlocks: dir.DeclaredBlocks,
		Entries:        dir.Entries,
	})

	// Every later block is self-delimited by its directory entry, in
	// directory order; none is skipped.
	for _, entry := range dir.Entries[1:] {
		if !entry.Version.Supported() {
			d.warn(WarnUnsupportedVersion, entry.Name,
				fmt.Sprintf("version %s decoded assuming the v2 layout", entry.Version))
		}

		offset := r.Offset()
		body, err := section.ReadBlock(r, entry)
		if err != nil {
			return nil, err
		}

		block, err := d.decodeBody(entry, body)
		if err != nil {
			return nil, errs.NewBlockError(entry.Name, offset, err)
		}
		if body.Replacements() > 0 {
			d.warn(WarnUndecodableText, entry.Name, "substituted undecodable bytes")
		}

		blocks = append(blocks, block)
	}

	return blocks, nil
}

func (d *Decoder) decodeBody(entry section.Entry, body *cursor.Reader) (Block, error) {
	info := BlockInfo{
		Name:     entry.Name,
		Version:  entry.Version,
		Numbytes: entry.Numbytes,
	}

	switch entry.Name {
	case format.BlockGenParams:
		return parseGenParams(info, body)
	case format.BlockSupParams:
		return parseSupParams(info, body)
	case format.BlockFxdParams:
		fxd, err := parseFxdParams(info, body)
		if err != nil {
			return nil, err
		}
		d.calib = Calibration{
			SampleSpacing:     fxd.SampleSpacing,
			IndexOfRefraction: fxd.IndexOfRefraction,
			Units:             fxd.Units,
		}
		d.haveCal = true

		return fxd, nil
	case format.BlockDataPts:
		d.requireCalibration(entry.Name)
		return parseDataPts(info, body, d.calib)
	case format.BlockKeyEvents:
		d.requireCalibration(entry.Name)
		return parseKeyEvents(info, body, d.calib)
	case format.BlockChecksum:
		return parseChecksum(info, body)
	default:
		// Vendor/proprietary block: carried through losslessly, no
		// interpretation attempted. The payload is copied so the result
		// does not alias the caller's input buffer.
		payload, err := body.Bytes(body.Remaining())
		if err != nil {
			return nil, err
		}

		return &RawBlock{
			BlockInfo: info,
			Payload:   append([]byte(nil), payload...),
		}, nil
	}
}

func (d *Decoder) requireCalibration(block string) {
	if !d.haveCal {
		d.warn(WarnUncalibrated, block,
			"block precedes FxdParams; distances are uncalibrated")
	}
}

func (d *Decoder) warn(code WarningCode, block, message string) {
	d.warnings = append(d.warnings, Warning{Code: code, Block: block, Message: message})
}
