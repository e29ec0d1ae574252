// Package errs defines the sentinel errors returned by the otdr decoder.
//
// Fatal decode failures wrap one of the sentinels below, usually inside a
// BlockError that identifies the block being decoded when the failure
// occurred. Callers match conditions with errors.Is and unwrap positional
// detail with errors.As:
//
//	trace, err := otdr.ParseFile("trace.sor")
//	if errors.Is(err, errs.ErrTruncatedData) {
//	    // file is shorter than its directory claims
//	}
//	var be *errs.BlockError
//	if errors.As(err, &be) {
//	    log.Printf("bad block %q at offset %d", be.Name, be.Offset)
//	}
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncatedData indicates fewer bytes remain than a field or record
	// requires. It is fatal: no partial block is ever returned.
	ErrTruncatedData = errors.New("truncated data")

	// ErrInvalidBlockHeader indicates an empty block name or a byte count too
	// small to hold the block's own header. Fatal, because subsequent block
	// boundaries become unrecoverable.
	ErrInvalidBlockHeader = errors.New("invalid block header")

	// ErrEmptyData indicates the decoder was given zero input bytes.
	ErrEmptyData = errors.New("empty data")

	// ErrNotSorFile indicates the input does not start with a Map block and
	// therefore is not a Telcordia SR-4731 trace.
	ErrNotSorFile = errors.New("not a SR-4731 trace file")

	// ErrUnsupportedCompression indicates input bytes whose leading magic
	// matches no supported compression container and no raw trace.
	ErrUnsupportedCompression = errors.New("unsupported compression format")
)

// BlockError wraps a fatal decode error with the name and absolute byte
// offset of the block that failed.
type BlockError struct {
	Name   string
	Offset int
	Err    error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %q at offset %d: %v", e.Name, e.Offset, e.Err)
}

func (e *BlockError) Unwrap() error {
	return e.Err
}

// NewBlockError creates a BlockError for the given block name and offset.
func NewBlockError(name string, offset int, err error) *BlockError {
	return &BlockError{Name: name, Offset: offset, Err: err}
}
