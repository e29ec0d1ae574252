package section

import (
	"fmt"

	"github.com/arloliu/otdr/errs"
	"github.com/arloliu/otdr/internal/cursor"
)

// ReadBlock consumes one block from the cursor, which must be positioned at
// the block boundary described by the directory entry.
//
// The whole block region of entry.Numbytes bytes is materialized before any
// field decoding starts, so a body decoder can never under- or over-read
// into a neighboring block. The block's leading NUL-terminated name is read
// and checked against the directory entry; the returned reader is positioned
// at the first body byte after it.
//
// Returns:
//   - *cursor.Reader: Self-contained reader over the block's body
//   - error: a *errs.BlockError wrapping errs.ErrInvalidBlockHeader for an
//     empty or mismatched name or an implausible byte count, or
//     errs.ErrTruncatedData when the file ends inside the block
func ReadBlock(r *cursor.Reader, entry Entry) (*cursor.Reader, error) {
	offset := r.Offset()

	if entry.Name == "" {
		return nil, errs.NewBlockError(entry.Name, offset,
			fmt.Errorf("%w: empty block name", errs.ErrInvalidBlockHeader))
	}
	if int(entry.Numbytes) < len(entry.Name)+1 {
		return nil, errs.NewBlockError(entry.Name, offset,
			fmt.Errorf("%w: %d bytes cannot hold the %d-byte name header",
				errs.ErrInvalidBlockHeader, entry.Numbytes, len(entry.Name)+1))
	}

	body, err := r.Sub(int(entry.Numbytes))
	if err != nil {
		return nil, errs.NewBlockError(entry.Name, offset, err)
	}

	name, err := body.String()
	if err != nil {
		return nil, errs.NewBlockError(entry.Name, offset,
			fmt.Errorf("block name header: %w", err))
	}
	if name != entry.Name {
		return nil, errs.NewBlockError(entry.Name, offset,
			fmt.Errorf("%w: block is named %q but directory says %q",
				errs.ErrInvalidBlockHeader, name, entry.Name))
	}

	return body, nil
}
