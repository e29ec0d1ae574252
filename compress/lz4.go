package compress

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

type LZ4Decompressor struct{}

var _ Decompressor = LZ4Decompressor{}

// Decompress inflates an lz4 frame stream.
func (LZ4Decompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
}
