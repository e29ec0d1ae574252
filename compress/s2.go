package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/s2"
)

type S2Decompressor struct{}

var _ Decompressor = S2Decompressor{}

// Decompress inflates an S2 or snappy framed stream.
func (S2Decompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return io.ReadAll(s2.NewReader(bytes.NewReader(data)))
}
