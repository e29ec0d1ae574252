package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"
)

type GzipDecompressor struct{}

var _ Decompressor = GzipDecompressor{}

// Decompress inflates a gzip stream.
func (GzipDecompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
