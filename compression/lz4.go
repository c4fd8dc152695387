package compression

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

func CompressLz4(src []byte, output *bytes.Buffer) error {
	zw := lz4.NewWriter(output)

	zw.Write(src)
	flushErr := zw.Flush()

	if flushErr != nil {
		return flushErr
	}

	return zw.Close()
}

// DecompressLz4 reverses CompressLz4, reading an LZ4-framed block from src
// and returning its decompressed bytes.
func DecompressLz4(src []byte) ([]byte, error) {
	zr := lz4.NewReader(bytes.NewReader(src))
	return io.ReadAll(zr)
}
