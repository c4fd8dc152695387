package wire

import (
	"bytes"

	"columnscan/compression"
	"columnscan/domain"
	"columnscan/segment"
)

// WriteDictionarySegmentCompressed encodes seg the same way
// WriteDictionarySegment does, then LZ4-compresses the result before
// writing it to w — used for diagnostic snapshotting of dictionary blocks,
// per SPEC_FULL.md's domain-stack wiring of the teacher's compression
// package. The caller is responsible for recording the uncompressed
// length out-of-band (e.g. alongside the snapshot's own file metadata);
// this function returns it.
func WriteDictionarySegmentCompressed[T domain.Elem](seg *segment.DictionarySegment[T]) (compressed []byte, uncompressedLen int, err error) {
	var raw bytes.Buffer
	if err := WriteDictionarySegment(&raw, seg); err != nil {
		return nil, 0, err
	}
	var out bytes.Buffer
	if err := compression.CompressLz4(raw.Bytes(), &out); err != nil {
		return nil, 0, err
	}
	return out.Bytes(), raw.Len(), nil
}

// ReadDictionarySegmentCompressed reverses
// WriteDictionarySegmentCompressed, decompressing compressed before
// decoding the header and body exactly as ReadDictionarySegmentHeader /
// ReadDictionarySegment would from an uncompressed stream.
func ReadDictionarySegmentCompressed[T domain.Elem](compressed []byte) (*segment.DictionarySegment[T], error) {
	raw, err := compression.DecompressLz4(compressed)
	if err != nil {
		return nil, err
	}
	r := bytes.NewReader(raw)
	_, u, n, err := ReadDictionarySegmentHeader(r)
	if err != nil {
		return nil, err
	}
	return ReadDictionarySegment[T](r, u, n)
}
