// Package wire implements the binary/JSON codecs spec §6 defines for the
// core's external interfaces: the position-list wire format, the persisted
// dictionary-segment layout, and the statistic JSON diagnostic shapes. It
// reads and writes with the teacher's own bits.BitsReader / bits.BitWriter
// primitives rather than encoding/gob or a new hand-rolled reader.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"

	"columnscan/bits"
	"columnscan/position"
)

// byteOrder is little-endian, matching the teacher's disk-header codecs
// (schema/disk_header.go, block/disk_header.go) which all construct their
// bits.BitsReader/BitWriter with binary.LittleEndian.
var byteOrder = binary.LittleEndian

// WritePositionList encodes l as a sequence of (chunk_id:uint32,
// chunk_offset:uint32) pairs, per spec §6. The null sentinel position
// (0xFFFFFFFF, 0xFFFFFFFF) is written verbatim — callers that need to
// represent a null reference slot append position.Null before encoding.
func WritePositionList(w io.Writer, l *position.List) error {
	buf := bits.NewEncodeBuffer(make([]byte, 0, l.Len()*8), byteOrder)
	buf.EnableGrowing()
	for _, p := range l.Positions {
		buf.PutInt32(int32(p.ChunkID))
		buf.PutInt32(int32(p.Offset))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ReadPositionList decodes a position list of exactly count pairs.
func ReadPositionList(r io.Reader, count int) (*position.List, error) {
	reader := bits.NewReader(r, byteOrder)
	l := position.NewList(count)
	for i := 0; i < count; i++ {
		chunkID, err := reader.ReadU32()
		if err != nil {
			return nil, fmt.Errorf("wire: reading position %d chunk_id: %w", i, err)
		}
		offset, err := reader.ReadU32()
		if err != nil {
			return nil, fmt.Errorf("wire: reading position %d chunk_offset: %w", i, err)
		}
		l.Append(position.Position{ChunkID: chunkID, Offset: offset})
	}
	return l, nil
}
