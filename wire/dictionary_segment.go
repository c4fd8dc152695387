package wire

import (
	"fmt"
	"io"

	"columnscan/bits"
	"columnscan/domain"
	"columnscan/segment"
)

// attrWidth is the attribute-vector width wire values come in, matching
// the teacher's byte-aligned bits.BitWriter primitives rather than a
// sub-byte bit-packer: spec §6 leaves the exact width free as long as
// InvalidValueID = (1<<width)-1, and 8/16/32 bits covers every dictionary
// size this module's tests exercise. See DESIGN.md for why a true
// bit-packer was not built.
type attrWidth uint8

const (
	attrWidth8  attrWidth = 8
	attrWidth16 attrWidth = 16
	attrWidth32 attrWidth = 32
)

func widthFor(uniqueValues int) attrWidth {
	switch {
	case uniqueValues < (1 << 8):
		return attrWidth8
	case uniqueValues < (1 << 16):
		return attrWidth16
	default:
		return attrWidth32
	}
}

// kindTag is the element-kind byte persisted in the dictionary-segment
// header, matching schema/type.go's FieldType tag-byte convention.
func kindTag(k domain.Kind) uint8 { return uint8(k) }

func kindFromTag(tag uint8) (domain.Kind, error) {
	k := domain.Kind(tag)
	switch k {
	case domain.KindInt32, domain.KindInt64, domain.KindFloat32, domain.KindFloat64, domain.KindString:
		return k, nil
	default:
		return 0, fmt.Errorf("wire: unrecognized element kind tag %d", tag)
	}
}

// writeHeader writes the fixed-size header spec §6 names: element-kind
// tag, U, N, attribute-vector width in bits. The dictionary body and
// attribute-vector body are written separately by WriteDictionarySegment,
// since their element type determines how the dictionary values themselves
// are encoded.
func writeHeader(w io.Writer, kind domain.Kind, u, n int, width attrWidth) error {
	buf := bits.NewEncodeBuffer(make([]byte, 0, 10), byteOrder)
	buf.EnableGrowing()
	buf.WriteByte(kindTag(kind))
	buf.PutUint16(uint16(u))
	buf.PutInt32(int32(n))
	buf.WriteByte(uint8(width))
	_, err := w.Write(buf.Bytes())
	return err
}

type header struct {
	Kind  domain.Kind
	U, N  int
	Width attrWidth
}

func readHeader(r io.Reader) (header, error) {
	reader := bits.NewReader(r, byteOrder)
	tag, err := reader.ReadU8()
	if err != nil {
		return header{}, fmt.Errorf("wire: reading kind tag: %w", err)
	}
	kind, err := kindFromTag(tag)
	if err != nil {
		return header{}, err
	}
	u, err := reader.ReadU16()
	if err != nil {
		return header{}, fmt.Errorf("wire: reading unique-value count: %w", err)
	}
	n, err := reader.ReadU32()
	if err != nil {
		return header{}, fmt.Errorf("wire: reading row count: %w", err)
	}
	widthByte, err := reader.ReadU8()
	if err != nil {
		return header{}, fmt.Errorf("wire: reading attribute width: %w", err)
	}
	return header{Kind: kind, U: int(u), N: int(n), Width: attrWidth(widthByte)}, nil
}

// writeAttributeVector packs N value-ids at the given width, mapping
// segment.InvalidValueID to the width's own max representable value
// ((1<<width)-1), per spec §6.
func writeAttributeVector(w io.Writer, attr []uint32, width attrWidth) error {
	buf := bits.NewEncodeBuffer(make([]byte, 0, len(attr)*int(width)/8), byteOrder)
	buf.EnableGrowing()
	invalid := uint32(1)<<uint(width) - 1
	for _, a := range attr {
		v := a
		if a == segment.InvalidValueID {
			v = invalid
		}
		switch width {
		case attrWidth8:
			buf.WriteByte(uint8(v))
		case attrWidth16:
			buf.PutUint16(uint16(v))
		case attrWidth32:
			buf.PutInt32(int32(v))
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func readAttributeVector(r io.Reader, n int, width attrWidth) ([]uint32, error) {
	reader := bits.NewReader(r, byteOrder)
	invalid := uint32(1)<<uint(width) - 1
	attr := make([]uint32, n)
	for i := 0; i < n; i++ {
		var v uint32
		var err error
		switch width {
		case attrWidth8:
			var b uint8
			b, err = reader.ReadU8()
			v = uint32(b)
		case attrWidth16:
			var u16 uint16
			u16, err = reader.ReadU16()
			v = uint32(u16)
		case attrWidth32:
			v, err = reader.ReadU32()
		}
		if err != nil {
			return nil, fmt.Errorf("wire: reading attribute vector entry %d: %w", i, err)
		}
		if v == invalid {
			attr[i] = segment.InvalidValueID
		} else {
			attr[i] = v
		}
	}
	return attr, nil
}

// WriteDictionarySegment encodes seg in the layout spec §6 names: header,
// then U sorted values, then N packed value-ids.
func WriteDictionarySegment[T domain.Elem](w io.Writer, seg *segment.DictionarySegment[T]) error {
	u := len(seg.Dictionary)
	n := len(seg.Attribute)
	width := widthFor(u + 1) // +1 so the INVALID sentinel always fits
	if err := writeHeader(w, domain.KindOf[T](), u, n, width); err != nil {
		return err
	}
	if err := writeDictionaryValues(w, seg.Dictionary); err != nil {
		return err
	}
	return writeAttributeVector(w, seg.Attribute, width)
}

func writeDictionaryValues[T domain.Elem](w io.Writer, values []T) error {
	switch vs := any(values).(type) {
	case []int32:
		buf := bits.NewEncodeBuffer(make([]byte, 0, len(vs)*4), byteOrder)
		buf.EnableGrowing()
		for _, v := range vs {
			buf.PutInt32(v)
		}
		_, err := w.Write(buf.Bytes())
		return err
	case []int64:
		buf := bits.NewEncodeBuffer(make([]byte, 0, len(vs)*8), byteOrder)
		buf.EnableGrowing()
		for _, v := range vs {
			buf.PutInt64(v)
		}
		_, err := w.Write(buf.Bytes())
		return err
	case []float32:
		buf := bits.NewEncodeBuffer(make([]byte, 0, len(vs)*4), byteOrder)
		buf.EnableGrowing()
		for _, v := range vs {
			buf.PutFloat32(v)
		}
		_, err := w.Write(buf.Bytes())
		return err
	case []float64:
		buf := bits.NewEncodeBuffer(make([]byte, 0, len(vs)*8), byteOrder)
		buf.EnableGrowing()
		for _, v := range vs {
			buf.PutFloat64(v)
		}
		_, err := w.Write(buf.Bytes())
		return err
	case []string:
		buf := bits.NewEncodeBuffer(nil, byteOrder)
		buf.EnableGrowing()
		for _, v := range vs {
			buf.PutInt32(int32(len(v)))
			buf.Write([]byte(v))
		}
		_, err := w.Write(buf.Bytes())
		return err
	default:
		return fmt.Errorf("wire: unsupported dictionary element type %T", values)
	}
}

// ReadDictionarySegmentHeader exposes the header alone, letting a caller
// pick the right type-parameterized ReadDictionarySegment once it
// knows the persisted Kind.
func ReadDictionarySegmentHeader(r io.Reader) (domain.Kind, int, int, error) {
	h, err := readHeader(r)
	if err != nil {
		return 0, 0, 0, err
	}
	return h.Kind, h.U, h.N, nil
}

// ReadDictionarySegment decodes a dictionary segment whose header has
// already been consumed by ReadDictionarySegmentHeader; T must match the
// persisted kind or this panics via NewDictionarySegment's own invariant
// checks on a garbage dictionary.
func ReadDictionarySegment[T domain.Elem](r io.Reader, u, n int) (*segment.DictionarySegment[T], error) {
	width := widthFor(u + 1)
	values, err := readDictionaryValues[T](r, u)
	if err != nil {
		return nil, err
	}
	attr, err := readAttributeVector(r, n, width)
	if err != nil {
		return nil, err
	}
	return segment.NewDictionarySegment(values, attr), nil
}

func readDictionaryValues[T domain.Elem](r io.Reader, u int) ([]T, error) {
	reader := bits.NewReader(r, byteOrder)
	out := make([]T, u)
	for i := 0; i < u; i++ {
		var v any
		var err error
		switch any(out).(type) {
		case []int32:
			v, err = reader.ReadI32()
		case []int64:
			v, err = reader.ReadI64()
		case []float32:
			v, err = reader.ReadF32()
		case []float64:
			v, err = reader.ReadF64()
		case []string:
			var length int32
			length, err = reader.ReadI32()
			if err == nil {
				b := make([]byte, length)
				err = reader.ReadBytes(int(length), b)
				v = string(b)
			}
		default:
			return nil, fmt.Errorf("wire: unsupported dictionary element type %T", out)
		}
		if err != nil {
			return nil, fmt.Errorf("wire: reading dictionary value %d: %w", i, err)
		}
		out[i] = v.(T)
	}
	return out, nil
}
