package catalog

import (
	"encoding/binary"
	"fmt"

	"github.com/luigirelational/pagedb/internal/value"
)

// ───────────────────────────────────────────────────────────────────────────
// Dynamic row codec — user table rows, driven by a runtime schema
// ───────────────────────────────────────────────────────────────────────────
//
// Values are written in schema order. Before writing each value, zero
// padding is inserted so the buffer's length becomes a multiple of that
// column's type alignment (INT=4, TEXT=4). Writing then dispatches on the
// column's type: INT -> 4 little-endian bytes; TEXT -> uint32 length prefix
// + bytes. Decode mirrors encode: skip to the alignment boundary, then read
// according to the column's declared type.

// Column describes one position in a dynamic row's schema.
type Column struct {
	Name string
	Type value.TypeID
}

func pad(buf []byte, align int) []byte {
	for len(buf)%align != 0 {
		buf = append(buf, 0)
	}
	return buf
}

// EncodeRow serialises vals according to schema, which must have the same
// length and be in the same order as vals.
func EncodeRow(schema []Column, vals []value.Value) ([]byte, error) {
	if len(schema) != len(vals) {
		return nil, fmt.Errorf("catalog: schema has %d columns, got %d values", len(schema), len(vals))
	}
	var buf []byte
	for i, col := range schema {
		buf = pad(buf, col.Type.Alignment())
		v := vals[i]
		switch col.Type {
		case value.INT:
			if v.Kind != value.KindUint32 {
				return nil, fmt.Errorf("catalog: column %q expects INT value", col.Name)
			}
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], v.U32)
			buf = append(buf, b[:]...)
		case value.TEXT:
			if v.Kind != value.KindString {
				return nil, fmt.Errorf("catalog: column %q expects TEXT value", col.Name)
			}
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], uint32(len(v.Str)))
			buf = append(buf, b[:]...)
			buf = append(buf, v.Str...)
		default:
			return nil, fmt.Errorf("catalog: column %q has unknown type %d", col.Name, col.Type)
		}
	}
	return buf, nil
}

// DecodeRow parses buf according to schema, returning one value per column
// in schema order.
func DecodeRow(schema []Column, buf []byte) ([]value.Value, error) {
	vals := make([]value.Value, len(schema))
	off := 0
	for i, col := range schema {
		for off%col.Type.Alignment() != 0 {
			off++
		}
		switch col.Type {
		case value.INT:
			if off+4 > len(buf) {
				return nil, fmt.Errorf("catalog: truncated INT at column %q", col.Name)
			}
			vals[i] = value.Uint32(binary.LittleEndian.Uint32(buf[off : off+4]))
			off += 4
		case value.TEXT:
			if off+4 > len(buf) {
				return nil, fmt.Errorf("catalog: truncated TEXT length at column %q", col.Name)
			}
			n := int(binary.LittleEndian.Uint32(buf[off : off+4]))
			off += 4
			if off+n > len(buf) {
				return nil, fmt.Errorf("catalog: truncated TEXT data at column %q", col.Name)
			}
			vals[i] = value.String(string(buf[off : off+n]))
			off += n
		default:
			return nil, fmt.Errorf("catalog: column %q has unknown type %d", col.Name, col.Type)
		}
	}
	return vals, nil
}
