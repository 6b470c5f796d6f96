// Package value defines the tagged value union tuples are built from, and
// the built-in type identifiers that drive both the catalog and the dynamic
// row codec.
package value

import "github.com/google/uuid"

// TypeID identifies a built-in column type. Stored in db_types and referenced
// by db_attributes.type_id.
type TypeID uint32

const (
	// INT is a fixed-width 4-byte integer.
	INT TypeID = iota
	// TEXT is a variable-width, length-prefixed string. Its db_types.size
	// sentinel is 0.
	TEXT
)

// Alignment returns the byte alignment the dynamic row codec pads to before
// writing a value of this type. Both built-in types align to 4 bytes.
func (t TypeID) Alignment() int {
	switch t {
	case INT, TEXT:
		return 4
	default:
		return 4
	}
}

// Kind tags which field of Value is populated.
type Kind uint8

const (
	KindUint32 Kind = iota
	KindString
	KindUUID
	KindPageID
)

// Value is the tagged union every decoded column value is represented as,
// whether it came from a catalog row or a user table row.
type Value struct {
	Kind Kind
	U32  uint32
	Str  string
	UUID uuid.UUID
	// PageID reuses the uint32 domain (page IDs are non-negative int32s in
	// this engine) but is tagged separately so callers never confuse a
	// page pointer with an ordinary integer column.
	Page int32
}

func Uint32(v uint32) Value     { return Value{Kind: KindUint32, U32: v} }
func String(v string) Value     { return Value{Kind: KindString, Str: v} }
func UUIDVal(v uuid.UUID) Value { return Value{Kind: KindUUID, UUID: v} }
func PageID(v int32) Value      { return Value{Kind: KindPageID, Page: v} }
