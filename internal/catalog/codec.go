// Package catalog implements the self-describing system catalog: the
// fixed-width codec for catalog rows, the dynamic codec for user rows, the
// built-in row types, and bootstrap/lookup of tables, columns, and types.
package catalog

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// ───────────────────────────────────────────────────────────────────────────
// Fixed-width primitives for catalog rows
// ───────────────────────────────────────────────────────────────────────────
//
// Catalog rows encode fields in a fixed order with no padding between them:
// integers are written at their natural width little-endian; strings as a
// uint32 length prefix followed by their bytes; UUIDs as their 16 raw bytes.

// PutUint32 appends a little-endian uint32.
func PutUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

// GetUint32 reads a little-endian uint32 at the front of buf and returns the
// remainder.
func GetUint32(buf []byte) (uint32, []byte, error) {
	if len(buf) < 4 {
		return 0, nil, fmt.Errorf("catalog: short buffer reading uint32, have %d bytes", len(buf))
	}
	return binary.LittleEndian.Uint32(buf), buf[4:], nil
}

// PutInt32 appends a little-endian int32.
func PutInt32(buf []byte, v int32) []byte {
	return PutUint32(buf, uint32(v))
}

// GetInt32 reads a little-endian int32 at the front of buf.
func GetInt32(buf []byte) (int32, []byte, error) {
	v, rest, err := GetUint32(buf)
	return int32(v), rest, err
}

// PutString appends a uint32 length prefix followed by the string's bytes.
func PutString(buf []byte, s string) []byte {
	buf = PutUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

// GetString reads a length-prefixed string at the front of buf.
func GetString(buf []byte) (string, []byte, error) {
	n, rest, err := GetUint32(buf)
	if err != nil {
		return "", nil, err
	}
	if uint32(len(rest)) < n {
		return "", nil, fmt.Errorf("catalog: short buffer reading string of length %d, have %d bytes", n, len(rest))
	}
	return string(rest[:n]), rest[n:], nil
}

// PutUUID appends the 16 raw bytes of u.
func PutUUID(buf []byte, u uuid.UUID) []byte {
	return append(buf, u[:]...)
}

// GetUUID reads 16 raw bytes at the front of buf as a UUID.
func GetUUID(buf []byte) (uuid.UUID, []byte, error) {
	if len(buf) < 16 {
		return uuid.UUID{}, nil, fmt.Errorf("catalog: short buffer reading uuid, have %d bytes", len(buf))
	}
	var u uuid.UUID
	copy(u[:], buf[:16])
	return u, buf[16:], nil
}
