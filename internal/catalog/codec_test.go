package catalog

import (
	"testing"

	"github.com/google/uuid"

	"github.com/luigirelational/pagedb/internal/pager"
	"github.com/luigirelational/pagedb/internal/value"
)

func TestTableInfo_RoundTrip(t *testing.T) {
	want := TableInfo{
		TableID:     uuid.New(),
		TableName:   "students",
		HeapFileID:  uuid.New(),
		FirstPageID: pager.PageID(7),
	}
	got, err := DecodeTableInfo(want.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestColumnInfo_RoundTrip(t *testing.T) {
	want := ColumnInfo{TableID: uuid.New(), ColName: "name", TypeID: value.TEXT, OrdinalPosition: 2}
	got, err := DecodeColumnInfo(want.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestTypeInfo_RoundTrip(t *testing.T) {
	want := TypeInfo{TypeID: value.INT, Size: 4, TypeName: "INT"}
	got, err := DecodeTypeInfo(want.Encode())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestDynamicCodec_RoundTrip(t *testing.T) {
	schema := []Column{
		{Name: "id", Type: value.INT},
		{Name: "name", Type: value.TEXT},
	}
	vals := []value.Value{value.Uint32(42), value.String("Alice")}

	buf, err := EncodeRow(schema, vals)
	if err != nil {
		t.Fatalf("EncodeRow: %v", err)
	}
	got, err := DecodeRow(schema, buf)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if len(got) != 2 || got[0].U32 != 42 || got[1].Str != "Alice" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestDynamicCodec_AlignmentPadding(t *testing.T) {
	// TEXT then INT: the length-prefixed string payload need not land on a
	// 4-byte boundary on its own, but the codec must still pad before the
	// following INT so it decodes correctly.
	schema := []Column{
		{Name: "name", Type: value.TEXT},
		{Name: "age", Type: value.INT},
	}
	vals := []value.Value{value.String("abc"), value.Uint32(99)}

	buf, err := EncodeRow(schema, vals)
	if err != nil {
		t.Fatalf("EncodeRow: %v", err)
	}
	got, err := DecodeRow(schema, buf)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if got[0].Str != "abc" || got[1].U32 != 99 {
		t.Fatalf("round trip mismatch after padding: %+v", got)
	}
}
