package table

import (
	"github.com/luigirelational/pagedb/internal/catalog"
	"github.com/luigirelational/pagedb/internal/heap"
	"github.com/luigirelational/pagedb/internal/value"
)

// UserTable is a relation created by CreateTable: its rows are decoded
// through the dynamic, schema-driven codec rather than a hand-written one.
type UserTable struct {
	File   *heap.File
	schema []catalog.Column
}

// NewUserTable wraps an already-open heap file with the column schema
// fetched from the catalog.
func NewUserTable(f *heap.File, schema []catalog.Column) *UserTable {
	return &UserTable{File: f, schema: schema}
}

func (t *UserTable) InsertRaw(data []byte) (heap.RID, bool, error) {
	return t.File.Insert(data)
}

// InsertRow encodes vals according to the table's schema and inserts them.
func (t *UserTable) InsertRow(vals []value.Value) (heap.RID, bool, error) {
	buf, err := catalog.EncodeRow(t.schema, vals)
	if err != nil {
		return heap.RID{}, false, err
	}
	return t.File.Insert(buf)
}

func (t *UserTable) Begin() *heap.Iterator {
	return t.File.Begin()
}

func (t *UserTable) Schema() []catalog.Column {
	return t.schema
}

func (t *UserTable) Decode(rec heap.Record) (Tuple, error) {
	vals, err := catalog.DecodeRow(t.schema, rec.Bytes)
	if err != nil {
		return Tuple{}, err
	}
	return Tuple{Values: vals, Schema: t.schema}, nil
}
