package table

import (
	"github.com/luigirelational/pagedb/internal/catalog"
	"github.com/luigirelational/pagedb/internal/heap"
	"github.com/luigirelational/pagedb/internal/value"
)

// CatalogTable wraps a system catalog heap file (db_tables, db_attributes,
// db_types, db_databases) as a Relation, decoding through the row type's
// static codec rather than the dynamic, schema-driven one UserTable uses.
type CatalogTable[Row any] struct {
	File     *heap.File
	schema   []catalog.Column
	decode   func([]byte) (Row, error)
	toValues func(Row) []value.Value
}

// NewCatalogTable builds a CatalogTable around an already-open heap file.
func NewCatalogTable[Row any](
	f *heap.File,
	schema []catalog.Column,
	decode func([]byte) (Row, error),
	toValues func(Row) []value.Value,
) *CatalogTable[Row] {
	return &CatalogTable[Row]{File: f, schema: schema, decode: decode, toValues: toValues}
}

func (t *CatalogTable[Row]) InsertRaw(data []byte) (heap.RID, bool, error) {
	return t.File.Insert(data)
}

func (t *CatalogTable[Row]) Begin() *heap.Iterator {
	return t.File.Begin()
}

func (t *CatalogTable[Row]) Schema() []catalog.Column {
	return t.schema
}

func (t *CatalogTable[Row]) Decode(rec heap.Record) (Tuple, error) {
	row, err := t.decode(rec.Bytes)
	if err != nil {
		return Tuple{}, err
	}
	return Tuple{Values: t.toValues(row), Schema: t.schema}, nil
}
