// Package table implements the Relation abstraction — "something you can
// sequentially scan and decode" — over both the system catalogs and
// user-created tables, plus the table manager that caches open user tables
// by name.
package table

import (
	"github.com/luigirelational/pagedb/internal/catalog"
	"github.com/luigirelational/pagedb/internal/heap"
	"github.com/luigirelational/pagedb/internal/value"
)

// Tuple is a decoded row: ordered values plus a shared, immutable schema.
// Schema is never copied per tuple — every tuple produced by the same scan
// points at the same backing slice.
type Tuple struct {
	Values []value.Value
	Schema []catalog.Column
}

// Relation is implemented by both CatalogTable and UserTable: anything that
// can be inserted into opaquely, scanned from the start, and have its raw
// heap records decoded into tuples.
type Relation interface {
	// InsertRaw inserts an already-encoded record and returns its RID.
	InsertRaw(data []byte) (heap.RID, bool, error)
	// Begin starts a forward scan over the underlying heap file.
	Begin() *heap.Iterator
	// Decode turns one raw heap record into a Tuple.
	Decode(rec heap.Record) (Tuple, error)
	// Schema returns the relation's column schema.
	Schema() []catalog.Column
}
