// Package plan defines the logical plan node types the physical planner
// consumes. Building these trees from parsed SQL is out of scope here; the
// planner, optimiser, and SQL front end are external collaborators that hand
// in an already-built tree.
package plan

import (
	"github.com/luigirelational/pagedb/internal/catalog"
	"github.com/luigirelational/pagedb/internal/table"
)

// Node is implemented by every logical plan node. It carries no methods: the
// physical planner dispatches on concrete type via a type switch, and an
// unrecognised concrete type is itself the "unknown plan node" failure mode.
type Node interface{}

// Scan reads every tuple of a named table.
type Scan struct {
	TableName string
}

// Filter keeps only the child's tuples for which Predicate returns true.
type Filter struct {
	Child     Node
	Predicate func(table.Tuple) bool
}

// Project keeps only the values at the given 1-indexed ordinal positions,
// tagging the result with OutSchema.
type Project struct {
	Child         Node
	KeepPositions []int
	OutSchema     []catalog.Column
}

// Limit caps the number of tuples produced by Child at N.
type Limit struct {
	Child Node
	N     int
}
