package exec

import (
	"fmt"

	"github.com/luigirelational/pagedb/internal/plan"
	"github.com/luigirelational/pagedb/internal/table"
)

// PlanningContext carries the dependencies the physical planner needs to
// turn a logical Scan into a concrete relation.
type PlanningContext struct {
	Tables *table.Manager
}

// Plan turns a logical plan tree into an operator tree. The mapping is
// fixed: Scan -> SeqScan, Filter -> Filter, Project -> Projection,
// Limit -> Limit. An unrecognised node kind is a fatal contract violation,
// not a recoverable error.
func Plan(ctx *PlanningContext, node plan.Node) Operator {
	switch n := node.(type) {
	case plan.Scan:
		rel, err := ctx.Tables.Open(n.TableName)
		if err != nil {
			panic(fmt.Sprintf("exec: planning scan of %q: %v", n.TableName, err))
		}
		return NewSeqScan(rel)
	case plan.Filter:
		return NewFilter(Plan(ctx, n.Child), n.Predicate)
	case plan.Project:
		return NewProjection(Plan(ctx, n.Child), n.KeepPositions, n.OutSchema)
	case plan.Limit:
		return NewLimit(Plan(ctx, n.Child), n.N)
	default:
		panic(fmt.Sprintf("exec: unknown logical plan node %T", node))
	}
}
