// Package exec implements the Volcano-style operator pipeline: tuple-at-a-time
// Open/Next/Close nodes driven by an executor, produced from a logical plan
// tree by a fixed physical planner.
package exec

import (
	"github.com/luigirelational/pagedb/internal/catalog"
	"github.com/luigirelational/pagedb/internal/heap"
	"github.com/luigirelational/pagedb/internal/table"
	"github.com/luigirelational/pagedb/internal/value"
)

// Operator is the common contract every pipeline node implements. Open must
// be called before any Next; once Next returns ok=false, every subsequent
// call must also return ok=false. Close is mandatory and recurses into
// children.
type Operator interface {
	Open() error
	Next() (table.Tuple, bool, error)
	Close() error
}

// SeqScan yields every tuple of a relation in heap order.
type SeqScan struct {
	rel  table.Relation
	it   *heap.Iterator
	done bool
}

// NewSeqScan builds a scan over rel. Open must still be called before Next.
func NewSeqScan(rel table.Relation) *SeqScan {
	return &SeqScan{rel: rel}
}

func (s *SeqScan) Open() error {
	s.it = s.rel.Begin()
	s.done = false
	return nil
}

func (s *SeqScan) Next() (table.Tuple, bool, error) {
	if s.done || !s.it.HasNext() {
		s.done = true
		return table.Tuple{}, false, nil
	}
	rec, _ := s.it.Next()
	tup, err := s.rel.Decode(rec)
	if err != nil {
		return table.Tuple{}, false, err
	}
	return tup, true, nil
}

func (s *SeqScan) Close() error {
	return nil
}

// Predicate is a pure, caller-supplied tuple test.
type Predicate func(table.Tuple) bool

// Filter pulls from Child until Predicate returns true or Child is exhausted.
type Filter struct {
	Child     Operator
	Predicate Predicate
}

// NewFilter wraps child, keeping only tuples predicate accepts.
func NewFilter(child Operator, predicate Predicate) *Filter {
	return &Filter{Child: child, Predicate: predicate}
}

func (f *Filter) Open() error {
	return f.Child.Open()
}

func (f *Filter) Next() (table.Tuple, bool, error) {
	for {
		tup, ok, err := f.Child.Next()
		if err != nil || !ok {
			return table.Tuple{}, false, err
		}
		if f.Predicate(tup) {
			return tup, true, nil
		}
	}
}

func (f *Filter) Close() error {
	return f.Child.Close()
}

// Projection keeps only the values at the 1-indexed ordinal positions in
// KeepPositions, preserving their relative order, tagged with OutSchema.
type Projection struct {
	Child         Operator
	KeepPositions []int
	OutSchema     []catalog.Column
}

// NewProjection wraps child, keeping only the 1-indexed ordinal positions in
// keepPositions, tagged with outSchema.
func NewProjection(child Operator, keepPositions []int, outSchema []catalog.Column) *Projection {
	return &Projection{Child: child, KeepPositions: keepPositions, OutSchema: outSchema}
}

func (p *Projection) Open() error {
	return p.Child.Open()
}

func (p *Projection) Next() (table.Tuple, bool, error) {
	tup, ok, err := p.Child.Next()
	if err != nil || !ok {
		return table.Tuple{}, false, err
	}
	values := make([]value.Value, len(p.KeepPositions))
	for i, pos := range p.KeepPositions {
		values[i] = tup.Values[pos-1]
	}
	return table.Tuple{Values: values, Schema: p.OutSchema}, true, nil
}

func (p *Projection) Close() error {
	return p.Child.Close()
}

// Limit emits at most N tuples from Child.
type Limit struct {
	Child    Operator
	N        int
	produced int
}

// NewLimit wraps child, capping output at n tuples.
func NewLimit(child Operator, n int) *Limit {
	return &Limit{Child: child, N: n}
}

func (l *Limit) Open() error {
	l.produced = 0
	return l.Child.Open()
}

func (l *Limit) Next() (table.Tuple, bool, error) {
	if l.produced >= l.N {
		return table.Tuple{}, false, nil
	}
	tup, ok, err := l.Child.Next()
	if err != nil || !ok {
		return table.Tuple{}, false, err
	}
	l.produced++
	return tup, true, nil
}

func (l *Limit) Close() error {
	return l.Child.Close()
}
