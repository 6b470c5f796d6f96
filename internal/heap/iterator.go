package heap

import (
	"fmt"

	"github.com/luigirelational/pagedb/internal/pager"
)

// Iterator yields every live record of a heap file in (page-order,
// slot-order). It holds no page pinned between calls: each step re-pins the
// current page just long enough to find the next live slot, or to follow
// next_page_id, then releases.
type Iterator struct {
	hf      *File
	pid     pager.PageID
	slot    int
	done    bool
	pending *Record
	err     error
}

// Begin starts a forward iterator over hf.
func (hf *File) Begin() *Iterator {
	it := &Iterator{hf: hf, pid: hf.FirstPageID, slot: 0}
	it.advance()
	return it
}

// advance finds the next live record at or after (it.pid, it.slot) and
// stages it in it.pending, or sets it.done when the chain is exhausted.
func (it *Iterator) advance() {
	for it.pid != pager.InvalidPageID {
		f, err := it.hf.bm.Request(it.pid)
		if err != nil {
			it.err = fmt.Errorf("heap: iterator request page %d: %w", it.pid, err)
			it.done = true
			return
		}
		hp := pager.WrapHeapPage(f.Data)
		n := hp.Slotted.NumSlots()
		for it.slot < n {
			if data, ok := hp.Slotted.Get(it.slot); ok {
				cp := make([]byte, len(data))
				copy(cp, data)
				rid := RID{PageID: it.pid, SlotID: it.slot}
				it.pending = &Record{RID: rid, Bytes: cp}
				it.slot++
				it.hf.bm.Release(it.pid)
				return
			}
			it.slot++
		}
		next := hp.NextPageID()
		it.hf.bm.Release(it.pid)
		it.pid = next
		it.slot = 0
	}
	it.done = true
}

// HasNext reports whether Next will return a record. Consistent with the
// outcome of the next Next call, per spec.md §4.5.
func (it *Iterator) HasNext() bool {
	return it.pending != nil
}

// Next returns the next record; ok is true whenever HasNext reported true.
// Calling Next after the iterator is exhausted is a contract violation and
// panics.
func (it *Iterator) Next() (Record, bool) {
	if it.pending == nil {
		if it.err != nil {
			panic(it.err)
		}
		panic("heap: Next called on an exhausted iterator")
	}
	r := *it.pending
	it.pending = nil
	it.advance()
	return r, true
}
