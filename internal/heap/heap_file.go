// Package heap implements the multi-page record heap: a singly-linked chain
// of heap pages accessed through the buffer manager, with record identifiers
// that survive in-place updates.
package heap

import (
	"fmt"

	"github.com/luigirelational/pagedb/internal/buffer"
	"github.com/luigirelational/pagedb/internal/pager"
)

// RID identifies one record: the page holding it and its slot within that
// page's slot directory. Stable across updates on the same page; not stable
// across a heap reorganisation (this design never performs one).
type RID struct {
	PageID pager.PageID
	SlotID int
}

// Record is one decoded (page-order, slot-order) entry from a forward scan.
// Bytes is always an owned copy, never a borrow into a buffer pool frame.
type Record struct {
	RID   RID
	Bytes []byte
}

// File is a heap file: a chain of heap pages reachable from FirstPageID,
// reconstructed by a caller that already knows (file_id, first_page_id) —
// the chain's identity is not itself persisted (spec.md §3).
type File struct {
	bm          *buffer.Manager
	dm          *pager.DiskManager
	FileID      [16]byte
	FirstPageID pager.PageID
}

// Create allocates and initialises the root heap page for a brand new file.
func Create(bm *buffer.Manager, dm *pager.DiskManager, fileID [16]byte) (*File, error) {
	root := dm.AllocatePage()
	f, err := bm.Request(root)
	if err != nil {
		return nil, fmt.Errorf("heap: create root page: %w", err)
	}
	pager.InitHeapPage(f.Data)
	bm.MarkDirty(f)
	bm.Release(root)
	return &File{bm: bm, dm: dm, FileID: fileID, FirstPageID: root}, nil
}

// Open reconstructs a handle to an existing heap file without performing
// any I/O. firstPageID may be pager.InvalidPageID for a heap file that has
// never been inserted into yet.
func Open(bm *buffer.Manager, dm *pager.DiskManager, fileID [16]byte, firstPageID pager.PageID) *File {
	return &File{bm: bm, dm: dm, FileID: fileID, FirstPageID: firstPageID}
}

// Insert places data somewhere in the chain, allocating and linking a new
// tail page if every existing page is full. Returns false ("too large") if
// even a freshly initialised empty page cannot hold the record.
func (hf *File) Insert(data []byte) (RID, bool, error) {
	if hf.FirstPageID == pager.InvalidPageID {
		root := hf.dm.AllocatePage()
		f, err := hf.bm.Request(root)
		if err != nil {
			return RID{}, false, fmt.Errorf("heap: allocate root on first insert: %w", err)
		}
		pager.InitHeapPage(f.Data)
		hf.bm.MarkDirty(f)
		hf.bm.Release(root)
		hf.FirstPageID = root
	}

	pid := hf.FirstPageID
	var lastPID pager.PageID
	for pid != pager.InvalidPageID {
		f, err := hf.bm.Request(pid)
		if err != nil {
			return RID{}, false, fmt.Errorf("heap: request page %d: %w", pid, err)
		}
		hp := pager.WrapHeapPage(f.Data)
		if slot, ok := hp.Slotted.Insert(data); ok {
			hf.bm.MarkDirty(f)
			hf.bm.Release(pid)
			return RID{PageID: pid, SlotID: slot}, true, nil
		}
		next := hp.NextPageID()
		hf.bm.Release(pid)
		lastPID = pid
		pid = next
	}

	// Every page rejected the insert; grow the chain.
	newID := hf.dm.AllocatePage()
	nf, err := hf.bm.Request(newID)
	if err != nil {
		return RID{}, false, fmt.Errorf("heap: allocate new tail page: %w", err)
	}
	pager.InitHeapPage(nf.Data)
	hp := pager.WrapHeapPage(nf.Data)
	slot, ok := hp.Slotted.Insert(data)
	if !ok {
		hf.bm.Release(newID)
		return RID{}, false, nil // too large even for an empty page
	}
	hf.bm.MarkDirty(nf)
	hf.bm.Release(newID)

	lf, err := hf.bm.Request(lastPID)
	if err != nil {
		return RID{}, false, fmt.Errorf("heap: link new tail page: %w", err)
	}
	pager.WrapHeapPage(lf.Data).SetNextPageID(newID)
	hf.bm.MarkDirty(lf)
	hf.bm.Release(lastPID)

	return RID{PageID: newID, SlotID: slot}, true, nil
}

// Get fetches and copies the record at rid. The bool is false if the slot ID
// is out of range of the page's slot directory or the slot is a tombstone.
func (hf *File) Get(rid RID) ([]byte, bool, error) {
	f, err := hf.bm.Request(rid.PageID)
	if err != nil {
		return nil, false, fmt.Errorf("heap: request page %d: %w", rid.PageID, err)
	}
	defer hf.bm.Release(rid.PageID)

	hp := pager.WrapHeapPage(f.Data)
	data, ok := hp.Slotted.Get(rid.SlotID)
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

// Update rewrites the record at rid. Dirty is only marked on success,
// preserving the on-success-only ordering the source relies on (spec.md §9).
func (hf *File) Update(rid RID, data []byte) (bool, error) {
	f, err := hf.bm.Request(rid.PageID)
	if err != nil {
		return false, fmt.Errorf("heap: request page %d: %w", rid.PageID, err)
	}
	defer hf.bm.Release(rid.PageID)

	hp := pager.WrapHeapPage(f.Data)
	if !hp.Slotted.Update(rid.SlotID, data) {
		return false, nil
	}
	hf.bm.MarkDirty(f)
	return true, nil
}

// Delete tombstones the record at rid.
func (hf *File) Delete(rid RID) (bool, error) {
	f, err := hf.bm.Request(rid.PageID)
	if err != nil {
		return false, fmt.Errorf("heap: request page %d: %w", rid.PageID, err)
	}
	defer hf.bm.Release(rid.PageID)

	hp := pager.WrapHeapPage(f.Data)
	if !hp.Slotted.Delete(rid.SlotID) {
		return false, nil
	}
	hf.bm.MarkDirty(f)
	return true, nil
}
