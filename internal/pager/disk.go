package pager

import (
	"fmt"
	"os"
)

// ───────────────────────────────────────────────────────────────────────────
// Disk manager
// ───────────────────────────────────────────────────────────────────────────
//
// DiskManager owns one database file and performs all block I/O against it.
// Page allocation prefers recycled IDs from an in-memory free list before
// growing the file; that free list is never persisted (spec.md §9: a known
// limitation, not fixed here — deallocated pages leak across restarts).

// DiskManager reads and writes fixed-size pages of a single database file.
type DiskManager struct {
	file     *os.File
	pageSize int
	freeList []PageID // LIFO: last deallocated, first reused
	nextID   PageID
}

// Open creates the database file at path if it does not already exist
// (idempotent) and opens it for read/write. nextPageID is derived from the
// current file length.
func Open(path string, pageSize int) (*DiskManager, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("pager: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("pager: stat %s: %w", path, err)
	}
	next := PageID(info.Size() / int64(pageSize))
	return &DiskManager{file: f, pageSize: pageSize, nextID: next}, nil
}

// PageSize returns the fixed page size this manager was opened with.
func (dm *DiskManager) PageSize() int { return dm.pageSize }

// AllocatePage returns a free page ID, preferring a recycled one over
// growing the file. Growing the file zero-extends it immediately, the same
// way jordy's DiskManager.AllocatePage does, so a buffer manager Request
// against a brand new page ID never races a read against an unwritten block.
func (dm *DiskManager) AllocatePage() PageID {
	if n := len(dm.freeList); n > 0 {
		id := dm.freeList[n-1]
		dm.freeList = dm.freeList[:n-1]
		return id
	}
	id := dm.nextID
	dm.nextID++
	zero := make([]byte, dm.pageSize)
	if _, err := dm.file.WriteAt(zero, int64(id)*int64(dm.pageSize)); err != nil {
		panic(fmt.Sprintf("pager: zero-extend for page %d: %v", id, err))
	}
	return id
}

// DeallocatePage returns a page ID to the in-memory free list. Not exercised
// by heap files in this design (pages persist once allocated) but available
// for callers that do reclaim space explicitly.
func (dm *DiskManager) DeallocatePage(id PageID) {
	dm.freeList = append(dm.freeList, id)
}

// ReadPage reads exactly PageSize bytes for id into buf. A short read on an
// allocated page is an I/O failure and is fatal to the caller.
func (dm *DiskManager) ReadPage(id PageID, buf []byte) error {
	if len(buf) != dm.pageSize {
		panic(fmt.Sprintf("pager: ReadPage buffer is %d bytes, want %d", len(buf), dm.pageSize))
	}
	n, err := dm.file.ReadAt(buf, int64(id)*int64(dm.pageSize))
	if err != nil {
		return fmt.Errorf("pager: read page %d: %w", id, err)
	}
	if n != dm.pageSize {
		return fmt.Errorf("pager: short read on page %d: got %d of %d bytes", id, n, dm.pageSize)
	}
	return nil
}

// WritePage writes exactly PageSize bytes of buf to id's block and flushes
// the write to the underlying file.
func (dm *DiskManager) WritePage(id PageID, buf []byte) error {
	if len(buf) != dm.pageSize {
		panic(fmt.Sprintf("pager: WritePage buffer is %d bytes, want %d", len(buf), dm.pageSize))
	}
	if _, err := dm.file.WriteAt(buf, int64(id)*int64(dm.pageSize)); err != nil {
		return fmt.Errorf("pager: write page %d: %w", id, err)
	}
	if err := dm.file.Sync(); err != nil {
		return fmt.Errorf("pager: sync after writing page %d: %w", id, err)
	}
	return nil
}

// NumPages returns the number of pages currently materialised in the file.
func (dm *DiskManager) NumPages() int {
	info, err := dm.file.Stat()
	if err != nil {
		return 0
	}
	return int(info.Size() / int64(dm.pageSize))
}

// Close releases the underlying file handle. The free list is discarded,
// per spec.md §9.
func (dm *DiskManager) Close() error {
	return dm.file.Close()
}
