package pager

import "encoding/binary"

// ───────────────────────────────────────────────────────────────────────────
// Heap page
// ───────────────────────────────────────────────────────────────────────────
//
// A heap page is a page with a small 8-byte-aligned prefix:
//
//   [0:4]  NextPageID (int32 LE) — InvalidPageID terminates the chain
//   [4:8]  reserved, zero-filled
//
// followed by a slotted page occupying the remainder of the buffer. Heap
// pages within a heap file form a singly-linked list.

// HeapPage is a slotted page embedded behind a next-page pointer.
type HeapPage struct {
	buf     []byte
	Slotted *SlottedPage
}

// WrapHeapPage interprets an already-initialised buffer as a heap page.
func WrapHeapPage(buf []byte) *HeapPage {
	return &HeapPage{buf: buf, Slotted: Wrap(buf, HeapPageHeaderSize)}
}

// InitHeapPage zeroes buf, sets next to InvalidPageID, and initialises the
// embedded slotted page.
func InitHeapPage(buf []byte) *HeapPage {
	for i := range buf {
		buf[i] = 0
	}
	next := int32(InvalidPageID)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(next))
	return &HeapPage{buf: buf, Slotted: Init(buf, HeapPageHeaderSize)}
}

// NextPageID returns the next page in the chain, or InvalidPageID at the tail.
func (hp *HeapPage) NextPageID() PageID {
	return PageID(int32(binary.LittleEndian.Uint32(hp.buf[0:4])))
}

// SetNextPageID links this page to the next page in the chain.
func (hp *HeapPage) SetNextPageID(id PageID) {
	binary.LittleEndian.PutUint32(hp.buf[0:4], uint32(int32(id)))
}
