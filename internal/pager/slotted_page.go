package pager

import (
	"encoding/binary"
	"fmt"
)

// ───────────────────────────────────────────────────────────────────────────
// Slotted page
// ───────────────────────────────────────────────────────────────────────────
//
// Layout, relative to a caller-supplied base offset (so a slotted page can be
// embedded behind a per-file header, as the heap page does):
//
//   [base+0:2]   NumSlots        (uint16 LE)
//   [base+2:4]   FreeSpaceOffset (uint16 LE) — starts at len(buf), shrinks
//   [base+4 .. ] Slot directory, 4 bytes per slot, grows up
//   ... free space ...
//   [FreeSpaceOffset .. len(buf)] record bytes, grow down
//
// A Slot{Offset, Length} with Length == 0 is a tombstone: the slot ID stays
// valid (Get returns "not found") but the bytes are gone. Slot IDs are never
// recycled.

// SlotEntry is one directory entry: the span of a single record in the page.
type SlotEntry struct {
	Offset uint16
	Length uint16
}

// SlottedPage wraps a page buffer (or a sub-region of one) and interprets it
// as a slotted page starting at base.
type SlottedPage struct {
	buf  []byte
	base int
}

// Wrap adapts an already-initialised buffer region into a SlottedPage.
func Wrap(buf []byte, base int) *SlottedPage {
	return &SlottedPage{buf: buf, base: base}
}

// Init zeroes the header of the page region at base and marks it empty.
func Init(buf []byte, base int) *SlottedPage {
	sp := &SlottedPage{buf: buf, base: base}
	sp.setNumSlots(0)
	sp.setFreeSpaceOffset(len(buf))
	return sp
}

func (sp *SlottedPage) NumSlots() int {
	return int(binary.LittleEndian.Uint16(sp.buf[sp.base:]))
}

func (sp *SlottedPage) setNumSlots(n int) {
	binary.LittleEndian.PutUint16(sp.buf[sp.base:], uint16(n))
}

func (sp *SlottedPage) FreeSpaceOffset() int {
	return int(binary.LittleEndian.Uint16(sp.buf[sp.base+2:]))
}

func (sp *SlottedPage) setFreeSpaceOffset(off int) {
	binary.LittleEndian.PutUint16(sp.buf[sp.base+2:], uint16(off))
}

// slotDirEnd is the offset just past the last slot directory entry.
func (sp *SlottedPage) slotDirEnd() int {
	return sp.base + PageHeaderSize + sp.NumSlots()*SlotSize
}

// FreeSpace is the number of bytes available for a new record plus its slot
// entry. It always accounts for the page's base offset (spec.md §9): a
// heap-embedded slotted page has less room than one starting at byte 0.
func (sp *SlottedPage) FreeSpace() int {
	return sp.FreeSpaceOffset() - sp.slotDirEnd()
}

func (sp *SlottedPage) slotOffset(id int) int {
	return sp.base + PageHeaderSize + id*SlotSize
}

func (sp *SlottedPage) GetSlot(id int) SlotEntry {
	off := sp.slotOffset(id)
	return SlotEntry{
		Offset: binary.LittleEndian.Uint16(sp.buf[off:]),
		Length: binary.LittleEndian.Uint16(sp.buf[off+2:]),
	}
}

func (sp *SlottedPage) setSlot(id int, e SlotEntry) {
	off := sp.slotOffset(id)
	binary.LittleEndian.PutUint16(sp.buf[off:], e.Offset)
	binary.LittleEndian.PutUint16(sp.buf[off+2:], e.Length)
}

// Insert appends data as a new record and returns its slot ID, or false if
// there is not enough free space for the record plus a new slot entry.
func (sp *SlottedPage) Insert(data []byte) (int, bool) {
	if sp.FreeSpace() < len(data)+SlotSize {
		return 0, false
	}
	newOff := sp.FreeSpaceOffset() - len(data)
	copy(sp.buf[newOff:newOff+len(data)], data)
	sp.setFreeSpaceOffset(newOff)

	id := sp.NumSlots()
	sp.setSlot(id, SlotEntry{Offset: uint16(newOff), Length: uint16(len(data))})
	sp.setNumSlots(id + 1)
	return id, true
}

// Get returns the record stored at slot id, or false if the slot is out of
// range or a tombstone. The returned slice aliases the page buffer: callers
// must copy it before the page is released back to the buffer pool.
func (sp *SlottedPage) Get(id int) ([]byte, bool) {
	if id < 0 || id >= sp.NumSlots() {
		return nil, false
	}
	e := sp.GetSlot(id)
	if e.Length == 0 {
		return nil, false
	}
	return sp.buf[e.Offset : e.Offset+e.Length], true
}

// Update replaces the record at slot id with data. If the new value fits in
// the existing span it is overwritten in place (shrinking the recorded
// length); otherwise, if there is room, a new copy is appended and the slot
// rewritten to point at it — the slot ID never changes. Returns false if
// neither fits, or if the slot does not exist.
func (sp *SlottedPage) Update(id int, data []byte) bool {
	if id < 0 || id >= sp.NumSlots() {
		return false
	}
	e := sp.GetSlot(id)
	if int(e.Length) >= len(data) {
		copy(sp.buf[e.Offset:int(e.Offset)+len(data)], data)
		sp.setSlot(id, SlotEntry{Offset: e.Offset, Length: uint16(len(data))})
		return true
	}
	if sp.FreeSpace() < len(data) {
		return false
	}
	newOff := sp.FreeSpaceOffset() - len(data)
	copy(sp.buf[newOff:newOff+len(data)], data)
	sp.setFreeSpaceOffset(newOff)
	sp.setSlot(id, SlotEntry{Offset: uint16(newOff), Length: uint16(len(data))})
	return true
}

// Delete tombstones slot id (length 0); the old bytes become dead space and
// are not reclaimed. Returns false if the slot does not exist.
func (sp *SlottedPage) Delete(id int) bool {
	if id < 0 || id >= sp.NumSlots() {
		return false
	}
	e := sp.GetSlot(id)
	sp.setSlot(id, SlotEntry{Offset: e.Offset, Length: 0})
	return true
}

// IsTombstone reports whether slot id has been deleted. Panics if id is out
// of range — callers are expected to bound id by NumSlots first.
func (sp *SlottedPage) IsTombstone(id int) bool {
	if id < 0 || id >= sp.NumSlots() {
		panic(fmt.Sprintf("pager: slot %d out of range (num_slots=%d)", id, sp.NumSlots()))
	}
	return sp.GetSlot(id).Length == 0
}
