package buffer

import (
	"fmt"
	"sync"

	"github.com/luigirelational/pagedb/internal/pager"
)

// Frame is one slot of the buffer pool: a PageSize byte array plus the
// metadata the manager and policy need to track it.
type Frame struct {
	PageID   pager.PageID
	Data     []byte
	PinCount int
	Dirty    bool
}

// Config configures a Manager.
type Config struct {
	PageSize int // byte size of every frame's Data
	PoolSize int // number of frames
}

// Manager is the fixed-size frame pool shared by every heap file and
// catalog table opened against one DiskManager. It is the sole owner of
// disk I/O timing: callers only ever read/write a frame's Data while it is
// pinned.
type Manager struct {
	mu      sync.Mutex
	dm      *pager.DiskManager
	frames  []*Frame
	table   map[pager.PageID]int // page_id -> frame index
	free    *FreeList
	clock   *ClockPolicy
	pageLen int
}

// NewManager builds a pool of cfg.PoolSize frames of cfg.PageSize bytes,
// backed by dm for loads and flushes.
func NewManager(dm *pager.DiskManager, cfg Config) *Manager {
	frames := make([]*Frame, cfg.PoolSize)
	for i := range frames {
		frames[i] = &Frame{PageID: pager.InvalidPageID, Data: make([]byte, cfg.PageSize)}
	}
	return &Manager{
		dm:      dm,
		frames:  frames,
		table:   make(map[pager.PageID]int, cfg.PoolSize),
		free:    NewFreeList(cfg.PoolSize),
		clock:   NewClockPolicy(cfg.PoolSize),
		pageLen: cfg.PageSize,
	}
}

// Request pins id, loading it from disk into a frame if it is not already
// cached. Every call must be matched by exactly one Release.
func (m *Manager) Request(id pager.PageID) (*Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fi, ok := m.table[id]; ok {
		f := m.frames[fi]
		f.PinCount++
		m.clock.RecordAccess(fi)
		return f, nil
	}

	fi, err := m.acquireFrame()
	if err != nil {
		return nil, err
	}
	f := m.frames[fi]
	if err := m.dm.ReadPage(id, f.Data); err != nil {
		return nil, fmt.Errorf("buffer: load page %d: %w", id, err)
	}
	f.PageID = id
	f.PinCount = 1
	f.Dirty = false
	m.table[id] = fi
	m.clock.RecordLoad(fi)
	return f, nil
}

// acquireFrame returns an index ready to be repurposed: free if one exists,
// otherwise the Clock victim. Caller must hold m.mu.
func (m *Manager) acquireFrame() (int, error) {
	if fi, ok := m.free.Pop(); ok {
		return fi, nil
	}
	return m.evict()
}

// evict picks an unpinned victim via Clock, flushing it if dirty, and
// removes its page-table entry. Fatal (panics) if every frame is pinned —
// the caller has broken the pinning protocol.
func (m *Manager) evict() (int, error) {
	victim, ok := m.clock.ChooseVictim(func(frame int) bool {
		return m.frames[frame].PinCount > 0
	})
	if !ok {
		panic("buffer: cannot evict, all frames pinned")
	}
	f := m.frames[victim]
	if f.Dirty {
		if err := m.dm.WritePage(f.PageID, f.Data); err != nil {
			return 0, fmt.Errorf("buffer: flush victim page %d: %w", f.PageID, err)
		}
		f.Dirty = false
	}
	delete(m.table, f.PageID)
	f.PageID = pager.InvalidPageID
	return victim, nil
}

// Release unpins id. Once the pin count reaches zero the Clock policy is
// notified so the frame becomes an eviction candidate. Releasing a page that
// is not resident, or whose frame is already unpinned, is a contract
// violation (fatal).
func (m *Manager) Release(id pager.PageID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	fi, ok := m.table[id]
	if !ok {
		panic(fmt.Sprintf("buffer: release of page %d not in page table", id))
	}
	f := m.frames[fi]
	if f.PinCount == 0 {
		panic(fmt.Sprintf("buffer: release of page %d with pin count already zero", id))
	}
	f.PinCount--
	if f.PinCount == 0 {
		m.clock.RecordUnpin(fi)
	}
}

// MarkDirty flags a pinned frame as modified. Callers must mark dirty before
// releasing, never after — otherwise the policy may evict what looks like
// clean state while the write is still only in memory.
func (m *Manager) MarkDirty(f *Frame) {
	f.Dirty = true
}

// FlushAll writes back every dirty frame, for shutdown or explicit sync.
func (m *Manager) FlushAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.frames {
		if f.Dirty {
			if err := m.dm.WritePage(f.PageID, f.Data); err != nil {
				return fmt.Errorf("buffer: flush page %d: %w", f.PageID, err)
			}
			f.Dirty = false
		}
	}
	return nil
}
