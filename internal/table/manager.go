package table

import (
	"fmt"
	"sync"

	"github.com/luigirelational/pagedb/internal/buffer"
	"github.com/luigirelational/pagedb/internal/catalog"
	"github.com/luigirelational/pagedb/internal/heap"
	"github.com/luigirelational/pagedb/internal/pager"
)

// Manager caches name -> *UserTable, opening heap files lazily on first
// reference and reusing the shared buffer and disk managers the catalog
// itself was opened with.
type Manager struct {
	mu    sync.Mutex
	cat   *catalog.Catalog
	bm    *buffer.Manager
	dm    *pager.DiskManager
	cache map[string]*UserTable
}

// NewManager builds a table manager over an already-initialised catalog.
func NewManager(cat *catalog.Catalog, bm *buffer.Manager, dm *pager.DiskManager) *Manager {
	return &Manager{cat: cat, bm: bm, dm: dm, cache: make(map[string]*UserTable)}
}

// CreateTable delegates table creation to the catalog; the new table is not
// cached until it is first opened.
func (m *Manager) CreateTable(name string, columns []catalog.Column) error {
	_, err := m.cat.CreateTable(name, columns)
	return err
}

// Open returns the cached UserTable for name, opening and caching it on
// first reference.
func (m *Manager) Open(name string) (*UserTable, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ut, ok := m.cache[name]; ok {
		return ut, nil
	}

	info, ok, err := m.cat.LookupTable(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("table: no such table %q", name)
	}

	columns, err := m.cat.GetTableColumns(info.TableID)
	if err != nil {
		return nil, err
	}
	schema := make([]catalog.Column, len(columns))
	for i, c := range columns {
		schema[i] = catalog.Column{Name: c.ColName, Type: c.TypeID}
	}

	hf := heap.Open(m.bm, m.dm, info.HeapFileID, info.FirstPageID)
	ut := NewUserTable(hf, schema)
	m.cache[name] = ut
	return ut, nil
}
