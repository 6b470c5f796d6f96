// Package registry implements the database registry: the map from database
// name to its on-disk file and opened storage components. Creating, opening,
// and deleting databases are filesystem side effects layered over the
// per-database disk manager, buffer manager, and catalog.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/luigirelational/pagedb/internal/buffer"
	"github.com/luigirelational/pagedb/internal/catalog"
	"github.com/luigirelational/pagedb/internal/pager"
	"github.com/luigirelational/pagedb/internal/table"
)

const dbExtension = ".db"

// Config configures every database the registry opens.
type Config struct {
	DataDir        string
	PageSize       int
	BufferPoolSize int
}

// Database bundles the open components backing one named database.
type Database struct {
	Name    string
	Disk    *pager.DiskManager
	Buffer  *buffer.Manager
	Catalog *catalog.Catalog
	Tables  *table.Manager
}

// Registry maps database name to its opened Database, with filesystem
// side effects on Create/Open/Delete.
type Registry struct {
	cfg Config
	dbs map[string]*Database
}

// Init scans cfg.DataDir for files with the known database extension and
// opens a disk manager (and buffer manager, catalog, table manager) for
// each one found. Directory entries that are not regular .db files are
// ignored.
func Init(cfg Config) (*Registry, error) {
	if cfg.PageSize == 0 {
		cfg.PageSize = pager.DefaultPageSize
	}
	if cfg.BufferPoolSize == 0 {
		cfg.BufferPoolSize = 64
	}

	entries, err := os.ReadDir(cfg.DataDir)
	if err != nil {
		if os.IsNotExist(err) {
			if mkErr := os.MkdirAll(cfg.DataDir, 0o755); mkErr != nil {
				return nil, fmt.Errorf("registry: create data dir: %w", mkErr)
			}
			entries = nil
		} else {
			return nil, fmt.Errorf("registry: read data dir: %w", err)
		}
	}

	r := &Registry{cfg: cfg, dbs: make(map[string]*Database)}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), dbExtension) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), dbExtension)
		db, err := r.openDatabase(name)
		if err != nil {
			return nil, fmt.Errorf("registry: open %s: %w", name, err)
		}
		r.dbs[name] = db
	}
	return r, nil
}

func (r *Registry) path(name string) string {
	return filepath.Join(r.cfg.DataDir, name+dbExtension)
}

func (r *Registry) openDatabase(name string) (*Database, error) {
	dm, err := pager.Open(r.path(name), r.cfg.PageSize)
	if err != nil {
		return nil, err
	}
	bm := buffer.NewManager(dm, buffer.Config{PageSize: r.cfg.PageSize, PoolSize: r.cfg.BufferPoolSize})
	cat, err := catalog.Init(dm, bm)
	if err != nil {
		dm.Close()
		return nil, err
	}
	if _, err := cat.DescribeDatabase(name); err != nil {
		dm.Close()
		return nil, err
	}
	return &Database{
		Name:    name,
		Disk:    dm,
		Buffer:  bm,
		Catalog: cat,
		Tables:  table.NewManager(cat, bm, dm),
	}, nil
}

// Create opens (creating on disk) a new database named name. A database
// that already exists is a non-fatal duplicate: ok is false and err is nil.
func (r *Registry) Create(name string) (ok bool, err error) {
	if _, exists := r.dbs[name]; exists {
		return false, nil
	}
	db, err := r.openDatabase(name)
	if err != nil {
		return false, err
	}
	r.dbs[name] = db
	return true, nil
}

// Open returns the already-opened database named name. ok is false if no
// such database is registered; this is not fatal.
func (r *Registry) Open(name string) (db *Database, ok bool) {
	db, ok = r.dbs[name]
	return db, ok
}

// Delete closes and removes the on-disk file for the named database. A
// missing database is a non-fatal no-op: ok is false and err is nil.
func (r *Registry) Delete(name string) (ok bool, err error) {
	db, exists := r.dbs[name]
	if !exists {
		return false, nil
	}
	if err := db.Disk.Close(); err != nil {
		return false, fmt.Errorf("registry: close %s: %w", name, err)
	}
	if err := os.Remove(r.path(name)); err != nil {
		return false, fmt.Errorf("registry: remove %s: %w", name, err)
	}
	delete(r.dbs, name)
	return true, nil
}

// Names returns the currently registered database names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.dbs))
	for name := range r.dbs {
		names = append(names, name)
	}
	return names
}
