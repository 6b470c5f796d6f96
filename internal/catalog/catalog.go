package catalog

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/luigirelational/pagedb/internal/buffer"
	"github.com/luigirelational/pagedb/internal/heap"
	"github.com/luigirelational/pagedb/internal/pager"
	"github.com/luigirelational/pagedb/internal/value"
)

// ───────────────────────────────────────────────────────────────────────────
// Bootstrap layout
// ───────────────────────────────────────────────────────────────────────────
//
// Page 0 is a database header page whose first four bytes carry DBMagic.
// Pages 1..4 are the fixed, well-known root pages of the system catalogs.
// Both the allocation order below and the rows each catalog inserts to
// describe itself must agree on these constants (spec.md §9 flags this as
// worth an explicit check — see the assertion in bootstrap).

const (
	// DBMagic identifies an initialised database file.
	DBMagic uint32 = 0xDBDBDBDB

	headerPageID     = pager.PageID(0)
	rootDBTables     = pager.PageID(1)
	rootDBAttributes = pager.PageID(2)
	rootDBTypes      = pager.PageID(3)
	rootDBDatabases  = pager.PageID(4)
)

// Catalog is the self-describing system catalog: four heap files holding
// table, column, type, and database metadata, plus lookup/DDL methods over
// them.
type Catalog struct {
	dm *pager.DiskManager
	bm *buffer.Manager

	tables     *heap.File
	attributes *heap.File
	types      *heap.File
	databases  *heap.File
}

// Init bootstraps a fresh database file or loads an already-initialised one,
// per the marker at page 0.
func Init(dm *pager.DiskManager, bm *buffer.Manager) (*Catalog, error) {
	if IsInitialised(dm) {
		return Load(dm, bm)
	}
	return bootstrap(dm, bm)
}

// IsInitialised reports whether dm's file already has a valid database
// header: at least one page exists and page 0's magic matches.
func IsInitialised(dm *pager.DiskManager) bool {
	if dm.NumPages() == 0 {
		return false
	}
	buf := make([]byte, dm.PageSize())
	if err := dm.ReadPage(headerPageID, buf); err != nil {
		return false
	}
	return binary.LittleEndian.Uint32(buf[:4]) == DBMagic
}

// bootstrap allocates the header page and the well-known catalog root
// pages, inserts the built-in types and the catalogs' own self-describing
// rows, and flushes everything to disk.
func bootstrap(dm *pager.DiskManager, bm *buffer.Manager) (*Catalog, error) {
	if err := allocateExpected(dm, headerPageID); err != nil {
		return nil, err
	}
	hdrFrame, err := bm.Request(headerPageID)
	if err != nil {
		return nil, fmt.Errorf("catalog: request header page: %w", err)
	}
	binary.LittleEndian.PutUint32(hdrFrame.Data[:4], DBMagic)
	bm.MarkDirty(hdrFrame)
	bm.Release(headerPageID)

	tablesFile, err := createRootHeap(dm, bm, rootDBTables)
	if err != nil {
		return nil, err
	}
	attributesFile, err := createRootHeap(dm, bm, rootDBAttributes)
	if err != nil {
		return nil, err
	}
	typesFile, err := createRootHeap(dm, bm, rootDBTypes)
	if err != nil {
		return nil, err
	}
	databasesFile, err := createRootHeap(dm, bm, rootDBDatabases)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{
		dm: dm, bm: bm,
		tables: tablesFile, attributes: attributesFile,
		types: typesFile, databases: databasesFile,
	}

	if err := cat.insertBuiltinTypes(); err != nil {
		return nil, err
	}
	if err := cat.describeSelf(); err != nil {
		return nil, err
	}
	if err := bm.FlushAll(); err != nil {
		return nil, fmt.Errorf("catalog: flush after bootstrap: %w", err)
	}
	return cat, nil
}

// allocateExpected allocates the next page and panics (contract violation)
// if it does not land on want — the fresh-database assumption that
// allocation order and the well-known root IDs agree (spec.md §9).
func allocateExpected(dm *pager.DiskManager, want pager.PageID) error {
	got := dm.AllocatePage()
	if got != want {
		panic(fmt.Sprintf("catalog: expected to allocate well-known page %d, got %d", want, got))
	}
	return nil
}

func createRootHeap(dm *pager.DiskManager, bm *buffer.Manager, root pager.PageID) (*heap.File, error) {
	if err := allocateExpected(dm, root); err != nil {
		return nil, err
	}
	f, err := bm.Request(root)
	if err != nil {
		return nil, fmt.Errorf("catalog: request root page %d: %w", root, err)
	}
	pager.InitHeapPage(f.Data)
	bm.MarkDirty(f)
	bm.Release(root)
	return heap.Open(bm, dm, uuid.New(), root), nil
}

// Load reopens an already-bootstrapped catalog at its well-known root pages.
// No I/O is performed beyond what heap.Open itself needs (none).
func Load(dm *pager.DiskManager, bm *buffer.Manager) (*Catalog, error) {
	return &Catalog{
		dm: dm, bm: bm,
		tables:     heap.Open(bm, dm, uuid.Nil, rootDBTables),
		attributes: heap.Open(bm, dm, uuid.Nil, rootDBAttributes),
		types:      heap.Open(bm, dm, uuid.Nil, rootDBTypes),
		databases:  heap.Open(bm, dm, uuid.Nil, rootDBDatabases),
	}, nil
}

func (c *Catalog) insertBuiltinTypes() error {
	builtins := []TypeInfo{
		{TypeID: value.INT, Size: 4, TypeName: "INT"},
		{TypeID: value.TEXT, Size: 0, TypeName: "TEXT"},
	}
	for _, t := range builtins {
		if _, _, err := c.types.Insert(t.Encode()); err != nil {
			return fmt.Errorf("catalog: insert built-in type %s: %w", t.TypeName, err)
		}
	}
	return nil
}

// describeSelf inserts a TableInfo row (and matching ColumnInfo rows) for
// each of the four system catalogs, so the catalog can describe its own
// structure the same way it describes user tables.
func (c *Catalog) describeSelf() error {
	self := []struct {
		name string
		root pager.PageID
		file *heap.File
		cols []Column
	}{
		{"db_tables", rootDBTables, c.tables, TableInfoSchema()},
		{"db_attributes", rootDBAttributes, c.attributes, ColumnInfoSchema()},
		{"db_types", rootDBTypes, c.types, TypeInfoSchema()},
		{"db_databases", rootDBDatabases, c.databases, DatabaseInfoSchema()},
	}
	for _, s := range self {
		if s.file.FirstPageID != s.root {
			panic(fmt.Sprintf("catalog: %s root page drifted: file has %d, expected %d", s.name, s.file.FirstPageID, s.root))
		}
		tableID := uuid.New()
		row := TableInfo{
			TableID:     tableID,
			TableName:   s.name,
			HeapFileID:  s.file.FileID,
			FirstPageID: s.file.FirstPageID,
		}
		if _, _, err := c.tables.Insert(row.Encode()); err != nil {
			return fmt.Errorf("catalog: describe %s: %w", s.name, err)
		}
		for i, col := range s.cols {
			colRow := ColumnInfo{
				TableID:         tableID,
				ColName:         col.Name,
				TypeID:          col.Type,
				OrdinalPosition: uint32(i + 1),
			}
			if _, _, err := c.attributes.Insert(colRow.Encode()); err != nil {
				return fmt.Errorf("catalog: describe column %s.%s: %w", s.name, col.Name, err)
			}
		}
	}
	return nil
}

// CreateTable allocates a new heap file and UUIDs for a user table and
// inserts its TableInfo and ColumnInfo rows. Detecting a duplicate name is
// the caller's responsibility (LookupTable first), per spec.md §4.6.
func (c *Catalog) CreateTable(name string, columns []Column) (uuid.UUID, error) {
	fileID := uuid.New()
	tableID := uuid.New()

	hf, err := heap.Create(c.bm, c.dm, fileID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("catalog: create heap file for table %s: %w", name, err)
	}

	row := TableInfo{
		TableID:     tableID,
		TableName:   name,
		HeapFileID:  fileID,
		FirstPageID: hf.FirstPageID,
	}
	if _, _, err := c.tables.Insert(row.Encode()); err != nil {
		return uuid.Nil, fmt.Errorf("catalog: insert table row for %s: %w", name, err)
	}

	for i, col := range columns {
		colRow := ColumnInfo{
			TableID:         tableID,
			ColName:         col.Name,
			TypeID:          col.Type,
			OrdinalPosition: uint32(i + 1),
		}
		if _, _, err := c.attributes.Insert(colRow.Encode()); err != nil {
			return uuid.Nil, fmt.Errorf("catalog: insert column row %s.%s: %w", name, col.Name, err)
		}
	}
	return tableID, nil
}

// LookupTable linear-scans db_tables for name.
func (c *Catalog) LookupTable(name string) (TableInfo, bool, error) {
	it := c.tables.Begin()
	for it.HasNext() {
		rec, _ := it.Next()
		row, err := DecodeTableInfo(rec.Bytes)
		if err != nil {
			return TableInfo{}, false, fmt.Errorf("catalog: decode db_tables row: %w", err)
		}
		if row.TableName == name {
			return row, true, nil
		}
	}
	return TableInfo{}, false, nil
}

// GetTableColumns linear-scans db_attributes for tableID's columns, ordered
// by ordinal_position.
func (c *Catalog) GetTableColumns(tableID uuid.UUID) ([]ColumnInfo, error) {
	var cols []ColumnInfo
	it := c.attributes.Begin()
	for it.HasNext() {
		rec, _ := it.Next()
		row, err := DecodeColumnInfo(rec.Bytes)
		if err != nil {
			return nil, fmt.Errorf("catalog: decode db_attributes row: %w", err)
		}
		if row.TableID == tableID {
			cols = append(cols, row)
		}
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i].OrdinalPosition < cols[j].OrdinalPosition })
	return cols, nil
}

// LookupDatabase linear-scans db_databases for name.
func (c *Catalog) LookupDatabase(name string) (DatabaseInfo, bool, error) {
	it := c.databases.Begin()
	for it.HasNext() {
		rec, _ := it.Next()
		row, err := DecodeDatabaseInfo(rec.Bytes)
		if err != nil {
			return DatabaseInfo{}, false, fmt.Errorf("catalog: decode db_databases row: %w", err)
		}
		if row.DBName == name {
			return row, true, nil
		}
	}
	return DatabaseInfo{}, false, nil
}

// DescribeDatabase records name as the active database in db_databases,
// unless a row for it already exists (idempotent across repeated Init of
// the same database file). Returns the database's id either way.
func (c *Catalog) DescribeDatabase(name string) (uuid.UUID, error) {
	if existing, ok, err := c.LookupDatabase(name); err != nil {
		return uuid.Nil, err
	} else if ok {
		return existing.DBID, nil
	}
	row := DatabaseInfo{DBID: uuid.New(), DBName: name}
	if _, _, err := c.databases.Insert(row.Encode()); err != nil {
		return uuid.Nil, fmt.Errorf("catalog: describe database %s: %w", name, err)
	}
	return row.DBID, nil
}

// LookupType linear-scans db_types for typeID.
func (c *Catalog) LookupType(typeID value.TypeID) (TypeInfo, bool, error) {
	it := c.types.Begin()
	for it.HasNext() {
		rec, _ := it.Next()
		row, err := DecodeTypeInfo(rec.Bytes)
		if err != nil {
			return TypeInfo{}, false, fmt.Errorf("catalog: decode db_types row: %w", err)
		}
		if row.TypeID == typeID {
			return row, true, nil
		}
	}
	return TypeInfo{}, false, nil
}

// OpenSystemRelation reopens one of the catalog's own system tables
// (db_tables, db_attributes, db_types, db_databases) as a plain heap file,
// so it can be wrapped in a CatalogTable and scanned through the same
// operator pipeline as a user table.
func (c *Catalog) OpenSystemRelation(name string) (*heap.File, error) {
	info, ok, err := c.LookupTable(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("catalog: no such system relation %q", name)
	}
	return heap.Open(c.bm, c.dm, info.HeapFileID, info.FirstPageID), nil
}

// BufferManager exposes the shared buffer manager for callers (the table
// manager) that open additional heap files against this catalog's database.
func (c *Catalog) BufferManager() *buffer.Manager { return c.bm }

// DiskManager exposes the shared disk manager for the same reason.
func (c *Catalog) DiskManager() *pager.DiskManager { return c.dm }
