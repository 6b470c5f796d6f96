package catalog

import (
	"path/filepath"
	"testing"

	"github.com/luigirelational/pagedb/internal/buffer"
	"github.com/luigirelational/pagedb/internal/pager"
	"github.com/luigirelational/pagedb/internal/value"
)

func openTestDB(t *testing.T) (*pager.DiskManager, *buffer.Manager) {
	t.Helper()
	dm, err := pager.Open(filepath.Join(t.TempDir(), "test.db"), pager.DefaultPageSize)
	if err != nil {
		t.Fatalf("pager.Open: %v", err)
	}
	bm := buffer.NewManager(dm, buffer.Config{PageSize: pager.DefaultPageSize, PoolSize: 32})
	return dm, bm
}

func TestCatalog_BootstrapThenLookup(t *testing.T) {
	dm, bm := openTestDB(t)
	defer dm.Close()

	if IsInitialised(dm) {
		t.Fatal("fresh file should not be initialised")
	}
	cat, err := Init(dm, bm)
	if err != nil {
		t.Fatalf("Init (bootstrap): %v", err)
	}
	if !IsInitialised(dm) {
		t.Fatal("IsInitialised should be true after bootstrap")
	}

	for _, name := range []string{"db_tables", "db_attributes", "db_types", "db_databases"} {
		if _, ok, err := cat.LookupTable(name); err != nil || !ok {
			t.Fatalf("LookupTable(%s) = ok=%v err=%v", name, ok, err)
		}
	}

	if _, ok, err := cat.LookupType(value.INT); err != nil || !ok {
		t.Fatalf("LookupType(INT): ok=%v err=%v", ok, err)
	}
	if _, ok, err := cat.LookupType(value.TEXT); err != nil || !ok {
		t.Fatalf("LookupType(TEXT): ok=%v err=%v", ok, err)
	}
}

func TestCatalog_InitIsIdempotent(t *testing.T) {
	dm, bm := openTestDB(t)
	defer dm.Close()

	if _, err := Init(dm, bm); err != nil {
		t.Fatalf("first Init: %v", err)
	}
	cat2, err := Init(dm, bm)
	if err != nil {
		t.Fatalf("second Init: %v", err)
	}
	if !IsInitialised(dm) {
		t.Fatal("IsInitialised should remain true")
	}

	// No duplicate db_tables rows: exactly the four system catalogs.
	it := cat2.tables.Begin()
	n := 0
	for it.HasNext() {
		it.Next()
		n++
	}
	if n != 4 {
		t.Fatalf("expected 4 self-describing rows after idempotent Init, got %d", n)
	}
}

func TestCatalog_CreateTableAndScanColumns(t *testing.T) {
	dm, bm := openTestDB(t)
	defer dm.Close()

	cat, err := Init(dm, bm)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	tableID, err := cat.CreateTable("students", []Column{
		{Name: "id", Type: value.INT},
		{Name: "name", Type: value.TEXT},
	})
	if err != nil {
		t.Fatalf("CreateTable: %v", err)
	}

	info, ok, err := cat.LookupTable("students")
	if err != nil || !ok {
		t.Fatalf("LookupTable(students): ok=%v err=%v", ok, err)
	}
	if info.TableID != tableID {
		t.Fatalf("looked up table has TableID %s, want %s", info.TableID, tableID)
	}

	cols, err := cat.GetTableColumns(tableID)
	if err != nil {
		t.Fatalf("GetTableColumns: %v", err)
	}
	if len(cols) != 2 || cols[0].ColName != "id" || cols[1].ColName != "name" {
		t.Fatalf("unexpected columns: %+v", cols)
	}
}
