package table

import (
	"path/filepath"
	"testing"

	"github.com/luigirelational/pagedb/internal/buffer"
	"github.com/luigirelational/pagedb/internal/catalog"
	"github.com/luigirelational/pagedb/internal/pager"
	"github.com/luigirelational/pagedb/internal/value"
)

func openTestManager(t *testing.T) *Manager {
	t.Helper()
	dm, err := pager.Open(filepath.Join(t.TempDir(), "test.db"), pager.DefaultPageSize)
	if err != nil {
		t.Fatalf("pager.Open: %v", err)
	}
	t.Cleanup(func() { dm.Close() })
	bm := buffer.NewManager(dm, buffer.Config{PageSize: pager.DefaultPageSize, PoolSize: 32})
	cat, err := catalog.Init(dm, bm)
	if err != nil {
		t.Fatalf("catalog.Init: %v", err)
	}
	return NewManager(cat, bm, dm)
}

func TestManager_CreateInsertScan(t *testing.T) {
	mgr := openTestManager(t)

	schema := []catalog.Column{
		{Name: "id", Type: value.INT},
		{Name: "name", Type: value.TEXT},
	}
	if err := mgr.CreateTable("students", schema); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}

	ut, err := mgr.Open("students")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	rows := []struct {
		id   uint32
		name string
	}{
		{1, "Alice"},
		{2, "Bob"},
		{3, "Carol"},
		{4, "Dave"},
	}
	for _, r := range rows {
		if _, ok, err := ut.InsertRow([]value.Value{value.Uint32(r.id), value.String(r.name)}); err != nil || !ok {
			t.Fatalf("InsertRow(%v): ok=%v err=%v", r, ok, err)
		}
	}

	it := ut.Begin()
	got := 0
	for it.HasNext() {
		rec, _ := it.Next()
		tup, err := ut.Decode(rec)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if tup.Values[0].U32 != rows[got].id || tup.Values[1].Str != rows[got].name {
			t.Fatalf("row %d = %+v, want %+v", got, tup.Values, rows[got])
		}
		got++
	}
	if got != len(rows) {
		t.Fatalf("scanned %d rows, want %d", got, len(rows))
	}
}

func TestManager_OpenCachesByName(t *testing.T) {
	mgr := openTestManager(t)
	schema := []catalog.Column{{Name: "id", Type: value.INT}}
	if err := mgr.CreateTable("widgets", schema); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}

	a, err := mgr.Open("widgets")
	if err != nil {
		t.Fatalf("Open 1: %v", err)
	}
	b, err := mgr.Open("widgets")
	if err != nil {
		t.Fatalf("Open 2: %v", err)
	}
	if a != b {
		t.Fatal("Open should return the cached *UserTable on repeat calls")
	}
}

func TestManager_OpenUnknownTable(t *testing.T) {
	mgr := openTestManager(t)
	if _, err := mgr.Open("nope"); err == nil {
		t.Fatal("expected error opening unknown table")
	}
}

// TestCatalogTable_ScansSystemRelation wires CatalogTable over db_types,
// the catalog's own heap file: the same Relation interface a SeqScan uses
// for user tables works uniformly over a system catalog's static codec.
func TestCatalogTable_ScansSystemRelation(t *testing.T) {
	dm, err := pager.Open(filepath.Join(t.TempDir(), "test.db"), pager.DefaultPageSize)
	if err != nil {
		t.Fatalf("pager.Open: %v", err)
	}
	defer dm.Close()
	bm := buffer.NewManager(dm, buffer.Config{PageSize: pager.DefaultPageSize, PoolSize: 32})
	cat, err := catalog.Init(dm, bm)
	if err != nil {
		t.Fatalf("catalog.Init: %v", err)
	}

	hf, err := cat.OpenSystemRelation("db_types")
	if err != nil {
		t.Fatalf("OpenSystemRelation: %v", err)
	}
	rel := NewCatalogTable(hf, catalog.TypeInfoSchema(), catalog.DecodeTypeInfo, catalog.TypeInfo.ToValues)

	var names []string
	it := rel.Begin()
	for it.HasNext() {
		rec, _ := it.Next()
		tup, err := rel.Decode(rec)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		names = append(names, tup.Values[2].Str)
	}
	if len(names) != 2 || names[0] != "INT" || names[1] != "TEXT" {
		t.Fatalf("scanned db_types via CatalogTable = %v, want [INT TEXT]", names)
	}
}
