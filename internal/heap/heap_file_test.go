package heap

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/luigirelational/pagedb/internal/buffer"
	"github.com/luigirelational/pagedb/internal/pager"
)

func newTestHeap(t *testing.T, poolSize int) (*File, *buffer.Manager, *pager.DiskManager) {
	t.Helper()
	dm, err := pager.Open(filepath.Join(t.TempDir(), "test.db"), pager.DefaultPageSize)
	if err != nil {
		t.Fatalf("pager.Open: %v", err)
	}
	bm := buffer.NewManager(dm, buffer.Config{PageSize: pager.DefaultPageSize, PoolSize: poolSize})
	hf := Open(bm, dm, [16]byte{}, pager.InvalidPageID)
	return hf, bm, dm
}

func TestHeapFile_InsertGetUpdateDelete(t *testing.T) {
	hf, _, dm := newTestHeap(t, 8)
	defer dm.Close()

	rid, ok, err := hf.Insert([]byte("row-one"))
	if err != nil || !ok {
		t.Fatalf("Insert: ok=%v err=%v", ok, err)
	}
	got, ok, err := hf.Get(rid)
	if err != nil || !ok || string(got) != "row-one" {
		t.Fatalf("Get = %q, %v, %v", got, ok, err)
	}

	ok, err = hf.Update(rid, []byte("x"))
	if err != nil || !ok {
		t.Fatalf("Update shrink: ok=%v err=%v", ok, err)
	}
	got, _, _ = hf.Get(rid)
	if string(got) != "x" {
		t.Fatalf("after shrink update, got %q", got)
	}

	ok, err = hf.Delete(rid)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	if _, ok, _ := hf.Get(rid); ok {
		t.Fatal("Get after delete should report false")
	}
}

func TestHeapFile_MultiPageForwardScan(t *testing.T) {
	hf, _, dm := newTestHeap(t, 4)
	defer dm.Close()

	const n = 1000
	for i := 0; i < n; i++ {
		rec := []byte(fmt.Sprintf("rec-%d", i))
		if _, ok, err := hf.Insert(rec); err != nil || !ok {
			t.Fatalf("insert %d: ok=%v err=%v", i, ok, err)
		}
	}

	it := hf.Begin()
	count := 0
	for it.HasNext() {
		rec, ok := it.Next()
		if !ok {
			t.Fatal("HasNext true but Next returned false")
		}
		want := fmt.Sprintf("rec-%d", count)
		if string(rec.Bytes) != want {
			t.Fatalf("record %d = %q, want %q", count, rec.Bytes, want)
		}
		count++
	}
	if count != n {
		t.Fatalf("scanned %d records, want %d", count, n)
	}
}

func TestHeapFile_IteratorSkipsDeleted(t *testing.T) {
	hf, _, dm := newTestHeap(t, 4)
	defer dm.Close()

	var rids []RID
	for i := 0; i < 10; i++ {
		rid, _, _ := hf.Insert([]byte(fmt.Sprintf("r%d", i)))
		rids = append(rids, rid)
	}
	// Delete every even-indexed record.
	for i, rid := range rids {
		if i%2 == 0 {
			if ok, err := hf.Delete(rid); err != nil || !ok {
				t.Fatalf("delete %d: ok=%v err=%v", i, ok, err)
			}
		}
	}

	it := hf.Begin()
	seen := 0
	for it.HasNext() {
		rec, _ := it.Next()
		if rec.RID.SlotID%2 == 0 {
			t.Fatalf("iterator yielded deleted slot %d", rec.RID.SlotID)
		}
		seen++
	}
	if seen != 5 {
		t.Fatalf("expected 5 surviving records, got %d", seen)
	}
}
