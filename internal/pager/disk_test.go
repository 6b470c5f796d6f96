package pager

import (
	"path/filepath"
	"testing"
)

func TestDiskManager_AllocateGrowsThenReusesFreed(t *testing.T) {
	dm, err := Open(filepath.Join(t.TempDir(), "test.db"), DefaultPageSize)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer dm.Close()

	a := dm.AllocatePage()
	b := dm.AllocatePage()
	if a == b {
		t.Fatalf("allocated same page twice: %d", a)
	}

	dm.DeallocatePage(a)
	c := dm.AllocatePage()
	if c != a {
		t.Fatalf("AllocatePage after Deallocate = %d, want recycled %d", c, a)
	}
}

func TestDiskManager_WriteReadRoundTrip(t *testing.T) {
	dm, err := Open(filepath.Join(t.TempDir(), "test.db"), DefaultPageSize)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer dm.Close()

	id := dm.AllocatePage()
	want := make([]byte, DefaultPageSize)
	copy(want, "a page of bytes")
	if err := dm.WritePage(id, want); err != nil {
		t.Fatalf("WritePage: %v", err)
	}

	got := make([]byte, DefaultPageSize)
	if err := dm.ReadPage(id, got); err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("round trip mismatch")
	}
}

func TestDiskManager_OpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	dm1, err := Open(path, DefaultPageSize)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	id := dm1.AllocatePage()
	buf := make([]byte, DefaultPageSize)
	copy(buf, "persisted")
	if err := dm1.WritePage(id, buf); err != nil {
		t.Fatalf("WritePage: %v", err)
	}
	dm1.Close()

	dm2, err := Open(path, DefaultPageSize)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer dm2.Close()
	got := make([]byte, DefaultPageSize)
	if err := dm2.ReadPage(id, got); err != nil {
		t.Fatalf("ReadPage after reopen: %v", err)
	}
	if string(got) != string(buf) {
		t.Fatalf("reopen lost data")
	}
}
