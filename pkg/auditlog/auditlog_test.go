package auditlog

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndList(t *testing.T) {
	db := openTestDB(t)

	if err := db.RecordDrop(2, "4/1/11,bad,row", "field TotalDuration: malformed duration"); err != nil {
		t.Fatalf("RecordDrop: %v", err)
	}
	if err := db.RecordDrop(7, "only,three,fields", "wrong field count: got 3, want 8"); err != nil {
		t.Fatalf("RecordDrop: %v", err)
	}

	drops, err := db.ListDrops()
	if err != nil {
		t.Fatalf("ListDrops: %v", err)
	}
	if len(drops) != 2 {
		t.Fatalf("len(drops) = %d, want 2", len(drops))
	}
	if drops[0].Line != 2 || drops[1].Line != 7 {
		t.Errorf("lines = %d, %d, want 2, 7", drops[0].Line, drops[1].Line)
	}
	if drops[0].Reason == "" || drops[0].DroppedAt == 0 {
		t.Errorf("drop not fully populated: %+v", drops[0])
	}
}

func TestCount(t *testing.T) {
	db := openTestDB(t)

	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}

	for i := 1; i <= 3; i++ {
		if err := db.RecordDrop(i, "raw", "reason"); err != nil {
			t.Fatalf("RecordDrop: %v", err)
		}
	}

	n, err = db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.RecordDrop(1, "raw", "reason"); err != nil {
		t.Fatalf("RecordDrop: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count after reopen = %d, want 1", n)
	}
}
