package history

import (
	"errors"
	"os"
	"testing"

	"github.com/aguiarsc/numen/internal/apperr"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	dbFile, err := os.CreateTemp("", "numen-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	s, err := Open(dbFile.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshot_SequenceStartsAtZero(t *testing.T) {
	s := tempStore(t)
	e, err := s.Snapshot("note-a", "first body", "initial")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if e.Seq != 0 {
		t.Errorf("first seq = %d, want 0", e.Seq)
	}
}

func TestSnapshot_OrderPreserved(t *testing.T) {
	s := tempStore(t)
	if _, err := s.Snapshot("note-a", "first", ""); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if _, err := s.Snapshot("note-a", "second", ""); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	entries, err := s.List("note-a")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Seq != 0 || entries[1].Seq != 1 {
		t.Errorf("seqs = %d, %d", entries[0].Seq, entries[1].Seq)
	}
	first, err := s.Get("note-a", 0)
	if err != nil {
		t.Fatalf("Get(0): %v", err)
	}
	second, err := s.Get("note-a", 1)
	if err != nil {
		t.Fatalf("Get(1): %v", err)
	}
	if first.Body != "first" || second.Body != "second" {
		t.Errorf("bodies = %q, %q", first.Body, second.Body)
	}
}

func TestSnapshot_SequencesIndependentPerNote(t *testing.T) {
	s := tempStore(t)
	if _, err := s.Snapshot("note-a", "a0", ""); err != nil {
		t.Fatal(err)
	}
	e, err := s.Snapshot("note-b", "b0", "")
	if err != nil {
		t.Fatal(err)
	}
	if e.Seq != 0 {
		t.Errorf("note-b first seq = %d, want 0", e.Seq)
	}
}

func TestList_EmptyHistory(t *testing.T) {
	s := tempStore(t)
	entries, err := s.List("never-saved")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v, want empty", entries)
	}
}

func TestList_OmitsBodies(t *testing.T) {
	s := tempStore(t)
	if _, err := s.Snapshot("note-a", "the body", "msg"); err != nil {
		t.Fatal(err)
	}
	entries, err := s.List("note-a")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if entries[0].Body != "" {
		t.Errorf("List leaked body %q", entries[0].Body)
	}
	if entries[0].Message != "msg" || entries[0].Checksum == "" {
		t.Errorf("metadata = %+v", entries[0])
	}
}

func TestGet_VersionNotFound(t *testing.T) {
	s := tempStore(t)
	if _, err := s.Snapshot("note-a", "body", ""); err != nil {
		t.Fatal(err)
	}
	_, err := s.Get("note-a", 7)
	if !errors.Is(err, apperr.ErrVersionNotFound) {
		t.Errorf("err = %v, want ErrVersionNotFound", err)
	}
}

func TestRestore_DoesNotTruncateLog(t *testing.T) {
	s := tempStore(t)
	for _, body := range []string{"v0", "v1", "v2"} {
		if _, err := s.Snapshot("note-a", body, ""); err != nil {
			t.Fatal(err)
		}
	}
	body, err := s.Restore("note-a", 0)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if body != "v0" {
		t.Errorf("restored body = %q", body)
	}
	entries, err := s.List("note-a")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("len(entries) = %d after restore, want 3", len(entries))
	}
}

func TestDiff_BetweenVersions(t *testing.T) {
	s := tempStore(t)
	if _, err := s.Snapshot("note-a", "line one\nline two\n", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Snapshot("note-a", "line one\nline two changed\n", ""); err != nil {
		t.Fatal(err)
	}
	d, err := s.Diff("note-a", 0, 1)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if len(d) != 3 || d[1] != "-line two" || d[2] != "+line two changed" {
		t.Errorf("diff = %v", d)
	}
}

func TestPurge(t *testing.T) {
	s := tempStore(t)
	if _, err := s.Snapshot("note-a", "body", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Snapshot("note-b", "other", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.Purge("note-a"); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	a, _ := s.List("note-a")
	if len(a) != 0 {
		t.Errorf("note-a entries = %v after purge", a)
	}
	b, _ := s.List("note-b")
	if len(b) != 1 {
		t.Errorf("purge touched note-b: %v", b)
	}
}
