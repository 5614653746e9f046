package storage

import (
	"testing"
	"time"
)

func tempStore(t *testing.T) *FS {
	t.Helper()
	fs, err := NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempStore(t)
	content := []byte("# Hello\nWorld\n")
	if err := s.Write("note.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestDelete(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("del.md", []byte("bye"))
	if err := s.Delete("del.md"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("del.md"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestList_OnlyMarkdownNewestFirst(t *testing.T) {
	s := tempStore(t)
	_ = s.Write("old.md", []byte("old"))
	time.Sleep(10 * time.Millisecond)
	_ = s.Write("skip.txt", []byte("not a note"))
	_ = s.Write("new.md", []byte("new"))

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Name != "new.md" {
		t.Errorf("first entry = %s, want new.md", entries[0].Name)
	}
}

func TestSafePath_RejectsTraversal(t *testing.T) {
	s := tempStore(t)
	for _, p := range []string{"../escape.md", "a/../../escape.md", "/etc/passwd"} {
		if _, err := s.Read(p); err == nil {
			t.Errorf("Read(%q) should fail", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("Write(%q) should fail", p)
		}
	}
}

func TestWrite_LeavesNoTempFilesBehind(t *testing.T) {
	s := tempStore(t)
	if err := s.Write("a.md", []byte("one")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write("a.md", []byte("two")); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	entries, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
	got, _ := s.Read("a.md")
	if string(got) != "two" {
		t.Errorf("content = %q, want %q", got, "two")
	}
}
