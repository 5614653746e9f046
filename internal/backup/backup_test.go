package backup

import (
	"path/filepath"
	"testing"

	"github.com/aguiarsc/numen/internal/storage"
)

func tempStore(t *testing.T) storage.Provider {
	t.Helper()
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return store
}

func TestExportImportRoundTrip(t *testing.T) {
	src := tempStore(t)
	_ = src.Write("a.md", []byte("# A\n"))
	_ = src.Write("b.md", []byte("# B\n"))

	archive := filepath.Join(t.TempDir(), "backup.zip")
	count, err := Export(src, archive)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if count != 2 {
		t.Errorf("exported %d notes, want 2", count)
	}

	dst := tempStore(t)
	res, err := Import(dst, archive, false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Imported != 2 || res.Skipped != 0 {
		t.Errorf("result = %+v", res)
	}
	got, err := dst.Read("a.md")
	if err != nil {
		t.Fatalf("Read after import: %v", err)
	}
	if string(got) != "# A\n" {
		t.Errorf("content = %q", got)
	}
}

func TestExport_EmptyCollection(t *testing.T) {
	src := tempStore(t)
	archive := filepath.Join(t.TempDir(), "empty.zip")
	count, err := Export(src, archive)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d", count)
	}
}

func TestImport_SkipsExistingWithoutOverwrite(t *testing.T) {
	src := tempStore(t)
	_ = src.Write("a.md", []byte("archived version\n"))
	archive := filepath.Join(t.TempDir(), "backup.zip")
	if _, err := Export(src, archive); err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := tempStore(t)
	_ = dst.Write("a.md", []byte("local version\n"))

	res, err := Import(dst, archive, false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Imported != 0 || res.Skipped != 1 {
		t.Errorf("result = %+v", res)
	}
	got, _ := dst.Read("a.md")
	if string(got) != "local version\n" {
		t.Errorf("local note clobbered: %q", got)
	}
}

func TestImport_OverwriteReplaces(t *testing.T) {
	src := tempStore(t)
	_ = src.Write("a.md", []byte("archived version\n"))
	archive := filepath.Join(t.TempDir(), "backup.zip")
	if _, err := Export(src, archive); err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := tempStore(t)
	_ = dst.Write("a.md", []byte("local version\n"))

	res, err := Import(dst, archive, true)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Imported != 1 {
		t.Errorf("result = %+v", res)
	}
	got, _ := dst.Read("a.md")
	if string(got) != "archived version\n" {
		t.Errorf("content = %q", got)
	}
}
