// Package backup exports the note collection to a zip archive and imports
// archives created the same way.
package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/aguiarsc/numen/internal/storage"
)

// Export writes every note from the store into a zip archive at outputPath.
// Returns the number of notes archived.
func Export(store storage.Provider, outputPath string) (int, error) {
	entries, err := store.List()
	if err != nil {
		return 0, fmt.Errorf("backup: list notes: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return 0, fmt.Errorf("backup: create %s: %w", outputPath, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	count := 0
	for _, e := range entries {
		data, err := store.Read(e.Name)
		if err != nil {
			return count, fmt.Errorf("backup: read %s: %w", e.Name, err)
		}
		w, err := zw.Create(e.Name)
		if err != nil {
			return count, fmt.Errorf("backup: add %s: %w", e.Name, err)
		}
		if _, err := w.Write(data); err != nil {
			return count, fmt.Errorf("backup: write %s: %w", e.Name, err)
		}
		count++
	}
	if err := zw.Close(); err != nil {
		return count, fmt.Errorf("backup: finalize archive: %w", err)
	}
	return count, nil
}

// ImportResult summarizes an archive import.
type ImportResult struct {
	Imported int
	Skipped  int
}

// Import extracts .md files from the archive into the store. Existing notes
// are skipped unless overwrite is set.
func Import(store storage.Provider, archivePath string, overwrite bool) (*ImportResult, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("backup: open %s: %w", archivePath, err)
	}
	defer zr.Close()

	res := &ImportResult{}
	for _, zf := range zr.File {
		if !strings.HasSuffix(zf.Name, ".md") || zf.FileInfo().IsDir() {
			continue
		}
		// Flatten to the base name: archives are not trusted to carry paths.
		name := path.Base(zf.Name)

		if _, err := store.Read(name); err == nil && !overwrite {
			res.Skipped++
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return res, fmt.Errorf("backup: open entry %s: %w", zf.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return res, fmt.Errorf("backup: read entry %s: %w", zf.Name, err)
		}
		if err := store.Write(name, data); err != nil {
			return res, fmt.Errorf("backup: write %s: %w", name, err)
		}
		res.Imported++
	}
	return res, nil
}
