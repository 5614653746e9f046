package notes

import (
	"errors"
	"testing"
	"time"

	"github.com/aguiarsc/numen/internal/apperr"
	"github.com/aguiarsc/numen/internal/storage"
)

var testDay = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func tempRepo(t *testing.T) *Repository {
	t.Helper()
	store, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return NewRepository(store)
}

func TestNewID(t *testing.T) {
	got := NewID("My Great Note!", testDay)
	if got != "2026-03-01-my-great-note" {
		t.Errorf("NewID = %q", got)
	}
}

func TestCreateAndGet(t *testing.T) {
	r := tempRepo(t)
	n, err := r.Create("Test Note", "# Test Note\nhello\n", testDay)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := r.Get(n.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Test Note" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Body != "# Test Note\nhello\n" {
		t.Errorf("body = %q", got.Body)
	}
	if !got.Date.Equal(testDay) {
		t.Errorf("date = %v", got.Date)
	}
}

func TestCreate_DuplicateFails(t *testing.T) {
	r := tempRepo(t)
	if _, err := r.Create("Same Title", "", testDay); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := r.Create("Same Title", "", testDay); err == nil {
		t.Error("expected duplicate create to fail")
	}
}

func TestResolve_PartialMatch(t *testing.T) {
	r := tempRepo(t)
	n, err := r.Create("Quarterly Planning", "", testDay)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	stem, err := r.Resolve("quarterly")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if stem != n.ID {
		t.Errorf("resolved %q, want %q", stem, n.ID)
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := tempRepo(t)
	_, err := r.Resolve("nothing-here")
	if !errors.Is(err, apperr.ErrNoteNotFound) {
		t.Errorf("err = %v, want ErrNoteNotFound", err)
	}
}

func TestWriteBody_PreservesFrontmatter(t *testing.T) {
	r := tempRepo(t)
	n, err := r.Create("Keep Meta", "original\n", testDay)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := r.UpdateTags(n.ID, []string{"keep"}, nil); err != nil {
		t.Fatalf("UpdateTags: %v", err)
	}
	if err := r.WriteBody(n.ID, "rewritten\n"); err != nil {
		t.Fatalf("WriteBody: %v", err)
	}
	got, err := r.Get(n.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Body != "rewritten\n" {
		t.Errorf("body = %q", got.Body)
	}
	if got.Title != "Keep Meta" {
		t.Errorf("title lost: %q", got.Title)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "keep" {
		t.Errorf("tags lost: %v", got.Tags)
	}
}

func TestList_FiltersByTag(t *testing.T) {
	r := tempRepo(t)
	a, _ := r.Create("Tagged", "", testDay)
	if _, err := r.Create("Untagged", "", testDay.Add(time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := r.UpdateTags(a.ID, []string{"work"}, nil); err != nil {
		t.Fatalf("UpdateTags: %v", err)
	}

	all, err := r.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, want 2", len(all))
	}

	tagged, err := r.List("work")
	if err != nil {
		t.Fatalf("List(work): %v", err)
	}
	if len(tagged) != 1 || tagged[0].ID != a.ID {
		t.Errorf("tagged = %v", tagged)
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	r := tempRepo(t)
	n, _ := r.Create("Searchable", "The QUICK brown fox\n", testDay)
	if _, err := r.Create("Other", "nothing relevant\n", testDay.Add(time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	hits, err := r.Search("quick BROWN")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != n.ID {
		t.Errorf("hits = %v", hits)
	}
}

func TestUpdateTags_AddRemoveSorted(t *testing.T) {
	r := tempRepo(t)
	n, _ := r.Create("Tags", "", testDay)
	got, err := r.UpdateTags(n.ID, []string{"zeta", "alpha", "alpha"}, nil)
	if err != nil {
		t.Fatalf("UpdateTags: %v", err)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "alpha" || got.Tags[1] != "zeta" {
		t.Errorf("tags = %v", got.Tags)
	}
	got, err = r.UpdateTags(n.ID, nil, []string{"zeta"})
	if err != nil {
		t.Fatalf("UpdateTags remove: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "alpha" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestDelete(t *testing.T) {
	r := tempRepo(t)
	n, _ := r.Create("Doomed", "", testDay)
	if err := r.Delete(n.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := r.Get(n.ID); !errors.Is(err, apperr.ErrNoteNotFound) {
		t.Errorf("Get after delete: %v", err)
	}
}
