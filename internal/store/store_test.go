package store

import (
	"errors"
	"path/filepath"
	"testing"

	"daqa/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "articles.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}

	t.Cleanup(func() { s.Close() })

	return s
}

func TestStore_InsertAndGet(t *testing.T) {
	s := openTestStore(t)

	id, err := s.InsertArticle("Danmark", "Danmark er et land.")
	if err != nil {
		t.Fatalf("InsertArticle returned error: %v", err)
	}

	got, err := s.GetArticle(id)
	if err != nil {
		t.Fatalf("GetArticle returned error: %v", err)
	}

	if got.ID != id || got.Title != "Danmark" || got.Content != "Danmark er et land." {
		t.Errorf("GetArticle = %+v", got)
	}
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.GetArticle(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetArticle(42) = %v, want ErrNotFound", err)
	}
}

func TestStore_InsertArticles(t *testing.T) {
	s := openTestStore(t)

	batch := []models.Article{
		{Title: "A", Content: "a"},
		{Title: "B", Content: "b"},
		{Title: "C", Content: "c"},
	}

	if err := s.InsertArticles(batch); err != nil {
		t.Fatalf("InsertArticles returned error: %v", err)
	}

	count, err := s.CountArticles()
	if err != nil {
		t.Fatalf("CountArticles returned error: %v", err)
	}

	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	// Sequential ids start at 1, matching the sampler's id space.
	first, err := s.GetArticle(1)
	if err != nil {
		t.Fatalf("GetArticle(1) returned error: %v", err)
	}

	if first.Title != "A" {
		t.Errorf("first article = %+v", first)
	}
}

func TestStore_InsertArticles_Empty(t *testing.T) {
	s := openTestStore(t)

	if err := s.InsertArticles(nil); err != nil {
		t.Errorf("empty batch returned error: %v", err)
	}
}

func TestStore_CountEmpty(t *testing.T) {
	s := openTestStore(t)

	count, err := s.CountArticles()
	if err != nil {
		t.Fatalf("CountArticles returned error: %v", err)
	}

	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}
