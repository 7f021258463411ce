// Package store persists imported Wikipedia articles in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"daqa/internal/models"
)

// ErrNotFound is returned when an article id does not exist.
var ErrNotFound = errors.New("article not found")

// Store wraps the articles database. The table is append-only during
// import and read-only during generation.
type Store struct {
	db *sql.DB
}

// Open opens the article database at path, creating the schema if
// needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()

		return nil, err
	}

	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS articles (
		id INTEGER PRIMARY KEY,
		title TEXT,
		content TEXT
	)`)
	if err != nil {
		return fmt.Errorf("failed to create articles table: %w", err)
	}

	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertArticle appends one article and returns its assigned id.
func (s *Store) InsertArticle(title, content string) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO articles (title, content) VALUES (?, ?)`, title, content)
	if err != nil {
		return 0, fmt.Errorf("failed to insert article %q: %w", title, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}

	return id, nil
}

// InsertArticles appends a batch of articles in one transaction.
// Assigned ids are ignored; import only needs throughput.
func (s *Store) InsertArticles(articles []models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO articles (title, content) VALUES (?, ?)`)
	if err != nil {
		tx.Rollback()

		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range articles {
		if _, err := stmt.Exec(a.Title, a.Content); err != nil {
			tx.Rollback()

			return fmt.Errorf("failed to insert article %q: %w", a.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}

	return nil
}

// GetArticle reads one article by id. ErrNotFound when the id has no
// row.
func (s *Store) GetArticle(id int64) (models.Article, error) {
	row := s.db.QueryRow(`SELECT id, title, content FROM articles WHERE id = ?`, id)

	var a models.Article
	if err := row.Scan(&a.ID, &a.Title, &a.Content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Article{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
		}

		return models.Article{}, fmt.Errorf("failed to read article %d: %w", id, err)
	}

	return a, nil
}

// CountArticles returns the number of stored articles.
func (s *Store) CountArticles() (int64, error) {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}

	return count, nil
}
