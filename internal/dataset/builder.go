// Package dataset assembles generated Q&A pairs into a flat tabular
// dataset and persists it.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"daqa/internal/models"
)

// ErrUnsupportedFormat is returned for output formats other than json
// and jsonl.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Builder accumulates dataset rows in processing order. No
// deduplication, no sorting.
type Builder struct {
	rows []models.DatasetRow
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add flattens one article's pairs into rows, repeating the title and
// cleaned content per pair.
func (b *Builder) Add(article models.CleanedArticle, pairs []models.QAPair) {
	for _, qa := range pairs {
		b.rows = append(b.rows, models.DatasetRow{
			Title:    article.Title,
			Context:  article.Content,
			Question: qa.Question,
			Answer:   qa.Answer,
		})
	}
}

// Rows returns the accumulated rows.
func (b *Builder) Rows() []models.DatasetRow {
	return b.rows
}

// Len returns the number of accumulated rows.
func (b *Builder) Len() int {
	return len(b.rows)
}

// Save writes the dataset into dir as data.<format>, creating the
// directory if needed, and returns the written path.
func (b *Builder) Save(dir, format string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	path := filepath.Join(dir, "data."+format)

	var err error

	switch format {
	case "json":
		err = b.SaveJSON(path)
	case "jsonl":
		err = b.SaveJSONL(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	if err != nil {
		return "", err
	}

	return path, nil
}

// SaveJSON writes all rows as one indented JSON array.
func (b *Builder) SaveJSON(path string) error {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(b.rows); err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	return nil
}

// SaveJSONL writes one JSON object per line.
func (b *Builder) SaveJSONL(path string) error {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for _, row := range b.rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to marshal dataset row: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	return nil
}
