package qagen

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"daqa/internal/logger"
	"daqa/internal/models"
)

// Cache is a content-addressed store of generated Q&A pairs: one JSON
// file per article, keyed by md5(title + content). It is a pure
// memoization layer and is never invalidated automatically.
type Cache struct {
	dir    string
	logger *logger.Logger
}

// NewCache creates the cache directory if needed.
func NewCache(dir string, log *logger.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	return &Cache{dir: dir, logger: log}, nil
}

// Key returns the cache key for an article. Identical (title, content)
// always map to the same key.
func Key(article models.CleanedArticle) string {
	sum := md5.Sum([]byte(article.Title + article.Content))

	return hex.EncodeToString(sum[:])
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// Get returns the cached pairs for key. A missing file is a miss; an
// unreadable or unparsable file is also treated as a miss so the caller
// regenerates and overwrites it.
func (c *Cache) Get(key string) ([]models.QAPair, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var pairs []models.QAPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		c.logger.Warn("discarding unparsable cache file", "key", key, "err", err)

		return nil, false
	}

	return pairs, true
}

// Put writes the pairs for key. The file goes through a temp name and a
// rename so a concurrent reader never sees a partial write.
func (c *Cache) Put(key string, pairs []models.QAPair) error {
	data, err := marshalPairs(pairs)
	if err != nil {
		return fmt.Errorf("failed to marshal qa pairs: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create cache temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to write cache file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to close cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to move cache file into place: %w", err)
	}

	return nil
}

// marshalPairs produces the human-readable UTF-8 cache format: an
// indented JSON array with the Danish keys left unescaped.
func marshalPairs(pairs []models.QAPair) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(pairs); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
