// Package qagen generates question/answer pairs for cleaned articles by
// prompting an external text-generation API, with a content-addressed
// cache and bounded retries.
package qagen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"daqa/internal/config"
	"daqa/internal/logger"
	"daqa/internal/models"
	"daqa/internal/retry"
)

// Response validation errors. Both are retryable: a malformed body is
// treated the same as a transport failure.
var (
	ErrNoPairs     = errors.New("response contains no qa pairs")
	ErrMissingKeys = errors.New("qa pair is missing spørgsmål or svar")
)

// Generator produces Q&A pairs for one article at a time.
type Generator struct {
	client          Client
	cache           *Cache
	retryPolicy     *config.RetryPolicy
	maxContentRunes int
	logger          *logger.Logger
}

// NewGenerator wires a generator from its capabilities.
func NewGenerator(client Client, cache *Cache, retryPolicy *config.RetryPolicy, maxContentRunes int, log *logger.Logger) *Generator {
	return &Generator{
		client:          client,
		cache:           cache,
		retryPolicy:     retryPolicy,
		maxContentRunes: maxContentRunes,
		logger:          log,
	}
}

// Generate returns the Q&A pairs for article, consulting the cache
// first. On a miss it prompts the API with bounded retries; a fresh
// result is cached before returning. Exhausted retries degrade to an
// empty result with an error logged, never a hard failure: callers must
// treat "no pairs" as a valid outcome. The second return value reports
// whether the pairs came from the cache.
func (g *Generator) Generate(ctx context.Context, article models.CleanedArticle) ([]models.QAPair, bool) {
	key := Key(article)

	if pairs, ok := g.cache.Get(key); ok {
		g.logger.Debug("loaded cached qa pairs", "title", article.Title, "key", key)

		return pairs, true
	}

	prompt := buildPrompt(article.Title, article.Content, g.maxContentRunes)

	var pairs []models.QAPair

	err := retry.Do(ctx, g.retryPolicy, retry.Any, func() error {
		body, err := g.client.Complete(ctx, systemPrompt, prompt)
		if err != nil {
			return fmt.Errorf("completion request failed: %w", err)
		}

		parsed, err := parsePairs(body)
		if err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}

		pairs = parsed

		return nil
	})
	if err != nil {
		g.logger.Error("giving up on qa generation",
			"title", article.Title,
			"attempts", g.retryPolicy.MaxAttempts,
			"err", err,
		)

		return nil, false
	}

	if err := g.cache.Put(key, pairs); err != nil {
		g.logger.Warn("failed to cache qa pairs", "title", article.Title, "err", err)
	}

	return pairs, false
}

// parsePairs decodes a model reply as a JSON array of Danish-keyed
// records, tolerating a markdown code fence around the array. Records
// with a missing or empty key fail the whole response.
func parsePairs(body string) ([]models.QAPair, error) {
	body = trimCodeFence(body)

	var pairs []models.QAPair
	if err := json.Unmarshal([]byte(body), &pairs); err != nil {
		return nil, err
	}

	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}

	for _, p := range pairs {
		if p.Question == "" || p.Answer == "" {
			return nil, ErrMissingKeys
		}
	}

	return pairs, nil
}

func trimCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
