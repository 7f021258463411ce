// Package pipeline drives the article-to-dataset processing loop.
package pipeline

import (
	"context"
	"errors"

	"daqa/internal/dataset"
	"daqa/internal/logger"
	"daqa/internal/models"
	"daqa/internal/progress"
	"daqa/internal/qagen"
	"daqa/internal/store"
	"daqa/internal/wikitext"
)

// Stats summarizes one processing run.
type Stats struct {
	Processed     int
	Kept          int
	Redirects     int
	IncludeOnly   int
	NotMeaningful int
	Missing       int
	CacheHits     int
	EmptyResults  int
	Pairs         int
}

// ArticleSource is the read-only store view the processor needs.
type ArticleSource interface {
	GetArticle(id int64) (models.Article, error)
}

// Processor wires the store, classifier, generator and builder into the
// sequential per-article loop. One article at a time, one API call at a
// time.
type Processor struct {
	source     ArticleSource
	classifier *wikitext.Classifier
	generator  *qagen.Generator
	builder    *dataset.Builder
	logger     *logger.Logger
	progress   *progress.Line
}

// NewProcessor creates a processor. progress may be nil to disable the
// progress line.
func NewProcessor(
	source ArticleSource,
	classifier *wikitext.Classifier,
	generator *qagen.Generator,
	builder *dataset.Builder,
	log *logger.Logger,
	line *progress.Line,
) *Processor {
	return &Processor{
		source:     source,
		classifier: classifier,
		generator:  generator,
		builder:    builder,
		logger:     log,
		progress:   line,
	}
}

// Run processes the given article ids in order. Per-article failures are
// logged and never abort the batch; only context cancellation stops the
// run early.
func (p *Processor) Run(ctx context.Context, ids []int64) (Stats, error) {
	var stats Stats

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.Processed++
		p.processOne(ctx, id, &stats)

		if p.progress != nil {
			p.progress.Update(i+1, len(ids))
		}
	}

	if p.progress != nil {
		p.progress.Finish()
	}

	return stats, nil
}

func (p *Processor) processOne(ctx context.Context, id int64, stats *Stats) {
	article, err := p.source.GetArticle(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			stats.Missing++

			return
		}

		p.logger.Error("failed to read article", "id", id, "err", err)
		stats.Missing++

		return
	}

	cleaned, decision := p.classifier.Classify(article.Title, article.Content)

	switch decision {
	case wikitext.SkipRedirect:
		stats.Redirects++
		p.logger.Info("skipping redirect", "title", article.Title)

		return
	case wikitext.SkipIncludeOnly:
		stats.IncludeOnly++
		p.logger.Info("skipping include-only article", "title", article.Title)

		return
	case wikitext.SkipNotMeaningful:
		stats.NotMeaningful++
		p.logger.Info("skipping article without meaningful content", "title", article.Title)

		return
	case wikitext.Keep:
	}

	stats.Kept++

	pairs, fromCache := p.generator.Generate(ctx, cleaned)
	if fromCache {
		stats.CacheHits++
	}

	if len(pairs) == 0 {
		stats.EmptyResults++

		return
	}

	stats.Pairs += len(pairs)
	p.builder.Add(cleaned, pairs)
}
