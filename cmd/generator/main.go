// Package main builds the Danish question-answering dataset from stored
// Wikipedia articles.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"daqa/internal/config"
	"daqa/internal/dataset"
	"daqa/internal/hub"
	"daqa/internal/logger"
	"daqa/internal/pipeline"
	"daqa/internal/progress"
	"daqa/internal/qagen"
	"daqa/internal/report"
	"daqa/internal/store"
	"daqa/internal/wikitext"
)

// Credential errors surfaced before any work starts.
var (
	ErrAPIKeyRequired   = errors.New("OPENAI_API_KEY is not set")
	ErrHubTokenRequired = errors.New("HF_TOKEN is not set")
)

type options struct {
	limit  int
	seed   int64
	upload bool
	repoID string
}

func main() {
	configPath := flag.String("config", "", "YAML config path (optional, defaults built in)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	cacheDir := flag.String("cache-dir", "", "Q&A cache directory (overrides config)")
	outDir := flag.String("out", "", "Dataset output directory (overrides config)")
	limit := flag.Int("limit", 0, "Limit the number of articles to process")
	seed := flag.Int64("seed", 42, "Random seed for shuffling articles")
	upload := flag.Bool("upload", false, "Upload the dataset to Hugging Face Hub")
	repoID := flag.String("repo-id", "", "Hugging Face Hub repository ID for uploading")
	flag.Parse()

	cfg := config.DefaultConfig()

	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			logger.NewLogger("info").Error("failed to load config", "path", *configPath, "err", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	if *cacheDir != "" {
		cfg.Cache.Dir = *cacheDir
	}

	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}

	log := logger.NewLogger(cfg.Logging.Level)

	if *upload && *repoID == "" {
		log.Error("--repo-id is required when --upload is set")
		flag.PrintDefaults()
		os.Exit(1)
	}

	opts := options{
		limit:  *limit,
		seed:   *seed,
		upload: *upload,
		repoID: *repoID,
	}

	if err := run(cfg, config.LoadSecrets(), opts, log); err != nil {
		log.Error("dataset build failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, secrets config.Secrets, opts options, log *logger.Logger) error {
	if secrets.OpenAIKey == "" {
		return ErrAPIKeyRequired
	}

	if opts.upload && secrets.HubToken == "" {
		return ErrHubTokenRequired
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	total, err := st.CountArticles()
	if err != nil {
		return err
	}

	ids := pipeline.SampleIDs(total, opts.seed, opts.limit)
	log.Info("sampled articles", "total", total, "selected", len(ids), "seed", opts.seed)

	cache, err := qagen.NewCache(cfg.Cache.Dir, log)
	if err != nil {
		return err
	}

	client := qagen.NewOpenAIClient(
		secrets.OpenAIKey,
		secrets.OpenAIBaseURL,
		cfg.Generation.Model,
		cfg.Generation.Temperature,
	)
	generator := qagen.NewGenerator(client, cache, &cfg.Retry, cfg.Generation.MaxContentRunes, log)
	classifier := wikitext.NewClassifier(cfg.Filter.MinContentLength, cfg.Filter.MinWordCount)
	builder := dataset.NewBuilder()

	var line *progress.Line
	if cfg.Logging.ShowProgress {
		line = progress.NewLine(os.Stderr, "Processing articles")
	}

	processor := pipeline.NewProcessor(st, classifier, generator, builder, log, line)

	stats, err := processor.Run(context.Background(), ids)
	if err != nil {
		return err
	}

	path, err := builder.Save(cfg.Output.Dir, cfg.Output.Format)
	if err != nil {
		return err
	}

	log.Info("dataset saved", "path", path, "rows", builder.Len())

	if opts.upload {
		uploader := hub.NewUploader(hub.NewClient(cfg.Hub.Endpoint, secrets.HubToken), log)
		if err := uploader.Publish(opts.repoID, path, cfg.Hub.Private); err != nil {
			return err
		}
	}

	fmt.Println(report.Summary(stats, builder.Rows()))

	return nil
}
