// Package main imports a compressed Wikipedia XML export into the
// article store.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"daqa/internal/logger"
	"daqa/internal/models"
	"daqa/internal/progress"
	"daqa/internal/store"
	"daqa/internal/wikidump"
)

const batchSize = 500

func main() {
	dumpPath := flag.String("dump", "dawiki-latest-pages-articles.xml.bz2", "Wikipedia XML export (.xml or .xml.bz2)")
	dbPath := flag.String("db", "danish_wikipedia.db", "SQLite database path")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.NewLogger(*logLevel)

	if err := run(*dumpPath, *dbPath, log); err != nil {
		log.Error("import failed", "err", err)
		os.Exit(1)
	}
}

func run(dumpPath, dbPath string, log *logger.Logger) error {
	reader, err := wikidump.Open(dumpPath)
	if err != nil {
		return err
	}
	defer reader.Close()

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	log.Info("importing dump", "dump", dumpPath, "db", dbPath)

	line := progress.NewLine(os.Stderr, "Processing articles")

	imported := 0
	batch := make([]models.Article, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}

		if err := st.InsertArticles(batch); err != nil {
			return err
		}

		imported += len(batch)
		batch = batch[:0]
		line.Update(imported, 0)

		return nil
	}

	for {
		page, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return fmt.Errorf("dump read failed: %w", err)
		}

		batch = append(batch, models.Article{Title: page.Title, Content: page.Text})
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if err := flush(); err != nil {
		return err
	}

	line.Finish()
	log.Info("import complete", "articles", imported)

	return nil
}
