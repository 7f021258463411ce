package hub

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"daqa/internal/logger"
)

// Publisher is the Hub capability the uploader needs. Separated so
// tests can substitute a fake.
type Publisher interface {
	CreateRepo(repoID string, private bool) error
	UploadFile(repoID, path string, data []byte, message string) error
}

// Uploader publishes a saved dataset file to the Hub.
type Uploader struct {
	client Publisher
	logger *logger.Logger
}

// NewUploader creates an uploader backed by the given publisher.
func NewUploader(client Publisher, log *logger.Logger) *Uploader {
	return &Uploader{
		client: client,
		logger: log,
	}
}

// Publish creates the repository (tolerating one that already exists)
// and uploads the dataset file under its base name.
func (u *Uploader) Publish(repoID, filePath string, private bool) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read dataset file: %w", err)
	}

	if err := u.client.CreateRepo(repoID, private); err != nil {
		if !errors.Is(err, ErrRepoExists) {
			return fmt.Errorf("failed to create repository: %w", err)
		}

		u.logger.Warn("hub repository already exists, uploading anyway", "repo", repoID)
	}

	name := filepath.Base(filePath)
	if err := u.client.UploadFile(repoID, name, data, "Add "+name); err != nil {
		return fmt.Errorf("failed to upload %s: %w", name, err)
	}

	u.logger.Info("dataset uploaded to Hugging Face Hub", "repo", repoID, "file", name)

	return nil
}
