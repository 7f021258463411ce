package hub

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"daqa/internal/logger"
)

type fakePublisher struct {
	createErr error
	uploadErr error

	createCalls int
	uploadRepo  string
	uploadPath  string
	uploadData  []byte
	uploadMsg   string
}

func (f *fakePublisher) CreateRepo(_ string, _ bool) error {
	f.createCalls++

	return f.createErr
}

func (f *fakePublisher) UploadFile(repoID, path string, data []byte, message string) error {
	f.uploadRepo = repoID
	f.uploadPath = path
	f.uploadData = data
	f.uploadMsg = message

	return f.uploadErr
}

func writeDatasetFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.jsonl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write dataset file: %v", err)
	}

	return path
}

func TestUploader_Publish(t *testing.T) {
	path := writeDatasetFile(t, `{"title":"Danmark"}`)

	publisher := &fakePublisher{}
	uploader := NewUploader(publisher, logger.NewLogger("error"))

	if err := uploader.Publish("org/daqa", path, true); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}

	if publisher.createCalls != 1 {
		t.Errorf("CreateRepo calls = %d, want 1", publisher.createCalls)
	}

	if publisher.uploadRepo != "org/daqa" || publisher.uploadPath != "data.jsonl" {
		t.Errorf("uploaded %s to %s", publisher.uploadPath, publisher.uploadRepo)
	}

	if publisher.uploadMsg != "Add data.jsonl" {
		t.Errorf("commit message = %q", publisher.uploadMsg)
	}

	if string(publisher.uploadData) != `{"title":"Danmark"}` {
		t.Errorf("uploaded data = %s", publisher.uploadData)
	}
}

func TestUploader_Publish_RepoExists(t *testing.T) {
	path := writeDatasetFile(t, "{}")

	publisher := &fakePublisher{createErr: ErrRepoExists}
	uploader := NewUploader(publisher, logger.NewLogger("error"))

	if err := uploader.Publish("org/daqa", path, false); err != nil {
		t.Fatalf("Publish with existing repo returned error: %v", err)
	}

	if publisher.uploadPath != "data.jsonl" {
		t.Errorf("upload did not happen, path = %q", publisher.uploadPath)
	}
}

func TestUploader_Publish_CreateFails(t *testing.T) {
	path := writeDatasetFile(t, "{}")

	createErr := errors.New("forbidden")
	publisher := &fakePublisher{createErr: createErr}
	uploader := NewUploader(publisher, logger.NewLogger("error"))

	if err := uploader.Publish("org/daqa", path, false); !errors.Is(err, createErr) {
		t.Errorf("Publish = %v, want wrapped create error", err)
	}

	if publisher.uploadPath != "" {
		t.Errorf("upload should not happen after create failure")
	}
}

func TestUploader_Publish_MissingFile(t *testing.T) {
	publisher := &fakePublisher{}
	uploader := NewUploader(publisher, logger.NewLogger("error"))

	err := uploader.Publish("org/daqa", filepath.Join(t.TempDir(), "missing.jsonl"), false)
	if err == nil {
		t.Fatal("Publish with missing file should fail")
	}

	if publisher.createCalls != 0 {
		t.Errorf("CreateRepo should not be called when file is missing")
	}
}
