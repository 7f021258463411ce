// Package hub publishes dataset files to the Hugging Face Hub through
// its REST API.
package hub

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Hub API errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrRepoExists           = errors.New("repository already exists")
	ErrTokenRequired        = errors.New("hub token is required")
)

const defaultEndpoint = "https://huggingface.co"

// Client talks to the Hub REST API with a bearer token.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

var _ Publisher = (*Client)(nil)

// NewClient creates a Hub client. An empty endpoint selects the public
// Hub.
func NewClient(endpoint, token string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		endpoint:   strings.TrimRight(endpoint, "/"),
		token:      token,
	}
}

// CreateRepo creates a dataset repository. A namespaced id like
// "org/name" is split into the create endpoint's organization and name
// fields. ErrRepoExists is returned when the repository is already
// there.
func (c *Client) CreateRepo(repoID string, private bool) error {
	request := map[string]any{
		"name":    repoID,
		"type":    "dataset",
		"private": private,
	}

	if org, name, ok := strings.Cut(repoID, "/"); ok {
		request["organization"] = org
		request["name"] = name
	}

	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal create request: %w", err)
	}

	resp, err := c.post("/api/repos/create", "application/json", body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrRepoExists, repoID)
	case resp.StatusCode >= http.StatusMultipleChoices:
		return statusError(resp)
	}

	return nil
}

// UploadFile commits one file to the main branch of a dataset
// repository. The commit endpoint takes newline-delimited JSON: a
// header line followed by one line per file, content base64-encoded.
func (c *Client) UploadFile(repoID, path string, data []byte, message string) error {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)

	header := map[string]any{
		"key":   "header",
		"value": map[string]string{"summary": message},
	}
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("failed to marshal commit header: %w", err)
	}

	file := map[string]any{
		"key": "file",
		"value": map[string]string{
			"path":     path,
			"content":  base64.StdEncoding.EncodeToString(data),
			"encoding": "base64",
		},
	}
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("failed to marshal commit file: %w", err)
	}

	url := fmt.Sprintf("/api/datasets/%s/commit/main", repoID)

	resp, err := c.post(url, "application/x-ndjson", buf.Bytes())
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return statusError(resp)
	}

	return nil
}

func (c *Client) post(path, contentType string, body []byte) (*http.Response, error) {
	if c.token == "" {
		return nil, ErrTokenRequired
	}

	req, err := http.NewRequest(http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hub request failed: %w", err)
	}

	return resp, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	return fmt.Errorf("%w: %d: %s", ErrUnexpectedStatusCode, resp.StatusCode, strings.TrimSpace(string(body)))
}
