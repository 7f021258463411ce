package qagen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"daqa/internal/config"
	"daqa/internal/logger"
	"daqa/internal/models"
)

// fakeClient scripts a sequence of responses and counts calls.
type fakeClient struct {
	responses []fakeResponse
	calls     int
	lastUser  string
}

type fakeResponse struct {
	body string
	err  error
}

var _ Client = (*fakeClient)(nil)

func (f *fakeClient) Complete(_ context.Context, _, user string) (string, error) {
	f.lastUser = user

	resp := f.responses[len(f.responses)-1]
	if f.calls < len(f.responses) {
		resp = f.responses[f.calls]
	}
	f.calls++

	return resp.body, resp.err
}

func validBody() string {
	records := make([]string, 0, 5)
	for i := 1; i <= 5; i++ {
		records = append(records, fmt.Sprintf(`{"spørgsmål": "Spørgsmål %d?", "svar": "Svar %d"}`, i, i))
	}

	return "[" + strings.Join(records, ",") + "]"
}

func newTestGenerator(t *testing.T, client Client, cacheDir string) *Generator {
	t.Helper()

	log := logger.NewLogger("error")

	cache, err := NewCache(cacheDir, log)
	if err != nil {
		t.Fatal(err)
	}

	policy := &config.RetryPolicy{
		MaxAttempts:       3,
		InitialDelayMs:    0,
		MaxDelayMs:        0,
		BackoffMultiplier: 1.0,
	}

	return NewGenerator(client, cache, policy, 6000, log)
}

func TestGenerator_ValidResponse(t *testing.T) {
	dir := t.TempDir()
	client := &fakeClient{responses: []fakeResponse{{body: validBody()}}}
	gen := newTestGenerator(t, client, dir)

	article := testArticle()

	pairs, fromCache := gen.Generate(context.Background(), article)
	if fromCache {
		t.Error("fresh generation reported as cache hit")
	}

	if len(pairs) != 5 {
		t.Fatalf("pairs = %d, want 5", len(pairs))
	}

	if pairs[0].Question != "Spørgsmål 1?" || pairs[4].Answer != "Svar 5" {
		t.Errorf("pairs returned modified: %+v", pairs)
	}

	// Exactly one cache file keyed by md5(title+content).
	if _, err := os.Stat(filepath.Join(dir, Key(article)+".json")); err != nil {
		t.Errorf("cache file missing: %v", err)
	}
}

func TestGenerator_CacheHitSkipsAPI(t *testing.T) {
	dir := t.TempDir()
	client := &fakeClient{responses: []fakeResponse{{body: validBody()}}}
	gen := newTestGenerator(t, client, dir)

	article := testArticle()

	gen.Generate(context.Background(), article)

	if client.calls != 1 {
		t.Fatalf("calls after first generate = %d, want 1", client.calls)
	}

	pairs, fromCache := gen.Generate(context.Background(), article)
	if !fromCache {
		t.Error("second generate not served from cache")
	}

	if client.calls != 1 {
		t.Errorf("calls after second generate = %d, want still 1", client.calls)
	}

	if len(pairs) != 5 {
		t.Errorf("cached pairs = %d, want 5", len(pairs))
	}
}

func TestGenerator_TransportFailuresDegradeToEmpty(t *testing.T) {
	dir := t.TempDir()
	transport := errors.New("connection reset")
	client := &fakeClient{responses: []fakeResponse{{err: transport}}}
	gen := newTestGenerator(t, client, dir)

	article := testArticle()

	pairs, fromCache := gen.Generate(context.Background(), article)
	if len(pairs) != 0 {
		t.Errorf("pairs = %+v, want empty", pairs)
	}

	if fromCache {
		t.Error("failure reported as cache hit")
	}

	if client.calls != 3 {
		t.Errorf("calls = %d, want 3 attempts", client.calls)
	}

	// No cache file must be written for a failed article.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after failure, want 0", len(entries))
	}
}

func TestGenerator_MalformedBodyRetriesThenSucceeds(t *testing.T) {
	dir := t.TempDir()
	client := &fakeClient{responses: []fakeResponse{
		{body: "ikke json"},
		{body: `[{"spørgsmål": "Kun spørgsmål?"}]`},
		{body: validBody()},
	}}
	gen := newTestGenerator(t, client, dir)

	pairs, _ := gen.Generate(context.Background(), testArticle())
	if len(pairs) != 5 {
		t.Fatalf("pairs = %d, want 5 after recovery", len(pairs))
	}

	if client.calls != 3 {
		t.Errorf("calls = %d, want 3", client.calls)
	}
}

func TestGenerator_PromptTruncatesContent(t *testing.T) {
	dir := t.TempDir()
	client := &fakeClient{responses: []fakeResponse{{body: validBody()}}}
	gen := newTestGenerator(t, client, dir)

	long := models.CleanedArticle{
		Title:   "Lang",
		Content: strings.Repeat("æ", 7000),
	}

	gen.Generate(context.Background(), long)

	if want := strings.Repeat("æ", 6000); !strings.Contains(client.lastUser, want) {
		t.Error("prompt does not contain the truncated content")
	}

	if strings.Contains(client.lastUser, strings.Repeat("æ", 6001)) {
		t.Error("prompt contains more than 6000 runes of content")
	}
}

func TestParsePairs(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		wantLen int
	}{
		{name: "plain array", body: validBody(), wantLen: 5},
		{
			name:    "fenced array",
			body:    "```json\n" + validBody() + "\n```",
			wantLen: 5,
		},
		{name: "empty array", body: "[]", wantErr: true},
		{name: "not json", body: "Her er dine spørgsmål!", wantErr: true},
		{
			name:    "missing answer key",
			body:    `[{"spørgsmål": "Hvad?"}]`,
			wantErr: true,
		},
		{
			name:    "empty question",
			body:    `[{"spørgsmål": "", "svar": "Ja"}]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := parsePairs(tt.body)

			if tt.wantErr {
				if err == nil {
					t.Errorf("parsePairs(%q) succeeded, want error", tt.body)
				}

				return
			}

			if err != nil {
				t.Fatalf("parsePairs returned error: %v", err)
			}

			if len(pairs) != tt.wantLen {
				t.Errorf("pairs = %d, want %d", len(pairs), tt.wantLen)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"abcdef", 3, "abc"},
		{"abcdef", 10, "abcdef"},
		{"æøåæøå", 3, "æøå"},
		{"abc", 0, ""},
		{"abc", -1, ""},
	}

	for _, tt := range tests {
		if got := truncateRunes(tt.input, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}
