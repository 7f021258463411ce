package qagen

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrEmptyResponse is returned when the model replies with no content.
var ErrEmptyResponse = errors.New("empty response from model")

// Client is the text-generation capability the generator depends on:
// send a prompt, get text back, may fail transiently.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIClient calls the OpenAI chat completions API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float64
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client for the given model and temperature.
// baseURL may be empty to use the default API endpoint.
func NewOpenAIClient(apiKey, baseURL, model string, temperature float64) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: temperature,
	}
}

// Complete sends one system/user message pair and returns the reply
// text. An empty reply is reported as ErrEmptyResponse.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		}),
		Model:       openai.F(openai.ChatModel(c.model)),
		Temperature: openai.F(c.temperature),
	})
	if err != nil {
		return "", err
	}

	if len(completion.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}

	return content, nil
}
