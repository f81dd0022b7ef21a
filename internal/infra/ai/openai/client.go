package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"

	domai "betterfeedback/internal/domain/ai"
	"betterfeedback/internal/infra/ai/prompt"
	"betterfeedback/internal/infra/ai/respond"
)

const defaultModel = "gpt-4o-mini"

type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

func (c *Client) Analyze(ctx context.Context, text string) ([]map[string]any, error) {
	model := c.Model
	if model == "" {
		model = defaultModel
	}
	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System()},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &domai.ServiceError{Code: domai.ReasonUnknown, Err: errors.New("no completion choices returned")}
	}

	return respond.Decode(resp.Choices[0].Message.Content)
}

func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return &domai.ServiceError{Code: domai.ReasonQuotaExceeded, Err: err}
		}
		return &domai.ServiceError{Code: domai.ReasonUnknown, Err: err}
	}
	return &domai.ServiceError{Code: domai.ReasonNetworkError, Err: err}
}
