package gemini

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/genai"

	domai "betterfeedback/internal/domain/ai"
	"betterfeedback/internal/infra/ai/prompt"
	"betterfeedback/internal/infra/ai/respond"
)

const defaultModel = "gemini-2.5-flash"

// Low temperature for consistent, structured output.
const temperature = float32(0.2)

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Client{client: cli, model: model}, nil
}

// Analyze sends text under the fixed system instruction. One call, no retry;
// a hung call is bounded only by ctx.
func (c *Client) Analyze(ctx context.Context, text string) ([]map[string]any, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(text),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(prompt.System(), genai.RoleUser),
			Temperature:       genai.Ptr(temperature),
		})
	if err != nil {
		return nil, classify(err)
	}
	return respond.Decode(resp.Text())
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests {
			return &domai.ServiceError{Code: domai.ReasonQuotaExceeded, Err: err}
		}
		return &domai.ServiceError{Code: domai.ReasonUnknown, Err: err}
	}
	return &domai.ServiceError{Code: domai.ReasonNetworkError, Err: err}
}
