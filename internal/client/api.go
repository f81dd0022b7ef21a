package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"betterfeedback/internal/domain/feedback"
)

const DefaultBaseURL = "http://localhost:8080"

// API talks to the BetterFeedback server. The base URL can be overridden
// for non-local deployments (FEEDBACK_API_URL or --api).
type API struct {
	baseURL string
	http    *http.Client
}

func NewAPI(baseURL string) *API {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Analyze posts text for analysis. Both 200 and 400 carry the
// AnalyzeResponse shape, so either decodes into a usable response; anything
// else is a transport-level error.
func (a *API) Analyze(ctx context.Context, text string) (feedback.AnalyzeResponse, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return feedback.AnalyzeResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/analyze", bytes.NewReader(body))
	if err != nil {
		return feedback.AnalyzeResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := a.http.Do(req)
	if err != nil {
		return feedback.AnalyzeResponse{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusBadRequest {
		return feedback.AnalyzeResponse{}, fmt.Errorf("analyze request failed: %s", res.Status)
	}
	var resp feedback.AnalyzeResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return feedback.AnalyzeResponse{}, fmt.Errorf("decoding analyze response: %w", err)
	}
	return resp, nil
}

// History fetches past runs, most recent first.
func (a *API) History(ctx context.Context, limit int) ([]feedback.AnalysisRun, error) {
	url := a.baseURL + "/api/history"
	if limit > 0 {
		url = fmt.Sprintf("%s?limit=%d", url, limit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := a.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history request failed: %s", res.Status)
	}
	var runs []feedback.AnalysisRun
	if err := json.NewDecoder(res.Body).Decode(&runs); err != nil {
		return nil, fmt.Errorf("decoding history response: %w", err)
	}
	return runs, nil
}

// Health checks server liveness.
func (a *API) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/api/health", nil)
	if err != nil {
		return err
	}
	res, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: %s", res.Status)
	}
	return nil
}
