package feedback

import (
	"time"
)

// RunID tipe untuk AnalysisRun
type RunID string

// Category enum
type Category string

const (
	CategoryBug       Category = "Bug"
	CategoryFeature   Category = "Feature"
	CategoryPainPoint Category = "Pain Point"
)

// Valid reports whether c is one of the three allowed literals.
func (c Category) Valid() bool {
	switch c {
	case CategoryBug, CategoryFeature, CategoryPainPoint:
		return true
	}
	return false
}

// FeedbackItem is one categorized unit of customer feedback. Instances are
// only ever produced by Validate and are immutable afterwards.
type FeedbackItem struct {
	Category       Category `json:"category"`
	Summary        string   `json:"summary"`
	SentimentScore float64  `json:"sentiment_score"`
	OriginalText   string   `json:"original_text"`
}

// Aggregate Root: AnalysisRun groups all items derived from one submission.
type AnalysisRun struct {
	ID           RunID          `json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	InputPreview string         `json:"input_preview"`
	ItemCount    int            `json:"item_count"`
	Items        []FeedbackItem `json:"items"`

	// Full submitted text; persisted for the audit trail, never serialized
	// over the API.
	InputText string `json:"-"`
}

const previewRunes = 120

// Preview truncates input to the first 120 runes with an ellipsis marker.
func Preview(input string) string {
	r := []rune(input)
	if len(r) <= previewRunes {
		return input
	}
	return string(r[:previewRunes]) + "…"
}

// NewRun builds an immutable run from validated items.
func NewRun(id RunID, at time.Time, input string, items []FeedbackItem) *AnalysisRun {
	if items == nil {
		items = []FeedbackItem{}
	}
	return &AnalysisRun{
		ID:           id,
		CreatedAt:    at.UTC(),
		InputPreview: Preview(input),
		ItemCount:    len(items),
		Items:        items,
		InputText:    input,
	}
}

// AnalyzeResponse is the wire shape every analyze call resolves to. Error
// non-nil implies Items is empty; SkippedCount reports per-item validation
// drops on the success path.
type AnalyzeResponse struct {
	Items        []FeedbackItem `json:"items"`
	Count        int            `json:"count"`
	SkippedCount int            `json:"skipped_count"`
	Error        *string        `json:"error"`
}

func ResponseFromItems(items []FeedbackItem, skipped int) AnalyzeResponse {
	if items == nil {
		items = []FeedbackItem{}
	}
	return AnalyzeResponse{Items: items, Count: len(items), SkippedCount: skipped}
}

func ResponseFromError(msg string) AnalyzeResponse {
	return AnalyzeResponse{Items: []FeedbackItem{}, Error: &msg}
}
