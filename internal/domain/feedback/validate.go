package feedback

import (
	"fmt"
	"math"
)

// ValidationFailure is a per-item rejection during schema enforcement.
// Non-fatal to the overall request; the caller logs it and drops the item.
type ValidationFailure struct {
	Field  string
	Reason string
}

func (f *ValidationFailure) String() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Reason)
}

func fail(field, reason string) (FeedbackItem, *ValidationFailure) {
	return FeedbackItem{}, &ValidationFailure{Field: field, Reason: reason}
}

// Validate converts one untrusted element of the model's output into a
// FeedbackItem. The input is never trusted as typed data: every field is
// checked for presence, type and range. Unknown extra keys are ignored.
// Sentiment scores are rounded to two decimals, so re-validating an
// already-valid item yields the same item unchanged.
func Validate(raw map[string]any) (FeedbackItem, *ValidationFailure) {
	if raw == nil {
		return fail("item", "not a JSON object")
	}

	cat, err := stringField(raw, "category")
	if err != nil {
		return FeedbackItem{}, err
	}
	category := Category(cat)
	if !category.Valid() {
		return fail("category", fmt.Sprintf("%q is not one of Bug, Feature, Pain Point", cat))
	}

	summary, err := stringField(raw, "summary")
	if err != nil {
		return FeedbackItem{}, err
	}

	original, err := stringField(raw, "original_text")
	if err != nil {
		return FeedbackItem{}, err
	}

	rawScore, ok := raw["sentiment_score"]
	if !ok {
		return fail("sentiment_score", "missing")
	}
	score, ok := numeric(rawScore)
	if !ok {
		return fail("sentiment_score", "not a number")
	}
	if score < 0 || score > 1 {
		return fail("sentiment_score", fmt.Sprintf("%v outside [0,1]", score))
	}

	return FeedbackItem{
		Category:       category,
		Summary:        summary,
		SentimentScore: math.Round(score*100) / 100,
		OriginalText:   original,
	}, nil
}

func stringField(raw map[string]any, field string) (string, *ValidationFailure) {
	v, ok := raw[field]
	if !ok {
		return "", &ValidationFailure{Field: field, Reason: "missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &ValidationFailure{Field: field, Reason: "not a string"}
	}
	if s == "" {
		return "", &ValidationFailure{Field: field, Reason: "empty"}
	}
	return s, nil
}

// numeric accepts the types a JSON decode can hand us plus plain ints from
// in-process callers.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
