package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() map[string]any {
	return map[string]any{
		"category":        "Bug",
		"summary":         "Login button broken",
		"sentiment_score": 0.1,
		"original_text":   "The login button is broken.",
	}
}

func TestValidate_Accepts(t *testing.T) {
	t.Run("all three categories", func(t *testing.T) {
		for _, cat := range []string{"Bug", "Feature", "Pain Point"} {
			raw := validRaw()
			raw["category"] = cat
			item, vf := Validate(raw)
			require.Nil(t, vf, "category %q should validate", cat)
			assert.Equal(t, Category(cat), item.Category)
		}
	})

	t.Run("sentiment boundaries are inclusive", func(t *testing.T) {
		for _, score := range []float64{0, 1, 0.5} {
			raw := validRaw()
			raw["sentiment_score"] = score
			_, vf := Validate(raw)
			assert.Nil(t, vf, "score %v should validate", score)
		}
	})

	t.Run("integer sentiment from in-process callers", func(t *testing.T) {
		raw := validRaw()
		raw["sentiment_score"] = 1
		item, vf := Validate(raw)
		require.Nil(t, vf)
		assert.Equal(t, 1.0, item.SentimentScore)
	})

	t.Run("rounds sentiment to two decimals", func(t *testing.T) {
		raw := validRaw()
		raw["sentiment_score"] = 0.12345
		item, vf := Validate(raw)
		require.Nil(t, vf)
		assert.Equal(t, 0.12, item.SentimentScore)
	})

	t.Run("ignores unknown extra fields", func(t *testing.T) {
		raw := validRaw()
		raw["confidence"] = 0.9
		_, vf := Validate(raw)
		assert.Nil(t, vf)
	})
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		mod   func(map[string]any)
		field string
	}{
		{"nil element", nil, "item"},
		{"unknown category", func(r map[string]any) { r["category"] = "Compliment" }, "category"},
		{"category wrong type", func(r map[string]any) { r["category"] = 3 }, "category"},
		{"missing category", func(r map[string]any) { delete(r, "category") }, "category"},
		{"empty summary", func(r map[string]any) { r["summary"] = "" }, "summary"},
		{"missing summary", func(r map[string]any) { delete(r, "summary") }, "summary"},
		{"empty original_text", func(r map[string]any) { r["original_text"] = "" }, "original_text"},
		{"missing original_text", func(r map[string]any) { delete(r, "original_text") }, "original_text"},
		{"missing sentiment", func(r map[string]any) { delete(r, "sentiment_score") }, "sentiment_score"},
		{"sentiment not numeric", func(r map[string]any) { r["sentiment_score"] = "0.5" }, "sentiment_score"},
		{"sentiment below zero", func(r map[string]any) { r["sentiment_score"] = -0.01 }, "sentiment_score"},
		{"sentiment above one", func(r map[string]any) { r["sentiment_score"] = 1.01 }, "sentiment_score"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var raw map[string]any
			if tc.mod != nil {
				raw = validRaw()
				tc.mod(raw)
			}
			_, vf := Validate(raw)
			require.NotNil(t, vf)
			assert.Equal(t, tc.field, vf.Field)
			assert.NotEmpty(t, vf.Reason)
		})
	}
}

// Re-validating an already-valid item yields the same item unchanged.
func TestValidate_Idempotent(t *testing.T) {
	raw := validRaw()
	raw["sentiment_score"] = 0.119
	first, vf := Validate(raw)
	require.Nil(t, vf)

	again := map[string]any{
		"category":        string(first.Category),
		"summary":         first.Summary,
		"sentiment_score": first.SentimentScore,
		"original_text":   first.OriginalText,
	}
	second, vf := Validate(again)
	require.Nil(t, vf)
	assert.Equal(t, first, second)
}
