// Package respond decodes raw model output into the untrusted element
// sequence the adapter contract promises. Both provider adapters share it.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domai "betterfeedback/internal/domain/ai"
)

// Decode parses the model's raw text as a JSON array of objects. Elements
// that are not objects come back as nil so the validator can reject them
// per-item instead of failing the whole request. A response that is not a
// JSON array at all is a ParseError.
func Decode(raw string) ([]map[string]any, error) {
	trimmed := stripFences(strings.TrimSpace(raw))

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return nil, &domai.ServiceError{
			Code: domai.ReasonParseError,
			Err:  fmt.Errorf("model returned invalid JSON: %w", err),
		}
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, &domai.ServiceError{
			Code: domai.ReasonParseError,
			Err:  errors.New("model response is not a JSON array"),
		}
	}

	out := make([]map[string]any, len(arr))
	for i, el := range arr {
		if m, ok := el.(map[string]any); ok {
			out[i] = m
		}
	}
	return out, nil
}

// stripFences drops an accidental markdown code fence around the payload.
// The prompt forbids fences but models add them anyway now and then.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	parts := strings.SplitN(s, "```", 3)
	if len(parts) < 2 {
		return s
	}
	body := strings.TrimPrefix(parts[1], "json")
	return strings.TrimSpace(body)
}
