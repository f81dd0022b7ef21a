package ai

import "context"

// Client is the boundary to the external model. It returns parsed but
// untrusted elements; a nil element marks an array entry that was not a
// JSON object. Typed conversion happens later, in the validator.
type Client interface {
	Analyze(ctx context.Context, text string) ([]map[string]any, error)
}
