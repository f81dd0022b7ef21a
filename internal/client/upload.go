package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFile rejects uploads that are neither .txt nor .json.
var ErrUnsupportedFile = errors.New("unsupported file type, expected .txt or .json")

// ReadUpload prepares uploaded file content for the analyzer: .txt passes
// through unchanged, .json is re-serialized with indentation so the model
// sees readable structure.
func ReadUpload(name string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return string(data), nil
	case ".json":
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return "", fmt.Errorf("invalid JSON in %s: %w", name, err)
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
	}
}
