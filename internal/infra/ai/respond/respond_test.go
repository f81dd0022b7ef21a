package respond

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domai "betterfeedback/internal/domain/ai"
)

func TestDecode(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		out, err := Decode(`[{"category":"Bug"},{"category":"Feature"}]`)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "Bug", out[0]["category"])
	})

	t.Run("empty array permitted", func(t *testing.T) {
		out, err := Decode("[]")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		out, err := Decode("\n  [ {\"a\": 1} ]\n")
		require.NoError(t, err)
		assert.Len(t, out, 1)
	})

	t.Run("strips json code fence", func(t *testing.T) {
		out, err := Decode("```json\n[{\"category\":\"Bug\"}]\n```")
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Bug", out[0]["category"])
	})

	t.Run("strips bare code fence", func(t *testing.T) {
		out, err := Decode("```\n[]\n```")
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("non-object elements become nil", func(t *testing.T) {
		out, err := Decode(`[{"category":"Bug"}, "oops", 42]`)
		require.NoError(t, err)
		require.Len(t, out, 3)
		assert.NotNil(t, out[0])
		assert.Nil(t, out[1])
		assert.Nil(t, out[2])
	})
}

func TestDecode_ParseErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"invalid JSON", "this is not json"},
		{"truncated array", `[{"category":"Bug"`},
		{"JSON object instead of array", `{"items": []}`},
		{"bare string", `"hello"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.raw)
			require.Error(t, err)
			var svcErr *domai.ServiceError
			require.True(t, errors.As(err, &svcErr))
			assert.Equal(t, domai.ReasonParseError, svcErr.Code)
		})
	}
}
