package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storySchema() *Schema {
	return &Schema{
		Name:        "word-story",
		Description: "A two sentence story",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"story": map[string]any{"type": "string", "minLength": 1},
			},
			"required":             []any{"story"},
			"additionalProperties": false,
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"story", babaStory, true},
		{"empty story", `{"story":""}`, false},
		{"missing story", `{}`, false},
		{"extra field", `{"story":"x","moral":"y"}`, false},
		{"wrong type", `{"story":3}`, false},
		{"not json", `once upon a time`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(storySchema(), json.RawMessage(tt.raw))
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var invalid *ErrInvalidResponse
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.raw, string(invalid.Content))
		})
	}
}

func TestValidateWithoutSchema(t *testing.T) {
	assert.NoError(t, validateResponse(nil, json.RawMessage(`anything at all`)))
}

func TestCompiledSchemaCached(t *testing.T) {
	a, err := compileSchema(storySchema())
	require.NoError(t, err)
	b, err := compileSchema(storySchema())
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestFinish(t *testing.T) {
	resp, err := finish(storyRequest(), json.RawMessage(babaStory), Usage{InputTokens: 3, OutputTokens: 4}, "m", StopEnd)
	require.NoError(t, err)
	assert.Equal(t, 7, resp.Usage.TotalTokens)

	_, err = finish(storyRequest(), json.RawMessage(`{"story":"نا`), Usage{}, "m", StopMaxTokens)
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)

	// A truncated reply that still validates is kept.
	resp, err = finish(storyRequest(), json.RawMessage(babaStory), Usage{}, "m", StopMaxTokens)
	require.NoError(t, err)
	assert.Equal(t, StopMaxTokens, resp.StopReason)
}
