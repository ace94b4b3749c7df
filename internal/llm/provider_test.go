package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider(t *testing.T) {
	boom := errors.New("boom")
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(babaStory), Usage: Usage{InputTokens: 1, OutputTokens: 2}},
		MockResponse{Err: boom},
	)

	resp, err := mock.Generate(context.Background(), storyRequest())
	require.NoError(t, err)
	assert.JSONEq(t, babaStory, string(resp.Content))
	assert.Equal(t, StopEnd, resp.StopReason)

	_, err = mock.Generate(context.Background(), storyRequest())
	assert.ErrorIs(t, err, boom)

	_, err = mock.Generate(context.Background(), storyRequest())
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail, "an empty script means the provider is down")

	require.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "Tell a story about the word بابا.", mock.Calls[0].Messages[0].Content)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is off", func(*Config) {}, false},
		{"mock", func(c *Config) { c.Provider = ProviderMock }, false},
		{"anthropic without key", func(c *Config) { c.Provider = ProviderAnthropic }, true},
		{"anthropic with key", func(c *Config) { c.Provider = ProviderAnthropic; c.Anthropic.APIKey = "k" }, false},
		{"gemini without key", func(c *Config) { c.Provider = ProviderGemini }, true},
		{"openrouter with key", func(c *Config) { c.Provider = ProviderOpenRouter; c.OpenRouter.APIKey = "k" }, false},
		{"unknown", func(c *Config) { c.Provider = "eliza" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderOpenAI, cfg.Provider, "openai is probed before anthropic")
	assert.Equal(t, "o", cfg.OpenAI.APIKey)
	assert.True(t, cfg.Enabled())
}
