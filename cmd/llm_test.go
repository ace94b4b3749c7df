package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/alefba/internal/store"
)

func storyEvents(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	events := s.EventRepo()
	ctx := context.Background()
	require.NoError(t, events.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "story",
		InputTokens: 1000, OutputTokens: 100, LatencyMs: 420, Success: true,
		RequestBody: "[user]\nبابا", ResponseBody: `{"story":"..."}`,
	}))
	require.NoError(t, events.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "openrouter", Model: "some/unpriced-model", Purpose: "story",
		LatencyMs: 80, ErrorMessage: "rate limited",
	}))
	return events
}

func TestWriteLLMList(t *testing.T) {
	events := storyEvents(t)

	var out bytes.Buffer
	require.NoError(t, writeLLMList(context.Background(), &out, events, 10, ""))
	assert.Contains(t, out.String(), "gemini-2.0-flash")
	assert.Contains(t, out.String(), "✗")

	out.Reset()
	require.NoError(t, writeLLMList(context.Background(), &out, events, 10, "narration"))
	assert.Equal(t, "No LLM requests recorded.\n", out.String())
}

func TestWriteLLMStats(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeLLMStats(context.Background(), &out, storyEvents(t)))

	text := out.String()
	assert.Contains(t, text, "story")
	assert.Contains(t, text, "TOTAL (partial)")
	assert.Contains(t, text, "No pricing for: some/unpriced-model")
	assert.Contains(t, text, "$0.0001", "1000 in and 100 out on gemini flash")
}

func TestWriteLLMEvent(t *testing.T) {
	var out bytes.Buffer
	writeLLMEvent(&out, &store.LLMRequestEvent{
		Stored:              store.Stored{ID: 7},
		LLMRequestEventData: store.LLMRequestEventData{Model: "m", ErrorMessage: "boom", RequestBody: "prompt"},
	})

	text := out.String()
	assert.Contains(t, text, "ID:        7")
	assert.Contains(t, text, "Error:     boom")
	assert.Contains(t, text, "prompt")
	assert.Contains(t, text, "(not captured)")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "gemini", truncate("gemini-2.0-flash", 6))
	assert.Equal(t, "short", truncate("short", 6))
}
