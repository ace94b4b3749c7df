package narration

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/llm"
	"github.com/abhisek/alefba/internal/logging"
)

// StoryPurpose labels story requests in the LLM event log.
const StoryPurpose = "story"

// StorySchema defines the JSON schema for a word story.
var StorySchema = &llm.Schema{
	Name:        "word-story",
	Description: "A very short, happy story for a small child about one word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"story": map[string]any{
				"type":        "string",
				"description": "At most two sentences in simple Persian, starting with the word",
			},
		},
		"required":             []any{"story"},
		"additionalProperties": false,
	},
}

const storySystemPrompt = `You tell stories to four-year-old Persian speakers who are learning to read.
Write in simple, warm, colloquial Persian. Never more than two short sentences.`

// Storyteller asks an LLM for a short story about an item's word.
type Storyteller struct {
	provider llm.Provider
	timeout  time.Duration
	log      logrus.FieldLogger
}

// NewStoryteller creates a Storyteller. A nil provider always tells the
// fallback story.
func NewStoryteller(provider llm.Provider, timeout time.Duration, log logrus.FieldLogger) *Storyteller {
	if log == nil {
		log = logging.Discard()
	}
	return &Storyteller{provider: provider, timeout: timeout, log: log}
}

type storyOutput struct {
	Story string `json:"story"`
}

// Story returns a story to speak for it. It never fails: without a
// provider the fixed story is told, and a failed request falls back to an
// invitation to learn the word together.
func (s *Storyteller) Story(ctx context.Context, it content.Item) string {
	if s == nil || s.provider == nil {
		return StoryFallback(it.Word)
	}

	ctx = llm.WithPurpose(ctx, StoryPurpose)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: storySystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildStoryMessage(it)},
		},
		Schema:      StorySchema,
		MaxTokens:   256,
		Temperature: 0.8,
	})
	if err != nil {
		if ctx.Err() == nil {
			s.log.WithError(err).WithField("item", it.ID).Warn("story generation failed")
		}
		return LearnTogether(it.Word)
	}

	var out storyOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		s.log.WithError(err).WithField("item", it.ID).Warn("story response unreadable")
		return LearnTogether(it.Word)
	}
	story := strings.TrimSpace(out.Story)
	if story == "" {
		return StoryFallback(it.Word)
	}
	return story
}

func buildStoryMessage(it content.Item) string {
	return fmt.Sprintf(
		"یک داستان بسیار کوتاه، شاد و کودکانه (حداکثر ۲ جمله) برای یک کودک ۴ ساله درباره کلمه «%s» بگو.\n"+
			"داستان باید با این کلمه شروع شود و حس کنجکاوی کودک را برانگیزد.",
		it.Word,
	)
}
