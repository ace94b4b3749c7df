// Package llm is a small provider-neutral client for structured text
// generation. Stories for the narrator are its only use.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one reply for a request.
type Provider interface {
	// Generate returns the reply. With req.Schema set the reply content has
	// been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
	Name() string
}

type Request struct {
	System    string
	Messages  []Message
	Schema    *Schema // nil for free text
	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema the reply must match. Name doubles as the
// cache key for the compiled form, so a name must always carry the same
// definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string // as reported by the provider
	StopReason string // StopEnd or StopMaxTokens
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
