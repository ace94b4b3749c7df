package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_NoneIsNil(t *testing.T) {
	for _, name := range []string{"", ProviderNone} {
		cfg := DefaultConfig()
		cfg.Provider = name
		p, err := NewProvider(context.Background(), cfg, nil, nil)
		require.NoError(t, err)
		assert.Nil(t, p)
		assert.False(t, cfg.Enabled())
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	_, err := NewProvider(context.Background(), cfg, nil, nil)
	assert.ErrorContains(t, err, "ALEFBA_LLM_GEMINI_API_KEY")
}

func TestNewProvider_Wraps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "sk-or-test"

	p, err := NewProvider(context.Background(), cfg, &fakeRequestLog{}, nil)
	require.NoError(t, err)
	require.IsType(t, &RetryProvider{}, p)
	assert.Equal(t, ProviderOpenRouter, p.Name())
	assert.Equal(t, "google/gemini-2.0-flash-001", p.ModelID())
}

func TestNewProvider_MockLogsEveryAttempt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	cfg.Retry.InitialWait = 0
	cfg.Retry.MaxWait = 0

	log := &fakeRequestLog{}
	p, err := NewProvider(context.Background(), cfg, log, nil)
	require.NoError(t, err)

	// The mock's queue is empty, so every attempt fails as unavailable.
	_, err = p.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Len(t, log.events, cfg.Retry.MaxAttempts)
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.0-flash")
	require.NotNil(t, c)
	assert.InDelta(t, 0.0001+0.00004, c.Cost(1000, 100), 1e-9)
	assert.Nil(t, LookupCost("no-such-model"))
}
