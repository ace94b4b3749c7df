package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want retryClass
	}{
		{context.Canceled, retryNever},
		{fmt.Errorf("generate: %w", context.DeadlineExceeded), retryNever},
		{&ErrMaxTokensExceeded{}, retryNever},
		{&ErrInvalidResponse{Err: errors.New("bad")}, retryOnce},
		{&ErrRateLimit{}, retryAlways},
		{&ErrProviderUnavailable{}, retryAlways},
		{errors.New("connection reset"), retryAlways},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classify(tt.err), tt.err.Error())
	}
}

func TestRetry(t *testing.T) {
	ok := MockResponse{Content: json.RawMessage(babaStory)}
	down := MockResponse{Err: &ErrProviderUnavailable{}}
	bad := MockResponse{Err: &ErrInvalidResponse{Err: errors.New("no story")}}

	tests := []struct {
		name      string
		script    []MockResponse
		attempts  int
		wantErr   bool
		wantCalls int
	}{
		{"first try", []MockResponse{ok}, 3, false, 1},
		{"recovers", []MockResponse{down, down, ok}, 3, false, 3},
		{"gives up", []MockResponse{down, down, down, ok}, 3, true, 3},
		{"invalid retried once", []MockResponse{bad, bad, ok}, 3, true, 2},
		{"invalid then fine", []MockResponse{bad, ok}, 3, false, 2},
		{"truncation is final", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, ok}, 3, true, 1},
		{"single attempt", []MockResponse{down, ok}, 1, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			p := WithRetry(mock, fastRetry(tt.attempts), nil)

			resp, err := p.Generate(context.Background(), storyRequest())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, babaStory, string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}})
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := p.Generate(ctx, storyRequest())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetryWait(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}}

	for attempt, base := range map[int]time.Duration{1: 100 * time.Millisecond, 3: 400 * time.Millisecond, 10: time.Second} {
		got := r.wait(attempt, errors.New("x"))
		assert.InDelta(t, float64(base), float64(got), float64(base)/5+1, "attempt %d", attempt)
	}

	got := r.wait(1, &ErrRateLimit{RetryAfter: 3 * time.Second})
	assert.Equal(t, 3*time.Second, got, "a named delay wins")
}

func TestRetryPassesIdentity(t *testing.T) {
	p := WithRetry(NewMockProvider(), fastRetry(2), nil)
	assert.Equal(t, "mock", p.ModelID())
	assert.Equal(t, ProviderMock, p.Name())
}
