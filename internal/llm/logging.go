package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/alefba/internal/logging"
	"github.com/abhisek/alefba/internal/store"
)

// RequestLog stores one event per LLM call.
type RequestLog interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider records every call it forwards, failed or not.
type LoggingProvider struct {
	inner    Provider
	requests RequestLog
	log      logrus.FieldLogger
}

// WithLogging wraps p so each call is written to requests. log may be nil.
func WithLogging(p Provider, requests RequestLog, log logrus.FieldLogger) Provider {
	if log == nil {
		log = logging.Discard()
	}
	return &LoggingProvider{inner: p, requests: requests, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	began := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(PurposeFrom(ctx), req, resp, err, time.Since(began))

	entry := l.log.WithFields(logrus.Fields{
		"provider": ev.Provider,
		"model":    ev.Model,
		"purpose":  ev.Purpose,
		"latency":  ev.LatencyMs,
	})
	if err != nil {
		entry.WithError(err).Warn("llm request failed")
	} else {
		entry.Debug("llm request")
	}

	// Recorded even when the caller has already given up.
	if werr := l.requests.AppendLLMRequest(context.WithoutCancel(ctx), ev); werr != nil {
		entry.WithError(werr).Warn("llm request event not recorded")
	}
	return resp, err
}

func (l *LoggingProvider) event(purpose string, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.inner.Name(),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	if resp == nil {
		return ev
	}
	ev.InputTokens, ev.OutputTokens = resp.Usage.InputTokens, resp.Usage.OutputTokens
	ev.ResponseBody = string(resp.Content)
	if resp.Model != "" {
		ev.Model = resp.Model
	}
	return ev
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Name() string { return l.inner.Name() }

// transcript renders req as labelled blocks for `alefba llm view`.
func transcript(req Request) string {
	var b strings.Builder
	block := func(label, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", label, body)
	}
	if req.System != "" {
		block("system", req.System)
	}
	for _, m := range req.Messages {
		block(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			block("schema: "+req.Schema.Name, string(def))
		}
	}
	return b.String()
}
