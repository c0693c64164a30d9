package llm

import (
	"context"
	"time"

	"github.com/abhisek/kubestronaut/internal/journal"
	"github.com/abhisek/kubestronaut/internal/logging"
)

// EventRecorder stores one event per LLM call.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, data journal.LLMRequestEventData) error
}

type recordingProvider struct {
	inner    Provider
	name     string
	recorder EventRecorder
	log      *logging.Logger
}

// WithRecording logs every call and, when recorder is non-nil, journals it.
// Recording failures never fail the call.
func WithRecording(p Provider, name string, recorder EventRecorder, log *logging.Logger) Provider {
	if log == nil {
		log = logging.Nop()
	}
	return &recordingProvider{inner: p, name: name, recorder: recorder, log: log}
}

func (r *recordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := r.inner.Generate(ctx, req)

	data := journal.LLMRequestEventData{
		Provider:  r.name,
		Model:     r.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	kv := []any{
		"provider", data.Provider,
		"model", data.Model,
		"purpose", data.Purpose,
		"latency_ms", data.LatencyMs,
		"input_tokens", data.InputTokens,
		"output_tokens", data.OutputTokens,
	}
	if c := LookupCost(data.Model); c != nil {
		kv = append(kv, "cost_usd", c.Cost(data.InputTokens, data.OutputTokens))
	}
	if err != nil {
		r.log.Warn("llm request failed", append(kv, "err", err)...)
	} else {
		r.log.Debug("llm request", kv...)
	}

	if r.recorder != nil {
		if recErr := r.recorder.AppendLLMRequest(ctx, data); recErr != nil {
			r.log.Warn("record llm request", "err", recErr)
		}
	}
	return resp, err
}

func (r *recordingProvider) ModelID() string {
	return r.inner.ModelID()
}
