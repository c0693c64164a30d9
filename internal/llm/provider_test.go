package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
	)
	mock.AddResponse(MockResponse{Content: json.RawMessage(`{"b":2}`)})

	resp1, err := mock.Generate(context.Background(), SingleTurn("", "first", nil, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` || resp1.Usage.InputTokens != 10 || resp1.StopReason != "end" {
		t.Fatalf("resp1 = %+v", resp1)
	}

	resp2, err := mock.Generate(context.Background(), SingleTurn("", "second", nil, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `{"b":2}` {
		t.Fatalf("resp2 = %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	_, err := NewMockProvider().Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	_, _ = mock.Generate(context.Background(), SingleTurn("sys", "hello", nil, 10))

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	calls := mock.Calls()
	if calls[0].System != "sys" || calls[0].Messages[0].Content != "hello" {
		t.Fatalf("recorded call = %+v", calls[0])
	}
	calls[0].System = "mutated"
	if mock.Calls()[0].System != "sys" {
		t.Fatal("Calls should return a copy")
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"summary":"x"}`)})
	_, err := mock.Generate(context.Background(), SingleTurn("", "Explain", explanationSchema(), 10))
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestFinish_TruncationWithoutSchemaIsAccepted(t *testing.T) {
	resp := &Response{Content: json.RawMessage(`partial text`), StopReason: "max_tokens"}
	got, err := finish(SingleTurn("", "x", nil, 5), resp)
	if err != nil || got != resp {
		t.Fatalf("finish = %v, %v", got, err)
	}

	_, err = finish(SingleTurn("", "x", explanationSchema(), 5), resp)
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T", err)
	}
}

func TestRequestValidate(t *testing.T) {
	if err := (Request{MaxTokens: 10}).validate(); err == nil {
		t.Error("expected error for missing messages")
	}
	if err := SingleTurn("", "x", nil, 0).validate(); err == nil {
		t.Error("expected error for zero MaxTokens")
	}
	if err := SingleTurn("", "x", nil, 1).validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	ctx = WithPurpose(ctx, "explain")
	if p := PurposeFrom(ctx); p != "explain" {
		t.Fatalf("expected 'explain', got %q", p)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limit", &ErrRateLimit{}, true},
		{"unavailable", &ErrProviderUnavailable{}, true},
		{"invalid", &ErrInvalidResponse{}, true},
		{"truncated", &ErrMaxTokensExceeded{}, false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
	}
	for _, tt := range tests {
		if got := IsTransient(tt.err); got != tt.want {
			t.Errorf("%s: IsTransient = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestClassifyStatus(t *testing.T) {
	base := errors.New("boom")
	var rl *ErrRateLimit
	if !errors.As(classifyStatus(429, base), &rl) {
		t.Error("429 should map to ErrRateLimit")
	}
	var unavail *ErrProviderUnavailable
	if !errors.As(classifyStatus(503, base), &unavail) || !errors.Is(classifyStatus(503, base), base) {
		t.Error("503 should wrap the cause in ErrProviderUnavailable")
	}
	if err := classifyStatus(0, context.Canceled); err != context.Canceled {
		t.Errorf("context errors should pass through, got %v", err)
	}
}
