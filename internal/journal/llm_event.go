package journal

import (
	"context"
	"fmt"
	"time"
)

// LLMRequestEventData captures the data for a single LLM request.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequest is a stored LLM request event.
type LLMRequest struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// AppendLLMRequest records an LLM API call.
func (j *Journal) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seq, err := j.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	_, err = j.db.ExecContext(ctx,
		`INSERT INTO llm_requests
		 (sequence, session_id, ts, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, j.sessionID, j.now().UnixMilli(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// LLMRequests returns every recorded LLM request in sequence order.
func (j *Journal) LLMRequests(ctx context.Context) ([]LLMRequest, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT sequence, ts, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message
		 FROM llm_requests ORDER BY sequence ASC`)
	if err != nil {
		return nil, fmt.Errorf("query LLM requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequest
	for rows.Next() {
		var r LLMRequest
		var ts int64
		if err := rows.Scan(&r.Sequence, &ts, &r.Provider, &r.Model, &r.Purpose,
			&r.InputTokens, &r.OutputTokens, &r.LatencyMs, &r.Success, &r.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan LLM request: %w", err)
		}
		r.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}
