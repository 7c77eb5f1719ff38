package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agent-genesis/internal/application/port/output"
)

type testLogger struct{}

func (testLogger) Debug(string, ...any)                          {}
func (testLogger) Info(string, ...any)                           {}
func (testLogger) Warn(string, ...any)                           {}
func (testLogger) Error(string, ...any)                          {}
func (l testLogger) WithField(string, any) output.LoggerPort     { return l }
func (l testLogger) WithFields(map[string]any) output.LoggerPort { return l }
func (testLogger) Close() error                                  { return nil }

// fakeLLM replays scripted responses in order.
type fakeLLM struct {
	responses []string
	calls     int
	err       error
}

func (f *fakeLLM) Complete(ctx context.Context, req output.CompletionRequest) (*output.CompletionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.calls >= len(f.responses) {
		return nil, errors.New("fakeLLM: no more scripted responses")
	}
	content := f.responses[f.calls]
	f.calls++
	return &output.CompletionResponse{Content: content, Tokens: 10}, nil
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"role": "analyst"}`,
			want:  `{"role": "analyst"}`,
		},
		{
			name:  "markdown fenced",
			input: "```json\n{\"role\": \"analyst\"}\n```",
			want:  `{"role": "analyst"}`,
		},
		{
			name:  "wrapped in prose",
			input: `Here is the result: {"role": "analyst"} hope that helps!`,
			want:  `{"role": "analyst"}`,
		},
		{
			name:  "array before object",
			input: `[{"question": "q1"}, {"question": "q2"}]`,
			want:  `[{"question": "q1"}, {"question": "q2"}]`,
		},
		{
			name:  "fenced array",
			input: "```\n[1, 2, 3]\n```",
			want:  `[1, 2, 3]`,
		},
		{
			name:    "no json at all",
			input:   "I cannot answer that.",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateJSON_RetriesThenSucceeds(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		"sorry, no JSON here",
		`{"role": "analyst"`,
		`{"role": "analyst"}`,
	}}

	var out struct {
		Role string `json:"role"`
	}
	tokens, err := generateJSON(context.Background(), llm, testLogger{}, output.CompletionRequest{}, &out, nil)

	require.NoError(t, err)
	assert.Equal(t, "analyst", out.Role)
	assert.Equal(t, 3, llm.calls)
	assert.Equal(t, 30, tokens, "tokens from every try count toward usage")
}

func TestGenerateJSON_ExhaustsRetries(t *testing.T) {
	llm := &fakeLLM{responses: []string{"garbage", "garbage", "garbage"}}

	var out map[string]any
	_, err := generateJSON(context.Background(), llm, testLogger{}, output.CompletionRequest{}, &out, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed output after 3 tries")
	assert.Equal(t, 3, llm.calls, "one initial try plus maxParseRetries")
}

func TestGenerateJSON_ValidateFailureRetries(t *testing.T) {
	llm := &fakeLLM{responses: []string{
		`{"score": 1.5}`,
		`{"score": 0.8}`,
	}}

	var out struct {
		Score float64 `json:"score"`
	}
	validate := func() error {
		if out.Score > 1 {
			return errors.New("score out of range")
		}
		return nil
	}

	_, err := generateJSON(context.Background(), llm, testLogger{}, output.CompletionRequest{}, &out, validate)

	require.NoError(t, err)
	assert.Equal(t, 0.8, out.Score)
	assert.Equal(t, 2, llm.calls)
}

func TestGenerateJSON_RejectedReplyLeavesNoStaleFields(t *testing.T) {
	// Each reply alone fails validation; only their union would pass. The
	// destination is zeroed per try, so the union must never materialize.
	llm := &fakeLLM{responses: []string{
		`{"role": "analyst"}`,
		`{"capabilities": ["csv"]}`,
		`{"capabilities": ["csv"]}`,
	}}

	var out struct {
		Role         string   `json:"role"`
		Capabilities []string `json:"capabilities"`
	}
	validate := func() error {
		if out.Role == "" {
			return errors.New("missing role")
		}
		if len(out.Capabilities) == 0 {
			return errors.New("missing capabilities")
		}
		return nil
	}

	_, err := generateJSON(context.Background(), llm, testLogger{}, output.CompletionRequest{}, &out, validate)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing role")
	assert.Empty(t, out.Role, "role from the first rejected reply must not survive")
	assert.Equal(t, 3, llm.calls)
}

func TestGenerateJSON_CompletionErrorIsFatal(t *testing.T) {
	llm := &fakeLLM{err: errors.New("upstream unavailable")}

	var out map[string]any
	_, err := generateJSON(context.Background(), llm, testLogger{}, output.CompletionRequest{}, &out, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "completion failed")
}

func TestGenerateJSON_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	llm := &fakeLLM{responses: []string{`{}`}}
	var out map[string]any
	_, err := generateJSON(ctx, llm, testLogger{}, output.CompletionRequest{}, &out, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, llm.calls)
}
