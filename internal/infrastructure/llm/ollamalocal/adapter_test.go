package ollamalocal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalTokens(t *testing.T) {
	cases := []struct {
		name string
		info map[string]any
		want int
	}{
		{
			name: "total reported directly",
			info: map[string]any{"TotalTokens": 150, "PromptTokens": 100, "CompletionTokens": 50},
			want: 150,
		},
		{
			name: "only the split reported",
			info: map[string]any{"PromptTokens": 100, "CompletionTokens": 50},
			want: 150,
		},
		{
			name: "float-typed counters",
			info: map[string]any{"TotalTokens": float64(42)},
			want: 42,
		},
		{
			name: "no usage info",
			info: nil,
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, totalTokens(tc.info))
		})
	}
}
