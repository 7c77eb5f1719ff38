package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"agent-genesis/internal/application/port/output"
)

// maxParseRetries bounds how many extra completions a collaborator makes
// when the model returns malformed JSON. These retries are internal to the
// stage and never touch the outer QA attempt budget.
const maxParseRetries = 2

// extractJSON slices the first JSON object or array out of a model reply
// that may be wrapped in prose or markdown fences.
func extractJSON(s string) (string, error) {
	s = strings.TrimSpace(s)

	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")

	start, closing := objStart, "}"
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start, closing = arrStart, "]"
	}

	end := strings.LastIndex(s, closing)
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON found in response")
	}
	return s[start : end+1], nil
}

// generateJSON runs one completion and unmarshals the embedded JSON into
// out, retrying the whole call on malformed output. validate may be nil.
// out is zeroed before every unmarshal so fields from a rejected earlier
// reply never survive into a later one.
func generateJSON(
	ctx context.Context,
	llm output.LLMPort,
	logger output.LoggerPort,
	req output.CompletionRequest,
	out any,
	validate func() error,
) (int, error) {
	var lastErr error
	tokens := 0
	dst := reflect.ValueOf(out).Elem()

	for try := 0; try <= maxParseRetries; try++ {
		if err := ctx.Err(); err != nil {
			return tokens, err
		}

		resp, err := llm.Complete(ctx, req)
		if err != nil {
			return tokens, fmt.Errorf("completion failed: %w", err)
		}
		tokens += resp.Tokens

		payload, err := extractJSON(resp.Content)
		if err == nil {
			dst.Set(reflect.Zero(dst.Type()))
			err = json.Unmarshal([]byte(payload), out)
		}
		if err == nil && validate != nil {
			err = validate()
		}
		if err == nil {
			return tokens, nil
		}

		lastErr = err
		logger.Warn("Malformed model output, retrying", "try", try+1, "error", err)
	}

	return tokens, fmt.Errorf("malformed output after %d tries: %w", maxParseRetries+1, lastErr)
}
