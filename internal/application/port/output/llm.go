package output

import "context"

// CompletionRequest is a single system+prompt exchange with a model.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float32
}

type CompletionResponse struct {
	Content string
	Tokens  int
}

// LLMPort abstracts one model provider behind a blocking completion call.
type LLMPort interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
