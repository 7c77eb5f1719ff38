package ollamalocal

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"agent-genesis/internal/application/port/output"
)

var _ output.LLMPort = (*Adapter)(nil)

// Adapter implements the completion port against a local Ollama server via
// langchaingo.
type Adapter struct {
	model llms.Model
}

type Config struct {
	Model     string
	ServerURL string
}

func New(cfg Config) (*Adapter, error) {
	opts := []ollama.Option{ollama.WithModel(cfg.Model)}
	if cfg.ServerURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.ServerURL))
	}

	model, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return &Adapter{model: model}, nil
}

func (a *Adapter) Complete(ctx context.Context, req output.CompletionRequest) (*output.CompletionResponse, error) {
	content := []llms.MessageContent{}
	if req.System != "" {
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	content = append(content, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	resp, err := a.model.GenerateContent(ctx, content, llms.WithTemperature(float64(req.Temperature)))
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	choice := resp.Choices[0]
	return &output.CompletionResponse{
		Content: choice.Content,
		Tokens:  totalTokens(choice.GenerationInfo),
	}, nil
}

// totalTokens reads token usage out of the generation info map. Ollama
// reports TotalTokens alongside the prompt/completion split; older versions
// report only the split.
func totalTokens(info map[string]any) int {
	if n, ok := asInt(info["TotalTokens"]); ok {
		return n
	}
	prompt, _ := asInt(info["PromptTokens"])
	completion, _ := asInt(info["CompletionTokens"])
	return prompt + completion
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
