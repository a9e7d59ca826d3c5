package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
)

const persona = "You are a helpful assistant that generates Python code."

const (
	// DefaultGenerateMaxTokens is the token ceiling for a new script.
	DefaultGenerateMaxTokens = 10000
	// DefaultFixMaxTokens is the token ceiling for a fixed script.
	DefaultFixMaxTokens = 400
)

// A Generator asks a LLM to write a script.
type Generator struct {
	logger    *slog.Logger
	model     Model
	extractor Extractor
	maxTokens int
}

// NewGenerator creates a Generator.
// The model reply is limited to maxTokens tokens.
func NewGenerator(logger *slog.Logger, m Model, e Extractor, maxTokens int) *Generator {
	return &Generator{logger: logger, model: m, extractor: e, maxTokens: maxTokens}
}

// Generate returns a script that does what the description asks for.
func (g *Generator) Generate(ctx context.Context, description string) (string, error) {
	g.logger.Info("requesting script", "max_tokens", g.maxTokens)
	prompt := fmt.Sprintf("Create a Python script that does the following: %s", description)
	reply, err := complete(ctx, g.model, prompt, g.maxTokens)
	if err != nil {
		return "", err
	}
	return g.extractor.Extract(reply), nil
}

// A Fixer asks a LLM to repair a script that failed.
type Fixer struct {
	logger    *slog.Logger
	model     Model
	extractor Extractor
	maxTokens int
}

// NewFixer creates a Fixer.
// The model reply is limited to maxTokens tokens.
func NewFixer(logger *slog.Logger, m Model, e Extractor, maxTokens int) *Fixer {
	return &Fixer{logger: logger, model: m, extractor: e, maxTokens: maxTokens}
}

// Fix returns a new script for description given the error output of the
// previous attempt.
func (f *Fixer) Fix(ctx context.Context, description, diagnostic string) (string, error) {
	f.logger.Info("requesting fixed script", "max_tokens", f.maxTokens)
	prompt := fmt.Sprintf("The following script caused an error: %s. Fix the script that should do the following: %s", diagnostic, description)
	reply, err := complete(ctx, f.model, prompt, f.maxTokens)
	if err != nil {
		return "", err
	}
	return f.extractor.Extract(reply), nil
}

func complete(ctx context.Context, m Model, prompt string, maxTokens int) (string, error) {
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(persona),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}
	r, err := m.GenerateContent(ctx, messages, llms.WithMaxTokens(maxTokens))
	if err != nil {
		return "", err
	}
	if r == nil || len(r.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return r.Choices[0].Content, nil
}
