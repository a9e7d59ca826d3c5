package main

import (
	"fmt"

	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/acrmp/autoscript/config"
	"github.com/acrmp/autoscript/script"
)

func newModel(c config.Config) (script.Model, error) {
	switch c.Provider {
	case config.ProviderAzure:
		m, err := openai.New(
			openai.WithAPIType(openai.APITypeAzure),
			openai.WithBaseURL(c.Endpoint),
			openai.WithAPIVersion(c.APIVersion),
			openai.WithToken(c.APIKey),
			openai.WithModel(c.ModelName()),
		)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.ProviderOpenAI:
		opts := []openai.Option{
			openai.WithToken(c.APIKey),
			openai.WithModel(c.ModelName()),
		}
		if c.Endpoint != "" {
			opts = append(opts, openai.WithBaseURL(c.Endpoint))
		}
		m, err := openai.New(opts...)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.ProviderAnthropic:
		m, err := anthropic.New(
			anthropic.WithToken(c.APIKey),
			anthropic.WithModel(c.ModelName()),
		)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", c.Provider)
	}
}
