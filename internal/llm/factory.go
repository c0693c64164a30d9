package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/kubestronaut/internal/logging"
)

// NewProvider builds the configured provider. Calls flow
// caller → retry → recording → SDK, so every attempt is recorded.
func NewProvider(ctx context.Context, cfg Config, recorder EventRecorder, log *logging.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	recorded := WithRecording(base, cfg.Provider, recorder, log)
	return WithRetry(recorded, cfg.Retry), nil
}

// resolveModel maps a short alias to a provider model ID; unknown names pass
// through unchanged.
func resolveModel(name string, aliases map[string]string) string {
	if id, ok := aliases[name]; ok {
		return id
	}
	return name
}
