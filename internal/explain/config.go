package explain

import "time"

// Config holds explanation generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// Timeout bounds one explanation including provider retries.
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for short topic explanations.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.3,
		Timeout:     20 * time.Second,
	}
}
