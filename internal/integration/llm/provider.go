package llm

import (
	"fmt"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
)

// Config is the closed provider configuration from spec §4.C.
type Config struct {
	Provider        string // "claude_like" | "vertex_like"
	AnthropicAPIKey string
	AnthropicModel  string
	VertexAPIKey    string
	VertexProjectID string
	VertexLocation  string
	VertexModel     string
}

// Select builds the configured adapter.LLMProvider. Switching providers
// means constructing a new client from scratch, so no cached client
// survives a config change (spec §4.C: "switching providers resets
// cached clients").
func Select(cfg Config) (adapter.LLMProvider, error) {
	switch cfg.Provider {
	case "claude_like":
		return NewClaudeLikeProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case "vertex_like":
		return NewVertexLikeProvider(cfg.VertexAPIKey, cfg.VertexProjectID, cfg.VertexLocation, cfg.VertexModel), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
