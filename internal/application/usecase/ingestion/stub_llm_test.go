package ingestion

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
)

// stubLLMProvider is a minimal adapter.LLMProvider double for ingestion
// tests that only exercise the merchant-normalization fallback path.
type stubLLMProvider struct {
	normalizeResult string
	normalizeErr    error
}

func (s *stubLLMProvider) ClassifyTransaction(ctx context.Context, input adapter.ClassifyInput, categories []adapter.LLMCategory) adapter.ClassifyResult {
	return adapter.ClassifyResult{}
}

func (s *stubLLMProvider) ClassifyBatch(ctx context.Context, inputs []adapter.ClassifyInput, categories []adapter.LLMCategory) map[uuid.UUID]adapter.ClassifyResult {
	return map[uuid.UUID]adapter.ClassifyResult{}
}

func (s *stubLLMProvider) ParseDocument(ctx context.Context, content []byte, kind adapter.DocumentKind, mimeType string) (*adapter.ParseResult, error) {
	return &adapter.ParseResult{}, nil
}

func (s *stubLLMProvider) NormalizeMerchant(ctx context.Context, rawMerchant string) (string, error) {
	if s.normalizeErr != nil {
		return "", s.normalizeErr
	}
	return s.normalizeResult, nil
}
