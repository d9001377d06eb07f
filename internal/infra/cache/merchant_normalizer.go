package cache

import (
	"context"
	"time"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
)

// MerchantNormalizationTTL bounds how long a cached LLM normalization
// result is trusted before institution-specific formatting drift forces
// a re-query (spec §4.C).
const MerchantNormalizationTTL = 30 * 24 * time.Hour

// CachingLLMProvider decorates an adapter.LLMProvider, memoizing
// NormalizeMerchant results in a badger-backed Store keyed by the raw
// merchant string. Every other method delegates straight through.
type CachingLLMProvider struct {
	adapter.LLMProvider
	store *Store
}

// NewCachingLLMProvider wraps provider with merchant-normalization
// memoization backed by store.
func NewCachingLLMProvider(provider adapter.LLMProvider, store *Store) *CachingLLMProvider {
	return &CachingLLMProvider{LLMProvider: provider, store: store}
}

// NormalizeMerchant returns a cached normalization if one has not
// expired, otherwise delegates to the wrapped provider and caches the
// result.
func (c *CachingLLMProvider) NormalizeMerchant(ctx context.Context, rawMerchant string) (string, error) {
	if cached, ok := c.store.Get(normalizeCacheKey(rawMerchant)); ok {
		return cached, nil
	}

	normalized, err := c.LLMProvider.NormalizeMerchant(ctx, rawMerchant)
	if err != nil {
		return "", err
	}

	_ = c.store.SetWithTTL(normalizeCacheKey(rawMerchant), normalized, MerchantNormalizationTTL)
	return normalized, nil
}

func normalizeCacheKey(rawMerchant string) string {
	return "merchant_normalize:" + rawMerchant
}
