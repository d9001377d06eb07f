package ingestion

import (
	"context"
	"regexp"
	"strings"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
)

// noiseTokens are stripped from a merchant string once it has otherwise
// been cleaned, per spec §4.D step 5.
var noiseTokens = []string{"PURCHASE", "PAYMENT", "DEBIT", "CREDIT", "POS", "CHECKCARD"}

var (
	storeNumberTailRegex = regexp.MustCompile(`[#*]\d+\b`)
	digitRunRegex        = regexp.MustCompile(`\d{4,}`)
	whitespaceRunRegex   = regexp.MustCompile(`\s+`)
)

// minNormalizedMerchantLength is the threshold below which the
// deterministic normalizer defers to the LLM fallback (spec §4.D step 5).
const minNormalizedMerchantLength = 3

// normalizeMerchant applies the deterministic normalizer and falls back to
// llm.NormalizeMerchant when the result is too short to be useful. A
// nil llm (or an LLM failure) keeps the deterministic result as-is.
func normalizeMerchant(ctx context.Context, raw string, llm adapter.LLMProvider) string {
	normalized := deterministicNormalize(raw)
	if len(normalized) >= minNormalizedMerchantLength || llm == nil {
		return normalized
	}

	fallback, err := llm.NormalizeMerchant(ctx, raw)
	if err != nil || fallback == "" {
		return normalized
	}
	return fallback
}

func deterministicNormalize(raw string) string {
	s := strings.ToUpper(raw)
	s = storeNumberTailRegex.ReplaceAllString(s, "")
	s = digitRunRegex.ReplaceAllString(s, "")
	for _, tok := range noiseTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = whitespaceRunRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
