package ingestion

import (
	"context"
	"errors"
	"testing"
)

func TestDeterministicNormalize(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"strips store number tail", "WHOLE FOODS #12345", "WHOLE FOODS"},
		{"strips digit runs", "7-ELEVEN 998877", "7-ELEVEN"},
		{"removes noise tokens", "POS DEBIT AMAZON PURCHASE", "AMAZON"},
		{"collapses whitespace", "TRADER   JOES   ", "TRADER JOES"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := deterministicNormalize(c.raw)
			if got != c.want {
				t.Errorf("deterministicNormalize(%q) = %q, want %q", c.raw, got, c.want)
			}
		})
	}
}

func TestNormalizeMerchant_FallsBackToLLMWhenTooShort(t *testing.T) {
	got := normalizeMerchant(context.Background(), "99", &stubLLMProvider{normalizeResult: "NINETY NINE CENTS ONLY"})
	if got != "NINETY NINE CENTS ONLY" {
		t.Errorf("expected LLM fallback result, got %q", got)
	}
}

func TestNormalizeMerchant_KeepsDeterministicResultOnLLMFailure(t *testing.T) {
	got := normalizeMerchant(context.Background(), "99", &stubLLMProvider{normalizeErr: errors.New("provider unavailable")})
	if got != "99" {
		t.Errorf("expected deterministic result preserved on LLM failure, got %q", got)
	}
}

func TestNormalizeMerchant_SkipsLLMWhenDeterministicResultIsLongEnough(t *testing.T) {
	got := normalizeMerchant(context.Background(), "STARBUCKS", &stubLLMProvider{normalizeResult: "SHOULD NOT BE USED"})
	if got != "STARBUCKS" {
		t.Errorf("expected deterministic result, got %q", got)
	}
}
