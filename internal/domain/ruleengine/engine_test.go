package ruleengine

import (
	"testing"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
)

func newTx(accountID uuid.UUID, amount int64, description, merchantNormalized string) *entity.Transaction {
	return &entity.Transaction{
		ID:                 uuid.New(),
		AccountID:          accountID,
		Amount:             amount,
		Description:        description,
		MerchantNormalized: merchantNormalized,
	}
}

func newRule(priority int, conditions entity.RuleConditions, categoryID uuid.UUID) *entity.Rule {
	r := entity.NewRule("owner-1", "test rule", priority, conditions, entity.RuleAction{CategoryID: categoryID}, entity.RuleSourceUser)
	return r
}

func TestCategorize_MerchantExact(t *testing.T) {
	accountID := uuid.New()
	categoryID := uuid.New()
	tx := newTx(accountID, -500, "coffee", "STARBUCKS")

	rule := newRule(500, entity.RuleConditions{MerchantExact: "starbucks"}, categoryID)

	result := Categorize(tx, []*entity.Rule{rule})

	if !result.Matched {
		t.Fatalf("expected a match")
	}
	if *result.CategoryID != categoryID {
		t.Errorf("expected categoryID %s, got %s", categoryID, *result.CategoryID)
	}
	if result.Explainability.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0, got %v", result.Explainability.Confidence)
	}
	if *result.Explainability.MatchType != entity.MatchTypeExact {
		t.Errorf("expected matchType exact, got %v", *result.Explainability.MatchType)
	}
}

func TestCategorize_PriorityOrdering(t *testing.T) {
	accountID := uuid.New()
	lowPriorityCategory := uuid.New()
	highPriorityCategory := uuid.New()
	tx := newTx(accountID, -500, "", "AMAZON WEB SERVICES")

	low := newRule(100, entity.RuleConditions{MerchantContains: "amazon"}, lowPriorityCategory)
	high := newRule(900, entity.RuleConditions{MerchantContains: "amazon"}, highPriorityCategory)

	result := Categorize(tx, []*entity.Rule{low, high})

	if !result.Matched || *result.CategoryID != highPriorityCategory {
		t.Fatalf("expected the higher priority rule to win")
	}
}

func TestCategorize_TieBreakIsStableByRuleID(t *testing.T) {
	accountID := uuid.New()
	tx := newTx(accountID, -500, "", "TARGET")

	a := newRule(500, entity.RuleConditions{MerchantContains: "target"}, uuid.New())
	b := newRule(500, entity.RuleConditions{MerchantContains: "target"}, uuid.New())

	rules := []*entity.Rule{a, b}
	first := Categorize(tx, rules)
	second := Categorize(tx, rules)

	if !first.Matched || !second.Matched {
		t.Fatalf("expected both calls to match")
	}
	if *first.CategoryID != *second.CategoryID {
		t.Fatalf("expected identical winner across repeated calls with the same input")
	}
}

func TestCategorize_GatesNeverMatchAlone(t *testing.T) {
	accountID := uuid.New()
	tx := newTx(accountID, -500, "no text match here", "UNMATCHED MERCHANT")

	rule := newRule(500, entity.RuleConditions{AccountID: &accountID, AmountMin: int64Ptr(-1000)}, uuid.New())

	result := Categorize(tx, []*entity.Rule{rule})

	if result.Matched {
		t.Fatalf("expected numeric/account-only conditions to never match")
	}
}

func TestCategorize_AccountGateExcludesOtherAccounts(t *testing.T) {
	tx := newTx(uuid.New(), -500, "", "TARGET")
	otherAccount := uuid.New()

	rule := newRule(500, entity.RuleConditions{AccountID: &otherAccount, MerchantContains: "target"}, uuid.New())

	result := Categorize(tx, []*entity.Rule{rule})

	if result.Matched {
		t.Fatalf("expected account gate mismatch to exclude the rule")
	}
}

func TestCategorize_InvalidRegexIsNonFatal(t *testing.T) {
	accountID := uuid.New()
	tx := newTx(accountID, -500, "", "TARGET")

	rule := newRule(500, entity.RuleConditions{MerchantRegex: "(("}, uuid.New())

	result := Categorize(tx, []*entity.Rule{rule})

	if result.Matched {
		t.Fatalf("expected an invalid regex to be treated as non-matching, not fatal")
	}
}

func TestCategorize_DisabledRulesIgnored(t *testing.T) {
	accountID := uuid.New()
	tx := newTx(accountID, -500, "", "TARGET")

	rule := newRule(500, entity.RuleConditions{MerchantContains: "target"}, uuid.New())
	rule.Enabled = false

	result := Categorize(tx, []*entity.Rule{rule})

	if result.Matched {
		t.Fatalf("expected disabled rule to be skipped")
	}
}

func TestCategorize_DescriptionContainsIsLowestConfidence(t *testing.T) {
	accountID := uuid.New()
	categoryID := uuid.New()
	tx := newTx(accountID, -500, "monthly gym membership", "UNKNOWN MERCHANT")

	rule := newRule(500, entity.RuleConditions{DescriptionContains: "gym"}, categoryID)

	result := Categorize(tx, []*entity.Rule{rule})

	if !result.Matched {
		t.Fatalf("expected a match")
	}
	if result.Explainability.Confidence != 0.5 {
		t.Errorf("expected confidence 0.5, got %v", result.Explainability.Confidence)
	}
}

func TestCategorize_FallsThroughToNextTextualConditionOnMiss(t *testing.T) {
	accountID := uuid.New()
	categoryID := uuid.New()
	tx := newTx(accountID, -500, "", "WHOLE FOODS MARKET")

	rule := newRule(500, entity.RuleConditions{
		MerchantExact:    "TRADER JOES",
		MerchantContains: "WHOLE FOODS",
	}, categoryID)

	result := Categorize(tx, []*entity.Rule{rule})

	if !result.Matched {
		t.Fatalf("expected the rule to fall through a failed MerchantExact and match on MerchantContains")
	}
	if *result.Explainability.MatchType != entity.MatchTypeContains {
		t.Errorf("expected matchType contains, got %v", *result.Explainability.MatchType)
	}
}

func int64Ptr(v int64) *int64 { return &v }
