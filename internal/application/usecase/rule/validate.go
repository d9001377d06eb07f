// Package rule contains rule CRUD, reordering, and suggestion use cases.
package rule

import (
	"regexp"
	"strings"

	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledgerd/internal/domain/error"
)

// redosShapes is the small catalog of catastrophic-backtracking regex
// shapes rejected at rule-create time. It is a denylist, not a general
// ReDoS detector — it catches the common nested-quantifier pattern.
var redosShapes = []string{
	"(.*)+",
	"(.+)+",
	"([^]+)+",
	"(.*)*",
	"(.+)*",
}

// validateConditions enforces the rule invariants shared by create and
// update: at least one condition set, every pattern within its length
// bound, and any regex pattern both ReDoS-safe and compilable.
func validateConditions(c entity.RuleConditions) error {
	if c.IsEmpty() {
		return domainerror.NewRuleError(domainerror.KindValidation, domainerror.ErrCodeZeroConditions, "rule must set at least one condition", domainerror.ErrZeroConditions)
	}

	for _, pattern := range []string{c.MerchantExact, c.MerchantContains, c.MerchantRegex, c.DescriptionContains} {
		if len(pattern) > entity.MaxRulePatternLength {
			return domainerror.NewRuleError(domainerror.KindValidation, domainerror.ErrCodePatternTooLong, "pattern exceeds 200 characters", domainerror.ErrPatternTooLong)
		}
	}

	if c.MerchantRegex == "" {
		return nil
	}
	for _, shape := range redosShapes {
		if strings.Contains(c.MerchantRegex, shape) {
			return domainerror.NewRuleError(domainerror.KindValidation, domainerror.ErrCodeUnsafeRegexPattern, "regex pattern is rejected as a ReDoS risk", domainerror.ErrUnsafeRegexPattern)
		}
	}
	if _, err := regexp.Compile("(?i)" + c.MerchantRegex); err != nil {
		return domainerror.NewRuleError(domainerror.KindValidation, domainerror.ErrCodeInvalidRegexPattern, "regex pattern does not compile", domainerror.ErrInvalidRegexPattern)
	}
	return nil
}
