// Package aggregator computes the Monthly Aggregator's single-pass
// reduction over an owner's transactions for a given month, and the
// two-month SpendingTrend composition built on top of it.
package aggregator

// UncategorizedID is the stable bucket id substituted for a nil categoryId.
const UncategorizedID = "uncategorized"

// UncategorizedName is the display name for the uncategorized bucket.
const UncategorizedName = "Uncategorized"

// UncategorizedColor is the display color for the uncategorized bucket.
const UncategorizedColor = "#6B7280"

// UncategorizedIcon is the display icon for the uncategorized bucket.
const UncategorizedIcon = "question-mark"

// CategoryBreakdown is one expense bucket in a MonthlyOverview.
type CategoryBreakdown struct {
	CategoryID       string  `json:"categoryId"`
	CategoryName     string  `json:"categoryName"`
	CategoryColor    string  `json:"categoryColor"`
	CategoryIcon     string  `json:"categoryIcon"`
	AmountCents      int64   `json:"amountCents"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transactionCount"`
}

// MerchantBreakdown is one of the top-10 expense merchants in a MonthlyOverview.
type MerchantBreakdown struct {
	Merchant         string `json:"merchant"`
	AmountCents      int64  `json:"amountCents"`
	TransactionCount int    `json:"transactionCount"`
}

// DaySummary is one zero-filled day in a MonthlyOverview's daily series.
type DaySummary struct {
	Date          string `json:"date"`
	IncomeCents   int64  `json:"incomeCents"`
	ExpensesCents int64  `json:"expensesCents"`
	NetCents      int64  `json:"netCents"`
	Count         int    `json:"count"`
}

// MonthlyOverview is the single-pass reduction result for one month.
type MonthlyOverview struct {
	Month               string              `json:"month"`
	TotalIncomeCents    int64               `json:"totalIncomeCents"`
	TotalExpensesCents  int64               `json:"totalExpensesCents"`
	CategorizedCount    int                 `json:"categorizedCount"`
	UncategorizedCount  int                 `json:"uncategorizedCount"`
	ManualOverrideCount int                 `json:"manualOverrideCount"`
	Categories          []CategoryBreakdown `json:"categories"`
	TopMerchants        []MerchantBreakdown `json:"topMerchants"`
	DailySeries         []DaySummary        `json:"dailySeries"`
}

// AccountBreakdown is one account's expense total for a month.
type AccountBreakdown struct {
	AccountID        string  `json:"accountId"`
	AccountName      string  `json:"accountName"`
	AmountCents      int64   `json:"amountCents"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transactionCount"`
}

// SpendingTrend composes two MonthlyOverviews with percent-changes; a nil
// field means the prior month's base was zero (division is undefined).
type SpendingTrend struct {
	Current               MonthlyOverview `json:"current"`
	Previous              MonthlyOverview `json:"previous"`
	IncomeChangePercent   *float64        `json:"incomeChangePercent"`
	ExpensesChangePercent *float64        `json:"expensesChangePercent"`
}
