// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/finance-tracker/ledgerd/internal/application/usecase/aggregator"

// MonthlyOverviewResponse is the response body for GET /analytics/monthly.
type MonthlyOverviewResponse struct {
	aggregator.MonthlyOverview
}

// SpendingTrendResponse is the response body for GET /analytics/trend.
type SpendingTrendResponse struct {
	aggregator.SpendingTrend
}

// CategoryBreakdownResponse is the response body for GET /analytics/categories.
type CategoryBreakdownResponse struct {
	Month      string                         `json:"month"`
	Categories []aggregator.CategoryBreakdown `json:"categories"`
}

// AccountBreakdownResponse is the response body for GET /analytics/accounts.
type AccountBreakdownResponse struct {
	Month    string                        `json:"month"`
	Accounts []aggregator.AccountBreakdown `json:"accounts"`
}
