// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledgerd/internal/application/usecase/aggregator"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/middleware"
)

// AnalyticsController handles the read-only analytics endpoints backed by
// the Monthly Aggregator.
type AnalyticsController struct {
	overviewUC         *aggregator.MonthlyOverviewUseCase
	trendUC            *aggregator.SpendingTrendUseCase
	accountBreakdownUC *aggregator.AccountBreakdownUseCase
}

// NewAnalyticsController creates a new AnalyticsController instance.
func NewAnalyticsController(overviewUC *aggregator.MonthlyOverviewUseCase, trendUC *aggregator.SpendingTrendUseCase, accountBreakdownUC *aggregator.AccountBreakdownUseCase) *AnalyticsController {
	return &AnalyticsController{overviewUC: overviewUC, trendUC: trendUC, accountBreakdownUC: accountBreakdownUC}
}

func currentMonth() string {
	return time.Now().UTC().Format("2006-01")
}

func monthParam(c *gin.Context) string {
	if m := c.Query("month"); m != "" {
		return m
	}
	return currentMonth()
}

// Monthly handles GET /api/v1/analytics/monthly.
func (ctl *AnalyticsController) Monthly(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)
	month := monthParam(c)

	overview, err := ctl.overviewUC.Execute(c.Request.Context(), ownerID, month)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.MonthlyOverviewResponse{MonthlyOverview: *overview}))
}

// Trend handles GET /api/v1/analytics/trend.
func (ctl *AnalyticsController) Trend(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)
	month := monthParam(c)

	trend, err := ctl.trendUC.Execute(c.Request.Context(), ownerID, month)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.SpendingTrendResponse{SpendingTrend: *trend}))
}

// Categories handles GET /api/v1/analytics/categories.
func (ctl *AnalyticsController) Categories(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)
	month := monthParam(c)

	overview, err := ctl.overviewUC.Execute(c.Request.Context(), ownerID, month)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.CategoryBreakdownResponse{Month: month, Categories: overview.Categories}))
}

// Accounts handles GET /api/v1/analytics/accounts.
func (ctl *AnalyticsController) Accounts(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)
	month := monthParam(c)

	breakdown, err := ctl.accountBreakdownUC.Execute(c.Request.Context(), ownerID, month)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.AccountBreakdownResponse{Month: month, Accounts: breakdown}))
}
