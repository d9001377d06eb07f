// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/split"
	"github.com/finance-tracker/ledgerd/internal/application/usecase/transaction"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction read/update/split endpoints.
type TransactionController struct {
	listUC  *transaction.ListUseCase
	getUC   *transaction.GetUseCase
	patchUC *transaction.PatchUseCase
	splitUC *split.UseCase
}

// NewTransactionController creates a new TransactionController instance.
func NewTransactionController(listUC *transaction.ListUseCase, getUC *transaction.GetUseCase, patchUC *transaction.PatchUseCase, splitUC *split.UseCase) *TransactionController {
	return &TransactionController{listUC: listUC, getUC: getUC, patchUC: patchUC, splitUC: splitUC}
}

// List handles GET /api/v1/transactions.
func (ctl *TransactionController) List(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)

	filter := adapter.TransactionFilter{OwnerID: ownerID}

	if month := c.Query("month"); month != "" {
		start, err := time.Parse("2006-01", month)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidParameter, "invalid month format, expected YYYY-MM"))
			return
		}
		s := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		e := s.AddDate(0, 1, 0).Add(-time.Nanosecond)
		filter.StartDate = &s
		filter.EndDate = &e
	} else {
		if v := c.Query("startDate"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				filter.StartDate = &t
			}
		}
		if v := c.Query("endDate"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				filter.EndDate = &t
			}
		}
	}

	if v := c.Query("categoryId"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.CategoryID = &id
		}
	}
	if v := c.Query("accountId"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			filter.AccountID = &id
		}
	}
	filter.Merchant = c.Query("merchant")
	if v := c.Query("minAmount"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MinAmount = &n
		}
	}
	if v := c.Query("maxAmount"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MaxAmount = &n
		}
	}
	if v := c.Query("tags"); v != "" {
		filter.Tags = strings.Split(v, ",")
	}
	filter.Uncategorized = c.Query("uncategorized") == "true"

	page := adapter.PageParams{Cursor: c.Query("cursor")}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page.Limit = n
		}
	}

	result, err := ctl.listUC.Execute(c.Request.Context(), filter, page)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	hasMore := result.HasMore
	c.JSON(http.StatusOK, dto.OkWithMeta(dto.ToTransactionResponses(result.Transactions), &dto.Meta{
		Pagination: &dto.Pagination{Cursor: result.NextCursor, HasMore: hasMore},
	}))
}

// Get handles GET /api/v1/transactions/{id}.
func (ctl *TransactionController) Get(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidParameter, "invalid transaction id"))
		return
	}

	tx, err := ctl.getUC.Execute(c.Request.Context(), ownerID, id)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.ToTransactionResponse(tx)))
}

// Patch handles PATCH /api/v1/transactions/{id}.
func (ctl *TransactionController) Patch(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidParameter, "invalid transaction id"))
		return
	}

	var req dto.PatchTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidRequest, err.Error()))
		return
	}

	result, err := ctl.patchUC.Execute(c.Request.Context(), ownerID, id, transaction.PatchInput{
		CategoryID: req.CategoryID,
		Notes:      req.Notes,
		Tags:       req.Tags,
	})
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.PatchTransactionResponse{
		Transaction:    dto.ToTransactionResponse(result.Transaction),
		RuleSuggestion: dto.ToRuleSuggestionResponse(result.Suggestion),
	}))
}

// Split handles POST /api/v1/transactions/{id}/split.
func (ctl *TransactionController) Split(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidParameter, "invalid transaction id"))
		return
	}

	var req dto.SplitTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidRequest, err.Error()))
		return
	}

	children := make([]split.ChildInput, len(req.Splits))
	for i, s := range req.Splits {
		children[i] = split.ChildInput{Amount: s.Amount, CategoryID: s.CategoryID, Notes: s.Notes}
	}

	result, err := ctl.splitUC.Split(c.Request.Context(), ownerID, id, children)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.ToTransactionResponses(result)))
}

// Unsplit handles POST /api/v1/transactions/{id}/unsplit.
func (ctl *TransactionController) Unsplit(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidParameter, "invalid transaction id"))
		return
	}

	removed, err := ctl.splitUC.Unsplit(c.Request.Context(), ownerID, id)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(gin.H{"removed": removed}))
}

// Splits handles GET /api/v1/transactions/{id}/splits.
func (ctl *TransactionController) Splits(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidParameter, "invalid transaction id"))
		return
	}

	children, err := ctl.splitUC.Children(c.Request.Context(), ownerID, id)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.ToTransactionResponses(children)))
}
