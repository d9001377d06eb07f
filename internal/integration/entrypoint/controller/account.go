// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledgerd/internal/application/usecase/account"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/middleware"
)

// AccountController handles account listing and creation endpoints.
type AccountController struct {
	useCase *account.UseCase
}

// NewAccountController creates a new AccountController instance.
func NewAccountController(useCase *account.UseCase) *AccountController {
	return &AccountController{useCase: useCase}
}

// List handles GET /api/v1/accounts.
func (ctl *AccountController) List(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)

	accounts, err := ctl.useCase.List(c.Request.Context(), ownerID)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.ToAccountResponses(accounts)))
}

// Create handles POST /api/v1/accounts.
func (ctl *AccountController) Create(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidRequest, err.Error()))
		return
	}

	a, err := ctl.useCase.Create(c.Request.Context(), account.CreateInput{
		OwnerID:     ownerID,
		Name:        req.Name,
		Type:        entity.AccountType(req.Type),
		Institution: req.Institution,
		LastFour:    req.LastFour,
	})
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusCreated, dto.Ok(dto.ToAccountResponse(a)))
}
