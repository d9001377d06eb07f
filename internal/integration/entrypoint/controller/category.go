// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledgerd/internal/application/usecase/category"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/middleware"
)

// CategoryController handles the read-only category listing endpoint.
type CategoryController struct {
	listUC *category.ListUseCase
}

// NewCategoryController creates a new CategoryController instance.
func NewCategoryController(listUC *category.ListUseCase) *CategoryController {
	return &CategoryController{listUC: listUC}
}

// List handles GET /api/v1/categories.
func (ctl *CategoryController) List(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)

	categories, err := ctl.listUC.Execute(c.Request.Context(), ownerID)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.ToCategoryResponses(categories)))
}
