// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/usecase/rule"
	"github.com/finance-tracker/ledgerd/internal/domain/entity"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/middleware"
)

// RuleController handles rule CRUD, reordering, and suggestion endpoints.
type RuleController struct {
	createUC     *rule.CreateUseCase
	updateUC     *rule.UpdateUseCase
	deleteUC     *rule.DeleteUseCase
	listUC       *rule.ListUseCase
	reorderUC    *rule.ReorderUseCase
	suggestionUC *rule.SuggestionUseCase
}

// NewRuleController creates a new RuleController instance.
func NewRuleController(createUC *rule.CreateUseCase, updateUC *rule.UpdateUseCase, deleteUC *rule.DeleteUseCase, listUC *rule.ListUseCase, reorderUC *rule.ReorderUseCase, suggestionUC *rule.SuggestionUseCase) *RuleController {
	return &RuleController{
		createUC:     createUC,
		updateUC:     updateUC,
		deleteUC:     deleteUC,
		listUC:       listUC,
		reorderUC:    reorderUC,
		suggestionUC: suggestionUC,
	}
}

// List handles GET /api/v1/rules.
func (ctl *RuleController) List(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)

	rules, err := ctl.listUC.Execute(c.Request.Context(), ownerID)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.ToRuleResponses(rules)))
}

// Create handles POST /api/v1/rules.
func (ctl *RuleController) Create(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)

	var req dto.CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidRequest, err.Error()))
		return
	}

	r, err := ctl.createUC.Execute(c.Request.Context(), rule.CreateInput{
		OwnerID:    ownerID,
		Name:       req.Name,
		Priority:   req.Priority,
		Conditions: req.Conditions.ToConditions(),
		Action:     req.Action.ToAction(),
	})
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusCreated, dto.Ok(dto.ToRuleResponse(r)))
}

// Update handles PATCH /api/v1/rules/{id}.
func (ctl *RuleController) Update(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidParameter, "invalid rule id"))
		return
	}

	var req dto.UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidRequest, err.Error()))
		return
	}

	r, err := ctl.updateUC.Execute(c.Request.Context(), rule.UpdateInput{
		OwnerID:    ownerID,
		ID:         id,
		Name:       req.Name,
		Enabled:    req.Enabled,
		Priority:   req.Priority,
		Conditions: req.Conditions.ToConditions(),
		Action:     req.Action.ToAction(),
	})
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.ToRuleResponse(r)))
}

// Delete handles DELETE /api/v1/rules/{id}.
func (ctl *RuleController) Delete(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidParameter, "invalid rule id"))
		return
	}

	if err := ctl.deleteUC.Execute(c.Request.Context(), ownerID, id); err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(gin.H{"deleted": true}))
}

// Reorder handles POST /api/v1/rules/reorder.
func (ctl *RuleController) Reorder(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)

	var req dto.ReorderRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidRequest, err.Error()))
		return
	}

	rules, err := ctl.reorderUC.Execute(c.Request.Context(), ownerID, req.RuleIDs)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.ToRuleResponses(rules)))
}

// DismissSuggestion handles POST /api/v1/rules/suggestions/dismiss.
func (ctl *RuleController) DismissSuggestion(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)

	var req dto.DismissSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidRequest, err.Error()))
		return
	}

	if err := ctl.suggestionUC.Dismiss(c.Request.Context(), ownerID, req.Merchant, req.CategoryID); err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(gin.H{"dismissed": true}))
}

// AcceptSuggestion handles POST /api/v1/rules/suggestions/accept.
func (ctl *RuleController) AcceptSuggestion(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)

	var req dto.AcceptSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidRequest, err.Error()))
		return
	}

	suggestion := entity.RuleSuggestion{
		ID:         req.ID,
		Message:    req.Message,
		Name:       req.Name,
		Priority:   req.Priority,
		Conditions: req.Conditions.ToConditions(),
		Action:     req.Action.ToAction(),
	}

	r, err := ctl.suggestionUC.Accept(c.Request.Context(), ownerID, suggestion)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusCreated, dto.Ok(dto.ToRuleResponse(r)))
}
