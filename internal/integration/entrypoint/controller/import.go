// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
	"github.com/finance-tracker/ledgerd/internal/infra/jobs"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/ledgerd/internal/integration/entrypoint/middleware"
)

// ImportController handles document upload and import status endpoints.
type ImportController struct {
	jobsClient *jobs.Client
	importRepo adapter.ImportRepository
}

// NewImportController creates a new ImportController instance.
func NewImportController(jobsClient *jobs.Client, importRepo adapter.ImportRepository) *ImportController {
	return &ImportController{jobsClient: jobsClient, importRepo: importRepo}
}

// Upload handles POST /api/v1/imports/upload. The document is durably
// queued for the ingestion pipeline (internal/infra/jobs) rather than
// parsed inline, so a slow PDF/image parse never blocks the request.
func (ctl *ImportController) Upload(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)
	ownerEmail, _ := middleware.OwnerEmailFromContext(c)

	var req dto.UploadImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidRequest, err.Error()))
		return
	}

	content, err := base64.StdEncoding.DecodeString(req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidRequest, "content must be base64-encoded"))
		return
	}

	_, err = ctl.jobsClient.InsertIngestJob(c.Request.Context(), jobs.ImportJobArgs{
		OwnerID:    ownerID,
		OwnerEmail: ownerEmail,
		AccountID:  req.AccountID,
		Filename:   req.Filename,
		Content:    content,
		MimeType:   req.MimeType,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail(dto.CodeInternalError, "failed to queue import"))
		return
	}

	c.JSON(http.StatusAccepted, dto.Ok(gin.H{"queued": true, "filename": req.Filename}))
}

// List handles GET /api/v1/imports.
func (ctl *ImportController) List(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)

	imports, err := ctl.importRepo.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.ToImportResponses(imports)))
}

// Get handles GET /api/v1/imports/{id}.
func (ctl *ImportController) Get(c *gin.Context) {
	ownerID, _ := middleware.OwnerIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(dto.CodeInvalidParameter, "invalid import id"))
		return
	}

	imp, err := ctl.importRepo.FindByID(c.Request.Context(), ownerID, id)
	if err != nil {
		status, resp := dto.RespondError(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusOK, dto.Ok(dto.ToImportResponse(imp)))
}
