package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/drillbank/drillbank-backend/internal/response"
	"github.com/drillbank/drillbank-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// maxImportBytes caps the uploaded JSON payload at 8 MiB.
const maxImportBytes = 8 << 20

// ImportHandler handles bulk question import and batch management.
type ImportHandler struct {
	questionService *service.QuestionService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(questionService *service.QuestionService) *ImportHandler {
	return &ImportHandler{questionService: questionService}
}

// Import godoc
// POST /api/v1/admin/imports
// Accepts a multipart upload under the "payload" field: a JSON array of
// question objects. Valid rows land in one batch; invalid rows come back
// in the report with per-row reasons.
func (h *ImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("payload")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	report, err := h.questionService.Import(c.Request.Context(), fileHeader.Filename, payload)
	if err != nil {
		if errors.Is(err, service.ErrNotJSONArray) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidImport)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"report": report})
}

// ListBatches godoc
// GET /api/v1/admin/imports
func (h *ImportHandler) ListBatches(c *gin.Context) {
	batches, err := h.questionService.ListBatches(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"batches": batches})
}

// DeleteBatch godoc
// DELETE /api/v1/admin/imports/:id
// Removes the batch and every question it brought in.
func (h *ImportHandler) DeleteBatch(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.questionService.DeleteBatch(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
