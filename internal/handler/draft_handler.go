package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/examly/examly-backend/internal/editor"
	"github.com/examly/examly-backend/internal/llm"
	"github.com/examly/examly-backend/internal/model"
	"github.com/examly/examly-backend/internal/response"
	"github.com/examly/examly-backend/internal/service"
	"github.com/examly/examly-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DraftHandler handles the upload → extract → review → publish flow.
type DraftHandler struct {
	authoringService *service.AuthoringService
	log              zerolog.Logger
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(authoringService *service.AuthoringService, log zerolog.Logger) *DraftHandler {
	return &DraftHandler{
		authoringService: authoringService,
		log:              log.With().Str("component", "draft_handler").Logger(),
	}
}

// Upload godoc
// POST /api/v1/admin/drafts (multipart, field "file")
// Validates the PDF, runs AI extraction, and returns the created draft.
func (h *DraftHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	if err := h.authoringService.ValidateUpload(fileHeader.Header.Get("Content-Type"), fileHeader.Size); err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.FailWithMessage(c, http.StatusUnsupportedMediaType, response.ErrUnsupportedFile, err.Error())
		case errors.Is(err, service.ErrFileTooLarge):
			response.FailWithMessage(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge, err.Error())
		default:
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidPayload)
		}
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	defer file.Close()

	pdf, err := io.ReadAll(file)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	draft, err := h.authoringService.CreateDraft(c.Request.Context(), fileHeader.Filename, pdf)
	if err != nil {
		if errors.Is(err, llm.ErrNoQuestions) {
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrNoExtracted)
			return
		}
		h.log.Error().Err(err).Str("file", fileHeader.Filename).Msg("Extraction failed")
		response.FailWithMessage(c, http.StatusBadGateway, response.ErrExtraction, err.Error())
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"draft": draft})
}

// Get godoc
// GET /api/v1/admin/drafts/:draft_id
func (h *DraftHandler) Get(c *gin.Context) {
	draft, err := h.authoringService.GetDraft(c.Request.Context(), c.Param("draft_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": draft})
}

// Cancel godoc
// DELETE /api/v1/admin/drafts/:draft_id
// Discards the draft. Nothing was persisted, so cancel is a pure delete.
func (h *DraftHandler) Cancel(c *gin.Context) {
	if err := h.authoringService.DeleteDraft(c.Request.Context(), c.Param("draft_id")); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// SetTitle godoc
// PUT /api/v1/admin/drafts/:draft_id/title
func (h *DraftHandler) SetTitle(c *gin.Context) {
	var req model.UpdateDraftTitleRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	draft, err := h.authoringService.SetTitle(c.Request.Context(), c.Param("draft_id"), req.Title)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": draft})
}

// EditQuestionText godoc
// PUT /api/v1/admin/drafts/:draft_id/questions/:index/text
func (h *DraftHandler) EditQuestionText(c *gin.Context) {
	index, ok := h.questionIndex(c)
	if !ok {
		return
	}

	var req model.EditQuestionTextRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	draft, err := h.authoringService.SetQuestionText(c.Request.Context(), c.Param("draft_id"), index, req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": draft})
}

// EditOptionText godoc
// PUT /api/v1/admin/drafts/:draft_id/questions/:index/options/:option_id/text
func (h *DraftHandler) EditOptionText(c *gin.Context) {
	index, ok := h.questionIndex(c)
	if !ok {
		return
	}

	var req model.EditOptionTextRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	draft, err := h.authoringService.SetOptionText(c.Request.Context(), c.Param("draft_id"), index, c.Param("option_id"), req.Text)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": draft})
}

// AddOption godoc
// POST /api/v1/admin/drafts/:draft_id/questions/:index/options
// Appends a placeholder option. Fails once the question holds the maximum.
func (h *DraftHandler) AddOption(c *gin.Context) {
	index, ok := h.questionIndex(c)
	if !ok {
		return
	}

	draft, err := h.authoringService.AddOption(c.Request.Context(), c.Param("draft_id"), index)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": draft})
}

// RemoveOption godoc
// DELETE /api/v1/admin/drafts/:draft_id/questions/:index/options/:option_id
// Removes an option. Fails at the minimum; removing the correct option
// clears the question's correct designation.
func (h *DraftHandler) RemoveOption(c *gin.Context) {
	index, ok := h.questionIndex(c)
	if !ok {
		return
	}

	draft, err := h.authoringService.RemoveOption(c.Request.Context(), c.Param("draft_id"), index, c.Param("option_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": draft})
}

// SetCorrectOption godoc
// PUT /api/v1/admin/drafts/:draft_id/questions/:index/correct
func (h *DraftHandler) SetCorrectOption(c *gin.Context) {
	index, ok := h.questionIndex(c)
	if !ok {
		return
	}

	var req model.SetCorrectOptionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	draft, err := h.authoringService.SetCorrectOption(c.Request.Context(), c.Param("draft_id"), index, req.OptionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"draft": draft})
}

// Publish godoc
// POST /api/v1/admin/drafts/:draft_id/publish
// Converts the draft into a live exam and discards the draft. A failed
// publish leaves the draft untouched.
func (h *DraftHandler) Publish(c *gin.Context) {
	exam, err := h.authoringService.Publish(c.Request.Context(), c.Param("draft_id"))
	if err != nil {
		if errors.Is(err, service.ErrDraftNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrDraftNotFound)
			return
		}
		h.log.Error().Err(err).Str("draft_id", c.Param("draft_id")).Msg("Publish failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrPublishFailed)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// questionIndex parses the :index path param. Writes the error response
// itself when the param is malformed.
func (h *DraftHandler) questionIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return index, true
}

// respondError maps draft/editor errors to HTTP responses.
func (h *DraftHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrDraftNotFound)
	case errors.Is(err, editor.ErrQuestionIndex), errors.Is(err, editor.ErrOptionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, editor.ErrOptionLimit):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrOptionLimit)
	case errors.Is(err, editor.ErrOptionFloor):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrOptionFloor)
	default:
		h.log.Error().Err(err).Msg("Draft operation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
