package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/examly/examly-backend/internal/model"
	"github.com/examly/examly-backend/internal/repository"
	"github.com/examly/examly-backend/internal/response"
	"github.com/examly/examly-backend/internal/service"
	"github.com/examly/examly-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ExamHandler handles the examiner-facing exam management endpoints.
type ExamHandler struct {
	examService    *service.ExamService
	submissionRepo *repository.SubmissionRepository
	log            zerolog.Logger
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService, submissionRepo *repository.SubmissionRepository, log zerolog.Logger) *ExamHandler {
	return &ExamHandler{
		examService:    examService,
		submissionRepo: submissionRepo,
		log:            log.With().Str("component", "exam_handler").Logger(),
	}
}

// List godoc
// GET /api/v1/admin/exams?page=1&per_page=10
// Returns exams newest-first with pagination.
func (h *ExamHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	exams, pagination, err := h.examService.List(c.Request.Context(), page, perPage)
	if err != nil {
		h.log.Error().Err(err).Msg("List exams failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"exams": exams}, pagination)
}

// Get godoc
// GET /api/v1/admin/exams/:exam_id
// Returns one exam with its full question set, correct answers included.
func (h *ExamHandler) Get(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	exam, err := h.examService.GetByID(c.Request.Context(), examID)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
			return
		}
		h.log.Error().Err(err).Str("exam_id", examID.String()).Msg("Get exam failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// Create godoc
// POST /api/v1/admin/exams
// Creates an exam directly from a question list, without a draft.
func (h *ExamHandler) Create(c *gin.Context) {
	var req model.CreateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	status := model.ExamStatus(req.Status)
	if status == "" {
		status = model.ExamStatusActive
	}

	exam, err := h.examService.Create(c.Request.Context(), req.Title, status, req.Questions)
	if err != nil {
		if errors.Is(err, service.ErrNoQuestions) {
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrNoQuestions)
			return
		}
		h.log.Error().Err(err).Msg("Create exam failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"exam": exam})
}

// Update godoc
// PUT /api/v1/admin/exams/:exam_id
// Updates an exam's title and/or status. Status changes re-warm or drop the
// exam's cache.
func (h *ExamHandler) Update(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	exam, err := h.examService.Update(c.Request.Context(), examID, req.Title, model.ExamStatus(req.Status))
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
			return
		}
		h.log.Error().Err(err).Str("exam_id", examID.String()).Msg("Update exam failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": exam})
}

// Delete godoc
// DELETE /api/v1/admin/exams/:exam_id
// Deletes an exam, its questions, and its cached state.
func (h *ExamHandler) Delete(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.examService.Delete(c.Request.Context(), examID); err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
			return
		}
		h.log.Error().Err(err).Str("exam_id", examID.String()).Msg("Delete exam failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Submissions godoc
// GET /api/v1/admin/exams/:exam_id/submissions
// Lists submissions for an exam, newest first.
func (h *ExamHandler) Submissions(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.examService.GetByID(c.Request.Context(), examID); err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	submissions, err := h.submissionRepo.ListByExam(c.Request.Context(), examID)
	if err != nil {
		h.log.Error().Err(err).Str("exam_id", examID.String()).Msg("List submissions failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if submissions == nil {
		submissions = []model.Submission{}
	}

	response.Success(c, http.StatusOK, gin.H{"submissions": submissions})
}

// ExportCSV godoc
// GET /api/v1/admin/exams/:exam_id/submissions/export
// Streams the exam's submissions as a CSV download. The header row is
// written even when there are no submissions.
func (h *ExamHandler) ExportCSV(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.examService.GetByID(c.Request.Context(), examID); err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	submissions, err := h.submissionRepo.ListByExam(c.Request.Context(), examID)
	if err != nil {
		h.log.Error().Err(err).Str("exam_id", examID.String()).Msg("Export submissions failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	filename := service.CSVFilename(time.Now())
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := service.WriteCSV(c.Writer, submissions); err != nil {
		h.log.Error().Err(err).Str("exam_id", examID.String()).Msg("CSV write failed")
	}
}
