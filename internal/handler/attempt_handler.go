package handler

import (
	"errors"
	"net/http"

	"github.com/examly/examly-backend/internal/model"
	"github.com/examly/examly-backend/internal/response"
	"github.com/examly/examly-backend/internal/service"
	"github.com/examly/examly-backend/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AttemptHandler handles the student-facing exam flow. No authentication:
// students reach these endpoints through the exam's shareable URL and
// identify themselves by name and student id.
type AttemptHandler struct {
	examService    *service.ExamService
	attemptService *service.AttemptService
	log            zerolog.Logger
}

// NewAttemptHandler creates a new AttemptHandler.
func NewAttemptHandler(examService *service.ExamService, attemptService *service.AttemptService, log zerolog.Logger) *AttemptHandler {
	return &AttemptHandler{
		examService:    examService,
		attemptService: attemptService,
		log:            log.With().Str("component", "attempt_handler").Logger(),
	}
}

// Paper godoc
// GET /api/v1/exams/:exam_id/paper
// Returns the student-facing exam payload. Correct answers are stripped
// before the payload is ever cached, so they cannot leak here.
func (h *AttemptHandler) Paper(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	payload, err := h.examService.GetPayload(c.Request.Context(), examID)
	if err != nil {
		if errors.Is(err, service.ErrExamNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
			return
		}
		h.log.Error().Err(err).Str("exam_id", examID.String()).Msg("Get paper failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"exam": payload})
}

// Start godoc
// POST /api/v1/exams/:exam_id/attempts
// Checks the student's identity and opens an attempt in the instructions
// state.
func (h *AttemptHandler) Start(c *gin.Context) {
	examID, err := uuid.Parse(c.Param("exam_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.StartAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.attemptService.Start(c.Request.Context(), examID, req.StudentName, req.StudentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIdentityRequired):
			response.Fail(c, http.StatusBadRequest, response.ErrStudentIdentity)
		case errors.Is(err, service.ErrExamNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
		default:
			h.log.Error().Err(err).Str("exam_id", examID.String()).Msg("Start attempt failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"attempt": view})
}

// Get godoc
// GET /api/v1/attempts/:attempt_id
// Resumes an attempt: state, position, and recorded answers.
func (h *AttemptHandler) Get(c *gin.Context) {
	view, err := h.attemptService.Get(c.Request.Context(), c.Param("attempt_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attempt": view})
}

// Begin godoc
// POST /api/v1/attempts/:attempt_id/begin
// Moves the attempt from instructions into the exam.
func (h *AttemptHandler) Begin(c *gin.Context) {
	view, err := h.attemptService.Begin(c.Request.Context(), c.Param("attempt_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attempt": view})
}

// Answer godoc
// PUT /api/v1/attempts/:attempt_id/answers
// Records the chosen option for one question, overwriting any prior choice.
func (h *AttemptHandler) Answer(c *gin.Context) {
	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.attemptService.Answer(c.Request.Context(), c.Param("attempt_id"), req.QuestionID, req.OptionID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attempt": view})
}

// Position godoc
// PUT /api/v1/attempts/:attempt_id/position
// Moves the question cursor; the index is clamped to the valid range.
func (h *AttemptHandler) Position(c *gin.Context) {
	var req model.PositionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	view, err := h.attemptService.SetPosition(c.Request.Context(), c.Param("attempt_id"), req.Index)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"attempt": view})
}

// Submit godoc
// POST /api/v1/attempts/:attempt_id/submit
// Scores and stores the attempt, then clears the session. Unanswered
// questions score zero; they never block submission.
func (h *AttemptHandler) Submit(c *gin.Context) {
	submission, err := h.attemptService.Submit(c.Request.Context(), c.Param("attempt_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttemptNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrAttemptNotFound)
		case errors.Is(err, service.ErrExamNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
		default:
			h.log.Error().Err(err).Str("attempt_id", c.Param("attempt_id")).Msg("Submit failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrSubmitFailed)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"submission": submission})
}

// respondError maps attempt errors to HTTP responses.
func (h *AttemptHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttemptNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrAttemptNotFound)
	case errors.Is(err, service.ErrExamNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrExamNotFound)
	case errors.Is(err, service.ErrUnknownQuestion), errors.Is(err, service.ErrUnknownOption):
		response.FailWithMessage(c, http.StatusUnprocessableEntity, response.ErrUnknownOption, err.Error())
	default:
		h.log.Error().Err(err).Msg("Attempt operation failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
