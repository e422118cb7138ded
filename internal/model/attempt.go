package model

import (
	"time"

	"github.com/google/uuid"
)

// AttemptState enumerates the states of a student's exam attempt.
// Attempts start in "instructions" (identity already checked), move to
// "exam" on begin, and are cleared on successful submission; there is no
// path back to the identity step within one attempt.
type AttemptState string

const (
	AttemptStateInstructions AttemptState = "instructions"
	AttemptStateExam         AttemptState = "exam"
)

// Attempt is a student's in-progress exam session. It is stored in Redis so
// a page reload resumes the attempt instead of forcing re-identification.
type Attempt struct {
	ID          string       `json:"id"`
	ExamID      uuid.UUID    `json:"exam_id"`
	StudentName string       `json:"student_name"`
	StudentID   string       `json:"student_id"`
	State       AttemptState `json:"state"`
	Position    int          `json:"position"`
	StartedAt   time.Time    `json:"started_at"`
}

// AttemptView is the attempt plus derived progress, returned to the client.
type AttemptView struct {
	Attempt
	Answers        map[string]string `json:"answers"`
	TotalQuestions int               `json:"total_questions"`
	AnsweredCount  int               `json:"answered_count"`
	Progress       float64           `json:"progress"`
}

// StartAttemptRequest carries the student's identity. Both fields must be
// non-empty after trimming whitespace.
type StartAttemptRequest struct {
	StudentName string `json:"student_name" binding:"required"`
	StudentID   string `json:"student_id" binding:"required"`
}

// AnswerRequest records the chosen option for one question.
type AnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	OptionID   string `json:"option_id" binding:"required"`
}

// PositionRequest moves the attempt's question cursor. The index is clamped
// server-side to the valid range.
type PositionRequest struct {
	Index int `json:"index"`
}
