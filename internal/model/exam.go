package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamStatus enumerates the possible states of an exam.
type ExamStatus string

const (
	ExamStatusActive ExamStatus = "active"
	ExamStatusDraft  ExamStatus = "draft"
)

// Exam represents a published exam entity. ID is assigned by the database at
// creation and immutable afterwards. Submissions is a monotonically
// non-decreasing counter mutated only server-side as a side effect of
// accepted submissions.
type Exam struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Status      ExamStatus `json:"status"`
	URL         string     `json:"url"`
	Submissions int        `json:"submissions"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Questions   []Question `json:"questions,omitempty"`
}

// CreateExamRequest is the payload for creating an exam directly, without
// going through the upload/draft flow. Question and option identifiers may be
// absent; publish assigns them.
type CreateExamRequest struct {
	Title     string          `json:"title" binding:"required,min=1,max=255"`
	Status    string          `json:"status" binding:"omitempty,oneof=active draft"`
	Questions []DraftQuestion `json:"questions" binding:"required,min=1,dive"`
}

// UpdateExamRequest is the payload for updating an existing exam.
type UpdateExamRequest struct {
	Title  string `json:"title" binding:"omitempty,min=1,max=255"`
	Status string `json:"status" binding:"omitempty,oneof=active draft"`
}

// ExamPayload is the Redis-cached, student-facing view of an exam.
// Correct option ids are stripped before caching.
type ExamPayload struct {
	ExamID    uuid.UUID            `json:"exam_id"`
	Title     string               `json:"title"`
	Questions []QuestionForStudent `json:"questions"`
}

// QuestionForStudent is a question without the correct answer designation.
type QuestionForStudent struct {
	ID      uuid.UUID `json:"id"`
	Text    string    `json:"text"`
	Options []Option  `json:"options"`
}
