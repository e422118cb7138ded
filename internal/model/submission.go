package model

import (
	"time"

	"github.com/google/uuid"
)

// Submission is a scored exam attempt. Created exactly once per completed
// attempt and never mutated afterwards. Score and TotalQuestions are derived
// from the authoritative question set at submit time, never taken from the
// client.
type Submission struct {
	ID             uuid.UUID         `json:"id"`
	ExamID         uuid.UUID         `json:"exam_id"`
	ExamTitle      string            `json:"exam_title"`
	StudentName    string            `json:"student_name"`
	StudentID      string            `json:"student_id"`
	Answers        map[string]string `json:"answers"`
	Score          int               `json:"score"`
	TotalQuestions int               `json:"total_questions"`
	SubmittedAt    time.Time         `json:"submitted_at"`
}
