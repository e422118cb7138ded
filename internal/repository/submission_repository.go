package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/examly/examly-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubmissionRepository handles submission data access. Submissions are
// insert-once: there is no update path.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Create inserts a new submission. The database assigns the UUID and the
// submission timestamp.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	answers, err := json.Marshal(s.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO submissions (exam_id, exam_title, student_name, student_id, answers, score, total_questions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, submitted_at`,
		s.ExamID, s.ExamTitle, s.StudentName, s.StudentID, answers, s.Score, s.TotalQuestions,
	).Scan(&s.ID, &s.SubmittedAt)
}

// ListByExam retrieves all submissions for an exam, newest first.
func (r *SubmissionRepository) ListByExam(ctx context.Context, examID uuid.UUID) ([]model.Submission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, exam_id, exam_title, student_name, student_id, answers, score, total_questions, submitted_at
		 FROM submissions WHERE exam_id = $1
		 ORDER BY submitted_at DESC`, examID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []model.Submission
	for rows.Next() {
		var s model.Submission
		var answers []byte
		if err := rows.Scan(&s.ID, &s.ExamID, &s.ExamTitle, &s.StudentName, &s.StudentID,
			&answers, &s.Score, &s.TotalQuestions, &s.SubmittedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(answers, &s.Answers); err != nil {
			return nil, fmt.Errorf("unmarshal answers for submission %s: %w", s.ID, err)
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}
