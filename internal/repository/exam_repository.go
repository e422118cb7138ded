package repository

import (
	"context"

	"github.com/examly/examly-backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExamRepository handles exam data access.
type ExamRepository struct {
	pool *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(pool *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{pool: pool}
}

// Create inserts a new exam. The database assigns the UUID and timestamps.
func (r *ExamRepository) Create(ctx context.Context, e *model.Exam) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exams (title, status, url, submissions)
		 VALUES ($1, $2, $3, 0)
		 RETURNING id, submissions, created_at, updated_at`,
		e.Title, e.Status, e.URL,
	).Scan(&e.ID, &e.Submissions, &e.CreatedAt, &e.UpdatedAt)
}

// GetByID retrieves an exam by its UUID. Questions are loaded separately.
func (r *ExamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	e := &model.Exam{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, status, url, submissions, created_at, updated_at
		 FROM exams WHERE id = $1`, id,
	).Scan(&e.ID, &e.Title, &e.Status, &e.URL, &e.Submissions, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ListPaginated retrieves exams newest-first with pagination.
func (r *ExamRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.Exam, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM exams`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, title, status, url, submissions, created_at, updated_at
		 FROM exams
		 ORDER BY created_at DESC
		 LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.Title, &e.Status, &e.URL, &e.Submissions,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, err
		}
		exams = append(exams, e)
	}
	return exams, total, rows.Err()
}

// ListActive returns all exams with active status.
// Used for cache prewarming on application startup.
func (r *ExamRepository) ListActive(ctx context.Context) ([]model.Exam, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, status, url, submissions, created_at, updated_at
		 FROM exams WHERE status = $1
		 ORDER BY created_at DESC`, model.ExamStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exams []model.Exam
	for rows.Next() {
		var e model.Exam
		if err := rows.Scan(&e.ID, &e.Title, &e.Status, &e.URL, &e.Submissions,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// SetURL writes the canonical exam URL once the server-assigned id is known.
func (r *ExamRepository) SetURL(ctx context.Context, id uuid.UUID, url string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exams SET url = $1, updated_at = NOW() WHERE id = $2`, url, id)
	return err
}

// Update changes an exam's title and/or status. Empty values keep the
// current column value.
func (r *ExamRepository) Update(ctx context.Context, id uuid.UUID, title string, status model.ExamStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE exams
		 SET title = COALESCE(NULLIF($1, ''), title),
		     status = COALESCE(NULLIF($2, ''), status),
		     updated_at = NOW()
		 WHERE id = $3`,
		title, string(status), id)
	return err
}

// Delete removes an exam. Questions and submissions cascade.
func (r *ExamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM exams WHERE id = $1`, id)
	return err
}
