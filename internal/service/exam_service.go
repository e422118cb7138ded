package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/examly/examly-backend/internal/config"
	"github.com/examly/examly-backend/internal/model"
	"github.com/examly/examly-backend/internal/repository"
	"github.com/examly/examly-backend/internal/response"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Domain errors.
var (
	ErrExamNotFound = errors.New("exam not found")
	ErrNoQuestions  = errors.New("exam has no questions")
)

// ExamService handles exam business logic and Redis caching. The Redis
// cache holds two entries per active exam: the student-facing payload
// (questions without correct answers) and the answer key hash used for
// scoring.
type ExamService struct {
	cfg          *config.Config
	examRepo     *repository.ExamRepository
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewExamService creates a new ExamService.
func NewExamService(
	cfg *config.Config,
	examRepo *repository.ExamRepository,
	questionRepo *repository.QuestionRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		cfg:          cfg,
		examRepo:     examRepo,
		questionRepo: questionRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "exam_service").Logger(),
	}
}

// Create persists a new exam from reviewed draft questions. Identifier
// assignment and the correct-option remap happen here (BuildQuestions); the
// canonical URL is derived from the server-assigned exam id. Active exams
// are cached immediately so the shareable URL works as soon as the examiner
// sees it.
func (s *ExamService) Create(ctx context.Context, title string, status model.ExamStatus, drafts []model.DraftQuestion) (*model.Exam, error) {
	if len(drafts) == 0 {
		return nil, ErrNoQuestions
	}
	if status == "" {
		status = model.ExamStatusActive
	}

	exam := &model.Exam{Title: title, Status: status}
	if err := s.examRepo.Create(ctx, exam); err != nil {
		return nil, fmt.Errorf("create exam: %w", err)
	}

	// The canonical URL needs the server-assigned id, so it is written in a
	// second step after the insert returns.
	exam.URL = fmt.Sprintf("%s/exam/%s", s.cfg.PublicBaseURL, exam.ID)
	if err := s.examRepo.SetURL(ctx, exam.ID, exam.URL); err != nil {
		return nil, fmt.Errorf("set exam url: %w", err)
	}

	exam.Questions = BuildQuestions(exam.ID, drafts)
	if err := s.questionRepo.InsertMany(ctx, exam.Questions); err != nil {
		return nil, fmt.Errorf("insert questions: %w", err)
	}

	if exam.Status == model.ExamStatusActive {
		if err := s.WarmExamCache(ctx, exam); err != nil {
			s.log.Warn().Err(err).Str("exam_id", exam.ID.String()).Msg("Cache warm failed")
		}
	}

	s.log.Info().
		Str("exam_id", exam.ID.String()).
		Int("questions", len(exam.Questions)).
		Msg("Exam created")

	return exam, nil
}

// GetByID retrieves an exam with its questions. Not-found is reported as
// ErrExamNotFound so handlers can map it to a 404.
func (s *ExamService) GetByID(ctx context.Context, id uuid.UUID) (*model.Exam, error) {
	exam, err := s.examRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExamNotFound
		}
		return nil, fmt.Errorf("get exam: %w", err)
	}

	exam.Questions, err = s.questionRepo.ListByExam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return exam, nil
}

// List retrieves exams newest-first with pagination.
func (s *ExamService) List(ctx context.Context, page, perPage int) ([]model.Exam, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	exams, total, err := s.examRepo.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if exams == nil {
		exams = []model.Exam{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return exams, pagination, nil
}

// Update changes an exam's title and/or status and refreshes or drops the
// cache accordingly.
func (s *ExamService) Update(ctx context.Context, id uuid.UUID, title string, status model.ExamStatus) (*model.Exam, error) {
	if err := s.examRepo.Update(ctx, id, title, status); err != nil {
		return nil, fmt.Errorf("update exam: %w", err)
	}

	exam, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if exam.Status == model.ExamStatusActive {
		if err := s.WarmExamCache(ctx, exam); err != nil {
			s.log.Warn().Err(err).Str("exam_id", id.String()).Msg("Cache refresh failed")
		}
	} else {
		s.dropCache(ctx, id)
	}
	return exam, nil
}

// Delete removes an exam and its cache entries.
func (s *ExamService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.examRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete exam: %w", err)
	}
	s.dropCache(ctx, id)
	return nil
}

// WarmExamCache loads an exam's student payload and answer key into Redis.
// Used at create, update, and startup prewarm.
func (s *ExamService) WarmExamCache(ctx context.Context, exam *model.Exam) error {
	questions := exam.Questions
	if questions == nil {
		var err error
		questions, err = s.questionRepo.ListByExam(ctx, exam.ID)
		if err != nil {
			return fmt.Errorf("list questions: %w", err)
		}
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	studentQuestions := make([]model.QuestionForStudent, len(questions))
	for i, q := range questions {
		studentQuestions[i] = q.ForStudent()
	}

	payload := model.ExamPayload{
		ExamID:    exam.ID,
		Title:     exam.Title,
		Questions: studentQuestions,
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	answerKey := make(map[string]interface{}, len(questions))
	for _, q := range questions {
		answerKey[q.ID.String()] = q.CorrectOptionID
	}

	// Cache both atomically via pipeline.
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, config.CacheKey.ExamPayloadKey(exam.ID.String()), payloadJSON, 0)
	pipe.Del(ctx, config.CacheKey.ExamAnswerKey(exam.ID.String()))
	pipe.HSet(ctx, config.CacheKey.ExamAnswerKey(exam.ID.String()), answerKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache to redis: %w", err)
	}

	s.log.Debug().
		Str("exam_id", exam.ID.String()).
		Int("questions", len(questions)).
		Msg("Exam cache warmed")
	return nil
}

// PrewarmAllCaches loads every active exam into Redis. Called once at boot
// before the server accepts traffic, so shared exam URLs never hit a cold
// cache under load.
func (s *ExamService) PrewarmAllCaches(ctx context.Context) error {
	exams, err := s.examRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active exams: %w", err)
	}

	warmed := 0
	for i := range exams {
		if err := s.WarmExamCache(ctx, &exams[i]); err != nil {
			s.log.Warn().Err(err).Str("exam_id", exams[i].ID.String()).Msg("Prewarm skipped")
			continue
		}
		warmed++
	}

	s.log.Info().Int("exams", warmed).Msg("Exam caches prewarmed")
	return nil
}

// GetPayload returns the student-facing payload for an exam, preferring the
// Redis cache and falling back to PostgreSQL (re-warming on the way).
func (s *ExamService) GetPayload(ctx context.Context, examID uuid.UUID) (*model.ExamPayload, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.ExamPayloadKey(examID.String())).Result()
	if err == nil {
		var payload model.ExamPayload
		if err := json.Unmarshal([]byte(raw), &payload); err == nil {
			return &payload, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Payload cache read failed, falling back to database")
	}

	exam, err := s.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}
	if exam.Status != model.ExamStatusActive {
		return nil, ErrExamNotFound
	}
	if len(exam.Questions) == 0 {
		return nil, ErrNoQuestions
	}

	if err := s.WarmExamCache(ctx, exam); err != nil {
		s.log.Warn().Err(err).Str("exam_id", examID.String()).Msg("Re-warm failed")
	}

	studentQuestions := make([]model.QuestionForStudent, len(exam.Questions))
	for i, q := range exam.Questions {
		studentQuestions[i] = q.ForStudent()
	}
	return &model.ExamPayload{
		ExamID:    exam.ID,
		Title:     exam.Title,
		Questions: studentQuestions,
	}, nil
}

// GetAnswerKey returns the authoritative question→correct-option map for an
// exam, preferring the Redis hash and falling back to PostgreSQL.
func (s *ExamService) GetAnswerKey(ctx context.Context, examID uuid.UUID) (map[string]string, error) {
	key, err := s.rdb.HGetAll(ctx, config.CacheKey.ExamAnswerKey(examID.String())).Result()
	if err == nil && len(key) > 0 {
		return key, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Answer key cache read failed, falling back to database")
	}

	questions, err := s.questionRepo.ListByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	key = make(map[string]string, len(questions))
	for _, q := range questions {
		key[q.ID.String()] = q.CorrectOptionID
	}
	return key, nil
}

func (s *ExamService) dropCache(ctx context.Context, examID uuid.UUID) {
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, config.CacheKey.ExamPayloadKey(examID.String()))
	pipe.Del(ctx, config.CacheKey.ExamAnswerKey(examID.String()))
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn().Err(err).Str("exam_id", examID.String()).Msg("Cache drop failed")
	}
}
