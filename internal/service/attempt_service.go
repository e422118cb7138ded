package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/examly/examly-backend/internal/config"
	"github.com/examly/examly-backend/internal/model"
	"github.com/examly/examly-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Attempt errors.
var (
	ErrIdentityRequired = errors.New("student name and id are required")
	ErrAttemptNotFound  = errors.New("attempt not found or expired")
	ErrUnknownQuestion  = errors.New("question does not belong to this exam")
	ErrUnknownOption    = errors.New("option does not belong to this question")
)

// AttemptService drives a student's exam session. The session lives in
// Redis keyed by the attempt id — the client holds that id, so a page
// reload resumes instead of re-identifying. Successful submission clears
// the session; there is no way back into a submitted attempt.
type AttemptService struct {
	cfg            *config.Config
	examService    *ExamService
	submissionRepo *repository.SubmissionRepository
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	cfg *config.Config,
	examService *ExamService,
	submissionRepo *repository.SubmissionRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		cfg:            cfg,
		examService:    examService,
		submissionRepo: submissionRepo,
		rdb:            rdb,
		log:            log.With().Str("component", "attempt_service").Logger(),
	}
}

// MonitorEvent is published to the exam's monitor channel on every accepted
// submission.
type MonitorEvent struct {
	Type       string            `json:"type"`
	Submission *model.Submission `json:"submission"`
}

// Start checks the student's identity and creates a new attempt in the
// instructions state. Both identity fields must be non-empty after
// trimming. The exam must exist and be active.
func (s *AttemptService) Start(ctx context.Context, examID uuid.UUID, studentName, studentID string) (*model.AttemptView, error) {
	studentName = strings.TrimSpace(studentName)
	studentID = strings.TrimSpace(studentID)
	if studentName == "" || studentID == "" {
		return nil, ErrIdentityRequired
	}

	payload, err := s.examService.GetPayload(ctx, examID)
	if err != nil {
		return nil, err
	}

	attempt := &model.Attempt{
		ID:          uuid.New().String(),
		ExamID:      examID,
		StudentName: studentName,
		StudentID:   studentID,
		State:       model.AttemptStateInstructions,
		Position:    0,
		StartedAt:   time.Now().UTC(),
	}

	if err := s.saveAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("attempt_id", attempt.ID).
		Str("exam_id", examID.String()).
		Msg("Attempt started")

	return s.buildView(attempt, map[string]string{}, len(payload.Questions)), nil
}

// Get resumes an attempt: current state, position, recorded answers, and
// progress.
func (s *AttemptService) Get(ctx context.Context, attemptID string) (*model.AttemptView, error) {
	attempt, err := s.loadAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	answers, err := s.loadAnswers(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	payload, err := s.examService.GetPayload(ctx, attempt.ExamID)
	if err != nil {
		return nil, err
	}
	return s.buildView(attempt, answers, len(payload.Questions)), nil
}

// Begin moves the attempt from instructions to the exam proper. The
// transition is unconditional and idempotent.
func (s *AttemptService) Begin(ctx context.Context, attemptID string) (*model.AttemptView, error) {
	attempt, err := s.loadAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	attempt.State = model.AttemptStateExam
	if err := s.saveAttempt(ctx, attempt); err != nil {
		return nil, err
	}
	return s.Get(ctx, attemptID)
}

// Answer records the chosen option for a question, overwriting any prior
// choice for that question. Other recorded answers are never touched.
func (s *AttemptService) Answer(ctx context.Context, attemptID, questionID, optionID string) (*model.AttemptView, error) {
	attempt, err := s.loadAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	payload, err := s.examService.GetPayload(ctx, attempt.ExamID)
	if err != nil {
		return nil, err
	}
	if err := validateChoice(payload, questionID, optionID); err != nil {
		return nil, err
	}

	answersKey := config.CacheKey.AttemptAnswersKey(attemptID)
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, answersKey, questionID, optionID)
	pipe.Expire(ctx, answersKey, s.cfg.AttemptTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("record answer: %w", err)
	}

	return s.Get(ctx, attemptID)
}

// SetPosition moves the attempt's question cursor, clamped to the valid
// range. Navigation never clears recorded answers.
func (s *AttemptService) SetPosition(ctx context.Context, attemptID string, index int) (*model.AttemptView, error) {
	attempt, err := s.loadAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	payload, err := s.examService.GetPayload(ctx, attempt.ExamID)
	if err != nil {
		return nil, err
	}

	attempt.Position = ClampIndex(index, len(payload.Questions))
	if err := s.saveAttempt(ctx, attempt); err != nil {
		return nil, err
	}
	return s.Get(ctx, attemptID)
}

// Submit scores the attempt against the authoritative answer key, persists
// the submission, queues the exam counter increment, publishes a monitor
// event, and clears the attempt session. Unanswered questions simply score
// zero; they never block submission. If persistence fails the attempt is
// left intact so the student can retry.
func (s *AttemptService) Submit(ctx context.Context, attemptID string) (*model.Submission, error) {
	attempt, err := s.loadAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	answers, err := s.loadAnswers(ctx, attemptID)
	if err != nil {
		return nil, err
	}

	payload, err := s.examService.GetPayload(ctx, attempt.ExamID)
	if err != nil {
		return nil, err
	}
	answerKey, err := s.examService.GetAnswerKey(ctx, attempt.ExamID)
	if err != nil {
		return nil, err
	}

	submission := &model.Submission{
		ExamID:         attempt.ExamID,
		ExamTitle:      payload.Title,
		StudentName:    attempt.StudentName,
		StudentID:      attempt.StudentID,
		Answers:        answers,
		Score:          Score(answers, answerKey),
		TotalQuestions: len(answerKey),
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}

	// Post-persist side effects are best-effort: the submission is already
	// the record of truth.
	s.queueCounterIncrement(ctx, attempt.ExamID)
	s.publishMonitorEvent(ctx, submission)
	s.clearAttempt(ctx, attemptID)

	s.log.Info().
		Str("attempt_id", attemptID).
		Str("exam_id", attempt.ExamID.String()).
		Int("score", submission.Score).
		Int("total", submission.TotalQuestions).
		Msg("Submission accepted")

	return submission, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ────────────────────────────────────────────────────────────────────────────

func (s *AttemptService) buildView(attempt *model.Attempt, answers map[string]string, total int) *model.AttemptView {
	if answers == nil {
		answers = map[string]string{}
	}
	return &model.AttemptView{
		Attempt:        *attempt,
		Answers:        answers,
		TotalQuestions: total,
		AnsweredCount:  len(answers),
		Progress:       Progress(attempt.Position, total),
	}
}

func (s *AttemptService) saveAttempt(ctx context.Context, a *model.Attempt) error {
	key := config.CacheKey.AttemptKey(a.ID)
	fields := map[string]interface{}{
		"exam_id":      a.ExamID.String(),
		"student_name": a.StudentName,
		"student_id":   a.StudentID,
		"state":        string(a.State),
		"position":     a.Position,
		"started_at":   a.StartedAt.Format(time.RFC3339),
	}

	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, s.cfg.AttemptTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store attempt: %w", err)
	}
	return nil
}

func (s *AttemptService) loadAttempt(ctx context.Context, attemptID string) (*model.Attempt, error) {
	fields, err := s.rdb.HGetAll(ctx, config.CacheKey.AttemptKey(attemptID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load attempt: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrAttemptNotFound
	}

	examID, err := uuid.Parse(fields["exam_id"])
	if err != nil {
		return nil, fmt.Errorf("corrupt attempt record: %w", err)
	}
	position, _ := strconv.Atoi(fields["position"])
	startedAt, _ := time.Parse(time.RFC3339, fields["started_at"])

	return &model.Attempt{
		ID:          attemptID,
		ExamID:      examID,
		StudentName: fields["student_name"],
		StudentID:   fields["student_id"],
		State:       model.AttemptState(fields["state"]),
		Position:    position,
		StartedAt:   startedAt,
	}, nil
}

func (s *AttemptService) loadAnswers(ctx context.Context, attemptID string) (map[string]string, error) {
	answers, err := s.rdb.HGetAll(ctx, config.CacheKey.AttemptAnswersKey(attemptID)).Result()
	if err != nil {
		return nil, fmt.Errorf("load answers: %w", err)
	}
	if answers == nil {
		answers = map[string]string{}
	}
	return answers, nil
}

func (s *AttemptService) clearAttempt(ctx context.Context, attemptID string) {
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, config.CacheKey.AttemptKey(attemptID))
	pipe.Del(ctx, config.CacheKey.AttemptAnswersKey(attemptID))
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn().Err(err).Str("attempt_id", attemptID).Msg("Attempt cleanup failed")
	}
}

func (s *AttemptService) queueCounterIncrement(ctx context.Context, examID uuid.UUID) {
	raw, _ := json.Marshal(map[string]string{"exam_id": examID.String()})
	if err := s.rdb.RPush(ctx, config.WorkerKey.SubmissionCountQueue, raw).Err(); err != nil {
		s.log.Error().Err(err).Str("exam_id", examID.String()).Msg("Counter enqueue failed")
	}
}

func (s *AttemptService) publishMonitorEvent(ctx context.Context, submission *model.Submission) {
	event := MonitorEvent{Type: "submission", Submission: submission}
	raw, _ := json.Marshal(event)
	channel := config.CacheKey.ExamMonitorChannel(submission.ExamID.String())
	if err := s.rdb.Publish(ctx, channel, raw).Err(); err != nil {
		s.log.Warn().Err(err).Str("exam_id", submission.ExamID.String()).Msg("Monitor publish failed")
	}
}

// validateChoice checks the answer targets a real question and one of its
// own options.
func validateChoice(payload *model.ExamPayload, questionID, optionID string) error {
	for _, q := range payload.Questions {
		if q.ID.String() != questionID {
			continue
		}
		for _, o := range q.Options {
			if o.ID == optionID {
				return nil
			}
		}
		return ErrUnknownOption
	}
	return ErrUnknownQuestion
}
