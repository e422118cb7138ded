package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/examly/examly-backend/internal/config"
	"github.com/examly/examly-backend/internal/editor"
	"github.com/examly/examly-backend/internal/llm"
	"github.com/examly/examly-backend/internal/model"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Upload and draft errors.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type, expected application/pdf")
	ErrFileTooLarge        = errors.New("file exceeds the upload size limit")
	ErrDraftNotFound       = errors.New("draft not found or expired")
)

// pdfMIMEType is the only accepted upload media type. The check is exact;
// "application/x-pdf" and friends are rejected.
const pdfMIMEType = "application/pdf"

// extractor extracts draft questions from PDF bytes. Satisfied by
// *llm.Client; narrowed to an interface so tests can stub the AI API.
type extractor interface {
	ExtractQuestions(ctx context.Context, pdf []byte) ([]model.DraftQuestion, error)
}

var _ extractor = (*llm.Client)(nil)

// AuthoringService drives the upload → extract → review → publish flow.
// Drafts live in Redis under a TTL; nothing reaches PostgreSQL until
// publish.
type AuthoringService struct {
	cfg         *config.Config
	ai          extractor
	examService *ExamService
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewAuthoringService creates a new AuthoringService.
func NewAuthoringService(
	cfg *config.Config,
	ai extractor,
	examService *ExamService,
	rdb *redis.Client,
	log zerolog.Logger,
) *AuthoringService {
	return &AuthoringService{
		cfg:         cfg,
		ai:          ai,
		examService: examService,
		rdb:         rdb,
		log:         log.With().Str("component", "authoring_service").Logger(),
	}
}

// ValidateUpload checks the upload's media type and size before any AI call.
// The size ceiling is inclusive: a file of exactly the limit passes.
func (s *AuthoringService) ValidateUpload(contentType string, size int64) error {
	if contentType != pdfMIMEType {
		return fmt.Errorf("%w: got %q", ErrUnsupportedFileType, contentType)
	}
	if size > s.cfg.MaxUploadBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, size, s.cfg.MaxUploadBytes)
	}
	return nil
}

// CreateDraft runs extraction over a validated PDF upload and stores the
// resulting draft. The default title derives from the filename. Extraction
// failures (including the zero-questions case, llm.ErrNoQuestions) leave no
// draft behind.
func (s *AuthoringService) CreateDraft(ctx context.Context, filename string, pdf []byte) (*model.Draft, error) {
	questions, err := s.ai.ExtractQuestions(ctx, pdf)
	if err != nil {
		s.log.Warn().Err(err).Str("file", filename).Msg("Extraction failed")
		return nil, err
	}

	normalizeDraftIDs(questions)

	draft := &model.Draft{
		ID:         uuid.New().String(),
		Title:      TitleFromFilename(filename),
		SourceFile: filename,
		Questions:  questions,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.saveDraft(ctx, draft); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("draft_id", draft.ID).
		Int("questions", len(questions)).
		Str("file", filename).
		Msg("Draft created")
	return draft, nil
}

// GetDraft loads a draft from Redis.
func (s *AuthoringService) GetDraft(ctx context.Context, draftID string) (*model.Draft, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.DraftKey(draftID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}

	var draft model.Draft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &draft, nil
}

// DeleteDraft discards a draft (the authoring flow's Cancel).
func (s *AuthoringService) DeleteDraft(ctx context.Context, draftID string) error {
	n, err := s.rdb.Del(ctx, config.CacheKey.DraftKey(draftID)).Result()
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	if n == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// SetTitle renames a draft.
func (s *AuthoringService) SetTitle(ctx context.Context, draftID, title string) (*model.Draft, error) {
	return s.edit(ctx, draftID, func(d *model.Draft) error {
		d.Title = title
		return nil
	})
}

// SetQuestionText edits the text of the question at the given index.
func (s *AuthoringService) SetQuestionText(ctx context.Context, draftID string, index int, text string) (*model.Draft, error) {
	return s.edit(ctx, draftID, func(d *model.Draft) error {
		return editor.New(d.Questions).SetQuestionText(index, text)
	})
}

// SetOptionText edits the text of one option on the question at the index.
func (s *AuthoringService) SetOptionText(ctx context.Context, draftID string, index int, optionID, text string) (*model.Draft, error) {
	return s.edit(ctx, draftID, func(d *model.Draft) error {
		return editor.New(d.Questions).SetOptionText(index, optionID, text)
	})
}

// AddOption appends a new option to the question at the index.
func (s *AuthoringService) AddOption(ctx context.Context, draftID string, index int) (*model.Draft, error) {
	return s.edit(ctx, draftID, func(d *model.Draft) error {
		_, err := editor.New(d.Questions).AddOption(index)
		return err
	})
}

// RemoveOption removes an option from the question at the index.
func (s *AuthoringService) RemoveOption(ctx context.Context, draftID string, index int, optionID string) (*model.Draft, error) {
	return s.edit(ctx, draftID, func(d *model.Draft) error {
		return editor.New(d.Questions).RemoveOption(index, optionID)
	})
}

// SetCorrectOption designates the correct option for the question at the
// index.
func (s *AuthoringService) SetCorrectOption(ctx context.Context, draftID string, index int, optionID string) (*model.Draft, error) {
	return s.edit(ctx, draftID, func(d *model.Draft) error {
		return editor.New(d.Questions).SetCorrectOption(index, optionID)
	})
}

// Publish turns a draft into an active exam. The draft is only discarded
// after the exam is fully persisted, so a failed publish can be retried
// without re-uploading.
func (s *AuthoringService) Publish(ctx context.Context, draftID string) (*model.Exam, error) {
	draft, err := s.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	exam, err := s.examService.Create(ctx, draft.Title, model.ExamStatusActive, draft.Questions)
	if err != nil {
		return nil, err
	}

	if err := s.DeleteDraft(ctx, draftID); err != nil && !errors.Is(err, ErrDraftNotFound) {
		s.log.Warn().Err(err).Str("draft_id", draftID).Msg("Could not discard published draft")
	}

	s.log.Info().
		Str("draft_id", draftID).
		Str("exam_id", exam.ID.String()).
		Msg("Draft published")
	return exam, nil
}

// edit applies a mutation to a stored draft and persists the result.
func (s *AuthoringService) edit(ctx context.Context, draftID string, fn func(*model.Draft) error) (*model.Draft, error) {
	draft, err := s.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	if err := s.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *AuthoringService) saveDraft(ctx context.Context, draft *model.Draft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.rdb.Set(ctx, config.CacheKey.DraftKey(draft.ID), raw, s.cfg.DraftTTL).Err(); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

// TitleFromFilename derives a default exam title from the uploaded
// filename: extension stripped, separators spaced out.
func TitleFromFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Untitled Exam"
	}
	return base
}

// normalizeDraftIDs fills in identifiers the extraction left empty:
// sequential letters for options, q1..qN for questions. Existing ids are
// kept untouched.
func normalizeDraftIDs(questions []model.DraftQuestion) {
	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = fmt.Sprintf("q%d", i+1)
		}
		for j := range questions[i].Options {
			if questions[i].Options[j].ID == "" {
				questions[i].Options[j].ID = string('a' + byte(j))
			}
		}
	}
}
