package service

import (
	"errors"
	"testing"

	"github.com/examly/examly-backend/internal/config"
	"github.com/examly/examly-backend/internal/model"
)

func testAuthoring(t *testing.T) *AuthoringService {
	t.Helper()
	return &AuthoringService{
		cfg: &config.Config{MaxUploadBytes: 10 * 1024 * 1024},
	}
}

func TestValidateUpload(t *testing.T) {
	s := testAuthoring(t)

	if err := s.ValidateUpload("application/pdf", 1024); err != nil {
		t.Errorf("valid upload rejected: %v", err)
	}
}

func TestValidateUploadMIME(t *testing.T) {
	s := testAuthoring(t)

	// The media type check is exact.
	for _, ct := range []string{"application/x-pdf", "text/plain", "application/pdf; charset=utf-8", ""} {
		err := s.ValidateUpload(ct, 1024)
		if !errors.Is(err, ErrUnsupportedFileType) {
			t.Errorf("ValidateUpload(%q) = %v, want ErrUnsupportedFileType", ct, err)
		}
	}
}

func TestValidateUploadSizeCeiling(t *testing.T) {
	s := testAuthoring(t)
	limit := s.cfg.MaxUploadBytes

	// The ceiling is inclusive: exactly at the limit passes.
	if err := s.ValidateUpload("application/pdf", limit); err != nil {
		t.Errorf("upload at limit rejected: %v", err)
	}
	if err := s.ValidateUpload("application/pdf", limit+1); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("upload over limit = %v, want ErrFileTooLarge", err)
	}
}

func TestTitleFromFilename(t *testing.T) {
	cases := []struct{ in, want string }{
		{"biology_midterm_2025.pdf", "biology midterm 2025"},
		{"Final-Exam.pdf", "Final Exam"},
		{"simple.pdf", "simple"},
		{"weird__--name.pdf", "weird name"},
		{".pdf", "Untitled Exam"},
		{"", "Untitled Exam"},
	}
	for _, tc := range cases {
		if got := TitleFromFilename(tc.in); got != tc.want {
			t.Errorf("TitleFromFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDraftIDs(t *testing.T) {
	questions := []model.DraftQuestion{
		{
			Text: "No ids at all",
			Options: []model.Option{
				{Text: "one"},
				{Text: "two"},
			},
		},
		{
			ID:   "keep-me",
			Text: "Existing ids kept",
			Options: []model.Option{
				{ID: "x", Text: "kept"},
				{Text: "filled"},
			},
		},
	}

	normalizeDraftIDs(questions)

	if questions[0].ID != "q1" {
		t.Errorf("question 0 id = %q, want q1", questions[0].ID)
	}
	if questions[0].Options[0].ID != "a" || questions[0].Options[1].ID != "b" {
		t.Errorf("option ids = %+v", questions[0].Options)
	}
	if questions[1].ID != "keep-me" {
		t.Errorf("existing question id replaced: %q", questions[1].ID)
	}
	if questions[1].Options[0].ID != "x" {
		t.Errorf("existing option id replaced: %q", questions[1].Options[0].ID)
	}
	if questions[1].Options[1].ID != "b" {
		t.Errorf("filled option id = %q, want b", questions[1].Options[1].ID)
	}
}
