package service

import (
	"testing"

	"github.com/examly/examly-backend/internal/model"
	"github.com/google/uuid"
)

func draftForPublish() []model.DraftQuestion {
	return []model.DraftQuestion{
		{
			ID:   "q1",
			Text: "First?",
			Options: []model.Option{
				{ID: "a", Text: "one"},
				{ID: "b", Text: "two"},
				{ID: "c", Text: "three"},
			},
			CorrectOptionID: "b",
		},
		{
			ID:   "q2",
			Text: "Second?",
			Options: []model.Option{
				{ID: "a", Text: "yes"},
				{ID: "b", Text: "no"},
			},
			CorrectOptionID: "a",
		},
	}
}

func TestBuildQuestionsAssignsCanonicalIDs(t *testing.T) {
	examID := uuid.New()
	questions := BuildQuestions(examID, draftForPublish())

	if len(questions) != 2 {
		t.Fatalf("question count = %d, want 2", len(questions))
	}

	for i, q := range questions {
		if q.ExamID != examID {
			t.Errorf("question %d exam id = %s, want %s", i, q.ExamID, examID)
		}
		if q.Position != i {
			t.Errorf("question %d position = %d", i, q.Position)
		}
		for _, o := range q.Options {
			if _, err := uuid.Parse(o.ID); err != nil {
				t.Errorf("option id %q is not a UUID", o.ID)
			}
		}
	}
}

func TestBuildQuestionsRemapsCorrectOption(t *testing.T) {
	questions := BuildQuestions(uuid.New(), draftForPublish())

	// Draft q1 marked "b" (index 1) correct; the canonical correct id must
	// be the option now sitting at index 1.
	if got, want := questions[0].CorrectOptionID, questions[0].Options[1].ID; got != want {
		t.Errorf("correct option = %q, want %q", got, want)
	}
	if got, want := questions[1].CorrectOptionID, questions[1].Options[0].ID; got != want {
		t.Errorf("correct option = %q, want %q", got, want)
	}
}

func TestBuildQuestionsFallbackToFirstOption(t *testing.T) {
	drafts := draftForPublish()
	// Removing the correct option leaves the designation cleared.
	drafts[0].CorrectOptionID = ""

	questions := BuildQuestions(uuid.New(), drafts)

	if got, want := questions[0].CorrectOptionID, questions[0].Options[0].ID; got != want {
		t.Errorf("fallback correct option = %q, want first option %q", got, want)
	}
}

func TestBuildQuestionsKeepsCanonicalIDs(t *testing.T) {
	keepQ := uuid.New().String()
	keepO := uuid.New().String()
	drafts := []model.DraftQuestion{
		{
			ID:   keepQ,
			Text: "Stable?",
			Options: []model.Option{
				{ID: keepO, Text: "kept"},
				{ID: "b", Text: "replaced"},
			},
			CorrectOptionID: keepO,
		},
	}

	questions := BuildQuestions(uuid.New(), drafts)

	if questions[0].ID.String() != keepQ {
		t.Errorf("question id = %s, want preserved %s", questions[0].ID, keepQ)
	}
	if questions[0].Options[0].ID != keepO {
		t.Errorf("option id = %s, want preserved %s", questions[0].Options[0].ID, keepO)
	}
	if questions[0].Options[1].ID == "b" {
		t.Error("letter option id was not replaced")
	}
	if questions[0].CorrectOptionID != keepO {
		t.Errorf("correct option = %s, want %s", questions[0].CorrectOptionID, keepO)
	}
}
