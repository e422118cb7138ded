package llm

import (
	"errors"
	"testing"
)

func TestParseQuestionsPlainArray(t *testing.T) {
	raw := `[
		{"id": "q1", "text": "First?", "options": [{"id": "a", "text": "one"}, {"id": "b", "text": "two"}], "correct_option_id": "a"},
		{"id": "q2", "text": "Second?", "options": [{"id": "a", "text": "yes"}, {"id": "b", "text": "no"}], "correct_option_id": "b"}
	]`

	questions, err := ParseQuestions(raw)
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("question count = %d, want 2", len(questions))
	}
	if questions[0].Text != "First?" || questions[0].CorrectOptionID != "a" {
		t.Errorf("question 0 = %+v", questions[0])
	}
}

func TestParseQuestionsMarkdownFences(t *testing.T) {
	raw := "```json\n[{\"id\": \"q1\", \"text\": \"Q?\", \"options\": [{\"id\": \"a\", \"text\": \"1\"}, {\"id\": \"b\", \"text\": \"2\"}], \"correct_option_id\": \"a\"}]\n```"

	questions, err := ParseQuestions(raw)
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	if len(questions) != 1 {
		t.Errorf("question count = %d, want 1", len(questions))
	}
}

func TestParseQuestionsSurroundingProse(t *testing.T) {
	raw := `Here are the extracted questions:

[{"id": "q1", "text": "Q?", "options": [{"id": "a", "text": "1"}, {"id": "b", "text": "2"}], "correct_option_id": "a"}]

Let me know if you need anything else.`

	questions, err := ParseQuestions(raw)
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	if len(questions) != 1 {
		t.Errorf("question count = %d, want 1", len(questions))
	}
}

func TestParseQuestionsFiltersInvalid(t *testing.T) {
	// Blank text and single-option records are dropped; the valid one stays.
	raw := `[
		{"id": "q1", "text": "", "options": [{"id": "a", "text": "1"}, {"id": "b", "text": "2"}]},
		{"id": "q2", "text": "Only one option", "options": [{"id": "a", "text": "1"}]},
		{"id": "q3", "text": "Valid", "options": [{"id": "a", "text": "1"}, {"id": "b", "text": "2"}], "correct_option_id": "a"}
	]`

	questions, err := ParseQuestions(raw)
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	if len(questions) != 1 || questions[0].ID != "q3" {
		t.Errorf("questions = %+v, want only q3", questions)
	}
}

func TestParseQuestionsEmpty(t *testing.T) {
	if _, err := ParseQuestions("[]"); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("empty array err = %v, want ErrNoQuestions", err)
	}

	raw := `[{"id": "q1", "text": "", "options": []}]`
	if _, err := ParseQuestions(raw); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("all-invalid err = %v, want ErrNoQuestions", err)
	}
}

func TestParseQuestionsNoArray(t *testing.T) {
	if _, err := ParseQuestions("I could not find any questions in this document."); err == nil {
		t.Error("expected error for response without a JSON array")
	}
}
