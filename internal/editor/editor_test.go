package editor

import (
	"errors"
	"testing"

	"github.com/examly/examly-backend/internal/model"
)

func sampleQuestions() []model.DraftQuestion {
	return []model.DraftQuestion{
		{
			ID:   "q1",
			Text: "What is the capital of France?",
			Options: []model.Option{
				{ID: "a", Text: "Paris"},
				{ID: "b", Text: "Lyon"},
				{ID: "c", Text: "Marseille"},
			},
			CorrectOptionID: "a",
		},
		{
			ID:   "q2",
			Text: "2 + 2 = ?",
			Options: []model.Option{
				{ID: "a", Text: "3"},
				{ID: "b", Text: "4"},
			},
			CorrectOptionID: "b",
		},
	}
}

func TestSetQuestionText(t *testing.T) {
	e := New(sampleQuestions())

	if err := e.SetQuestionText(0, "Updated?"); err != nil {
		t.Fatalf("SetQuestionText: %v", err)
	}
	if got := e.Questions()[0].Text; got != "Updated?" {
		t.Errorf("text = %q, want %q", got, "Updated?")
	}
	// Neighbors untouched.
	if got := e.Questions()[1].Text; got != "2 + 2 = ?" {
		t.Errorf("question 1 text changed: %q", got)
	}

	if err := e.SetQuestionText(5, "x"); !errors.Is(err, ErrQuestionIndex) {
		t.Errorf("out-of-range err = %v, want ErrQuestionIndex", err)
	}
}

func TestSetOptionText(t *testing.T) {
	e := New(sampleQuestions())

	if err := e.SetOptionText(0, "b", "Nice"); err != nil {
		t.Fatalf("SetOptionText: %v", err)
	}
	opts := e.Questions()[0].Options
	if opts[1].Text != "Nice" {
		t.Errorf("option b text = %q, want %q", opts[1].Text, "Nice")
	}
	if opts[0].Text != "Paris" || opts[2].Text != "Marseille" {
		t.Error("sibling options changed")
	}

	if err := e.SetOptionText(0, "z", "x"); !errors.Is(err, ErrOptionNotFound) {
		t.Errorf("unknown option err = %v, want ErrOptionNotFound", err)
	}
}

func TestAddOption(t *testing.T) {
	e := New(sampleQuestions())

	opt, err := e.AddOption(0)
	if err != nil {
		t.Fatalf("AddOption: %v", err)
	}
	if opt.ID != "d" {
		t.Errorf("new option id = %q, want %q", opt.ID, "d")
	}
	if n := len(e.Questions()[0].Options); n != 4 {
		t.Errorf("option count = %d, want 4", n)
	}
}

func TestAddOptionCeiling(t *testing.T) {
	qs := sampleQuestions()
	e := New(qs)

	for len(qs[0].Options) < MaxOptions {
		if _, err := e.AddOption(0); err != nil {
			t.Fatalf("AddOption below ceiling: %v", err)
		}
	}
	if _, err := e.AddOption(0); !errors.Is(err, ErrOptionLimit) {
		t.Errorf("err at ceiling = %v, want ErrOptionLimit", err)
	}
}

func TestAddOptionSkipsUsedLetters(t *testing.T) {
	// Remove "b", then add: the id must not collide with surviving "c".
	e := New(sampleQuestions())

	if err := e.RemoveOption(0, "b"); err != nil {
		t.Fatalf("RemoveOption: %v", err)
	}
	opt, err := e.AddOption(0)
	if err != nil {
		t.Fatalf("AddOption: %v", err)
	}
	if opt.ID != "b" {
		t.Errorf("new option id = %q, want reused gap %q", opt.ID, "b")
	}

	seen := map[string]bool{}
	for _, o := range e.Questions()[0].Options {
		if seen[o.ID] {
			t.Fatalf("duplicate option id %q", o.ID)
		}
		seen[o.ID] = true
	}
}

func TestRemoveOption(t *testing.T) {
	e := New(sampleQuestions())

	if err := e.RemoveOption(0, "b"); err != nil {
		t.Fatalf("RemoveOption: %v", err)
	}
	opts := e.Questions()[0].Options
	if len(opts) != 2 || opts[0].ID != "a" || opts[1].ID != "c" {
		t.Errorf("options after remove = %+v", opts)
	}
	// Correct designation untouched when another option is removed.
	if got := e.Questions()[0].CorrectOptionID; got != "a" {
		t.Errorf("correct option = %q, want %q", got, "a")
	}
}

func TestRemoveCorrectOptionClearsDesignation(t *testing.T) {
	e := New(sampleQuestions())

	if err := e.RemoveOption(0, "a"); err != nil {
		t.Fatalf("RemoveOption: %v", err)
	}
	if got := e.Questions()[0].CorrectOptionID; got != "" {
		t.Errorf("correct option = %q, want cleared", got)
	}
}

func TestRemoveOptionFloor(t *testing.T) {
	e := New(sampleQuestions())

	// Question 1 already sits at the floor.
	if err := e.RemoveOption(1, "a"); !errors.Is(err, ErrOptionFloor) {
		t.Errorf("err at floor = %v, want ErrOptionFloor", err)
	}
	if n := len(e.Questions()[1].Options); n != 2 {
		t.Errorf("option count = %d, want 2", n)
	}
}

func TestSetCorrectOption(t *testing.T) {
	e := New(sampleQuestions())

	if err := e.SetCorrectOption(0, "c"); err != nil {
		t.Fatalf("SetCorrectOption: %v", err)
	}
	if got := e.Questions()[0].CorrectOptionID; got != "c" {
		t.Errorf("correct option = %q, want %q", got, "c")
	}

	if err := e.SetCorrectOption(0, "z"); !errors.Is(err, ErrOptionNotFound) {
		t.Errorf("unknown option err = %v, want ErrOptionNotFound", err)
	}
}

func TestClampIndex(t *testing.T) {
	e := New(sampleQuestions())

	cases := []struct{ in, want int }{
		{-5, 0},
		{0, 0},
		{1, 1},
		{2, 1},
		{100, 1},
	}
	for _, tc := range cases {
		if got := e.ClampIndex(tc.in); got != tc.want {
			t.Errorf("ClampIndex(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}

	empty := New(nil)
	if got := empty.ClampIndex(3); got != 0 {
		t.Errorf("ClampIndex on empty = %d, want 0", got)
	}
}
