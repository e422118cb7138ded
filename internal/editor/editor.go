// Package editor implements the in-memory question review editor used
// between PDF extraction and publish. It performs no I/O; the authoring
// service persists the edited question list around each operation.
package editor

import (
	"errors"

	"github.com/examly/examly-backend/internal/model"
)

const (
	// MaxOptions is the per-question option ceiling.
	MaxOptions = 6
	// MinOptions is the per-question option floor.
	MinOptions = 2
)

// Editor errors.
var (
	ErrQuestionIndex  = errors.New("question index out of range")
	ErrOptionNotFound = errors.New("option not found in question")
	ErrOptionLimit    = errors.New("question already holds the maximum number of options")
	ErrOptionFloor    = errors.New("question must keep at least two options")
)

// Editor edits an ordered question list in place.
type Editor struct {
	questions []model.DraftQuestion
}

// New creates an editor over the given questions. The slice is edited
// in place.
func New(questions []model.DraftQuestion) *Editor {
	return &Editor{questions: questions}
}

// Questions returns the current question list.
func (e *Editor) Questions() []model.DraftQuestion {
	return e.questions
}

// Len returns the number of questions.
func (e *Editor) Len() int {
	return len(e.questions)
}

// ClampIndex clamps a navigation index into [0, len-1]. An empty question
// list clamps to 0.
func (e *Editor) ClampIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i > len(e.questions)-1 {
		if len(e.questions) == 0 {
			return 0
		}
		return len(e.questions) - 1
	}
	return i
}

// SetQuestionText replaces the text of the question at index i only.
func (e *Editor) SetQuestionText(i int, text string) error {
	if i < 0 || i >= len(e.questions) {
		return ErrQuestionIndex
	}
	e.questions[i].Text = text
	return nil
}

// SetOptionText replaces the text of the option matching optionID within
// question i. Other options and their order are untouched.
func (e *Editor) SetOptionText(i int, optionID, text string) error {
	if i < 0 || i >= len(e.questions) {
		return ErrQuestionIndex
	}
	for j, o := range e.questions[i].Options {
		if o.ID == optionID {
			e.questions[i].Options[j].Text = text
			return nil
		}
	}
	return ErrOptionNotFound
}

// AddOption appends a new option with a fresh letter identifier and
// placeholder text. Fails once the question holds MaxOptions options.
func (e *Editor) AddOption(i int) (model.Option, error) {
	if i < 0 || i >= len(e.questions) {
		return model.Option{}, ErrQuestionIndex
	}
	q := &e.questions[i]
	if len(q.Options) >= MaxOptions {
		return model.Option{}, ErrOptionLimit
	}
	opt := model.Option{ID: nextLetterID(q.Options), Text: "New option"}
	q.Options = append(q.Options, opt)
	return opt, nil
}

// RemoveOption deletes the option matching optionID from question i. If that
// option was the designated correct answer, the designation is cleared to
// empty; it is never reinstated automatically. Fails when the question holds
// MinOptions or fewer options.
func (e *Editor) RemoveOption(i int, optionID string) error {
	if i < 0 || i >= len(e.questions) {
		return ErrQuestionIndex
	}
	q := &e.questions[i]
	if len(q.Options) <= MinOptions {
		return ErrOptionFloor
	}
	for j, o := range q.Options {
		if o.ID == optionID {
			q.Options = append(q.Options[:j], q.Options[j+1:]...)
			if q.CorrectOptionID == optionID {
				q.CorrectOptionID = ""
			}
			return nil
		}
	}
	return ErrOptionNotFound
}

// SetCorrectOption designates the correct answer for question i. The option
// must be present in the question's current option list.
func (e *Editor) SetCorrectOption(i int, optionID string) error {
	if i < 0 || i >= len(e.questions) {
		return ErrQuestionIndex
	}
	if !e.questions[i].HasOption(optionID) {
		return ErrOptionNotFound
	}
	e.questions[i].CorrectOptionID = optionID
	return nil
}

// nextLetterID derives the next sequential letter identifier (a, b, c, ...)
// that is not already used by an option in the set. Removal can leave gaps,
// so the length alone is not a safe choice.
func nextLetterID(options []model.Option) string {
	used := make(map[string]bool, len(options))
	for _, o := range options {
		used[o.ID] = true
	}
	for c := byte('a'); c <= 'z'; c++ {
		id := string(c)
		if !used[id] {
			return id
		}
	}
	// 26 single letters exhausted; far beyond MaxOptions, but stay total.
	return string('a' + byte(len(options)))
}
