package model

import (
	"github.com/google/uuid"
)

// Option is a single answer choice. ID is unique within the parent
// question's option set.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question is the canonical, persisted representation of an exam question.
// CorrectOptionID always matches the ID of exactly one entry in Options.
type Question struct {
	ID              uuid.UUID `json:"id"`
	ExamID          uuid.UUID `json:"exam_id"`
	Text            string    `json:"text"`
	Options         []Option  `json:"options"`
	CorrectOptionID string    `json:"correct_option_id"`
	Position        int       `json:"position"`
}

// DraftQuestion is the editor-side representation used between extraction
// and publish. Identifiers are short opaque strings (letter ids from
// extraction) until publish assigns canonical UUIDs. CorrectOptionID may be
// transiently empty after the designated correct option was removed; publish
// resolves empty values with a first-option fallback.
type DraftQuestion struct {
	ID              string   `json:"id"`
	Text            string   `json:"text" binding:"required"`
	Options         []Option `json:"options" binding:"required,min=2"`
	CorrectOptionID string   `json:"correct_option_id"`
}

// ForStudent strips the correct answer designation.
func (q Question) ForStudent() QuestionForStudent {
	return QuestionForStudent{
		ID:      q.ID,
		Text:    q.Text,
		Options: q.Options,
	}
}

// HasOption reports whether the question holds an option with the given id.
func (q DraftQuestion) HasOption(optionID string) bool {
	for _, o := range q.Options {
		if o.ID == optionID {
			return true
		}
	}
	return false
}
