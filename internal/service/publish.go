package service

import (
	"github.com/examly/examly-backend/internal/model"
	"github.com/google/uuid"
)

// canonicalIDLen is the length of a canonical UUID string. Shorter ids
// (letter ids from extraction, or anything hand-entered) are replaced at
// publish time.
const canonicalIDLen = 36

// BuildQuestions turns reviewed draft questions into canonical questions
// ready for persistence. Every question and option lacking a canonical
// identifier receives a fresh UUID; identifiers that are already canonical
// are kept, so republish-style calls are stable.
//
// The correct-answer designation is re-resolved by pre-assignment array
// position: the option at the index where the draft's correct option sat
// becomes the correct option of the canonical question. None of the editor
// operations reorder options, so position and identity coincide; if no
// position matches (including an empty designation left by removing the
// correct option), the first option is the fallback so an exam is never
// published without an answer key entry.
func BuildQuestions(examID uuid.UUID, drafts []model.DraftQuestion) []model.Question {
	questions := make([]model.Question, len(drafts))
	for i, d := range drafts {
		options := make([]model.Option, len(d.Options))
		for j, o := range d.Options {
			id := o.ID
			if len(id) != canonicalIDLen {
				id = uuid.New().String()
			}
			options[j] = model.Option{ID: id, Text: o.Text}
		}

		correctID := options[0].ID
		for j, o := range d.Options {
			if o.ID == d.CorrectOptionID {
				correctID = options[j].ID
				break
			}
		}

		qid := d.ID
		if len(qid) != canonicalIDLen {
			qid = uuid.New().String()
		}
		parsed, err := uuid.Parse(qid)
		if err != nil {
			parsed = uuid.New()
		}

		questions[i] = model.Question{
			ID:              parsed,
			ExamID:          examID,
			Text:            d.Text,
			Options:         options,
			CorrectOptionID: correctID,
			Position:        i,
		}
	}
	return questions
}
