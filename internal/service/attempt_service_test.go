package service

import (
	"errors"
	"testing"

	"github.com/examly/examly-backend/internal/model"
	"github.com/google/uuid"
)

func paperFixture() (*model.ExamPayload, uuid.UUID, string, string) {
	qID := uuid.New()
	optA := uuid.New().String()
	optB := uuid.New().String()
	payload := &model.ExamPayload{
		ExamID: uuid.New(),
		Title:  "Fixture Exam",
		Questions: []model.QuestionForStudent{
			{
				ID:   qID,
				Text: "Q?",
				Options: []model.Option{
					{ID: optA, Text: "A"},
					{ID: optB, Text: "B"},
				},
			},
		},
	}
	return payload, qID, optA, optB
}

func TestValidateChoice(t *testing.T) {
	payload, qID, optA, _ := paperFixture()

	if err := validateChoice(payload, qID.String(), optA); err != nil {
		t.Errorf("valid choice rejected: %v", err)
	}
}

func TestValidateChoiceUnknownQuestion(t *testing.T) {
	payload, _, optA, _ := paperFixture()

	err := validateChoice(payload, uuid.New().String(), optA)
	if !errors.Is(err, ErrUnknownQuestion) {
		t.Errorf("err = %v, want ErrUnknownQuestion", err)
	}
}

func TestValidateChoiceForeignOption(t *testing.T) {
	payload, qID, _, _ := paperFixture()

	// A well-formed option id that belongs to no option of this question.
	err := validateChoice(payload, qID.String(), uuid.New().String())
	if !errors.Is(err, ErrUnknownOption) {
		t.Errorf("err = %v, want ErrUnknownOption", err)
	}
}
