package model

import "time"

// Draft is an authoring session: questions extracted from a PDF awaiting
// review and publish. Drafts live in Redis with a TTL and are discarded on
// cancel or consumed on publish.
type Draft struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	SourceFile string          `json:"source_file"`
	Questions  []DraftQuestion `json:"questions"`
	CreatedAt  time.Time       `json:"created_at"`
}

// UpdateDraftTitleRequest renames a draft before publish.
type UpdateDraftTitleRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
}

// EditQuestionTextRequest replaces the text of one draft question.
type EditQuestionTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// EditOptionTextRequest replaces the text of one option.
type EditOptionTextRequest struct {
	Text string `json:"text" binding:"required"`
}

// SetCorrectOptionRequest designates the correct option for a question.
type SetCorrectOptionRequest struct {
	OptionID string `json:"option_id" binding:"required"`
}
