// Package llm wraps an OpenAI-compatible chat-completions API used to
// extract multiple-choice questions from uploaded PDF documents.
package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/examly/examly-backend/internal/model"
	openai "github.com/sashabaranov/go-openai"
)

// Extraction errors.
var (
	ErrNoAPIKey    = errors.New("AI API key is not configured")
	ErrNoContent   = errors.New("AI returned no content")
	ErrNoQuestions = errors.New("no questions extracted from document")
)

// promptBytes caps how much of the base64 document is embedded in the
// prompt; the extraction models work from the leading pages.
const promptBytes = 100_000

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api   *openai.Client
	model string
	key   string
}

// New creates a new extraction client. baseURL may point at any
// OpenAI-compatible endpoint (DeepSeek by default).
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
		key:   apiKey,
	}
}

// ExtractQuestions sends the PDF content to the AI API and returns the
// extracted question records. A transport or API failure is returned
// wrapped; a well-formed response containing zero questions returns
// ErrNoQuestions so callers can distinguish the two.
func (c *Client) ExtractQuestions(ctx context.Context, pdf []byte) ([]model.DraftQuestion, error) {
	if strings.TrimSpace(c.key) == "" {
		return nil, ErrNoAPIKey
	}

	encoded := base64.StdEncoding.EncodeToString(pdf)
	if len(encoded) > promptBytes {
		encoded = encoded[:promptBytes] + "...[truncated]"
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildExtractionPrompt(encoded)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("AI API call: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, ErrNoContent
	}

	raw := resp.Choices[0].Message.Content
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoContent
	}

	return ParseQuestions(raw)
}

// ParseQuestions extracts the JSON question array from a raw model response.
// The response may wrap the array in markdown fences or surrounding prose.
func ParseQuestions(raw string) ([]model.DraftQuestion, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in AI response")
	}

	var questions []model.DraftQuestion
	if err := json.Unmarshal([]byte(raw[start:end+1]), &questions); err != nil {
		return nil, fmt.Errorf("parse AI response: %w", err)
	}

	// Drop records the model produced without usable content.
	valid := questions[:0]
	for _, q := range questions {
		if strings.TrimSpace(q.Text) == "" || len(q.Options) < 2 {
			continue
		}
		valid = append(valid, q)
	}

	if len(valid) == 0 {
		return nil, ErrNoQuestions
	}
	return valid, nil
}

func buildExtractionPrompt(encodedPDF string) string {
	var sb strings.Builder
	sb.WriteString("I have a PDF of a multiple choice exam. I've converted it to base64 format: ")
	sb.WriteString(encodedPDF)
	sb.WriteString("\n\nPlease extract all multiple choice questions from this PDF and format them as a JSON array of questions.\n")
	sb.WriteString("Each question should have the following structure:\n")
	sb.WriteString(`{
  "id": "unique_id",
  "text": "question text",
  "options": [
    { "id": "a", "text": "option text" },
    { "id": "b", "text": "option text" }
  ],
  "correct_option_id": "correct_option_id"
}`)
	sb.WriteString("\n\nReturn ONLY the JSON array without any additional text or explanation.\n")
	return sb.String()
}
