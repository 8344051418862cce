package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/fundscout/fundscout/internal/model"
)

const openAISystemPrompt = `You evaluate web page text for concrete financial opportunities:
signup bonuses, grants, rebates, scholarships, settlements, or unclaimed funds.

Respond with a single JSON object and nothing else:
  {"title": "...", "trust_score": 0-10, "summary": "..."}
trust_score reflects how confident you are that the page describes a real,
actionable opportunity. If the page describes no financial opportunity at
all, respond with the literal string: null`

// maxClassifyChars caps how much page text is sent per request.
const maxClassifyChars = 12000

// OpenAI classifies page text with a chat-completion model. It is the
// production-grade replacement for the keyword matcher behind the same
// contract.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI-backed classifier.
func NewOpenAI(cfg model.ClassifyConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	return &OpenAI{
		client: openai.NewClient(cfg.APIKey),
		model:  modelName,
	}, nil
}

// Name returns the classifier name
func (o *OpenAI) Name() string {
	return "openai"
}

type openAIVerdict struct {
	Title      string `json:"title"`
	TrustScore int    `json:"trust_score"`
	Summary    string `json:"summary"`
}

// Classify sends the page text to the model and parses its verdict.
func (o *OpenAI) Classify(ctx context.Context, text, sourceURL string) (*model.Opportunity, error) {
	if len(text) > maxClassifyChars {
		text = text[:maxClassifyChars]
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Source URL: %s\n\nPage text:\n%s", sourceURL, text)},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parseVerdict(resp.Choices[0].Message.Content, sourceURL)
}

// parseVerdict turns the model output into an Opportunity or nil.
func parseVerdict(content, sourceURL string) (*model.Opportunity, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	if content == "" || strings.EqualFold(content, "null") {
		return nil, nil
	}

	var verdict openAIVerdict
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		return nil, fmt.Errorf("parse verdict: %w", err)
	}

	score := verdict.TrustScore
	if score < 0 {
		score = 0
	}
	if score > 10 {
		score = 10
	}

	return &model.Opportunity{
		Title:      verdict.Title,
		TrustScore: score,
		SourceURL:  sourceURL,
		Summary:    verdict.Summary,
	}, nil
}
