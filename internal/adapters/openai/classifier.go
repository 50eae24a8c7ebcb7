// Package openai provides a remote LLM-backed classifier behind the same
// port as the local model, used as an optional second opinion.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/textproc"
)

// Classifier asks an OpenAI chat model whether a message is spam.
type Classifier struct {
	client       *openai.Client
	modelName    string
	maxTokens    int
	temperature  float32
	topP         float32
	maxTextSize  int
	logger       *zap.Logger
	promptFormat string
}

// verdictResponse is the structured JSON the model is instructed to emit.
type verdictResponse struct {
	IsSpam      bool    `json:"is_spam"`
	Score       float64 `json:"score"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// NewClassifier creates an OpenAI-backed classifier.
func NewClassifier(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxTextSize int,
	logger *zap.Logger,
) *Classifier {
	return &Classifier{
		client:      openai.NewClient(apiKey),
		modelName:   modelName,
		maxTokens:   maxTokens,
		temperature: temperature,
		topP:        topP,
		maxTextSize: maxTextSize,
		logger:      logger,
		promptFormat: `You are an SMS spam detection system. The message may be written in English or Russian. Analyze the following SMS message and determine if it's spam.
Respond with a JSON object containing:
- is_spam: boolean (true if spam, false if not)
- score: number between 0 and 1 (higher means more likely to be spam)
- confidence: number between 0 and 1 (how confident you are in your assessment)
- explanation: string (brief explanation of why you think it's spam or not)

Message:
%s

Respond only with the JSON object and nothing else.`,
	}
}

// Classify sends the message to the chat model and parses its verdict.
func (c *Classifier) Classify(ctx context.Context, message string) (*core.Prediction, error) {
	text := textproc.Truncate(textproc.SanitizeUTF8(message), c.maxTextSize)
	prompt := fmt.Sprintf(c.promptFormat, text)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an SMS spam detection system. Respond only with JSON.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	verdict, err := parseVerdict(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	label := core.LabelHam
	if verdict.IsSpam {
		label = core.LabelSpam
	}

	return &core.Prediction{
		Label:       label,
		IsSpam:      verdict.IsSpam,
		Score:       verdict.Score,
		Confidence:  verdict.Confidence,
		Explanation: verdict.Explanation,
		AnalyzedAt:  time.Now(),
		ModelUsed:   c.modelName,
	}, nil
}

// parseVerdict decodes the model's JSON, tolerating prose wrapped around
// the object.
func parseVerdict(text string) (*verdictResponse, error) {
	var verdict verdictResponse
	if err := json.Unmarshal([]byte(text), &verdict); err == nil {
		return &verdict, nil
	}

	start, end := -1, -1
	for i := 0; i < len(text); i++ {
		if text[i] == '{' {
			start = i
			break
		}
	}
	for i := len(text) - 1; i >= 0; i-- {
		if text[i] == '}' {
			end = i + 1
			break
		}
	}
	if start < 0 || end <= start {
		return nil, fmt.Errorf("failed to extract JSON from LLM response")
	}
	if err := json.Unmarshal([]byte(text[start:end]), &verdict); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}
	return &verdict, nil
}
