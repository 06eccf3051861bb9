// Package assistant answers medication questions with OpenAI chat completions.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const maxTokens = 800

// SystemPrompt keeps answers educational.
const SystemPrompt = `You are an educational health assistant. Your role is to provide general, educational information about medications only. You must NEVER:
- Provide medical advice or prescribe
- Claim certainty about dosages or treatments
- Replace consultation with a licensed clinician or pharmacist

When discussing medications:
- Frame all information as educational only
- If asked about dosage, provide general typical adult dosage ranges only when confident from reliable sources; otherwise recommend consulting a doctor or pharmacist
- Always mention that individual factors (age, kidney function, pregnancy, other medications, allergies) matter and require professional assessment
- Encourage the user to consult their doctor or pharmacist for personalized advice

Respond in the same language as the user's question. Be concise and helpful while staying within these boundaries.`

// Disclaimer accompanies every answer.
const Disclaimer = "This information is for educational purposes only and does not constitute medical advice. Please consult a doctor or pharmacist for personalized guidance."

// Client wraps the OpenAI client.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient creates a client. baseURL overrides the API endpoint and is empty
// in production.
func NewClient(apiKey, model, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Client{api: openai.NewClientWithConfig(cfg), model: model}
}

// Ask sends the question, prefixed with the medication name when given, and
// returns the trimmed answer.
func (c *Client) Ask(ctx context.Context, question, contextMedName string) (string, error) {
	userContent := question
	if contextMedName != "" {
		userContent = fmt.Sprintf("Regarding medication: %s\n\nUser question: %s", contextMedName, question)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userContent},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
