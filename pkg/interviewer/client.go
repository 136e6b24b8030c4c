// Package interviewer wraps the Gemini API behind a small session-oriented
// interface: one Session per interview id, carrying the system instruction
// and the running conversation, plus a one-shot Generate for pre-session
// analysis. Callers treat every failure as a generic model-call failure.
package interviewer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// Session is one persistent conversation context. Send forwards a turn and
// returns the full-text reply.
type Session interface {
	Send(ctx context.Context, text string) (string, error)
}

// Client creates primed sessions and serves one-shot generations.
type Client interface {
	// NewSession opens a conversation primed with the system prompt.
	// The sessionID is informational (logging, upstream correlation).
	NewSession(ctx context.Context, sessionID, systemPrompt string) (Session, error)

	// Generate sends a standalone prompt with no session state.
	Generate(ctx context.Context, prompt string) (string, error)
}

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	return &GeminiClient{client: client, modelName: model}, nil
}

func (c *GeminiClient) NewSession(ctx context.Context, sessionID, systemPrompt string) (Session, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("gemini client is not initialized")
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
	}

	chat, err := c.client.Chats.Create(ctx, c.modelName, config, nil)
	if err != nil {
		return nil, fmt.Errorf("create chat session %s: %w", sessionID, err)
	}

	return &geminiSession{chat: chat}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", errors.New("gemini client is not initialized")
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return collectText(resp)
}

func (c *GeminiClient) Model() string {
	if c == nil {
		return ""
	}
	return c.modelName
}

type geminiSession struct {
	chat *genai.Chat
}

func (s *geminiSession) Send(ctx context.Context, text string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return collectText(resp)
}

// collectText joins the textual parts of every candidate, skipping empty
// ones, and fails on a fully empty reply.
func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini api returned no response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}

	return output, nil
}
