package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrChatDisabled is returned when no LLM endpoint is configured.
var ErrChatDisabled = errors.New("chat assistant not configured")

// System prompts for the chat assistants. The engine has no NLP of its own;
// these wrappers only proxy message lists to the remote endpoint and return
// the response text.
var personaPrompts = map[string]string{
	"legal": "You are a travel-law research assistant for digital nomads. " +
		"Explain visa rules, residency tests and tax treaties in plain language. " +
		"You provide general information, not legal advice; recommend consulting a licensed attorney for decisions.",
	"medical": "You are a travel-health assistant for long-term travelers. " +
		"Answer questions about vaccinations, travel insurance and finding care abroad. " +
		"You provide general information, not medical advice; recommend seeing a clinician for diagnosis or treatment.",
	"trip": "You are a trip-planning assistant for digital nomads. " +
		"Help plan itineraries with visa-free stays, coworking hubs and overland routes in mind. Be concrete and concise.",
}

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// ChatService proxies persona-scoped conversations to a remote
// OpenAI-compatible chat endpoint.
type ChatService struct {
	client *resty.Client
	model  string
}

// NewChatService creates a chat proxy. An empty baseURL disables the
// service; Ask then returns ErrChatDisabled.
func NewChatService(baseURL, apiKey, model string, timeout time.Duration) *ChatService {
	if baseURL == "" {
		return &ChatService{}
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}
	return &ChatService{client: client, model: model}
}

// Personas lists the available assistant personas, sorted.
func Personas() []string {
	out := make([]string, 0, len(personaPrompts))
	for name := range personaPrompts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Ask sends the conversation to the remote endpoint under the persona's
// system prompt and returns the assistant's reply text.
func (s *ChatService) Ask(ctx context.Context, persona string, messages []ChatMessage) (string, error) {
	if s.client == nil {
		return "", ErrChatDisabled
	}
	prompt, ok := personaPrompts[persona]
	if !ok {
		return "", fmt.Errorf("unknown persona %q", persona)
	}
	if len(messages) == 0 {
		return "", fmt.Errorf("empty conversation")
	}

	payload := chatRequest{
		Model:    s.model,
		Messages: append([]ChatMessage{{Role: "system", Content: prompt}}, messages...),
	}

	var out chatResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("llm endpoint returned %s", resp.Status())
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("llm endpoint returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
