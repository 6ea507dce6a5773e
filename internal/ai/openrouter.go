// Package ai – OpenRouter-backed Generator.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// openRouterBaseURL is the OpenRouter chat-completions API root.
const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterClient implements Generator against the OpenRouter
// chat-completions API.
type OpenRouterClient struct {
	http   *resty.Client
	apiKey string
	model  string
}

// NewOpenRouterClient builds an OpenRouter-backed Generator for the given
// model (e.g. "openai/gpt-4o-mini").
func NewOpenRouterClient(apiKey, model string) (*OpenRouterClient, error) {
	if apiKey == "" {
		return nil, errors.New("openrouter api key is empty")
	}
	if model == "" {
		return nil, errors.New("openrouter model name is empty")
	}
	return &OpenRouterClient{
		http:   resty.New().SetBaseURL(openRouterBaseURL),
		apiKey: apiKey,
		model:  model,
	}, nil
}

// Generate performs a single chat-completion call and returns the first
// choice's message content.
func (c *OpenRouterClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a senior engineer reviewing developer portfolios."},
			{"role": "user", "content": prompt},
		},
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("openrouter returned status %d", resp.StatusCode())
	}

	content := gjson.GetBytes(resp.Body(), "choices.0.message.content").String()
	if content == "" {
		return "", errors.New("openrouter returned no choices")
	}
	return content, nil
}
