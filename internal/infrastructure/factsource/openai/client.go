// Package openai provides a FactSource implementation backed by an LLM, for
// play without network access to a wiki. The classifier applies the same
// gate cascade to its output as to wiki pages.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/chrono-core/internal/domain/ports"
	"github.com/ersonp/chrono-core/internal/infrastructure/config"
)

const searchPrompt = `You are a historical reference index. Given a query, list up to %d encyclopedia article titles about real historical events or people that best match it, ranked by relevance.

Return ONLY a valid JSON array, no other text.

Example:
Input: "norman invasion of england"
Output: [
  {"title": "Battle of Hastings", "snippet": "1066 battle between the Norman-French army and the English army"},
  {"title": "Norman Conquest", "snippet": "11th-century invasion and occupation of England"}
]`

const detailPrompt = `You are an encyclopedia. Write the opening paragraph of the article titled %q in plain prose, stating what it is and its complete dates ("Month Day, Year" where known), plus a one-line description.

Return ONLY a valid JSON object, no other text, shaped like:
{"title": "...", "description": "...", "extract": "..."}`

// Client implements the FactSource interface using OpenAI.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI fact source.
func NewClient(cfg config.SourceConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: openai.NewClient(cfg.APIKey),
		model:  model,
	}, nil
}

// Search returns ranked candidates for a free-text query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]ports.SearchHit, error) {
	content, err := c.complete(ctx, fmt.Sprintf(searchPrompt, limit), query)
	if err != nil {
		return nil, err
	}

	var hits []ports.SearchHit
	if err := json.Unmarshal([]byte(content), &hits); err != nil {
		return nil, fmt.Errorf("parsing search JSON: %w (response: %s)", err, content)
	}
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// Detail fetches descriptive text for a candidate title.
func (c *Client) Detail(ctx context.Context, title string) (*ports.PageDetail, error) {
	content, err := c.complete(ctx, fmt.Sprintf(detailPrompt, title), title)
	if err != nil {
		return nil, err
	}

	var detail ports.PageDetail
	if err := json.Unmarshal([]byte(content), &detail); err != nil {
		return nil, fmt.Errorf("parsing detail JSON: %w (response: %s)", err, content)
	}
	if detail.Title == "" {
		detail.Title = title
	}
	return &detail, nil
}

// complete runs one chat completion and returns the cleaned content.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: user,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	return cleanJSONResponse(resp.Choices[0].Message.Content), nil
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
