package genai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Client wraps the Gemini API for text generation and audio transcription.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client using an API key.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// NewClientFromClient wraps an existing SDK client, mainly for tests.
func NewClientFromClient(c *genai.Client, model string) *Client {
	return &Client{client: c, model: model}
}

// GenerateText runs a single text completion and returns the raw output.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return firstText(result)
}

// GenerateWithAudio runs a completion over a prompt plus an inline audio clip.
func (c *Client) GenerateWithAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(audio, mimeType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", err
	}
	return firstText(result)
}

func firstText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty generation response")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
