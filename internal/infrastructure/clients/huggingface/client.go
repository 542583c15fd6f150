package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api-inference.huggingface.co/models"

// Client calls the Hugging Face Inference API for text generation.
// Each Generate call is a single attempt; callers own failure handling.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Hugging Face inference client.
func NewClient(apiKey, model string, timeout time.Duration) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("hugging face api key is required")
	}
	if model == "" {
		return nil, errors.New("hugging face model is required")
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
}

type generateParameters struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
}

type generateResponse struct {
	GeneratedText string `json:"generated_text"`
	Error         string `json:"error"`
}

// Generate runs one text completion and returns the raw model output.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			MaxNewTokens: 256,
			Temperature:  0.2,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("hugging face request failed with status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	// The API returns either a list of generations or a single object.
	var list []generateResponse
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		if list[0].Error != "" {
			return "", fmt.Errorf("hugging face error: %s", list[0].Error)
		}
		if list[0].GeneratedText != "" {
			return list[0].GeneratedText, nil
		}
	}

	var single generateResponse
	if err := json.Unmarshal(raw, &single); err == nil {
		if single.Error != "" {
			return "", fmt.Errorf("hugging face error: %s", single.Error)
		}
		if single.GeneratedText != "" {
			return single.GeneratedText, nil
		}
	}

	return "", errors.New("unexpected hugging face response format")
}
