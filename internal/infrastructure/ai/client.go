package ai

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

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("ai client disabled")

// Client talks to an OpenAI-compatible API for chat completions and embeddings.
type Client struct {
	apiKey     string
	baseURL    string
	chatModel  string
	embedModel string
	dims       int
	client     *http.Client
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type embedRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embedResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

func NewClient(baseURL, apiKey, chatModel, embedModel string, dims int) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		chatModel:  chatModel,
		embedModel: embedModel,
		dims:       dims,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Enabled reports whether the client has an API key and can make requests.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

// ChatCompletion sends a chat request and returns the assistant's reply text.
func (c *Client) ChatCompletion(ctx context.Context, messages []Message) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	var out chatResponse
	err := c.post(ctx, "/chat/completions", chatRequest{
		Model:       c.chatModel,
		Messages:    messages,
		Temperature: 0.2,
	}, &out)
	if err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("empty completion response")
	}
	return out.Choices[0].Message.Content, nil
}

// Embed returns an embedding vector for the given text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	var out embedResponse
	err := c.post(ctx, "/embeddings", embedRequest{
		Model:      c.embedModel,
		Input:      []string{text},
		Dimensions: c.dims,
	}, &out)
	if err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, errors.New("empty embedding response")
	}
	return out.Data[0].Embedding, nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("ai api status %d: %s", resp.StatusCode, string(msg))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
