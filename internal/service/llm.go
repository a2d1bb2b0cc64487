package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/config"
)

// LLMClient is the interface to the hosted language model used for
// filter extraction, reranking and answer summaries. Implementations
// must be safe for concurrent use.
type LLMClient interface {
	// ChatJSON sends a chat completion request in JSON mode and returns
	// the raw message content.
	ChatJSON(ctx context.Context, system, user string) (string, error)

	// Chat sends a plain chat completion request.
	Chat(ctx context.Context, system, user string) (string, error)

	// CreateEmbedding generates an embedding vector for the text.
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)

	// IsEnabled returns whether the client is configured and ready.
	IsEnabled() bool
}

// GroqClient talks to an OpenAI-compatible API (Groq by default).
type GroqClient struct {
	config     *config.LLMConfig
	httpClient *http.Client
}

// Ensure GroqClient implements LLMClient
var _ LLMClient = (*GroqClient)(nil)

// NewGroqClient creates a new client for an OpenAI-compatible endpoint
func NewGroqClient(cfg *config.LLMConfig) *GroqClient {
	return &GroqClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// IsEnabled returns whether the client is configured and ready
func (c *GroqClient) IsEnabled() bool {
	return c.config.Enabled
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"` // "json_object" or "text"
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

type embeddingRequest struct {
	Model      string   `json:"model"`
	Input      []string `json:"input"`
	Dimensions int      `json:"dimensions,omitempty"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

// ChatJSON performs a chat completion in JSON mode
func (c *GroqClient) ChatJSON(ctx context.Context, system, user string) (string, error) {
	return c.complete(ctx, system, user, &responseFormat{Type: "json_object"})
}

// Chat performs a plain chat completion
func (c *GroqClient) Chat(ctx context.Context, system, user string) (string, error) {
	return c.complete(ctx, system, user, nil)
}

func (c *GroqClient) complete(ctx context.Context, system, user string, format *responseFormat) (string, error) {
	if !c.config.Enabled {
		return "", fmt.Errorf("LLM API is not enabled (missing API key)")
	}

	req := chatCompletionRequest{
		Model: c.config.ChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    c.config.ChatTemperature,
		ResponseFormat: format,
	}

	body, err := c.post(ctx, "/chat/completions", req)
	if err != nil {
		return "", err
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return result.Choices[0].Message.Content, nil
}

// CreateEmbedding generates an embedding for the given text
func (c *GroqClient) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("LLM API is not enabled (missing API key)")
	}

	req := embeddingRequest{
		Model:      c.config.EmbeddingModel,
		Input:      []string{text},
		Dimensions: c.config.EmbeddingDimensions,
	}

	body, err := c.post(ctx, "/embeddings", req)
	if err != nil {
		return nil, err
	}

	var result embeddingResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(result.Data) == 0 {
		return nil, fmt.Errorf("no embedding in response")
	}

	return result.Data[0].Embedding, nil
}

func (c *GroqClient) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.config.APIBase + path
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
