// Package llm generates wheel labels through an OpenAI-compatible
// chat-completions endpoint.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Makepad-fr/spinwin/internal/generate"
)

// Gemini's OpenAI-compatible surface.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultModel   = "gemini-2.5-flash"
)

// maxBody bounds how much of an upstream response is read.
const maxBody = 1 << 20

// Client implements generate.Generator.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	fallbackModels []string
	logger         *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, fallbackModels []string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient:     httpClient,
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		model:          model,
		fallbackModels: fallbackModels,
		logger:         logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type itemsPayload struct {
	Items []string `json:"items"`
}

// Generate asks the primary model, then each fallback in order, for labels
// matching theme.
func (c *Client) Generate(ctx context.Context, theme string) ([]string, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return nil, generate.ErrEmptyTheme
	}
	if c.apiKey == "" {
		return nil, generate.ErrMissingCredential
	}

	models := make([]string, 0, 1+len(c.fallbackModels))
	models = append(models, c.model)
	models = append(models, c.fallbackModels...)

	var lastErr error
	for _, model := range models {
		labels, err := c.generateWithModel(ctx, theme, model)
		if err == nil {
			c.logger.InfoContext(ctx, "generated labels", "model", model, "items", len(labels))
			return labels, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if len(models) > 1 {
			c.logger.WarnContext(ctx, "model failed, trying next", "model", model, "error", err)
		}
	}
	return nil, lastErr
}

func (c *Client) generateWithModel(ctx context.Context, theme, model string) ([]string, error) {
	user := buildPrompt(theme)

	content, err := c.callLLM(ctx, model, systemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generate.ErrUpstream, err)
	}

	var out itemsPayload
	if err := json.Unmarshal([]byte(stripFences(content)), &out); err != nil {
		c.logger.WarnContext(ctx, "LLM returned invalid JSON, retrying", "model", model, "error", err)
		content, err = c.callLLM(ctx, model, systemPrompt, retryPrompt(content))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", generate.ErrUpstream, err)
		}
		if err := json.Unmarshal([]byte(stripFences(content)), &out); err != nil {
			return nil, fmt.Errorf("%w: %w", generate.ErrInvalidJSON, err)
		}
	}

	labels := generate.Clean(out.Items)
	if len(labels) == 0 {
		return nil, generate.ErrEmptyResult
	}
	return labels, nil
}

func (c *Client) callLLM(ctx context.Context, model, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// stripFences removes a markdown code fence some models wrap JSON in.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

const systemPrompt = `You fill a "Spin the Wheel" game with options.

Respond with ONLY a JSON object (no markdown, no code fences, no extra text) matching this exact schema:
{
  "items": ["<option>", "<option>"]
}`

func buildPrompt(theme string) string {
	return fmt.Sprintf(`Generate a list of 6 to 10 short, fun, and distinct options for a "Spin the Wheel" game based on the theme: %q.
Keep labels under 20 characters. Add a relevant emoji to each label if possible.`, theme)
}

func retryPrompt(badJSON string) string {
	return fmt.Sprintf(`Your previous response was not valid JSON. Here is what you returned:
%s

Return ONLY the corrected JSON object matching this schema (no markdown, no code fences):
{
  "items": ["<option>", "<option>"]
}`, badJSON)
}
