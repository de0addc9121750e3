// Package gemini is a focused client for the Generative Language
// generateContent endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"tutorchat/internal/domain"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// content is one conversation turn in endpoint terms. The endpoint has no
// system role; roles are "user" and "model".
type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generationConfig carries the fixed sampling parameters sent with every
// request.
type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

// generateResponse is the minimal success shape returned by the endpoint.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
			Role  string `json:"role"`
		} `json:"content"`
	} `json:"candidates"`
}

// errorResponse is the shape the endpoint returns on non-2xx statuses.
type errorResponse struct {
	Error struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Status  string          `json:"status"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func defaultGenerationConfig() generationConfig {
	return generationConfig{
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 1000,
	}
}

func defaultSafetySettings() []safetySetting {
	const threshold = "BLOCK_MEDIUM_AND_ABOVE"
	return []safetySetting{
		{Category: "HARM_CATEGORY_HARASSMENT", Threshold: threshold},
		{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: threshold},
		{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: threshold},
		{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: threshold},
	}
}

// Category is the machine-readable classification of a failed generate call,
// computed once at the transport boundary.
type Category string

const (
	CategoryInvalidCredential Category = "invalid_credential"
	CategoryRateLimited       Category = "rate_limited"
	CategoryQuotaExceeded     Category = "quota_exceeded"
	CategoryUpstream          Category = "upstream"
)

// StatusError captures a non-2xx endpoint response with status-aware
// context. Message is the upstream error text, already extracted from the
// JSON error body when one was present.
type StatusError struct {
	StatusCode int
	Category   Category
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gemini: unexpected status %d (%s): %s", e.StatusCode, e.Category, e.Message)
}

func (e *StatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// classify maps a status code and upstream message to a Category. The quota
// check matches on the upstream message because the endpoint reports quota
// exhaustion under a generic status.
func classify(status int, message string) Category {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return CategoryInvalidCredential
	case status == http.StatusTooManyRequests:
		return CategoryRateLimited
	case strings.Contains(strings.ToLower(message), "quota"):
		return CategoryQuotaExceeded
	default:
		return CategoryUpstream
	}
}

// Client sends conversations to the generateContent endpoint for a single
// model.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client for the given model identifier. The default
// HTTP client carries no timeout; a call waits until the transport itself
// gives up or the context is cancelled.
func NewClient(model string, opts ...Option) (*Client, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, errors.New("gemini: model must not be empty")
	}
	c := &Client{
		baseURL:    defaultBaseURL,
		model:      model,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) resolvedHTTPClient() *http.Client {
	if c.httpClient != nil {
		return c.httpClient
	}
	return &http.Client{}
}

// generateURL builds the endpoint URL. The credential travels as a query
// parameter; never log the result.
func (c *Client) generateURL(apiKey string) string {
	base := strings.TrimRight(c.baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", base, c.model, url.QueryEscape(apiKey))
}

// Generate sends the conversation to the endpoint and returns the first
// candidate's text. Non-2xx responses come back as a *StatusError carrying
// the upstream message and its classification; malformed success bodies are
// plain errors.
func (c *Client) Generate(ctx context.Context, apiKey string, messages []domain.ChatMessage) (string, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return "", errors.New("gemini: api key must not be empty")
	}
	if len(messages) == 0 {
		return "", errors.New("gemini: messages must not be empty")
	}

	body, err := json.Marshal(generateRequest{
		Contents:         toContents(messages),
		GenerationConfig: defaultGenerationConfig(),
		SafetySettings:   defaultSafetySettings(),
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	req, reqErr := http.NewRequestWithContext(ctx, http.MethodPost, c.generateURL(apiKey), bytes.NewReader(body))
	if reqErr != nil {
		return "", fmt.Errorf("gemini: create request: %w", reqErr)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, doErr := c.resolvedHTTPClient().Do(req)
	if doErr != nil {
		return "", fmt.Errorf("gemini: request failed: %w", doErr)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("gemini: read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg := upstreamMessage(raw)
		return "", &StatusError{
			StatusCode: res.StatusCode,
			Category:   classify(res.StatusCode, msg),
			Message:    msg,
		}
	}

	var payload generateResponse
	if decErr := json.Unmarshal(raw, &payload); decErr != nil {
		return "", fmt.Errorf("gemini: decode response: %w", decErr)
	}
	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: no candidates in response")
	}
	text := payload.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini: empty candidate text")
	}
	return text, nil
}

// toContents maps provider-agnostic messages to endpoint turns. Assistant
// turns become the "model" role; everything else is sent as "user".
func toContents(messages []domain.ChatMessage) []content {
	out := make([]content, 0, len(messages))
	for _, m := range messages {
		role := "user"
		if m.Role == string(domain.RoleAssistant) {
			role = "model"
		}
		out = append(out, content{
			Role:  role,
			Parts: []part{{Text: m.Content}},
		})
	}
	return out
}

// upstreamMessage extracts human-readable error text from a failed response
// body, preferring error.message, then error.details, then the raw body.
func upstreamMessage(raw []byte) string {
	var payload errorResponse
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Error.Message != "" {
			return payload.Error.Message
		}
		if len(payload.Error.Details) > 0 {
			var details string
			if err := json.Unmarshal(payload.Error.Details, &details); err == nil && details != "" {
				return details
			}
			return string(payload.Error.Details)
		}
	}
	body := strings.TrimSpace(string(raw))
	if len(body) > 512 {
		body = body[:512]
	}
	return body
}
