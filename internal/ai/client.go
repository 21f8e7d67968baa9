// Package ai wraps the Gemini generateContent API behind coach-facing
// helpers with a persisted per-coach request quota.
package ai

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/latateni/latateni-server/internal/errors"
)

// Client calls the Gemini generateContent endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	model      string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a Gemini client. endpoint is the API base URL without a
// trailing slash; an empty apiKey is allowed and rejected at call time.
func NewClient(endpoint, model, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		model:      model,
		apiKey:     apiKey,
		logger:     logger,
	}
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generate sends a single-turn prompt and returns the generated text.
// Provider failures come back as upstream errors with the HTTP status; they
// never panic on malformed response shapes.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.Upstream("Gemini API nøgle mangler! Tilføj den til serverens konfiguration")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 2048,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Upstream("AI tjenesten kunne ikke kontaktes").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body for the log; the user message carries
		// only the status.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("generateContent failed",
			slog.String("model", c.model),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(snippet)))
		return "", apperrors.Upstreamf("API fejl: %d", resp.StatusCode)
	}

	var parsed generateResponse
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.Upstream("AI svaret kunne ikke læses").WithCause(err)
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", apperrors.Upstream("AI svaret kunne ikke fortolkes").WithCause(err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.Upstream("AI svaret var tomt")
	}

	c.logger.Debug("generateContent succeeded",
		slog.String("model", c.model),
		slog.Duration("elapsed", time.Since(start)))

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
