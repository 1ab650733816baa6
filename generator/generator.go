package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"gatekeeper/api/config"
	"gatekeeper/api/models"
)

// UpstreamError is a transport or auth failure talking to the generative
// service. Unlike malformed output, this is propagated to the caller.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generative service error: status=%d body=%s", e.StatusCode, e.Body)
}

// Generator asks an OpenAI-compatible chat completions endpoint for candidate
// catalog entries. Malformed output never fails the request: the fixed seed
// set stands in, tagged with "seed-" ids so downstream consumers can tell the
// synthetic entries from generated ones.
type Generator struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	now        func() time.Time
}

func New(cfg *config.Config) *Generator {
	return &Generator{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiKey:  cfg.OpenAIKey,
		model:   cfg.OpenAIModel,
		baseURL: cfg.OpenAIBaseURL,
		now:     time.Now,
	}
}

const productPrompt = `You are a product curator for a home wellness store.
Propose %d new products as a JSON array. Each element must have the fields:
id, title, category (one of Air, Sleep, Body, Home, Calm), image, description,
buy_link. Respond with the JSON array only, no prose.`

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate requests count candidate products. Transport and auth failures
// surface as UpstreamError; unparseable or empty output degrades to the seed
// set instead.
func (g *Generator) Generate(ctx context.Context, count int) ([]models.Product, error) {
	if count <= 0 {
		count = 2
	}
	if g.apiKey == "" {
		return nil, &UpstreamError{StatusCode: http.StatusUnauthorized, Body: "OPENAI_API_KEY is not configured"}
	}

	content, err := g.complete(ctx, fmt.Sprintf(productPrompt, count))
	if err != nil {
		return nil, err
	}

	candidates, ok := parseProducts(content)
	if !ok {
		log.Printf("Generated content was not a usable product array, falling back to seed set")
		return SeedProducts(g.now()), nil
	}

	for i := range candidates {
		if candidates[i].ID == "" {
			candidates[i].ID = "gen-" + uuid.New().String()
		}
	}
	return candidates, nil
}

func (g *Generator) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return "", nil
	}
	return payload.Choices[0].Message.Content, nil
}

func parseProducts(content string) ([]models.Product, bool) {
	stripped := StripCodeFence(content)
	if stripped == "" {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(stripped), &products); err != nil {
		return nil, false
	}
	if len(products) == 0 {
		return nil, false
	}
	return products, true
}

// StripCodeFence removes a surrounding ``` block, with or without a language
// tag, from model output.
func StripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag line (```json etc).
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// SeedProducts is the hard-coded fallback batch. The "seed-" id prefix marks
// entries as synthetic; merge dedup makes repeated fallbacks a no-op.
func SeedProducts(now time.Time) []models.Product {
	products := []models.Product{
		{
			ID:          "seed-air-purifier",
			Title:       "Compact HEPA Air Purifier",
			Category:    "Air",
			Description: "Quiet three-stage filtration for small rooms.",
		},
		{
			ID:          "seed-sleep-mask",
			Title:       "Contoured Blackout Sleep Mask",
			Category:    "Sleep",
			Description: "Zero-pressure eye cups with an adjustable strap.",
		},
	}
	for i := range products {
		products[i].Normalize(now)
	}
	return products
}
