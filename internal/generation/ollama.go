package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/studypilot/backend/internal/domain/bandit"
)

// OllamaGenerator produces study content by calling an OpenAI-compatible
// LLM endpoint (Ollama, LM Studio, vLLM, etc.).
type OllamaGenerator struct {
	url    string       // e.g. "http://localhost:1234"
	model  string       // e.g. "qwen3-8b"
	client *http.Client // reused across calls
}

// Compile-time check: *OllamaGenerator satisfies the Generator interface.
var _ Generator = (*OllamaGenerator)(nil)

// GenerateError is returned when generation fails so the caller can
// distinguish "LLM produced unusable output" from "LLM was unreachable."
type GenerateError struct {
	Reason  string
	Wrapped error
}

func (e *GenerateError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

func (e *GenerateError) Unwrap() error {
	return e.Wrapped
}

// NewOllamaGenerator creates a generator that calls the given LLM endpoint.
func NewOllamaGenerator(url, model string) *OllamaGenerator {
	return &OllamaGenerator{
		url:   url,
		model: model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

const maxRetries = 2

// Generate asks the LLM for count items of the given modality based on
// the source chunks. It retries once on parse failure (small models
// sometimes need a second try).
func (g *OllamaGenerator) Generate(ctx context.Context, mode bandit.Mode, chunks []string, count int) ([]Item, error) {
	prompt := buildPrompt(mode, chunks, count)

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		raw, err := g.callLLM(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		jsonStr := extractJSONArray(raw)
		if jsonStr == "" {
			lastErr = &GenerateError{Reason: "no JSON array found in LLM response"}
			continue
		}

		var items []Item
		if err := json.Unmarshal([]byte(jsonStr), &items); err != nil {
			lastErr = &GenerateError{Reason: "invalid JSON from LLM", Wrapped: err}
			continue
		}
		if len(items) == 0 {
			lastErr = &GenerateError{Reason: "LLM returned no items"}
			continue
		}
		if len(items) > count {
			items = items[:count]
		}
		return items, nil
	}

	return nil, &GenerateError{
		Reason:  fmt.Sprintf("failed after %d attempts", maxRetries),
		Wrapped: lastErr,
	}
}

// ============================================================================
// LLM communication
// ============================================================================

type llmRequest struct {
	Model       string       `json:"model"`
	Messages    []llmMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// callLLM sends a single request to the LLM and returns the raw text response.
func (g *OllamaGenerator) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := llmRequest{
		Model: g.model,
		Messages: []llmMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.4,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM returned status %d", resp.StatusCode)
	}

	var llmResp llmResponse
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", fmt.Errorf("failed to decode LLM response: %w", err)
	}

	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}

	content := llmResp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("LLM returned empty content")
	}

	return content, nil
}

// extractJSONArray finds the outermost JSON array in a string, handling
// nested brackets and skipping brackets inside quoted strings.
func extractJSONArray(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range s {
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if ch == '[' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == ']' {
			depth--
			if depth == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// ============================================================================
// Prompt builders. Kept short and directive for small (4-8B) models.
// ============================================================================

func buildPrompt(mode bandit.Mode, chunks []string, count int) string {
	var sb strings.Builder

	switch mode {
	case bandit.ModeFlashcard:
		fmt.Fprintf(&sb, "Create exactly %d flashcards from the study material below.\n", count)
		sb.WriteString("Each card has a \"prompt\" (the front) and an \"answer\" (the back).\n")
	case bandit.ModeInteractive:
		fmt.Fprintf(&sb, "Create exactly %d short interactive lesson steps from the study material below.\n", count)
		sb.WriteString("Each step has a \"prompt\" (a step title) and an \"answer\" (2-3 sentences of explanation).\n")
	default:
		fmt.Fprintf(&sb, "Create exactly %d quiz questions from the study material below.\n", count)
		sb.WriteString("Each question has a \"prompt\" (the question) and an \"answer\" (the expected answer).\n")
	}

	sb.WriteString("Respond with ONLY a JSON array of objects with keys \"prompt\" and \"answer\". No other text.\n\n")
	sb.WriteString("Study material:\n")
	for i, chunk := range chunks {
		fmt.Fprintf(&sb, "--- chunk %d ---\n%s\n", i+1, chunk)
	}

	return sb.String()
}
