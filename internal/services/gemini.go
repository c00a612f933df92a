package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Models to try in order; newer free-tier models first.
var geminiModels = []string{
	"gemini-1.5-flash",
	"gemini-1.5-flash-8b",
	"gemini-2.0-flash",
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
			Role  string       `json:"role"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GeminiClient calls the Gemini REST API directly.
type GeminiClient struct {
	apiKey string
	http   *http.Client
	log    zerolog.Logger
}

func NewGeminiClient(apiKey string, log zerolog.Logger) *GeminiClient {
	return &GeminiClient{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 60 * time.Second},
		log:    log.With().Str("component", "gemini").Logger(),
	}
}

// Generate sends the prompt to Gemini, falling through the model list until
// one answers.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY not configured")
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:     0.7,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 2048,
		},
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	var lastErr error
	for _, model := range geminiModels {
		url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", model, g.apiKey)

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
		if err != nil {
			return "", err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := g.http.Do(httpReq)
		if err != nil {
			lastErr = err
			g.log.Warn().Err(err).Str("model", model).Msg("gemini request failed")
			continue
		}
		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		var gr geminiResponse
		if err := json.Unmarshal(respBody, &gr); err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode == http.StatusOK &&
			len(gr.Candidates) > 0 && len(gr.Candidates[0].Content.Parts) > 0 {
			return gr.Candidates[0].Content.Parts[0].Text, nil
		}

		if gr.Error.Message != "" {
			lastErr = errors.New(gr.Error.Message)
		} else {
			lastErr = fmt.Errorf("gemini returned status %d", resp.StatusCode)
		}
		g.log.Warn().Str("model", model).Err(lastErr).Msg("model failed, trying next")
	}
	return "", fmt.Errorf("all models failed: %w", lastErr)
}

// ExtractJSON pulls the JSON object out of a model reply that may be wrapped
// in markdown fences or prose.
func ExtractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first >= 0 && last > first {
		return text[first : last+1]
	}
	return text
}
