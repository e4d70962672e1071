package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	domsvc "MacroPulse/internal/domain/service"
	xhttp "MacroPulse/pkg/http"
	"MacroPulse/pkg/logger"
)

var (
	// MissingKey is returned when no API key is configured.
	MissingKey = models.Insight{
		Title:       "API Key Missing",
		Content:     "Please configure your Gemini API key to receive AI-powered market insights.",
		KeyTakeaway: "No data available.",
	}
	// Unavailable is returned on any generation failure.
	Unavailable = models.Insight{
		Title:       "Analysis Unavailable",
		Content:     "We couldn't generate an insight at this moment. The markets are complex!",
		KeyTakeaway: "Try changing your filters.",
	}
)

const systemInstruction = "You are a helpful financial analyst dashboard assistant. Always return JSON."

type Config struct {
	BaseURL string
	Model   string
	APIKey  string
	Timeout time.Duration
	Retries int
}

// Gemini generates insights with the generateContent REST endpoint.
type Gemini struct {
	cfg     Config
	base    *httpBase
	metrics drepo.Metrics
	logger  *logger.Logger
}

var _ domsvc.InsightGenerator = (*Gemini)(nil)

func NewGemini(cfg Config, m drepo.Metrics, l *logger.Logger) *Gemini {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	var opts []xhttp.ClientOption
	if cfg.APIKey != "" {
		opts = append(opts, xhttp.WithHeader("x-goog-api-key", cfg.APIKey))
	}
	return &Gemini{
		cfg:     cfg,
		base:    newHTTPBase(strings.TrimRight(cfg.BaseURL, "/"), cfg.Timeout, opts...),
		metrics: m,
		logger:  l,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type schema struct {
	Type       string            `json:"type"`
	Properties map[string]schema `json:"properties,omitempty"`
	Required   []string          `json:"required,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
	ResponseSchema   schema `json:"responseSchema"`
}

type generateRequest struct {
	SystemInstruction content          `json:"systemInstruction"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var insightSchema = schema{
	Type: "OBJECT",
	Properties: map[string]schema{
		"title":       {Type: "STRING"},
		"content":     {Type: "STRING"},
		"keyTakeaway": {Type: "STRING"},
	},
	Required: []string{"title", "content", "keyTakeaway"},
}

// Generate never fails: without a key it returns MissingKey, on any error Unavailable.
func (g *Gemini) Generate(ctx context.Context, req models.InsightRequest) models.Insight {
	if g.cfg.APIKey == "" {
		return MissingKey
	}

	start := time.Now()
	defer func() {
		g.metrics.RecordLatency("insight_generate", time.Since(start).Seconds())
	}()

	prompt, err := buildPrompt(req)
	if err != nil {
		return g.fail(err)
	}

	body := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: systemInstruction}}},
		Contents:          []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   insightSchema,
		},
	}

	var resp generateResponse
	path := fmt.Sprintf("/models/%s:generateContent", url.PathEscape(g.cfg.Model))
	if err := g.base.PostJSONWithRetry(ctx, path, body, &resp, g.cfg.Retries); err != nil {
		return g.fail(err)
	}

	out, err := parseInsight(resp)
	if err != nil {
		return g.fail(err)
	}
	return out
}

func (g *Gemini) fail(err error) models.Insight {
	g.logger.Warn("insight generation failed", logger.String("model", g.cfg.Model), logger.Error(err))
	g.metrics.RecordError("insight")
	return Unavailable
}

func parseInsight(resp generateResponse) (models.Insight, error) {
	var text strings.Builder
	if len(resp.Candidates) > 0 {
		for _, p := range resp.Candidates[0].Content.Parts {
			text.WriteString(p.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return models.Insight{}, errors.New("empty response")
	}

	var out models.Insight
	if err := json.Unmarshal([]byte(text.String()), &out); err != nil {
		return models.Insight{}, fmt.Errorf("decode insight: %w", err)
	}
	if out.Title == "" && out.Content == "" {
		return models.Insight{}, errors.New("insight has no title or content")
	}
	return out, nil
}
