package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/utafrali/review-insights/pkg/httpclient"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client errors.
var (
	// ErrMissingAPIKey means the API key is absent or still a placeholder, so
	// the client must not be constructed.
	ErrMissingAPIKey = errors.New("genai: api key missing or placeholder")

	// ErrEmptyResponse means the service answered without any generated text.
	ErrEmptyResponse = errors.New("genai: empty response")

	// ErrBlocked means the service refused to generate for this prompt.
	ErrBlocked = errors.New("genai: prompt blocked")
)

// placeholders are key values that mean "not configured" rather than a real
// credential. Deployments often ship templates with these literals.
var placeholders = []string{
	"your-api-key",
	"your_api_key",
	"your-gemini-api-key",
	"your_gemini_api_key",
	"changeme",
	"xxx",
}

// Config holds the text generation service settings.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns production defaults for the generation client. The
// API key must be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		Model:       "gemini-2.0-flash",
		BaseURL:     defaultBaseURL,
		Timeout:     20 * time.Second,
		MaxTokens:   512,
		Temperature: 0.4,
	}
}

// KeyConfigured reports whether the key looks like a real credential.
func (c Config) KeyConfigured() bool {
	key := strings.TrimSpace(c.APIKey)
	if key == "" {
		return false
	}
	lower := strings.ToLower(key)
	for _, p := range placeholders {
		if lower == p {
			return false
		}
	}
	return true
}

// Client calls the Gemini generateContent REST API through a retrying,
// circuit-broken HTTP client. It implements the engine's TextGenerator.
type Client struct {
	cfg    Config
	http   *httpclient.BreakerClient
	logger *slog.Logger
}

// New creates a generation client. It returns ErrMissingAPIKey when the key
// is absent or a known placeholder so callers can skip AI generation cleanly.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	if !cfg.KeyConfigured() {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.Timeout
	inner := httpclient.New(httpCfg)

	return &Client{
		cfg:    cfg,
		http:   httpclient.NewBreakerClient(inner, httpclient.DefaultBreakerConfig("genai"), logger),
		logger: logger,
	}, nil
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// GenerateText sends the prompt to the generation service and returns the
// concatenated text of the first candidate.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxTokens,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("call generation service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("generation service returned %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}

	if genResp.PromptFeedback != nil && genResp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: %s", ErrBlocked, genResp.PromptFeedback.BlockReason)
	}
	if len(genResp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	var b strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
