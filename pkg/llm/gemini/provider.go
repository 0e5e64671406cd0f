package gemini

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

	"finbot-be/pkg/llm"
)

// supportedModels is the closed set of model identifiers this adapter knows
// how to address. Constructing a provider for anything else fails, which is
// what lets the factory walk its candidate list.
var supportedModels = map[string]struct{}{
	"gemini-1.5-flash": {},
	"gemini-1.5-pro":   {},
	"gemini-pro":       {},
}

type Provider struct {
	apiKey string
	model  string
	client *http.Client
}

var _ llm.Provider = &Provider{}

// NewProvider validates the key and model up front. Validation failures are
// construction failures, distinct from invocation failures at Generate time.
func NewProvider(apiKey, model string) (*Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if _, ok := supportedModels[model]; !ok {
		return nil, fmt.Errorf("gemini: unsupported model %q", model)
	}
	return &Provider{
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (p *Provider) Model() string {
	return p.model
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type candidate struct {
	Content content `json:"content"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	opts := &llm.Options{Temperature: 0.7}
	for _, opt := range options {
		opt(opts)
	}

	payload := generateRequest{
		Contents: []content{{Parts: []contentPart{{Text: prompt}}, Role: "user"}},
		GenerationConfig: &generationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:generateContent",
		p.model,
	)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		kind := llm.KindUnclassified
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			kind = llm.KindTimeout
		}
		return "", &llm.Error{Kind: kind, Model: p.model, Err: err}
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &llm.Error{Kind: llm.KindUnclassified, Model: p.model, Err: err}
	}

	if res.StatusCode != http.StatusOK {
		return "", &llm.Error{
			Kind:  classifyStatus(res.StatusCode, resBody),
			Model: p.model,
			Err:   fmt.Errorf("status %d: %s", res.StatusCode, truncate(string(resBody), 300)),
		}
	}

	var parsed generateResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return "", &llm.Error{Kind: llm.KindUnclassified, Model: p.model, Err: err}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &llm.Error{
			Kind:  llm.KindUnclassified,
			Model: p.model,
			Err:   fmt.Errorf("empty candidate list in response"),
		}
	}
	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}

// classifyStatus maps an HTTP failure to a kind. The status code is
// authoritative; the "quota" body hint only covers vendors that report quota
// exhaustion under a non-429 status.
func classifyStatus(status int, body []byte) llm.Kind {
	switch status {
	case http.StatusTooManyRequests:
		return llm.KindRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return llm.KindInvalidCredentials
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return llm.KindTimeout
	}
	if strings.Contains(strings.ToLower(string(body)), "quota") {
		return llm.KindRateLimited
	}
	return llm.KindUnclassified
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
