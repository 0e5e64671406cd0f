package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"finbot-be/internal/apperror"
)

const geminiEmbeddingModel = "text-embedding-004"

// GeminiProvider encodes text with the Gemini embedding API. A whole batch
// goes through one batchEmbedContents request.
type GeminiProvider struct {
	apiKey    string
	endpoint  string
	client    *http.Client
	dimension int
}

func NewGeminiProvider(apiKey string) *GeminiProvider {
	return &GeminiProvider{
		apiKey: apiKey,
		endpoint: fmt.Sprintf(
			"https://generativelanguage.googleapis.com/v1/models/%s:batchEmbedContents",
			geminiEmbeddingModel,
		),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type geminiContentPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiContentPart `json:"parts"`
}

type geminiEmbedRequest struct {
	Model   string        `json:"model"`
	Content geminiContent `json:"content"`
}

type geminiBatchEmbedRequest struct {
	Requests []geminiEmbedRequest `json:"requests"`
}

type geminiEmbedding struct {
	Values []float32 `json:"values"`
}

type geminiBatchEmbedResponse struct {
	Embeddings []geminiEmbedding `json:"embeddings"`
}

func (p *GeminiProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	payload := geminiBatchEmbedRequest{Requests: make([]geminiEmbedRequest, len(texts))}
	for i, text := range texts {
		payload.Requests[i] = geminiEmbedRequest{
			Model:   "models/" + geminiEmbeddingModel,
			Content: geminiContent{Parts: []geminiContentPart{{Text: text}}},
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("%w: embedding request: %v", apperror.ErrUpstreamTimeout, err)
		}
		return nil, fmt.Errorf("%w: embedding request: %v", apperror.ErrUpstreamFailure, err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: embedding API returned 429", apperror.ErrUpstreamRateLimited)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: embedding API returned %d", apperror.ErrInvalidCredentials, res.StatusCode)
	default:
		return nil, fmt.Errorf("%w: embedding API returned %d, body %s",
			apperror.ErrUpstreamFailure, res.StatusCode, string(resBody))
	}

	var parsed geminiBatchEmbedResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Embeddings) != len(texts) {
		return nil, fmt.Errorf("%w: embedding API returned %d vectors for %d texts",
			apperror.ErrUpstreamFailure, len(parsed.Embeddings), len(texts))
	}

	vectors := make([][]float32, len(parsed.Embeddings))
	for i, e := range parsed.Embeddings {
		vectors[i] = e.Values
	}
	if len(vectors) > 0 {
		p.dimension = len(vectors[0])
	}
	return vectors, nil
}

func (p *GeminiProvider) Dimension() int {
	return p.dimension
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
