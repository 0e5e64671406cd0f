package service

import (
	"context"
	"fmt"
	"strings"

	"finbot-be/internal/apperror"
	"finbot-be/internal/constant"
	"finbot-be/internal/dto"
	"finbot-be/internal/pkg/logger"
	"finbot-be/pkg/llm"
	"finbot-be/pkg/llm/factory"
	"finbot-be/pkg/store"
)

const contextPreviewLength = 200

type IAnswerService interface {
	Answer(ctx context.Context, sessionId, question, apiKey string, maxResults int) (*dto.QueryResponse, error)
}

// ProviderFactory builds a generation provider for the caller's credentials.
// Swappable so tests can inject failing or scripted providers.
type ProviderFactory func(apiKey string) (llm.Provider, error)

// answerService runs the query path end to end: retrieve, compose the
// grounded prompt, generate, and classify failures into the friendly-chat
// degradation rules.
type answerService struct {
	rag         IRagService
	newProvider ProviderFactory
	log         logger.ILogger
}

func NewAnswerService(rag IRagService, newProvider ProviderFactory, log logger.ILogger) IAnswerService {
	if newProvider == nil {
		newProvider = func(apiKey string) (llm.Provider, error) {
			return factory.NewWithFallback(apiKey, constant.GenerationModelCandidates, nil)
		}
	}
	return &answerService{rag: rag, newProvider: newProvider, log: log}
}

func (s *answerService) Answer(ctx context.Context, sessionId, question, apiKey string, maxResults int) (*dto.QueryResponse, error) {
	// Credentials are checked before any retrieval work.
	if strings.TrimSpace(apiKey) == "" {
		return nil, apperror.ErrInvalidCredentials
	}

	provider, err := s.newProvider(apiKey)
	if err != nil {
		return nil, err
	}

	retrieval, err := s.rag.Query(ctx, sessionId, question, maxResults)
	if err != nil {
		return nil, err
	}
	if retrieval.Empty {
		return &dto.QueryResponse{
			Answer:    "I don't have any documents in this session's knowledge base yet. Add a document or a URL and ask again.",
			Sources:   []string{},
			SessionId: sessionId,
		}, nil
	}

	contextText, sources := flatten(retrieval.Chunks)
	prompt := fmt.Sprintf(constant.AnswerPromptTemplate, contextText, question)

	answer, err := provider.Generate(ctx, prompt)
	if err != nil {
		return s.degrade(sessionId, err, contextText, sources, retrieval.MeanScore), nil
	}

	return &dto.QueryResponse{
		Answer:     answer,
		Sources:    sources,
		Confidence: retrieval.MeanScore,
		SessionId:  sessionId,
	}, nil
}

// degrade maps a generation failure onto a chat-shaped response. Rate limits
// keep the retrieved context and confidence; everything else apologizes and
// carries no sources.
func (s *answerService) degrade(sessionId string, err error, contextText string, sources []string, confidence float32) *dto.QueryResponse {
	kind := llm.KindOf(err)
	s.log.Warn("answer_service", "Generation failed", map[string]interface{}{
		"session_id": sessionId,
		"kind":       kind.String(),
		"error":      err.Error(),
	})

	if kind == llm.KindRateLimited {
		preview := contextText
		if len(preview) > contextPreviewLength {
			preview = preview[:contextPreviewLength]
		}
		return &dto.QueryResponse{
			Answer: fmt.Sprintf(
				"The language model is currently rate-limited. Here is the most relevant information I found:\n\n%s...",
				preview,
			),
			Sources:    sources,
			Confidence: confidence,
			SessionId:  sessionId,
		}
	}

	return &dto.QueryResponse{
		Answer:    fmt.Sprintf("I apologize, but I encountered an error processing your question: %v", err),
		Sources:   []string{},
		SessionId: sessionId,
	}
}

// flatten joins the retrieved texts in rank order and collects their sources,
// duplicates preserved.
func flatten(chunks []store.RetrievedChunk) (string, []string) {
	texts := make([]string, len(chunks))
	sources := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
		sources[i] = c.Source
	}
	return strings.Join(texts, "\n"), sources
}
