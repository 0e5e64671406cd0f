package service

import (
	"context"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"finbot-be/internal/apperror"
	"finbot-be/internal/constant"
	"finbot-be/internal/dto"
	"finbot-be/internal/pkg/logger"
	"finbot-be/internal/repository/memory"
	"finbot-be/pkg/chunker"
	"finbot-be/pkg/embedding"
	"finbot-be/pkg/events"
	"finbot-be/pkg/store"
)

// Retrieval is the raw result of a similarity query, before any generation.
type Retrieval struct {
	Chunks    []store.RetrievedChunk
	MeanScore float32
	Empty     bool
}

type IRagService interface {
	AddDocuments(ctx context.Context, sessionId string, chunks, sources []string) (int, error)
	Query(ctx context.Context, sessionId, question string, k int) (*Retrieval, error)
	ListDocuments(ctx context.Context, sessionId string) ([]*dto.DocumentSummary, error)
	ClearSession(sessionId string)
	ListSessions() []string
}

type ragService struct {
	sessions  memory.ISessionRepository
	embedder  embedding.Provider
	publisher message.Publisher
	log       logger.ILogger

	minChunkLength int
	defaultTopK    int
}

func NewRagService(
	sessions memory.ISessionRepository,
	embedder embedding.Provider,
	publisher message.Publisher,
	log logger.ILogger,
	minChunkLength int,
	defaultTopK int,
) IRagService {
	if minChunkLength <= 0 {
		minChunkLength = chunker.MinChunkLength
	}
	if defaultTopK <= 0 {
		defaultTopK = 3
	}
	return &ragService{
		sessions:       sessions,
		embedder:       embedder,
		publisher:      publisher,
		log:            log,
		minChunkLength: minChunkLength,
		defaultTopK:    defaultTopK,
	}
}

// AddDocuments embeds a batch of chunks and appends vectors and metadata to
// the caller's session as one unit. Chunks below the minimum length are
// dropped with their sources before embedding; dropping everything is an
// ingestion failure, not a silent no-op.
func (s *ragService) AddDocuments(ctx context.Context, sessionId string, chunks, sources []string) (int, error) {
	if len(chunks) != len(sources) {
		return 0, apperror.Invalid("%d chunks for %d sources", len(chunks), len(sources))
	}

	keptChunks := make([]string, 0, len(chunks))
	keptSources := make([]string, 0, len(sources))
	for i, chunk := range chunks {
		if len(strings.TrimSpace(chunk)) < s.minChunkLength {
			continue
		}
		keptChunks = append(keptChunks, chunk)
		keptSources = append(keptSources, sources[i])
	}
	if len(keptChunks) == 0 {
		return 0, apperror.ErrNoMeaningfulContent
	}

	session, err := s.sessions.GetOrCreate(ctx, sessionId)
	if err != nil {
		return 0, err
	}

	vectors, err := s.embedder.EmbedBatch(ctx, keptChunks)
	if err != nil {
		return 0, err
	}

	records := make([]store.ChunkRecord, len(keptChunks))
	for i := range keptChunks {
		records[i] = store.ChunkRecord{Text: keptChunks[i], Source: keptSources[i]}
	}

	added, err := session.Append(vectors, records)
	if err != nil {
		return 0, err
	}

	s.log.Info("rag_service", "Documents added", map[string]interface{}{
		"session_id": sessionId,
		"added":      added,
		"dropped":    len(chunks) - added,
	})
	s.publishIngested(sessionId, keptSources[0], added)

	return added, nil
}

// Query embeds the question and returns the top-k chunks with their mean
// similarity. A session with nothing indexed yields an empty retrieval, not
// an error.
func (s *ragService) Query(ctx context.Context, sessionId, question string, k int) (*Retrieval, error) {
	if strings.TrimSpace(question) == "" {
		return nil, apperror.Invalid("question is empty")
	}
	if k <= 0 {
		k = s.defaultTopK
	}

	session, err := s.sessions.GetOrCreate(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !session.HasIndex() {
		return &Retrieval{Empty: true}, nil
	}

	queryVectors, err := s.embedder.EmbedBatch(ctx, []string{question})
	if err != nil {
		return nil, err
	}
	if len(queryVectors) != 1 {
		return nil, apperror.ErrUpstreamFailure
	}

	hits := session.Search(queryVectors[0], k)
	if len(hits) == 0 {
		return &Retrieval{Empty: true}, nil
	}

	var total float32
	for _, h := range hits {
		total += h.Score
	}
	return &Retrieval{
		Chunks:    hits,
		MeanScore: total / float32(len(hits)),
	}, nil
}

// ListDocuments groups the session's chunk records by source, preserving
// first-seen order.
func (s *ragService) ListDocuments(ctx context.Context, sessionId string) ([]*dto.DocumentSummary, error) {
	session, err := s.sessions.GetOrCreate(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	var order []string
	for _, rec := range session.Records() {
		if _, seen := counts[rec.Source]; !seen {
			order = append(order, rec.Source)
		}
		counts[rec.Source]++
	}

	summaries := make([]*dto.DocumentSummary, 0, len(order))
	for _, source := range order {
		summaries = append(summaries, &dto.DocumentSummary{
			Name:       source,
			ChunkCount: counts[source],
			Type:       sourceType(source),
		})
	}
	return summaries, nil
}

func (s *ragService) ClearSession(sessionId string) {
	s.sessions.Clear(sessionId)
}

func (s *ragService) ListSessions() []string {
	return s.sessions.ListIDs()
}

func (s *ragService) publishIngested(sessionId, source string, count int) {
	if s.publisher == nil {
		return
	}
	event := events.DocumentIngested{
		SessionID:  sessionId,
		Source:     source,
		ChunkCount: count,
		OccurredAt: time.Now(),
	}
	payload, err := event.Marshal()
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(events.TopicDocumentIngested, msg); err != nil {
		s.log.Warn("rag_service", "Failed to publish ingest event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func sourceType(source string) string {
	switch {
	case source == constant.SourceFAQ:
		return "faq"
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return "url"
	default:
		return "file"
	}
}
