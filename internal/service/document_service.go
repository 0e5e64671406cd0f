package service

import (
	"context"

	"finbot-be/internal/apperror"
	"finbot-be/internal/pkg/logger"
	"finbot-be/pkg/chunker"
	"finbot-be/pkg/extractor"
)

type IDocumentService interface {
	AddFromURL(ctx context.Context, sessionId, url string) (int, error)
	AddUpload(ctx context.Context, sessionId, filename, contentType string, data []byte) (int, error)
}

// documentService is the format-conversion front end: it turns URLs and
// uploaded files into plain-text chunks and hands them to the rag service.
type documentService struct {
	rag     IRagService
	scraper *extractor.Scraper
	log     logger.ILogger

	chunkSize    int
	chunkOverlap int
}

func NewDocumentService(rag IRagService, scraper *extractor.Scraper, log logger.ILogger, chunkSize, chunkOverlap int) IDocumentService {
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = chunker.DefaultOverlap
	}
	return &documentService{
		rag:          rag,
		scraper:      scraper,
		log:          log,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

func (s *documentService) AddFromURL(ctx context.Context, sessionId, url string) (int, error) {
	text, err := s.scraper.ScrapeURL(ctx, url)
	if err != nil {
		return 0, err
	}
	return s.ingest(ctx, sessionId, text, url)
}

func (s *documentService) AddUpload(ctx context.Context, sessionId, filename, contentType string, data []byte) (int, error) {
	text, err := extractor.ExtractText(data, contentType, filename)
	if err != nil {
		return 0, err
	}
	return s.ingest(ctx, sessionId, text, filename)
}

func (s *documentService) ingest(ctx context.Context, sessionId, text, source string) (int, error) {
	chunks := chunker.Split(text, s.chunkSize, s.chunkOverlap)
	if len(chunks) == 0 {
		return 0, apperror.ErrNoMeaningfulContent
	}

	sources := make([]string, len(chunks))
	for i := range sources {
		sources[i] = source
	}

	added, err := s.rag.AddDocuments(ctx, sessionId, chunks, sources)
	if err != nil {
		return 0, err
	}
	s.log.Info("document_service", "Ingested document", map[string]interface{}{
		"session_id": sessionId,
		"source":     source,
		"chunks":     added,
	})
	return added, nil
}
