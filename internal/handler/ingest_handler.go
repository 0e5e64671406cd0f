package handler

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"finbot-be/internal/pkg/logger"
	"finbot-be/pkg/events"
)

// IngestAuditHandler consumes document.ingested events off the in-process
// bus and writes an audit record for each one. It runs in the background for
// the life of the server; ingestion never waits on it.
type IngestAuditHandler struct {
	subscriber message.Subscriber
	log        logger.ILogger
}

func NewIngestAuditHandler(subscriber message.Subscriber, log logger.ILogger) *IngestAuditHandler {
	return &IngestAuditHandler{subscriber: subscriber, log: log}
}

func (h *IngestAuditHandler) Run(ctx context.Context) error {
	messages, err := h.subscriber.Subscribe(ctx, events.TopicDocumentIngested)
	if err != nil {
		return err
	}

	for msg := range messages {
		h.handle(msg)
		msg.Ack()
	}
	return nil
}

func (h *IngestAuditHandler) handle(msg *message.Message) {
	event, err := events.UnmarshalDocumentIngested(msg.Payload)
	if err != nil {
		h.log.Warn("ingest_audit", "Unparseable ingest event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	h.log.Info("ingest_audit", "Document ingested", map[string]interface{}{
		"session_id":  event.SessionID,
		"source":      event.Source,
		"chunk_count": event.ChunkCount,
		"occurred_at": event.OccurredAt,
	})
}
