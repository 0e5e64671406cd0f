package events

import (
	"encoding/json"
	"time"
)

// TopicDocumentIngested carries one event per successful document ingestion.
const TopicDocumentIngested = "document.ingested"

// DocumentIngested is published on the in-process bus after a batch of chunks
// has been appended to a session. Consumers get an audit trail without the
// ingestion path waiting on them.
type DocumentIngested struct {
	SessionID  string    `json:"session_id"`
	Source     string    `json:"source"`
	ChunkCount int       `json:"chunk_count"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e DocumentIngested) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func UnmarshalDocumentIngested(data []byte) (DocumentIngested, error) {
	var e DocumentIngested
	err := json.Unmarshal(data, &e)
	return e, err
}
