package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/patrickmn/go-cache"

	"finbot-be/internal/constant"
	"finbot-be/internal/pkg/logger"
	"finbot-be/pkg/embedding"
	"finbot-be/pkg/snapshot"
	"finbot-be/pkg/store"
)

type ISessionRepository interface {
	GetOrCreate(ctx context.Context, sessionId string) (*store.Session, error)
	Clear(sessionId string)
	ListIDs() []string
}

// SessionRepository owns every live session. Sessions are created on first
// reference, seeded with the FAQ corpus, and live until Clear is called:
// there is deliberately no TTL, so long-running processes accumulate sessions
// until an operator clears them.
type SessionRepository struct {
	cache    *cache.Cache
	embedder embedding.Provider
	log      logger.ILogger

	// snapshotPath, when non-empty, names the persisted seed index pair.
	snapshotPath string

	createMu sync.Mutex

	seedOnce    sync.Once
	seedVectors [][]float32
	seedRecords []store.ChunkRecord
	seedErr     error
}

var _ ISessionRepository = &SessionRepository{}

func NewSessionRepository(embedder embedding.Provider, log logger.ILogger, snapshotPath string) *SessionRepository {
	// NoExpiration: session lifetime is the process lifetime by contract.
	c := cache.New(cache.NoExpiration, 0)
	return &SessionRepository{
		cache:        c,
		embedder:     embedder,
		log:          log,
		snapshotPath: snapshotPath,
	}
}

// GetOrCreate returns the existing session or creates one seeded with the
// default FAQ corpus. Creation is idempotent: two concurrent calls for the
// same unseen id produce one session.
func (r *SessionRepository) GetOrCreate(ctx context.Context, sessionId string) (*store.Session, error) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*store.Session), nil
	}

	r.createMu.Lock()
	defer r.createMu.Unlock()
	if x, found := r.cache.Get(sessionId); found {
		return x.(*store.Session), nil
	}

	vectors, records, err := r.seedCorpus(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed session %s: %w", sessionId, err)
	}

	session := store.NewSession(sessionId)
	if _, err := session.Append(vectors, records); err != nil {
		return nil, fmt.Errorf("seed session %s: %w", sessionId, err)
	}

	r.cache.Set(sessionId, session, cache.NoExpiration)
	r.log.Info("session_repository", "Created session", map[string]interface{}{
		"session_id":  sessionId,
		"seed_chunks": len(records),
	})
	return session, nil
}

func (r *SessionRepository) Clear(sessionId string) {
	r.cache.Delete(sessionId)
	r.log.Info("session_repository", "Cleared session", map[string]interface{}{
		"session_id": sessionId,
	})
}

func (r *SessionRepository) ListIDs() []string {
	items := r.cache.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	return ids
}

// seedCorpus embeds the FAQ corpus once per process. A snapshot pair on disk
// short-circuits the embedding call; when no snapshot exists, the freshly
// embedded seed is written back so the next restart skips the work. Every
// session gets the same vectors, appended into its own index.
func (r *SessionRepository) seedCorpus(ctx context.Context) ([][]float32, []store.ChunkRecord, error) {
	r.seedOnce.Do(func() {
		if r.snapshotPath != "" {
			vectors, records, err := snapshot.Load(r.snapshotPath)
			if err != nil {
				r.log.Warn("session_repository", "Seed snapshot unreadable, re-embedding", map[string]interface{}{
					"error": err.Error(),
				})
			} else if len(vectors) == len(constant.FAQCorpus) && len(vectors) > 0 {
				r.seedVectors, r.seedRecords = vectors, records
				return
			}
		}

		vectors, err := r.embedder.EmbedBatch(ctx, constant.FAQCorpus)
		if err != nil {
			r.seedErr = err
			return
		}

		records := make([]store.ChunkRecord, len(constant.FAQCorpus))
		for i, text := range constant.FAQCorpus {
			records[i] = store.ChunkRecord{Text: text, Source: constant.SourceFAQ}
		}
		r.seedVectors, r.seedRecords = vectors, records

		if r.snapshotPath != "" {
			if err := snapshot.Save(r.snapshotPath, vectors, records); err != nil {
				r.log.Warn("session_repository", "Failed to persist seed snapshot", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	})

	if r.seedErr != nil {
		// Allow a later call to retry embedding after a transient failure.
		err := r.seedErr
		r.seedOnce = sync.Once{}
		r.seedErr = nil
		return nil, nil, err
	}

	records := make([]store.ChunkRecord, len(r.seedRecords))
	copy(records, r.seedRecords)
	return r.seedVectors, records, nil
}
