package memory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finbot-be/internal/constant"
	"finbot-be/internal/pkg/logger"
	"finbot-be/pkg/embedding"
	"finbot-be/pkg/store"
)

func TestGetOrCreateSeedsFAQ(t *testing.T) {
	repo := NewSessionRepository(embedding.NewLocalProvider(32), logger.NewNopLogger(), "")

	session, err := repo.GetOrCreate(context.Background(), "s1")
	require.NoError(t, err)
	require.Equal(t, len(constant.FAQCorpus), session.Len())

	for i, rec := range session.Records() {
		assert.Equal(t, constant.SourceFAQ, rec.Source)
		assert.Equal(t, constant.FAQCorpus[i], rec.Text)
	}
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	repo := NewSessionRepository(embedding.NewLocalProvider(32), logger.NewNopLogger(), "")
	ctx := context.Background()

	a, err := repo.GetOrCreate(ctx, "same")
	require.NoError(t, err)
	b, err := repo.GetOrCreate(ctx, "same")
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, len(constant.FAQCorpus), b.Len())
}

func TestClearThenGetYieldsFreshSeed(t *testing.T) {
	repo := NewSessionRepository(embedding.NewLocalProvider(32), logger.NewNopLogger(), "")
	ctx := context.Background()

	session, err := repo.GetOrCreate(ctx, "s2")
	require.NoError(t, err)
	_, err = session.Append(
		[][]float32{make([]float32, 32)},
		[]store.ChunkRecord{{Text: "extra", Source: "doc"}},
	)
	require.NoError(t, err)

	repo.Clear("s2")

	fresh, err := repo.GetOrCreate(ctx, "s2")
	require.NoError(t, err)
	assert.NotSame(t, session, fresh)
	assert.Equal(t, len(constant.FAQCorpus), fresh.Len())
}

func TestListIDs(t *testing.T) {
	repo := NewSessionRepository(embedding.NewLocalProvider(32), logger.NewNopLogger(), "")
	ctx := context.Background()

	repo.GetOrCreate(ctx, "a")
	repo.GetOrCreate(ctx, "b")
	repo.Clear("a")

	assert.ElementsMatch(t, []string{"b"}, repo.ListIDs())
}

// failingEmbedder proves the snapshot pair replaces the embedding call.
type failingEmbedder struct{}

func (failingEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("embedder must not be called")
}

func (failingEmbedder) Dimension() int { return 0 }

func TestSeedSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq_index")
	ctx := context.Background()

	// First repo embeds the corpus and persists the snapshot pair.
	warm := NewSessionRepository(embedding.NewLocalProvider(32), logger.NewNopLogger(), path)
	_, err := warm.GetOrCreate(ctx, "s1")
	require.NoError(t, err)

	// Second repo must boot entirely from the snapshot.
	cold := NewSessionRepository(failingEmbedder{}, logger.NewNopLogger(), path)
	session, err := cold.GetOrCreate(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, len(constant.FAQCorpus), session.Len())
}

func TestSeedFailureIsRetryable(t *testing.T) {
	repo := NewSessionRepository(failingEmbedder{}, logger.NewNopLogger(), "")
	ctx := context.Background()

	_, err := repo.GetOrCreate(ctx, "s1")
	require.Error(t, err)
	assert.Empty(t, repo.ListIDs())

	// A second attempt hits the embedder again instead of caching the error.
	_, err = repo.GetOrCreate(ctx, "s1")
	require.Error(t, err)
}
