package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finbot-be/internal/apperror"
	"finbot-be/internal/pkg/logger"
	"finbot-be/pkg/extractor"
)

func newTestDocuments(t *testing.T) (IDocumentService, IRagService) {
	t.Helper()
	rag := newTestRag(t)
	docs := NewDocumentService(rag, extractor.NewScraper(), logger.NewNopLogger(), 200, 40)
	return docs, rag
}

func TestAddFromURL(t *testing.T) {
	page := `<html><body><article>` +
		strings.Repeat("<p>Compound interest is interest on interest and it accumulates over time.</p>", 10) +
		`</article><script>ignore()</script></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	docs, rag := newTestDocuments(t)
	ctx := context.Background()

	added, err := docs.AddFromURL(ctx, "s1", srv.URL)
	require.NoError(t, err)
	assert.Greater(t, added, 0)

	summaries, err := rag.ListDocuments(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, summaries, 2) // FAQ seed + scraped URL

	var urlDoc bool
	for _, s := range summaries {
		if s.Name == srv.URL {
			urlDoc = true
			assert.Equal(t, "url", s.Type)
			assert.Equal(t, added, s.ChunkCount)
		}
	}
	assert.True(t, urlDoc, "scraped URL missing from document list")
}

func TestAddFromURLThinPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>too short</p></body></html>`))
	}))
	defer srv.Close()

	docs, _ := newTestDocuments(t)

	_, err := docs.AddFromURL(context.Background(), "s2", srv.URL)
	require.ErrorIs(t, err, apperror.ErrNoMeaningfulContent)
}

func TestAddUploadPlainText(t *testing.T) {
	docs, rag := newTestDocuments(t)
	ctx := context.Background()

	content := strings.Repeat("Direct deposit routes your paycheck straight into your account. ", 20)
	added, err := docs.AddUpload(ctx, "s3", "payroll.txt", "text/plain", []byte(content))
	require.NoError(t, err)
	assert.Greater(t, added, 0)

	summaries, err := rag.ListDocuments(ctx, "s3")
	require.NoError(t, err)
	for _, s := range summaries {
		if s.Name == "payroll.txt" {
			assert.Equal(t, "file", s.Type)
		}
	}
}

func TestAddUploadUnsupportedType(t *testing.T) {
	docs, _ := newTestDocuments(t)

	_, err := docs.AddUpload(context.Background(), "s4", "image.png", "image/png", []byte{0x89, 0x50})
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestAddUploadEmptyFile(t *testing.T) {
	docs, _ := newTestDocuments(t)

	_, err := docs.AddUpload(context.Background(), "s5", "empty.txt", "text/plain", nil)
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
}
