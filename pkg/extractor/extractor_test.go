package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"finbot-be/internal/apperror"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		contentType string
		filename    string
		want        string
		wantErr     error
	}{
		{
			name:        "plain text passthrough",
			data:        []byte("hello world"),
			contentType: "text/plain",
			filename:    "notes.txt",
			want:        "hello world",
		},
		{
			name:     "markdown by extension",
			data:     []byte("# title"),
			filename: "readme.md",
			want:     "# title",
		},
		{
			name:        "html strips script and style",
			data:        []byte(`<html><head><style>p{color:red}</style></head><body><p>visible</p><script>var x=1;</script></body></html>`),
			contentType: "text/html",
			filename:    "page.html",
			want:        "visible",
		},
		{
			name:        "empty file",
			data:        nil,
			contentType: "text/plain",
			filename:    "empty.txt",
			wantErr:     ErrEmptyFile,
		},
		{
			name:        "unsupported type",
			data:        []byte{0x01, 0x02},
			contentType: "application/octet-stream",
			filename:    "blob.bin",
			wantErr:     ErrUnsupportedType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText(tt.data, tt.contentType, tt.filename)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTextUnsupportedIsClientError(t *testing.T) {
	_, err := ExtractText([]byte("x"), "application/octet-stream", "x.bin")
	if !apperror.IsClientError(err) {
		t.Errorf("unsupported type should map to a client error, got %v", err)
	}
}

func TestScrapeURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(`<html><body><h1>Savings</h1><script>junk()</script><p>Interest   rates</p></body></html>`))
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/blocked":
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer srv.Close()

	s := NewScraper()

	text, err := s.ScrapeURL(context.Background(), srv.URL+"/ok")
	if err != nil {
		t.Fatalf("ScrapeURL failed: %v", err)
	}
	if !strings.Contains(text, "Savings") || !strings.Contains(text, "Interest rates") {
		t.Errorf("scraped text = %q", text)
	}
	if strings.Contains(text, "junk") {
		t.Errorf("script content leaked into scrape: %q", text)
	}

	if _, err := s.ScrapeURL(context.Background(), srv.URL+"/missing"); !errors.Is(err, ErrFetchNotFound) {
		t.Errorf("404 error = %v, want ErrFetchNotFound", err)
	}
	if _, err := s.ScrapeURL(context.Background(), srv.URL+"/blocked"); !errors.Is(err, ErrFetchBlocked) {
		t.Errorf("403 error = %v, want ErrFetchBlocked", err)
	}
	if _, err := s.ScrapeURL(context.Background(), "not-a-url"); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("malformed url error = %v, want ErrInvalidInput", err)
	}
}
