package extractor

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"finbot-be/internal/apperror"
)

var (
	ErrUnsupportedType = fmt.Errorf("%w: unsupported file type", apperror.ErrInvalidInput)
	ErrEmptyFile       = fmt.Errorf("%w: file is empty", apperror.ErrInvalidInput)
)

// ExtractText converts a raw uploaded payload into plain text. The format is
// chosen from the content type first, then the filename extension.
func ExtractText(data []byte, contentType, filename string) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	switch detectFormat(contentType, filename) {
	case formatText:
		return string(data), nil
	case formatHTML:
		return extractHTML(data)
	case formatPDF:
		return extractPDF(data)
	case formatExcel:
		return extractExcel(data)
	default:
		return "", fmt.Errorf("%w (%s, %s)", ErrUnsupportedType, contentType, filename)
	}
}

type format int

const (
	formatUnknown format = iota
	formatText
	formatHTML
	formatPDF
	formatExcel
)

func detectFormat(contentType, filename string) format {
	ct := strings.ToLower(contentType)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	switch ct {
	case "text/plain", "text/markdown", "text/csv":
		return formatText
	case "text/html":
		return formatHTML
	case "application/pdf":
		return formatPDF
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel":
		return formatExcel
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", ".csv":
		return formatText
	case ".html", ".htm":
		return formatHTML
	case ".pdf":
		return formatPDF
	case ".xlsx", ".xls":
		return formatExcel
	}
	return formatUnknown
}

// extractHTML pulls the visible text out of a document, dropping script and
// style subtrees the same way the URL scraper does.
func extractHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", apperror.Extraction("parse html: %v", err)
	}
	return documentText(doc), nil
}

func documentText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	return strings.Join(strings.Fields(root.Text()), " ")
}
