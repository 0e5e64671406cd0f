package extractor

import (
	"bytes"
	"strings"

	"github.com/ledongthuc/pdf"

	"finbot-be/internal/apperror"
)

// extractPDF reads the plain-text stream of every page. When the combined
// reader fails on a malformed file, a page-by-page pass is tried before
// giving up, since many PDFs only have a few broken pages.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", apperror.Extraction("open pdf: %v", err)
	}

	if text, err := readWholePDF(reader); err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}

	text, err := readPDFByPage(reader)
	if err != nil {
		return "", apperror.Extraction("read pdf text: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", apperror.Extraction("pdf contains no extractable text")
	}
	return text, nil
}

func readWholePDF(reader *pdf.Reader) (text string, err error) {
	// The pdf package panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			err = apperror.Extraction("pdf reader panic: %v", r)
		}
	}()

	stream, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(stream); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func readPDFByPage(reader *pdf.Reader) (string, error) {
	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := pageText(page)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func pageText(page pdf.Page) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperror.Extraction("pdf page panic: %v", r)
		}
	}()
	return page.GetPlainText(nil)
}
