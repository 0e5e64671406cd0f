package extractor

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"

	"finbot-be/internal/apperror"
)

// extractExcel flattens every sheet into lines of tab-joined cell values.
func extractExcel(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", apperror.Extraction("open spreadsheet: %v", err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", apperror.Extraction("read sheet %q: %v", sheet, err)
		}
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, "\t"))
			if line == "" {
				continue
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", apperror.Extraction("spreadsheet contains no cell text")
	}
	return text, nil
}
