package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"
)

// MIME types accepted for bulk import.
const (
	MimeCSV    = "text/csv"
	MimeCSVApp = "application/csv"
	MimeXLS    = "application/vnd.ms-excel"
	MimeXLSX   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// IsAllowedImportMime reports whether the declared MIME type is on the
// import allow-list.
func IsAllowedImportMime(mimeType string) bool {
	switch mimeType {
	case MimeCSV, MimeCSVApp, MimeXLS, MimeXLSX:
		return true
	}
	return false
}

// ParseTabularFile turns uploaded file bytes into an ordered sequence
// of rows keyed by column header. CSV and spreadsheet uploads produce
// the same shape; spreadsheets are read from their first sheet only.
// A parse failure here aborts the whole import.
func ParseTabularFile(data []byte, mimeType string) ([]map[string]string, error) {
	switch mimeType {
	case MimeCSV, MimeCSVApp:
		return ParseCardCSV(bytes.NewReader(data))
	case MimeXLSX:
		return ParseCardXLSX(bytes.NewReader(data))
	case MimeXLS:
		// Browsers often declare CSV files as vnd.ms-excel. Try the
		// spreadsheet reader first, then fall back to CSV.
		rows, err := ParseCardXLSX(bytes.NewReader(data))
		if err == nil {
			return rows, nil
		}
		log.Printf("WARN: vnd.ms-excel upload is not a spreadsheet (%v), retrying as CSV", err)
		return ParseCardCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported file type: %s", mimeType)
	}
}

// ParseCardCSV parses a headered CSV into row maps.
func ParseCardCSV(r io.Reader) ([]map[string]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	decoded, err := decodeToUTF8(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode CSV data: %w", err)
	}

	reader := csv.NewReader(SkipBOM(bytes.NewReader(decoded)))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		rows = append(rows, recordToRow(header, rec))
	}
	return rows, nil
}

// ParseCardXLSX reads the first sheet of a spreadsheet into row maps.
func ParseCardXLSX(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for _, rec := range records[1:] {
		rows = append(rows, recordToRow(header, rec))
	}
	return rows, nil
}

func recordToRow(header, rec []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, colName := range header {
		if colName == "" {
			continue
		}
		if i < len(rec) {
			row[colName] = strings.TrimSpace(rec[i])
		} else {
			row[colName] = ""
		}
	}
	return row
}
