package ingest

import (
	"bytes"
	"encoding/csv"
)

// CSVParser reads comma-separated tickets with a header row.
type CSVParser struct{}

func (p *CSVParser) Info() FormatInfo {
	return FormatInfo{
		Format:      "csv",
		Extensions:  []string{".csv"},
		Description: "Comma-separated values with a header row. Required columns: customer_id, customer_email, customer_name, subject, description, category, priority, status. Tags are pipe-separated; metadata comes from metadata_source/source, metadata_browser/browser, metadata_device_type/device_type.",
	}
}

// Parse decodes the whole table first; a syntax error or uneven column count
// fails the batch.
func (p *CSVParser) Parse(content []byte) Result {
	if len(bytes.TrimSpace(content)) == 0 {
		return structural("Invalid CSV format: file is empty")
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return structural("Invalid CSV format: %v", err)
	}
	return parseTable("CSV", rows)
}
