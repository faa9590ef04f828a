package ingest

import (
	"bytes"
	"encoding/json"

	"github.com/akave-ai/ledgerdesk/internal/validation"
)

// JSONParser reads a single ticket object or an array of them.
type JSONParser struct{}

func (p *JSONParser) Info() FormatInfo {
	return FormatInfo{
		Format:      "json",
		Extensions:  []string{".json"},
		Description: "A ticket object or an array of ticket objects using the API field names.",
	}
}

// Parse reports element i (0-based) at line i+1.
func (p *JSONParser) Parse(content []byte) Result {
	if len(bytes.TrimSpace(content)) == 0 {
		return structural("Invalid JSON format: file is empty")
	}

	var data any
	if err := json.Unmarshal(content, &data); err != nil {
		return structural("Invalid JSON format: %v", err)
	}

	records, ok := data.([]any)
	if !ok {
		records = []any{data}
	}
	if len(records) == 0 {
		return structural("Invalid JSON format: no records found")
	}

	var res Result
	for i, rec := range records {
		line := i + 1
		obj, ok := rec.(map[string]any)
		if !ok {
			res.fail(line, rec, "Expected object, received "+validation.TypeName(rec))
			continue
		}
		res.add(line, rec, obj)
	}
	return res
}
