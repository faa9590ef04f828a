package ingest

import (
	"bytes"

	"github.com/akave-ai/ledgerdesk/internal/validation"
)

// XMLParser reads <tickets><ticket>...</ticket></tickets> or a bare <ticket> root.
type XMLParser struct{}

func (p *XMLParser) Info() FormatInfo {
	return FormatInfo{
		Format:      "xml",
		Extensions:  []string{".xml"},
		Description: "A <tickets> element wrapping <ticket> elements, or a single <ticket> root. Tags as <tags><tag>..</tag></tags>; metadata as a nested <metadata> element or top-level source/browser/device_type.",
	}
}

var ticketFields = []string{
	"customer_id", "customer_email", "customer_name", "subject",
	"description", "category", "priority", "status",
}

// Parse reports ticket element i (0-based) at line i+1.
func (p *XMLParser) Parse(content []byte) Result {
	if len(bytes.TrimSpace(content)) == 0 {
		return structural("Invalid XML format: file is empty")
	}

	tree, err := decodeXMLTree(content)
	if err != nil {
		return structural("Invalid XML format: %v", err)
	}

	var elements any
	switch {
	case present(tree["tickets"]):
		wrapper, ok := tree["tickets"].(map[string]any)
		if !ok {
			return structural("Invalid XML format: no records found")
		}
		elements = wrapper["ticket"]
	case present(tree["ticket"]):
		elements = tree["ticket"]
	default:
		return structural("Invalid XML structure: expected <tickets> or <ticket> root element")
	}

	records := asList(elements)
	if len(records) == 0 || !present(records[0]) {
		return structural("Invalid XML format: no records found")
	}

	var res Result
	for i, rec := range records {
		line := i + 1
		obj, ok := rec.(map[string]any)
		if !ok {
			res.fail(line, rec, "Expected object, received "+validation.TypeName(rec))
			continue
		}
		res.add(line, rec, normalizeElement(obj))
	}
	return res
}

// normalizeElement maps a <ticket> element onto the candidate record shape.
func normalizeElement(el map[string]any) map[string]any {
	candidate := make(map[string]any, len(ticketFields)+3)
	for _, f := range ticketFields {
		if v, ok := el[f]; ok {
			candidate[f] = v
		}
	}

	if v := el["assigned_to"]; present(v) {
		candidate["assigned_to"] = v
	} else {
		candidate["assigned_to"] = nil
	}

	tags := []any{}
	if wrapper, ok := el["tags"].(map[string]any); ok {
		tags = append(tags, asList(wrapper["tag"])...)
	}
	candidate["tags"] = tags

	nested, _ := el["metadata"].(map[string]any)
	meta := make(map[string]any, 3)
	for _, field := range []string{"source", "browser", "device_type"} {
		if v := nested[field]; present(v) {
			meta[field] = v
		} else if v := el[field]; present(v) {
			meta[field] = v
		}
	}
	if len(meta) > 0 {
		candidate["metadata"] = meta
	}
	return candidate
}

// asList coerces a single element to a one-item list; nil yields nil.
func asList(v any) []any {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		return t
	}
	return []any{v}
}

// present treats missing values and empty text as absent.
func present(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}
