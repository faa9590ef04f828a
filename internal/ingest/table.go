package ingest

import (
	"fmt"
	"strings"
)

// RequiredColumns must all be present in the header of a tabular upload and
// non-blank in every row.
var RequiredColumns = []string{
	"customer_id", "customer_email", "customer_name", "subject",
	"description", "category", "priority", "status",
}

// metadataAliases lists, per metadata field, the columns that may carry it.
// The first non-empty one wins.
var metadataAliases = []struct {
	field   string
	columns []string
}{
	{"source", []string{"metadata_source", "source"}},
	{"browser", []string{"metadata_browser", "browser"}},
	{"device_type", []string{"metadata_device_type", "device_type"}},
}

// parseTable builds the ledger for header-plus-rows content shared by CSV and
// XLSX. label prefixes structural reasons ("CSV", "XLSX"). Data row i (0-based,
// blank rows skipped) is reported at line i+2.
func parseTable(label string, rows [][]string) Result {
	if len(rows) == 0 {
		return structural("Invalid %s format: file is empty", label)
	}

	header := make([]string, len(rows[0]))
	present := make(map[string]bool, len(header))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		present[header[i]] = true
	}

	var data [][]string
	for _, row := range rows[1:] {
		if !blankRow(row) {
			data = append(data, row)
		}
	}
	if len(data) == 0 {
		return structural("Invalid %s format: no valid records found", label)
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return structural("Invalid %s format: missing required columns: %s", label, strings.Join(missing, ", "))
	}

	var res Result
	for i, row := range data {
		line := i + 2
		raw := rowRecord(header, row)
		if col := firstBlankRequired(raw); col != "" {
			res.fail(line, raw, fmt.Sprintf("Invalid %s format at line %d: missing required field '%s'", label, line, col))
			continue
		}
		res.add(line, raw, normalizeRow(raw))
	}
	return res
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// rowRecord maps header names to trimmed cells. Short rows are padded with
// empty strings.
func rowRecord(header, row []string) map[string]string {
	rec := make(map[string]string, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		var cell string
		if i < len(row) {
			cell = strings.TrimSpace(row[i])
		}
		rec[name] = cell
	}
	return rec
}

func firstBlankRequired(raw map[string]string) string {
	for _, col := range RequiredColumns {
		if raw[col] == "" {
			return col
		}
	}
	return ""
}

// normalizeRow applies the per-column transforms: pipe-separated tags, empty
// assigned_to as null, and metadata assembled from its alias columns.
func normalizeRow(raw map[string]string) map[string]any {
	candidate := make(map[string]any, len(RequiredColumns)+3)
	for _, col := range RequiredColumns {
		candidate[col] = raw[col]
	}

	if v := raw["assigned_to"]; v != "" {
		candidate["assigned_to"] = v
	} else {
		candidate["assigned_to"] = nil
	}

	tags := []string{}
	if v := raw["tags"]; v != "" {
		for _, part := range strings.Split(v, "|") {
			tags = append(tags, strings.TrimSpace(part))
		}
	}
	candidate["tags"] = tags

	meta := make(map[string]any, len(metadataAliases))
	for _, alias := range metadataAliases {
		for _, col := range alias.columns {
			if v := raw[col]; v != "" {
				meta[alias.field] = v
				break
			}
		}
	}
	if len(meta) > 0 {
		candidate["metadata"] = meta
	}
	return candidate
}
