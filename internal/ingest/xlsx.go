package ingest

import (
	"bytes"

	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the first worksheet of an Excel workbook as a ticket table
// with the same columns and line numbering as CSV.
type XLSXParser struct{}

func (p *XLSXParser) Info() FormatInfo {
	return FormatInfo{
		Format:      "xlsx",
		Extensions:  []string{".xlsx"},
		Description: "Excel workbook. The first sheet is read like a CSV table: header in row 1, same required columns and transforms.",
	}
}

func (p *XLSXParser) Parse(content []byte) Result {
	if len(bytes.TrimSpace(content)) == 0 {
		return structural("Invalid XLSX format: file is empty")
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return structural("Invalid XLSX format: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return structural("Invalid XLSX format: no valid records found")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return structural("Invalid XLSX format: %v", err)
	}
	return parseTable("XLSX", rows)
}
