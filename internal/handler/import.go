package handler

import (
	"fmt"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/akave-ai/ledgerdesk/internal/ingest"
	"github.com/akave-ai/ledgerdesk/internal/response"
)

// ImportHandler handles bulk uploads under /tickets/import.
type ImportHandler struct {
	Importer *ingest.Importer
}

// Import parses the multipart "file" field and stores every valid record
// (POST /tickets/import). Per-record failures still yield 201.
func (h *ImportHandler) Import(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, `No file uploaded. Please provide a file with field name "file"`, err.Error())
	}

	registry := h.Importer.Registry()
	format, err := registry.FormatForFilename(fh.Filename)
	if err != nil {
		formats := strings.ToUpper(strings.Join(registry.ListRegistered(), ", "))
		return response.BadRequest(c, "Unsupported file format. Please upload one of: "+formats, err.Error())
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}

	summary, err := h.Importer.Import(c.Request().Context(), format, content)
	if err != nil {
		return err
	}
	return response.Created(c, summary, "Bulk import completed")
}

// Formats lists the accepted upload formats (GET /tickets/import/formats).
func (h *ImportHandler) Formats(c echo.Context) error {
	return response.OK(c, map[string]any{"formats": h.Importer.Registry().AllFormatsInfo()}, "")
}
