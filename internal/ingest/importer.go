package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/akave-ai/ledgerdesk/internal/model"
)

// TicketCreator persists one validated ticket.
type TicketCreator interface {
	Create(ctx context.Context, in model.TicketInput) (*model.Ticket, error)
}

// ImportRecorder counts a finished batch. metrics.Metrics implements it.
type ImportRecorder interface {
	RecordImport(format string, successful, failed int)
}

// Summary is the outcome of one import request.
type Summary struct {
	Total      int             `json:"total"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Errors     []Failure       `json:"errors"`
	Tickets    []*model.Ticket `json:"tickets"`
}

// Importer runs a parser and stores every record it accepts.
type Importer struct {
	registry *Registry
	store    TicketCreator
	logger   zerolog.Logger
	recorder ImportRecorder
}

// NewImporter returns an Importer. recorder may be nil.
func NewImporter(registry *Registry, store TicketCreator, logger zerolog.Logger, recorder ImportRecorder) *Importer {
	return &Importer{registry: registry, store: store, logger: logger, recorder: recorder}
}

// Registry returns the parser registry the importer dispatches to.
func (im *Importer) Registry() *Registry {
	return im.registry
}

// Import parses content as format and persists the successes in ledger order.
// Failed records are never stored. The only error is an unknown format or a
// storage failure.
func (im *Importer) Import(ctx context.Context, format string, content []byte) (*Summary, error) {
	parser, err := im.registry.Get(format)
	if err != nil {
		return nil, err
	}

	res := parser.Parse(content)

	summary := &Summary{
		Total:      res.Total(),
		Successful: len(res.Successes),
		Failed:     len(res.Failures),
		Errors:     make([]Failure, 0, len(res.Failures)),
		Tickets:    make([]*model.Ticket, 0, len(res.Successes)),
	}
	summary.Errors = append(summary.Errors, res.Failures...)

	for _, s := range res.Successes {
		ticket, err := im.store.Create(ctx, s.Input)
		if err != nil {
			return nil, fmt.Errorf("store record at line %d: %w", s.Line, err)
		}
		summary.Tickets = append(summary.Tickets, ticket)
	}

	im.logger.Info().
		Str("format", format).
		Int("total", summary.Total).
		Int("successful", summary.Successful).
		Int("failed", summary.Failed).
		Msg("bulk import completed")
	if im.recorder != nil {
		im.recorder.RecordImport(format, summary.Successful, summary.Failed)
	}
	return summary, nil
}
