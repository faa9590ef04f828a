// Package service implements the ticket lifecycle and the banking ledger
// calculations on top of the repository stores.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/akave-ai/ledgerdesk/internal/model"
)

// TicketStore is the persistence the ticket service needs.
// repository.TicketRepository implements it.
type TicketStore interface {
	Create(ctx context.Context, in model.TicketInput) (*model.Ticket, error)
	Get(ctx context.Context, id string) (*model.Ticket, error)
	List(ctx context.Context, filter model.TicketFilter) ([]*model.Ticket, error)
	Update(ctx context.Context, id string, u model.TicketUpdate) (*model.Ticket, error)
	Delete(ctx context.Context, id string) error
}

// Classifier infers category and priority from ticket text.
type Classifier interface {
	Classify(subject, description string) model.Classification
}

// CreatedTicket is the outcome of TicketService.Create. Classification is nil
// when the ticket was stored as submitted.
type CreatedTicket struct {
	Ticket         *model.Ticket
	Classification *model.Classification
}

// TicketService owns ticket creation, updates and on-demand classification.
type TicketService struct {
	store      TicketStore
	classifier Classifier
	logger     zerolog.Logger
}

// NewTicketService returns a TicketService.
func NewTicketService(store TicketStore, classifier Classifier, logger zerolog.Logger) *TicketService {
	return &TicketService{store: store, classifier: classifier, logger: logger}
}

// defaultMetadata is applied to auto-classified tickets created without metadata.
var defaultMetadata = model.Metadata{Source: model.SourceAPI, DeviceType: model.DeviceDesktop}

// Create stores a validated ticket. When autoClassify is set, or category or
// priority is missing, the text is classified and only the missing fields are
// filled from the result.
func (s *TicketService) Create(ctx context.Context, in model.TicketInput, autoClassify bool) (*CreatedTicket, error) {
	if !autoClassify && in.Category != "" && in.Priority != "" {
		t, err := s.store.Create(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("create ticket: %w", err)
		}
		s.logger.Info().Str("ticket_id", t.ID).Str("category", string(t.Category)).Str("priority", string(t.Priority)).Msg("ticket created")
		return &CreatedTicket{Ticket: t}, nil
	}

	c := s.classifier.Classify(in.Subject, in.Description)
	if in.Category == "" {
		in.Category = c.Category
	}
	if in.Priority == "" {
		in.Priority = c.Priority
	}
	if in.Metadata == nil {
		m := defaultMetadata
		in.Metadata = &m
	}

	t, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}
	s.logger.Info().
		Str("ticket_id", t.ID).
		Str("category", string(t.Category)).
		Str("priority", string(t.Priority)).
		Float64("confidence", c.Confidence).
		Msg("ticket created with auto-classification")
	return &CreatedTicket{Ticket: t, Classification: &c}, nil
}

// Get returns one ticket. A missing id yields repository.ErrNotFound.
func (s *TicketService) Get(ctx context.Context, id string) (*model.Ticket, error) {
	return s.store.Get(ctx, id)
}

// List returns the tickets matching filter in creation order.
func (s *TicketService) List(ctx context.Context, filter model.TicketFilter) ([]*model.Ticket, error) {
	return s.store.List(ctx, filter)
}

// Update applies a validated partial update.
func (s *TicketService) Update(ctx context.Context, id string, u model.TicketUpdate) (*model.Ticket, error) {
	return s.store.Update(ctx, id, u)
}

// Delete removes a ticket.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("ticket_id", id).Msg("ticket deleted")
	return nil
}

// AutoClassify classifies the stored text of a ticket and overwrites its
// category and priority with the result.
func (s *TicketService) AutoClassify(ctx context.Context, id string) (*model.Ticket, model.Classification, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, model.Classification{}, err
	}

	c := s.classifier.Classify(existing.Subject, existing.Description)
	updated, err := s.store.Update(ctx, id, model.TicketUpdate{Category: &c.Category, Priority: &c.Priority})
	if err != nil {
		return nil, model.Classification{}, err
	}
	s.logger.Info().
		Str("ticket_id", id).
		Str("category", string(c.Category)).
		Str("priority", string(c.Priority)).
		Float64("confidence", c.Confidence).
		Msg("ticket auto-classified")
	return updated, c, nil
}
