// Package repository holds the in-memory stores for tickets and transactions.
// Every operation takes the store lock, so concurrent requests never observe
// a partially applied write.
package repository

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akave-ai/ledgerdesk/internal/model"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("not found")

// TicketRepository persists and reads tickets. List returns tickets in
// insertion order.
type TicketRepository struct {
	mu    sync.RWMutex
	byID  map[string]*model.Ticket
	order []string
	now   func() time.Time
}

// NewTicketRepository returns an empty TicketRepository.
func NewTicketRepository() *TicketRepository {
	return &TicketRepository{
		byID: make(map[string]*model.Ticket),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new ticket built from in and returns a copy with ID and
// timestamps set. A ticket created already resolved or closed gets ResolvedAt.
func (r *TicketRepository) Create(_ context.Context, in model.TicketInput) (*model.Ticket, error) {
	now := r.now()
	t := &model.Ticket{
		ID:          uuid.New().String(),
		TicketInput: in,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if in.Status.Terminal() {
		t.ResolvedAt = &now
	}

	r.mu.Lock()
	r.byID[t.ID] = t
	r.order = append(r.order, t.ID)
	r.mu.Unlock()
	return cloneTicket(t), nil
}

// Get returns one ticket by id, or ErrNotFound.
func (r *TicketRepository) Get(_ context.Context, id string) (*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneTicket(t), nil
}

// List returns the tickets matching filter in insertion order. The result is
// never nil.
func (r *TicketRepository) List(_ context.Context, filter model.TicketFilter) ([]*model.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Ticket, 0, len(r.order))
	for _, id := range r.order {
		t := r.byID[id]
		if filter.Matches(t) {
			out = append(out, cloneTicket(t))
		}
	}
	return out, nil
}

// Update applies the non-nil fields of u. ID and CreatedAt never change;
// ResolvedAt is set on the first move into resolved or closed.
func (r *TicketRepository) Update(_ context.Context, id string, u model.TicketUpdate) (*model.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	t := cloneTicket(existing)
	applyUpdate(t, u)
	now := r.now()
	t.UpdatedAt = now
	if u.Status != nil && u.Status.Terminal() && t.ResolvedAt == nil {
		t.ResolvedAt = &now
	}
	r.byID[id] = t
	return cloneTicket(t), nil
}

// Delete removes a ticket, or returns ErrNotFound.
func (r *TicketRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return nil
}

// Count returns the number of stored tickets.
func (r *TicketRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Clear drops every ticket.
func (r *TicketRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[string]*model.Ticket)
	r.order = nil
}

func applyUpdate(t *model.Ticket, u model.TicketUpdate) {
	if u.CustomerID != nil {
		t.CustomerID = *u.CustomerID
	}
	if u.CustomerEmail != nil {
		t.CustomerEmail = *u.CustomerEmail
	}
	if u.CustomerName != nil {
		t.CustomerName = *u.CustomerName
	}
	if u.Subject != nil {
		t.Subject = *u.Subject
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.AssignedToSet {
		t.AssignedTo = u.AssignedTo
	}
	if u.Tags != nil {
		t.Tags = slices.Clone(u.Tags)
	}
	if u.Metadata != nil {
		m := *u.Metadata
		t.Metadata = &m
	}
}

// cloneTicket copies t so callers cannot mutate stored state.
func cloneTicket(t *model.Ticket) *model.Ticket {
	c := *t
	c.Tags = slices.Clone(t.Tags)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if t.AssignedTo != nil {
		a := *t.AssignedTo
		c.AssignedTo = &a
	}
	if t.Metadata != nil {
		m := *t.Metadata
		c.Metadata = &m
	}
	if t.ResolvedAt != nil {
		ra := *t.ResolvedAt
		c.ResolvedAt = &ra
	}
	return &c
}
