package handler

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/akave-ai/ledgerdesk/internal/model"
	"github.com/akave-ai/ledgerdesk/internal/repository"
	"github.com/akave-ai/ledgerdesk/internal/response"
	"github.com/akave-ai/ledgerdesk/internal/service"
	"github.com/akave-ai/ledgerdesk/internal/validation"
)

// TicketHandler handles /tickets and /tickets/:id.
type TicketHandler struct {
	Service *service.TicketService
}

// classifiedTicket is a created ticket with the classification that filled it.
type classifiedTicket struct {
	*model.Ticket
	ClassificationConfidence float64 `json:"classification_confidence"`
	ClassificationReasoning  string  `json:"classification_reasoning"`
}

type ticketList struct {
	Total   int             `json:"total"`
	Tickets []*model.Ticket `json:"tickets"`
}

type classifyResult struct {
	Ticket         *model.Ticket        `json:"ticket"`
	Classification model.Classification `json:"classification"`
}

func ticketNotFound(c echo.Context, id string, err error) error {
	return response.NotFound(c, fmt.Sprintf("Ticket with id '%s' not found", id), err.Error())
}

// Create stores a ticket (POST /tickets). Missing category or priority, or
// ?auto_classify=true, runs the classifier first.
func (h *TicketHandler) Create(c echo.Context) error {
	rec, err := bindRecord(c)
	if err != nil {
		return invalidBody(c, err)
	}
	in, err := validation.DecodeTicketRecord(rec)
	if err != nil {
		return fieldFailure(c, err)
	}

	created, err := h.Service.Create(c.Request().Context(), in, c.QueryParam("auto_classify") == "true")
	if err != nil {
		return err
	}
	if created.Classification == nil {
		return response.Created(c, created.Ticket, "Ticket created")
	}
	return response.Created(c, classifiedTicket{
		Ticket:                   created.Ticket,
		ClassificationConfidence: created.Classification.Confidence,
		ClassificationReasoning:  created.Classification.Reasoning,
	}, "Ticket created with auto-classification")
}

// List returns tickets filtered by category, priority and status (GET /tickets).
func (h *TicketHandler) List(c echo.Context) error {
	var filter model.TicketFilter
	var err error
	if v := c.QueryParam("category"); v != "" {
		if filter.Category, err = validation.ParseCategory(v); err != nil {
			return response.BadRequest(c, "Invalid category filter: "+v, err.Error())
		}
	}
	if v := c.QueryParam("priority"); v != "" {
		if filter.Priority, err = validation.ParsePriority(v); err != nil {
			return response.BadRequest(c, "Invalid priority filter: "+v, err.Error())
		}
	}
	if v := c.QueryParam("status"); v != "" {
		if filter.Status, err = validation.ParseStatus(v); err != nil {
			return response.BadRequest(c, "Invalid status filter: "+v, err.Error())
		}
	}

	tickets, err := h.Service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return response.OK(c, ticketList{Total: len(tickets), Tickets: tickets}, "")
}

// Get returns one ticket (GET /tickets/:id).
func (h *TicketHandler) Get(c echo.Context) error {
	id := c.Param("id")
	t, err := h.Service.Get(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return ticketNotFound(c, id, err)
	}
	if err != nil {
		return err
	}
	return response.OK(c, t, "")
}

// Update applies a partial update (PUT /tickets/:id). An explicit null
// assigned_to unassigns the ticket.
func (h *TicketHandler) Update(c echo.Context) error {
	id := c.Param("id")
	rec, err := bindRecord(c)
	if err != nil {
		return invalidBody(c, err)
	}
	u, err := validation.DecodeTicketUpdate(rec)
	if err != nil {
		return fieldFailure(c, err)
	}

	t, err := h.Service.Update(c.Request().Context(), id, u)
	if errors.Is(err, repository.ErrNotFound) {
		return ticketNotFound(c, id, err)
	}
	if err != nil {
		return err
	}
	return response.OK(c, t, "Ticket updated")
}

// Delete removes a ticket (DELETE /tickets/:id).
func (h *TicketHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	err := h.Service.Delete(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return ticketNotFound(c, id, err)
	}
	if err != nil {
		return err
	}
	return response.NoContent(c)
}

// AutoClassify re-runs the classifier on a stored ticket
// (POST /tickets/:id/auto-classify).
func (h *TicketHandler) AutoClassify(c echo.Context) error {
	id := c.Param("id")
	t, cls, err := h.Service.AutoClassify(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return ticketNotFound(c, id, err)
	}
	if err != nil {
		return err
	}
	return response.OK(c, classifyResult{Ticket: t, Classification: cls}, "Ticket auto-classified")
}
