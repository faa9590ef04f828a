package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/akave-ai/ledgerdesk/internal/model"
	"github.com/akave-ai/ledgerdesk/internal/repository"
	"github.com/akave-ai/ledgerdesk/internal/response"
	"github.com/akave-ai/ledgerdesk/internal/service"
	"github.com/akave-ai/ledgerdesk/internal/validation"
)

// TransactionHandler handles /transactions.
type TransactionHandler struct {
	Service *service.BankingService
}

// Create records a transaction (POST /transactions).
func (h *TransactionHandler) Create(c echo.Context) error {
	var in model.CreateTransactionInput
	if err := bodyBinder.BindBody(c, &in); err != nil {
		return invalidBody(c, err)
	}
	tx, err := h.Service.CreateTransaction(c.Request().Context(), in)
	if _, ok := validation.AsFieldError(err); ok {
		return fieldFailure(c, err)
	}
	if err != nil {
		return err
	}
	return response.Created(c, tx, "Transaction created")
}

// parseQuery validates the filter parameters shared by List and Export.
func parseQuery(c echo.Context) (model.TransactionQuery, []string) {
	return validation.ParseTransactionQuery(
		c.QueryParam("accountId"), c.QueryParam("type"), c.QueryParam("from"), c.QueryParam("to"))
}

func invalidQuery(c echo.Context, problems []string) error {
	return response.ErrorWithDetails(c, http.StatusBadRequest,
		"Invalid query parameters", strings.Join(problems, "; "), problems)
}

// List returns the filtered log (GET /transactions?accountId=&type=&from=&to=).
func (h *TransactionHandler) List(c echo.Context) error {
	q, problems := parseQuery(c)
	if len(problems) > 0 {
		return invalidQuery(c, problems)
	}
	txs, err := h.Service.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return response.OK(c, txs, "")
}

// Export streams the filtered log as a CSV attachment
// (GET /transactions/export?format=csv).
func (h *TransactionHandler) Export(c echo.Context) error {
	if !strings.EqualFold(c.QueryParam("format"), "csv") {
		return response.BadRequest(c, "Invalid format parameter", `The format parameter must be set to "csv"`)
	}
	q, problems := parseQuery(c)
	if len(problems) > 0 {
		return invalidQuery(c, problems)
	}

	filename, body, err := h.Service.ExportCSV(c.Request().Context(), q)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", body)
}

// Get returns one transaction (GET /transactions/:id).
func (h *TransactionHandler) Get(c echo.Context) error {
	id := c.Param("id")
	tx, err := h.Service.Get(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return response.NotFound(c, fmt.Sprintf("Transaction with id '%s' not found", id), err.Error())
	}
	if err != nil {
		return err
	}
	return response.OK(c, tx, "")
}
