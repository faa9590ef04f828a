package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/akave-ai/ledgerdesk/internal/response"
	"github.com/akave-ai/ledgerdesk/internal/service"
)

// AccountHandler handles /accounts/:accountId.
type AccountHandler struct {
	Service *service.BankingService
}

// Balance returns the single-currency balance (GET /accounts/:accountId/balance).
func (h *AccountHandler) Balance(c echo.Context) error {
	b, err := h.Service.Balance(c.Request().Context(), c.Param("accountId"))
	if errors.Is(err, service.ErrMultiCurrency) {
		return response.Conflict(c, "Account has transactions in multiple currencies", err.Error())
	}
	if err != nil {
		return err
	}
	return response.OK(c, b, "")
}

// Summary returns per-currency totals (GET /accounts/:accountId/summary).
func (h *AccountHandler) Summary(c echo.Context) error {
	s, err := h.Service.Summary(c.Request().Context(), c.Param("accountId"))
	if err != nil {
		return err
	}
	return response.OK(c, s, "")
}
