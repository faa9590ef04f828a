package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/akave-ai/ledgerdesk/internal/response"
)

// Endpoints is the route index served at GET /.
var Endpoints = map[string]map[string]string{
	"tickets": {
		"POST /tickets":                   "Create a ticket (auto-classified when category or priority is missing)",
		"GET /tickets":                    "List tickets (filters: category, priority, status)",
		"GET /tickets/:id":                "Get a ticket",
		"PUT /tickets/:id":                "Update a ticket",
		"DELETE /tickets/:id":             "Delete a ticket",
		"POST /tickets/:id/auto-classify": "Re-classify a stored ticket",
		"POST /tickets/import":            "Bulk import from a CSV, JSON, XML or XLSX file (multipart field \"file\")",
		"GET /tickets/import/formats":     "List accepted import formats",
	},
	"transactions": {
		"POST /transactions":                  "Create a transaction",
		"GET /transactions":                   "List transactions (filters: accountId, type, from, to)",
		"GET /transactions/:id":               "Get a transaction",
		"GET /transactions/export?format=csv": "Export transactions as CSV (same filters)",
	},
	"accounts": {
		"GET /accounts/:accountId/balance": "Get account balance",
		"GET /accounts/:accountId/summary": "Get account transaction summary",
	},
}

// Root describes the API (GET /).
func Root(c echo.Context) error {
	return response.OK(c, map[string]any{
		"name":    "ledgerdesk",
		"version": "1.0.0",
		"endpoints": Endpoints,
	}, "")
}

// Health reports liveness (GET /health).
func Health(c echo.Context) error {
	return response.OK(c, map[string]string{"status": "ok"}, "")
}
