package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"laborstats/internal/fetcher"
	"laborstats/internal/models"
	"laborstats/internal/validation"
)

// QueryHandler serves the single query operation exposed to the
// tool-orchestration layer.
type QueryHandler struct {
	orchestrator *fetcher.Orchestrator
}

// NewQueryHandler creates a new API query handler.
func NewQueryHandler(orchestrator *fetcher.Orchestrator) *QueryHandler {
	return &QueryHandler{orchestrator: orchestrator}
}

// Query resolves and serves a set of logical series queries over an optional
// year range. Partial problems come back as per-series errors and gaps, not
// as an HTTP failure.
func (h *QueryHandler) Query(c fiber.Ctx) error {
	var body struct {
		Queries   []models.Query `json:"queries"`
		StartYear int            `json:"start_year"`
		EndYear   int            `json:"end_year"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if len(body.Queries) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "at least one query is required")
	}
	if len(body.Queries) > validation.MaxQueriesPerRequest {
		return jsonError(c, fiber.StatusBadRequest, "too many queries in one request")
	}
	if ok, msg := validation.ValidateYearRange(body.StartYear, body.EndYear); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	result, err := h.orchestrator.Query(c.Context(), body.Queries, body.StartYear, body.EndYear)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "query failed")
	}

	return jsonSuccess(c, result)
}
