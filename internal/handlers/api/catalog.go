package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"laborstats/internal/models"
	"laborstats/internal/quota"
	"laborstats/internal/resolver"
)

// CatalogHandler serves the static resolution catalogs: national indicators
// and state geographies.
type CatalogHandler struct {
	resolver *resolver.Resolver
}

// NewCatalogHandler creates a new API catalog handler.
func NewCatalogHandler(res *resolver.Resolver) *CatalogHandler {
	return &CatalogHandler{resolver: res}
}

// Indicators lists the national indicator catalog, optionally filtered by
// the q query parameter.
func (h *CatalogHandler) Indicators(c fiber.Ctx) error {
	if q := c.Query("q", ""); q != "" {
		return jsonSuccess(c, h.resolver.SearchIndicators(q))
	}
	return jsonSuccess(c, h.resolver.Indicators())
}

// States lists all resolvable states with FIPS codes.
func (h *CatalogHandler) States(c fiber.Ctx) error {
	return jsonSuccess(c, h.resolver.States())
}

// QuotaHandler reports current upstream quota usage.
type QuotaHandler struct {
	store    quota.Store
	tierName string
	dailyCap int
}

// NewQuotaHandler creates a new API quota handler.
func NewQuotaHandler(store quota.Store, tierName string, dailyCap int) *QuotaHandler {
	return &QuotaHandler{store: store, tierName: tierName, dailyCap: dailyCap}
}

// Show returns today's quota usage against the tier cap.
func (h *QuotaHandler) Show(c fiber.Ctx) error {
	day := quota.Day(time.Now())
	used, err := h.store.Usage(context.Background(), day)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to read quota usage")
	}
	return jsonSuccess(c, models.QuotaInfo{
		Tier:     h.tierName,
		Day:      day,
		Used:     used,
		DailyCap: h.dailyCap,
	})
}
