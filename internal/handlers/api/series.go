package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"laborstats/internal/fetcher"
	"laborstats/internal/models"
	"laborstats/internal/validation"
)

// SeriesHandler serves cache-only reads for one canonical series ID.
type SeriesHandler struct {
	cache fetcher.Cache
}

// NewSeriesHandler creates a new API series handler.
func NewSeriesHandler(cache fetcher.Cache) *SeriesHandler {
	return &SeriesHandler{cache: cache}
}

// Get returns the cached observations for a series over an optional year
// range. It never triggers an upstream fetch; absent periods are simply not
// returned.
func (h *SeriesHandler) Get(c fiber.Ctx) error {
	seriesID := c.Params("id")
	if seriesID == "" || len(seriesID) > 30 {
		return jsonError(c, fiber.StatusBadRequest, "invalid series id")
	}

	endYear := queryInt(c, "end_year", time.Now().Year())
	startYear := queryInt(c, "start_year", endYear-2)
	if ok, msg := validation.ValidateYearRange(startYear, endYear); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	// A01 and Q05 are the lexicographic extremes of valid sub-period codes,
	// so this range covers annual, monthly, and quarterly rows.
	from := models.Period{Year: startYear, Code: "A01"}
	to := models.Period{Year: endYear, Code: "Q05"}

	observations, err := h.cache.GetRange(c.Context(), seriesID, from, to)
	if err != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "cache unavailable")
	}

	return jsonSuccess(c, fiber.Map{
		"series_id":    seriesID,
		"start_year":   startYear,
		"end_year":     endYear,
		"observations": observations,
	})
}

func queryInt(c fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
