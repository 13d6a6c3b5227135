package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tree-d/kiosk_api/dto"
	"github.com/tree-d/kiosk_api/shared"
)

type AnalyticsHandler struct {
	analyticsSvc AnalyticsServiceInterface
}

func NewAnalyticsHandler(analyticsSvc AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsSvc: analyticsSvc}
}

// @Summary Get all device counters
// @Description Return every device's counter record, dashboard-shaped
// @Tags analytics
// @Produce json
// @Success 200 {object} shared.Response{data=dto.CounterCollectionResponse}
// @Router /api/v1/counters [get]
func (h *AnalyticsHandler) GetCounters(c *fiber.Ctx) error {
	resp, err := h.analyticsSvc.Counters()
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Get completion rates
// @Description Per-(artifact, language) listen statistics, sorted by completion rate descending
// @Tags analytics
// @Produce json
// @Param source query string false "Data source: counters (default) or log"
// @Success 200 {object} shared.Response{data=dto.CompletionRatesResponse}
// @Router /api/v1/analytics/completion-rates [get]
func (h *AnalyticsHandler) GetCompletionRates(c *fiber.Ctx) error {
	resp, err := h.analyticsSvc.CompletionRates(c.Query("source"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Get completion summary
// @Description Overall completion rate across every pair
// @Tags analytics
// @Produce json
// @Param source query string false "Data source: counters (default) or log"
// @Success 200 {object} shared.Response{data=dto.CompletionSummaryResponse}
// @Router /api/v1/analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *fiber.Ctx) error {
	resp, err := h.analyticsSvc.CompletionSummary(c.Query("source"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Get the interaction log
// @Description Time-ordered interaction log, optionally bounded by start/end
// @Tags analytics
// @Produce json
// @Param start query string false "RFC3339 lower bound (inclusive)"
// @Param end query string false "RFC3339 upper bound (inclusive)"
// @Success 200 {object} shared.Response{data=dto.InteractionListResponse}
// @Router /api/v1/analytics/interactions [get]
func (h *AnalyticsHandler) GetInteractions(c *fiber.Ctx) error {
	start, end, err := parseTimeRange(c)
	if err != nil {
		return err
	}

	resp, err := h.analyticsSvc.Interactions(start, end)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

func parseTimeRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var query dto.InteractionQuery
	if err := c.QueryParser(&query); err != nil {
		return nil, nil, shared.NewBadRequestError(err, "Invalid query parameters")
	}

	if err := query.Validate(); err != nil {
		return nil, nil, shared.NewBadRequestError(err, "Invalid time range; expected RFC3339")
	}

	var start, end *time.Time
	if query.Start != "" {
		t, _ := time.Parse(time.RFC3339, query.Start)
		start = &t
	}
	if query.End != "" {
		t, _ := time.Parse(time.RFC3339, query.End)
		end = &t
	}

	return start, end, nil
}
