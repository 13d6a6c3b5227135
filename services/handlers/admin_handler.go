package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tree-d/kiosk_api/shared"
)

type AdminHandler struct {
	analyticsSvc AnalyticsServiceInterface
	exportSvc    ExportServiceInterface
}

func NewAdminHandler(analyticsSvc AnalyticsServiceInterface, exportSvc ExportServiceInterface) *AdminHandler {
	return &AdminHandler{
		analyticsSvc: analyticsSvc,
		exportSvc:    exportSvc,
	}
}

// @Summary Migrate legacy language counters
// @Description Fold the legacy "languages" counter space into "language"
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=dto.MigrateCountersResponse}
// @Router /api/v1/admin/migrate/language-counters [post]
func (h *AdminHandler) MigrateLanguageCounters(c *fiber.Ctx) error {
	resp, err := h.analyticsSvc.MigrateLanguageCounters()
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Export the interaction log
// @Description Archive the (optionally bounded) interaction log to object storage as NDJSON
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param start query string false "RFC3339 lower bound (inclusive)"
// @Param end query string false "RFC3339 upper bound (inclusive)"
// @Success 200 {object} shared.Response{data=dto.ExportResponse}
// @Router /api/v1/admin/export/interactions [post]
func (h *AdminHandler) ExportInteractions(c *fiber.Ctx) error {
	start, end, err := parseTimeRange(c)
	if err != nil {
		return err
	}

	resp, err := h.exportSvc.ExportInteractions(start, end)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}
