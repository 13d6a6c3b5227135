package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tree-d/kiosk_api/dto"
	"github.com/tree-d/kiosk_api/shared"
)

type ScanHandler struct {
	scanSvc ScanServiceInterface
}

func NewScanHandler(scanSvc ScanServiceInterface) *ScanHandler {
	return &ScanHandler{scanSvc: scanSvc}
}

// @Summary Ingest a scan report
// @Description Classify a kiosk scan report, update counters and overwrite the device snapshot
// @Tags scan
// @Accept json
// @Produce json
// @Param scanRequest body dto.ScanRequest true "Raw kiosk scan report"
// @Success 200 {object} shared.Response{data=dto.IngestResponse}
// @Router /api/v1/scan [post]
func (h *ScanHandler) PostScan(c *fiber.Ctx) error {
	var req dto.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request body")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.scanSvc.Ingest(req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, resp.Message, resp)
}

// @Summary Get a device snapshot
// @Description Return the last stored report for a device
// @Tags scan
// @Produce json
// @Param deviceId path string true "Device ID"
// @Success 200 {object} shared.Response{data=dto.SnapshotResponse}
// @Router /api/v1/devices/{deviceId}/snapshot [get]
func (h *ScanHandler) GetSnapshot(c *fiber.Ctx) error {
	snapshot, err := h.scanSvc.Snapshot(c.Params("deviceId"))
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, dto.SnapshotResponse{Snapshot: snapshot})
}

// @Summary Get server time
// @Description Kiosks sync their clocks against this endpoint
// @Tags scan
// @Produce json
// @Success 200 {object} shared.Response{data=dto.TimeResponse}
// @Router /api/v1/time [get]
func (h *ScanHandler) GetTime(c *fiber.Ctx) error {
	now := time.Now().UTC()
	return shared.ResponseOK(c, dto.TimeResponse{
		CurrentTime: now.Format("15:04:05"),
		CurrentDate: now.Format("2006-01-02"),
		Timestamp:   now,
	})
}
