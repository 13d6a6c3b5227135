package handlers

import (
	"time"

	"github.com/tree-d/kiosk_api/dto"
	"github.com/tree-d/kiosk_api/model"
)

type ScanServiceInterface interface {
	Ingest(req dto.ScanRequest) (*dto.IngestResponse, error)
	Snapshot(deviceID string) (*model.DeviceSnapshot, error)
}

type AnalyticsServiceInterface interface {
	CompletionRates(source string) (*dto.CompletionRatesResponse, error)
	CompletionSummary(source string) (*dto.CompletionSummaryResponse, error)
	Counters() (*dto.CounterCollectionResponse, error)
	Interactions(start, end *time.Time) (*dto.InteractionListResponse, error)
	MigrateLanguageCounters() (*dto.MigrateCountersResponse, error)
}

type AuthServiceInterface interface {
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
}

type ExportServiceInterface interface {
	ExportInteractions(start, end *time.Time) (*dto.ExportResponse, error)
}
