package dto

import (
	"github.com/tree-d/kiosk_api/engine"
	"github.com/tree-d/kiosk_api/model"
)

// Analytics reads accept ?source=log to fold the interaction log instead of
// the live counters.
const (
	SourceCounters = "counters"
	SourceLog      = "log"
)

type CompletionRatesResponse struct {
	Source string            `json:"source"`
	Rates  []engine.PairStat `json:"rates"`
}

type CompletionSummaryResponse struct {
	Source           string  `json:"source"`
	TotalScans       int64   `json:"total_scans"`
	CompletedListens int64   `json:"completed_listens"`
	OverallRate      float64 `json:"overall_rate"`
}

type InteractionQuery struct {
	Start string `query:"start" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	End   string `query:"end" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

func (q InteractionQuery) Validate() error {
	return GetValidator().Struct(q)
}

type InteractionListResponse struct {
	Interactions []model.Interaction `json:"interactions"`
	Count        int                 `json:"count"`
}

type MigrateCountersResponse struct {
	MigratedDevices []string `json:"migrated_devices"`
}

type ExportResponse struct {
	Bucket  string `json:"bucket"`
	Object  string `json:"object"`
	Entries int    `json:"entries"`
}
