package dto

import (
	"time"

	"github.com/tree-d/kiosk_api/model"
)

// ScanRequest is the raw kiosk payload. The name fields are free text and
// may carry null-like sentinels; classification sorts that out downstream.
type ScanRequest struct {
	ID       string `json:"id" validate:"required,min=1,max=100,device_id"`
	Statue   string `json:"statue"`
	Language string `json:"language"`
	Event    string `json:"event"`
	Type     string `json:"type"`
}

func (r ScanRequest) Validate() error {
	return GetValidator().Struct(r)
}

// ExplicitEvent returns the event hint, with "event" taking precedence over
// the older "type" field some kiosk firmware still sends.
func (r ScanRequest) ExplicitEvent() string {
	if r.Event != "" {
		return r.Event
	}
	return r.Type
}

// IngestResponse mirrors what the dashboard expects from a scan post.
type IngestResponse struct {
	Message          string   `json:"message"`
	EventType        string   `json:"event_type,omitempty"`
	DeviceID         string   `json:"device_id,omitempty"`
	IncrementedPaths []string `json:"incremented_paths"`
}

type SnapshotResponse struct {
	Snapshot *model.DeviceSnapshot `json:"snapshot"`
}

// CounterCollectionResponse keeps the legacy "stored_data" key the dashboard
// reads.
type CounterCollectionResponse struct {
	StoredData []*model.CounterRecord `json:"stored_data"`
}

type TimeResponse struct {
	CurrentTime string    `json:"current_time"`
	CurrentDate string    `json:"current_date"`
	Timestamp   time.Time `json:"timestamp"`
}
