package model

import (
	"encoding/json"
	"time"
)

// DeviceSnapshot is the single most recent report per device, keyed by the
// normalized device id. Overwritten on every ingest regardless of how the
// report classified; the next report always has a previous to compare with.
type DeviceSnapshot struct {
	DeviceID      string          `json:"device_id" gorm:"primaryKey"`
	StatueName    string          `json:"statue_name"`
	LanguageName  string          `json:"language_name"`
	ExplicitEvent string          `json:"explicit_event"`
	EventType     string          `json:"event_type"`
	Slot          string          `json:"slot"`
	LangKey       string          `json:"lang_key"`
	Raw           json.RawMessage `json:"raw"`
	ReceivedAt    time.Time       `json:"received_at" gorm:"not null"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Interaction is one append-only log entry for a classified report. Unlike
// the snapshot it is never overwritten, so analytics can be replayed from it.
type Interaction struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	DeviceID   string    `json:"device_id" gorm:"index;not null"`
	EventType  string    `json:"event_type" gorm:"not null"`
	Slot       string    `json:"slot"`
	LangKey    string    `json:"lang_key"`
	ReceivedAt time.Time `json:"received_at" gorm:"index;not null"`
	CreatedAt  time.Time `json:"created_at"`
}
