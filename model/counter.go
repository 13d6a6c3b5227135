package model

import "time"

// Counter spaces. Artifact- and language-scoped counts are never conflated.
const (
	SpaceArtifacts   = "artifacts"
	SpaceLanguage    = "language"
	SpaceCompletions = "completions"

	// SpaceLanguageLegacy is the pre-migration name of the language space.
	SpaceLanguageLegacy = "languages"
)

// CounterBucket is one addressable counter cell. Counts only ever grow and
// every update is an atomic add, so retried deliveries merely double-count.
type CounterBucket struct {
	DeviceID  string    `json:"device_id" gorm:"primaryKey"`
	Space     string    `json:"space" gorm:"primaryKey"`
	Slot      string    `json:"slot" gorm:"primaryKey"` // empty in the language space
	LangKey   string    `json:"lang_key" gorm:"primaryKey"`
	Count     int64     `json:"count" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CounterRecord is the per-device nested view the dashboard reads, folded
// from the flat bucket rows.
type CounterRecord struct {
	DeviceID    string                      `json:"id"`
	Artifacts   map[string]map[string]int64 `json:"artifacts,omitempty"`
	Language    map[string]int64            `json:"language,omitempty"`
	Completions map[string]map[string]int64 `json:"completions,omitempty"`
}

// NewCounterRecord returns an empty record for a device.
func NewCounterRecord(deviceID string) *CounterRecord {
	return &CounterRecord{
		DeviceID:    deviceID,
		Artifacts:   map[string]map[string]int64{},
		Language:    map[string]int64{},
		Completions: map[string]map[string]int64{},
	}
}

// Add applies one bucket row to the nested view. Unknown spaces are ignored
// so stale rows cannot break the fold.
func (r *CounterRecord) Add(b CounterBucket) {
	switch b.Space {
	case SpaceArtifacts:
		if r.Artifacts[b.Slot] == nil {
			r.Artifacts[b.Slot] = map[string]int64{}
		}
		r.Artifacts[b.Slot][b.LangKey] += b.Count
	case SpaceCompletions:
		if r.Completions[b.Slot] == nil {
			r.Completions[b.Slot] = map[string]int64{}
		}
		r.Completions[b.Slot][b.LangKey] += b.Count
	case SpaceLanguage, SpaceLanguageLegacy:
		r.Language[b.LangKey] += b.Count
	}
}
