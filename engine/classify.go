// Package engine holds the event-interpretation core: report classification,
// completion inference and the counter folds. Everything here is a pure
// function of its inputs and the static catalog.
package engine

import (
	"strings"

	"github.com/tree-d/kiosk_api/catalog"
)

type EventType string

const (
	EventStatue       EventType = "statue"
	EventLanguage     EventType = "language"
	EventPowerOff     EventType = "power_off"
	EventUnclassified EventType = "unclassified"
)

// powerOffSentinel is the exact literal both name fields carry when a kiosk
// signals idle. Case-sensitive: a lowercase "null" is just an absent field.
const powerOffSentinel = "NULL"

// Report is one normalized incoming scan, as handed to the core.
type Report struct {
	DeviceID string
	Statue   string
	Language string
	Explicit string
}

// Classification is the outcome of interpreting one report. Slot and LangKey
// are only set where the event type guarantees them: both for a statue read,
// LangKey alone for a language read.
type Classification struct {
	Type    EventType
	Slot    string
	LangKey string
	Reason  string // set when Type is EventUnclassified
}

// NormalizeDeviceID canonicalizes a raw device id for use as a storage key.
func NormalizeDeviceID(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

var nullish = map[string]struct{}{
	"":          {},
	"null":      {},
	"none":      {},
	"n/a":       {},
	"na":        {},
	"undefined": {},
}

// normalizeName maps the null-like sentinel strings to absent. The second
// return is false when the field should be treated as not present at all.
func normalizeName(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if _, absent := nullish[strings.ToLower(trimmed)]; absent {
		return "", false
	}
	return trimmed, true
}

// Classify interprets a single report against the catalog. No side effects.
func Classify(r Report) Classification {
	// Explicit power-off: both raw fields carry the literal sentinel.
	if strings.TrimSpace(r.Statue) == powerOffSentinel && strings.TrimSpace(r.Language) == powerOffSentinel {
		return Classification{Type: EventPowerOff}
	}

	statueName, hasStatue := normalizeName(r.Statue)
	languageName, hasLanguage := normalizeName(r.Language)

	var slot string
	slotOK := false
	if hasStatue {
		slot, slotOK = catalog.ArtifactSlot(statueName)
	}

	var langKey string
	langOK := false
	if hasLanguage {
		langKey, langOK = catalog.LanguageKey(languageName)
	}

	var eventType EventType
	switch strings.ToLower(strings.TrimSpace(r.Explicit)) {
	case "statue":
		eventType = EventStatue
	case "language":
		eventType = EventLanguage
	default:
		// No usable hint; infer from whichever name field is present. A
		// present-but-unmapped statue name stays a statue read so it can be
		// downgraded below instead of masquerading as a language read.
		if hasStatue {
			eventType = EventStatue
		} else if hasLanguage {
			eventType = EventLanguage
		} else {
			return Classification{Type: EventUnclassified, Reason: "no event type"}
		}
	}

	if eventType == EventStatue {
		// Never fabricate a zero-value key: a statue read needs both.
		if !slotOK {
			return Classification{Type: EventUnclassified, Reason: "statue unmapped"}
		}
		if !langOK {
			return Classification{Type: EventUnclassified, Reason: "language unknown"}
		}
		return Classification{Type: EventStatue, Slot: slot, LangKey: langKey}
	}

	if !langOK {
		return Classification{Type: EventUnclassified, Reason: "unknown language"}
	}
	return Classification{Type: EventLanguage, LangKey: langKey}
}
