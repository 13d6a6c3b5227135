package engine

import (
	"time"

	"github.com/tree-d/kiosk_api/catalog"
	"github.com/tree-d/kiosk_api/model"
)

// CompletionThreshold is the listened fraction at which the previous segment
// counts as a completed listen.
const CompletionThreshold = 0.9

// Completion attributes a finished listen to the (slot, language) pair of
// the previous snapshot.
type Completion struct {
	Slot    string
	LangKey string
	Elapsed float64 // seconds between the two reports, server clock
}

// InferCompletion decides whether the previous snapshot for a device was a
// completed listen, given the receipt time of the report that closes the
// segment. The triggering report's own classification is irrelevant here.
//
// Returns false when there is no previous snapshot, the previous report was
// not a statue read, its receipt timestamp is unusable, or the catalog has
// no duration for the pair.
func InferCompletion(prev *model.DeviceSnapshot, now time.Time) (Completion, bool) {
	if prev == nil || prev.EventType != string(EventStatue) {
		return Completion{}, false
	}
	if prev.ReceivedAt.IsZero() {
		return Completion{}, false
	}

	duration, ok := catalog.Duration(prev.Slot, prev.LangKey)
	if !ok {
		return Completion{}, false
	}

	elapsed := now.Sub(prev.ReceivedAt).Seconds()
	if elapsed < CompletionThreshold*duration {
		return Completion{}, false
	}

	return Completion{Slot: prev.Slot, LangKey: prev.LangKey, Elapsed: elapsed}, true
}
