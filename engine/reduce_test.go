package engine

import (
	"testing"
	"time"

	"github.com/tree-d/kiosk_api/model"
)

func TestCompletionRates(t *testing.T) {
	recA := model.NewCounterRecord("es33")
	recA.Add(model.CounterBucket{Space: model.SpaceArtifacts, Slot: "st4", LangKey: "en", Count: 4})
	recA.Add(model.CounterBucket{Space: model.SpaceCompletions, Slot: "st4", LangKey: "en", Count: 2})
	recA.Add(model.CounterBucket{Space: model.SpaceArtifacts, Slot: "st9", LangKey: "fr", Count: 5})

	recB := model.NewCounterRecord("es34")
	recB.Add(model.CounterBucket{Space: model.SpaceArtifacts, Slot: "st4", LangKey: "en", Count: 4})
	recB.Add(model.CounterBucket{Space: model.SpaceCompletions, Slot: "st4", LangKey: "en", Count: 4})

	stats := CompletionRates([]*model.CounterRecord{recA, recB})
	if len(stats) != 2 {
		t.Fatalf("got %d pairs, want 2", len(stats))
	}

	// st4/en: 8 scans, 6 completions across both devices.
	first := stats[0]
	if first.Slot != "st4" || first.LangKey != "en" {
		t.Fatalf("top pair = %s/%s, want st4/en", first.Slot, first.LangKey)
	}
	if first.TotalScans != 8 || first.CompletedCount != 6 {
		t.Errorf("st4/en = %d scans, %d completed; want 8, 6", first.TotalScans, first.CompletedCount)
	}
	if first.CompletionRate != 75 {
		t.Errorf("st4/en rate = %v, want 75", first.CompletionRate)
	}
	if first.Artifact != "roman" || first.Language != "English" {
		t.Errorf("display names = %q/%q, want roman/English", first.Artifact, first.Language)
	}

	// st9/fr has no completions: rate 0, not an error.
	second := stats[1]
	if second.Slot != "st9" || second.CompletionRate != 0 {
		t.Errorf("second pair = %s rate %v, want st9 rate 0", second.Slot, second.CompletionRate)
	}
}

func TestCompletionRatesZeroScans(t *testing.T) {
	rec := model.NewCounterRecord("es33")
	rec.Add(model.CounterBucket{Space: model.SpaceCompletions, Slot: "st4", LangKey: "en", Count: 1})

	stats := CompletionRates([]*model.CounterRecord{rec})
	if len(stats) != 1 {
		t.Fatalf("got %d pairs, want 1", len(stats))
	}
	if stats[0].TotalScans != 0 {
		t.Fatalf("scans = %d, want 0", stats[0].TotalScans)
	}
	// Zero denominator reports rate 0 rather than NaN or +Inf.
	if stats[0].CompletionRate != 0 {
		t.Errorf("rate = %v, want 0", stats[0].CompletionRate)
	}
}

func TestSummary(t *testing.T) {
	recA := model.NewCounterRecord("es33")
	recA.Add(model.CounterBucket{Space: model.SpaceArtifacts, Slot: "st4", LangKey: "en", Count: 6})
	recA.Add(model.CounterBucket{Space: model.SpaceCompletions, Slot: "st4", LangKey: "en", Count: 3})

	recB := model.NewCounterRecord("es34")
	recB.Add(model.CounterBucket{Space: model.SpaceArtifacts, Slot: "st9", LangKey: "fr", Count: 2})

	got := Summary([]*model.CounterRecord{recA, recB})
	if got.TotalScans != 8 || got.CompletedListens != 3 {
		t.Errorf("summary = %d scans, %d completed; want 8, 3", got.TotalScans, got.CompletedListens)
	}
	if got.OverallRate != 37.5 {
		t.Errorf("overall rate = %v, want 37.5", got.OverallRate)
	}
}

func TestSummaryEmpty(t *testing.T) {
	got := Summary(nil)
	if got.TotalScans != 0 || got.CompletedListens != 0 || got.OverallRate != 0 {
		t.Errorf("empty summary = %+v, want zeros", got)
	}
}

func TestReplay(t *testing.T) {
	t0 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	// es33 listens to st4/en for 90s (completed, threshold 76.5), then the
	// church read closes the segment and opens one that is never closed out.
	entries := []model.Interaction{
		{ID: "1", DeviceID: "es33", EventType: string(EventStatue), Slot: "st4", LangKey: "en", ReceivedAt: t0},
		{ID: "2", DeviceID: "es33", EventType: string(EventStatue), Slot: "st9", LangKey: "en", ReceivedAt: t0.Add(90 * time.Second)},
		// Second device interleaved out of order; only its own entries matter.
		{ID: "3", DeviceID: "es34", EventType: string(EventLanguage), LangKey: "sp", ReceivedAt: t0.Add(30 * time.Second)},
	}

	records := Replay(entries)
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	var es33, es34 *model.CounterRecord
	for _, rec := range records {
		switch rec.DeviceID {
		case "es33":
			es33 = rec
		case "es34":
			es34 = rec
		}
	}
	if es33 == nil || es34 == nil {
		t.Fatalf("missing device records: %+v", records)
	}

	if es33.Artifacts["st4"]["en"] != 1 || es33.Artifacts["st9"]["en"] != 1 {
		t.Errorf("es33 artifacts = %+v, want st4/en and st9/en at 1", es33.Artifacts)
	}
	if es33.Completions["st4"]["en"] != 1 {
		t.Errorf("es33 completions = %+v, want st4/en at 1", es33.Completions)
	}
	if len(es33.Completions) != 1 {
		t.Errorf("es33 has extra completions: %+v", es33.Completions)
	}

	if es34.Language["sp"] != 1 {
		t.Errorf("es34 language counters = %+v, want sp at 1", es34.Language)
	}
	if len(es34.Completions) != 0 {
		t.Errorf("es34 completions = %+v, want none", es34.Completions)
	}
}

func TestReplaySubThresholdSegment(t *testing.T) {
	t0 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	entries := []model.Interaction{
		{ID: "1", DeviceID: "es33", EventType: string(EventStatue), Slot: "st4", LangKey: "en", ReceivedAt: t0},
		{ID: "2", DeviceID: "es33", EventType: string(EventStatue), Slot: "st9", LangKey: "en", ReceivedAt: t0.Add(60 * time.Second)},
	}

	records := Replay(entries)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if n := records[0].Completions["st4"]["en"]; n != 0 {
		t.Errorf("completions st4/en = %d, want 0 (60s < 76.5s)", n)
	}
}

func TestReplayUnclassifiedEntryIsABoundary(t *testing.T) {
	t0 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	// The garbage read at t0+30 counts nothing, but it splits the 90s gap
	// into two sub-threshold segments.
	entries := []model.Interaction{
		{ID: "1", DeviceID: "es33", EventType: string(EventStatue), Slot: "st4", LangKey: "en", ReceivedAt: t0},
		{ID: "2", DeviceID: "es33", EventType: string(EventUnclassified), ReceivedAt: t0.Add(30 * time.Second)},
		{ID: "3", DeviceID: "es33", EventType: string(EventStatue), Slot: "st9", LangKey: "en", ReceivedAt: t0.Add(90 * time.Second)},
	}

	records := Replay(entries)
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if len(records[0].Completions) != 0 {
		t.Errorf("completions = %+v, want none", records[0].Completions)
	}
	if records[0].Artifacts["st4"]["en"] != 1 || records[0].Artifacts["st9"]["en"] != 1 {
		t.Errorf("artifacts = %+v, want st4/en and st9/en at 1", records[0].Artifacts)
	}
}

func TestReplayMatchesCounterFold(t *testing.T) {
	t0 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	entries := []model.Interaction{
		{ID: "1", DeviceID: "es33", EventType: string(EventStatue), Slot: "st4", LangKey: "en", ReceivedAt: t0},
		{ID: "2", DeviceID: "es33", EventType: string(EventPowerOff), ReceivedAt: t0.Add(90 * time.Second)},
	}

	summary := Summary(Replay(entries))
	if summary.TotalScans != 1 || summary.CompletedListens != 1 {
		t.Errorf("summary = %+v, want 1 scan, 1 completed", summary)
	}
	if summary.OverallRate != 100 {
		t.Errorf("overall rate = %v, want 100", summary.OverallRate)
	}
}
