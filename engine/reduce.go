package engine

import (
	"sort"

	"github.com/tree-d/kiosk_api/catalog"
	"github.com/tree-d/kiosk_api/model"
)

// PairStat is the read-side view for one (artifact, language) pair.
type PairStat struct {
	Slot           string  `json:"slot"`
	LangKey        string  `json:"lang_key"`
	Artifact       string  `json:"artifact"`
	Language       string  `json:"language"`
	TotalScans     int64   `json:"total_scans"`
	CompletedCount int64   `json:"completed_listens"`
	CompletionRate float64 `json:"completion_rate"`
}

// SummaryStat aggregates every pair into one overall figure.
type SummaryStat struct {
	TotalScans       int64   `json:"total_scans"`
	CompletedListens int64   `json:"completed_listens"`
	OverallRate      float64 `json:"overall_rate"`
}

// CompletionRates folds per-device counter records into per-pair completion
// rates, sorted by rate descending. Pairs with zero scans report a rate of
// zero rather than an error.
func CompletionRates(records []*model.CounterRecord) []PairStat {
	type pair struct{ slot, lang string }
	scans := map[pair]int64{}
	completions := map[pair]int64{}

	for _, rec := range records {
		for slot, langs := range rec.Artifacts {
			for lang, n := range langs {
				scans[pair{slot, lang}] += n
			}
		}
		for slot, langs := range rec.Completions {
			for lang, n := range langs {
				completions[pair{slot, lang}] += n
			}
		}
	}

	seen := map[pair]struct{}{}
	for p := range scans {
		seen[p] = struct{}{}
	}
	for p := range completions {
		seen[p] = struct{}{}
	}

	stats := make([]PairStat, 0, len(seen))
	for p := range seen {
		s := PairStat{
			Slot:           p.slot,
			LangKey:        p.lang,
			TotalScans:     scans[p],
			CompletedCount: completions[p],
		}
		s.Artifact, _ = catalog.ArtifactName(p.slot)
		s.Language, _ = catalog.LanguageName(p.lang)
		if s.TotalScans > 0 {
			s.CompletionRate = float64(s.CompletedCount) / float64(s.TotalScans) * 100
		}
		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].CompletionRate != stats[j].CompletionRate {
			return stats[i].CompletionRate > stats[j].CompletionRate
		}
		if stats[i].TotalScans != stats[j].TotalScans {
			return stats[i].TotalScans > stats[j].TotalScans
		}
		if stats[i].Slot != stats[j].Slot {
			return stats[i].Slot < stats[j].Slot
		}
		return stats[i].LangKey < stats[j].LangKey
	})
	return stats
}

// Summary folds every counter record into one overall completion rate.
func Summary(records []*model.CounterRecord) SummaryStat {
	var out SummaryStat
	for _, rec := range records {
		for _, langs := range rec.Artifacts {
			for _, n := range langs {
				out.TotalScans += n
			}
		}
		for _, langs := range rec.Completions {
			for _, n := range langs {
				out.CompletedListens += n
			}
		}
	}
	if out.TotalScans > 0 {
		out.OverallRate = float64(out.CompletedListens) / float64(out.TotalScans) * 100
	}
	return out
}

// Replay rebuilds per-device counter records from the append-only
// interaction log, applying the same completion rule to each consecutive
// pair of entries within a device. Unlike the destructively-overwritten
// snapshots this is lossless, which makes it the audit path.
func Replay(entries []model.Interaction) []*model.CounterRecord {
	byDevice := map[string][]model.Interaction{}
	for _, e := range entries {
		byDevice[e.DeviceID] = append(byDevice[e.DeviceID], e)
	}

	devices := make([]string, 0, len(byDevice))
	for id := range byDevice {
		devices = append(devices, id)
	}
	sort.Strings(devices)

	records := make([]*model.CounterRecord, 0, len(devices))
	for _, id := range devices {
		log := byDevice[id]
		sort.Slice(log, func(i, j int) bool { return log[i].ReceivedAt.Before(log[j].ReceivedAt) })

		rec := model.NewCounterRecord(id)
		for i, e := range log {
			switch EventType(e.EventType) {
			case EventStatue:
				rec.Add(model.CounterBucket{Space: model.SpaceArtifacts, Slot: e.Slot, LangKey: e.LangKey, Count: 1})
			case EventLanguage:
				rec.Add(model.CounterBucket{Space: model.SpaceLanguage, LangKey: e.LangKey, Count: 1})
			}

			if i == 0 {
				continue
			}
			prev := log[i-1]
			snapshot := &model.DeviceSnapshot{
				DeviceID:   prev.DeviceID,
				EventType:  prev.EventType,
				Slot:       prev.Slot,
				LangKey:    prev.LangKey,
				ReceivedAt: prev.ReceivedAt,
			}
			if c, ok := InferCompletion(snapshot, e.ReceivedAt); ok {
				rec.Add(model.CounterBucket{Space: model.SpaceCompletions, Slot: c.Slot, LangKey: c.LangKey, Count: 1})
			}
		}
		records = append(records, rec)
	}
	return records
}
