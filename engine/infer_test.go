package engine

import (
	"testing"
	"time"

	"github.com/tree-d/kiosk_api/model"
)

// st4/en is the 85-second track, so the completion boundary sits at 76.5s.
func statueSnapshot(receivedAt time.Time) *model.DeviceSnapshot {
	return &model.DeviceSnapshot{
		DeviceID:   "es33",
		EventType:  string(EventStatue),
		Slot:       "st4",
		LangKey:    "en",
		ReceivedAt: receivedAt,
	}
}

func TestInferCompletion(t *testing.T) {
	t0 := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		prev    *model.DeviceSnapshot
		now     time.Time
		want    bool
		elapsed float64
	}{
		{
			name: "no previous snapshot",
			prev: nil,
			now:  t0.Add(time.Hour),
			want: false,
		},
		{
			name: "below threshold",
			prev: statueSnapshot(t0),
			now:  t0.Add(60 * time.Second),
			want: false,
		},
		{
			name:    "exactly at threshold is completed",
			prev:    statueSnapshot(t0),
			now:     t0.Add(76500 * time.Millisecond),
			want:    true,
			elapsed: 76.5,
		},
		{
			name: "just under threshold is not completed",
			prev: statueSnapshot(t0),
			now:  t0.Add(76499 * time.Millisecond),
			want: false,
		},
		{
			name:    "well past threshold",
			prev:    statueSnapshot(t0),
			now:     t0.Add(90 * time.Second),
			want:    true,
			elapsed: 90,
		},
		{
			name: "previous language read never completes",
			prev: &model.DeviceSnapshot{
				DeviceID:   "es33",
				EventType:  string(EventLanguage),
				LangKey:    "en",
				ReceivedAt: t0,
			},
			now:  t0.Add(time.Hour),
			want: false,
		},
		{
			name: "previous unclassified never completes",
			prev: &model.DeviceSnapshot{
				DeviceID:   "es33",
				EventType:  string(EventUnclassified),
				ReceivedAt: t0,
			},
			now:  t0.Add(time.Hour),
			want: false,
		},
		{
			name: "zero receipt timestamp disables inference",
			prev: statueSnapshot(time.Time{}),
			now:  t0.Add(time.Hour),
			want: false,
		},
		{
			name: "missing duration disables inference",
			prev: &model.DeviceSnapshot{
				DeviceID:   "es33",
				EventType:  string(EventStatue),
				Slot:       "st10", // intentionally unused slot
				LangKey:    "en",
				ReceivedAt: t0,
			},
			now:  t0.Add(time.Hour),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InferCompletion(tt.prev, tt.now)
			if ok != tt.want {
				t.Fatalf("InferCompletion() ok = %v, want %v", ok, tt.want)
			}
			if !ok {
				return
			}
			if got.Slot != "st4" || got.LangKey != "en" {
				t.Errorf("completion attributed to %s/%s, want st4/en", got.Slot, got.LangKey)
			}
			if got.Elapsed != tt.elapsed {
				t.Errorf("elapsed = %v, want %v", got.Elapsed, tt.elapsed)
			}
		})
	}
}
