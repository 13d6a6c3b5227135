package engine

import "testing"

func TestNormalizeDeviceID(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"ES33", "es33"},
		{"  es33  ", "es33"},
		{"Kiosk_04", "kiosk_04"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeDeviceID(tt.raw); got != tt.want {
			t.Errorf("NormalizeDeviceID(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		report Report
		want   Classification
	}{
		{
			name:   "statue read with both names resolved",
			report: Report{DeviceID: "es33", Statue: "roman", Language: "English"},
			want:   Classification{Type: EventStatue, Slot: "st4", LangKey: "en"},
		},
		{
			name:   "language read when statue absent",
			report: Report{DeviceID: "es33", Language: "Spanish"},
			want:   Classification{Type: EventLanguage, LangKey: "sp"},
		},
		{
			name:   "power off when both fields carry the exact sentinel",
			report: Report{DeviceID: "es33", Statue: "NULL", Language: "NULL"},
			want:   Classification{Type: EventPowerOff},
		},
		{
			name:   "lowercase null is absent, not power off",
			report: Report{DeviceID: "es33", Statue: "null", Language: "null"},
			want:   Classification{Type: EventUnclassified, Reason: "no event type"},
		},
		{
			name:   "sentinel variants all mean absent",
			report: Report{DeviceID: "es33", Statue: "n/a", Language: "undefined"},
			want:   Classification{Type: EventUnclassified, Reason: "no event type"},
		},
		{
			name:   "unmapped statue downgrades even with a valid language",
			report: Report{DeviceID: "es33", Statue: "Atlantis", Language: "English"},
			want:   Classification{Type: EventUnclassified, Reason: "statue unmapped"},
		},
		{
			name:   "statue read without a usable language downgrades",
			report: Report{DeviceID: "es33", Statue: "roman", Language: "Klingon"},
			want:   Classification{Type: EventUnclassified, Reason: "language unknown"},
		},
		{
			name:   "explicit statue hint wins over inference",
			report: Report{DeviceID: "es33", Statue: "roman", Language: "English", Explicit: "statue"},
			want:   Classification{Type: EventStatue, Slot: "st4", LangKey: "en"},
		},
		{
			name:   "explicit language hint overrides a resolvable statue",
			report: Report{DeviceID: "es33", Statue: "roman", Language: "English", Explicit: "language"},
			want:   Classification{Type: EventLanguage, LangKey: "en"},
		},
		{
			name:   "explicit hint is case-insensitive",
			report: Report{DeviceID: "es33", Statue: "roman", Language: "English", Explicit: "  STATUE "},
			want:   Classification{Type: EventStatue, Slot: "st4", LangKey: "en"},
		},
		{
			name:   "unrecognized hint falls back to inference",
			report: Report{DeviceID: "es33", Statue: "church", Language: "French", Explicit: "reboot"},
			want:   Classification{Type: EventStatue, Slot: "st9", LangKey: "fr"},
		},
		{
			name:   "explicit statue with absent statue name downgrades",
			report: Report{DeviceID: "es33", Language: "English", Explicit: "statue"},
			want:   Classification{Type: EventUnclassified, Reason: "statue unmapped"},
		},
		{
			name:   "explicit language with unknown language downgrades",
			report: Report{DeviceID: "es33", Language: "Klingon", Explicit: "language"},
			want:   Classification{Type: EventUnclassified, Reason: "unknown language"},
		},
		{
			name:   "inferred language read with unknown language downgrades",
			report: Report{DeviceID: "es33", Language: "Klingon"},
			want:   Classification{Type: EventUnclassified, Reason: "unknown language"},
		},
		{
			name:   "whitespace around names is trimmed",
			report: Report{DeviceID: "es33", Statue: "  roman  ", Language: " English "},
			want:   Classification{Type: EventStatue, Slot: "st4", LangKey: "en"},
		},
		{
			name:   "empty report",
			report: Report{DeviceID: "es33"},
			want:   Classification{Type: EventUnclassified, Reason: "no event type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.report)
			if got != tt.want {
				t.Errorf("Classify(%+v) = %+v, want %+v", tt.report, got, tt.want)
			}
		})
	}
}

func TestClassifyPowerOffBeatsExplicitHint(t *testing.T) {
	got := Classify(Report{DeviceID: "es33", Statue: "NULL", Language: "NULL", Explicit: "statue"})
	if got.Type != EventPowerOff {
		t.Errorf("got %+v, want power off", got)
	}
}
