package catalog

import "testing"

func TestArtifactSlot(t *testing.T) {
	tests := []struct {
		name     string
		wantSlot string
		wantOK   bool
	}{
		{"roman", "st4", true},
		{"church", "st9", true},
		{"Mona Lisa", "st24", true},
		{"Atlantis", "", false},
		{"ROMAN", "", false}, // lookups are case-sensitive
		{"", "", false},
	}

	for _, tt := range tests {
		slot, ok := ArtifactSlot(tt.name)
		if slot != tt.wantSlot || ok != tt.wantOK {
			t.Errorf("ArtifactSlot(%q) = (%q, %v), want (%q, %v)", tt.name, slot, ok, tt.wantSlot, tt.wantOK)
		}
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	for _, slot := range Slots() {
		name, ok := ArtifactName(slot)
		if !ok {
			t.Fatalf("ArtifactName(%q) missing", slot)
		}
		back, ok := ArtifactSlot(name)
		if !ok || back != slot {
			t.Errorf("ArtifactSlot(%q) = (%q, %v), want (%q, true)", name, back, ok, slot)
		}
	}
}

func TestLanguageKey(t *testing.T) {
	tests := []struct {
		name    string
		wantKey string
		wantOK  bool
	}{
		{"English", "en", true},
		{"Spanish", "sp", true},
		{"Chinese", "zh", true},
		{"Klingon", "", false},
		{"english", "", false},
	}

	for _, tt := range tests {
		key, ok := LanguageKey(tt.name)
		if key != tt.wantKey || ok != tt.wantOK {
			t.Errorf("LanguageKey(%q) = (%q, %v), want (%q, %v)", tt.name, key, ok, tt.wantKey, tt.wantOK)
		}
	}
}

func TestUnusedSlotsStayUnmapped(t *testing.T) {
	for _, slot := range []string{"st10", "st20"} {
		if name, ok := ArtifactName(slot); ok {
			t.Errorf("ArtifactName(%q) = %q, want unmapped", slot, name)
		}
		if _, ok := Duration(slot, "en"); ok {
			t.Errorf("Duration(%q, en) present, want missing", slot)
		}
	}
}

func TestDuration(t *testing.T) {
	// Anchor value the completion threshold tests lean on.
	d, ok := Duration("st4", "en")
	if !ok || d != 85 {
		t.Fatalf("Duration(st4, en) = (%v, %v), want (85, true)", d, ok)
	}

	if _, ok := Duration("st4", "xx"); ok {
		t.Error("Duration(st4, xx) present, want missing")
	}
	if _, ok := Duration("st99", "en"); ok {
		t.Error("Duration(st99, en) present, want missing")
	}
}

func TestDurationTableDense(t *testing.T) {
	slots := Slots()
	langs := Languages()

	if len(slots) != 22 {
		t.Fatalf("got %d slots, want 22", len(slots))
	}
	if len(langs) != 10 {
		t.Fatalf("got %d languages, want 10", len(langs))
	}

	for _, slot := range slots {
		for _, lang := range langs {
			d, ok := Duration(slot, lang)
			if !ok {
				t.Errorf("Duration(%q, %q) missing", slot, lang)
				continue
			}
			if d <= 0 {
				t.Errorf("Duration(%q, %q) = %v, want > 0", slot, lang, d)
			}
		}
	}
}
