// Package catalog holds the static exhibit configuration: artifact and
// language key mappings plus the audio track durations used for completion
// inference. Loaded once at startup; treat as read-only.
package catalog

// Version of the compiled-in catalog. Bump when the tables change.
const Version = "2024-11"

var artifactToSlot = map[string]string{
	"Ain Ghazal":             "st1",
	"Atargatis":              "st2",
	"Misha Stele":            "st3",
	"roman":                  "st4",
	"Jordan 1":               "st5",
	"Jordan 2":               "st6",
	"Jordan 3":               "st7",
	"Jordan 4":               "st8",
	"church":                 "st9",
	"boat":                   "st11",
	"tree":                   "st12",
	"lion":                   "st13",
	"bardi":                  "st14",
	"Imhotep":                "st15",
	"Osiris":                 "st16",
	"Tetisheri Stela":        "st17",
	"Ain Ghazal 2":           "st18",
	"Roman Theatre 2":        "st19",
	"Statue of Liberty":      "st21",
	"Rosetta Stone":          "st22",
	"Van Gogh Self Portrait": "st23",
	"Mona Lisa":              "st24",
}

var langToKey = map[string]string{
	"Arabic":   "ar",
	"English":  "en",
	"French":   "fr",
	"Spanish":  "sp",
	"German":   "de",
	"Japanese": "ja",
	"Korean":   "ko",
	"Russian":  "ru",
	"Dutch":    "nl",
	"Chinese":  "zh",
}

var slotToArtifact = invert(artifactToSlot)
var keyToLang = invert(langToKey)

func invert(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// ArtifactSlot resolves an artifact display name to its slot key.
// Unknown names resolve to no key, never an error.
func ArtifactSlot(name string) (string, bool) {
	slot, ok := artifactToSlot[name]
	return slot, ok
}

// ArtifactName resolves a slot key back to its display name.
func ArtifactName(slot string) (string, bool) {
	name, ok := slotToArtifact[slot]
	return name, ok
}

// LanguageKey resolves a language display name to its compact key.
func LanguageKey(name string) (string, bool) {
	key, ok := langToKey[name]
	return key, ok
}

// LanguageName resolves a language key back to its display name.
func LanguageName(key string) (string, bool) {
	name, ok := keyToLang[key]
	return name, ok
}

// Duration returns the audio track length in seconds for a (slot, language)
// pair. A missing entry disables completion inference for that pair.
func Duration(slot, langKey string) (float64, bool) {
	langs, ok := audioDurations[slot]
	if !ok {
		return 0, false
	}
	d, ok := langs[langKey]
	return d, ok
}

// Slots returns every configured slot key. Order is unspecified.
func Slots() []string {
	out := make([]string, 0, len(slotToArtifact))
	for slot := range slotToArtifact {
		out = append(out, slot)
	}
	return out
}

// Languages returns every configured language key. Order is unspecified.
func Languages() []string {
	out := make([]string, 0, len(keyToLang))
	for key := range keyToLang {
		out = append(out, key)
	}
	return out
}
