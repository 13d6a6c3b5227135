package catalog

// audioDurations maps slot key -> language key -> track length in seconds.
// Narration length differs per language because scripts are translated,
// not time-stretched.
var audioDurations = map[string]map[string]float64{
	"st1": {"ar": 97, "en": 85, "fr": 110, "sp": 102, "de": 87, "ja": 91, "ko": 104, "ru": 104, "nl": 102, "zh": 85},
	"st2": {"ar": 80, "en": 80, "fr": 74, "sp": 63, "de": 69, "ja": 63, "ko": 79, "ru": 66, "nl": 71, "zh": 75},
	"st3": {"ar": 97, "en": 110, "fr": 96, "sp": 111, "de": 102, "ja": 110, "ko": 119, "ru": 114, "nl": 98, "zh": 96},
	"st4": {"ar": 91, "en": 85, "fr": 91, "sp": 93, "de": 79, "ja": 84, "ko": 76, "ru": 90, "nl": 95, "zh": 75},
	"st5": {"ar": 67, "en": 50, "fr": 68, "sp": 55, "de": 64, "ja": 70, "ko": 66, "ru": 62, "nl": 73, "zh": 59},
	"st6": {"ar": 66, "en": 70, "fr": 66, "sp": 63, "de": 61, "ja": 59, "ko": 77, "ru": 57, "nl": 74, "zh": 76},
	"st7": {"ar": 155, "en": 150, "fr": 166, "sp": 157, "de": 164, "ja": 163, "ko": 158, "ru": 171, "nl": 162, "zh": 157},
	"st8": {"ar": 130, "en": 113, "fr": 114, "sp": 127, "de": 124, "ja": 116, "ko": 135, "ru": 121, "nl": 115, "zh": 126},
	"st9": {"ar": 68, "en": 56, "fr": 76, "sp": 57, "de": 79, "ja": 72, "ko": 73, "ru": 80, "nl": 81, "zh": 65},
	"st11": {"ar": 99, "en": 111, "fr": 100, "sp": 108, "de": 104, "ja": 107, "ko": 114, "ru": 103, "nl": 91, "zh": 115},
	"st12": {"ar": 119, "en": 125, "fr": 132, "sp": 139, "de": 138, "ja": 119, "ko": 118, "ru": 140, "nl": 139, "zh": 126},
	"st13": {"ar": 70, "en": 68, "fr": 71, "sp": 76, "de": 64, "ja": 59, "ko": 72, "ru": 62, "nl": 71, "zh": 61},
	"st14": {"ar": 107, "en": 121, "fr": 118, "sp": 112, "de": 126, "ja": 110, "ko": 122, "ru": 108, "nl": 113, "zh": 131},
	"st15": {"ar": 79, "en": 74, "fr": 93, "sp": 77, "de": 82, "ja": 82, "ko": 85, "ru": 72, "nl": 75, "zh": 84},
	"st16": {"ar": 59, "en": 64, "fr": 55, "sp": 51, "de": 73, "ja": 60, "ko": 64, "ru": 55, "nl": 69, "zh": 60},
	"st17": {"ar": 65, "en": 75, "fr": 66, "sp": 61, "de": 58, "ja": 56, "ko": 59, "ru": 58, "nl": 61, "zh": 75},
	"st18": {"ar": 105, "en": 98, "fr": 113, "sp": 124, "de": 116, "ja": 103, "ko": 106, "ru": 107, "nl": 98, "zh": 102},
	"st19": {"ar": 109, "en": 113, "fr": 107, "sp": 115, "de": 114, "ja": 106, "ko": 100, "ru": 118, "nl": 112, "zh": 115},
	"st21": {"ar": 71, "en": 72, "fr": 74, "sp": 52, "de": 65, "ja": 75, "ko": 72, "ru": 76, "nl": 68, "zh": 63},
	"st22": {"ar": 85, "en": 85, "fr": 85, "sp": 76, "de": 88, "ja": 93, "ko": 85, "ru": 74, "nl": 79, "zh": 75},
	"st23": {"ar": 60, "en": 68, "fr": 59, "sp": 57, "de": 64, "ja": 73, "ko": 55, "ru": 57, "nl": 54, "zh": 72},
	"st24": {"ar": 117, "en": 130, "fr": 116, "sp": 124, "de": 132, "ja": 113, "ko": 115, "ru": 119, "nl": 132, "zh": 125},
}
