package dto

import (
	"strings"
	"testing"
)

func TestScanRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     ScanRequest
		wantErr bool
	}{
		{"minimal valid", ScanRequest{ID: "es33"}, false},
		{"full valid", ScanRequest{ID: "kiosk_04-a", Statue: "roman", Language: "English", Event: "statue"}, false},
		{"missing id", ScanRequest{Statue: "roman"}, true},
		{"id with spaces", ScanRequest{ID: "es 33"}, true},
		{"id with slash", ScanRequest{ID: "es/33"}, true},
		{"id too long", ScanRequest{ID: strings.Repeat("a", 101)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestScanRequestExplicitEvent(t *testing.T) {
	tests := []struct {
		name string
		req  ScanRequest
		want string
	}{
		{"event field wins", ScanRequest{ID: "es33", Event: "statue", Type: "language"}, "statue"},
		{"type as fallback", ScanRequest{ID: "es33", Type: "language"}, "language"},
		{"neither set", ScanRequest{ID: "es33"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.ExplicitEvent(); got != tt.want {
				t.Errorf("ExplicitEvent() = %q, want %q", got, tt.want)
			}
		})
	}
}
