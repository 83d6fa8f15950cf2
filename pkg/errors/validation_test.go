package errors

import (
	"testing"
)

func TestValidateStationID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "42", false},
		{"valid long", "123456789", false},

		{"empty", "", true},
		{"too long", "1234567890123456789", true},
		{"letters", "abc", true},
		{"zero", "0", true},
		{"negative", "-3", true},
		{"traversal", "../1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStationID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStationID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidID) {
				t.Errorf("ValidateStationID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidID)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "station.json", false},
		{"valid nested", "data/stations/42.json", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "data/../secret.json", true},
		{"backslash", "data\\station.json", true},
		{"null byte", "data\x00.json", true},
		{"too long", string(make([]byte, 600)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://example.org/plan.png", false},
		{"http", "http://localhost:8080/plan.png", false},
		{"empty", "", true},
		{"file scheme", "file:///tmp/plan.png", true},
		{"javascript", "javascript:alert(1)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
