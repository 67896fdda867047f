package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"single letter", "a", false},
		{"word", "Animals", false},
		{"with dash", "pet-owners", false},
		{"unicode", "Ärzte", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", MaxLabelLength+1), true},
		{"space", "a b", true},
		{"comma", "a,b", true},
		{"apostrophe", "a'b", true},
		{"null byte", "a\x00", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidLabel) {
				t.Errorf("ValidateLabel(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidLabel)
			}
		})
	}
}

func TestValidateNotation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"venn", "a b ab", false},
		{"with shading and spider", "a b ab, ab, a b 'x", false},
		{"multiline", "a b\nab", false},

		{"null byte", "a\x00b", true},
		{"bell", "a\x07", true},
		{"too long", strings.Repeat("a ", MaxNotationLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotation(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNotation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
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
		{"relative", "out/plan.json", false},
		{"absolute", "/tmp/plan.svg", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "plan\x00.json", true},
		{"control char", "plan\x01.json", true},
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
