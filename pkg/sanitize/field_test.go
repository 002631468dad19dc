package sanitize

import "testing"

func TestUpperName(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Monkey Alberto", "MONKEY ALBERTO"},
		{"already UPPER", "ALREADY UPPER"},
		{"élodie dupont", "ÉLODIE DUPONT"},
		{"", ""},
		{"mixed 123 Digits", "MIXED 123 DIGITS"},
		{"with � damage", "WITH � DAMAGE"},
	}
	for _, tt := range tests {
		if got := UpperName(tt.input); got != tt.want {
			t.Errorf("UpperName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUpperNameIdempotent(t *testing.T) {
	for _, input := range []string{"Monkey Alberto", "élodie", "straße"} {
		once := UpperName(input)
		twice := UpperName(once)
		if once != twice {
			t.Errorf("UpperName(%q) not idempotent: %q vs %q", input, once, twice)
		}
	}
}

func TestPadZIP(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"94121", "94121"},
		{"123", "00123"},
		{"1", "00001"},
		{"", "00000"},
		{"941210", "941210"},
		{"AB1", "00AB1"},
	}
	for _, tt := range tests {
		if got := PadZIP(tt.input); got != tt.want {
			t.Errorf("PadZIP(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
