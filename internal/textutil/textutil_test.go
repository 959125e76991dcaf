package textutil

import "testing"

func TestLanguageName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"eng", "English"},
		{"en", "English"},
		{"EN", "English"},
		{"fra", "French"},
		{"jpn", "Japanese"},
		{"deu", "German"},
		{"und", "Unknown"},
		{"", "Unknown"},
		{"zz-not-a-tag", "Unknown"},
	}
	for _, tc := range tests {
		if got := LanguageName(tc.input); got != tc.expected {
			t.Errorf("LanguageName(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"matroska", "Matroska"},
		{"  quicktime / mov  ", "Quicktime / Mov"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := TitleCase(tc.input); got != tc.expected {
			t.Errorf("TitleCase(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
