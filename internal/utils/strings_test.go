package utils

import "testing"

func TestSanitizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Main St  ", "Main St"},
		{"<b>Airport</b>", "Airport"},
		{"<script>alert(1)</script>Plaza", "alert(1)Plaza"},
		{"no markup", "no markup"},
		{"trailing <unclosed", "trailing"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeText(tc.in); got != tc.want {
			t.Fatalf("SanitizeText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("42", 0); got != 42 {
		t.Fatalf("got %d want 42", got)
	}
	if got := ParseIntDefault("abc", 100); got != 100 {
		t.Fatalf("got %d want default 100", got)
	}
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("got %d want default 7", got)
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  a   b\t c "); got != "a b c" {
		t.Fatalf("got %q", got)
	}
}
