package speech

import "testing"

func TestCleanMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<h3>Advice</h3>Drink *plenty* of water", "AdviceDrink plenty of water"},
		{"# Heading", " Heading"},
		{"no markup", "no markup"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanMarkup(tt.in); got != tt.want {
			t.Errorf("CleanMarkup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
