package core

import "testing"

func TestColorANSI(t *testing.T) {
	tests := []struct {
		color Color
		want  string
	}{
		{ColorDefault, ""},
		{ColorRed, "1"},
		{ColorBrightWhite, "15"},
		{ColorOrange, "208"},
		{ColorDarkGray, "238"},
		{Color(200), ""},
	}

	for _, tt := range tests {
		if got := tt.color.ANSI(); got != tt.want {
			t.Errorf("Color(%d).ANSI() = %q, want %q", tt.color, got, tt.want)
		}
	}
}

func TestColors(t *testing.T) {
	colors := Colors()
	if len(colors) != int(colorCount) {
		t.Fatalf("len(Colors()) = %d, want %d", len(colors), colorCount)
	}
	for i, c := range colors[1:] {
		if c.ANSI() == "" {
			t.Errorf("color %d has no ANSI code", i+1)
		}
	}
}
