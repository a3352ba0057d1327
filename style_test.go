package envoi

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseColor - Hex color parsing
// ---------------------------------------------------------------------------

func TestParseColor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    Color
		wantErr bool
	}{
		{"accent", "#0a3678", DefaultAccent, false},
		{"uppercase", "#0A3678", DefaultAccent, false},
		{"short form", "#fff", White, false},
		{"without hash", "000000", Black, false},
		{"surrounding space", "  #ff0000 ", Color{R: 0xff}, false},
		{"empty", "", Color{}, true},
		{"five digits", "#12345", Color{}, true},
		{"not hex", "#gggggg", Color{}, true},
		{"named color", "navy", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColor_String(t *testing.T) {
	t.Parallel()

	if got := DefaultAccent.String(); got != "#0a3678" {
		t.Errorf("String() = %q, want #0a3678", got)
	}
	if got := Gray(96).String(); got != "#606060" {
		t.Errorf("String() = %q, want #606060", got)
	}
}

func TestDefaultState(t *testing.T) {
	t.Parallel()

	s := DefaultState()
	if s.Font.Face != FaceLight || s.Font.Size != 11 || s.Font.Underline {
		t.Errorf("font = %+v, want light 11pt", s.Font)
	}
	if s.TextColor != Black || s.FillColor != Black || s.DrawColor != Black {
		t.Errorf("colors = %v %v %v, want black", s.TextColor, s.FillColor, s.DrawColor)
	}
	if s.TextMode != TextFill {
		t.Errorf("text mode = %v, want fill", s.TextMode)
	}
}
