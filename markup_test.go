package envoi

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestParseInline - Inline formatting in address lines
// ---------------------------------------------------------------------------

func TestParseInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []Run
	}{
		{"empty", "", nil},
		{"whitespace only", "   ", nil},
		{"plain", "1 Main St", []Run{{Text: "1 Main St"}}},
		{"strong", "**ACME** Corp", []Run{{Text: "ACME", Bold: true}, {Text: " Corp"}}},
		{"underscore strong", "__ACME__", []Run{{Text: "ACME", Bold: true}}},
		{"emphasis underlines", "*Attn:* Billing", []Run{{Text: "Attn:", Underline: true}, {Text: " Billing"}}},
		{"ordered list marker stays text", "1. Main St", []Run{{Text: "1. Main St"}}},
		{"heading marker stays text", "# 4", []Run{{Text: "# 4"}}},
		{"bullet marker stays text", "- Suite 100", []Run{{Text: "- Suite 100"}}},
		{"escaped asterisks", `\*not emphasis\*`, []Run{{Text: "*not emphasis*"}}},
		{"code span keeps literal text", "`a*b*c`", []Run{{Text: "a*b*c"}}},
		{"unmatched delimiter", "5 * 3", []Run{{Text: "5 * 3"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseInline(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseInline(%q) (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestPlainRuns(t *testing.T) {
	t.Parallel()

	if got := PlainRuns(""); got != nil {
		t.Errorf("PlainRuns(\"\") = %v, want nil", got)
	}
	want := []Run{{Text: "page 2 of {nb}"}}
	if diff := cmp.Diff(want, PlainRuns("page 2 of {nb}")); diff != "" {
		t.Errorf("PlainRuns() (-want +got):\n%s", diff)
	}
}

func TestRichCell_RunFaces(t *testing.T) {
	t.Parallel()

	rc, fc := newTestContext()
	runs := []Run{{Text: "Bill "}, {Text: "ACME", Bold: true}, {Text: " now", Underline: true}}
	rc.RichCell(1, 1, 6, 0.5, runs, AlignLeft)

	texts := fc.ops("text")
	if len(texts) != 3 {
		t.Fatalf("got %d text calls, want 3", len(texts))
	}
	if texts[0].state.font.Face != FaceLight || texts[1].state.font.Face != FaceMedium {
		t.Errorf("faces = %v, %v", texts[0].state.font.Face, texts[1].state.font.Face)
	}
	if !texts[2].state.font.Underline || texts[2].state.font.Face != FaceLight {
		t.Errorf("third run font = %+v, want light underlined", texts[2].state.font)
	}
	if !approx(texts[1].x, texts[0].x+rc.TextWidth("Bill ")) {
		t.Errorf("runs not laid end to end: %.4f after %.4f", texts[1].x, texts[0].x)
	}
	if !approx(rc.RunsWidth(runs), rc.TextWidth("Bill ACME now")) {
		t.Error("RunsWidth should sum the run widths")
	}
	if rc.State() != DefaultState() {
		t.Errorf("state not restored: %+v", rc.State())
	}
}
