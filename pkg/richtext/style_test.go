package richtext

import (
	"encoding/json"
	"testing"
)

func TestApplyFontSizeRangeIsolation(t *testing.T) {
	d := FromText("Hello world")

	res, err := d.ApplyFontSize(24, Range(6, 11))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ActiveSize != 24 {
		t.Fatalf("expected active size 24, got %d", res.ActiveSize)
	}
	if res.SetDefault {
		t.Fatalf("range application must not touch the default size")
	}
	if got := d.PlainText(); got != "Hello world" {
		t.Fatalf("plain text changed: %q", got)
	}

	runs := textRuns(d)
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d: %#v", len(runs), runs)
	}
	if runs[0].Text != "Hello " || runs[0].FontSize != 0 {
		t.Fatalf("text outside the selection changed: %#v", runs[0])
	}
	if runs[1].Text != "world" || runs[1].FontSize != 24 {
		t.Fatalf("selected text not at 24: %#v", runs[1])
	}
}

func TestApplyFontSizeRangeOverridesBoundaryMarker(t *testing.T) {
	d := FromText("Hello")

	// A sticky caret size at offset zero, then a restyle of the whole word:
	// the marker sits exactly on the range's left edge and must pick up the
	// new size too.
	if _, err := d.ApplyFontSize(18, Caret(0)); err != nil {
		t.Fatalf("caret apply: %v", err)
	}
	if _, err := d.ApplyFontSize(24, Range(0, 5)); err != nil {
		t.Fatalf("range apply: %v", err)
	}

	if size, ok := d.CurrentStyleAt(Caret(0)); !ok || size != 24 {
		t.Fatalf("marker on the boundary kept the stale size: %d (ok=%v)", size, ok)
	}

	if err := d.InsertText(0, "X"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if size, ok := d.CurrentStyleAt(Range(0, 1)); !ok || size != 24 {
		t.Fatalf("text typed at the left edge got the stale size: %d (ok=%v)", size, ok)
	}
	if got := d.PlainText(); got != "XHello" {
		t.Fatalf("plain text broken: %q", got)
	}
}

func TestApplyFontSizeInnermostWinsAfterRestyle(t *testing.T) {
	// "Hello world" inside a size-14 container, with "world" already at 18.
	blob := `{"fontSizePx":14,"children":[{"text":"Hello "},{"text":"world","fontSizePx":18}]}`
	d := New()
	if err := json.Unmarshal([]byte(blob), d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, err := d.ApplyFontSize(24, Range(6, 11)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if size, ok := d.CurrentStyleAt(Range(6, 11)); !ok || size != 24 {
		t.Fatalf("expected effective size 24, got %d (ok=%v)", size, ok)
	}
	for _, r := range textRuns(d) {
		if r.Text == "world" && r.FontSize != 24 {
			t.Fatalf("stale nested size survived: %#v", r)
		}
		if r.Text == "Hello " && r.FontSize != 14 {
			t.Fatalf("surrounding text lost its container size: %#v", r)
		}
	}
}

func TestApplyFontSizeCollapsedStickiness(t *testing.T) {
	d := FromText("Hello")

	res, err := d.ApplyFontSize(20, Caret(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.SetDefault {
		t.Fatalf("caret application should ask the caller to update the default")
	}
	if size, ok := d.CurrentStyleAt(Caret(5)); !ok || size != 20 {
		t.Fatalf("expected sticky size 20 at the caret, got %d (ok=%v)", size, ok)
	}

	if err := d.InsertText(5, "!"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := d.PlainText(); got != "Hello!" {
		t.Fatalf("unexpected plain text %q", got)
	}
	runs := textRuns(d)
	if runs[0].Text != "Hello" || runs[0].FontSize != 0 {
		t.Fatalf("previously typed text was restyled: %#v", runs[0])
	}
	if runs[1].Text != "!" || runs[1].FontSize != 20 {
		t.Fatalf("typed text did not inherit the sticky size: %#v", runs[1])
	}
}

func TestApplyFontSizeOutOfDocument(t *testing.T) {
	d := FromText("hi")
	if _, err := d.ApplyFontSize(24, Range(0, 10)); err != ErrSelectionOutOfDocument {
		t.Fatalf("expected ErrSelectionOutOfDocument, got %v", err)
	}
	if _, err := d.ApplyFontSize(24, Caret(-1)); err != ErrSelectionOutOfDocument {
		t.Fatalf("expected ErrSelectionOutOfDocument, got %v", err)
	}
	if got := d.PlainText(); got != "hi" {
		t.Fatalf("failed application mutated the document: %q", got)
	}
}

func TestCurrentStyleAtUnset(t *testing.T) {
	d := FromText("Hello world")
	if size, ok := d.CurrentStyleAt(Caret(3)); ok || size != 0 {
		t.Fatalf("expected unset, got %d (ok=%v)", size, ok)
	}
}

func TestApplyFontSizeTwiceIsStable(t *testing.T) {
	d := FromText("Hello world")
	if _, err := d.ApplyFontSize(24, Range(6, 11)); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if _, err := d.ApplyFontSize(18, Range(6, 11)); err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if size, ok := d.CurrentStyleAt(Range(6, 11)); !ok || size != 18 {
		t.Fatalf("expected 18 after restyle, got %d (ok=%v)", size, ok)
	}
	if got := d.PlainText(); got != "Hello world" {
		t.Fatalf("plain text changed: %q", got)
	}
}

func TestToggleMark(t *testing.T) {
	d := FromText("Hello world")

	if err := d.ToggleMark("bold", Range(0, 5)); err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	runs := textRuns(d)
	if !runs[0].Marks["bold"] {
		t.Fatalf("expected bold on %q", runs[0].Text)
	}
	if runs[1].Marks["bold"] {
		t.Fatalf("bold leaked outside the selection: %#v", runs[1])
	}

	if err := d.ToggleMark("bold", Range(0, 5)); err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if runs := textRuns(d); runs[0].Marks["bold"] {
		t.Fatalf("expected bold cleared, got %#v", runs[0])
	}
	if got := d.PlainText(); got != "Hello world" {
		t.Fatalf("plain text changed: %q", got)
	}
}

// textRuns filters out zero-width markers.
func textRuns(d *Document) []Run {
	var out []Run
	for _, r := range d.Runs() {
		if r.Text != "" {
			out = append(out, r)
		}
	}
	return out
}
