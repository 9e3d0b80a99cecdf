package options

import (
	"testing"
	"time"

	"tableflip.dev/daybook/pkg/timeutil"
)

func TestDateOptionsArgsWinOverFlag(t *testing.T) {
	o := &DateOptions{OnString: "2026-01-01"}
	key, err := o.GetKey([]string{"2026-02-28"})
	if err != nil {
		t.Fatalf("get key: %v", err)
	}
	if key != "2026-02-28" {
		t.Fatalf("positional date should win, got %q", key)
	}
}

func TestDateOptionsDefaultsToToday(t *testing.T) {
	o := &DateOptions{}
	key, err := o.GetKey(nil)
	if err != nil {
		t.Fatalf("get key: %v", err)
	}
	if key != timeutil.Today() {
		t.Fatalf("empty input should mean today, got %q", key)
	}
}

func TestDateOptionsRejectsGarbage(t *testing.T) {
	o := &DateOptions{OnString: "next tuesday-ish"}
	if _, err := o.GetKey(nil); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestSpanOptionsSelection(t *testing.T) {
	o := &SpanOptions{From: 6, To: 11}
	if !o.HasRange() {
		t.Fatalf("both flags set means a range")
	}
	sel := o.Selection(20)
	if sel.Start != 6 || sel.End != 11 {
		t.Fatalf("unexpected selection %+v", sel)
	}

	caret := (&SpanOptions{From: 3, To: -1}).Selection(20)
	if !caret.Collapsed() || caret.Start != 3 {
		t.Fatalf("--from alone should be a caret, got %+v", caret)
	}

	tail := (&SpanOptions{From: -1, To: -1}).Selection(20)
	if !tail.Collapsed() || tail.Start != 20 {
		t.Fatalf("no flags should mean a caret at end, got %+v", tail)
	}
}

func TestListOptionsWindow(t *testing.T) {
	o := &ListOptions{Since: "2w"}
	d, err := o.Window()
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if d != 14*24*time.Hour {
		t.Fatalf("2w = 14 days, got %v", d)
	}

	if d, _ := (&ListOptions{Since: "2w", All: true}).Window(); d != 0 {
		t.Fatalf("--all should disable the window, got %v", d)
	}
	if _, err := (&ListOptions{Since: "fortnight"}).Window(); err == nil {
		t.Fatalf("expected a parse error")
	}
}
