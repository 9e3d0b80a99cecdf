package app

import (
	"context"
	"testing"

	"tableflip.dev/daybook/pkg/reconcile"
	"tableflip.dev/daybook/pkg/richtext"
	"tableflip.dev/daybook/pkg/store"
)

type testConfig string

func (c testConfig) BasePath() string { return string(c) }

func testService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Load(testConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	sess := reconcile.NewSession(st, nil)
	t.Cleanup(sess.Close)
	return New(st, sess)
}

func TestSaveDocumentCreatesOnFirstSave(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	e, err := svc.SaveDocument(ctx, "2026-03-09", richtext.FromText("first words"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.UpdatedAt == 0 {
		t.Fatalf("save must stamp UpdatedAt")
	}

	got, err := svc.Open(ctx, "2026-03-09")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if got.Content.PlainText() != "first words" {
		t.Fatalf("content lost: %q", got.Content.PlainText())
	}
}

func TestOpenUnknownDateIsFreshEntry(t *testing.T) {
	svc := testService(t)
	e, err := svc.Open(context.Background(), "2026-03-09")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if e.ID != "2026-03-09" || e.Content.Len() != 0 {
		t.Fatalf("expected fresh empty entry, got %#v", e)
	}
	if len(svc.Store.Entries()) != 0 {
		t.Fatalf("open must not persist anything")
	}
}

func TestTagsRoundTrip(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.AddTag(ctx, "2026-03-09", "travel"); err != nil {
		t.Fatalf("add tag: %v", err)
	}
	if _, err := svc.AddTag(ctx, "2026-03-09", "travel"); err != nil {
		t.Fatalf("re-add tag: %v", err)
	}
	e, _ := svc.Open(ctx, "2026-03-09")
	if len(e.Tags) != 1 {
		t.Fatalf("duplicate tag stored: %v", e.Tags)
	}

	if _, err := svc.RemoveTag(ctx, "2026-03-09", "travel"); err != nil {
		t.Fatalf("remove tag: %v", err)
	}
	e, _ = svc.Open(ctx, "2026-03-09")
	if len(e.Tags) != 0 {
		t.Fatalf("tag not removed: %v", e.Tags)
	}
}

func TestDeleteRemovesEntry(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.SaveDocument(ctx, "2026-03-09", richtext.FromText("gone soon")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Delete(ctx, "2026-03-09"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := svc.Store.Entries()["2026-03-09"]; ok {
		t.Fatalf("entry survived delete")
	}
}

func TestApplyFontSizeCaretUpdatesDefault(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.SaveDocument(ctx, "2026-03-09", richtext.FromText("Hello")); err != nil {
		t.Fatalf("save: %v", err)
	}
	res, err := svc.ApplyFontSize(ctx, "2026-03-09", 20, richtext.Caret(5))
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !res.SetDefault {
		t.Fatalf("caret application should set the default")
	}
	if got := svc.Settings().EditorFontSize; got != 20 {
		t.Fatalf("default size not persisted: %d", got)
	}
}

func TestApplyFontSizeRangeLeavesDefault(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	if _, err := svc.SaveDocument(ctx, "2026-03-09", richtext.FromText("Hello world")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.ApplyFontSize(ctx, "2026-03-09", 24, richtext.Range(6, 11)); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := svc.Settings().EditorFontSize; got != store.DefaultSettings().EditorFontSize {
		t.Fatalf("range application changed the default: %d", got)
	}

	e, _ := svc.Open(ctx, "2026-03-09")
	if size, ok := e.Content.CurrentStyleAt(richtext.Range(6, 11)); !ok || size != 24 {
		t.Fatalf("style not persisted: %d (ok=%v)", size, ok)
	}
}

func TestExportStripsStyling(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	doc := richtext.FromText("Hello world")
	if _, err := doc.ApplyFontSize(24, richtext.Range(6, 11)); err != nil {
		t.Fatalf("style: %v", err)
	}
	if err := doc.ToggleMark("bold", richtext.Range(0, 5)); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if _, err := svc.SaveDocument(ctx, "2026-03-09", doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := svc.Export(ctx, "2026-03-09")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out != "Hello world" {
		t.Fatalf("export must be the bare plain text, got %q", out)
	}

	if _, err := svc.Export(ctx, "1999-01-01"); err == nil {
		t.Fatalf("expected error for missing entry")
	}
}
