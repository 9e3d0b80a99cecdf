// Package app provides the high-level journal operations shared by the CLI
// commands and the TUI: open, save, delete, tag, style, export. It wraps the
// local store and the reconcile session so callers never touch either
// directly.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/daybook/pkg/autosave"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/mark"
	"tableflip.dev/daybook/pkg/reconcile"
	"tableflip.dev/daybook/pkg/richtext"
	"tableflip.dev/daybook/pkg/store"
)

// Service is the facade over persistence and reconciliation.
type Service struct {
	Store   *store.Store
	Session *reconcile.Session
}

// New wires a service over an opened store and session.
func New(st *store.Store, sess *reconcile.Session) *Service {
	return &Service{Store: st, Session: sess}
}

var errNoStore = errors.New("app: no store configured")

// Startup reconciles the local cache with the remote service and returns the
// working entry set. Offline and signed-out sessions get the local set.
func (s *Service) Startup(ctx context.Context) (entry.Set, error) {
	if s.Session == nil {
		if s.Store == nil {
			return nil, errNoStore
		}
		return s.Store.Entries(), nil
	}
	return s.Session.Refresh(ctx)
}

// List returns all entries ordered by date key.
func (s *Service) List(ctx context.Context) ([]*entry.Entry, error) {
	if s.Store == nil {
		return nil, errNoStore
	}
	return s.Store.Entries().Sorted(), nil
}

// Open returns the entry for the date key, or a fresh unsaved one when the
// date has no entry yet.
func (s *Service) Open(ctx context.Context, dateKey string) (*entry.Entry, error) {
	if s.Store == nil {
		return nil, errNoStore
	}
	if e, ok := s.Store.Entries()[dateKey]; ok {
		return e, nil
	}
	return entry.New(dateKey), nil
}

// SaveDocument commits new content for the date key, creating the entry on
// first save and stamping UpdatedAt.
func (s *Service) SaveDocument(ctx context.Context, dateKey string, doc *richtext.Document) (*entry.Entry, error) {
	e, err := s.Open(ctx, dateKey)
	if err != nil {
		return nil, err
	}
	e.Content = doc
	e.Touch()
	if err := s.put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// AddTag appends a tag to the date's entry.
func (s *Service) AddTag(ctx context.Context, dateKey, tag string) (*entry.Entry, error) {
	e, err := s.Open(ctx, dateKey)
	if err != nil {
		return nil, err
	}
	e.AddTag(tag)
	e.Touch()
	if err := s.put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// RemoveTag drops a tag from the date's entry.
func (s *Service) RemoveTag(ctx context.Context, dateKey, tag string) (*entry.Entry, error) {
	e, err := s.Open(ctx, dateKey)
	if err != nil {
		return nil, err
	}
	e.RemoveTag(tag)
	e.Touch()
	if err := s.put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the date's entry from both stores.
func (s *Service) Delete(ctx context.Context, dateKey string) error {
	if s.Session == nil {
		return errNoStore
	}
	return s.Session.Delete(ctx, dateKey)
}

// ApplyFontSize runs the style applicator against the date's entry and
// persists the result. A caret application additionally becomes the new
// editor default size.
func (s *Service) ApplyFontSize(ctx context.Context, dateKey string, size int, sel richtext.Selection) (richtext.StyleResult, error) {
	e, err := s.Open(ctx, dateKey)
	if err != nil {
		return richtext.StyleResult{}, err
	}
	res, err := e.Content.ApplyFontSize(size, sel)
	if err != nil {
		return richtext.StyleResult{}, err
	}
	if res.SetDefault {
		cfg := s.Store.Settings()
		cfg.EditorFontSize = size
		if err := s.Store.SaveSettings(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "app: persist default size: %v\n", err)
		}
	}
	e.Touch()
	if err := s.put(ctx, e); err != nil {
		return richtext.StyleResult{}, err
	}
	return res, nil
}

// ToggleMark flips a formatting mark on the selected range of the date's
// entry and persists the result.
func (s *Service) ToggleMark(ctx context.Context, dateKey string, m mark.Mark, sel richtext.Selection) (*entry.Entry, error) {
	e, err := s.Open(ctx, dateKey)
	if err != nil {
		return nil, err
	}
	if err := e.Content.ToggleMark(m.String(), sel); err != nil {
		return nil, err
	}
	e.Touch()
	if err := s.put(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Export renders the date's entry as plain text: leaf runs concatenated in
// order, no markup.
func (s *Service) Export(ctx context.Context, dateKey string) (string, error) {
	if s.Store == nil {
		return "", errNoStore
	}
	e, ok := s.Store.Entries()[dateKey]
	if !ok {
		return "", fmt.Errorf("app: no entry for %s", dateKey)
	}
	return e.Content.PlainText(), nil
}

// Settings returns the app settings with defaults backfilled.
func (s *Service) Settings() store.Settings {
	return s.Store.Settings()
}

// SaveSettings persists the app settings.
func (s *Service) SaveSettings(cfg store.Settings) error {
	return s.Store.SaveSettings(cfg)
}

// SaveFunc adapts the service to the autosave coordinator's write-through
// contract.
func (s *Service) SaveFunc() autosave.SaveFunc {
	return func(ctx context.Context, dateKey string, doc *richtext.Document) error {
		_, err := s.SaveDocument(ctx, dateKey, doc)
		return err
	}
}

// Close drains the session's pending remote writes.
func (s *Service) Close() {
	if s.Session != nil {
		s.Session.Close()
	}
}

func (s *Service) put(ctx context.Context, e *entry.Entry) error {
	if s.Session != nil {
		return s.Session.Put(ctx, e)
	}
	if s.Store == nil {
		return errNoStore
	}
	set := s.Store.Entries()
	set[e.ID] = e
	return s.Store.SaveEntries(set)
}
