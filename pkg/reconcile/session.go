package reconcile

import (
	"context"
	"fmt"
	"os"
	"sync"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/remote"
	"tableflip.dev/daybook/pkg/store"
)

// Session drives reconciliation for one app session. It owns the
// remote-sync-disabled flag (monotonic false -> true, reset only by a new
// session) and the queue that mirrors local writes to the remote service.
//
// Writes are two-phase: a synchronous durable local commit, then an
// independent best-effort remote task. A remote failure never rolls back the
// local write.
type Session struct {
	store *store.Store
	svc   remote.Service // nil when signed out

	mu       sync.Mutex
	disabled bool

	tasks chan task
	wg    sync.WaitGroup
	once  sync.Once
}

type taskKind int

const (
	taskUpsert taskKind = iota
	taskDelete
)

type task struct {
	kind  taskKind
	entry *entry.Entry
	id    string
}

// NewSession starts a session over the local store and an optional remote
// service. A nil service means signed out: all remote steps are skipped.
func NewSession(st *store.Store, svc remote.Service) *Session {
	s := &Session{
		store: st,
		svc:   svc,
		tasks: make(chan task, 64),
	}
	s.wg.Add(1)
	go s.mirror()
	return s
}

// Disabled reports whether remote sync was switched off for this session.
func (s *Session) Disabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled
}

// disable flips the circuit breaker. Logged once.
func (s *Session) disable(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return
	}
	s.disabled = true
	fmt.Fprintf(os.Stderr, "reconcile: remote schema missing, sync disabled for this session: %v\n", err)
}

func (s *Session) remoteEnabled() bool {
	return s.svc != nil && !s.Disabled()
}

// Refresh fetches the remote listing and merges it into the local cache.
// Every failure path returns the local set unchanged: SchemaMissing trips
// the session circuit breaker, anything else is logged and skipped until the
// next natural trigger. The merge result is persisted only when it differs
// from the local set.
func (s *Session) Refresh(ctx context.Context) (entry.Set, error) {
	local := s.store.Entries()
	if !s.remoteEnabled() {
		return local, nil
	}

	listing, err := s.svc.ListAll(ctx)
	if err != nil {
		switch {
		case remote.IsSchemaMissing(err):
			s.disable(err)
		default:
			fmt.Fprintf(os.Stderr, "reconcile: list: %v\n", err)
		}
		return local, nil
	}

	merged := Merge(local, listing)
	if changed(local, merged) {
		if err := s.store.SaveEntries(merged); err != nil {
			fmt.Fprintf(os.Stderr, "reconcile: persist merge: %v\n", err)
		}
	}
	return merged, nil
}

// Put commits the entry locally, then mirrors it to the remote service in
// the background. The queue gets its own copy of the entry so edits made
// after this call never race the mirror's marshal.
func (s *Session) Put(ctx context.Context, e *entry.Entry) error {
	set := s.store.Entries()
	set[e.ID] = e
	if err := s.store.SaveEntries(set); err != nil {
		return err
	}
	queued := *e
	if e.Content != nil {
		queued.Content = e.Content.Clone()
	}
	s.enqueue(task{kind: taskUpsert, entry: &queued})
	return nil
}

// Delete removes the entry locally, then mirrors the deletion.
func (s *Session) Delete(ctx context.Context, id string) error {
	set := s.store.Entries()
	if _, ok := set[id]; !ok {
		return nil
	}
	delete(set, id)
	if err := s.store.SaveEntries(set); err != nil {
		return err
	}
	s.enqueue(task{kind: taskDelete, id: id})
	return nil
}

func (s *Session) enqueue(t task) {
	if !s.remoteEnabled() {
		return
	}
	select {
	case s.tasks <- t:
	default:
		// The mirror is best-effort; a stuffed queue means the remote is
		// already misbehaving and the entry will reach it on a later save.
		fmt.Fprintf(os.Stderr, "reconcile: mirror queue full, dropping task\n")
	}
}

// mirror drains the task queue, one remote call at a time. Failures are
// logged and never propagate to the UI.
func (s *Session) mirror() {
	defer s.wg.Done()
	for t := range s.tasks {
		if !s.remoteEnabled() {
			continue
		}
		var err error
		switch t.kind {
		case taskUpsert:
			err = s.svc.Upsert(context.Background(), t.entry)
		case taskDelete:
			err = s.svc.Delete(context.Background(), t.id)
		}
		if err == nil {
			continue
		}
		switch {
		case remote.IsSchemaMissing(err):
			s.disable(err)
		default:
			fmt.Fprintf(os.Stderr, "reconcile: mirror: %v\n", err)
		}
	}
}

// Close stops the mirror worker after draining queued tasks. Call it before
// process exit so pending remote writes get their attempt.
func (s *Session) Close() {
	s.once.Do(func() {
		close(s.tasks)
	})
	s.wg.Wait()
}
