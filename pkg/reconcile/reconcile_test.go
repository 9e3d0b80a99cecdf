package reconcile

import (
	"context"
	"sync"
	"testing"

	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/remote"
	"tableflip.dev/daybook/pkg/richtext"
	"tableflip.dev/daybook/pkg/store"
)

func stamped(id string, updatedAt int64, text string) *entry.Entry {
	e := entry.New(id)
	e.Content = richtext.FromText(text)
	e.UpdatedAt = updatedAt
	return e
}

func TestMergeLastWriterWins(t *testing.T) {
	local := entry.Set{"2026-03-09": stamped("2026-03-09", 100, "old")}
	remoteEntries := []*entry.Entry{stamped("2026-03-09", 200, "new")}

	merged := Merge(local, remoteEntries)
	if got := merged["2026-03-09"]; got.UpdatedAt != 200 || got.Content.PlainText() != "new" {
		t.Fatalf("expected remote to win, got %#v", got)
	}
}

func TestMergeTieKeepsLocal(t *testing.T) {
	l := stamped("2026-03-09", 100, "local")
	local := entry.Set{l.ID: l}

	merged := Merge(local, []*entry.Entry{stamped("2026-03-09", 100, "remote")})
	if merged["2026-03-09"] != l {
		t.Fatalf("tie must keep local")
	}
}

func TestMergeAdditiveForDisjointKeys(t *testing.T) {
	local := entry.Set{"2026-03-08": stamped("2026-03-08", 50, "a")}
	merged := Merge(local, []*entry.Entry{stamped("2026-03-09", 60, "b")})

	if len(merged) != 2 {
		t.Fatalf("expected both entries, got %d", len(merged))
	}
	if _, ok := merged["2026-03-08"]; !ok {
		t.Fatalf("local-only entry lost")
	}
	if _, ok := merged["2026-03-09"]; !ok {
		t.Fatalf("remote-only entry not added")
	}
}

func TestMergeIdempotent(t *testing.T) {
	local := entry.Set{"2026-03-09": stamped("2026-03-09", 100, "old")}
	remoteEntries := []*entry.Entry{
		stamped("2026-03-09", 200, "new"),
		stamped("2026-03-10", 10, "other"),
	}

	once := Merge(local, remoteEntries)
	twice := Merge(once, remoteEntries)
	if len(once) != len(twice) {
		t.Fatalf("idempotence broken: %d vs %d", len(once), len(twice))
	}
	for id, e := range once {
		if twice[id] != e {
			t.Fatalf("idempotence broken for %s", id)
		}
	}
}

func TestMergeDoesNotPropagateRemoteDeletions(t *testing.T) {
	local := entry.Set{"2026-03-09": stamped("2026-03-09", 100, "kept")}
	// The id is gone from the remote listing; locally it stays.
	merged := Merge(local, nil)
	if _, ok := merged["2026-03-09"]; !ok {
		t.Fatalf("remote absence must not delete local entries")
	}
}

// fakeService counts calls and fails with a configured error.
type fakeService struct {
	mu       sync.Mutex
	listErr  error
	callErr  error
	listing  []*entry.Entry
	calls    int
	upserted []string
}

func (f *fakeService) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeService) ListAll(ctx context.Context) ([]*entry.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.listing, f.listErr
}

func (f *fakeService) Upsert(ctx context.Context, e *entry.Entry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.upserted = append(f.upserted, e.Content.PlainText())
	return f.callErr
}

func (f *fakeService) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.callErr
}

type testConfig string

func (c testConfig) BasePath() string { return string(c) }

func testStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Load(testConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return s
}

func TestRefreshMergesAndPersists(t *testing.T) {
	st := testStore(t)
	if err := st.SaveEntries(entry.Set{"2026-03-09": stamped("2026-03-09", 100, "old")}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := &fakeService{listing: []*entry.Entry{stamped("2026-03-09", 200, "new")}}

	s := NewSession(st, svc)
	defer s.Close()

	merged, err := s.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if merged["2026-03-09"].UpdatedAt != 200 {
		t.Fatalf("merge result not returned")
	}
	if persisted := st.Entries(); persisted["2026-03-09"].UpdatedAt != 200 {
		t.Fatalf("merge result not persisted")
	}
}

func TestRefreshUnreachableKeepsLocal(t *testing.T) {
	st := testStore(t)
	seed := entry.Set{"2026-03-09": stamped("2026-03-09", 100, "kept")}
	if err := st.SaveEntries(seed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := &fakeService{listErr: remote.ErrUnreachable}

	s := NewSession(st, svc)
	defer s.Close()

	got, err := s.Refresh(context.Background())
	if err != nil {
		t.Fatalf("refresh must not fail on an unreachable remote: %v", err)
	}
	if got["2026-03-09"].UpdatedAt != 100 {
		t.Fatalf("local set mutated on failure")
	}
	if s.Disabled() {
		t.Fatalf("unreachable must not trip the circuit breaker")
	}
}

func TestSchemaMissingTripsCircuitBreaker(t *testing.T) {
	st := testStore(t)
	svc := &fakeService{listErr: remote.ErrSchemaMissing, callErr: remote.ErrSchemaMissing}

	s := NewSession(st, svc)

	if _, err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if !s.Disabled() {
		t.Fatalf("schema-missing must disable sync for the session")
	}
	before := svc.count()

	// No further network calls of any kind for the rest of the session.
	if _, err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := s.Put(context.Background(), stamped("2026-03-10", 1, "x")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Delete(context.Background(), "2026-03-10"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	s.Close()

	if got := svc.count(); got != before {
		t.Fatalf("expected no network calls after the breaker tripped, got %d extra", got-before)
	}
}

func TestPutCommitsLocallyDespiteRemoteFailure(t *testing.T) {
	st := testStore(t)
	svc := &fakeService{callErr: remote.ErrUnreachable}

	s := NewSession(st, svc)
	if err := s.Put(context.Background(), stamped("2026-03-09", 100, "kept")); err != nil {
		t.Fatalf("put: %v", err)
	}
	s.Close()

	if _, ok := st.Entries()["2026-03-09"]; !ok {
		t.Fatalf("local write rolled back by remote failure")
	}
	if s.Disabled() {
		t.Fatalf("unreachable mirror must not trip the breaker")
	}
}

func TestMirrorUpsertsTheEntryAsWritten(t *testing.T) {
	st := testStore(t)
	svc := &fakeService{}
	s := NewSession(st, svc)

	e := stamped("2026-03-09", 100, "first draft")
	if err := s.Put(context.Background(), e); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Keep editing the live entry after the write; the queued mirror task
	// owns its own copy and must upsert the state as of the Put.
	if err := e.Content.InsertText(e.Content.Len(), ", rewritten"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	e.UpdatedAt = 200
	s.Close()

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.upserted) != 1 {
		t.Fatalf("expected one upsert, got %d", len(svc.upserted))
	}
	if svc.upserted[0] != "first draft" {
		t.Fatalf("mirror saw later edits: %q", svc.upserted[0])
	}
}

func TestSignedOutSessionSkipsRemote(t *testing.T) {
	st := testStore(t)
	s := NewSession(st, nil)
	defer s.Close()

	if err := s.Put(context.Background(), stamped("2026-03-09", 100, "x")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if err := s.Delete(context.Background(), "2026-03-09"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := st.Entries()["2026-03-09"]; ok {
		t.Fatalf("delete did not reach the local store")
	}
}
