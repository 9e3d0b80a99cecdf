// Package autosave debounces document-changed events and drives the
// write-through save path. One coordinator serves the single open editor.
package autosave

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"tableflip.dev/daybook/pkg/richtext"
)

// State is the coordinator's save cycle position.
type State int

const (
	// Idle means no change is waiting to be saved.
	Idle State = iota
	// PendingSave means a change was observed and the debounce timer runs.
	PendingSave
	// Saving means the write-through is in progress.
	Saving
)

func (s State) String() string {
	switch s {
	case PendingSave:
		return "pending"
	case Saving:
		return "syncing"
	default:
		return "saved"
	}
}

// DefaultDelay is the debounce quiet period before an observed change is
// persisted.
const DefaultDelay = 2 * time.Second

// SaveFunc performs the write-through for one date key. It is handed the
// document as it stood at the debounce deadline.
type SaveFunc func(ctx context.Context, dateKey string, doc *richtext.Document) error

// Coordinator debounces change events per the open entry and skips saves
// whose serialized document is byte-identical to the last persisted
// snapshot.
//
// Changed and SaveNow deep-copy the document on the caller's goroutine; the
// debounce timer fires on its own goroutine and must never walk the live
// tree while the editor is still typing into it.
type Coordinator struct {
	mu        sync.Mutex
	delay     time.Duration
	save      SaveFunc
	notify    func(State)
	timer     *time.Timer
	state     State
	key       string
	doc       *richtext.Document
	snapshots map[string][]byte
}

// New builds a coordinator with the given debounce delay. delay <= 0 falls
// back to DefaultDelay.
func New(delay time.Duration, save SaveFunc) *Coordinator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Coordinator{
		delay:     delay,
		save:      save,
		snapshots: make(map[string][]byte),
	}
}

// Notify registers a state observer for the status indicator.
func (c *Coordinator) Notify(fn func(State)) {
	c.mu.Lock()
	c.notify = fn
	c.mu.Unlock()
}

// State returns the current save cycle position.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Seed records the last persisted snapshot for a date key, typically right
// after opening an entry, so an untouched document never triggers a save.
func (c *Coordinator) Seed(dateKey string, doc *richtext.Document) {
	c.mu.Lock()
	c.snapshots[dateKey] = doc.Snapshot()
	c.mu.Unlock()
}

// Changed observes a document mutation: Idle -> PendingSave, and every
// further change while pending resets the timer. The document is captured
// as a copy here, on the event goroutine, so the timer only ever sees a
// tree nobody is mutating.
func (c *Coordinator) Changed(dateKey string, doc *richtext.Document) {
	captured := doc.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.key = dateKey
	c.doc = captured
	if c.timer != nil {
		c.timer.Stop()
	}
	c.setStateLocked(PendingSave)
	c.timer = time.AfterFunc(c.delay, c.deadline)
}

// SaveNow transitions straight to Saving from any state, canceling a pending
// timer. Used by the manual save action.
func (c *Coordinator) SaveNow(ctx context.Context, dateKey string, doc *richtext.Document) error {
	captured := doc.Clone()

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.key = dateKey
	c.doc = captured
	c.mu.Unlock()
	return c.flush(ctx, true)
}

// Flush forces a pending save through without waiting for the timer; a
// no-op when nothing is pending. Used on editor exit.
func (c *Coordinator) Flush(ctx context.Context) error {
	c.mu.Lock()
	pending := c.state == PendingSave
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	if !pending {
		return nil
	}
	return c.flush(ctx, false)
}

func (c *Coordinator) deadline() {
	if err := c.flush(context.Background(), false); err != nil {
		fmt.Fprintf(os.Stderr, "autosave: %v\n", err)
	}
}

// flush runs one save cycle over the captured copy. Unless forced, a
// document byte-identical to the last persisted snapshot is skipped.
func (c *Coordinator) flush(ctx context.Context, force bool) error {
	c.mu.Lock()
	key, doc := c.key, c.doc
	if doc == nil {
		c.setStateLocked(Idle)
		c.mu.Unlock()
		return nil
	}
	snap := doc.Snapshot()
	if !force && bytes.Equal(snap, c.snapshots[key]) {
		c.setStateLocked(Idle)
		c.mu.Unlock()
		return nil
	}
	c.setStateLocked(Saving)
	save := c.save
	c.mu.Unlock()

	err := save(ctx, key, doc)

	c.mu.Lock()
	if err == nil {
		c.snapshots[key] = snap
	}
	c.setStateLocked(Idle)
	c.mu.Unlock()
	return err
}

func (c *Coordinator) setStateLocked(s State) {
	if c.state == s {
		return
	}
	c.state = s
	if c.notify != nil {
		go c.notify(s)
	}
}
