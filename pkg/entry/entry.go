// Package entry defines the journal entry model: one rich-text document per
// calendar date, plus tags and the last-writer-wins timestamp.
package entry

import (
	"time"

	"tableflip.dev/daybook/pkg/richtext"
)

// Entry is one date's journal content. ID doubles as the date key, so there
// is at most one entry per calendar date.
type Entry struct {
	ID        string             `json:"id"`
	Date      string             `json:"date"`
	Content   *richtext.Document `json:"content"`
	Tags      []string           `json:"tags,omitempty"`
	UpdatedAt int64              `json:"updatedAt"`
}

// New returns an empty entry for the given ISO date key.
func New(dateKey string) *Entry {
	return &Entry{
		ID:      dateKey,
		Date:    dateKey,
		Content: richtext.New(),
	}
}

// Touch stamps the entry as modified now. UpdatedAt is the sole ordering
// authority for reconciliation, not network completion order.
func (e *Entry) Touch() {
	e.UpdatedAt = time.Now().UnixMilli()
}

// HasTag reports whether the tag is present.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddTag appends the tag if missing, preserving order.
func (e *Entry) AddTag(tag string) {
	if !e.HasTag(tag) {
		e.Tags = append(e.Tags, tag)
	}
}

// RemoveTag drops the tag if present.
func (e *Entry) RemoveTag(tag string) {
	for i, t := range e.Tags {
		if t == tag {
			e.Tags = append(e.Tags[:i], e.Tags[i+1:]...)
			return
		}
	}
}

// Modified converts UpdatedAt to wall-clock time.
func (e *Entry) Modified() time.Time {
	return time.UnixMilli(e.UpdatedAt)
}
