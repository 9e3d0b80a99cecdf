// Package mark names the inline formatting marks a run can carry. Marks are
// pass-through toggles: the core only switches them on and off per run, the
// renderers decide how they look.
package mark

import (
	"fmt"
	"sort"
	"strings"
)

// Mark is an inline formatting attribute name as stored on a run.
type Mark string

const (
	Bold      Mark = "bold"
	Italic    Mark = "italic"
	Underline Mark = "underline"
	Highlight Mark = "highlight"
)

var aliases = map[string]Mark{
	"b":         Bold,
	"bold":      Bold,
	"strong":    Bold,
	"i":         Italic,
	"italic":    Italic,
	"em":        Italic,
	"u":         Underline,
	"underline": Underline,
	"hl":        Highlight,
	"highlight": Highlight,
	"mark":      Highlight,
}

// All returns the known marks in stable order.
func All() []Mark {
	return []Mark{Bold, Italic, Underline, Highlight}
}

// ForAlias resolves CLI input to a mark.
func ForAlias(s string) (Mark, error) {
	if m, ok := aliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	known := make([]string, 0, len(aliases))
	for a := range aliases {
		known = append(known, a)
	}
	sort.Strings(known)
	return "", fmt.Errorf("mark: unknown mark %q (one of %s)", s, strings.Join(known, ", "))
}

func (m Mark) String() string {
	return string(m)
}

const (
	escape        = "\x1b"
	resetCode     = 0
	boldCode      = 1
	italicCode    = 3
	underlineCode = 4
	invertCode    = 7
)

func wrap(code int, in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, code, in, escape, resetCode)
}

// ANSI renders the text with the mark's terminal attribute. Unknown marks
// pass the text through untouched.
func (m Mark) ANSI(in string) string {
	switch m {
	case Bold:
		return wrap(boldCode, in)
	case Italic:
		return wrap(italicCode, in)
	case Underline:
		return wrap(underlineCode, in)
	case Highlight:
		return wrap(invertCode, in)
	}
	return in
}
