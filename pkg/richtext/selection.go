package richtext

import "errors"

// ErrSelectionOutOfDocument reports a selection that does not resolve inside
// the live document. Style operations treat it as a no-op at the boundary.
var ErrSelectionOutOfDocument = errors.New("richtext: selection outside document")

// Selection addresses the document's plain text by rune offsets. Start == End
// is a caret; otherwise the selection spans [Start, End).
type Selection struct {
	Start int
	End   int
}

// Caret returns a collapsed selection at the given offset.
func Caret(at int) Selection {
	return Selection{Start: at, End: at}
}

// Range returns a selection spanning [start, end).
func Range(start, end int) Selection {
	return Selection{Start: start, End: end}
}

// Collapsed reports whether the selection spans no text.
func (s Selection) Collapsed() bool {
	return s.Start == s.End
}

func (s Selection) normalized() Selection {
	if s.Start > s.End {
		s.Start, s.End = s.End, s.Start
	}
	return s
}

func (d *Document) validate(s Selection) error {
	if s.Start < 0 || s.End < s.Start || s.End > d.Len() {
		return ErrSelectionOutOfDocument
	}
	return nil
}
