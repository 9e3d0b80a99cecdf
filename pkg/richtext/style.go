package richtext

import "unicode/utf8"

// StyleResult reports the outcome of a style application: the size now in
// effect at the selection (for the toolbar) and whether the caller should
// persist the size as the new editor default (caret applications only).
type StyleResult struct {
	ActiveSize int
	SetDefault bool
}

// ApplyFontSize changes the font size for the selection.
//
// For a range, partially covered runs are split at the boundaries so every
// run is fully in or fully out, then each covered run is wrapped in a
// container carrying the size with any size set below the container stripped.
// The new size is innermost for exactly the selected text; the global default
// is untouched and the plain text is unchanged.
//
// For a caret, a zero-width marker run carrying the size is inserted at the
// cursor so the next typed text inherits it, and SetDefault tells the caller
// to persist the size as the editor default.
func (d *Document) ApplyFontSize(size int, sel Selection) (StyleResult, error) {
	sel = sel.normalized()
	if err := d.validate(sel); err != nil {
		return StyleResult{}, err
	}

	if sel.Collapsed() {
		d.insertMarker(sel.Start, size)
		return StyleResult{ActiveSize: size, SetDefault: true}, nil
	}

	d.splitAt(sel.Start)
	d.splitAt(sel.End)
	for _, s := range d.spans() {
		n := &d.nodes[s.idx]
		switch {
		case n.marker && s.start >= sel.Start && s.start < sel.End:
			// A stale marker inside the range, including one sitting on the
			// left boundary, would override the new size for text typed at
			// its position.
			n.fontSize = size
		case s.start >= sel.Start && s.end <= sel.End && s.end > s.start:
			d.wrapLeaf(s.idx, size)
		}
	}
	return StyleResult{ActiveSize: size}, nil
}

// CurrentStyleAt returns the effective font size at the selection's anchor,
// innermost container wins. ok is false when no size applies there or the
// selection is outside the document.
func (d *Document) CurrentStyleAt(sel Selection) (size int, ok bool) {
	sel = sel.normalized()
	if d.validate(sel) != nil {
		return 0, false
	}
	idx, found := d.anchorLeaf(sel.Start)
	if !found {
		return 0, false
	}
	if s := d.effectiveSize(idx); s != 0 {
		return s, true
	}
	return 0, false
}

// ToggleMark flips a pass-through formatting mark (bold, italic, ...) on the
// selected runs. When every covered run already carries the mark it is
// cleared, otherwise it is set on all of them.
func (d *Document) ToggleMark(mark string, sel Selection) error {
	sel = sel.normalized()
	if err := d.validate(sel); err != nil {
		return err
	}
	if sel.Collapsed() {
		return nil
	}
	d.splitAt(sel.Start)
	d.splitAt(sel.End)

	var covered []int
	all := true
	for _, s := range d.spans() {
		if s.start >= sel.Start && s.end <= sel.End && s.end > s.start {
			covered = append(covered, s.idx)
			if !d.nodes[s.idx].marks[mark] {
				all = false
			}
		}
	}
	for _, idx := range covered {
		n := &d.nodes[idx]
		if all {
			delete(n.marks, mark)
			continue
		}
		if n.marks == nil {
			n.marks = map[string]bool{}
		}
		n.marks[mark] = true
	}
	return nil
}

// splitAt guarantees a run boundary at the given rune offset, splitting the
// run that straddles it. Offsets already on a boundary are left alone.
func (d *Document) splitAt(at int) {
	for _, s := range d.spans() {
		if at <= s.start || at >= s.end {
			continue
		}
		d.splitLeaf(s.idx, at-s.start)
		return
	}
}

// splitLeaf divides a leaf run at a rune offset inside it. The tail becomes
// a new sibling immediately after the original, carrying the same styling.
func (d *Document) splitLeaf(idx, runeOff int) {
	n := &d.nodes[idx]
	byteOff := 0
	for i := 0; i < runeOff; i++ {
		_, w := utf8.DecodeRuneInString(n.text[byteOff:])
		byteOff += w
	}
	tail := node{
		parent:   n.parent,
		text:     n.text[byteOff:],
		fontSize: n.fontSize,
	}
	if n.marks != nil {
		tail.marks = make(map[string]bool, len(n.marks))
		for k, v := range n.marks {
			tail.marks[k] = v
		}
	}
	d.nodes[idx].text = n.text[:byteOff]
	tailIdx := d.add(tail)
	d.insertAfterSibling(idx, tailIdx)
}

// wrapLeaf interposes a container carrying the size between the leaf and its
// parent, stripping the size from everything below the new container so the
// applied size is the one that wins.
func (d *Document) wrapLeaf(idx, size int) {
	parent := d.nodes[idx].parent
	w := d.add(node{parent: parent, container: true, fontSize: size, children: []int{idx}})
	d.replaceChild(parent, idx, w)
	d.nodes[idx].parent = w
	d.nodes[idx].fontSize = 0
}

// insertMarker places a zero-width marker run carrying the size at the given
// offset; the cursor belongs immediately after it.
func (d *Document) insertMarker(at, size int) {
	d.splitAt(at)
	m := node{fontSize: size, marker: true}

	spans := d.spans()
	if len(spans) == 0 {
		d.appendLeaf(root, m)
		return
	}
	// After the last run ending at the offset, else before the run starting
	// there.
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].end <= at {
			m.parent = d.nodes[spans[i].idx].parent
			d.insertAfterSibling(spans[i].idx, d.add(m))
			return
		}
	}
	first := spans[0].idx
	m.parent = d.nodes[first].parent
	d.insertBeforeSibling(first, d.add(m))
}

// anchorLeaf picks the leaf that governs styling at a caret offset: the
// newest zero-width marker at the offset, else the run containing it, else
// the run ending there.
func (d *Document) anchorLeaf(at int) (int, bool) {
	spans := d.spans()
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		if s.start == at && s.end == at {
			return s.idx, true
		}
	}
	for _, s := range spans {
		if s.start <= at && at < s.end {
			return s.idx, true
		}
	}
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].end == at {
			return spans[i].idx, true
		}
	}
	return 0, false
}

func (d *Document) replaceChild(parent, old, new int) {
	kids := d.nodes[parent].children
	for i, c := range kids {
		if c == old {
			kids[i] = new
			return
		}
	}
}

func (d *Document) insertAfterSibling(sibling, idx int) {
	parent := d.nodes[sibling].parent
	kids := d.nodes[parent].children
	for i, c := range kids {
		if c == sibling {
			kids = append(kids[:i+1], append([]int{idx}, kids[i+1:]...)...)
			d.nodes[parent].children = kids
			d.nodes[idx].parent = parent
			return
		}
	}
}

func (d *Document) insertBeforeSibling(sibling, idx int) {
	parent := d.nodes[sibling].parent
	kids := d.nodes[parent].children
	for i, c := range kids {
		if c == sibling {
			kids = append(kids[:i], append([]int{idx}, kids[i:]...)...)
			d.nodes[parent].children = kids
			d.nodes[idx].parent = parent
			return
		}
	}
}
