package richtext

import "unicode/utf8"

// InsertText types text at a caret offset. Text entered at a marker position
// flows into the marker so it picks up the sticky style; otherwise it joins
// the run holding the character before the caret.
func (d *Document) InsertText(at int, text string) error {
	if err := d.validate(Caret(at)); err != nil {
		return err
	}
	if text == "" {
		return nil
	}

	spans := d.spans()
	if len(spans) == 0 {
		d.appendLeaf(root, node{text: text})
		return nil
	}

	// Newest marker at the caret wins.
	for i := len(spans) - 1; i >= 0; i-- {
		s := spans[i]
		if s.start == at && s.end == at && d.nodes[s.idx].marker {
			d.nodes[s.idx].text = text
			d.nodes[s.idx].marker = false
			return nil
		}
	}

	// Join the run holding the character before the caret; at offset zero,
	// prepend to the first run instead.
	for _, s := range spans {
		if s.end == s.start {
			continue
		}
		if at > s.start && at <= s.end {
			n := &d.nodes[s.idx]
			off := byteOffset(n.text, at-s.start)
			n.text = n.text[:off] + text + n.text[off:]
			return nil
		}
	}
	for _, s := range spans {
		if s.end > s.start {
			n := &d.nodes[s.idx]
			n.text = text + n.text
			return nil
		}
	}
	d.appendLeaf(root, node{text: text})
	return nil
}

// DeleteRange removes the selected text. Containers left empty are pruned.
func (d *Document) DeleteRange(sel Selection) error {
	sel = sel.normalized()
	if err := d.validate(sel); err != nil {
		return err
	}
	if sel.Collapsed() {
		return nil
	}
	d.splitAt(sel.Start)
	d.splitAt(sel.End)
	for _, s := range d.spans() {
		inside := s.start >= sel.Start && s.end <= sel.End
		if inside && (s.end > s.start || s.start > sel.Start && s.start < sel.End) {
			d.removeLeaf(s.idx)
		}
	}
	return nil
}

func (d *Document) removeLeaf(idx int) {
	for idx != root {
		parent := d.nodes[idx].parent
		d.nodes[idx].dead = true
		d.detachChild(parent, idx)
		if len(d.nodes[parent].children) > 0 {
			return
		}
		idx = parent
	}
}

func (d *Document) detachChild(parent, idx int) {
	kids := d.nodes[parent].children
	for i, c := range kids {
		if c == idx {
			d.nodes[parent].children = append(kids[:i], kids[i+1:]...)
			return
		}
	}
}

func byteOffset(s string, runes int) int {
	off := 0
	for i := 0; i < runes; i++ {
		_, w := utf8.DecodeRuneInString(s[off:])
		off += w
	}
	return off
}
