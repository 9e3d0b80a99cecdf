// Package richtext holds the in-memory model for one day's styled document:
// an arena of run nodes addressed by index, mutated by small pure operations
// (split a run, wrap a range, strip an attribute). The UI renders from this
// tree and forwards input events as operations against it.
package richtext

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"
)

const root = 0

// node is one slot in the arena. A node is either a container (children,
// no payload) or a leaf run (payload, no children). Markers are zero-width
// leaf runs that carry a sticky style for the next typed text.
type node struct {
	parent    int
	children  []int
	container bool
	text      string
	fontSize  int // px, 0 = unset
	marks     map[string]bool
	marker    bool
	dead      bool
}

// Document is an ordered tree of styled text runs. Concatenating the leaf
// runs in tree order always reproduces the plain text; a style attribute on
// a node is overridden by the same attribute on any descendant.
type Document struct {
	nodes []node
}

// New returns an empty document.
func New() *Document {
	return &Document{nodes: []node{{parent: -1, container: true}}}
}

// FromText returns a document holding a single unstyled run.
func FromText(text string) *Document {
	d := New()
	if text != "" {
		d.appendLeaf(root, node{text: text})
	}
	return d
}

func (d *Document) add(n node) int {
	d.nodes = append(d.nodes, n)
	return len(d.nodes) - 1
}

func (d *Document) appendLeaf(parent int, n node) int {
	n.parent = parent
	idx := d.add(n)
	d.nodes[parent].children = append(d.nodes[parent].children, idx)
	return idx
}

// span locates one leaf run in the document's plain text. Markers have
// start == end.
type span struct {
	idx        int
	start, end int
}

// spans walks the tree in order and assigns rune offsets to every live leaf.
func (d *Document) spans() []span {
	var out []span
	at := 0
	var walk func(int)
	walk = func(idx int) {
		n := &d.nodes[idx]
		if n.dead {
			return
		}
		if n.container {
			for _, c := range n.children {
				walk(c)
			}
			return
		}
		w := utf8.RuneCountInString(n.text)
		out = append(out, span{idx: idx, start: at, end: at + w})
		at += w
	}
	walk(root)
	return out
}

// PlainText concatenates all leaf runs in tree order, styling stripped.
// This is also the export rendering.
func (d *Document) PlainText() string {
	var b strings.Builder
	for _, s := range d.spans() {
		b.WriteString(d.nodes[s.idx].text)
	}
	return b.String()
}

// Len reports the document length in runes.
func (d *Document) Len() int {
	n := 0
	for _, s := range d.spans() {
		n += s.end - s.start
	}
	return n
}

// effectiveSize resolves the font size in effect for a node, innermost wins.
func (d *Document) effectiveSize(idx int) int {
	for idx >= 0 {
		if s := d.nodes[idx].fontSize; s != 0 {
			return s
		}
		idx = d.nodes[idx].parent
	}
	return 0
}

// effectiveMarks unions the marks of a node and its ancestors.
func (d *Document) effectiveMarks(idx int) map[string]bool {
	out := map[string]bool{}
	for idx >= 0 {
		for m, on := range d.nodes[idx].marks {
			if on && !out[m] {
				out[m] = true
			}
		}
		idx = d.nodes[idx].parent
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Run is a flattened leaf with its resolved styling, for rendering.
type Run struct {
	Text     string
	FontSize int // effective px, 0 = unset
	Marks    map[string]bool
	Marker   bool
}

// Runs flattens the document into render-ready runs with effective styles.
func (d *Document) Runs() []Run {
	spans := d.spans()
	out := make([]Run, 0, len(spans))
	for _, s := range spans {
		n := &d.nodes[s.idx]
		out = append(out, Run{
			Text:     n.text,
			FontSize: d.effectiveSize(s.idx),
			Marks:    d.effectiveMarks(s.idx),
			Marker:   n.marker,
		})
	}
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{nodes: make([]node, len(d.nodes))}
	copy(c.nodes, d.nodes)
	for i := range c.nodes {
		if d.nodes[i].children != nil {
			c.nodes[i].children = append([]int(nil), d.nodes[i].children...)
		}
		if d.nodes[i].marks != nil {
			m := make(map[string]bool, len(d.nodes[i].marks))
			for k, v := range d.nodes[i].marks {
				m[k] = v
			}
			c.nodes[i].marks = m
		}
	}
	return c
}

// Snapshot returns the canonical serialized form. Byte-equal snapshots mean
// byte-identical persisted content, which is what autosave compares.
func (d *Document) Snapshot() []byte {
	b, _ := json.Marshal(d)
	return b
}

// jsonNode is the nested storage form of a node. Containers have children;
// everything else is a leaf run.
type jsonNode struct {
	Text     string     `json:"text,omitempty"`
	FontSize int        `json:"fontSizePx,omitempty"`
	Marks    []string   `json:"marks,omitempty"`
	Marker   bool       `json:"marker,omitempty"`
	Children []jsonNode `json:"children,omitempty"`
}

func (d *Document) exportNode(idx int) jsonNode {
	n := &d.nodes[idx]
	out := jsonNode{
		Text:     n.text,
		FontSize: n.fontSize,
		Marker:   n.marker,
	}
	for m, on := range n.marks {
		if on {
			out.Marks = append(out.Marks, m)
		}
	}
	sort.Strings(out.Marks)
	for _, c := range n.children {
		if d.nodes[c].dead {
			continue
		}
		out.Children = append(out.Children, d.exportNode(c))
	}
	return out
}

// MarshalJSON renders the document in its nested storage form.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.exportNode(root))
}

// UnmarshalJSON rebuilds the arena from the nested storage form.
func (d *Document) UnmarshalJSON(b []byte) error {
	var jn jsonNode
	if err := json.Unmarshal(b, &jn); err != nil {
		return err
	}
	d.nodes = d.nodes[:0]
	d.add(node{parent: -1, container: true, fontSize: jn.FontSize, marks: marksFromList(jn.Marks)})
	var build func(parent int, jn jsonNode)
	build = func(parent int, jn jsonNode) {
		n := node{
			text:     jn.Text,
			fontSize: jn.FontSize,
			marker:   jn.Marker,
			marks:    marksFromList(jn.Marks),
		}
		if len(jn.Children) > 0 {
			n.container = true
			n.text = ""
		}
		idx := d.appendLeaf(parent, n)
		for _, c := range jn.Children {
			build(idx, c)
		}
	}
	for _, c := range jn.Children {
		build(root, c)
	}
	return nil
}

func marksFromList(list []string) map[string]bool {
	if len(list) == 0 {
		return nil
	}
	m := make(map[string]bool, len(list))
	for _, s := range list {
		m[s] = true
	}
	return m
}
