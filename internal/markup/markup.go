// Package markup models the translatable text runs of one WordprocessingML
// part. It parses the XML into a DOM, walks paragraphs in document order,
// and merges adjacent text leaves that share identical run formatting into
// segments — the units submitted for translation. Everything that is not
// leaf text survives the round trip untouched.
package markup

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// Tree is the parsed form of one markup part.
type Tree struct {
	doc *etree.Document
}

// Segment is a maximal run of adjacent, identically formatted text leaves
// inside one paragraph. Its concatenated text is translated as a whole;
// write-back puts the result on the anchor (first) leaf and empties the
// rest, so output order always matches input order.
type Segment struct {
	anchor *etree.Element
	rest   []*etree.Element
	text   string
	key    string
}

// Text returns the concatenated source text of the segment's leaves.
func (s *Segment) Text() string { return s.text }

// LeafCount returns the number of leaves the segment owns.
func (s *Segment) LeafCount() int { return 1 + len(s.rest) }

// FormatKey returns the deterministic serialization of the run formatting
// shared by every leaf in the segment. Empty when the runs carry no
// formatting properties.
func (s *Segment) FormatKey() string { return s.key }

// WriteBack replaces the segment's text with translated. The anchor leaf
// receives the full result; every other leaf is emptied. Until WriteBack
// is called the underlying leaves keep their original text, so a failed
// translation leaves the document unchanged.
func (s *Segment) WriteBack(translated string) {
	s.anchor.SetText(translated)
	for _, leaf := range s.rest {
		leaf.SetText("")
	}
}

// Parse reads one markup part into a Tree.
func Parse(data []byte) (*Tree, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse markup part: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("parse markup part: no root element")
	}
	return &Tree{doc: doc}, nil
}

// Bytes serializes the tree back to XML, preserving the original
// declaration and every node the pipeline did not touch.
func (t *Tree) Bytes() ([]byte, error) {
	return t.doc.WriteToBytes()
}

// Leaves returns every text leaf (w:t) in document order, including
// whitespace-only ones.
func (t *Tree) Leaves() []*etree.Element {
	return t.doc.FindElements("//w:t")
}

// Paragraphs walks the tree in document order and returns the merged
// segments of each paragraph. Leaves with no visible text are skipped: no
// content, no translation call. A formatting change or a paragraph
// boundary always closes the current segment — merging across either
// would require inventing run metadata the source does not have.
func (t *Tree) Paragraphs() [][]*Segment {
	var paragraphs [][]*Segment
	for _, p := range t.doc.FindElements("//w:p") {
		var segs []*Segment
		var cur *Segment

		for _, leaf := range p.FindElements(".//w:t") {
			text := leaf.Text()
			if strings.TrimSpace(text) == "" {
				continue
			}
			key := formatKey(leaf.Parent())

			if cur != nil && cur.key == key {
				cur.text += text
				cur.rest = append(cur.rest, leaf)
				continue
			}
			if cur != nil {
				segs = append(segs, cur)
			}
			cur = &Segment{anchor: leaf, text: text, key: key}
		}
		if cur != nil {
			segs = append(segs, cur)
		}
		if len(segs) > 0 {
			paragraphs = append(paragraphs, segs)
		}
	}
	return paragraphs
}

// Segments returns every merged segment of the tree in document order.
func (t *Tree) Segments() []*Segment {
	var all []*Segment
	for _, segs := range t.Paragraphs() {
		all = append(all, segs...)
	}
	return all
}

// formatKey derives the segment-merge key from the run properties (w:rPr)
// of the run enclosing a leaf. A run without properties keys to "".
func formatKey(run *etree.Element) string {
	if run == nil {
		return ""
	}
	props := run.SelectElement("w:rPr")
	if props == nil {
		return ""
	}
	var sb strings.Builder
	canonicalize(props, &sb)
	return sb.String()
}

// canonicalize writes a deterministic serialization of an element:
// attributes sorted by name, children in document order. Equal formatting
// always produces equal keys regardless of attribute ordering quirks in
// the source file.
func canonicalize(e *etree.Element, sb *strings.Builder) {
	sb.WriteByte('<')
	sb.WriteString(e.FullTag())

	attrs := make([]etree.Attr, len(e.Attr))
	copy(attrs, e.Attr)
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].FullKey() < attrs[j].FullKey()
	})
	for _, a := range attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.FullKey())
		sb.WriteString(`="`)
		sb.WriteString(a.Value)
		sb.WriteByte('"')
	}
	sb.WriteByte('>')

	for _, child := range e.ChildElements() {
		canonicalize(child, sb)
	}
	sb.WriteString("</" + e.FullTag() + ">")
}
