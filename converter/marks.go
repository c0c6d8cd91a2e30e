package converter

import (
	"strings"
	"unicode"
)

// markKind is an AsciiDoc quoted-text formatting kind.
type markKind int

const (
	markNone markKind = iota
	markItalic
	markBold
	markHighlight
	markMonospace
)

var markDelimiters = map[markKind]string{
	markItalic:    "_",
	markBold:      "*",
	markHighlight: "#",
	markMonospace: "`",
}

// delimiter returns the constrained (single) or unconstrained (doubled) form.
func (m markKind) delimiter(unconstrained bool) string {
	d := markDelimiters[m]
	if unconstrained {
		return d + d
	}
	return d
}

// emphasisMark maps an emphasis role to its formatting kind.
func emphasisMark(node Node) markKind {
	switch strings.ToLower(node.GetStringAttr("", "role")) {
	case "bold", "strong":
		return markBold
	case "marked":
		return markHighlight
	default:
		return markItalic
	}
}

// neighbor is what sits immediately outside a span edge: a character, or
// markup (another span or an enclosing delimiter). The zero value is a
// paragraph boundary.
type neighbor struct {
	r      rune
	markup bool
}

var markupNeighbor = neighbor{markup: true}

// unconstrained decides the delimiter pair of a span. A constrained pair is
// only recognized between non-word boundaries and around non-blank content,
// so any edge that cannot satisfy that forces the doubled pair.
func (s *state) unconstrained(mark, parent markKind, inner string, prev, next neighbor) bool {
	switch {
	case mark == parent:
		return true
	case prev.markup || next.markup:
		return true
	case isWordRune(prev.r) || isWordRune(next.r):
		return true
	case inner == "" || unicode.IsSpace(firstRune(inner)) || unicode.IsSpace(lastRune(inner)):
		return true
	case mark == markMonospace && s.config.LiteralAdjacency == AdjacencyUnconstrained:
		return unicode.IsPunct(prev.r) || unicode.IsPunct(next.r)
	}
	return false
}
