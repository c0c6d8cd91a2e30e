package converter

import "strings"

// blockKind classifies emitted blocks for separator decisions.
type blockKind int

const (
	blockNone blockKind = iota
	blockParagraph
	blockList
	blockAttachedList
	blockHeading
	blockOther
)

// output is the line buffer of one conversion.
type output struct {
	lines []string
	last  blockKind
}

func (o *output) line(s string) {
	o.lines = append(o.lines, s)
}

// blank ensures the buffer ends with exactly one blank line.
func (o *output) blank() {
	if len(o.lines) == 0 || o.lines[len(o.lines)-1] == "" {
		return
	}
	o.lines = append(o.lines, "")
}

func (o *output) empty() bool {
	return len(o.lines) == 0
}

func (o *output) String() string {
	text := strings.TrimRight(strings.Join(o.lines, "\n"), "\n")
	text = strings.TrimLeft(text, "\n")
	if text == "" {
		return ""
	}
	return text + "\n"
}

// startBlock writes the separator that must precede a new block of the given
// kind, as dictated by the innermost frame.
func (s *state) startBlock(kind blockKind) {
	defer func() { s.out.last = kind }()

	if s.fctx.adjoin {
		s.fctx.adjoin = false
		return
	}

	item := s.fctx.item()
	if item == nil {
		if kind == blockList && s.out.last == blockList && !s.out.empty() {
			// Adjacent lists merge in AsciiDoc unless something sits between them.
			s.out.blank()
			s.out.line("//")
		}
		s.out.blank()
		return
	}

	defer func() { item.afterList = kind == blockList || kind == blockAttachedList }()

	switch {
	case item.pending != "":
		s.out.line(item.pending + " {empty}")
		item.pending = ""
		item.started = true
		if kind != blockList {
			s.out.line("+")
		}
	case !item.started:
		item.started = true
		if kind != blockParagraph && kind != blockList {
			s.out.line("+")
		}
	case kind == blockList:
	default:
		if item.afterList {
			s.out.blank()
		}
		s.out.line("+")
	}
}

// paragraph emits prepared paragraph lines, placing the first one on a
// pending list-item marker when there is one.
func (s *state) paragraph(lines []string) {
	if len(lines) == 0 {
		return
	}
	if item := s.fctx.item(); item != nil && item.pending != "" && !s.fctx.adjoin {
		s.out.line(item.pending + " " + lines[0])
		for _, l := range lines[1:] {
			s.out.line(l)
		}
		item.pending = ""
		item.started = true
		item.afterList = false
		s.out.last = blockParagraph
		return
	}

	s.startBlock(blockParagraph)
	for _, l := range lines {
		s.out.line(l)
	}
}
