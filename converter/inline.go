package converter

import (
	"fmt"
	"strings"
)

type itemKind int

const (
	itemText itemKind = iota
	itemSpan
	itemWrap
)

// inlineItem is one fragment of a paragraph before delimiters are chosen:
// prepared text, a formatting span, or fixed-delimiter wrapper (quotes,
// macros, link labels).
type inlineItem struct {
	kind     itemKind
	text     string
	mark     markKind
	open     string
	close    string
	children []inlineItem
}

func textItem(s string) inlineItem {
	return inlineItem{kind: itemText, text: s}
}

func spanItem(mark markKind, children []inlineItem) inlineItem {
	return inlineItem{kind: itemSpan, mark: mark, children: children}
}

func wrapItem(open, close string, children []inlineItem) inlineItem {
	return inlineItem{kind: itemWrap, open: open, close: close, children: children}
}

type inlineOpts struct {
	literal bool // escape markup characters
	label   bool // escape closing brackets
}

// inlineText renders mixed content to a single trimmed line.
func (s *state) inlineText(nodes []Node) (string, error) {
	items, err := s.collectInline(nodes, inlineOpts{})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(collapseSpace(s.renderInline(items, neighbor{}, neighbor{}, markNone))), nil
}

// paragraphLines renders mixed content into protected paragraph lines.
func (s *state) paragraphLines(nodes []Node) ([]string, error) {
	text, err := s.inlineText(nodes)
	if err != nil || text == "" {
		return nil, err
	}
	if s.config.SentencePerLine {
		text = splitSentences(text)
	}

	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = protectLine(strings.TrimSpace(l))
	}
	return lines, nil
}

func (s *state) collectInline(nodes []Node, opts inlineOpts) ([]inlineItem, error) {
	var items []inlineItem
	for _, node := range nodes {
		more, err := s.collectNode(node, opts)
		if err != nil {
			return nil, err
		}
		items = append(items, more...)
	}
	return items, nil
}

func (s *state) collectNode(node Node, opts inlineOpts) ([]inlineItem, error) {
	if node.IsText() {
		return s.textItems(node.Text, opts), nil
	}

	if out, handled, err := s.applyElementHandler(node, false); err != nil || handled {
		if err != nil || out == "" {
			return nil, err
		}
		return []inlineItem{textItem(out)}, nil
	}

	kind := kindOf(node.Tag)
	switch kind {
	case kindEmphasis, kindItalic, kindMonospace:
		mark := markItalic
		childOpts := opts
		switch kind {
		case kindEmphasis:
			mark = emphasisMark(node)
		case kindMonospace:
			mark = markMonospace
			childOpts.literal = true
		}
		children, err := s.collectInline(node.Children, childOpts)
		if err != nil {
			return nil, err
		}
		return []inlineItem{spanItem(mark, children)}, nil

	case kindQuote:
		return s.wrapChildren(node, "\"`", "`\"", opts)
	case kindSubscript:
		return s.wrapChildren(node, "~", "~", opts)
	case kindSuperscript:
		return s.wrapChildren(node, "^", "^", opts)
	case kindFootnote:
		return s.wrapChildren(node, "footnote:[", "]", inlineOpts{label: true})

	case kindXref:
		return s.convertXref(node)
	case kindLink:
		return s.convertLink(node)
	case kindEmail:
		return []inlineItem{textItem(strings.TrimSpace(node.TextContent()))}, nil

	case kindMenu:
		return []inlineItem{textItem("menu:" + plainText(node) + "[]")}, nil
	case kindMenuChoice:
		return []inlineItem{textItem(menuChoice(node))}, nil
	case kindButton:
		return []inlineItem{textItem("btn:[" + escapeLabel(plainText(node)) + "]")}, nil
	case kindKey:
		return []inlineItem{textItem("kbd:[" + escapeLabel(plainText(node)) + "]")}, nil
	case kindKeyCombo:
		var keys []string
		for _, child := range node.Children {
			if !child.IsText() {
				keys = append(keys, plainText(child))
			}
		}
		return []inlineItem{textItem("kbd:[" + escapeLabel(strings.Join(keys, "+")) + "]")}, nil

	case kindIndexTerm:
		var terms []string
		for _, tag := range []string{"primary", "secondary", "tertiary"} {
			if term, ok := node.Child(tag); ok {
				terms = append(terms, plainText(term))
			}
		}
		if len(terms) == 0 {
			return nil, nil
		}
		return []inlineItem{textItem("(((" + strings.Join(terms, ",") + ")))")}, nil

	case kindAnchor:
		id, err := node.RequireAttr("xml:id", "id")
		if err != nil {
			return nil, s.missingAttribute(node, err)
		}
		return []inlineItem{textItem("[[" + s.anchorID(id) + "]]")}, nil

	case kindInlineMedia:
		macro, err := s.imageMacro(node, true)
		if err != nil || macro == "" {
			return nil, err
		}
		return []inlineItem{textItem(macro)}, nil

	case kindTrademark:
		items, err := s.collectInline(node.Children, opts)
		if err != nil {
			return nil, err
		}
		return append(items, textItem(trademarkSymbol(node))), nil

	case kindDropped, kindCallout:
		return nil, nil

	case kindPhrase, kindInfo, kindContainer:
		return s.collectInline(node.Children, opts)

	case kindPassthrough:
		keep, err := s.unknownElement(node)
		if err != nil || !keep {
			return nil, err
		}
		return s.collectInline(node.Children, opts)

	default:
		// Block content flattened into a single line (table cells, terms).
		items, err := s.collectInline(node.Children, opts)
		if err != nil {
			return nil, err
		}
		return append(append([]inlineItem{textItem(" ")}, items...), textItem(" ")), nil
	}
}

func (s *state) textItems(raw string, opts inlineOpts) []inlineItem {
	text := collapseSpace(raw)
	if opts.literal {
		text = escapeLiteral(text)
	}
	if opts.label {
		text = escapeLabel(text)
	}
	if text == "" {
		return nil
	}
	return []inlineItem{textItem(text)}
}

func (s *state) wrapChildren(node Node, open, close string, opts inlineOpts) ([]inlineItem, error) {
	children, err := s.collectInline(node.Children, opts)
	if err != nil {
		return nil, err
	}
	return []inlineItem{wrapItem(open, close, children)}, nil
}

// renderInline serializes items, choosing each span's delimiters from the
// neighbors it ends up between.
func (s *state) renderInline(items []inlineItem, before, after neighbor, parent markKind) string {
	var sb strings.Builder
	for i, it := range items {
		prev, next := before, after
		if i > 0 {
			prev = trailingNeighbor(items[i-1])
		}
		if i+1 < len(items) {
			next = leadingNeighbor(items[i+1])
		}

		switch it.kind {
		case itemText:
			sb.WriteString(it.text)
		case itemWrap:
			inner := s.renderInline(it.children, edge(lastRune(it.open), prev), edge(firstRune(it.close), next), markNone)
			sb.WriteString(it.open)
			sb.WriteString(strings.TrimSpace(inner))
			sb.WriteString(it.close)
		case itemSpan:
			inner := s.renderInline(it.children, markupNeighbor, markupNeighbor, it.mark)
			delim := it.mark.delimiter(s.unconstrained(it.mark, parent, inner, prev, next))
			sb.WriteString(delim)
			sb.WriteString(inner)
			sb.WriteString(delim)
		}
	}
	return sb.String()
}

func edge(r rune, fallback neighbor) neighbor {
	if r == 0 {
		return fallback
	}
	return neighbor{r: r}
}

func leadingNeighbor(it inlineItem) neighbor {
	switch it.kind {
	case itemSpan:
		return markupNeighbor
	case itemWrap:
		if it.open != "" {
			return neighbor{r: firstRune(it.open)}
		}
		if len(it.children) > 0 {
			return leadingNeighbor(it.children[0])
		}
		return neighbor{r: firstRune(it.close)}
	default:
		return neighbor{r: firstRune(it.text)}
	}
}

func trailingNeighbor(it inlineItem) neighbor {
	switch it.kind {
	case itemSpan:
		return markupNeighbor
	case itemWrap:
		if it.close != "" {
			return neighbor{r: lastRune(it.close)}
		}
		if len(it.children) > 0 {
			return trailingNeighbor(it.children[len(it.children)-1])
		}
		return neighbor{r: lastRune(it.open)}
	default:
		return neighbor{r: lastRune(it.text)}
	}
}

// plainText is the collapsed, trimmed text content of a node.
func plainText(node Node) string {
	return strings.TrimSpace(collapseSpace(node.TextContent()))
}

func menuChoice(node Node) string {
	var menu string
	var path []string
	for _, child := range node.Children {
		switch child.Tag {
		case "guimenu":
			if menu == "" {
				menu = plainText(child)
				continue
			}
			path = append(path, plainText(child))
		case "guisubmenu", "guimenuitem", "guibutton", "guilabel":
			path = append(path, plainText(child))
		}
	}
	if menu == "" {
		return strings.Join(path, " > ")
	}
	return fmt.Sprintf("menu:%s[%s]", menu, escapeLabel(strings.Join(path, " > ")))
}

func trademarkSymbol(node Node) string {
	switch node.GetStringAttr("", "class") {
	case "registered":
		return "(R)"
	case "copyright":
		return "(C)"
	default:
		return "(TM)"
	}
}
