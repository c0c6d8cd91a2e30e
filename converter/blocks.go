package converter

import (
	"strconv"
	"strings"
)

// convertPara converts a paragraph. Block children split it into several
// blocks; an id becomes an inline anchor on the first line.
func (s *state) convertPara(node Node) error {
	children := node.Children
	if id := node.ID(); id != "" {
		children = append([]Node{Element("anchor", map[string]string{"id": id})}, children...)
	}
	return s.convertBlocks(children)
}

func (s *state) convertFormalPara(node Node) error {
	para, ok := node.Child("para", "simpara")
	if !ok {
		return s.convertBlocks(node.Children)
	}

	title, err := s.titleText(node)
	if err != nil {
		return err
	}
	if title == "" {
		return s.convertPara(para)
	}

	s.startBlock(blockParagraph)
	s.anchorLine(node)
	s.out.line("." + title)
	s.fctx.adjoin = true
	defer func() { s.fctx.adjoin = false }()
	return s.convertPara(para)
}

// convertAdmonition converts note, tip, warning, caution and important.
func (s *state) convertAdmonition(node Node) error {
	s.startBlock(blockOther)
	s.anchorLine(node)
	if err := s.blockTitle(node, ""); err != nil {
		return err
	}
	s.out.line("[" + strings.ToUpper(node.Tag) + "]")
	return s.delimitedBody(node.Children, "====")
}

// convertDelimited converts example and sidebar blocks.
func (s *state) convertDelimited(node Node, style, base string) error {
	s.startBlock(blockOther)
	s.anchorLine(node)
	if err := s.blockTitle(node, ""); err != nil {
		return err
	}
	if style != "" {
		s.out.line("[" + style + "]")
	}
	return s.delimitedBody(node.Children, base)
}

func (s *state) convertBlockquote(node Node) error {
	s.startBlock(blockOther)
	s.anchorLine(node)
	if err := s.blockTitle(node, ""); err != nil {
		return err
	}

	style := "[quote]"
	if attribution, ok := node.Child("attribution"); ok {
		text, err := s.inlineText(attribution.Children)
		if err != nil {
			return err
		}
		if strings.Contains(text, ",") {
			text = strconv.Quote(text)
		}
		if text != "" {
			style = "[quote, " + text + "]"
		}
	}
	s.out.line(style)
	return s.delimitedBody(node.Children, "____")
}

// delimitedBody emits children between fence lines. Blocks inside are
// separated by blank lines regardless of any enclosing list item.
func (s *state) delimitedBody(children []Node, base string) error {
	fence := s.fctx.openFence(base)
	s.out.line(fence)
	s.fctx.push(&frame{kind: frameDelimited})
	s.fctx.adjoin = true

	err := s.convertBlocks(children)

	s.fctx.adjoin = false
	s.fctx.pop()
	s.fctx.closeFence(base)
	s.out.line(fence)
	s.out.last = blockOther
	return err
}

// convertListing converts programlisting, screen and synopsis.
func (s *state) convertListing(node Node) error {
	code := s.listingText(node)
	if strings.TrimSpace(code) == "" {
		return nil
	}

	s.startBlock(blockOther)
	s.anchorLine(node)
	if err := s.blockTitle(node, ""); err != nil {
		return err
	}
	if node.Tag == "programlisting" {
		if lang := s.sourceLanguage(node); lang != "" {
			s.out.line("[source," + lang + "]")
		} else {
			s.out.line("[source]")
		}
	}
	s.fenced("----", code)
	return nil
}

func (s *state) convertLiteralLayout(node Node) error {
	text := verbatim(node.TextContent())
	if strings.TrimSpace(text) == "" {
		return nil
	}

	s.startBlock(blockOther)
	s.anchorLine(node)
	s.fenced("....", text)
	return nil
}

func (s *state) fenced(base, body string) {
	fence := s.fctx.openFence(base)
	s.out.line(fence)
	for _, l := range splitLines(body) {
		s.out.line(l)
	}
	s.out.line(fence)
	s.fctx.closeFence(base)
}

func (s *state) sourceLanguage(node Node) string {
	lang := node.GetStringAttr("", "language")
	if mapped, ok := s.config.LanguageMap[strings.ToLower(lang)]; ok {
		return mapped
	}
	return lang
}

// listingText extracts verbatim text, numbering callout markers in order.
func (s *state) listingText(node Node) string {
	var sb strings.Builder
	n := 0
	var walk func(Node)
	walk = func(current Node) {
		for _, child := range current.Children {
			switch {
			case child.IsText():
				sb.WriteString(child.Text)
			case child.Tag == "co":
				n++
				if id := child.ID(); id != "" {
					s.callouts[id] = n
				}
				if text := sb.String(); text != "" && !strings.HasSuffix(text, " ") {
					sb.WriteByte(' ')
				}
				sb.WriteString("<" + strconv.Itoa(n) + ">")
			default:
				walk(child)
			}
		}
	}
	walk(node)
	return verbatim(sb.String())
}

// verbatim drops blank leading and trailing lines and trailing spaces.
func verbatim(text string) string {
	lines := splitLines(text)
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.Join(lines, "\n")
}

func (s *state) convertCalloutList(node Node) error {
	callouts := node.ChildrenByTag("callout")
	if len(callouts) == 0 {
		return nil
	}

	s.startBlock(blockOther)
	if err := s.blockTitle(node, ""); err != nil {
		return err
	}
	for i, callout := range callouts {
		n := i + 1
		for _, ref := range strings.Fields(callout.GetStringAttr("", "arearefs")) {
			if num, ok := s.callouts[ref]; ok {
				n = num
				break
			}
		}
		text, err := s.inlineText(callout.Children)
		if err != nil {
			return err
		}
		s.out.line("<" + strconv.Itoa(n) + "> " + text)
	}
	return nil
}
