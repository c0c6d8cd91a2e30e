package converter

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// bookAttributes is the attribute block emitted under a book header.
var bookAttributes = []string{
	":doctype: book",
	":sectnums:",
	":toc: left",
	":icons: font",
	":experimental:",
}

// sectionStyles are the AsciiDoc section styles of special sections.
var sectionStyles = map[string]string{
	"appendix":     "appendix",
	"preface":      "preface",
	"bibliography": "bibliography",
	"glossary":     "glossary",
	"index":        "index",
	"colophon":     "colophon",
	"dedication":   "dedication",
	"abstract":     "abstract",
}

// defaultTitled lists sections with a conventional title when none is given.
var defaultTitled = map[string]bool{
	"bibliography":     true,
	"glossary":         true,
	"index":            true,
	"preface":          true,
	"colophon":         true,
	"dedication":       true,
	"acknowledgements": true,
	"abstract":         true,
}

func defaultTitle(tag string) string {
	if !defaultTitled[tag] {
		return ""
	}
	return cases.Title(language.English).String(tag)
}

func (s *state) convertDocument(node Node) error {
	info, _ := node.Child("info", "bookinfo", "articleinfo")

	title, err := s.titleText(node)
	if err != nil {
		return err
	}
	subtitle, err := s.subtitleText(node, info)
	if err != nil {
		return err
	}
	if title != "" && subtitle != "" {
		title += ": " + subtitle
	}

	if title != "" {
		s.out.line("= " + title)
		if author := authorLine(node, info); author != "" {
			s.out.line(author)
		}
	}
	if node.Tag == "book" {
		for _, attr := range bookAttributes {
			s.out.line(attr)
		}
	}
	s.out.last = blockHeading

	prev := s.level
	s.level = 0
	defer func() { s.level = prev }()
	return s.convertBlocks(node.Children)
}

func (s *state) convertSection(node Node) error {
	level := s.level + 1

	title, err := s.titleText(node)
	if err != nil {
		return err
	}
	if title == "" {
		title = defaultTitle(node.Tag)
	}

	if title != "" {
		s.startBlock(blockHeading)
		if style := sectionStyles[node.Tag]; style != "" && level > 0 {
			s.out.line("[" + style + "]")
		}
		s.anchorLine(node)
		s.out.line(s.headingMarker(level) + " " + title)
	}

	prev := s.level
	s.level = level
	defer func() { s.level = prev }()
	return s.convertBlocks(node.Children)
}

func (s *state) convertBridgehead(node Node) error {
	level := s.level + 1
	if renderAs := node.GetStringAttr("", "renderas"); strings.HasPrefix(renderAs, "sect") {
		if n, err := strconv.Atoi(strings.TrimPrefix(renderAs, "sect")); err == nil && n >= 1 && n <= 5 {
			level = n
		}
	}
	if level < 1 {
		level = 1
	}

	text, err := s.inlineText(node.Children)
	if err != nil {
		return err
	}

	s.startBlock(blockHeading)
	s.anchorLine(node)
	s.out.line("[float]")
	s.out.line(s.headingMarker(level) + " " + text)
	return nil
}

// headingMarker returns the "=" run of a section at level (0 is the
// document title).
func (s *state) headingMarker(level int) string {
	if level > 0 {
		level += s.config.HeadingOffset
	}
	if level > 5 {
		level = 5
	}
	return strings.Repeat("=", level+1)
}

// titleNode finds the title of node directly or inside its info element.
func titleNode(node Node) (Node, bool) {
	if title, ok := node.Child("title"); ok {
		return title, true
	}
	for _, child := range node.Children {
		if kindOf(child.Tag) == kindInfo && child.Tag != "title" {
			if title, ok := child.Child("title"); ok {
				return title, true
			}
		}
	}
	return Node{}, false
}

func (s *state) titleText(node Node) (string, error) {
	title, ok := titleNode(node)
	if !ok {
		return "", nil
	}
	return s.inlineText(title.Children)
}

func (s *state) subtitleText(node, info Node) (string, error) {
	subtitle, ok := node.Child("subtitle")
	if !ok {
		subtitle, ok = info.Child("subtitle")
	}
	if !ok {
		return "", nil
	}
	return s.inlineText(subtitle.Children)
}

// blockTitle emits ".Title" for formal blocks.
func (s *state) blockTitle(node Node, prefix string) error {
	title, err := s.titleText(node)
	if err != nil || title == "" {
		return err
	}
	s.out.line("." + prefix + title)
	return nil
}

// authorLine formats every author of the document as
// "First Last <email>", joined with "; ".
func authorLine(root, info Node) string {
	var authors []Node
	for _, holder := range []Node{root, info} {
		authors = append(authors, holder.ChildrenByTag("author")...)
		for _, group := range holder.ChildrenByTag("authorgroup") {
			authors = append(authors, group.ChildrenByTag("author")...)
		}
	}

	var out []string
	for _, author := range authors {
		if formatted := formatAuthor(author); formatted != "" {
			out = append(out, formatted)
		}
	}
	return strings.Join(out, "; ")
}

func formatAuthor(author Node) string {
	name := author
	if personname, ok := author.Child("personname"); ok {
		name = personname
	}

	var parts []string
	for _, tag := range []string{"honorific", "firstname", "givenname", "othername", "surname", "lineage"} {
		for _, part := range name.ChildrenByTag(tag) {
			if text := plainText(part); text != "" {
				parts = append(parts, text)
			}
		}
	}
	if len(parts) == 0 && name.Tag == "personname" {
		parts = append(parts, plainText(name))
	}
	if len(parts) == 0 {
		return ""
	}

	line := strings.Join(parts, " ")
	if email, ok := author.Find("email"); ok {
		if addr := plainText(email); addr != "" {
			line += " <" + addr + ">"
		}
	}
	return line
}
