package converter

import "strings"

// convertBibliographyEntries renders consecutive biblioentry and bibliomixed
// elements as one bibliography list of "- [[[ref]]] text" lines.
func (s *state) convertBibliographyEntries(entries []Node) error {
	if len(entries) == 0 {
		return nil
	}

	s.startBlock(blockList)
	for _, entry := range entries {
		text, err := s.bibliographyText(entry)
		if err != nil {
			return err
		}

		line := "-"
		if ref := s.bibliographyRef(entry); ref != "" {
			line += " " + ref
		}
		if text != "" {
			line += " " + text
		}
		if line == "-" {
			line += " {empty}"
		}
		s.out.line(line)
	}
	s.out.last = blockList
	return nil
}

func (s *state) bibliographyRef(entry Node) string {
	var abbrev string
	if node, ok := entry.Child("abbrev"); ok {
		abbrev = plainText(node)
	}
	id := entry.ID()

	switch {
	case id != "" && abbrev != "":
		return "[[[" + s.anchorID(id) + "," + abbrev + "]]]"
	case id != "":
		return "[[[" + s.anchorID(id) + "]]]"
	case abbrev != "":
		return "[[[" + abbrev + "]]]"
	default:
		return ""
	}
}

// bibliographyText renders the entry body. bibliomixed is mixed content;
// biblioentry holds structured fields joined with commas.
func (s *state) bibliographyText(entry Node) (string, error) {
	if entry.Tag == "bibliomixed" {
		var children []Node
		for _, child := range entry.Children {
			if child.Tag != "abbrev" {
				children = append(children, child)
			}
		}
		return s.inlineText(children)
	}

	var parts []string
	for _, child := range entry.Children {
		if child.IsText() || child.Tag == "abbrev" {
			continue
		}

		var part string
		switch child.Tag {
		case "author", "editor":
			part = formatAuthor(child)
		case "authorgroup":
			var names []string
			for _, author := range child.Children {
				if name := formatAuthor(author); name != "" {
					names = append(names, name)
				}
			}
			part = strings.Join(names, ", ")
		case "title", "citetitle":
			text, err := s.inlineText([]Node{Element("citetitle", nil, child.Children...)})
			if err != nil {
				return "", err
			}
			part = text
		default:
			part = plainText(child)
		}

		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", "), nil
}
