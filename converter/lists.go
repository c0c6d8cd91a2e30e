package converter

import "strings"

// convertList converts itemizedlist and orderedlist.
func (s *state) convertList(node Node, kind listKind) error {
	items := node.ChildrenByTag("listitem")
	if len(items) == 0 {
		return nil
	}

	s.startBlock(blockList)
	s.anchorLine(node)
	if err := s.blockTitle(node, ""); err != nil {
		return err
	}
	return s.listItems(kind, items)
}

// listItems emits items at one level deeper than the enclosing list of the
// same family.
func (s *state) listItems(kind listKind, items []Node) error {
	depth := s.fctx.listDepth(kind) + 1
	s.fctx.push(&frame{kind: frameList, list: kind, depth: depth})
	defer s.fctx.pop()

	marker := itemMarker(kind, depth)
	for _, item := range items {
		if err := s.checkContext(); err != nil {
			return err
		}
		if err := s.listItem(marker, item); err != nil {
			return err
		}
	}
	s.out.last = blockList
	return nil
}

func (s *state) listItem(marker string, item Node) error {
	f := &frame{kind: frameItem, pending: marker}
	s.fctx.push(f)
	err := s.convertBlocks(item.Children)
	s.fctx.pop()
	if err != nil {
		return err
	}

	if f.pending != "" {
		s.out.line(f.pending + " {empty}")
	}
	return nil
}

func (s *state) convertSimpleList(node Node) error {
	members := node.ChildrenByTag("member")
	if len(members) == 0 {
		return nil
	}

	if node.GetStringAttr("", "type") == "inline" {
		parts := make([]string, 0, len(members))
		for _, member := range members {
			text, err := s.inlineText(member.Children)
			if err != nil {
				return err
			}
			parts = append(parts, text)
		}
		s.paragraph([]string{protectLine(strings.Join(parts, ", "))})
		return nil
	}

	s.startBlock(blockList)
	return s.listItems(listUnordered, members)
}

// convertProcedure converts a procedure into an ordered list of its steps.
func (s *state) convertProcedure(node Node) error {
	steps := node.ChildrenByTag("step")
	if len(steps) == 0 {
		return nil
	}

	s.startBlock(blockList)
	s.anchorLine(node)
	if err := s.blockTitle(node, "Procedure: "); err != nil {
		return err
	}
	return s.listItems(listOrdered, steps)
}

// convertSubsteps attaches nested steps to the enclosing step with a list
// continuation.
func (s *state) convertSubsteps(node Node) error {
	steps := node.ChildrenByTag("step")
	if len(steps) == 0 {
		return nil
	}

	s.startBlock(blockAttachedList)
	return s.listItems(listOrdered, steps)
}

// descriptionEntry is one entry of a description list: one or more terms
// and the blocks describing them.
type descriptionEntry struct {
	node  Node
	terms []Node
	body  []Node
}

func (s *state) convertVariableList(node Node) error {
	var entries []descriptionEntry
	for _, entry := range node.ChildrenByTag("varlistentry") {
		de := descriptionEntry{node: entry, terms: entry.ChildrenByTag("term")}
		for _, item := range entry.ChildrenByTag("listitem") {
			de.body = append(de.body, item.Children...)
		}
		entries = append(entries, de)
	}
	if len(entries) == 0 {
		return nil
	}

	s.startBlock(blockList)
	s.anchorLine(node)
	if err := s.blockTitle(node, ""); err != nil {
		return err
	}
	return s.descriptionList(entries)
}

func (s *state) convertGlossEntries(nodes []Node) error {
	if len(nodes) == 0 {
		return nil
	}

	entries := make([]descriptionEntry, 0, len(nodes))
	for _, entry := range nodes {
		de := descriptionEntry{node: entry, terms: entry.ChildrenByTag("glossterm")}
		for _, def := range entry.ChildrenByTag("glossdef") {
			de.body = append(de.body, def.Children...)
		}
		for _, see := range entry.ChildrenByTag("glosssee") {
			de.body = append(de.body, glossSee(see))
		}
		entries = append(entries, de)
	}

	s.startBlock(blockList)
	return s.descriptionList(entries)
}

// glossSee turns a glosssee into a "See ..." paragraph.
func glossSee(see Node) Node {
	target := see.Children
	if other := see.GetStringAttr("", "otherterm"); other != "" && strings.TrimSpace(see.TextContent()) == "" {
		target = []Node{Element("xref", map[string]string{"linkend": other})}
	}
	children := append([]Node{Text("See ")}, target...)
	return Element("para", nil, append(children, Text("."))...)
}

// descriptionList emits entries as "term::" lines followed by their
// description. The caller starts the block.
func (s *state) descriptionList(entries []descriptionEntry) error {
	depth := s.fctx.listDepth(listDescription) + 1
	s.fctx.push(&frame{kind: frameList, list: listDescription, depth: depth})
	defer s.fctx.pop()

	marker := itemMarker(listDescription, depth)
	for i, entry := range entries {
		if err := s.checkContext(); err != nil {
			return err
		}
		if i > 0 {
			s.out.blank()
		}
		s.anchorLine(entry.node)

		terms := make([]string, 0, len(entry.terms))
		for _, term := range entry.terms {
			text, err := s.inlineText(term.Children)
			if err != nil {
				return err
			}
			if text != "" {
				terms = append(terms, text)
			}
		}
		if len(terms) == 0 {
			terms = append(terms, "{empty}")
		}
		for _, term := range terms {
			s.out.line(term + marker)
		}

		s.fctx.push(&frame{kind: frameItem})
		err := s.convertBlocks(entry.body)
		s.fctx.pop()
		if err != nil {
			return err
		}
	}
	s.out.last = blockList
	return nil
}
