package converter

// convertQandaSet converts a question-and-answer set into [qanda] lists,
// one per division.
func (s *state) convertQandaSet(node Node) error {
	entries := node.ChildrenByTag("qandaentry")
	divs := node.ChildrenByTag("qandadiv")

	if len(entries) > 0 {
		if err := s.qandaGroup(node, entries); err != nil {
			return err
		}
	} else if len(divs) > 0 {
		title, err := s.titleText(node)
		if err != nil {
			return err
		}
		if title != "" {
			s.startBlock(blockHeading)
			s.anchorLine(node)
			s.out.line("[float]")
			s.out.line(s.headingMarker(max(s.level+1, 1)) + " " + title)
		}
	}

	for _, div := range divs {
		if err := s.qandaGroup(div, div.ChildrenByTag("qandaentry")); err != nil {
			return err
		}
	}
	return nil
}

func (s *state) qandaGroup(holder Node, entries []Node) error {
	if len(entries) == 0 {
		return nil
	}

	s.startBlock(blockOther)
	s.anchorLine(holder)
	if err := s.blockTitle(holder, ""); err != nil {
		return err
	}
	s.out.line("[qanda]")

	list := make([]descriptionEntry, 0, len(entries))
	for _, entry := range entries {
		question, _ := entry.Child("question")
		de := descriptionEntry{node: entry, terms: []Node{question}}
		if entry.ID() == "" {
			de.node = question
		}
		for _, answer := range entry.ChildrenByTag("answer") {
			de.body = append(de.body, answer.Children...)
		}
		list = append(list, de)
	}

	return s.descriptionList(list)
}
