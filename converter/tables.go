package converter

import (
	"strconv"
	"strings"
)

// tableRows is the cell text of one table body, grouped by section.
type tableRows struct {
	header [][]string
	body   [][]string
	footer [][]string
}

// convertTable converts CALS (tgroup/row/entry) and HTML (tr/td/th) tables.
func (s *state) convertTable(node Node) error {
	groups := node.ChildrenByTag("tgroup")
	if len(groups) == 0 {
		groups = []Node{node}
	}

	for i, group := range groups {
		rows, err := s.tableRows(group)
		if err != nil {
			return err
		}
		if len(rows.header)+len(rows.body)+len(rows.footer) == 0 {
			continue
		}

		declared := declaredColumns(node, group)
		cols := tableColumns(rows, declared)
		if cols == 0 {
			continue
		}

		s.startBlock(blockOther)
		if i == 0 {
			s.anchorLine(node)
			if err := s.tableTitle(node); err != nil {
				return err
			}
		}
		s.emitTable(node, rows, cols, declared == 0)
	}
	return nil
}

func (s *state) tableTitle(node Node) error {
	if caption, ok := node.Child("caption"); ok {
		text, err := s.inlineText(caption.Children)
		if err != nil || text == "" {
			return err
		}
		s.out.line("." + text)
		return nil
	}
	return s.blockTitle(node, "")
}

// declaredColumns reads the cols attribute, falling back to the number of
// colspec or col children. It returns 0 when nothing is declared.
func declaredColumns(table, group Node) int {
	for _, holder := range []Node{group, table} {
		if n, err := strconv.Atoi(strings.TrimSpace(holder.GetStringAttr("", "cols"))); err == nil && n > 0 {
			return n
		}
	}
	if n := len(group.ChildrenByTag("colspec")); n > 0 {
		return n
	}
	var n int
	for _, colgroup := range group.ChildrenByTag("colgroup") {
		n += len(colgroup.ChildrenByTag("col"))
	}
	return n + len(group.ChildrenByTag("col"))
}

func (s *state) tableRows(group Node) (tableRows, error) {
	var rows tableRows
	add := func(dst *[][]string, rowNodes []Node) error {
		for _, row := range rowNodes {
			cells, err := s.tableCells(row)
			if err != nil {
				return err
			}
			if len(cells) == 0 && dst == &rows.header {
				continue
			}
			*dst = append(*dst, cells)
		}
		return nil
	}

	for _, child := range group.Children {
		var err error
		switch child.Tag {
		case "thead":
			err = add(&rows.header, tableRowNodes(child))
		case "tbody":
			err = add(&rows.body, tableRowNodes(child))
		case "tfoot":
			err = add(&rows.footer, tableRowNodes(child))
		case "row", "tr":
			if len(rows.header) == 0 && len(rows.body) == 0 && isHeaderRow(child) {
				err = add(&rows.header, []Node{child})
			} else {
				err = add(&rows.body, []Node{child})
			}
		}
		if err != nil {
			return tableRows{}, err
		}
	}

	// AsciiDoc tables carry a single header row.
	if len(rows.header) > 1 {
		rows.body = append(append([][]string{}, rows.header[1:]...), rows.body...)
		rows.header = rows.header[:1]
	}
	return rows, nil
}

func tableRowNodes(section Node) []Node {
	return section.ChildrenByTag("row", "tr")
}

// isHeaderRow reports whether an HTML row is made only of th cells.
func isHeaderRow(row Node) bool {
	cells := row.ChildrenByTag("entry", "td", "th")
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if cell.Tag != "th" {
			return false
		}
	}
	return true
}

func (s *state) tableCells(row Node) ([]string, error) {
	var cells []string
	for _, cell := range row.ChildrenByTag("entry", "td", "th", "entrytbl") {
		if cell.Tag == "entrytbl" {
			s.addWarning(WarningDroppedFeature, cell.Tag, "nested table flattened into a single cell")
		}
		if isSpanningCell(cell) {
			s.addWarning(WarningDroppedFeature, cell.Tag, "cell span not preserved")
		}

		text, err := s.inlineText(cell.Children)
		if err != nil {
			return nil, err
		}
		cells = append(cells, strings.ReplaceAll(text, "|", `\|`))
	}
	return cells, nil
}

func isSpanningCell(cell Node) bool {
	if _, ok := cell.Attr("namest"); ok {
		return true
	}
	if _, ok := cell.Attr("spanname"); ok {
		return true
	}
	for _, name := range []string{"morerows", "colspan", "rowspan"} {
		if v, ok := cell.Attr(name); ok && v != "0" && v != "1" {
			return true
		}
	}
	return false
}

// tableColumns resolves the column count: the header cell count when there
// is a header, else the declared count, else the widest row.
func tableColumns(rows tableRows, declared int) int {
	if len(rows.header) > 0 && len(rows.header[0]) > 0 {
		return len(rows.header[0])
	}
	if declared > 0 {
		return declared
	}
	var cols int
	for _, row := range append(append([][]string{}, rows.body...), rows.footer...) {
		cols = max(cols, len(row))
	}
	return cols
}

// emitTable writes the table with every row padded or truncated to cols. An
// undeclared table without header or footer gets no column spec line.
func (s *state) emitTable(node Node, rows tableRows, cols int, undeclared bool) {
	bare := len(rows.header) == 0 && undeclared

	var options []string
	if len(rows.header) > 0 {
		options = append(options, "header")
	}
	if len(rows.footer) > 0 {
		options = append(options, "footer")
	}
	if !bare || len(options) > 0 {
		spec := `[cols="` + strings.TrimSuffix(strings.Repeat("1,", cols), ",") + `"`
		if len(options) > 0 {
			spec += `, options="` + strings.Join(options, ",") + `"`
		}
		s.out.line(spec + "]")
	}

	fence := s.fctx.openFence("|===")
	defer s.fctx.closeFence("|===")
	s.out.line(fence)

	if len(rows.header) > 0 {
		for _, cell := range s.fitRow(node, rows.header[0], cols) {
			s.out.line(strings.TrimRight("| "+cell, " "))
		}
		if len(rows.body)+len(rows.footer) > 0 {
			s.out.line("")
		}
	}

	for _, row := range append(append([][]string{}, rows.body...), rows.footer...) {
		for _, cell := range s.fitRow(node, row, cols) {
			s.out.line("|" + cell)
		}
	}

	s.out.line(fence)
}

func (s *state) fitRow(node Node, row []string, cols int) []string {
	if len(row) > cols {
		s.addWarning(WarningDroppedFeature, node.Tag, "row has more cells than the table has columns; extra cells dropped")
		return row[:cols]
	}
	for len(row) < cols {
		row = append(row, "")
	}
	return row
}
