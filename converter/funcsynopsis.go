package converter

import (
	"strings"
	"unicode/utf8"
)

// convertFuncSynopsis renders C function prototypes as a source block.
func (s *state) convertFuncSynopsis(node Node) error {
	var chunks []string
	for _, child := range node.Children {
		switch child.Tag {
		case "funcsynopsisinfo":
			if text := verbatim(child.TextContent()); text != "" {
				chunks = append(chunks, text)
			}
		case "funcprototype":
			chunks = append(chunks, funcPrototype(child))
		}
	}
	if len(chunks) == 0 {
		return nil
	}

	s.startBlock(blockOther)
	s.anchorLine(node)
	lang := "c"
	if mapped, ok := s.config.LanguageMap[lang]; ok {
		lang = mapped
	}
	s.out.line("[source," + lang + "]")
	s.fenced("----", strings.Join(chunks, "\n\n"))
	return nil
}

// funcPrototype formats "ret name (param,\n          param);" with parameters
// aligned under the opening parenthesis.
func funcPrototype(proto Node) string {
	var prefix string
	if funcdef, ok := proto.Child("funcdef"); ok {
		prefix = synopsisText(funcdef)
	}
	prefix += " ("

	var params []string
	for _, child := range proto.Children {
		switch child.Tag {
		case "paramdef":
			params = append(params, synopsisText(child))
		case "void":
			params = append(params, "void")
		case "varargs":
			params = append(params, "...")
		}
	}

	return prefix + strings.Join(params, ",\n"+strings.Repeat(" ", utf8.RuneCountInString(prefix))) + ");"
}

// synopsisText flattens a funcdef or paramdef, parenthesizing funcparams.
func synopsisText(node Node) string {
	var sb strings.Builder
	var walk func(Node)
	walk = func(current Node) {
		for _, child := range current.Children {
			switch {
			case child.IsText():
				sb.WriteString(child.Text)
			case child.Tag == "funcparams":
				sb.WriteString("(")
				walk(child)
				sb.WriteString(")")
			default:
				walk(child)
			}
		}
	}
	walk(node)
	return strings.TrimSpace(collapseSpace(sb.String()))
}
