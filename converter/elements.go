package converter

// elementKind is the closed set of DocBook element variants the converter
// knows how to emit. Tags outside the vocabulary map to kindPassthrough.
type elementKind int

const (
	kindPassthrough elementKind = iota
	kindText

	// block level
	kindDocument
	kindSection
	kindInfo
	kindPara
	kindFormalPara
	kindItemizedList
	kindOrderedList
	kindSimpleList
	kindProcedure
	kindSubsteps
	kindVariableList
	kindGlossList
	kindGlossEntry
	kindQandaSet
	kindAdmonition
	kindListing
	kindLiteralLayout
	kindExample
	kindSidebar
	kindBlockquote
	kindFigure
	kindMediaObject
	kindTable
	kindFuncSynopsis
	kindBridgehead
	kindBiblioEntry
	kindCalloutList
	kindContainer
	kindDropped

	// inline
	kindEmphasis
	kindMonospace
	kindItalic
	kindPhrase
	kindQuote
	kindSubscript
	kindSuperscript
	kindXref
	kindLink
	kindEmail
	kindFootnote
	kindMenu
	kindMenuChoice
	kindButton
	kindKey
	kindKeyCombo
	kindIndexTerm
	kindAnchor
	kindInlineMedia
	kindTrademark
	kindCallout
)

var elementKinds = map[string]elementKind{
	TextTag: kindText,

	"book":    kindDocument,
	"article": kindDocument,
	"set":     kindDocument,

	"part":             kindSection,
	"chapter":          kindSection,
	"appendix":         kindSection,
	"preface":          kindSection,
	"section":          kindSection,
	"sect1":            kindSection,
	"sect2":            kindSection,
	"sect3":            kindSection,
	"sect4":            kindSection,
	"sect5":            kindSection,
	"simplesect":       kindSection,
	"refsection":       kindSection,
	"bibliography":     kindSection,
	"bibliodiv":        kindSection,
	"glossary":         kindSection,
	"glossdiv":         kindSection,
	"index":            kindSection,
	"colophon":         kindSection,
	"dedication":       kindSection,
	"acknowledgements": kindSection,
	"abstract":         kindSection,

	"info":         kindInfo,
	"bookinfo":     kindInfo,
	"articleinfo":  kindInfo,
	"chapterinfo":  kindInfo,
	"sectioninfo":  kindInfo,
	"sect1info":    kindInfo,
	"sect2info":    kindInfo,
	"prefaceinfo":  kindInfo,
	"appendixinfo": kindInfo,
	"title":        kindInfo,
	"subtitle":     kindInfo,
	"titleabbrev":  kindInfo,
	"attribution":  kindInfo,

	"para":            kindPara,
	"simpara":         kindPara,
	"formalpara":      kindFormalPara,
	"itemizedlist":    kindItemizedList,
	"orderedlist":     kindOrderedList,
	"simplelist":      kindSimpleList,
	"procedure":       kindProcedure,
	"substeps":        kindSubsteps,
	"variablelist":    kindVariableList,
	"glosslist":       kindGlossList,
	"glossentry":      kindGlossEntry,
	"qandaset":        kindQandaSet,
	"note":            kindAdmonition,
	"tip":             kindAdmonition,
	"warning":         kindAdmonition,
	"caution":         kindAdmonition,
	"important":       kindAdmonition,
	"programlisting":  kindListing,
	"screen":          kindListing,
	"synopsis":        kindListing,
	"literallayout":   kindLiteralLayout,
	"example":         kindExample,
	"informalexample": kindExample,
	"sidebar":         kindSidebar,
	"blockquote":      kindBlockquote,
	"epigraph":        kindBlockquote,
	"figure":          kindFigure,
	"informalfigure":  kindFigure,
	"mediaobject":     kindMediaObject,
	"table":           kindTable,
	"informaltable":   kindTable,
	"funcsynopsis":    kindFuncSynopsis,
	"bridgehead":      kindBridgehead,
	"biblioentry":     kindBiblioEntry,
	"bibliomixed":     kindBiblioEntry,
	"calloutlist":     kindCalloutList,

	"listitem":   kindContainer,
	"step":       kindContainer,
	"answer":     kindContainer,
	"question":   kindContainer,
	"glossdef":   kindContainer,
	"screenshot": kindContainer,
	"partintro":  kindContainer,
	"callout":    kindContainer,

	"remark":           kindDropped,
	"comment":          kindDropped,
	"revhistory":       kindDropped,
	"funcsynopsisinfo": kindDropped,

	"emphasis":          kindEmphasis,
	"code":              kindMonospace,
	"command":           kindMonospace,
	"computeroutput":    kindMonospace,
	"database":          kindMonospace,
	"function":          kindMonospace,
	"literal":           kindMonospace,
	"tag":               kindMonospace,
	"sgmltag":           kindMonospace,
	"userinput":         kindMonospace,
	"abbrev":            kindMonospace,
	"acronym":           kindMonospace,
	"filename":          kindMonospace,
	"envar":             kindMonospace,
	"classname":         kindMonospace,
	"methodname":        kindMonospace,
	"varname":           kindMonospace,
	"parameter":         kindMonospace,
	"option":            kindMonospace,
	"property":          kindMonospace,
	"constant":          kindMonospace,
	"type":              kindMonospace,
	"systemitem":        kindMonospace,
	"interfacename":     kindMonospace,
	"exceptionname":     kindMonospace,
	"token":             kindMonospace,
	"prompt":            kindMonospace,
	"citetitle":         kindItalic,
	"firstterm":         kindItalic,
	"foreignphrase":     kindItalic,
	"replaceable":       kindItalic,
	"wordasword":        kindItalic,
	"phrase":            kindPhrase,
	"guilabel":          kindPhrase,
	"application":       kindPhrase,
	"productname":       kindPhrase,
	"quote":             kindQuote,
	"subscript":         kindSubscript,
	"superscript":       kindSuperscript,
	"xref":              kindXref,
	"link":              kindLink,
	"ulink":             kindLink,
	"uri":               kindLink,
	"email":             kindEmail,
	"footnote":          kindFootnote,
	"guimenu":           kindMenu,
	"menuchoice":        kindMenuChoice,
	"guibutton":         kindButton,
	"keycap":            kindKey,
	"keycombo":          kindKeyCombo,
	"indexterm":         kindIndexTerm,
	"anchor":            kindAnchor,
	"inlinemediaobject": kindInlineMedia,
	"trademark":         kindTrademark,
	"co":                kindCallout,
}

func kindOf(tag string) elementKind {
	if k, ok := elementKinds[tag]; ok {
		return k
	}
	return kindPassthrough
}

// isBlock reports whether node starts a block of its own inside a mixed
// content container. Unknown elements are blocks when they wrap blocks.
func isBlock(node Node) bool {
	switch kindOf(node.Tag) {
	case kindText,
		kindEmphasis, kindMonospace, kindItalic, kindPhrase, kindQuote,
		kindSubscript, kindSuperscript, kindXref, kindLink, kindEmail,
		kindFootnote, kindMenu, kindMenuChoice, kindButton, kindKey,
		kindKeyCombo, kindIndexTerm, kindAnchor, kindInlineMedia,
		kindTrademark, kindCallout, kindDropped:
		return false
	case kindPassthrough:
		for _, child := range node.Children {
			if !child.IsText() && isBlock(child) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
