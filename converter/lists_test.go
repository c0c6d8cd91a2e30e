package converter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listItem(children ...Node) Node {
	return el("listitem", children...)
}

func TestItemizedListScenario(t *testing.T) {
	root := el("itemizedlist",
		listItem(para(Text("Apples"))),
		listItem(para(Text("Pears"))),
		listItem(para(Text("Plums"))),
	)

	out := convertTree(t, Config{}, root)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "* "), line)
	}
}

func TestNestedLists(t *testing.T) {
	root := el("itemizedlist",
		listItem(
			para(Text("A")),
			el("itemizedlist", listItem(para(Text("B")))),
		),
		listItem(para(Text("C"))),
	)

	assert.Equal(t, "* A\n** B\n* C\n", convertTree(t, Config{}, root))
}

func TestOrderedInsideUnorderedUsesTotalDepth(t *testing.T) {
	root := el("itemizedlist",
		listItem(
			para(Text("A")),
			el("orderedlist", listItem(para(Text("first"))), listItem(para(Text("second")))),
		),
	)

	assert.Equal(t, "* A\n.. first\n.. second\n", convertTree(t, Config{}, root))
}

func nestedList(depth, limit int) Node {
	item := listItem(para(Text(fmt.Sprintf("level %d", depth))))
	if depth < limit {
		item.Children = append(item.Children, nestedList(depth+1, limit))
	}
	return el("itemizedlist", item)
}

func TestListMarkerLengthMatchesDepth(t *testing.T) {
	const limit = 6

	out := convertTree(t, Config{}, nestedList(1, limit))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, limit)
	for i, line := range lines {
		depth := i + 1
		assert.Equal(t, strings.Repeat("*", depth)+fmt.Sprintf(" level %d", depth), line)
	}
}

func TestListDepthResetsInsideDelimitedBlock(t *testing.T) {
	root := el("itemizedlist",
		listItem(
			para(Text("A")),
			el("note", el("itemizedlist", listItem(para(Text("inner"))))),
		),
	)

	expected := "* A\n" +
		"+\n" +
		"[NOTE]\n" +
		"====\n" +
		"* inner\n" +
		"===="
	assert.Equal(t, expected+"\n", convertTree(t, Config{}, root))
}

func TestListItemContinuation(t *testing.T) {
	root := el("itemizedlist",
		listItem(para(Text("First")), para(Text("Second"))),
	)

	assert.Equal(t, "* First\n+\nSecond\n", convertTree(t, Config{}, root))
}

func TestListItemStartingWithBlock(t *testing.T) {
	root := el("itemizedlist",
		listItem(el("programlisting", Text("ls"))),
	)

	assert.Equal(t, "* {empty}\n+\n[source]\n----\nls\n----\n", convertTree(t, Config{}, root))
}

func TestEmptyListItem(t *testing.T) {
	root := el("orderedlist", listItem(), listItem(para(Text("x"))))

	assert.Equal(t, ". {empty}\n. x\n", convertTree(t, Config{}, root))
}

func TestBlockAfterNestedListAttachesToParent(t *testing.T) {
	root := el("itemizedlist",
		listItem(
			para(Text("A")),
			el("itemizedlist", listItem(para(Text("B")))),
			para(Text("C")),
		),
	)

	assert.Equal(t, "* A\n** B\n\n+\nC\n", convertTree(t, Config{}, root))
}

func TestAdjacentListsSeparated(t *testing.T) {
	root := el("article",
		el("itemizedlist", listItem(para(Text("A")))),
		el("itemizedlist", listItem(para(Text("B")))),
	)

	assert.Equal(t, "* A\n\n//\n\n* B\n", convertTree(t, Config{}, root))
}

func TestListTitleAndAnchor(t *testing.T) {
	root := Element("orderedlist", attrs("xml:id", "steps"),
		el("title", Text("Steps")),
		listItem(para(Text("Go"))),
	)

	assert.Equal(t, "[[_steps]]\n.Steps\n. Go\n", convertTree(t, Config{}, root))
}

func TestProcedureWithSubsteps(t *testing.T) {
	root := el("procedure",
		el("title", Text("Install")),
		el("step", para(Text("Download."))),
		el("step",
			para(Text("Run.")),
			el("substeps", el("step", para(Text("Accept.")))),
		),
	)

	expected := ".Procedure: Install\n" +
		". Download.\n" +
		". Run.\n" +
		"+\n" +
		".. Accept.\n"
	assert.Equal(t, expected, convertTree(t, Config{}, root))
}

func TestSimpleList(t *testing.T) {
	members := []Node{el("member", Text("a")), el("member", Text("b"))}

	assert.Equal(t, "* a\n* b\n", convertTree(t, Config{}, el("simplelist", members...)))
	assert.Equal(t, "a, b\n", convertTree(t, Config{}, Element("simplelist", attrs("type", "inline"), members...)))
}

func TestVariableList(t *testing.T) {
	root := el("variablelist",
		el("varlistentry",
			el("term", el("literal", Text("--verbose"))),
			listItem(para(Text("Print more."))),
		),
		el("varlistentry",
			el("term", Text("Quiet")),
			el("term", Text("Silent")),
			listItem(para(Text("Print less.")), para(Text("Really."))),
		),
	)

	expected := "`--verbose`::\n" +
		"Print more.\n" +
		"\n" +
		"Quiet::\n" +
		"Silent::\n" +
		"Print less.\n" +
		"+\n" +
		"Really.\n"
	assert.Equal(t, expected, convertTree(t, Config{}, root))
}

func TestNestedVariableListDeepensMarker(t *testing.T) {
	root := el("variablelist",
		el("varlistentry",
			el("term", Text("Outer")),
			listItem(
				para(Text("Text.")),
				el("variablelist", el("varlistentry", el("term", Text("Inner")), listItem(para(Text("Deep."))))),
			),
		),
	)

	assert.Equal(t, "Outer::\nText.\nInner:::\nDeep.\n", convertTree(t, Config{}, root))
}

func TestDescriptionMarkers(t *testing.T) {
	assert.Equal(t, "::", itemMarker(listDescription, 1))
	assert.Equal(t, ":::", itemMarker(listDescription, 2))
	assert.Equal(t, "::::", itemMarker(listDescription, 3))
	assert.Equal(t, ";;", itemMarker(listDescription, 4))
	assert.Equal(t, "***", itemMarker(listUnordered, 3))
	assert.Equal(t, "..", itemMarker(listOrdered, 2))
}

func TestQandaSet(t *testing.T) {
	root := el("qandaset",
		el("title", Text("FAQ")),
		el("qandaentry",
			Element("question", attrs("xml:id", "q1"), para(Text("Why?"))),
			el("answer", para(Text("Because."))),
		),
		el("qandaentry",
			el("question", para(Text("How?"))),
			el("answer", para(Text("Carefully."))),
		),
	)

	expected := ".FAQ\n" +
		"[qanda]\n" +
		"[[_q1]]\n" +
		"Why?::\n" +
		"Because.\n" +
		"\n" +
		"How?::\n" +
		"Carefully.\n"
	assert.Equal(t, expected, convertTree(t, Config{}, root))
}

func TestQandaDivisions(t *testing.T) {
	root := el("qandaset",
		el("qandadiv",
			el("title", Text("General")),
			el("qandaentry", el("question", para(Text("What?"))), el("answer", para(Text("This.")))),
		),
		el("qandadiv",
			el("title", Text("Billing")),
			el("qandaentry", el("question", para(Text("Cost?"))), el("answer", para(Text("Free.")))),
		),
	)

	expected := ".General\n" +
		"[qanda]\n" +
		"What?::\n" +
		"This.\n" +
		"\n" +
		".Billing\n" +
		"[qanda]\n" +
		"Cost?::\n" +
		"Free.\n"
	assert.Equal(t, expected, convertTree(t, Config{}, root))
}

func TestGlossary(t *testing.T) {
	root := el("glossary",
		el("glossentry",
			el("glossterm", Text("API")),
			el("glossdef", para(Text("Interface."))),
		),
		el("glossentry",
			el("glossterm", Text("SDK")),
			Element("glosssee", attrs("otherterm", "api")),
		),
	)

	expected := "= Glossary\n" +
		"\n" +
		"API::\n" +
		"Interface.\n" +
		"\n" +
		"SDK::\n" +
		"See <<_api>>.\n"
	assert.Equal(t, expected, convertTree(t, Config{}, root))
}

func TestBibliography(t *testing.T) {
	root := el("article",
		el("bibliography",
			Element("biblioentry", attrs("xml:id", "knuth"),
				el("abbrev", Text("Knuth84")),
				el("author", el("firstname", Text("Donald")), el("surname", Text("Knuth"))),
				el("title", Text("The TeXbook")),
				el("pubdate", Text("1984")),
			),
			el("bibliomixed",
				el("abbrev", Text("RFC2119")),
				Text("Key words for use in RFCs."),
			),
		),
	)

	expected := "[bibliography]\n" +
		"== Bibliography\n" +
		"\n" +
		"- [[[_knuth,Knuth84]]] Donald Knuth, _The TeXbook_, 1984\n" +
		"- [[[RFC2119]]] Key words for use in RFCs.\n"
	assert.Equal(t, expected, convertTree(t, Config{}, root))
}
