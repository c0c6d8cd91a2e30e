package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func imageObject(path string) Node {
	return el("mediaobject", el("imageobject", Element("imagedata", attrs("fileref", path))))
}

func TestFigureFollowedByParagraph(t *testing.T) {
	root := el("article",
		Element("figure", attrs("xml:id", "arch"),
			el("title", Text("Diagram")),
			Text("\n  "),
			imageObject("img/a.png"),
			Text("\n"),
		),
		para(Text("After.")),
	)

	expected := "[[_arch]]\n" +
		".Diagram\n" +
		"image::img/a.png[]\n" +
		"\n" +
		"After.\n"
	assert.Equal(t, expected, convertTree(t, Config{}, root))
}

func TestFigureWithScreenshot(t *testing.T) {
	root := el("figure",
		el("title", Text("Login screen")),
		el("screenshot", imageObject("shots/login.png")),
	)

	result, err := newTestConverter(t, Config{}).Convert(root)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, ".Login screen\nimage::shots/login.png[]\n", result.AsciiDoc)
}

func TestFigureWithListing(t *testing.T) {
	root := el("article",
		para(Text("Before.")),
		el("figure",
			el("title", Text("Example")),
			el("programlisting", Text("x := 1")),
		),
	)

	expected := "Before.\n" +
		"\n" +
		".Example\n" +
		"[source]\n" +
		"----\n" +
		"x := 1\n" +
		"----\n"
	assert.Equal(t, expected, convertTree(t, Config{}, root))
}

func TestFigureImageThenBody(t *testing.T) {
	root := el("figure",
		el("title", Text("Flow")),
		imageObject("flow.png"),
		para(Text("Read left to right.")),
	)

	assert.Equal(t, ".Flow\nimage::flow.png[]\n\nRead left to right.\n", convertTree(t, Config{}, root))
}

func TestEmptyFigureWarns(t *testing.T) {
	root := el("article",
		el("figure", el("title", Text("Missing"))),
		para(Text("After.")),
	)

	result, err := newTestConverter(t, Config{}).Convert(root)
	require.NoError(t, err)
	assert.Equal(t, "After.\n", result.AsciiDoc)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarningDroppedFeature, result.Warnings[0].Type)
	assert.Equal(t, "figure", result.Warnings[0].Element)
}
