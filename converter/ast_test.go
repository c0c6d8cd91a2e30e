package converter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeAccessors(t *testing.T) {
	node := Element("section", attrs("xml:id", "s1", "role", " ", "label", "A"),
		el("title", Text("Intro "), el("emphasis", Text("now"))),
		para(Text("one")),
		el("info", el("author", el("email", Text("x@example.com")))),
	)

	assert.Equal(t, "s1", node.ID())
	assert.Equal(t, "A", node.GetStringAttr("fallback", "role", "label"))
	assert.Equal(t, "fallback", node.GetStringAttr("fallback", "missing"))

	title, ok := node.Child("title")
	require.True(t, ok)
	assert.Equal(t, "Intro now", title.TextContent())

	_, ok = node.Child("table")
	assert.False(t, ok)

	assert.Len(t, node.ChildrenByTag("para", "title"), 2)

	email, ok := node.Find("email")
	require.True(t, ok)
	assert.Equal(t, "x@example.com", email.TextContent())
}

func TestRequireAttr(t *testing.T) {
	node := Element("imagedata", attrs("xlink:href", "a.png"))

	v, err := node.RequireAttr("fileref", "xlink:href")
	require.NoError(t, err)
	assert.Equal(t, "a.png", v)

	_, err = el("xref").RequireAttr("linkend")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAttribute)
	assert.Equal(t, `element "xref" is missing required attribute "linkend"`, err.Error())
}

func TestIDFallsBackToPlainID(t *testing.T) {
	assert.Equal(t, "legacy", Element("para", attrs("id", "legacy")).ID())
	assert.Equal(t, "", para().ID())
}

func TestNodeJSONShape(t *testing.T) {
	data, err := json.Marshal(para(Text("Hi")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"tag":"para","children":[{"tag":"#text","text":"Hi"}]}`, string(data))
}

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		raw       string
		normalize bool
		expected  string
	}{
		{"intro", true, "_intro"},
		{"install-guide", true, "_install_guide"},
		{"Sect.One Two", true, "_sect_one_two"},
		{"  spaced  ", true, "_spaced"},
		{"Keep.Me", false, "Keep.Me"},
		{"", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeID(tt.raw, tt.normalize))
		})
	}
}
