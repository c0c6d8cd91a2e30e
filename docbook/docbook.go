// Package docbook reads DocBook XML into the converter's node tree.
//
// Parsing uses xmlquery, so the usual encoding/xml guarantees apply: external
// entities and DTDs are never fetched. Named HTML entities (&nbsp;, &mdash;)
// and entities declared in the document's internal subset are expanded
// before parsing.
package docbook

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/rgonek/docbook-asciidoc-converter/converter"
	"github.com/ulikunitz/xz"
)

const (
	docbookNS = "http://docbook.org/ns/docbook"
	xlinkNS   = "http://www.w3.org/1999/xlink"
	xmlNS     = "http://www.w3.org/XML/1998/namespace"
)

var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// ErrNoRoot is returned when the document or the selection holds no element.
var ErrNoRoot = errors.New("no root element")

// Options controls how a document is read.
type Options struct {
	// Select is an XPath expression choosing the element to convert. Empty
	// selects the document element.
	Select string
}

// ParseFile reads and parses the DocBook file at path.
func ParseFile(path string, opts Options) (converter.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return converter.Node{}, err
	}
	defer f.Close()

	return Parse(f, opts)
}

// Parse reads DocBook XML from r, which may be xz-compressed.
func Parse(r io.Reader, opts Options) (converter.Node, error) {
	var sel *xpath.Expr
	if opts.Select != "" {
		expr, err := xpath.Compile(opts.Select)
		if err != nil {
			return converter.Node{}, fmt.Errorf("invalid select expression %q: %w", opts.Select, err)
		}
		sel = expr
	}

	src, err := Decompress(r)
	if err != nil {
		return converter.Node{}, err
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return converter.Node{}, fmt.Errorf("reading XML: %w", err)
	}

	doc, err := xmlquery.Parse(bytes.NewReader(expandEntities(data)))
	if err != nil {
		return converter.Node{}, fmt.Errorf("parsing XML: %w", err)
	}

	root := documentElement(doc)
	if sel != nil {
		root = xmlquery.QuerySelector(doc, sel)
		if root != nil && root.Type != xmlquery.ElementNode {
			return converter.Node{}, fmt.Errorf("select expression %q does not address an element", opts.Select)
		}
	}
	if root == nil {
		return converter.Node{}, ErrNoRoot
	}

	return FromXMLQuery(root), nil
}

// Decompress returns a reader of the plain document, unwrapping xz data
// detected by its magic bytes.
func Decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(len(xzMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if !bytes.Equal(magic, xzMagic) {
		return br, nil
	}

	zr, err := xz.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	return zr, nil
}

func documentElement(doc *xmlquery.Node) *xmlquery.Node {
	for child := doc.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return child
		}
	}
	return nil
}

// FromXMLQuery converts an element and its subtree. Comments, processing
// instructions and declarations are dropped; CDATA becomes text.
func FromXMLQuery(n *xmlquery.Node) converter.Node {
	var attrs map[string]string
	for _, attr := range n.Attr {
		name, ok := attrName(attr)
		if !ok {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]string, len(n.Attr))
		}
		attrs[name] = attr.Value
	}

	var children []converter.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case xmlquery.ElementNode:
			children = append(children, FromXMLQuery(child))
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if child.Data == "" {
				continue
			}
			// Merge runs split by dropped comments.
			if last := len(children) - 1; last >= 0 && children[last].IsText() {
				children[last].Text += child.Data
				continue
			}
			children = append(children, converter.Text(child.Data))
		}
	}

	return converter.Element(elementName(n), attrs, children...)
}

func elementName(n *xmlquery.Node) string {
	if n.Prefix == "" || n.NamespaceURI == docbookNS {
		return n.Data
	}
	return n.Prefix + ":" + n.Data
}

// attrName maps an attribute to the name the converter looks up: xlink and
// xml attributes keep their conventional prefix, namespace declarations are
// skipped.
func attrName(attr xmlquery.Attr) (string, bool) {
	space, local := attr.Name.Space, attr.Name.Local
	switch {
	case space == "xmlns", space == "" && local == "xmlns":
		return "", false
	case space == "":
		return local, true
	case space == xlinkNS, space == "xlink", space == "xl", attr.NamespaceURI == xlinkNS:
		return "xlink:" + local, true
	case space == xmlNS, space == "xml":
		return "xml:" + local, true
	case strings.Contains(space, "/"):
		return local, true
	default:
		return space + ":" + local, true
	}
}
