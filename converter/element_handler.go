package converter

import (
	"context"
	"fmt"
	"strings"
)

// ElementRenderInput describes an element offered to a custom handler.
// Block is true when the element sits in block position.
type ElementRenderInput struct {
	SourcePath string
	Node       Node
	Block      bool
}

// ElementRenderOutput carries the AsciiDoc produced by a handler. Block
// output is emitted as its own block; inline output is inserted verbatim.
type ElementRenderOutput struct {
	AsciiDoc string
	Handled  bool
}

// ElementHandler renders elements of one tag, overriding built-in handling
// or giving unknown elements a rendering.
type ElementHandler interface {
	ToAsciiDoc(ctx context.Context, in ElementRenderInput) (ElementRenderOutput, error)
}

// ElementHandlerFunc adapts a function to ElementHandler.
type ElementHandlerFunc func(ctx context.Context, in ElementRenderInput) (ElementRenderOutput, error)

// ToAsciiDoc calls f.
func (f ElementHandlerFunc) ToAsciiDoc(ctx context.Context, in ElementRenderInput) (ElementRenderOutput, error) {
	return f(ctx, in)
}

// applyElementHandler runs the handler registered for node's tag.
func (s *state) applyElementHandler(node Node, block bool) (string, bool, error) {
	handler, ok := s.config.ElementHandlers[node.Tag]
	if !ok {
		return "", false, nil
	}

	if err := s.checkContext(); err != nil {
		return "", false, err
	}

	out, err := handler.ToAsciiDoc(s.ctx, ElementRenderInput{
		SourcePath: s.options.SourcePath,
		Node:       node,
		Block:      block,
	})
	if err != nil {
		return "", false, fmt.Errorf("element handler for %q failed: %w", node.Tag, err)
	}
	if !out.Handled {
		s.addWarning(WarningHandlerFallback, node.Tag, "element handler declined; using built-in rendering")
		return "", false, nil
	}
	return strings.TrimRight(out.AsciiDoc, "\n"), true, nil
}
