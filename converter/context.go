package converter

import (
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
)

type listKind int

const (
	listUnordered listKind = iota
	listOrdered
	listDescription
)

func (k listKind) marker() string {
	switch k {
	case listOrdered:
		return "."
	case listDescription:
		return ":"
	default:
		return "*"
	}
}

type frameKind int

const (
	frameList frameKind = iota
	frameItem
	frameDelimited
)

// frame is one level of the formatting context stack.
type frame struct {
	kind frameKind

	// list frames
	list  listKind
	depth int

	// item frames
	pending   string // marker not yet written
	started   bool   // primary content emitted
	afterList bool   // previous block in the item was a nested list
}

// formattingContext tracks list nesting and block attachment for one
// conversion.
type formattingContext struct {
	frames *arraystack.Stack
	adjoin bool // next block attaches without a separator
	fences map[string]int
}

func newFormattingContext() *formattingContext {
	return &formattingContext{
		frames: arraystack.New(),
		fences: map[string]int{},
	}
}

func (c *formattingContext) push(f *frame) {
	c.frames.Push(f)
}

func (c *formattingContext) pop() *frame {
	v, ok := c.frames.Pop()
	if !ok {
		return nil
	}
	return v.(*frame)
}

func (c *formattingContext) top() *frame {
	v, ok := c.frames.Peek()
	if !ok {
		return nil
	}
	return v.(*frame)
}

// item returns the innermost list item frame, or nil when the innermost
// frame is not a list item.
func (c *formattingContext) item() *frame {
	if f := c.top(); f != nil && f.kind == frameItem {
		return f
	}
	return nil
}

// listDepth returns the depth of the innermost list of the same family
// (ordered and unordered share one family) above the nearest delimited block.
func (c *formattingContext) listDepth(kind listKind) int {
	description := kind == listDescription
	values := c.frames.Values() // top first
	for _, v := range values {
		f := v.(*frame)
		if f.kind == frameDelimited {
			return 0
		}
		if f.kind == frameList && (f.list == listDescription) == description {
			return f.depth
		}
	}
	return 0
}

// itemMarker returns the line prefix for an item of a list at depth.
func itemMarker(kind listKind, depth int) string {
	if depth < 1 {
		depth = 1
	}
	if kind == listDescription {
		if depth > 3 {
			return ";;"
		}
		return strings.Repeat(":", depth+1)
	}
	return strings.Repeat(kind.marker(), depth)
}

// openFence returns a delimiter line for base that does not collide with an
// enclosing block using the same delimiter.
func (c *formattingContext) openFence(base string) string {
	n := c.fences[base]
	c.fences[base] = n + 1
	return base + strings.Repeat(base[:1], n)
}

func (c *formattingContext) closeFence(base string) {
	if c.fences[base] > 0 {
		c.fences[base]--
	}
}
