package converter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Converter converts DocBook node trees to AsciiDoc. It is immutable and
// safe for concurrent use.
type Converter struct {
	config Config
}

// state holds per-conversion mutable state.
type state struct {
	config   Config
	ctx      context.Context
	options  ConvertOptions
	out      *output
	fctx     *formattingContext
	level    int
	callouts map[string]int
	warnings []Warning
}

// New creates a new Converter with the given config.
func New(config Config) (*Converter, error) {
	cfg := config.applyDefaults().clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Converter{
		config: cfg,
	}, nil
}

// Convert converts a DocBook tree rooted at root.
func (c *Converter) Convert(root Node) (Result, error) {
	return c.ConvertWithContext(context.Background(), root, ConvertOptions{})
}

// ConvertJSON converts a tree supplied as JSON-encoded Node.
func (c *Converter) ConvertJSON(input []byte) (Result, error) {
	var root Node
	if err := json.Unmarshal(input, &root); err != nil {
		return Result{}, fmt.Errorf("failed to parse node tree JSON: %w", err)
	}
	return c.Convert(root)
}

// ConvertWithContext converts root with caller context and options. The
// context is handed to hooks and element handlers.
func (c *Converter) ConvertWithContext(ctx context.Context, root Node, opts ConvertOptions) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := root.Validate(); err != nil {
		return Result{}, err
	}

	s := &state{
		config:   c.config,
		ctx:      ctx,
		options:  opts,
		out:      &output{},
		fctx:     newFormattingContext(),
		level:    -1,
		callouts: map[string]int{},
	}

	if err := s.convertRoot(root); err != nil {
		return Result{}, err
	}

	return Result{
		AsciiDoc: s.out.String(),
		Warnings: s.warnings,
	}, nil
}

func (s *state) addWarning(warningType WarningType, element, message string) {
	s.warnings = append(s.warnings, Warning{
		Type:    warningType,
		Element: element,
		Message: message,
	})
}

func (s *state) checkContext() error {
	if s.ctx == nil {
		return nil
	}
	return s.ctx.Err()
}

// unknownElement applies the unknown-element policy and reports whether the
// element's content should be kept.
func (s *state) unknownElement(node Node) (bool, error) {
	switch s.config.UnknownElements {
	case UnknownError:
		return false, fmt.Errorf("%w: %s", ErrUnknownElement, node.Tag)
	case UnknownSkip:
		s.addWarning(WarningUnknownElement, node.Tag, "unknown element dropped")
		return false, nil
	default:
		s.addWarning(WarningUnknownElement, node.Tag, "unknown element rendered as its content")
		return true, nil
	}
}

func (s *state) convertRoot(root Node) error {
	switch kindOf(root.Tag) {
	case kindDocument:
		return s.convertDocument(root)
	case kindSection:
		return s.convertSection(root)
	default:
		return s.convertBlocks([]Node{root})
	}
}

// convertBlocks walks mixed content: runs of inline nodes become paragraphs,
// block elements are dispatched, consecutive bibliography or glossary
// entries are grouped into one list.
func (s *state) convertBlocks(nodes []Node) error {
	var run []Node
	flush := func() error {
		if len(run) == 0 {
			return nil
		}
		lines, err := s.paragraphLines(run)
		run = nil
		if err != nil {
			return err
		}
		s.paragraph(lines)
		return nil
	}

	for i := 0; i < len(nodes); i++ {
		node := nodes[i]
		if !isBlock(node) {
			run = append(run, node)
			continue
		}
		if err := flush(); err != nil {
			return err
		}
		if err := s.checkContext(); err != nil {
			return err
		}

		kind := kindOf(node.Tag)
		if kind == kindBiblioEntry || kind == kindGlossEntry {
			group, next := entryGroup(nodes, i, kind)
			i = next - 1
			var err error
			if kind == kindBiblioEntry {
				err = s.convertBibliographyEntries(group)
			} else {
				err = s.convertGlossEntries(group)
			}
			if err != nil {
				return err
			}
			continue
		}

		if err := s.convertBlock(node); err != nil {
			return err
		}
	}
	return flush()
}

// entryGroup collects consecutive entries of kind starting at i, skipping
// whitespace between them. It returns the group and the index after it.
func entryGroup(nodes []Node, i int, kind elementKind) ([]Node, int) {
	var group []Node
	j := i
	for j < len(nodes) {
		n := nodes[j]
		if kindOf(n.Tag) == kind {
			group = append(group, n)
			j++
			continue
		}
		if isBlankText(n) {
			j++
			continue
		}
		break
	}
	return group, j
}

func (s *state) convertBlock(node Node) error {
	if out, handled, err := s.applyElementHandler(node, true); err != nil || handled {
		if err != nil || out == "" {
			return err
		}
		s.startBlock(blockOther)
		for _, l := range splitLines(out) {
			s.out.line(l)
		}
		return nil
	}

	switch kindOf(node.Tag) {
	case kindDocument, kindSection:
		return s.convertSection(node)
	case kindInfo, kindDropped:
		return nil
	case kindPara:
		return s.convertPara(node)
	case kindFormalPara:
		return s.convertFormalPara(node)
	case kindItemizedList:
		return s.convertList(node, listUnordered)
	case kindOrderedList:
		return s.convertList(node, listOrdered)
	case kindSimpleList:
		return s.convertSimpleList(node)
	case kindProcedure:
		return s.convertProcedure(node)
	case kindSubsteps:
		return s.convertSubsteps(node)
	case kindVariableList:
		return s.convertVariableList(node)
	case kindGlossList:
		return s.convertGlossEntries(node.ChildrenByTag("glossentry"))
	case kindGlossEntry:
		return s.convertGlossEntries([]Node{node})
	case kindBiblioEntry:
		return s.convertBibliographyEntries([]Node{node})
	case kindQandaSet:
		return s.convertQandaSet(node)
	case kindAdmonition:
		return s.convertAdmonition(node)
	case kindListing:
		return s.convertListing(node)
	case kindLiteralLayout:
		return s.convertLiteralLayout(node)
	case kindExample:
		return s.convertDelimited(node, "", "====")
	case kindSidebar:
		return s.convertDelimited(node, "", "****")
	case kindBlockquote:
		return s.convertBlockquote(node)
	case kindFigure, kindMediaObject:
		return s.convertFigure(node)
	case kindTable:
		return s.convertTable(node)
	case kindFuncSynopsis:
		return s.convertFuncSynopsis(node)
	case kindBridgehead:
		return s.convertBridgehead(node)
	case kindCalloutList:
		return s.convertCalloutList(node)
	case kindContainer:
		return s.convertBlocks(node.Children)
	default:
		keep, err := s.unknownElement(node)
		if err != nil || !keep {
			return err
		}
		return s.convertBlocks(node.Children)
	}
}

func isBlankText(n Node) bool {
	return n.IsText() && strings.TrimSpace(n.Text) == ""
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}
