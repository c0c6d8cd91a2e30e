package converter

import (
	"strings"
)

// convertFigure converts figure, informalfigure and a standalone
// mediaobject into block image macros under an optional block title. Any
// other figure content follows the images as ordinary blocks.
func (s *state) convertFigure(node Node) error {
	objects, rest := figureParts(node)
	if len(objects) == 0 && !hasContent(rest) {
		s.addWarning(WarningDroppedFeature, node.Tag, "figure has no renderable content")
		return nil
	}

	var macros []string
	for _, object := range objects {
		macro, err := s.imageMacro(object, false)
		if err != nil {
			return err
		}
		if macro != "" {
			macros = append(macros, macro)
		}
	}
	if len(macros) == 0 && !hasContent(rest) {
		return nil
	}

	s.startBlock(blockOther)
	s.anchorLine(node)
	if err := s.blockTitle(node, ""); err != nil {
		return err
	}
	for _, macro := range macros {
		s.out.line(macro)
	}
	if len(macros) == 0 {
		// The title belongs to the first block of the figure body.
		s.fctx.adjoin = true
		defer func() { s.fctx.adjoin = false }()
	}
	return s.convertBlocks(rest)
}

// figureParts splits a figure into the media objects it shows, including
// those wrapped in a screenshot, and the remaining body blocks.
func figureParts(node Node) (objects, rest []Node) {
	if node.Tag == "mediaobject" {
		return []Node{node}, nil
	}
	for _, child := range node.Children {
		switch child.Tag {
		case "title", "titleabbrev", "info", "blockinfo":
			continue
		case "mediaobject":
			objects = append(objects, child)
			continue
		case "screenshot":
			if wrapped := child.ChildrenByTag("mediaobject"); len(wrapped) > 0 {
				objects = append(objects, wrapped...)
				continue
			}
		}
		rest = append(rest, child)
	}
	return objects, rest
}

func hasContent(nodes []Node) bool {
	for _, n := range nodes {
		if !isBlankText(n) {
			return true
		}
	}
	return false
}

// imageMacro renders the first image of a media object as image:path[] or,
// for block images, image::path[]. It returns "" when there is nothing to
// render.
func (s *state) imageMacro(object Node, inline bool) (string, error) {
	data, ok := object.Find("imagedata")
	if !ok {
		if _, video := object.Find("videoobject"); video {
			s.addWarning(WarningDroppedFeature, object.Tag, "video objects are not converted")
		} else if _, audio := object.Find("audioobject"); audio {
			s.addWarning(WarningDroppedFeature, object.Tag, "audio objects are not converted")
		}
		return "", nil
	}

	path, err := data.RequireAttr("fileref", "xlink:href", "entityref")
	if err != nil {
		return "", s.missingAttribute(data, err)
	}
	alt := mediaAlt(object)

	out, handled, err := s.applyMediaRenderHook(data.Tag, MediaRenderInput{
		SourcePath: s.options.SourcePath,
		Path:       path,
		Alt:        alt,
		Inline:     inline,
		Attrs:      data.Attrs,
	})
	if err != nil {
		return "", err
	}
	if handled {
		path = out.Path
	}

	var attrs []string
	if alt != "" {
		attrs = append(attrs, imageAttrValue(alt))
	}
	if width := data.GetStringAttr("", "width", "contentwidth"); width != "" {
		attrs = append(attrs, "width="+width)
	}
	if height := data.GetStringAttr("", "depth", "contentdepth"); height != "" {
		attrs = append(attrs, "height="+height)
	}

	prefix := "image::"
	if inline {
		prefix = "image:"
	}
	return prefix + s.substitute(path) + "[" + strings.Join(attrs, ",") + "]", nil
}

// mediaAlt reads alternate text from an alt child or a textobject phrase.
func mediaAlt(object Node) string {
	if alt, ok := object.Child("alt"); ok {
		return plainText(alt)
	}
	if textobject, ok := object.Child("textobject"); ok {
		if phrase, ok := textobject.Child("phrase"); ok {
			return plainText(phrase)
		}
		return plainText(textobject)
	}
	return ""
}

// imageAttrValue quotes a positional macro attribute when it would otherwise
// be split.
func imageAttrValue(v string) string {
	v = escapeLabel(v)
	if strings.ContainsAny(v, `,="`) {
		return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
	}
	return v
}
