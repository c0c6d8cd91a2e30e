package converter

import (
	"regexp"
	"sort"
	"strings"
)

var autolinkScheme = regexp.MustCompile(`^(?i:https?|ftp|irc|mailto):`)

// convertXref renders an internal cross-reference.
func (s *state) convertXref(node Node) ([]inlineItem, error) {
	linkend, err := node.RequireAttr("linkend")
	if err != nil {
		return s.referenceFallback(node, err)
	}
	return s.internalReference(node, linkend)
}

// convertLink renders link, ulink and uri elements. A link carrying a
// linkend is internal.
func (s *state) convertLink(node Node) ([]inlineItem, error) {
	if linkend := node.GetStringAttr("", "linkend"); linkend != "" {
		return s.internalReference(node, linkend)
	}

	url := node.GetStringAttr("", "xlink:href", "url", "href")
	label := plainText(node)
	if url == "" && node.Tag == "uri" {
		url, label = label, ""
	}
	if url == "" {
		_, err := node.RequireAttr("xlink:href")
		return s.referenceFallback(node, err)
	}

	out, handled, err := s.applyLinkRenderHook(node.Tag, LinkRenderInput{
		Source:     node.Tag,
		SourcePath: s.options.SourcePath,
		Target:     url,
		Text:       label,
		Attrs:      node.Attrs,
	})
	if err != nil {
		return nil, err
	}
	if handled {
		if out.TextOnly {
			return s.collectInline(node.Children, inlineOpts{})
		}
		url = out.Target
	}

	target := s.substitute(url)
	if target == url && !autolinkScheme.MatchString(url) {
		target = "link:" + url
	}
	if label == "" || label == url {
		if strings.HasPrefix(target, "link:") {
			return []inlineItem{textItem(target + "[]")}, nil
		}
		return []inlineItem{textItem(target)}, nil
	}

	children, err := s.collectInline(node.Children, inlineOpts{label: true})
	if err != nil {
		return nil, err
	}
	return []inlineItem{wrapItem(target+"[", "]", children)}, nil
}

func (s *state) internalReference(node Node, linkend string) ([]inlineItem, error) {
	label := plainText(node)
	target := s.anchorID(linkend)

	out, handled, err := s.applyLinkRenderHook(node.Tag, LinkRenderInput{
		Source:     node.Tag,
		SourcePath: s.options.SourcePath,
		Target:     linkend,
		Internal:   true,
		Text:       label,
		Attrs:      node.Attrs,
	})
	if err != nil {
		return nil, err
	}
	if handled {
		if out.TextOnly {
			return s.collectInline(node.Children, inlineOpts{})
		}
		target = out.Target
	}

	if label == "" {
		return []inlineItem{textItem("<<" + target + ">>")}, nil
	}
	children, err := s.collectInline(node.Children, inlineOpts{label: true})
	if err != nil {
		return nil, err
	}
	return []inlineItem{wrapItem("<<"+target+",", ">>", children)}, nil
}

// referenceFallback renders the label of a reference that lacks its target.
func (s *state) referenceFallback(node Node, cause error) ([]inlineItem, error) {
	if err := s.missingAttribute(node, cause); err != nil {
		return nil, err
	}
	return s.collectInline(node.Children, inlineOpts{})
}

// substitute returns "{name}" when an attribute's value equals value. When
// several attributes match, the lexically first name wins.
func (s *state) substitute(value string) string {
	var names []string
	for name, v := range s.config.Attributes {
		if v == value {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return value
	}
	sort.Strings(names)
	return "{" + names[0] + "}"
}
