package converter

import (
	"fmt"
	"strings"
	"unicode"
)

// IDStyle controls how element identifiers become anchors and reference targets.
type IDStyle string

const (
	// IDNormalize lower-cases ids, collapses non-alphanumeric runs to "_" and
	// prefixes "_" (the AsciiDoc auto-id convention).
	IDNormalize IDStyle = "normalize"
	// IDPreserve keeps ids unmodified.
	IDPreserve IDStyle = "preserve"
)

// AdjacencyStyle controls monospace delimiters next to punctuation.
type AdjacencyStyle string

const (
	AdjacencyConstrained   AdjacencyStyle = "constrained"
	AdjacencyUnconstrained AdjacencyStyle = "unconstrained"
)

// UnknownPolicy controls how unknown elements are handled.
type UnknownPolicy string

const (
	UnknownError       UnknownPolicy = "error"
	UnknownSkip        UnknownPolicy = "skip"
	UnknownPassthrough UnknownPolicy = "passthrough"
)

// Config holds converter configuration.
type Config struct {
	IDStyle          IDStyle           `json:"idStyle,omitempty"`
	Attributes       map[string]string `json:"attributes,omitempty"`
	SentencePerLine  bool              `json:"sentencePerLine,omitempty"`
	LiteralAdjacency AdjacencyStyle    `json:"literalAdjacency,omitempty"`
	HeadingOffset    int               `json:"headingOffset,omitempty"`
	LanguageMap      map[string]string `json:"languageMap,omitempty"`
	UnknownElements  UnknownPolicy     `json:"unknownElements,omitempty"`
	ResolutionMode   ResolutionMode    `json:"resolutionMode,omitempty"`

	LinkHook        LinkRenderHook            `json:"-"`
	MediaHook       MediaRenderHook           `json:"-"`
	ElementHandlers map[string]ElementHandler `json:"-"`
}

func (c Config) applyDefaults() Config {
	if c.IDStyle == "" {
		c.IDStyle = IDNormalize
	}
	if c.LiteralAdjacency == "" {
		c.LiteralAdjacency = AdjacencyUnconstrained
	}
	if c.UnknownElements == "" {
		c.UnknownElements = UnknownPassthrough
	}
	if c.ResolutionMode == "" {
		c.ResolutionMode = ResolutionBestEffort
	}

	return c
}

func (c Config) clone() Config {
	cloned := c
	cloned.Attributes = cloneStringMap(c.Attributes)
	cloned.LanguageMap = cloneStringMap(c.LanguageMap)
	cloned.ElementHandlers = cloneElementHandlerMap(c.ElementHandlers)
	return cloned
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.IDStyle != IDNormalize && c.IDStyle != IDPreserve {
		return fmt.Errorf("invalid idStyle %q", c.IDStyle)
	}
	if c.LiteralAdjacency != AdjacencyConstrained && c.LiteralAdjacency != AdjacencyUnconstrained {
		return fmt.Errorf("invalid literalAdjacency %q", c.LiteralAdjacency)
	}
	if c.HeadingOffset < 0 || c.HeadingOffset > 5 {
		return fmt.Errorf("headingOffset must be between 0 and 5, got %d", c.HeadingOffset)
	}
	if c.UnknownElements != UnknownError && c.UnknownElements != UnknownSkip && c.UnknownElements != UnknownPassthrough {
		return fmt.Errorf("invalid unknownElements %q", c.UnknownElements)
	}
	if c.ResolutionMode != ResolutionBestEffort && c.ResolutionMode != ResolutionStrict {
		return fmt.Errorf("invalid resolutionMode %q", c.ResolutionMode)
	}
	for name := range c.Attributes {
		if !validAttributeName(name) {
			return fmt.Errorf("invalid attribute name %q", name)
		}
	}
	for from, to := range c.LanguageMap {
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return fmt.Errorf("languageMap entries must be non-empty, got %q -> %q", from, to)
		}
	}
	for tag, handler := range c.ElementHandlers {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("elementHandlers keys must be non-empty")
		}
		if handler == nil {
			return fmt.Errorf("element handler for %q is nil", tag)
		}
	}

	return nil
}

func (c Config) normalizeIDs() bool {
	return c.IDStyle != IDPreserve
}

// validAttributeName follows AsciiDoc attribute naming: a word character
// first, then word characters or hyphens.
func validAttributeName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
		case r == '-' && i > 0:
		default:
			return false
		}
	}
	return true
}

func cloneStringMap(src map[string]string) map[string]string {
	if src == nil {
		return nil
	}

	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneElementHandlerMap(src map[string]ElementHandler) map[string]ElementHandler {
	if src == nil {
		return nil
	}

	dst := make(map[string]ElementHandler, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
