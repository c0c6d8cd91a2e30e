package converter

import (
	"strings"

	sanitized "github.com/shurcooL/sanitized_anchor_name"
)

// NormalizeID derives the anchor form of a raw identifier. When normalize is
// false the identifier is returned unchanged.
func NormalizeID(raw string, normalize bool) string {
	raw = strings.TrimSpace(raw)
	if !normalize || raw == "" {
		return raw
	}
	return "_" + strings.ReplaceAll(sanitized.Create(raw), "-", "_")
}

func (s *state) anchorID(raw string) string {
	return NormalizeID(raw, s.config.normalizeIDs())
}

// anchorLine emits a block anchor for nodes carrying an identifier.
func (s *state) anchorLine(node Node) {
	if id := node.ID(); id != "" {
		s.out.line("[[" + s.anchorID(id) + "]]")
	}
}
