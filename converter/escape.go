package converter

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// markupChars are the characters that can open inline markup.
const markupChars = "_*#`"

func isMarkupChar(r rune) bool {
	return strings.ContainsRune(markupChars, r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// escapeLiteral protects text shown inside monospace spans. A markup
// character is escaped where it could open a span (at the start of the run
// or after a non-word character, followed by a non-space), "#{" is always
// escaped, and a backslash is doubled when it precedes a markup character or
// another backslash so unescapeLiteral can restore the input exactly.
func escapeLiteral(s string) string {
	if !strings.ContainsAny(s, markupChars+`\`) {
		return s
	}

	runes := []rune(s)
	var sb strings.Builder
	for i, r := range runes {
		var prev, next rune
		if i > 0 {
			prev = runes[i-1]
		}
		if i+1 < len(runes) {
			next = runes[i+1]
		}

		switch {
		case r == '\\':
			if next == '\\' || isMarkupChar(next) {
				sb.WriteString(`\\`)
				continue
			}
		case r == '#' && next == '{':
			sb.WriteString(`\#`)
			continue
		case isMarkupChar(r):
			opens := (i == 0 || !isWordRune(prev)) && next != 0 && !unicode.IsSpace(next)
			if opens {
				sb.WriteRune('\\')
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// unescapeLiteral reverses escapeLiteral.
func unescapeLiteral(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	runes := []rune(s)
	var sb strings.Builder
	for i := 0; i < len(runes); i++ {
		if runes[i] == '\\' && i+1 < len(runes) && (runes[i+1] == '\\' || isMarkupChar(runes[i+1])) {
			sb.WriteRune(runes[i+1])
			i++
			continue
		}
		sb.WriteRune(runes[i])
	}
	return sb.String()
}

// collapseSpace replaces every whitespace run with a single space.
func collapseSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				sb.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		sb.WriteRune(r)
	}
	return sb.String()
}

var (
	sentenceBoundary = regexp.MustCompile(`([.?!]) +(\p{Lu})`)
	leadingDots      = regexp.MustCompile(`^\.+`)
	leadingMarker    = regexp.MustCompile(`^(\*+|-|=+|<\d+>) `)
)

// splitSentences puts each sentence of collapsed text on its own line.
func splitSentences(s string) string {
	return sentenceBoundary.ReplaceAllString(s, "$1\n$2")
}

// protectLine keeps a paragraph line from being read as a block title, list
// item or heading.
func protectLine(line string) string {
	if dots := leadingDots.FindString(line); dots != "" {
		// A longer dot run only matters as a list marker or a delimiter line.
		rest := line[len(dots):]
		if len(dots) == 1 || rest == "" || rest[0] == ' ' {
			return "$$" + dots + "$$" + rest
		}
		return line
	}
	if leadingMarker.MatchString(line) {
		return "{empty}" + line
	}
	return line
}

// escapeLabel protects the closing bracket of macro labels.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "]", `\]`)
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

func lastRune(s string) rune {
	r, _ := utf8.DecodeLastRuneInString(s)
	if r == utf8.RuneError {
		return 0
	}
	return r
}
