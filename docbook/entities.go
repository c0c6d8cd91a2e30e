package docbook

import (
	"bytes"
	"encoding/xml"
	"regexp"
	"strconv"
)

var (
	entityRef  = regexp.MustCompile(`&([A-Za-z_][A-Za-z0-9._-]*);`)
	entityDecl = regexp.MustCompile(`<!ENTITY\s+([A-Za-z_][A-Za-z0-9._-]*)\s+(?:"([^"]*)"|'([^']*)')\s*>`)

	doctypeOpen = []byte("<!DOCTYPE")
	cdataOpen   = []byte("<![CDATA[")
	cdataClose  = []byte("]]>")
)

// Declared entities may reference each other; expansion stops after this
// many passes so recursive declarations cannot loop.
const maxEntityDepth = 8

var predefinedEntities = map[string]bool{
	"amp":  true,
	"lt":   true,
	"gt":   true,
	"quot": true,
	"apos": true,
}

// expandEntities rewrites entity references encoding/xml would reject.
// Internal subset declarations are substituted with their replacement text,
// HTML names become numeric references and anything else is kept as
// literal text. The document type declaration and CDATA sections are left
// alone.
func expandEntities(data []byte) []byte {
	declared := declaredEntities(data)

	var out bytes.Buffer
	out.Grow(len(data))
	if start := bytes.Index(data, doctypeOpen); start >= 0 {
		end := start + doctypeEnd(data[start:])
		out.Write(data[:end])
		data = data[end:]
	}
	for len(data) > 0 {
		start := bytes.Index(data, cdataOpen)
		if start < 0 {
			out.Write(expandRefs(data, declared))
			break
		}
		out.Write(expandRefs(data[:start], declared))
		data = data[start:]

		end := bytes.Index(data, cdataClose)
		if end < 0 {
			out.Write(data)
			break
		}
		end += len(cdataClose)
		out.Write(data[:end])
		data = data[end:]
	}
	return out.Bytes()
}

// doctypeEnd returns the length of the declaration at the start of data,
// including any internal subset.
func doctypeEnd(data []byte) int {
	subset := bytes.IndexByte(data, '[')
	closing := bytes.IndexByte(data, '>')
	if closing < 0 {
		return len(data)
	}
	if subset < 0 || subset > closing {
		return closing + 1
	}
	end := bytes.Index(data[subset:], []byte("]"))
	for end >= 0 {
		rest := bytes.TrimLeft(data[subset+end+1:], " \t\r\n")
		if len(rest) > 0 && rest[0] == '>' {
			return len(data) - len(rest) + 1
		}
		next := bytes.Index(data[subset+end+1:], []byte("]"))
		if next < 0 {
			break
		}
		end += next + 1
	}
	return len(data)
}

func declaredEntities(data []byte) map[string][]byte {
	matches := entityDecl.FindAllSubmatch(data, -1)
	if len(matches) == 0 {
		return nil
	}
	declared := make(map[string][]byte, len(matches))
	for _, m := range matches {
		name := string(m[1])
		if _, ok := declared[name]; ok {
			continue // first declaration is binding
		}
		value := m[2]
		if value == nil {
			value = m[3]
		}
		declared[name] = value
	}
	return declared
}

func expandRefs(data []byte, declared map[string][]byte) []byte {
	for range maxEntityDepth {
		expanded := false
		data = entityRef.ReplaceAllFunc(data, func(ref []byte) []byte {
			name := string(ref[1 : len(ref)-1])
			if predefinedEntities[name] {
				return ref
			}
			if value, ok := declared[name]; ok {
				expanded = true
				return value
			}
			if value, ok := xml.HTMLEntity[name]; ok {
				return numericRefs(value)
			}
			return append([]byte("&amp;"), ref[1:]...)
		})
		if !expanded {
			break
		}
	}
	return data
}

func numericRefs(s string) []byte {
	var buf []byte
	for _, r := range s {
		buf = append(buf, "&#"...)
		buf = strconv.AppendInt(buf, int64(r), 10)
		buf = append(buf, ';')
	}
	return buf
}
