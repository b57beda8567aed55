package richtext

import "strings"

// textEntities covers the five characters that are significant in HTML text.
var textEntities = [256]string{
	'&':  "&amp;",
	'<':  "&lt;",
	'>':  "&gt;",
	'"':  "&quot;",
	'\'': "&#39;",
}

// attrEntities additionally encodes whitespace that would otherwise be
// normalized inside a quoted attribute value.
var attrEntities = func() [256]string {
	t := textEntities
	t['\n'] = "&#10;"
	t['\r'] = "&#13;"
	t['\t'] = "&#9;"
	return t
}()

// escapeHTML escapes text content. It is the only escaping applied to text
// and runs exactly once per text node.
func escapeHTML(s string) string {
	return escapeWith(s, &textEntities)
}

// escapeAttr escapes an attribute value. Only used when the renderer is
// configured with WithAttributeEscaping.
func escapeAttr(s string) string {
	return escapeWith(s, &attrEntities)
}

// escapeWith works on bytes so input that is not valid UTF-8 passes through
// unchanged. Every entity target is ASCII and never part of a multi-byte
// sequence.
func escapeWith(s string, entities *[256]string) string {
	var buf strings.Builder
	start := 0
	for i := 0; i < len(s); i++ {
		entity := entities[s[i]]
		if entity == "" {
			continue
		}
		if buf.Len() == 0 {
			buf.Grow(len(s) + 16)
		}
		buf.WriteString(s[start:i])
		buf.WriteString(entity)
		start = i + 1
	}
	if start == 0 {
		return s
	}
	buf.WriteString(s[start:])
	return buf.String()
}
