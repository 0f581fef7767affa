package kotlin

import (
	"fmt"
	"strings"
)

// stringLiteral converts a Swift string literal, delimiters included, to
// Kotlin. Every \( ... ) segment is parsed and translated again on its own
// and spliced back as ${ ... }; a segment that fails to translate is kept
// verbatim.
func (t *Translator) stringLiteral(raw string) string {
	body, multiline, pounds := splitDelimiters(raw)

	var b strings.Builder
	if multiline {
		b.WriteString(`"""`)
	} else {
		b.WriteString(`"`)
	}
	escape := `\` + strings.Repeat("#", pounds)
	for i := 0; i < len(body); {
		switch {
		case strings.HasPrefix(body[i:], escape+"("):
			start := i + len(escape) + 1
			end := matchParen(body, start)
			b.WriteString("${" + t.interpolate(body[start:end]) + "}")
			i = end + 1
		case strings.HasPrefix(body[i:], escape) && i+len(escape) < len(body):
			n := len(escape)
			b.WriteString(convertEscape(body[i+n:], &n, multiline))
			i += n
		case body[i] == '$':
			if multiline {
				b.WriteString("${'$'}")
			} else {
				b.WriteString(`\$`)
			}
			i++
		case pounds > 0 && !multiline && body[i] == '"':
			b.WriteString(`\"`)
			i++
		case pounds > 0 && !multiline && body[i] == '\\':
			b.WriteString(`\\`)
			i++
		default:
			b.WriteByte(body[i])
			i++
		}
	}
	if multiline {
		b.WriteString(`"""`)
	} else {
		b.WriteString(`"`)
	}
	return b.String()
}

// splitDelimiters strips the quotes of a literal. pounds counts the # of
// a raw string. Multi-line bodies lose their first and last linebreak and
// the indentation of the closing delimiter.
func splitDelimiters(raw string) (body string, multiline bool, pounds int) {
	for pounds < len(raw) && raw[pounds] == '#' {
		pounds++
	}
	q := `"`
	if strings.HasPrefix(raw[pounds:], `"""`) {
		q, multiline = `"""`, true
	}
	n := pounds + len(q)
	if len(raw) < 2*n {
		return "", multiline, pounds
	}
	body = raw[n : len(raw)-n]
	if !multiline {
		return body, false, pounds
	}
	body = strings.TrimPrefix(body, "\n")
	indent := ""
	if i := strings.LastIndex(body, "\n"); i >= 0 && strings.TrimSpace(body[i:]) == "" {
		indent = body[i+1:]
		body = body[:i]
	}
	if indent != "" {
		lines := strings.Split(body, "\n")
		for i, l := range lines {
			lines[i] = strings.TrimPrefix(l, indent)
		}
		body = strings.Join(lines, "\n")
	}
	return body, true, pounds
}

// matchParen returns the index of the ")" closing the segment starting at
// from, skipping nested parentheses and string literals.
func matchParen(s string, from int) int {
	depth := 1
	inString := false
	for i := from; i < len(s); i++ {
		c := s[i]
		switch {
		case inString && c == '\\':
			i++
		case c == '"':
			inString = !inString
		case inString:
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(s)
}

// interpolate translates one embedded expression through the full
// engine. Linebreaks are removed so the result stays on one line.
func (t *Translator) interpolate(src string) string {
	seq, err := t.TranslateSource("<interpolation>", src)
	if err != nil || seq.IsEmpty() {
		return src
	}
	return strings.ReplaceAll(seq.Text(), "\n", "")
}

// convertEscape rewrites the escape sequence at the start of s. n is
// advanced past the consumed characters.
func convertEscape(s string, n *int, multiline bool) string {
	c := s[0]
	*n++
	var out string
	switch c {
	case '0':
		out = `\u0000`
	case 'u':
		if len(s) > 2 && s[1] == '{' {
			if end := strings.IndexByte(s, '}'); end > 2 {
				*n += end
				out = unicodeEscape(s[2:end])
				break
			}
		}
		out = `\u`
	case 'n', 't', 'r', '"', '\'', '\\':
		out = `\` + string(c)
	default:
		out = string(c)
	}
	if multiline {
		// Kotlin raw strings take no escapes.
		return unescapedRaw(out)
	}
	return out
}

func unicodeEscape(hex string) string {
	var r rune
	if _, err := fmt.Sscanf(hex, "%x", &r); err != nil {
		return `\u` + hex
	}
	if r <= 0xFFFF {
		return fmt.Sprintf(`\u%04X`, r)
	}
	r -= 0x10000
	return fmt.Sprintf(`\u%04X\u%04X`, 0xD800+(r>>10), 0xDC00+(r&0x3FF))
}

func unescapedRaw(esc string) string {
	switch esc {
	case `\n`:
		return "\n"
	case `\t`:
		return "\t"
	case `\"`:
		return `"`
	case `\'`:
		return "'"
	case `\\`:
		return `\`
	}
	return "${'" + esc + "'}"
}
