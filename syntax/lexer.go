package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lexer turns Swift source into tokens. Comments are discarded; their
// presence only counts as whitespace for operator classification.
type lexer struct {
	src  string
	file string
	pos  int
	pt   *positionTracker

	toks []token
}

func lex(file, src string) ([]token, error) {
	l := &lexer{src: src, file: file, pt: newPositionTracker()}
	if err := l.run(); err != nil {
		return nil, err
	}
	return l.toks, nil
}

func (l *lexer) peek(off int) byte {
	if l.pos+off < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

func (l *lexer) next() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pt.advance(r, size)
	l.pos += size
	return r
}

func (l *lexer) errorf(start Position, msg string) error {
	return NewParseError(ErrorKindLexical, msg).
		WithFile(l.file).
		WithRange(Range{Start: start, End: l.pt.current()})
}

func (l *lexer) run() error {
	space, nl := true, false
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.next()
			space, nl = true, true
			continue
		case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
			l.next()
			space = true
			continue
		case c == '/' && l.peek(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.next()
			}
			space = true
			continue
		case c == '/' && l.peek(1) == '*':
			start := l.pt.current()
			if !l.skipBlockComment() {
				return l.errorf(start, "unterminated block comment")
			}
			space = true
			continue
		}

		start := l.pt.current()
		startOff := l.pos
		tok := token{spaceBefore: space, nlBefore: nl}
		space, nl = false, false

		var err error
		switch {
		case c == '"' || (c == '#' && l.rawStringAhead()):
			tok.kind = tString
			tok.interpolated, err = l.scanString()
		case c == '`':
			l.next()
			for l.pos < len(l.src) && l.src[l.pos] != '`' {
				if l.src[l.pos] == '\n' {
					return l.errorf(start, "unterminated escaped identifier")
				}
				l.next()
			}
			if l.pos >= len(l.src) {
				return l.errorf(start, "unterminated escaped identifier")
			}
			l.next()
			tok.kind = tIdent
		case isDigit(c):
			tok.kind = l.scanNumber()
		case c == '$' || c == '#' || isIdentStart(l.src[l.pos:]):
			l.next()
			for l.pos < len(l.src) && isIdentContinue(l.src[l.pos:]) {
				l.next()
			}
			tok.kind = tIdent
		case c == '.' && isOperatorChar(l.peek(1)) || c == '.' && l.peek(1) == '.':
			for l.pos < len(l.src) && (l.src[l.pos] == '.' || isOperatorChar(l.src[l.pos])) {
				l.next()
			}
			tok.kind = tOperator
		case isOperatorChar(c):
			l.scanOperator(startOff)
			tok.kind = tOperator
		case strings.IndexByte("()[]{},:;.@\\", c) >= 0:
			l.next()
			tok.kind = tPunct
		default:
			r := l.next()
			return l.errorf(start, "unexpected character "+string(r))
		}
		if err != nil {
			return err
		}

		tok.text = l.src[startOff:l.pos]
		if tok.kind == tIdent {
			if keywords[tok.text] {
				tok.kind = tKeyword
			} else if strings.HasPrefix(tok.text, "`") {
				tok.text = strings.Trim(tok.text, "`")
			}
		}
		tok.rng = Range{Start: start, End: l.pt.current()}
		l.toks = append(l.toks, tok)
	}
	l.toks = append(l.toks, token{kind: tEOF, spaceBefore: true, nlBefore: true,
		rng: Range{Start: l.pt.current(), End: l.pt.current()}})
	return nil
}

func (l *lexer) skipBlockComment() bool {
	depth := 0
	for l.pos < len(l.src) {
		switch {
		case l.src[l.pos] == '/' && l.peek(1) == '*':
			l.next()
			l.next()
			depth++
		case l.src[l.pos] == '*' && l.peek(1) == '/':
			l.next()
			l.next()
			depth--
			if depth == 0 {
				return true
			}
		default:
			l.next()
		}
	}
	return false
}

func (l *lexer) rawStringAhead() bool {
	i := l.pos
	for i < len(l.src) && l.src[i] == '#' {
		i++
	}
	return i < len(l.src) && l.src[i] == '"'
}

// scanString consumes a string literal, including raw (#"..."#) and
// multi-line forms, and reports whether it contains interpolation.
// Interpolated segments may nest parentheses and further string literals.
func (l *lexer) scanString() (bool, error) {
	start := l.pt.current()
	hashes := 0
	for l.peek(0) == '#' {
		l.next()
		hashes++
	}
	delim := `"`
	if strings.HasPrefix(l.src[l.pos:], `"""`) {
		delim = `"""`
	}
	for range delim {
		l.next()
	}
	closer := delim + strings.Repeat("#", hashes)
	escape := `\` + strings.Repeat("#", hashes)
	interpolated := false

	for {
		if l.pos >= len(l.src) {
			return false, l.errorf(start, "unterminated string literal")
		}
		rest := l.src[l.pos:]
		switch {
		case strings.HasPrefix(rest, closer):
			for range closer {
				l.next()
			}
			return interpolated, nil
		case delim == `"` && rest[0] == '\n':
			return false, l.errorf(start, "unterminated string literal")
		case strings.HasPrefix(rest, escape+"("):
			for range escape {
				l.next()
			}
			l.next()
			interpolated = true
			if err := l.skipInterpolation(start); err != nil {
				return false, err
			}
		case strings.HasPrefix(rest, escape):
			for range escape {
				l.next()
			}
			if l.pos < len(l.src) {
				l.next()
			}
		default:
			l.next()
		}
	}
}

// skipInterpolation consumes up to and including the ')' closing an
// interpolation whose '(' was just consumed.
func (l *lexer) skipInterpolation(start Position) error {
	depth := 1
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '(':
			depth++
			l.next()
		case ')':
			depth--
			l.next()
			if depth == 0 {
				return nil
			}
		case '"':
			if _, err := l.scanString(); err != nil {
				return err
			}
		default:
			l.next()
		}
	}
	return l.errorf(start, "unterminated string interpolation")
}

func (l *lexer) scanNumber() tokKind {
	kind := tInt
	if l.peek(0) == '0' && strings.IndexByte("xob", l.peek(1)) >= 0 {
		l.next()
		l.next()
		for l.pos < len(l.src) && (isHexDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.next()
		}
		return kind
	}
	digits := func() {
		for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
			l.next()
		}
	}
	digits()
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		kind = tFloat
		l.next()
		digits()
	}
	if c := l.peek(0); c == 'e' || c == 'E' {
		n := 1
		if s := l.peek(1); s == '+' || s == '-' {
			n = 2
		}
		if isDigit(l.peek(n)) {
			kind = tFloat
			for i := 0; i < n; i++ {
				l.next()
			}
			digits()
		}
	}
	return kind
}

// scanOperator applies maximal munch, except that a left-bound '?' or '!'
// (postfix optional / force unwrap) is always a single-character token.
func (l *lexer) scanOperator(startOff int) {
	c := l.src[l.pos]
	leftBound := startOff > 0 && !isSpaceByte(l.src[startOff-1]) && strings.IndexByte("([{,;:", l.src[startOff-1]) < 0
	if leftBound && (c == '?' || (c == '!' && l.peek(1) != '=')) {
		l.next()
		return
	}
	l.next()
	for l.pos < len(l.src) && isOperatorChar(l.src[l.pos]) {
		// '?' only continues "??"; '!' never continues an operator
		if n := l.src[l.pos]; n == '!' || (n == '?' && l.src[startOff:l.pos] != "?") {
			break
		}
		l.next()
	}
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isOperatorChar(c byte) bool {
	return c != 0 && strings.IndexByte("/=-+!*%<>&|^~?", c) >= 0
}

func isIdentStart(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
