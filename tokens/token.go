// Package tokens is the output model of the translator: Kotlin tokens that
// remember which Swift syntax node produced them, and immutable sequences
// of them with pure composition combinators.
package tokens

import "github.com/teranos/swiftkotlin/syntax"

// Kind classifies an output token.
type Kind int

const (
	Keyword Kind = iota
	Identifier
	Symbol
	Delimiter
	String
	Number
	Comment
	Whitespace
	Linebreak
	StartOfScope
	EndOfScope
)

var kindNames = [...]string{
	Keyword:      "keyword",
	Identifier:   "identifier",
	Symbol:       "symbol",
	Delimiter:    "delimiter",
	String:       "string",
	Number:       "number",
	Comment:      "comment",
	Whitespace:   "whitespace",
	Linebreak:    "linebreak",
	StartOfScope: "startOfScope",
	EndOfScope:   "endOfScope",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Token is one unit of Kotlin output. Origin is a non-owning reference to
// the Swift node that produced it; nil for structural glue.
type Token struct {
	Kind   Kind
	Text   string
	Origin syntax.Node
	Range  syntax.Range
}

// WithOrigin returns a copy of t attributed to n.
func (t Token) WithOrigin(n syntax.Node) Token {
	t.Origin = n
	if n != nil {
		t.Range = n.Range()
	}
	return t
}

// Is reports whether t has kind k and text s.
func (t Token) Is(k Kind, s string) bool { return t.Kind == k && t.Text == s }

func (t Token) String() string { return t.Text }

// Constructors for tokens without origin.

func Kw(text string) Token { return Token{Kind: Keyword, Text: text} }
func Ident(text string) Token { return Token{Kind: Identifier, Text: text} }
func Sym(text string) Token { return Token{Kind: Symbol, Text: text} }
func Delim(text string) Token { return Token{Kind: Delimiter, Text: text} }
func Str(text string) Token { return Token{Kind: String, Text: text} }
func Num(text string) Token { return Token{Kind: Number, Text: text} }
func Cmt(text string) Token { return Token{Kind: Comment, Text: text} }
func Open(text string) Token { return Token{Kind: StartOfScope, Text: text} }
func Close(text string) Token { return Token{Kind: EndOfScope, Text: text} }
func Space() Token { return Token{Kind: Whitespace, Text: " "} }
func Spaces(text string) Token { return Token{Kind: Whitespace, Text: text} }
func Newline() Token { return Token{Kind: Linebreak, Text: "\n"} }

// scopePairs maps scope openers to their closers.
var scopePairs = map[string]string{
	"(": ")",
	"{": "}",
	"[": "]",
	"<": ">",
}

// Closer returns the scope closer matching open, or "".
func Closer(open string) string { return scopePairs[open] }
