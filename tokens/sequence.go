package tokens

import (
	"strings"

	"github.com/teranos/swiftkotlin/syntax"
)

// Sequence is an immutable ordered list of tokens. Every combinator
// returns a new Sequence; the receiver is never modified.
type Sequence struct {
	toks []Token
}

// New builds a sequence from ts.
func New(ts ...Token) Sequence {
	return Sequence{toks: append([]Token(nil), ts...)}
}

// Join concatenates the non-empty sequences in seqs, placing sep between
// neighbours. Join of a single sequence returns that sequence.
func Join(seqs []Sequence, sep ...Token) Sequence {
	var out []Token
	first := true
	for _, s := range seqs {
		if s.IsEmpty() {
			continue
		}
		if !first {
			out = append(out, sep...)
		}
		out = append(out, s.toks...)
		first = false
	}
	return Sequence{toks: out}
}

// Concat appends the given sequences with no separator.
func Concat(seqs ...Sequence) Sequence { return Join(seqs) }

func (s Sequence) Len() int { return len(s.toks) }
func (s Sequence) IsEmpty() bool { return len(s.toks) == 0 }
func (s Sequence) At(i int) Token { return s.toks[i] }

// Tokens returns a copy of the underlying tokens.
func (s Sequence) Tokens() []Token { return append([]Token(nil), s.toks...) }

// Last returns the final token, if any.
func (s Sequence) Last() (Token, bool) {
	if len(s.toks) == 0 {
		return Token{}, false
	}
	return s.toks[len(s.toks)-1], true
}

// Prefix returns ts followed by s. Prefix(a).Prefix(b) equals Prefix(b, a).
func (s Sequence) Prefix(ts ...Token) Sequence {
	out := make([]Token, 0, len(ts)+len(s.toks))
	out = append(out, ts...)
	return Sequence{toks: append(out, s.toks...)}
}

// Suffix returns s followed by ts.
func (s Sequence) Suffix(ts ...Token) Sequence {
	out := make([]Token, 0, len(ts)+len(s.toks))
	out = append(out, s.toks...)
	return Sequence{toks: append(out, ts...)}
}

// Append returns s followed by the tokens of others.
func (s Sequence) Append(others ...Sequence) Sequence {
	return Concat(append([]Sequence{s}, others...)...)
}

// Indent inserts one unit of indentation after every linebreak that is
// followed by content. Blank lines stay blank.
func (s Sequence) Indent(unit string) Sequence {
	out := make([]Token, 0, len(s.toks)+8)
	for i, t := range s.toks {
		out = append(out, t)
		if t.Kind != Linebreak || i+1 >= len(s.toks) || s.toks[i+1].Kind == Linebreak {
			continue
		}
		out = append(out, Token{Kind: Whitespace, Text: unit, Origin: t.Origin, Range: t.Range})
	}
	return Sequence{toks: out}
}

// Replace substitutes repl(t) for every token matching pred, at most limit
// times when limit > 0.
func (s Sequence) Replace(pred func(Token) bool, repl func(Token) []Token, limit int) Sequence {
	out := make([]Token, 0, len(s.toks))
	n := 0
	for _, t := range s.toks {
		if (limit <= 0 || n < limit) && pred(t) {
			out = append(out, repl(t)...)
			n++
			continue
		}
		out = append(out, t)
	}
	return Sequence{toks: out}
}

// Filter keeps the tokens matching pred.
func (s Sequence) Filter(pred func(Token) bool) Sequence {
	var out []Token
	for _, t := range s.toks {
		if pred(t) {
			out = append(out, t)
		}
	}
	return Sequence{toks: out}
}

// Index returns the index of the first token at or after from matching
// pred, or -1.
func (s Sequence) Index(from int, pred func(Token) bool) int {
	for i := from; i < len(s.toks); i++ {
		if i >= 0 && pred(s.toks[i]) {
			return i
		}
	}
	return -1
}

// Contains reports whether any token matches pred.
func (s Sequence) Contains(pred func(Token) bool) bool {
	return s.Index(0, pred) >= 0
}

// Slice returns tokens [i, j).
func (s Sequence) Slice(i, j int) Sequence {
	return Sequence{toks: append([]Token(nil), s.toks[i:j]...)}
}

// Insert returns s with ts inserted before index i.
func (s Sequence) Insert(i int, ts ...Token) Sequence {
	out := make([]Token, 0, len(s.toks)+len(ts))
	out = append(out, s.toks[:i]...)
	out = append(out, ts...)
	return Sequence{toks: append(out, s.toks[i:]...)}
}

// BalancedScopeEnd returns the index of the close token matching the
// first open token at or after from. It returns false when no opener is
// found or the scope never closes within the sequence.
func (s Sequence) BalancedScopeEnd(open, close string, from int) (int, bool) {
	depth := 0
	seen := false
	for i := from; i < len(s.toks); i++ {
		t := s.toks[i]
		switch {
		case t.Kind == StartOfScope && t.Text == open:
			depth++
			seen = true
		case t.Kind == EndOfScope && t.Text == close:
			if !seen {
				return -1, false
			}
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

// Balanced reports whether every scope opener is closed by its matching
// closer, properly nested.
func (s Sequence) Balanced() bool {
	var stack []string
	for _, t := range s.toks {
		switch t.Kind {
		case StartOfScope:
			stack = append(stack, scopePairs[t.Text])
		case EndOfScope:
			if len(stack) == 0 || stack[len(stack)-1] != t.Text {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// WithOrigin attributes every token that has no origin yet to n.
func (s Sequence) WithOrigin(n syntax.Node) Sequence {
	out := make([]Token, len(s.toks))
	for i, t := range s.toks {
		if t.Origin == nil {
			t = t.WithOrigin(n)
		}
		out[i] = t
	}
	return Sequence{toks: out}
}

// Text concatenates the token texts.
func (s Sequence) Text() string {
	var b strings.Builder
	for _, t := range s.toks {
		b.WriteString(t.Text)
	}
	return b.String()
}

func (s Sequence) String() string { return s.Text() }
