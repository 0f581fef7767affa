package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/swiftkotlin/syntax"
)

func seq(words ...string) Sequence {
	var ts []Token
	for _, w := range words {
		ts = append(ts, Ident(w))
	}
	return New(ts...)
}

// ============================================================================
// Composition
// ============================================================================

func TestJoinSingleIsIdentity(t *testing.T) {
	x := New(Kw("val"), Space(), Ident("a"))
	assert.Equal(t, x.Tokens(), Join([]Sequence{x}, Delim(","), Space()).Tokens())
}

func TestJoinSkipsEmpty(t *testing.T) {
	got := Join([]Sequence{seq("a"), {}, seq("b")}, Delim(","))
	assert.Equal(t, "a,b", got.Text())
	assert.True(t, Join(nil, Delim(",")).IsEmpty())
}

func TestPrefixOrder(t *testing.T) {
	s := seq("x")
	t1, t2 := Ident("t1"), Ident("t2")

	stepwise := s.Prefix(t1).Prefix(t2)
	once := s.Prefix(t2, t1)
	assert.Equal(t, once.Tokens(), stepwise.Tokens())
	assert.Equal(t, "t2t1x", once.Text())
}

func TestSuffixAndConcatAssociate(t *testing.T) {
	a, b, c := seq("a"), seq("b"), seq("c")
	assert.Equal(t, Concat(Concat(a, b), c).Tokens(), Concat(a, Concat(b, c)).Tokens())
	assert.Equal(t, "abc", a.Suffix(Ident("b"), Ident("c")).Text())
}

func TestCombinatorsDoNotMutate(t *testing.T) {
	base := seq("a", "b")
	_ = base.Prefix(Ident("p"))
	_ = base.Suffix(Ident("s"))
	_ = base.Insert(1, Ident("i"))
	_ = base.Replace(func(Token) bool { return true }, func(Token) []Token { return nil }, 0)
	assert.Equal(t, "ab", base.Text())
}

// ============================================================================
// Indentation
// ============================================================================

func TestIndent(t *testing.T) {
	tests := []struct {
		name string
		in   Sequence
		want string
	}{
		{
			name: "indents after each linebreak",
			in:   New(Ident("a"), Newline(), Ident("b"), Newline(), Ident("c")),
			want: "a\n    b\n    c",
		},
		{
			name: "blank lines stay blank",
			in:   New(Ident("a"), Newline(), Newline(), Ident("b")),
			want: "a\n\n    b",
		},
		{
			name: "trailing linebreak gets no indent",
			in:   New(Ident("a"), Newline()),
			want: "a\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Indent("    ").Text())
		})
	}
}

// ============================================================================
// Editing
// ============================================================================

func TestReplaceWithLimit(t *testing.T) {
	s := seq("x", "y", "x", "x")
	isX := func(t Token) bool { return t.Text == "x" }
	toZ := func(Token) []Token { return []Token{Ident("z")} }

	assert.Equal(t, "zyzz", s.Replace(isX, toZ, 0).Text())
	assert.Equal(t, "zyzx", s.Replace(isX, toZ, 2).Text())
}

func TestFilterIndexSliceInsert(t *testing.T) {
	s := New(Ident("a"), Space(), Ident("b"))
	noSpace := s.Filter(func(t Token) bool { return t.Kind != Whitespace })
	assert.Equal(t, "ab", noSpace.Text())

	assert.Equal(t, 2, s.Index(0, func(t Token) bool { return t.Text == "b" }))
	assert.Equal(t, -1, s.Index(0, func(t Token) bool { return t.Text == "q" }))
	assert.Equal(t, "a ", s.Slice(0, 2).Text())
	assert.Equal(t, "a: b", s.Insert(1, Delim(":")).Text())
}

// ============================================================================
// Scopes
// ============================================================================

func TestBalancedScopeEnd(t *testing.T) {
	// f(g(1), 2)
	s := New(Ident("f"), Open("("), Ident("g"), Open("("), Num("1"), Close(")"),
		Delim(","), Num("2"), Close(")"))

	end, ok := s.BalancedScopeEnd("(", ")", 0)
	require.True(t, ok)
	assert.Equal(t, 8, end)

	end, ok = s.BalancedScopeEnd("(", ")", 2)
	require.True(t, ok)
	assert.Equal(t, 5, end)

	_, ok = s.Slice(0, 7).BalancedScopeEnd("(", ")", 0)
	assert.False(t, ok, "unclosed scope")

	_, ok = seq("a", "b").BalancedScopeEnd("(", ")", 0)
	assert.False(t, ok, "no opener")
}

func TestBalanced(t *testing.T) {
	assert.True(t, New(Open("{"), Open("("), Close(")"), Close("}")).Balanced())
	assert.False(t, New(Open("{"), Open("("), Close("}"), Close(")")).Balanced())
	assert.False(t, New(Open("{")).Balanced())
	assert.True(t, New(Sym("<"), Ident("a")).Balanced(), "comparison symbols are not scopes")
}

// ============================================================================
// Origins
// ============================================================================

func TestWithOriginKeepsExisting(t *testing.T) {
	inner := &syntax.IdentExpr{Name: "x"}
	outer := &syntax.ParenExpr{X: inner}

	s := New(Open("("), Ident("x").WithOrigin(inner), Close(")")).WithOrigin(outer)
	assert.Same(t, outer, s.At(0).Origin)
	assert.Same(t, inner, s.At(1).Origin)
	assert.Same(t, outer, s.At(2).Origin)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "startOfScope", StartOfScope.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
