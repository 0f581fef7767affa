package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/swiftkotlin/errors"
)

func lexTexts(t *testing.T, src string) ([]string, []tokKind) {
	t.Helper()
	toks, err := lex("t.swift", src)
	require.NoError(t, err)
	var texts []string
	var kinds []tokKind
	for _, tok := range toks {
		if tok.kind == tEOF {
			break
		}
		texts = append(texts, tok.text)
		kinds = append(kinds, tok.kind)
	}
	return texts, kinds
}

func TestLexOperators(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"a?.b", []string{"a", "?", ".", "b"}},
		{"a!.b", []string{"a", "!", ".", "b"}},
		{"a ?? b", []string{"a", "??", "b"}},
		{"a != b", []string{"a", "!=", "b"}},
		{"a!= b", []string{"a", "!=", "b"}},
		{"0..<n", []string{"0", "..<", "n"}},
		{"1...5", []string{"1", "...", "5"}},
		{"x === y", []string{"x", "===", "y"}},
		{"f(!x)", []string{"f", "(", "!", "x", ")"}},
		{"x = y?", []string{"x", "=", "y", "?"}},
		{"a as! B", []string{"a", "as", "!", "B"}},
		{"\\.name", []string{"\\", ".", "name"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, _ := lexTexts(t, tt.src)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLexLiterals(t *testing.T) {
	tests := []struct {
		src  string
		kind tokKind
	}{
		{"42", tInt},
		{"1_000", tInt},
		{"0x1F", tInt},
		{"0o17", tInt},
		{"0b101", tInt},
		{"3.14", tFloat},
		{"1e10", tFloat},
		{"2.5E-3", tFloat},
		{`"plain"`, tString},
		{`"a \(b("c")) d"`, tString},
		{`#"raw \n"#`, tString},
		{"\"\"\"\n  multi\n  \"\"\"", tString},
		{"$0", tIdent},
		{"`class`", tIdent},
		{"nil", tKeyword},
		{"lazy", tIdent},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			texts, kinds := lexTexts(t, tt.src)
			require.Len(t, kinds, 1, "%q", texts)
			assert.Equal(t, tt.kind, kinds[0], kinds[0].String())
		})
	}
}

func TestLexEscapedIdentifierDropsBackticks(t *testing.T) {
	texts, _ := lexTexts(t, "let `default` = 1")
	assert.Equal(t, []string{"let", "default", "=", "1"}, texts)
}

func TestLexInterpolationFlag(t *testing.T) {
	toks, err := lex("", `"x" "\(y)"`)
	require.NoError(t, err)
	assert.False(t, toks[0].interpolated)
	assert.True(t, toks[1].interpolated)
}

func TestLexSpacing(t *testing.T) {
	toks, err := lex("", "a\n  // note\n  b c")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.True(t, toks[1].nlBefore)
	assert.True(t, toks[2].spaceBefore)
	assert.False(t, toks[2].nlBefore)
	assert.Equal(t, Position{Line: 3, Character: 2, Offset: 14}, toks[1].rng.Start)
}

func TestLexNestedBlockComment(t *testing.T) {
	texts, _ := lexTexts(t, "a /* outer /* inner */ still */ b")
	assert.Equal(t, []string{"a", "b"}, texts)
}

func TestLexErrors(t *testing.T) {
	for _, src := range []string{
		`"open`,
		"\"line\nbreak\"",
		"/* never closed",
		"`ident",
		`"\(unbalanced"`,
		"a ¤ b",
	} {
		_, err := lex("bad.swift", src)
		require.Error(t, err, src)
		assert.True(t, errors.Is(err, errors.ErrParse), src)
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, ErrorKindLexical, pe.Kind)
		assert.Equal(t, "bad.swift", pe.File)
	}
}
