package kotlin

import (
	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

// inversions is the comparison negation table.
var inversions = map[string]string{
	"==":  "!=",
	"!=":  "==",
	">":   "<=",
	"<=":  ">",
	">=":  "<",
	"<":   ">=",
	"is":  "!is",
	"!is": "is",
	"===": "!==",
	"!==": "===",
}

var connectives = map[string]string{
	"&&": "||",
	"||": "&&",
}

// invert returns the logical negation of a translated condition. Top-level
// comparisons are negated through the inversions table; connectives are
// flipped and operands without a table hit are negated in place. A
// condition mixing && and || at top level is wrapped as !( ... ).
func (t *Translator) invert(cond tokens.Sequence) tokens.Sequence {
	operands, ops := splitConnectives(cond)
	for _, op := range ops {
		if op.Text != ops[0].Text {
			return negate(cond, true)
		}
	}
	if len(operands) == 1 {
		return unwrapParens(invertOperand(operands[0]))
	}
	parts := make([]tokens.Sequence, 0, 2*len(operands)-1)
	for i, operand := range operands {
		if i > 0 {
			op := ops[i-1]
			op.Text = connectives[op.Text]
			parts = append(parts, seqOf(op))
		}
		parts = append(parts, invertOperand(operand))
	}
	return spaced(parts...)
}

// splitConnectives cuts s at top-level && and || tokens, trimming the
// whitespace around them.
func splitConnectives(s tokens.Sequence) ([]tokens.Sequence, []tokens.Token) {
	var operands []tokens.Sequence
	var ops []tokens.Token
	toks := s.Tokens()
	depth, start := 0, 0
	for i, tok := range toks {
		switch tok.Kind {
		case tokens.StartOfScope:
			depth++
		case tokens.EndOfScope:
			depth--
		case tokens.Symbol:
			if _, ok := connectives[tok.Text]; ok && depth == 0 {
				operands = append(operands, trimSpace(s.Slice(start, i)))
				ops = append(ops, tok)
				start = i + 1
			}
		}
	}
	operands = append(operands, trimSpace(s.Slice(start, len(toks))))
	return operands, ops
}

func trimSpace(s tokens.Sequence) tokens.Sequence {
	i, j := 0, s.Len()
	for i < j && s.At(i).Kind == tokens.Whitespace {
		i++
	}
	for j > i && s.At(j-1).Kind == tokens.Whitespace {
		j--
	}
	return s.Slice(i, j)
}

// invertOperand negates a single comparison or boolean operand.
func invertOperand(s tokens.Sequence) tokens.Sequence {
	if i, ok := comparisonAt(s); ok {
		tok := s.At(i)
		tok.Text = inversions[tok.Text]
		return s.Slice(0, i).Suffix(tok).Append(s.Slice(i+1, s.Len()))
	}
	if s.Len() > 1 && isNegation(s.At(0)) && !hasTopLevelOperator(s.Slice(1, s.Len())) {
		return s.Slice(1, s.Len())
	}
	return negate(s, hasTopLevelOperator(s))
}

// unwrapParens drops the parentheses around s when they enclose all of it.
func unwrapParens(s tokens.Sequence) tokens.Sequence {
	if s.Len() < 2 || s.At(0).Kind != tokens.StartOfScope || s.At(0).Text != "(" {
		return s
	}
	if end, ok := s.BalancedScopeEnd("(", ")", 0); !ok || end != s.Len()-1 {
		return s
	}
	return trimSpace(s.Slice(1, s.Len()-1))
}

// comparisonAt finds the single top-level comparison of s.
func comparisonAt(s tokens.Sequence) (int, bool) {
	found := -1
	depth := 0
	for i := 0; i < s.Len(); i++ {
		tok := s.At(i)
		switch tok.Kind {
		case tokens.StartOfScope:
			depth++
		case tokens.EndOfScope:
			depth--
		case tokens.Keyword:
			if depth == 0 && tok.Text == "if" {
				return 0, false
			}
			fallthrough
		case tokens.Symbol:
			if depth != 0 || !invertible(tok) {
				continue
			}
			if found >= 0 {
				return 0, false
			}
			found = i
		}
	}
	return found, found >= 0
}

func invertible(tok tokens.Token) bool {
	if _, ok := inversions[tok.Text]; !ok {
		return false
	}
	switch tok.Origin.(type) {
	case *syntax.BinaryExpr, *syntax.Condition, *syntax.CastExpr:
		return true
	}
	return false
}

func isNegation(tok tokens.Token) bool {
	p, ok := tok.Origin.(*syntax.PrefixExpr)
	return ok && p.Op == "!" && tok.Kind == tokens.Symbol && tok.Text == "!"
}

// hasTopLevelOperator reports whether s contains an unparenthesized binary
// operator, so that a prefix ! would bind to its first operand only.
func hasTopLevelOperator(s tokens.Sequence) bool {
	depth := 0
	for i := 0; i < s.Len(); i++ {
		tok := s.At(i)
		switch tok.Kind {
		case tokens.StartOfScope:
			depth++
		case tokens.EndOfScope:
			depth--
		case tokens.Symbol, tokens.Keyword:
			if depth != 0 {
				continue
			}
			switch tok.Origin.(type) {
			case *syntax.BinaryExpr, *syntax.CastExpr, *syntax.AssignExpr, *syntax.Condition:
				return true
			}
			if tok.Kind == tokens.Keyword && (tok.Text == "if" || tok.Text == "try") {
				return true
			}
		}
	}
	return false
}

// negate prefixes s with a synthetic ! operator, parenthesizing s when
// wrap is set.
func negate(s tokens.Sequence, wrap bool) tokens.Sequence {
	if wrap {
		s = parens(s)
	}
	return s.Prefix(tokens.Sym("!").WithOrigin(&syntax.PrefixExpr{Op: "!"}))
}
