package syntax

import "strings"

// Swift precedence groups, lowest to highest.
const (
	precAssignment     = 90
	precTernary        = 100
	precDisjunction    = 110
	precConjunction    = 120
	precComparison     = 130
	precNilCoalescing  = 131
	precCasting        = 132
	precRangeFormation = 135
	precAddition       = 140
	precMultiplication = 150
	precShift          = 160
)

var binaryPrec = map[string]int{
	"=": precAssignment, "*=": precAssignment, "/=": precAssignment,
	"%=": precAssignment, "+=": precAssignment, "-=": precAssignment,
	"<<=": precAssignment, ">>=": precAssignment, "&=": precAssignment,
	"|=": precAssignment, "^=": precAssignment,
	"||": precDisjunction,
	"&&": precConjunction,
	"<": precComparison, "<=": precComparison, ">": precComparison,
	">=": precComparison, "==": precComparison, "!=": precComparison,
	"===": precComparison, "!==": precComparison, "~=": precComparison,
	"??":  precNilCoalescing,
	"..<": precRangeFormation, "...": precRangeFormation,
	"+": precAddition, "-": precAddition, "&+": precAddition,
	"&-": precAddition, "|": precAddition, "^": precAddition,
	"*": precMultiplication, "/": precMultiplication, "%": precMultiplication,
	"&*": precMultiplication, "&": precMultiplication,
	"<<": precShift, ">>": precShift,
}

func rightAssoc(prec int) bool {
	return prec == precAssignment || prec == precTernary || prec == precNilCoalescing
}

func (p *parser) parseExpr() Expr { return p.parseBinary(0, true) }

// parseExprNoCast stops before is/as, for patterns followed by "as T".
func (p *parser) parseExprNoCast() Expr { return p.parseBinary(0, false) }

// binaryOp classifies the current token as an infix operator following
// Swift's whitespace rule: an operator bound on both sides or on neither
// side is binary.
func (p *parser) binaryOp(casts bool) (string, int, bool) {
	t := p.tok()
	switch {
	case t.kind == tKeyword && (t.text == "is" || t.text == "as"):
		if !casts {
			return "", 0, false
		}
		return t.text, precCasting, true
	case t.kind != tOperator || t.text == "->":
		return "", 0, false
	}
	if t.text == "?" {
		return "?", precTernary, t.spaceBefore
	}
	prec, ok := binaryPrec[t.text]
	if !ok {
		if strings.HasSuffix(t.text, "=") && t.text != "==" {
			return "", 0, false
		}
		prec = precAddition // custom operator
	}
	next := p.peek(1)
	leftBound := !t.spaceBefore
	rightBound := !next.spaceBefore
	if leftBound != rightBound {
		return "", 0, false
	}
	if next.kind == tEOF || next.kind == tPunct && strings.Contains(")]},:;", next.text) {
		return "", 0, false
	}
	return t.text, prec, true
}

func (p *parser) parseBinary(minPrec int, casts bool) Expr {
	start := p.start()
	x := p.parsePrefix()
	for {
		op, prec, ok := p.binaryOp(casts)
		if !ok || prec < minPrec {
			return x
		}
		p.advance()
		nextMin := prec + 1
		if rightAssoc(prec) {
			nextMin = prec
		}
		switch {
		case op == "?":
			t := &TernaryExpr{Cond: x}
			t.Then = p.parseBinary(0, casts)
			p.want(":")
			t.Else = p.parseBinary(nextMin, casts)
			x = t
		case op == "is" || op == "as":
			c := &CastExpr{Op: op, X: x}
			if op == "as" && (p.is("?") || p.is("!")) && !p.tok().spaceBefore {
				c.Op += p.advance().text
			}
			c.Type = p.parseType()
			x = c
		case op == "=":
			x = &AssignExpr{Lhs: x, Rhs: p.parseBinary(nextMin, casts)}
		default:
			x = &BinaryExpr{Op: op, X: x, Y: p.parseBinary(nextMin, casts)}
		}
		p.finish(x.(ranged), start)
	}
}

func (p *parser) parsePrefix() Expr {
	start := p.start()
	var x Expr
	t := p.tok()
	switch {
	case t.kind == tKeyword && t.text == "try":
		p.advance()
		te := &TryExpr{}
		if (p.is("?") || p.is("!")) && !p.tok().spaceBefore {
			te.Kind = p.advance().text
		}
		te.X = p.parseBinary(precAssignment+1, true)
		x = te
	case t.kind == tOperator && (p.isAt(1, ",") || p.isAt(1, ")")):
		return p.parsePostfix(p.parsePrimary(), start)
	case t.kind == tOperator && t.text == "&" && !p.peek(1).spaceBefore:
		p.advance()
		x = &InOutExpr{X: p.parsePrefix()}
	case t.kind == tOperator && !p.peek(1).spaceBefore:
		p.advance()
		x = &PrefixExpr{Op: t.text, X: p.parsePrefix()}
	default:
		return p.parsePostfix(p.parsePrimary(), start)
	}
	p.finish(x.(ranged), start)
	return x
}

func (p *parser) parsePrimary() Expr {
	start := p.start()
	t := p.tok()
	var x Expr
	switch {
	case t.kind == tInt:
		p.advance()
		x = &LiteralExpr{Kind: LitInt, Value: t.text}
	case t.kind == tFloat:
		p.advance()
		x = &LiteralExpr{Kind: LitFloat, Value: t.text}
	case t.kind == tString:
		p.advance()
		x = &LiteralExpr{Kind: LitString, Value: t.text, Interpolated: t.interpolated}
	case t.text == "true" || t.text == "false":
		p.advance()
		x = &LiteralExpr{Kind: LitBool, Value: t.text}
	case t.text == "nil":
		p.advance()
		x = &LiteralExpr{Kind: LitNil, Value: t.text}
	case t.text == "self" && t.kind == tKeyword:
		p.advance()
		x = &SelfExpr{}
	case t.text == "super" && t.kind == tKeyword:
		p.advance()
		x = &SuperExpr{}
	case t.text == "_" && t.kind == tIdent:
		p.advance()
		x = &WildcardExpr{}
	case t.kind == tIdent || t.text == "Self" || t.text == "init":
		p.advance()
		id := &IdentExpr{Name: t.text}
		id.GenericArgs = p.maybeGenericArgs()
		x = id
	case t.kind == tOperator && (p.isAt(1, ",") || p.isAt(1, ")")):
		// operator reference: reduce(0, +)
		p.advance()
		x = &IdentExpr{Name: t.text}
	case t.kind == tPunct && t.text == ".":
		p.advance()
		x = &ImplicitMemberExpr{Name: p.ident(true)}
	case t.kind == tPunct && t.text == "\\":
		p.advance()
		for p.isIdent() || p.is(".") || (p.is("?") && !p.tok().spaceBefore) {
			p.advance()
		}
		x = &KeyPathExpr{Raw: p.rawFrom(start)}
	case t.kind == tPunct && t.text == "(":
		x = p.parseParenOrTuple()
	case t.kind == tPunct && t.text == "[":
		x = p.parseCollectionLiteral()
	case t.kind == tPunct && t.text == "{":
		x = p.parseClosure()
	default:
		p.errorf("expected expression")
	}
	p.finish(x.(ranged), start)
	return x
}

// maybeGenericArgs speculatively parses <T, U> directly after a name.
func (p *parser) maybeGenericArgs() []Type {
	if !p.is("<") || p.tok().spaceBefore {
		return nil
	}
	var args []Type
	p.speculate(func() {
		args = p.parseGenericArgs()
		next := p.tok()
		if next.kind == tEOF || next.nlBefore {
			return
		}
		if next.kind == tPunct && strings.Contains("().,]:}", next.text) {
			return
		}
		p.errorf("not a generic argument clause")
	})
	return args
}

func (p *parser) parseGenericArgs() []Type {
	p.want("<")
	args := []Type{p.parseType()}
	for p.got(",") {
		args = append(args, p.parseType())
	}
	p.wantCloseAngle()
	return args
}

func (p *parser) parseArgs(close string) []*Arg {
	saved := p.noTrailing
	p.noTrailing = 0
	defer func() { p.noTrailing = saved }()

	var args []*Arg
	for !p.got(close) {
		start := p.start()
		a := &Arg{}
		if (p.isIdent() || p.at(tKeyword)) && p.isAt(1, ":") && p.tok().text != "_" {
			a.Label = p.advance().text
			p.advance()
		}
		a.X = p.parseExpr()
		p.finish(a, start)
		args = append(args, a)
		if !p.got(",") {
			p.want(close)
			break
		}
	}
	return args
}

func (p *parser) parseParenOrTuple() Expr {
	start := p.start()
	p.want("(")
	args := p.parseArgs(")")
	if len(args) == 1 && args[0].Label == "" {
		pe := &ParenExpr{X: args[0].X}
		p.finish(pe, start)
		return pe
	}
	t := &TupleExpr{}
	for _, a := range args {
		e := &TupleElem{Label: a.Label, X: a.X}
		e.setRange(a.Range())
		t.Elems = append(t.Elems, e)
	}
	return t
}

func (p *parser) parseCollectionLiteral() Expr {
	p.want("[")
	saved := p.noTrailing
	p.noTrailing = 0
	defer func() { p.noTrailing = saved }()

	if p.got(":") {
		p.want("]")
		return &DictLiteralExpr{}
	}
	if p.got("]") {
		return &ArrayLiteralExpr{}
	}
	first := p.parseExpr()
	if p.is(":") {
		d := &DictLiteralExpr{}
		key := first
		for {
			p.want(":")
			e := &DictEntry{Key: key, Value: p.parseExpr()}
			e.setRange(Range{Start: key.Range().Start, End: p.prevEnd()})
			d.Entries = append(d.Entries, e)
			if !p.got(",") || p.is("]") {
				break
			}
			key = p.parseExpr()
		}
		p.want("]")
		return d
	}
	a := &ArrayLiteralExpr{Elems: []Expr{first}}
	for p.got(",") && !p.is("]") {
		a.Elems = append(a.Elems, p.parseExpr())
	}
	p.want("]")
	return a
}

func (p *parser) parseClosure() *ClosureExpr {
	start := p.start()
	p.want("{")
	saved := p.noTrailing
	p.noTrailing = 0
	defer func() { p.noTrailing = saved }()

	c := &ClosureExpr{}
	p.speculate(func() {
		sig := &ClosureExpr{}
		p.parseClosureSignature(sig)
		*c = *sig
	})
	c.Body = p.parseStmtsUntil("}")
	p.want("}")
	p.finish(c, start)
	return c
}

func (p *parser) parseClosureSignature(c *ClosureExpr) {
	if p.is("[") {
		capStart := p.tok().rng.End
		p.skipBalanced("[", "]")
		c.Captures = p.src[capStart.Offset : p.prevEnd().Offset-1]
	}
	switch {
	case p.is("("):
		p.advance()
		for !p.got(")") {
			start := p.start()
			cp := &ClosureParam{Name: p.ident(false)}
			if p.isIdent() {
				cp.Name = p.advance().text
			}
			if p.got(":") {
				cp.Type = p.parseType()
			}
			p.finish(cp, start)
			c.Params = append(c.Params, cp)
			if !p.got(",") {
				p.want(")")
				break
			}
		}
	case p.isIdent():
		for {
			start := p.start()
			cp := &ClosureParam{Name: p.ident(false)}
			p.finish(cp, start)
			c.Params = append(c.Params, cp)
			if !p.got(",") {
				break
			}
		}
	}
	if p.got("throws") {
		c.Throws = true
	}
	if p.got("->") {
		c.Result = p.parseType()
	}
	p.want("in")
	c.Signature = true
}

// trailingClosureAhead reports whether a '{' at the current position
// begins a trailing closure.
func (p *parser) trailingClosureAhead() bool {
	t := p.tok()
	return p.noTrailing == 0 && t.kind == tPunct && t.text == "{" &&
		!t.nlBefore && !p.isAccessorStart()
}

func (p *parser) parsePostfix(x Expr, start Position) Expr {
	for {
		t := p.tok()
		switch {
		case t.kind == tPunct && t.text == ".":
			p.advance()
			m := &MemberExpr{X: x}
			if p.at(tInt) {
				m.Name = p.advance().text
			} else if p.at(tFloat) {
				// a.0.1 lexes as a float; split into two tuple indexes
				parts := strings.SplitN(p.advance().text, ".", 2)
				m.Name = parts[0]
				p.finish(m, start)
				x = &MemberExpr{X: m, Name: parts[1]}
				p.finish(x.(ranged), start)
				continue
			} else {
				m.Name = p.ident(true)
				m.GenericArgs = p.maybeGenericArgs()
			}
			x = m
		case t.kind == tPunct && t.text == "(" && !t.nlBefore && !t.spaceBefore:
			p.advance()
			call := &CallExpr{Fun: x, Args: p.parseArgs(")")}
			if p.trailingClosureAhead() {
				call.Trailing = p.parseClosure()
			}
			x = call
		case t.kind == tPunct && t.text == "[" && !t.nlBefore && !t.spaceBefore:
			p.advance()
			x = &SubscriptExpr{X: x, Args: p.parseArgs("]")}
		case p.trailingClosureAhead():
			x = &CallExpr{Fun: x, Trailing: p.parseClosure()}
		case t.kind == tOperator && t.text == "?" && !t.spaceBefore:
			p.advance()
			x = &OptionalChainExpr{X: x}
		case t.kind == tOperator && t.text == "!" && !t.spaceBefore:
			p.advance()
			x = &ForceExpr{X: x}
		case t.kind == tOperator && !t.spaceBefore && p.postfixPosition():
			p.advance()
			x = &PostfixExpr{Op: t.text, X: x}
		default:
			return x
		}
		p.finish(x.(ranged), start)
	}
}

// postfixPosition reports whether the left-bound operator at the current
// position is postfix: followed by whitespace or a closing delimiter.
func (p *parser) postfixPosition() bool {
	next := p.peek(1)
	if next.spaceBefore || next.kind == tEOF {
		return true
	}
	return next.kind == tPunct && strings.Contains(")]},;", next.text)
}
