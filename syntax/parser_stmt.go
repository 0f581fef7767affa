package syntax

func (p *parser) parseStmt() Stmt {
	start := p.start()
	if p.isDeclStart() {
		d := p.parseDecl()
		s := &DeclStmt{Decl: d}
		p.finish(s, start)
		return s
	}

	// labeled statement: skip the label
	if p.isIdent() && p.isAt(1, ":") {
		switch p.peek(2).text {
		case "for", "while", "repeat", "do", "if", "switch":
			p.advance()
			p.advance()
			start = p.start()
		}
	}

	var s Stmt
	switch p.tok().text {
	case "if":
		s = p.parseIf()
	case "guard":
		p.advance()
		g := &GuardStmt{Conds: p.parseConditions()}
		p.want("else")
		g.Else = p.parseBlock()
		s = g
	case "switch":
		s = p.parseSwitch()
	case "for":
		s = p.parseFor()
	case "while":
		p.advance()
		w := &WhileStmt{Conds: p.parseConditions()}
		w.Body = p.parseBlock()
		s = w
	case "repeat":
		p.advance()
		r := &RepeatWhileStmt{Body: p.parseBlock()}
		p.want("while")
		r.Cond = p.parseExpr()
		s = r
	case "return":
		p.advance()
		r := &ReturnStmt{}
		if p.continuesStmt() {
			r.X = p.parseExpr()
		}
		s = r
	case "throw":
		p.advance()
		s = &ThrowStmt{X: p.parseExpr()}
	case "break":
		p.advance()
		b := &BreakStmt{}
		if p.isIdent() && !p.tok().nlBefore {
			b.Label = p.advance().text
		}
		s = b
	case "continue":
		p.advance()
		c := &ContinueStmt{}
		if p.isIdent() && !p.tok().nlBefore {
			c.Label = p.advance().text
		}
		s = c
	case "fallthrough":
		p.advance()
		s = &FallthroughStmt{}
	case "defer":
		p.advance()
		s = &DeferStmt{Body: p.parseBlock()}
	case "do":
		s = p.parseDo()
	default:
		if p.at(tKeyword) && !isExprKeyword(p.tok().text) {
			p.errorf("unexpected keyword")
		}
		s = &ExprStmt{X: p.parseExpr()}
	}
	p.finish(s.(ranged), start)
	return s
}

// continuesStmt reports whether the current token belongs to the
// statement being parsed (same line, not a closing brace or separator).
func (p *parser) continuesStmt() bool {
	t := p.tok()
	if t.kind == tEOF || t.nlBefore {
		return false
	}
	return !(t.kind == tPunct && (t.text == "}" || t.text == ";"))
}

func isExprKeyword(s string) bool {
	switch s {
	case "self", "Self", "super", "nil", "true", "false", "try", "init":
		return true
	}
	return false
}

func (p *parser) parseIf() *IfStmt {
	p.want("if")
	s := &IfStmt{Conds: p.parseConditions()}
	s.Then = p.parseBlock()
	if p.got("else") {
		if p.is("if") {
			start := p.start()
			s.ElseIf = p.parseIf()
			p.finish(s.ElseIf, start)
		} else {
			s.Else = p.parseBlock()
		}
	}
	return s
}

func (p *parser) parseConditions() []*Condition {
	p.noTrailing++
	defer func() { p.noTrailing-- }()

	var conds []*Condition
	for {
		start := p.start()
		c := &Condition{}
		switch {
		case p.is("let") || p.is("var"):
			c.Kind = CondOptionalBinding
			c.Immutable = p.advance().text == "let"
			c.Pattern = p.parseBindingPattern()
			if p.got(":") {
				c.Type = p.parseType()
			}
			if p.got("=") {
				c.Init = p.parseExpr()
			} else if id, ok := c.Pattern.(*IdentPattern); ok {
				// if let x { ... } shorthand
				c.Init = &IdentExpr{Name: id.Name}
				c.Init.(*IdentExpr).setRange(id.Range())
			} else {
				p.errorf("expected '=' in optional binding")
			}
		case p.is("case"):
			p.advance()
			c.Kind = CondCase
			c.Pattern = p.parseCasePattern(false)
			p.want("=")
			c.Init = p.parseExpr()
		case p.is("#available") || p.is("#unavailable"):
			p.advance()
			c.Kind = CondAvailability
			argStart := p.tok().rng.End
			p.skipBalanced("(", ")")
			c.Availability = p.src[argStart.Offset : p.prevEnd().Offset-1]
		default:
			c.Kind = CondExpr
			c.X = p.parseExpr()
		}
		p.finish(c, start)
		conds = append(conds, c)
		if !p.got(",") {
			return conds
		}
	}
}

func (p *parser) parseSwitch() *SwitchStmt {
	p.want("switch")
	p.noTrailing++
	s := &SwitchStmt{Subject: p.parseExpr()}
	p.noTrailing--
	p.want("{")
	for !p.got("}") {
		start := p.start()
		p.parseAttributes() // @unknown
		cc := &CaseClause{}
		switch {
		case p.got("default"):
			cc.Default = true
		case p.got("case"):
			for {
				is := p.start()
				item := &CaseItem{Pattern: p.parseCasePattern(false)}
				if p.got("where") {
					item.Where = p.parseExpr()
				}
				p.finish(item, is)
				cc.Items = append(cc.Items, item)
				if !p.got(",") {
					break
				}
			}
		default:
			p.errorf("expected 'case' or 'default'")
		}
		p.want(":")
		cc.Body = p.parseStmtsUntil("case", "default", "}", "@")
		p.finish(cc, start)
		s.Cases = append(s.Cases, cc)
	}
	return s
}

func (p *parser) parseFor() *ForInStmt {
	p.want("for")
	s := &ForInStmt{}
	if p.got("case") {
		s.Pattern = p.parseCasePattern(false)
	} else {
		s.Pattern = p.parseBindingPattern()
	}
	if p.got(":") {
		start := s.Pattern.Range().Start
		tp := &TypedPattern{Pattern: s.Pattern, Type: p.parseType()}
		p.finish(tp, start)
		s.Pattern = tp
	}
	p.want("in")
	p.noTrailing++
	s.Seq = p.parseExpr()
	if p.got("where") {
		s.Where = p.parseExpr()
	}
	p.noTrailing--
	s.Body = p.parseBlock()
	return s
}

func (p *parser) parseDo() *DoStmt {
	p.want("do")
	s := &DoStmt{Body: p.parseBlock()}
	for p.is("catch") {
		start := p.start()
		p.advance()
		c := &CatchClause{}
		p.noTrailing++
		if !p.is("{") {
			c.Pattern = p.parseCasePattern(false)
			if p.got("where") {
				c.Where = p.parseExpr()
			}
		}
		p.noTrailing--
		c.Body = p.parseBlock()
		p.finish(c, start)
		s.Catches = append(s.Catches, c)
	}
	return s
}

// ----------------------------------------------------------------------------
// Patterns

// parseBindingPattern parses the pattern of a let/var declaration or a
// for-in loop: a name, _, or a tuple of those.
func (p *parser) parseBindingPattern() Pattern {
	start := p.start()
	var pat Pattern
	switch {
	case p.is("_"):
		p.advance()
		pat = &WildcardPattern{}
	case p.is("("):
		pat = p.parseTuplePattern(p.parseBindingPattern)
	default:
		pat = &IdentPattern{Name: p.ident(false)}
	}
	p.finish(pat.(ranged), start)
	return pat
}

func (p *parser) parseTuplePattern(elem func() Pattern) *TuplePattern {
	start := p.start()
	p.want("(")
	tp := &TuplePattern{}
	for !p.got(")") {
		es := p.start()
		e := &TuplePatternElem{}
		if (p.isIdent() || p.at(tKeyword)) && p.isAt(1, ":") {
			e.Label = p.advance().text
			p.advance()
		}
		e.Pattern = elem()
		p.finish(e, es)
		tp.Elems = append(tp.Elems, e)
		if !p.got(",") {
			p.want(")")
			break
		}
	}
	p.finish(tp, start)
	return tp
}

// parseCasePattern parses a switch-case, if-case, for-case or catch
// pattern. Inside let/var, bare names bind instead of matching.
func (p *parser) parseCasePattern(binding bool) Pattern {
	start := p.start()
	var pat Pattern
	switch {
	case p.is("_") && !p.isAt(1, "."):
		p.advance()
		pat = &WildcardPattern{}
	case p.is("let") || p.is("var"):
		imm := p.advance().text == "let"
		pat = &BindingPattern{Immutable: imm, Pattern: p.parseCasePattern(true)}
	case p.is("is"):
		p.advance()
		pat = &IsPattern{Type: p.parseType()}
	case p.is("(") && p.tupleOfPatterns():
		pat = p.parseTuplePattern(func() Pattern { return p.parseCasePattern(binding) })
	case p.is("."):
		p.advance()
		ec := &EnumCasePattern{Name: p.ident(true)}
		if p.is("(") && !p.tok().spaceBefore {
			ec.Tuple = p.parseTuplePattern(func() Pattern { return p.parseCasePattern(binding) })
		}
		pat = ec
	case binding && p.isIdent():
		pat = &IdentPattern{Name: p.advance().text}
	default:
		pat = p.parseQualifiedCaseOrExpr(binding)
	}
	p.finish(pat.(ranged), start)

	for {
		switch {
		case p.is("?") && !p.tok().spaceBefore:
			p.advance()
			op := &OptionalPattern{Pattern: pat}
			p.finish(op, start)
			pat = op
		case p.is("as"):
			p.advance()
			tp := &TypedPattern{Pattern: pat, Type: p.parseType()}
			p.finish(tp, start)
			pat = tp
		default:
			return pat
		}
	}
}

// tupleOfPatterns reports whether the parenthesized group at the current
// position contains pattern syntax (bindings, wildcards, enum cases).
func (p *parser) tupleOfPatterns() bool {
	depth := 0
	for i := 0; ; i++ {
		t := p.peek(i)
		if t.kind == tEOF {
			return false
		}
		if t.kind == tPunct {
			switch t.text {
			case "(", "[":
				depth++
			case ")", "]":
				depth--
				if depth == 0 {
					return false
				}
			case ".":
				prev := p.peek(i - 1)
				if depth == 1 && (prev.text == "(" || prev.text == ",") && prev.kind == tPunct {
					return true
				}
			}
		}
		if depth == 1 && (t.text == "let" || t.text == "var" || t.text == "_" || t.text == "is") {
			return true
		}
	}
}

// parseQualifiedCaseOrExpr handles Type.case(...) patterns and falls back
// to expression patterns such as literals and ranges.
func (p *parser) parseQualifiedCaseOrExpr(binding bool) Pattern {
	var pat Pattern
	if p.isIdent() && p.isAt(1, ".") {
		p.speculate(func() {
			start := p.start()
			parts := []string{p.ident(false)}
			for p.got(".") {
				parts = append(parts, p.ident(true))
			}
			if !p.is("(") || p.tok().spaceBefore || !p.tupleOfPatterns() {
				p.errorf("not an enum case pattern")
			}
			ti := &TypeIdent{}
			for _, n := range parts[:len(parts)-1] {
				ti.Parts = append(ti.Parts, &TypePart{Name: n})
			}
			p.finish(ti, start)
			ec := &EnumCasePattern{Type: ti, Name: parts[len(parts)-1]}
			ec.Tuple = p.parseTuplePattern(func() Pattern { return p.parseCasePattern(binding) })
			pat = ec
		})
	}
	if pat != nil {
		return pat
	}
	p.noTrailing++
	// stop before '=' so that "if case 1 = x" keeps its initializer
	x := p.parseBinary(precTernary, false)
	p.noTrailing--
	return &ExprPattern{X: x}
}
