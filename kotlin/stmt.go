package kotlin

import (
	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

func (t *Translator) stmt(f frame, s syntax.Stmt) tokens.Sequence {
	var out tokens.Sequence
	switch s := s.(type) {
	case nil:
		fail(nil, "missing statement")
	case *syntax.DeclStmt:
		out = t.decl(f, s.Decl)
	case *syntax.ExprStmt:
		out = t.expr(f, s.X)
	case *syntax.IfStmt:
		out = t.ifStmt(f, s)
	case *syntax.GuardStmt:
		out = t.guard(f, s)
	case *syntax.SwitchStmt:
		out = t.switchStmt(f, s)
	case *syntax.ForInStmt:
		out = t.forIn(f, s)
	case *syntax.WhileStmt:
		out = t.while(f, s)
	case *syntax.RepeatWhileStmt:
		out = spaced(
			seqOf(tokens.Kw("do")),
			t.block(f, s.Body),
			seqOf(tokens.Kw("while")),
			parens(t.expr(f, s.Cond)),
		)
	case *syntax.ReturnStmt:
		kw := tokens.Kw("return")
		if f.inClosure && f.closure != "" {
			kw = tokens.Kw("return@" + f.closure)
		}
		out = seqOf(kw)
		if s.X != nil {
			out = spaced(out, t.expr(f, s.X))
		}
	case *syntax.BreakStmt:
		out = seqOf(tokens.Kw(labelled("break", s.Label)))
	case *syntax.ContinueStmt:
		out = seqOf(tokens.Kw(labelled("continue", s.Label)))
	case *syntax.FallthroughStmt:
		out = seqOf(t.fixmeTok(s, "fallthrough is not supported"))
	case *syntax.ThrowStmt:
		out = spaced(seqOf(tokens.Kw("throw")), t.expr(f, s.X))
	case *syntax.DeferStmt:
		// Reached only when defer is the last statement of its scope.
		out = t.stmts(f, s.Body.Stmts)
	case *syntax.DoStmt:
		out = t.do(f, s)
	default:
		fail(s, "unhandled statement %T", s)
	}
	return out.WithOrigin(s)
}

func labelled(kw, label string) string {
	if label == "" {
		return kw
	}
	return kw + "@" + label
}

// condition translates one if/while condition. Optional bindings become
// null checks; the declarations they introduce are returned separately.
func (t *Translator) condition(f frame, c *syntax.Condition) (test, decl tokens.Sequence) {
	switch c.Kind {
	case syntax.CondExpr:
		return t.expr(f, c.X), tokens.Sequence{}
	case syntax.CondOptionalBinding:
		name := patternName(c.Pattern)
		test = seqOf(
			tokens.Ident(identName(name)), space(),
			tokens.Sym("!=").WithOrigin(c), space(),
			tokens.Kw("null"),
		).WithOrigin(c)
		if id, ok := c.Init.(*syntax.IdentExpr); ok && id.Name == name && c.Type == nil {
			return test, tokens.Sequence{}
		}
		return test, t.binding(f, c)
	case syntax.CondCase:
		return t.caseTest(f, t.expr(f, c.Init), c.Pattern).WithOrigin(c), tokens.Sequence{}
	case syntax.CondAvailability:
		return seqOf(tokens.Kw("true")).WithOrigin(c), tokens.Sequence{}
	}
	fail(c, "unknown condition kind %d", c.Kind)
	return
}

// binding renders the val/var declaration of an optional binding.
func (t *Translator) binding(f frame, c *syntax.Condition) tokens.Sequence {
	kw := "var"
	if c.Immutable {
		kw = "val"
	}
	name := seqOf(tokens.Ident(identName(patternName(c.Pattern)))).Append(t.annotation(optional(c.Type)))
	return spaced(seqOf(tokens.Kw(kw)), name, seqOf(tokens.Sym("=")), t.expr(f, c.Init)).WithOrigin(c)
}

func optional(ty syntax.Type) syntax.Type {
	if ty == nil {
		return nil
	}
	if _, ok := ty.(*syntax.OptionalType); ok {
		return ty
	}
	return &syntax.OptionalType{Elem: ty}
}

func patternName(p syntax.Pattern) string {
	switch p := p.(type) {
	case *syntax.IdentPattern:
		return p.Name
	case *syntax.BindingPattern:
		return patternName(p.Pattern)
	case *syntax.TypedPattern:
		return patternName(p.Pattern)
	case *syntax.OptionalPattern:
		return patternName(p.Pattern)
	case *syntax.WildcardPattern:
		return "_"
	}
	fail(p, "expected a named pattern, found %T", p)
	return ""
}

// conditions translates a condition list, joining tests with && and
// collecting hoisted binding declarations.
func (t *Translator) conditions(f frame, conds []*syntax.Condition) (tests []tokens.Sequence, decls []tokens.Sequence) {
	for _, c := range conds {
		test, decl := t.condition(f, c)
		tests = append(tests, test)
		if !decl.IsEmpty() {
			decls = append(decls, decl)
		}
	}
	return tests, decls
}

func conjunction(tests []tokens.Sequence) tokens.Sequence {
	if len(tests) == 1 {
		return tests[0]
	}
	parts := make([]tokens.Sequence, len(tests))
	for i, test := range tests {
		if _, ops := splitConnectives(test); hasConnective(ops, "||") {
			test = parens(test)
		}
		parts[i] = test
	}
	return tokens.Join(parts, space(), tokens.Sym("&&"), space())
}

func hasConnective(ops []tokens.Token, text string) bool {
	for _, op := range ops {
		if op.Text == text {
			return true
		}
	}
	return false
}

func (t *Translator) ifStmt(f frame, s *syntax.IfStmt) tokens.Sequence {
	tests, decls := t.conditions(f, s.Conds)
	out := spaced(seqOf(tokens.Kw("if")), parens(conjunction(tests)), t.block(f, s.Then))
	switch {
	case s.ElseIf != nil && hasBindings(s.ElseIf.Conds):
		out = spaced(out, seqOf(tokens.Kw("else")), t.braced(t.ifStmt(f, s.ElseIf).WithOrigin(s.ElseIf)))
	case s.ElseIf != nil:
		out = spaced(out, seqOf(tokens.Kw("else")), t.ifStmt(f, s.ElseIf).WithOrigin(s.ElseIf))
	case s.Else != nil:
		out = spaced(out, seqOf(tokens.Kw("else")), t.block(f, s.Else))
	}
	return lines(append(decls, out)...)
}

func hasBindings(conds []*syntax.Condition) bool {
	for _, c := range conds {
		if c.Kind == syntax.CondOptionalBinding {
			if id, ok := c.Init.(*syntax.IdentExpr); ok && id.Name == patternName(c.Pattern) && c.Type == nil {
				continue
			}
			return true
		}
	}
	return false
}

// guard translates an early exit. A lone optional binding becomes an
// elvis declaration; anything else becomes an if on the inverted
// conditions.
func (t *Translator) guard(f frame, s *syntax.GuardStmt) tokens.Sequence {
	if len(s.Conds) == 1 && s.Conds[0].Kind == syntax.CondOptionalBinding {
		c := s.Conds[0]
		var exit tokens.Sequence
		switch len(s.Else.Stmts) {
		case 0:
			exit = seqOf(tokens.Kw("return"))
		case 1:
			exit = t.stmt(f, s.Else.Stmts[0])
		default:
			exit = spaced(seqOf(tokens.Kw("run")), t.block(f, s.Else))
		}
		return spaced(t.binding(f, c), seqOf(tokens.Sym("?:")), exit)
	}

	var inverted []tokens.Sequence
	var decls []tokens.Sequence
	for _, c := range s.Conds {
		test, decl := t.condition(f, c)
		if !decl.IsEmpty() {
			decls = append(decls, decl)
		}
		inverted = append(inverted, t.invert(test))
	}
	cond := tokens.Join(inverted, space(), tokens.Sym("||"), space())
	return lines(append(decls, spaced(seqOf(tokens.Kw("if")), parens(cond), t.block(f, s.Else)))...)
}

func (t *Translator) while(f frame, s *syntax.WhileStmt) tokens.Sequence {
	if !hasBindings(s.Conds) {
		tests, _ := t.conditions(f, s.Conds)
		return spaced(seqOf(tokens.Kw("while")), parens(conjunction(tests)), t.block(f, s.Body))
	}
	// while let: rebind on every iteration and leave the loop on nil.
	var head []tokens.Sequence
	for _, c := range s.Conds {
		test, decl := t.condition(f, c)
		if decl.IsEmpty() {
			head = append(head, spaced(seqOf(tokens.Kw("if")), parens(t.invert(test)), seqOf(tokens.Kw("break"))))
			continue
		}
		head = append(head, spaced(decl, seqOf(tokens.Sym("?:"), space(), tokens.Kw("break"))))
	}
	body := lines(append(head, t.stmts(f, s.Body.Stmts))...)
	return spaced(seqOf(tokens.Kw("while")), parens(seqOf(tokens.Kw("true"))), t.braced(body))
}

func (t *Translator) forIn(f frame, s *syntax.ForInStmt) tokens.Sequence {
	body := t.stmts(f, s.Body.Stmts)
	if s.Where != nil {
		skip := spaced(seqOf(tokens.Kw("if")), parens(t.invert(t.expr(f, s.Where))), seqOf(tokens.Kw("continue")))
		body = lines(skip, body)
	}
	head := spaced(t.loopPattern(s.Pattern), seqOf(tokens.Kw("in")), t.expr(f, s.Seq))
	return spaced(seqOf(tokens.Kw("for")), parens(head), t.braced(body))
}

// loopPattern renders a for-in binding; tuples destructure.
func (t *Translator) loopPattern(p syntax.Pattern) tokens.Sequence {
	switch p := p.(type) {
	case *syntax.TuplePattern:
		parts := make([]tokens.Sequence, len(p.Elems))
		for i, e := range p.Elems {
			parts[i] = t.loopPattern(e.Pattern)
		}
		return parens(commaList(parts)).WithOrigin(p)
	case *syntax.TypedPattern:
		return t.loopPattern(p.Pattern).Append(t.annotation(p.Type))
	}
	return seqOf(tokens.Ident(identName(patternName(p)))).WithOrigin(p)
}

func (t *Translator) do(f frame, s *syntax.DoStmt) tokens.Sequence {
	if len(s.Catches) == 0 {
		return spaced(seqOf(tokens.Kw("run")), t.block(f, s.Body))
	}
	out := spaced(seqOf(tokens.Kw("try")), t.block(f, s.Body))
	for _, c := range s.Catches {
		name, ty := "error", syntax.Type(nil)
		switch p := c.Pattern.(type) {
		case nil:
		case *syntax.IsPattern:
			ty = p.Type
		case *syntax.TypedPattern:
			name, ty = patternName(p.Pattern), p.Type
		case *syntax.BindingPattern, *syntax.IdentPattern:
			name = patternName(p)
		default:
			out = lines(out, seqOf(t.fixmeTok(p, "catch pattern narrowed to Throwable")))
		}
		typ := seqOf(tokens.Ident("Throwable"))
		if ty != nil {
			typ = t.typ(ty)
		}
		param := parens(seqOf(tokens.Ident(identName(name)), tokens.Delim(":"), space()).Append(typ))
		out = spaced(out, seqOf(tokens.Kw("catch")), param, t.block(f, c.Body)).WithOrigin(c)
	}
	return out
}

// switchStmt renders a when expression with one branch per case.
func (t *Translator) switchStmt(f frame, s *syntax.SwitchStmt) tokens.Sequence {
	var branches []tokens.Sequence
	for _, cc := range s.Cases {
		body := withoutBreak(cc.Body)
		if cc.Default && len(body) == 0 {
			continue
		}
		var cond tokens.Sequence
		if cc.Default {
			cond = seqOf(tokens.Kw("else"))
		} else {
			cond = t.caseItems(f, cc.Items)
		}
		branches = append(branches, spaced(cond, seqOf(tokens.Sym("->")), t.branchBody(f, body)).WithOrigin(cc))
	}
	head := spaced(seqOf(tokens.Kw("when")), parens(t.expr(f, s.Subject)))
	return spaced(head, t.braced(lines(branches...)))
}

func withoutBreak(body []syntax.Stmt) []syntax.Stmt {
	var out []syntax.Stmt
	for _, s := range body {
		if b, ok := s.(*syntax.BreakStmt); ok && b.Label == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (t *Translator) branchBody(f frame, body []syntax.Stmt) tokens.Sequence {
	s := t.stmts(f, body)
	if len(body) == 1 && !s.Contains(isLinebreak) {
		return s
	}
	return t.braced(s)
}

func (t *Translator) caseItems(f frame, items []*syntax.CaseItem) tokens.Sequence {
	parts := make([]tokens.Sequence, 0, len(items))
	for _, it := range items {
		p := t.casePattern(f, it.Pattern)
		if it.Where != nil {
			p = spaced(p, seqOf(tokens.Kw("if")), t.expr(f, it.Where))
		}
		parts = append(parts, p.WithOrigin(it))
	}
	return commaList(parts)
}

// casePattern renders a switch pattern as a when condition on the subject.
func (t *Translator) casePattern(f frame, p syntax.Pattern) tokens.Sequence {
	switch p := p.(type) {
	case *syntax.ExprPattern:
		if b, ok := p.X.(*syntax.BinaryExpr); ok && (b.Op == "..." || b.Op == "..<") {
			return spaced(seqOf(tokens.Kw("in")), t.expr(f, p.X))
		}
		return t.expr(f, p.X)
	case *syntax.EnumCasePattern:
		return t.enumCaseName(p)
	case *syntax.IsPattern:
		return spaced(seqOf(tokens.Kw("is")), t.typ(p.Type))
	case *syntax.TypedPattern:
		return spaced(seqOf(tokens.Kw("is")), t.typ(p.Type))
	case *syntax.BindingPattern:
		return t.casePattern(f, p.Pattern)
	case *syntax.IdentPattern, *syntax.WildcardPattern:
		return seqOf(tokens.Kw("else"))
	case *syntax.TuplePattern:
		elems := make([]tokens.Sequence, len(p.Elems))
		for i, e := range p.Elems {
			ep, ok := e.Pattern.(*syntax.ExprPattern)
			if !ok {
				return seqOf(t.fixmeTok(p, "tuple pattern with bindings"), nl(), tokens.Kw("else"))
			}
			elems[i] = t.expr(f, ep.X)
		}
		name := "Pair"
		if len(elems) == 3 {
			name = "Triple"
		}
		return seqOf(tokens.Ident(name)).Append(parens(commaList(elems)))
	case *syntax.OptionalPattern:
		return seqOf(t.fixmeTok(p, "optional pattern"), nl(), tokens.Kw("else"))
	}
	fail(p, "unhandled pattern %T", p)
	return tokens.Sequence{}
}

func (t *Translator) enumCaseName(p *syntax.EnumCasePattern) tokens.Sequence {
	name := seqOf(tokens.Delim("."), tokens.Ident(identName(p.Name)))
	if p.Type != nil {
		name = t.typ(p.Type).Append(name)
	}
	return name.WithOrigin(p)
}

// caseTest renders "if case pattern = subject" as a boolean test.
func (t *Translator) caseTest(f frame, subject tokens.Sequence, p syntax.Pattern) tokens.Sequence {
	switch p := p.(type) {
	case *syntax.ExprPattern:
		if b, ok := p.X.(*syntax.BinaryExpr); ok && (b.Op == "..." || b.Op == "..<") {
			return spaced(subject, seqOf(tokens.Kw("in")), t.expr(f, p.X))
		}
		return spaced(subject, seqOf(tokens.Sym("==")), t.expr(f, p.X))
	case *syntax.EnumCasePattern:
		if p.Tuple != nil {
			return spaced(subject, seqOf(tokens.Kw("is")), t.enumCaseName(p))
		}
		return spaced(subject, seqOf(tokens.Sym("==")), t.enumCaseName(p))
	case *syntax.IsPattern:
		return spaced(subject, seqOf(tokens.Kw("is")), t.typ(p.Type))
	case *syntax.TypedPattern:
		return spaced(subject, seqOf(tokens.Kw("is")), t.typ(p.Type))
	case *syntax.OptionalPattern:
		return spaced(subject, seqOf(tokens.Sym("!=")), seqOf(tokens.Kw("null")))
	case *syntax.BindingPattern:
		return t.caseTest(f, subject, p.Pattern)
	}
	return seqOf(tokens.Kw("true"))
}
