package kotlin

import (
	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

func (t *Translator) decl(f frame, d syntax.Decl) tokens.Sequence {
	var out tokens.Sequence
	switch d := d.(type) {
	case nil:
		fail(nil, "missing declaration")
	case *syntax.ImportDecl:
		// Kotlin imports cannot be derived from Swift modules.
		return tokens.Sequence{}
	case *syntax.VarDecl:
		out = t.varDecl(f, d)
	case *syntax.FuncDecl:
		out = t.funcDecl(f, d)
	case *syntax.InitDecl:
		out = t.initDecl(f, d)
	case *syntax.DeinitDecl:
		out = lines(
			seqOf(t.fixmeTok(d, "deinit has no Kotlin equivalent")),
			spaced(seqOf(tokens.Kw("protected"), space(), tokens.Kw("fun"), space(), tokens.Ident("finalize"), tokens.Open("("), tokens.Close(")")), t.block(t.body(f), d.Body)),
		)
	case *syntax.ClassDecl:
		out = t.classDecl(f, d)
	case *syntax.StructDecl:
		out = t.structDecl(f, d)
	case *syntax.ProtocolDecl:
		out = t.protocolDecl(f, d)
	case *syntax.ExtensionDecl:
		out = t.extensionDecl(f, d)
	case *syntax.EnumDecl:
		out = t.enumDecl(f, d)
	case *syntax.TypealiasDecl:
		out = t.typealias(f, d)
	case *syntax.SubscriptDecl:
		out = t.subscriptDecl(f, d)
	default:
		fail(d, "unhandled declaration %T", d)
	}
	if name := selfName(d); name != "" {
		out = replaceSelf(out, name)
	}
	return out.WithOrigin(d)
}

// selfName is the type that Self refers to inside d, if d declares or
// extends one.
func selfName(d syntax.Decl) string {
	switch d := d.(type) {
	case *syntax.ClassDecl:
		return identName(d.Name)
	case *syntax.StructDecl:
		return identName(d.Name)
	case *syntax.EnumDecl:
		return identName(d.Name)
	case *syntax.ProtocolDecl:
		return identName(d.Name)
	case *syntax.ExtensionDecl:
		if d.Type != nil {
			return d.Type.Name()
		}
	}
	return ""
}

// replaceSelf spells Self as the owning type, which Kotlin has no
// keyword for.
func replaceSelf(s tokens.Sequence, name string) tokens.Sequence {
	return s.Replace(func(tok tokens.Token) bool {
		return tok.Text == "Self" && (tok.Kind == tokens.Identifier || tok.Kind == tokens.Keyword)
	}, func(tok tokens.Token) []tokens.Token {
		tok.Text = name
		return []tokens.Token{tok}
	}, 0)
}

// body is the frame for statements inside a function or accessor body.
func (t *Translator) body(f frame) frame {
	return frame{owner: f.owner, ext: f.ext}
}

// memberName qualifies name with the extended type inside extensions.
func (t *Translator) memberName(f frame, name string) tokens.Sequence {
	s := seqOf(tokens.Ident(identName(name)))
	if f.ext != nil {
		s = t.typeIdent(f.ext.Type).Suffix(tokens.Delim(".")).Append(s)
	}
	return s
}

// declHead renders attributes and modifiers, adding the extension's access
// level to extension members.
func (t *Translator) declHead(f frame, dec *syntax.Decorations, skip ...string) tokens.Sequence {
	head := t.head(dec, skip...)
	if f.ext == nil || hasAccessModifier(dec) {
		return head
	}
	return spaced(t.modifiers(&syntax.Decorations{Mods: accessModifiers(&f.ext.Decorations)}), head)
}

var accessLevels = map[string]bool{
	"public": true, "private": true, "fileprivate": true, "internal": true, "open": true,
}

func hasAccessModifier(dec *syntax.Decorations) bool {
	return len(accessModifiers(dec)) > 0
}

func accessModifiers(dec *syntax.Decorations) []string {
	var mods []string
	for _, m := range dec.Mods {
		if accessLevels[m] {
			mods = append(mods, m)
		}
	}
	return mods
}

// operatorNames maps Swift operator functions to Kotlin operator
// conventions.
var operatorNames = map[string]string{
	"+":  "plus",
	"-":  "minus",
	"*":  "times",
	"/":  "div",
	"%":  "rem",
	"+=": "plusAssign",
	"-=": "minusAssign",
	"*=": "timesAssign",
	"/=": "divAssign",
	"!":  "not",
}

func (t *Translator) funcDecl(f frame, d *syntax.FuncDecl) tokens.Sequence {
	var fixme tokens.Sequence
	name := t.memberName(f, d.Name)
	head := t.declHead(f, &d.Decorations)
	if !isIdentifier(d.Name) {
		op, ok := operatorNames[d.Name]
		if !ok {
			op = "operator"
			fixme = seqOf(t.fixmeTok(d, "operator %s has no Kotlin convention", d.Name))
		}
		name = t.memberName(f, op)
		head = spaced(head, seqOf(tokens.Kw("operator")))
	}
	head = spaced(head, seqOf(tokens.Kw("fun")), t.genericParams(d.Generics))

	params := t.params(f, d.Params)
	if d.HasModifier("override") {
		params = stripDefaults(params)
	}
	sig := name.Append(params)
	if d.Result != nil && !isVoid(d.Result) {
		sig = sig.Append(t.annotation(d.Result))
	}
	sig = spaced(head, sig, t.where(d.Where, d.Generics))

	var out tokens.Sequence
	switch {
	case d.Body == nil:
		out = sig
	case singleReturn(d.Body) != nil:
		out = spaced(sig, seqOf(tokens.Sym("=")), t.expr(t.body(f), singleReturn(d.Body)))
	default:
		out = spaced(sig, t.block(t.body(f), d.Body))
	}
	return lines(fixme, out)
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c == '_' || c == '`' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

// singleReturn returns the operand of a body that is exactly one return
// statement with a value.
func singleReturn(b *syntax.Block) syntax.Expr {
	if b == nil || len(b.Stmts) != 1 {
		return nil
	}
	if r, ok := b.Stmts[0].(*syntax.ReturnStmt); ok {
		return r.X
	}
	return nil
}

func (t *Translator) genericParams(g *syntax.GenericParams) tokens.Sequence {
	if g == nil || len(g.Params) == 0 {
		return tokens.Sequence{}
	}
	parts := make([]tokens.Sequence, len(g.Params))
	for i, p := range g.Params {
		parts[i] = seqOf(tokens.Ident(p.Name))
		if p.Constraint != nil {
			parts[i] = spaced(parts[i], seqOf(tokens.Delim(":")), t.typ(p.Constraint))
		}
		parts[i] = parts[i].WithOrigin(p)
	}
	return angles(commaList(parts)).WithOrigin(g)
}

// where renders conformance requirements as a Kotlin where clause.
// Same-type requirements have no Kotlin form and are skipped.
func (t *Translator) where(reqs []*syntax.Requirement, g *syntax.GenericParams) tokens.Sequence {
	if g != nil {
		reqs = append(append([]*syntax.Requirement(nil), g.Where...), reqs...)
	}
	var parts []tokens.Sequence
	for _, r := range reqs {
		if r.Op != ":" {
			continue
		}
		parts = append(parts, spaced(t.typ(r.Left), seqOf(tokens.Delim(":")), t.typ(r.Right)).WithOrigin(r))
	}
	if len(parts) == 0 {
		return tokens.Sequence{}
	}
	return spaced(seqOf(tokens.Kw("where")), commaList(parts))
}

func (t *Translator) params(f frame, ps []*syntax.Param) tokens.Sequence {
	parts := make([]tokens.Sequence, len(ps))
	for i, p := range ps {
		s := seqOf(tokens.Ident(identName(p.Name))).Append(t.annotation(p.Type))
		if p.Variadic {
			s = s.Prefix(tokens.Kw("vararg"), space())
		}
		if attrs := t.attributes(p.Attrs); !attrs.IsEmpty() {
			s = spaced(attrs, s)
		}
		if p.Default != nil {
			s = spaced(s, seqOf(tokens.Sym("=").WithOrigin(p)), t.expr(f, p.Default))
		}
		parts[i] = s.WithOrigin(p)
	}
	return parens(commaList(parts))
}

// stripDefaults removes default-value clauses from a rendered parameter
// list. A clause runs from its = up to the next top-level comma or the
// list's closing parenthesis.
func stripDefaults(params tokens.Sequence) tokens.Sequence {
	var out []tokens.Token
	depth := 0
	removing := false
	for i := 0; i < params.Len(); i++ {
		tok := params.At(i)
		switch tok.Kind {
		case tokens.StartOfScope:
			depth++
		case tokens.EndOfScope:
			depth--
			if depth == 0 {
				removing = false
			}
		case tokens.Delimiter:
			if depth == 1 && tok.Text == "," {
				removing = false
			}
		case tokens.Symbol:
			if _, ok := tok.Origin.(*syntax.Param); ok && depth == 1 && tok.Text == "=" {
				removing = true
				for len(out) > 0 && out[len(out)-1].Kind == tokens.Whitespace {
					out = out[:len(out)-1]
				}
			}
		}
		if !removing {
			out = append(out, tok)
		}
	}
	return tokens.New(out...)
}

// initDecl renders a secondary constructor. A super.init or self.init call
// among the top-level body statements moves into the delegation clause.
func (t *Translator) initDecl(f frame, d *syntax.InitDecl) tokens.Sequence {
	head := t.declHead(f, &d.Decorations, "override")
	sig := spaced(head, seqOf(tokens.Kw("constructor")).Append(t.params(f, d.Params)))

	if d.Body == nil {
		return sig
	}
	inner := t.body(f)
	stmts := d.Body.Stmts
	for i, s := range stmts {
		call, ok := delegation(s)
		if !ok {
			continue
		}
		translated := t.expr(inner, call)
		open := translated.Index(0, func(tok tokens.Token) bool { return tok.Is(tokens.StartOfScope, "(") })
		if open < 0 {
			fail(call, "delegating call without arguments")
		}
		end, ok := translated.BalancedScopeEnd("(", ")", open)
		if !ok {
			fail(call, "unbalanced delegating call")
		}
		sig = spaced(sig, seqOf(tokens.Delim(":")), translated.Slice(0, end+1))
		stmts = append(append([]syntax.Stmt(nil), stmts[:i]...), stmts[i+1:]...)
		break
	}
	body := t.stmts(inner, stmts)
	if body.IsEmpty() && len(stmts) < len(d.Body.Stmts) {
		return sig
	}
	return spaced(sig, t.braced(body).WithOrigin(d.Body))
}

// delegation reports whether s is a super.init(...) or self.init(...)
// call, possibly marked with try.
func delegation(s syntax.Stmt) (*syntax.CallExpr, bool) {
	es, ok := s.(*syntax.ExprStmt)
	if !ok {
		return nil, false
	}
	x := es.X
	if tr, ok := x.(*syntax.TryExpr); ok {
		x = tr.X
	}
	call, ok := x.(*syntax.CallExpr)
	if !ok {
		return nil, false
	}
	m, ok := call.Fun.(*syntax.MemberExpr)
	if !ok || m.Name != "init" {
		return nil, false
	}
	switch m.X.(type) {
	case *syntax.SuperExpr, *syntax.SelfExpr:
		return call, true
	}
	return nil, false
}

func (t *Translator) typealias(f frame, d *syntax.TypealiasDecl) tokens.Sequence {
	if d.Assoc {
		return seqOf(t.fixmeTok(d, "associated type %s has no Kotlin equivalent", d.Name))
	}
	name := seqOf(tokens.Ident(identName(d.Name))).Append(t.genericParams(d.Generics))
	return spaced(t.declHead(f, &d.Decorations), seqOf(tokens.Kw("typealias")), name, seqOf(tokens.Sym("=")), t.typ(d.Type))
}

// subscriptDecl renders get and set operator functions.
func (t *Translator) subscriptDecl(f frame, d *syntax.SubscriptDecl) tokens.Sequence {
	head := spaced(t.declHead(f, &d.Decorations), seqOf(tokens.Kw("operator"), space(), tokens.Kw("fun")))
	var out []tokens.Sequence
	if d.Getter != nil {
		get := spaced(head, t.memberName(f, "get").Append(t.params(f, d.Params)).Append(t.annotation(d.Result)))
		if d.Getter.Body != nil {
			get = spaced(get, t.block(t.body(f), d.Getter.Body))
		}
		out = append(out, get.WithOrigin(d.Getter))
	}
	if d.Setter != nil {
		name := d.Setter.Param
		if name == "" {
			name = "newValue"
		}
		value := &syntax.Param{Name: name, Type: d.Result}
		params := t.params(f, append(append([]*syntax.Param(nil), d.Params...), value))
		set := spaced(head, t.memberName(f, "set").Append(params))
		if d.Setter.Body != nil {
			set = spaced(set, t.block(t.body(f), d.Setter.Body))
		}
		out = append(out, set.WithOrigin(d.Setter))
	}
	return tokens.Join(out, nl(), nl())
}
