package kotlin

import (
	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

func (t *Translator) varDecl(f frame, d *syntax.VarDecl) tokens.Sequence {
	switch d.Kind {
	case syntax.VarStored:
		decls := make([]tokens.Sequence, len(d.Inits))
		for i, pi := range d.Inits {
			decls[i] = t.storedVar(f, d, pi).WithOrigin(pi)
		}
		return lines(decls...)
	case syntax.VarComputed:
		get := spaced(seqOf(tokens.Kw("get"), tokens.Open("("), tokens.Close(")")), t.block(t.body(f), d.Getter.Body))
		return t.accessors(t.varHead(f, d, "val"), get.WithOrigin(d.Getter))
	case syntax.VarAccessors:
		var acc []tokens.Sequence
		if d.Getter != nil {
			acc = append(acc, spaced(seqOf(tokens.Kw("get"), tokens.Open("("), tokens.Close(")")), t.block(t.body(f), d.Getter.Body)).WithOrigin(d.Getter))
		}
		param := paramOr(d.Setter.Param, "newValue")
		set := seqOf(tokens.Kw("set"), tokens.Open("("), tokens.Ident(identName(param)), tokens.Close(")"))
		acc = append(acc, spaced(set, t.block(t.body(f), d.Setter.Body)).WithOrigin(d.Setter))
		return t.accessors(t.varHead(f, d, "var"), acc...)
	case syntax.VarObserved:
		head := t.varHead(f, d, "var")
		if d.Init != nil {
			head = spaced(head, seqOf(tokens.Sym("=")), t.expr(f, d.Init))
		} else if _, ok := d.Type.(*syntax.OptionalType); ok {
			head = spaced(head, seqOf(tokens.Sym("="), space(), tokens.Kw("null")))
		}
		return t.accessors(head, t.observer(f, d))
	case syntax.VarRequirement:
		kw := "val"
		if d.Settable {
			kw = "var"
		}
		return t.varHead(f, d, kw)
	}
	fail(d, "unknown variable kind %d", d.Kind)
	return tokens.Sequence{}
}

func paramOr(name, def string) string {
	if name == "" {
		return def
	}
	return name
}

// varHead renders "[mods] val|var name: T" of a declaration with accessors.
func (t *Translator) varHead(f frame, d *syntax.VarDecl, kw string) tokens.Sequence {
	name := t.memberName(f, d.Name).Append(t.annotation(d.Type))
	return spaced(t.declHead(f, &d.Decorations), seqOf(tokens.Kw(kw)), name)
}

// accessors places each accessor on its own line, indented under head.
func (t *Translator) accessors(head tokens.Sequence, acc ...tokens.Sequence) tokens.Sequence {
	var body tokens.Sequence
	for _, a := range acc {
		body = body.Suffix(nl()).Append(a)
	}
	return head.Append(body.Indent(t.indent))
}

// observer rewrites willSet and didSet blocks into one explicit setter:
// old value binding, willSet statements, backing field assignment, didSet
// statements.
func (t *Translator) observer(f frame, d *syntax.VarDecl) tokens.Sequence {
	newName, oldName := "newValue", "oldValue"
	var will, did []syntax.Stmt
	if d.WillSet != nil {
		newName = paramOr(d.WillSet.Param, newName)
		will = d.WillSet.Body.Stmts
	}
	if d.DidSet != nil {
		oldName = paramOr(d.DidSet.Param, oldName)
		did = d.DidSet.Body.Stmts
	}
	inner := t.body(f)
	var body []tokens.Sequence
	if references(did, oldName) {
		body = append(body, seqOf(tokens.Kw("val"), space(), tokens.Ident(identName(oldName)), space(), tokens.Sym("="), space(), tokens.Kw("field")))
	}
	body = append(body,
		t.stmts(inner, will),
		seqOf(tokens.Kw("field"), space(), tokens.Sym("="), space(), tokens.Ident(identName(newName))),
		t.stmts(inner, did),
	)
	set := seqOf(tokens.Kw("set"), tokens.Open("("), tokens.Ident(identName(newName)), tokens.Close(")"))
	return spaced(set, t.braced(lines(body...)))
}

// references reports whether name is used as an identifier in stmts.
func references(stmts []syntax.Stmt, name string) bool {
	found := false
	for _, s := range stmts {
		syntax.Inspect(s, func(n syntax.Node) bool {
			if id, ok := n.(*syntax.IdentExpr); ok && id.Name == name {
				found = true
			}
			return !found
		})
	}
	return found
}

// storedVar renders one pattern of a stored let or var declaration.
func (t *Translator) storedVar(f frame, d *syntax.VarDecl, pi *syntax.PatternInit) tokens.Sequence {
	kw := "var"
	if d.Immutable {
		kw = "val"
	}
	head := t.declHead(f, &d.Decorations)
	_, iuo := pi.Type.(*syntax.ImplicitlyUnwrappedType)
	lazy := d.HasModifier("lazy")

	var name tokens.Sequence
	if tp, ok := pi.Pattern.(*syntax.TuplePattern); ok {
		name = t.loopPattern(tp)
	} else {
		name = t.memberName(f, patternName(pi.Pattern))
	}
	name = name.Append(t.annotation(pi.Type))

	var out tokens.Sequence
	switch {
	case lazy && pi.Init != nil:
		out = spaced(head, seqOf(tokens.Kw("val")), name, seqOf(tokens.Kw("by"), space(), tokens.Ident("lazy")), t.lazyBody(f, pi.Init))
	case iuo && pi.Init == nil && !d.Immutable:
		out = spaced(head, seqOf(tokens.Kw("lateinit"), space(), tokens.Kw("var")), name)
	case pi.Init != nil:
		out = spaced(head, seqOf(tokens.Kw(kw)), name, seqOf(tokens.Sym("=")), t.expr(f, pi.Init))
	case isOptional(pi.Type) && !f.protocol:
		out = spaced(head, seqOf(tokens.Kw(kw)), name, seqOf(tokens.Sym("="), space(), tokens.Kw("null")))
	default:
		out = spaced(head, seqOf(tokens.Kw(kw)), name)
	}
	if restrictedSetter(&d.Decorations) && !d.Immutable {
		out = t.accessors(out, seqOf(tokens.Kw("private"), space(), tokens.Kw("set")))
	}
	return out
}

func isOptional(ty syntax.Type) bool {
	_, ok := ty.(*syntax.OptionalType)
	return ok
}

func restrictedSetter(dec *syntax.Decorations) bool {
	return dec.HasModifier("private(set)") || dec.HasModifier("fileprivate(set)")
}

// lazyBody renders the lazy initializer block. An immediately invoked
// closure contributes its body directly instead of being called again.
func (t *Translator) lazyBody(f frame, init syntax.Expr) tokens.Sequence {
	if call, ok := init.(*syntax.CallExpr); ok && len(call.Args) == 0 && call.Trailing == nil {
		fun := call.Fun
		if p, ok := fun.(*syntax.ParenExpr); ok {
			fun = p.X
		}
		if c, ok := fun.(*syntax.ClosureExpr); ok && len(c.Params) == 0 {
			return t.closure(f, c, "lazy")
		}
	}
	return spaced(seqOf(tokens.Open("{")), t.expr(f, init), seqOf(tokens.Close("}")))
}
