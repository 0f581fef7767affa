package kotlin

import (
	"strings"

	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

func (t *Translator) inherits(types []syntax.Type) tokens.Sequence {
	if len(types) == 0 {
		return tokens.Sequence{}
	}
	parts := make([]tokens.Sequence, len(types))
	for i, ty := range types {
		parts[i] = t.typ(ty)
	}
	return spaced(seqOf(tokens.Delim(":")), commaList(parts))
}

func (t *Translator) classDecl(f frame, d *syntax.ClassDecl) tokens.Sequence {
	inner := frame{owner: d}
	instance, statics := splitStatic(d.Members)
	name := seqOf(tokens.Ident(identName(d.Name))).Append(t.genericParams(d.Generics))
	head := spaced(t.head(&d.Decorations), seqOf(tokens.Kw("class")), name, t.inherits(d.Inherits), t.where(d.Where, d.Generics))
	body := t.braced(t.members(inner, declsAsItems(instance)))
	return spaced(head, t.hoist(inner, d, statics, body, companionLast))
}

// structDecl renders a data class whose stored properties become
// constructor parameters.
func (t *Translator) structDecl(f frame, d *syntax.StructDecl) tokens.Sequence {
	inner := frame{owner: d}
	instance, statics := splitStatic(d.Members)

	var params []tokens.Sequence
	var rest []syntax.Decl
	for _, m := range instance {
		if v, ok := m.(*syntax.VarDecl); ok && v.Kind == syntax.VarStored {
			for _, pi := range v.Inits {
				params = append(params, t.structParam(inner, v, pi).WithOrigin(pi))
			}
			continue
		}
		rest = append(rest, m)
	}
	if len(params) == 0 {
		params = append(params, seqOf(
			tokens.Kw("val"), space(), tokens.Ident("_dummy"), tokens.Delim(":"), space(),
			tokens.Ident("Int"), space(), tokens.Sym("="), space(), tokens.Num("0"),
		))
	}

	name := seqOf(tokens.Ident(identName(d.Name))).Append(t.genericParams(d.Generics))
	sig := name.Append(parens(commaList(params)))
	head := spaced(t.head(&d.Decorations), seqOf(tokens.Kw("data"), space(), tokens.Kw("class")), sig, t.where(d.Where, d.Generics))

	var items []tokens.Sequence
	var nodes []syntax.Node
	for _, m := range rest {
		s := t.checked(t.decl(inner, m), m)
		if ctor, ok := m.(*syntax.InitDecl); ok && !delegatesToSelf(ctor) {
			s = lines(seqOf(t.fixmeTok(ctor, "constructor must delegate to the primary constructor")), s)
		}
		items = append(items, s)
		nodes = append(nodes, m)
	}
	if len(items) == 0 && len(statics) == 0 {
		return head
	}
	body := t.braced(joinItems(nodes, items))
	return spaced(head, t.hoist(inner, d, statics, body, companionFirst))
}

func delegatesToSelf(d *syntax.InitDecl) bool {
	if d.Body == nil {
		return false
	}
	for _, s := range d.Body.Stmts {
		if call, ok := delegation(s); ok {
			_, self := call.Fun.(*syntax.MemberExpr).X.(*syntax.SelfExpr)
			return self
		}
	}
	return false
}

// structParam renders a stored property as a constructor parameter.
func (t *Translator) structParam(f frame, v *syntax.VarDecl, pi *syntax.PatternInit) tokens.Sequence {
	kw := "var"
	if v.Immutable {
		kw = "val"
	}
	ty := pi.Type
	if ty == nil {
		ty = literalType(pi.Init)
	}
	name := seqOf(tokens.Ident(identName(patternName(pi.Pattern)))).Append(t.annotation(ty))
	s := spaced(t.head(&v.Decorations), seqOf(tokens.Kw(kw)), name)
	switch {
	case pi.Init != nil:
		s = spaced(s, seqOf(tokens.Sym("=")), t.expr(f, pi.Init))
	case isOptional(ty):
		s = spaced(s, seqOf(tokens.Sym("="), space(), tokens.Kw("null")))
	}
	return s
}

// literalType infers the declared type of a parameter from a literal or
// constructor call initializer.
func literalType(x syntax.Expr) syntax.Type {
	name := ""
	switch x := x.(type) {
	case *syntax.LiteralExpr:
		switch x.Kind {
		case syntax.LitBool:
			name = "Bool"
		case syntax.LitInt:
			name = "Int"
		case syntax.LitFloat:
			name = "Double"
		case syntax.LitString:
			name = "String"
		}
	case *syntax.CallExpr:
		if id, ok := x.Fun.(*syntax.IdentExpr); ok && id.Name != "" && id.Name[0] >= 'A' && id.Name[0] <= 'Z' {
			return &syntax.TypeIdent{Parts: []*syntax.TypePart{{Name: id.Name, Args: id.GenericArgs}}}
		}
	}
	if name == "" {
		return nil
	}
	return &syntax.TypeIdent{Parts: []*syntax.TypePart{{Name: name}}}
}

func (t *Translator) protocolDecl(f frame, d *syntax.ProtocolDecl) tokens.Sequence {
	inner := frame{owner: d, protocol: true}
	instance, statics := splitStatic(d.Members)
	head := spaced(t.head(&d.Decorations), seqOf(tokens.Kw("interface")), seqOf(tokens.Ident(identName(d.Name))), t.inherits(d.Inherits))
	body := t.braced(t.members(inner, declsAsItems(instance)))
	return spaced(head, t.hoist(inner, d, statics, body, companionLast))
}

// extensionDecl renders extension members as top-level extension
// functions and properties on the extended type.
func (t *Translator) extensionDecl(f frame, d *syntax.ExtensionDecl) tokens.Sequence {
	var out []tokens.Sequence
	if len(d.Inherits) > 0 {
		out = append(out, seqOf(t.fixmeTok(d, "Kotlin does not support inheritance clauses in extensions: %s", typeList(d.Inherits))))
	}
	if len(d.Where) > 0 {
		out = append(out, seqOf(t.fixmeTok(d, "Kotlin does not support where clauses in extensions")))
	}
	inner := frame{ext: d}
	items := make([]syntax.Node, len(d.Members))
	seqs := make([]tokens.Sequence, len(d.Members))
	for i, m := range d.Members {
		items[i] = m
		switch m.(type) {
		case *syntax.ClassDecl, *syntax.StructDecl, *syntax.EnumDecl, *syntax.ProtocolDecl:
			seqs[i] = t.checked(t.decl(frame{}, m), m)
		default:
			seqs[i] = t.checked(t.decl(inner, m), m)
		}
	}
	out = append(out, joinItems(items, seqs))
	return lines(out...)
}

func typeList(types []syntax.Type) string {
	names := make([]string, len(types))
	for i, ty := range types {
		names[i] = typeText(ty)
	}
	return strings.Join(names, ", ")
}

// typeText is the Swift spelling of simple named types, used in
// diagnostics.
func typeText(ty syntax.Type) string {
	if id, ok := ty.(*syntax.TypeIdent); ok {
		return id.Name()
	}
	return "?"
}
