package kotlin

import (
	"strconv"

	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

func (t *Translator) typ(ty syntax.Type) tokens.Sequence {
	switch ty := ty.(type) {
	case nil:
		return tokens.Sequence{}
	case *syntax.TypeIdent:
		return t.typeIdent(ty)
	case *syntax.ArrayType:
		return seqOf(tokens.Ident("MutableList")).
			Append(angles(t.typ(ty.Elem))).WithOrigin(ty)
	case *syntax.DictType:
		return seqOf(tokens.Ident("MutableMap")).
			Append(angles(commaList([]tokens.Sequence{t.typ(ty.Key), t.typ(ty.Value)}))).
			WithOrigin(ty)
	case *syntax.OptionalType:
		inner := t.typ(ty.Elem)
		if _, ok := ty.Elem.(*syntax.FuncType); ok {
			inner = parens(inner)
		}
		return inner.Suffix(tokens.Sym("?")).WithOrigin(ty)
	case *syntax.ImplicitlyUnwrappedType:
		return t.typ(ty.Elem).WithOrigin(ty)
	case *syntax.FuncType:
		return t.funcType(ty)
	case *syntax.TupleType:
		return t.tupleType(ty)
	case *syntax.CompositionType:
		// Kotlin has no intersection types outside generic bounds.
		if len(ty.Types) == 0 {
			fail(ty, "empty type composition")
		}
		return t.typ(ty.Types[0]).WithOrigin(ty)
	case *syntax.MetatypeType:
		return seqOf(tokens.Ident("KClass")).Append(angles(t.typ(ty.Elem))).WithOrigin(ty)
	default:
		fail(ty, "unhandled type %T", ty)
	}
	return tokens.Sequence{}
}

func (t *Translator) typeIdent(ty *syntax.TypeIdent) tokens.Sequence {
	if len(ty.Parts) == 0 {
		fail(ty, "empty type name")
	}
	var s tokens.Sequence
	for i, p := range ty.Parts {
		if i > 0 {
			s = s.Suffix(tokens.Delim("."))
		}
		name := p.Name
		if i == len(ty.Parts)-1 {
			name = t.typeName(name)
		}
		s = s.Suffix(tokens.Ident(name).WithOrigin(p))
		if len(p.Args) > 0 {
			s = s.Append(t.typeArgs(p.Args))
		}
	}
	return s.WithOrigin(ty)
}

func (t *Translator) typeArgs(args []syntax.Type) tokens.Sequence {
	parts := make([]tokens.Sequence, len(args))
	for i, a := range args {
		parts[i] = t.typ(a)
	}
	return angles(commaList(parts))
}

// funcType renders (A, B) -> R with labels dropped and Void as Unit.
func (t *Translator) funcType(ty *syntax.FuncType) tokens.Sequence {
	params := make([]tokens.Sequence, 0, len(ty.Params))
	for _, p := range ty.Params {
		if isVoid(p.Type) && len(ty.Params) == 1 {
			continue
		}
		params = append(params, t.typ(p.Type))
	}
	result := seqOf(tokens.Ident("Unit"))
	if ty.Result != nil && !isVoid(ty.Result) {
		result = t.typ(ty.Result)
	}
	return spaced(parens(commaList(params)), seqOf(tokens.Sym("->")), result).WithOrigin(ty)
}

func isVoid(ty syntax.Type) bool {
	switch ty := ty.(type) {
	case *syntax.TypeIdent:
		return len(ty.Parts) == 1 && ty.Parts[0].Name == "Void" && len(ty.Parts[0].Args) == 0
	case *syntax.TupleType:
		return len(ty.Elems) == 0
	}
	return false
}

// tupleType maps unlabeled pairs and triples to Pair and Triple. Any other
// tuple becomes a named parameter list.
func (t *Translator) tupleType(ty *syntax.TupleType) tokens.Sequence {
	if len(ty.Elems) == 0 {
		return seqOf(tokens.Ident("Unit")).WithOrigin(ty)
	}
	if len(ty.Elems) == 1 && ty.Elems[0].Label == "" {
		return t.typ(ty.Elems[0].Type).WithOrigin(ty)
	}
	labeled := false
	for _, e := range ty.Elems {
		if e.Label != "" {
			labeled = true
		}
	}
	if !labeled && (len(ty.Elems) == 2 || len(ty.Elems) == 3) {
		name := "Pair"
		if len(ty.Elems) == 3 {
			name = "Triple"
		}
		args := make([]tokens.Sequence, len(ty.Elems))
		for i, e := range ty.Elems {
			args[i] = t.typ(e.Type)
		}
		return seqOf(tokens.Ident(name)).Append(angles(commaList(args))).WithOrigin(ty)
	}
	return parens(t.valParams(ty)).WithOrigin(ty)
}

// valParams renders tuple elements as "val name: T" constructor
// parameters; unlabeled elements are named v1, v2, ...
func (t *Translator) valParams(ty *syntax.TupleType) tokens.Sequence {
	parts := make([]tokens.Sequence, len(ty.Elems))
	for i, e := range ty.Elems {
		name := e.Label
		if name == "" {
			name = "v" + strconv.Itoa(i+1)
		}
		parts[i] = seqOf(tokens.Kw("val"), space(), tokens.Ident(identName(name)), tokens.Delim(":"), space()).
			Append(t.typ(e.Type)).WithOrigin(e)
	}
	return commaList(parts)
}

func (t *Translator) annotation(ty syntax.Type) tokens.Sequence {
	if ty == nil {
		return tokens.Sequence{}
	}
	return t.typ(ty).Prefix(tokens.Delim(":"), space())
}
