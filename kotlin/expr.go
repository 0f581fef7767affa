package kotlin

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

func (t *Translator) expr(f frame, x syntax.Expr) tokens.Sequence {
	var s tokens.Sequence
	switch x := x.(type) {
	case nil:
		fail(nil, "missing expression")
	case *syntax.LiteralExpr:
		s = t.literal(x)
	case *syntax.ArrayLiteralExpr:
		s = seqOf(tokens.Ident("mutableListOf")).Append(parens(t.exprList(f, x.Elems)))
	case *syntax.DictLiteralExpr:
		entries := make([]tokens.Sequence, len(x.Entries))
		for i, e := range x.Entries {
			entries[i] = spaced(t.expr(f, e.Key), seqOf(tokens.Kw("to")), t.expr(f, e.Value)).WithOrigin(e)
		}
		s = seqOf(tokens.Ident("mutableMapOf")).Append(parens(commaList(entries)))
	case *syntax.IdentExpr:
		s = t.ident(f, x)
	case *syntax.ImplicitMemberExpr:
		s = seqOf(tokens.Delim("."), tokens.Ident(identName(x.Name)))
	case *syntax.SelfExpr:
		s = seqOf(tokens.Kw("this"))
	case *syntax.SuperExpr:
		s = seqOf(tokens.Kw("super"))
	case *syntax.WildcardExpr:
		s = seqOf(tokens.Ident("_"))
	case *syntax.ParenExpr:
		s = parens(t.expr(f, x.X))
	case *syntax.TupleExpr:
		s = t.tuple(f, x)
	case *syntax.PrefixExpr:
		s = t.expr(f, x.X).Prefix(tokens.Sym(x.Op).WithOrigin(x))
	case *syntax.PostfixExpr:
		s = t.expr(f, x.X).Suffix(tokens.Sym(x.Op).WithOrigin(x))
	case *syntax.InOutExpr:
		s = t.expr(f, x.X)
	case *syntax.BinaryExpr:
		s = t.binary(f, x)
	case *syntax.AssignExpr:
		if _, ok := x.Lhs.(*syntax.WildcardExpr); ok {
			s = t.expr(f, x.Rhs)
			break
		}
		s = spaced(t.expr(f, x.Lhs), seqOf(tokens.Sym("=").WithOrigin(x)), t.expr(f, x.Rhs))
	case *syntax.TernaryExpr:
		s = spaced(
			seqOf(tokens.Kw("if")),
			parens(t.expr(f, x.Cond)),
			t.expr(f, x.Then),
			seqOf(tokens.Kw("else")),
			t.expr(f, x.Else),
		)
	case *syntax.TryExpr:
		s = t.try(f, x)
	case *syntax.CastExpr:
		op := x.Op
		if op == "as!" {
			op = "as"
		}
		s = spaced(t.expr(f, x.X), seqOf(tokens.Kw(op).WithOrigin(x)), t.typ(x.Type))
	case *syntax.CallExpr:
		s = t.call(f, x)
	case *syntax.ClosureExpr:
		s = t.closure(f, x, "")
	case *syntax.MemberExpr:
		s = t.member(f, x)
	case *syntax.SubscriptExpr:
		s = t.subscript(f, x)
	case *syntax.OptionalChainExpr:
		s = t.expr(f, x.X)
		if _, self := x.X.(*syntax.SelfExpr); !self {
			s = s.Suffix(tokens.Sym("?").WithOrigin(x))
		}
	case *syntax.ForceExpr:
		s = t.expr(f, x.X).Suffix(tokens.Sym("!!").WithOrigin(x))
	case *syntax.TypeExpr:
		s = t.typ(x.Type)
	case *syntax.KeyPathExpr:
		s = keyPath(x.Raw)
	default:
		fail(x, "unhandled expression %T", x)
	}
	return s.WithOrigin(x)
}

func (t *Translator) exprList(f frame, xs []syntax.Expr) tokens.Sequence {
	parts := make([]tokens.Sequence, len(xs))
	for i, x := range xs {
		parts[i] = t.expr(f, x)
	}
	return commaList(parts)
}

func (t *Translator) literal(x *syntax.LiteralExpr) tokens.Sequence {
	switch x.Kind {
	case syntax.LitNil:
		return seqOf(tokens.Kw("null"))
	case syntax.LitBool:
		return seqOf(tokens.Kw(x.Value))
	case syntax.LitInt:
		return seqOf(tokens.Num(intLiteral(x.Value)))
	case syntax.LitFloat:
		return seqOf(tokens.Num(x.Value))
	case syntax.LitString:
		return seqOf(tokens.Str(t.stringLiteral(x.Value)))
	}
	fail(x, "unknown literal kind %d", x.Kind)
	return tokens.Sequence{}
}

// intLiteral rewrites octal literals, which Kotlin lacks, in decimal.
func intLiteral(v string) string {
	neg := strings.HasPrefix(v, "-")
	body := strings.TrimPrefix(v, "-")
	if !strings.HasPrefix(body, "0o") {
		return v
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(body[2:], "_", ""), 8, 64)
	if err != nil {
		return v
	}
	if neg {
		n = -n
	}
	return strconv.FormatInt(n, 10)
}

func (t *Translator) ident(f frame, x *syntax.IdentExpr) tokens.Sequence {
	name := x.Name
	if strings.HasPrefix(name, "$") {
		if _, err := strconv.Atoi(name[1:]); err == nil {
			if name == "$0" && !f.shorthand {
				name = "it"
			} else {
				name = "p" + name[1:]
			}
		}
	}
	s := seqOf(tokens.Ident(identName(name)))
	if len(x.GenericArgs) > 0 {
		s = s.Append(t.typeArgs(x.GenericArgs))
	}
	return s
}

// binaryOperators renames Swift binary operators; infix marks the ones
// that become Kotlin infix functions.
var binaryOperators = map[string]struct {
	name  string
	infix bool
}{
	"..<": {"until", true},
	"...": {"..", false},
	"??":  {"?:", false},
	"&":   {"and", true},
	"|":   {"or", true},
	"^":   {"xor", true},
	"<<":  {"shl", true},
	">>":  {"shr", true},
}

func (t *Translator) binary(f frame, x *syntax.BinaryExpr) tokens.Sequence {
	lhs, rhs := t.expr(f, x.X), t.expr(f, x.Y)
	op, ok := binaryOperators[x.Op]
	if !ok {
		return spaced(lhs, seqOf(tokens.Sym(x.Op).WithOrigin(x)), rhs)
	}
	if op.name == ".." {
		return lhs.Suffix(tokens.Sym("..").WithOrigin(x)).Append(rhs)
	}
	if !op.infix {
		return spaced(lhs, seqOf(tokens.Sym(op.name).WithOrigin(x)), rhs)
	}
	if x.Op != "..<" {
		// Kotlin infix calls bind looser than arithmetic.
		if _, bin := x.X.(*syntax.BinaryExpr); bin {
			lhs = parens(lhs)
		}
		if _, bin := x.Y.(*syntax.BinaryExpr); bin {
			rhs = parens(rhs)
		}
	}
	return spaced(lhs, seqOf(tokens.Kw(op.name).WithOrigin(x)), rhs)
}

func (t *Translator) tuple(f frame, x *syntax.TupleExpr) tokens.Sequence {
	args := make([]tokens.Sequence, len(x.Elems))
	for i, e := range x.Elems {
		args[i] = t.expr(f, e.X).WithOrigin(e)
	}
	switch len(x.Elems) {
	case 0:
		return seqOf(tokens.Ident("Unit"))
	case 1:
		return parens(args[0])
	case 2:
		return seqOf(tokens.Ident("Pair")).Append(parens(commaList(args)))
	case 3:
		return seqOf(tokens.Ident("Triple")).Append(parens(commaList(args)))
	}
	return parens(commaList(args)).Prefix(t.fixmeTok(x, "tuple with %d elements", len(x.Elems)), nl())
}

func (t *Translator) try(f frame, x *syntax.TryExpr) tokens.Sequence {
	inner := t.expr(f, x.X)
	if x.Kind != "?" {
		return inner
	}
	return spaced(
		seqOf(tokens.Kw("try")),
		spaced(seqOf(tokens.Open("{")), inner, seqOf(tokens.Close("}"))),
		seqOf(tokens.Kw("catch")),
		parens(seqOf(tokens.Ident("e"), tokens.Delim(":"), space(), tokens.Ident("Throwable"))),
		seqOf(tokens.Open("{"), space(), tokens.Kw("null"), space(), tokens.Close("}")),
	)
}

// collectionFactories are the Kotlin factories for empty typed collections.
var collectionFactories = map[string]string{
	"Array":      "mutableListOf",
	"Set":        "mutableSetOf",
	"Dictionary": "mutableMapOf",
}

func (t *Translator) call(f frame, x *syntax.CallExpr) tokens.Sequence {
	if len(x.Args) == 0 && x.Trailing == nil {
		if s, ok := t.emptyCollection(x.Fun); ok {
			return s
		}
	}

	var fun tokens.Sequence
	switch fn := x.Fun.(type) {
	case *syntax.MemberExpr:
		if fn.Name == "init" {
			fun = t.expr(f, fn.X)
			break
		}
		fun = t.expr(f, fn)
	case *syntax.OptionalChainExpr, *syntax.ForceExpr:
		fun = t.expr(f, fn).Suffix(tokens.Delim("."), tokens.Kw("invoke"))
	default:
		fun = t.expr(f, fn)
	}

	s := fun
	if len(x.Args) > 0 || x.Trailing == nil {
		s = s.Append(parens(t.args(f, x.Args, calleeName(x.Fun))))
	}
	if x.Trailing != nil {
		s = spaced(s, t.closure(f, x.Trailing, calleeName(x.Fun)))
	}
	return s
}

// args renders call arguments; closure arguments label their returns
// with callee.
func (t *Translator) args(f frame, args []*syntax.Arg, callee string) tokens.Sequence {
	parts := make([]tokens.Sequence, len(args))
	for i, a := range args {
		x := a.X
		if c, ok := x.(*syntax.ClosureExpr); ok {
			parts[i] = t.closure(f, c, callee)
		} else {
			parts[i] = t.expr(f, x)
		}
		if a.Label != "" {
			parts[i] = parts[i].Prefix(tokens.Ident(identName(a.Label)), space(), tokens.Sym("="), space())
		}
		parts[i] = parts[i].WithOrigin(a)
	}
	return commaList(parts)
}

// emptyCollection renders [T](), [K: V]() and Array<T>() style
// initializers as typed Kotlin factory calls.
func (t *Translator) emptyCollection(fun syntax.Expr) (tokens.Sequence, bool) {
	var factory string
	var args []tokens.Sequence
	switch fn := fun.(type) {
	case *syntax.ArrayLiteralExpr:
		if len(fn.Elems) != 1 {
			return tokens.Sequence{}, false
		}
		elem, ok := t.exprAsType(fn.Elems[0])
		if !ok {
			return tokens.Sequence{}, false
		}
		factory, args = "mutableListOf", []tokens.Sequence{elem}
	case *syntax.DictLiteralExpr:
		if len(fn.Entries) != 1 {
			return tokens.Sequence{}, false
		}
		k, kok := t.exprAsType(fn.Entries[0].Key)
		v, vok := t.exprAsType(fn.Entries[0].Value)
		if !kok || !vok {
			return tokens.Sequence{}, false
		}
		factory, args = "mutableMapOf", []tokens.Sequence{k, v}
	case *syntax.IdentExpr:
		name, ok := collectionFactories[fn.Name]
		if !ok || len(fn.GenericArgs) == 0 {
			return tokens.Sequence{}, false
		}
		factory = name
		for _, a := range fn.GenericArgs {
			args = append(args, t.typ(a))
		}
	default:
		return tokens.Sequence{}, false
	}
	return seqOf(tokens.Ident(factory)).
		Append(angles(commaList(args))).
		Suffix(tokens.Open("("), tokens.Close(")")).
		WithOrigin(fun), true
}

// exprAsType reads a type written in expression position, as in [Int]().
func (t *Translator) exprAsType(x syntax.Expr) (tokens.Sequence, bool) {
	switch x := x.(type) {
	case *syntax.IdentExpr:
		if x.Name == "" || !unicode.IsUpper(rune(x.Name[0])) {
			return tokens.Sequence{}, false
		}
		s := seqOf(tokens.Ident(t.typeName(x.Name)))
		if len(x.GenericArgs) > 0 {
			s = s.Append(t.typeArgs(x.GenericArgs))
		}
		return s.WithOrigin(x), true
	case *syntax.MemberExpr:
		base, ok := t.exprAsType(x.X)
		if !ok {
			return tokens.Sequence{}, false
		}
		return base.Suffix(tokens.Delim("."), tokens.Ident(x.Name)), true
	case *syntax.ArrayLiteralExpr:
		if len(x.Elems) != 1 {
			return tokens.Sequence{}, false
		}
		elem, ok := t.exprAsType(x.Elems[0])
		if !ok {
			return tokens.Sequence{}, false
		}
		return seqOf(tokens.Ident("MutableList")).Append(angles(elem)), true
	case *syntax.DictLiteralExpr:
		if len(x.Entries) != 1 {
			return tokens.Sequence{}, false
		}
		k, kok := t.exprAsType(x.Entries[0].Key)
		v, vok := t.exprAsType(x.Entries[0].Value)
		if !kok || !vok {
			return tokens.Sequence{}, false
		}
		return seqOf(tokens.Ident("MutableMap")).Append(angles(commaList([]tokens.Sequence{k, v}))), true
	case *syntax.TypeExpr:
		return t.typ(x.Type), true
	}
	return tokens.Sequence{}, false
}

// calleeName is the label a closure argument's returns refer to.
func calleeName(fun syntax.Expr) string {
	switch fn := fun.(type) {
	case *syntax.IdentExpr:
		return fn.Name
	case *syntax.MemberExpr:
		return fn.Name
	case *syntax.OptionalChainExpr:
		return calleeName(fn.X)
	case *syntax.ForceExpr:
		return calleeName(fn.X)
	}
	return ""
}

// tupleIndexNames are Pair and Triple component names.
var tupleIndexNames = []string{"first", "second", "third"}

func (t *Translator) member(f frame, x *syntax.MemberExpr) tokens.Sequence {
	if x.Name == "self" {
		if ty, ok := t.exprAsType(x.X); ok {
			return ty.Suffix(tokens.Sym("::"), tokens.Kw("class"))
		}
		return t.expr(f, x.X)
	}
	base := t.expr(f, x.X)
	name := identName(x.Name)
	if i, err := strconv.Atoi(x.Name); err == nil && i < len(tupleIndexNames) {
		name = tupleIndexNames[i]
	}
	s := base
	if _, direct := x.X.(*syntax.OptionalChainExpr); !direct && optionalChain(x.X) {
		s = s.Suffix(tokens.Sym("?"))
	}
	s = s.Suffix(tokens.Delim("."), tokens.Ident(name).WithOrigin(x))
	if len(x.GenericArgs) > 0 {
		s = s.Append(t.typeArgs(x.GenericArgs))
	}
	return s
}

func (t *Translator) subscript(f frame, x *syntax.SubscriptExpr) tokens.Sequence {
	base := t.expr(f, x.X)
	if optionalChain(x.X) {
		if _, direct := x.X.(*syntax.OptionalChainExpr); !direct {
			base = base.Suffix(tokens.Sym("?"))
		}
		return base.Suffix(tokens.Delim("."), tokens.Ident("get")).Append(parens(t.args(f, x.Args, "")))
	}
	return base.Suffix(tokens.Open("[")).Append(t.args(f, x.Args, "")).Suffix(tokens.Close("]"))
}

// optionalChain reports whether x is, or continues, an optional chain
// whose later accesses must also be null-safe.
func optionalChain(x syntax.Expr) bool {
	for {
		switch e := x.(type) {
		case *syntax.OptionalChainExpr:
			_, self := e.X.(*syntax.SelfExpr)
			return !self
		case *syntax.MemberExpr:
			x = e.X
		case *syntax.CallExpr:
			x = e.Fun
		case *syntax.SubscriptExpr:
			x = e.X
		default:
			return false
		}
	}
}

// keyPath renders \Type.member as a Kotlin member reference and \.member
// as a lambda.
func keyPath(raw string) tokens.Sequence {
	path := strings.TrimPrefix(raw, `\`)
	if strings.HasPrefix(path, ".") {
		return seqOf(tokens.Open("{"), space(), tokens.Ident("it"+path), space(), tokens.Close("}"))
	}
	if i := strings.Index(path, "."); i > 0 {
		return seqOf(tokens.Ident(path[:i]), tokens.Sym("::"), tokens.Ident(path[i+1:]))
	}
	return seqOf(tokens.Ident(path))
}
