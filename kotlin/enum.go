package kotlin

import (
	"strconv"
	"strings"

	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

type enumEncoding int

const (
	enumPlain  enumEncoding = iota // bare case list
	enumValue                      // enum class carrying a rawValue
	enumSealed                     // sealed class hierarchy for payload cases
)

func (e enumEncoding) String() string {
	switch e {
	case enumPlain:
		return "plain"
	case enumValue:
		return "value"
	case enumSealed:
		return "sealed"
	}
	return "unknown"
}

// rawValueTypes are the Swift types an enum may use as raw values.
var rawValueTypes = map[string]bool{
	"Int": true, "Int8": true, "Int16": true, "Int32": true, "Int64": true,
	"UInt": true, "UInt8": true, "UInt16": true, "UInt32": true, "UInt64": true,
	"String": true, "Character": true, "Bool": true,
	"Double": true, "Float": true, "Float32": true, "Float64": true, "CGFloat": true,
}

// classifyEnum picks the encoding of d from its case shapes and raw type.
// raw is nil when d declares no raw value type.
func classifyEnum(d *syntax.EnumDecl) (enc enumEncoding, raw *syntax.TypeIdent, conforms []syntax.Type) {
	for _, ty := range d.Inherits {
		if id, ok := ty.(*syntax.TypeIdent); ok && raw == nil && rawValueTypes[id.Name()] {
			raw = id
			continue
		}
		conforms = append(conforms, ty)
	}
	for _, c := range d.Cases {
		if c.Payload != nil {
			return enumSealed, raw, conforms
		}
	}
	if raw != nil {
		return enumValue, raw, conforms
	}
	return enumPlain, nil, conforms
}

func (t *Translator) enumDecl(f frame, d *syntax.EnumDecl) tokens.Sequence {
	enc, raw, conforms := classifyEnum(d)
	switch enc {
	case enumValue:
		return t.valueEnum(d, raw, conforms)
	case enumSealed:
		return t.sealedEnum(d)
	}
	return t.plainEnum(d, conforms)
}

// enumBody renders entries followed by members, terminating the entry
// list with ; when members follow.
func (t *Translator) enumBody(d *syntax.EnumDecl, entries []tokens.Sequence, members []syntax.Decl, terminate bool) tokens.Sequence {
	list := tokens.Join(entries, tokens.Delim(","), nl())
	if terminate || len(members) > 0 {
		list = list.Suffix(tokens.Delim(";"))
	}
	inner := frame{owner: d}
	rest := t.members(inner, declsAsItems(members))
	if rest.IsEmpty() {
		return t.braced(list)
	}
	return t.braced(list.Suffix(nl(), nl()).Append(rest))
}

func (t *Translator) plainEnum(d *syntax.EnumDecl, conforms []syntax.Type) tokens.Sequence {
	instance, statics := splitStatic(d.Members)
	entries := make([]tokens.Sequence, len(d.Cases))
	for i, c := range d.Cases {
		entries[i] = seqOf(tokens.Ident(identName(c.Name)).WithOrigin(c))
	}
	head := spaced(t.head(&d.Decorations), seqOf(tokens.Kw("enum"), space(), tokens.Kw("class")), seqOf(tokens.Ident(identName(d.Name))), t.inherits(conforms))
	body := t.enumBody(d, entries, instance, len(statics) > 0)
	return spaced(head, t.hoist(frame{owner: d}, d, statics, body, companionLast))
}

// valueEnum renders an enum class with a rawValue constructor parameter
// and, unless the raw type is Bool, a fromRawValue lookup.
func (t *Translator) valueEnum(d *syntax.EnumDecl, raw *syntax.TypeIdent, conforms []syntax.Type) tokens.Sequence {
	instance, statics := splitStatic(d.Members)
	rawType := t.typ(raw)
	entries := make([]tokens.Sequence, len(d.Cases))
	values := rawValues(d.Cases, raw.Name())
	for i, c := range d.Cases {
		var v tokens.Sequence
		if c.Raw != nil {
			v = t.expr(frame{}, c.Raw)
		} else {
			v = seqOf(values[i])
		}
		entries[i] = seqOf(tokens.Ident(identName(c.Name))).Append(parens(v)).WithOrigin(c)
	}

	name := seqOf(tokens.Ident(identName(d.Name)))
	ctor := parens(seqOf(tokens.Kw("val"), space(), tokens.Ident("rawValue"), tokens.Delim(":"), space()).Append(rawType))
	head := spaced(t.head(&d.Decorations), seqOf(tokens.Kw("enum"), space(), tokens.Kw("class")), name.Append(ctor), t.inherits(conforms))

	var extra []tokens.Sequence
	if raw.Name() != "Bool" {
		extra = append(extra, t.fromRawValue(d, rawType))
	}
	body := t.enumBody(d, entries, instance, len(statics)+len(extra) > 0)
	return spaced(head, t.hoist(frame{owner: d}, d, statics, body, companionLast, extra...))
}

// rawValues derives implicit raw values: the case name for strings, an
// alternating boolean, or a counter continuing from the last explicit
// number.
func rawValues(cases []*syntax.EnumCase, rawType string) []tokens.Token {
	out := make([]tokens.Token, len(cases))
	next := 0
	flag := false
	for i, c := range cases {
		if lit, ok := c.Raw.(*syntax.LiteralExpr); ok && lit.Kind == syntax.LitInt {
			if n, err := strconv.Atoi(strings.ReplaceAll(intLiteral(lit.Value), "_", "")); err == nil {
				next = n + 1
			}
			continue
		}
		if lit, ok := c.Raw.(*syntax.LiteralExpr); ok && lit.Kind == syntax.LitFloat {
			if f, err := strconv.ParseFloat(strings.ReplaceAll(lit.Value, "_", ""), 64); err == nil {
				next = int(f) + 1
			}
			continue
		}
		if c.Raw != nil {
			continue
		}
		switch rawType {
		case "String":
			out[i] = tokens.Str(strconv.Quote(c.Name))
		case "Character":
			out[i] = tokens.Str("'" + c.Name[:1] + "'")
		case "Bool":
			out[i] = tokens.Kw(strconv.FormatBool(flag))
			flag = !flag
		case "Double", "Float", "Float32", "Float64", "CGFloat":
			out[i] = tokens.Num(strconv.Itoa(next) + ".0")
			next++
		default:
			out[i] = tokens.Num(strconv.Itoa(next))
			next++
		}
	}
	return out
}

func (t *Translator) fromRawValue(d *syntax.EnumDecl, rawType tokens.Sequence) tokens.Sequence {
	name := tokens.Ident(identName(d.Name))
	param := parens(seqOf(tokens.Ident("rawValue"), tokens.Delim(":"), space()).Append(rawType))
	lookup := seqOf(
		tokens.Ident("values"), tokens.Open("("), tokens.Close(")"), tokens.Delim("."),
		tokens.Ident("associateBy"), tokens.Open("("), name, tokens.Sym("::"), tokens.Ident("rawValue"), tokens.Close(")"),
		tokens.Open("["), tokens.Ident("rawValue"), tokens.Close("]"),
	)
	sig := seqOf(tokens.Kw("fun"), space(), tokens.Ident("fromRawValue")).Append(param)
	return spaced(sig, seqOf(tokens.Sym("=")), lookup).WithOrigin(d)
}

// sealedEnum renders payload enums as a sealed class with one subclass
// per case.
func (t *Translator) sealedEnum(d *syntax.EnumDecl) tokens.Sequence {
	instance, statics := splitStatic(d.Members)
	var fixme tokens.Sequence
	withPayload := 0
	for _, c := range d.Cases {
		if c.Payload != nil {
			withPayload++
		}
	}
	if withPayload < len(d.Cases) {
		fixme = seqOf(t.fixmeTok(d, "enum %s mixes cases with and without associated values", d.Name))
	}

	name := seqOf(tokens.Ident(identName(d.Name))).Append(t.genericParams(d.Generics))
	parent := seqOf(tokens.Ident(identName(d.Name)), tokens.Open("("), tokens.Close(")"))
	var cases []tokens.Sequence
	var nodes []syntax.Node
	for _, c := range d.Cases {
		var s tokens.Sequence
		if c.Payload != nil {
			s = spaced(seqOf(tokens.Kw("data"), space(), tokens.Kw("class")), seqOf(tokens.Ident(identName(c.Name))).Append(parens(t.valParams(c.Payload))))
		} else {
			s = spaced(seqOf(tokens.Kw("object")), seqOf(tokens.Ident(identName(c.Name))))
		}
		cases = append(cases, spaced(s, seqOf(tokens.Delim(":")), parent).WithOrigin(c))
		nodes = append(nodes, c)
	}
	for _, m := range instance {
		cases = append(cases, t.checked(t.decl(frame{owner: d}, m), m))
		nodes = append(nodes, m)
	}
	head := spaced(t.head(&d.Decorations), seqOf(tokens.Kw("sealed"), space(), tokens.Kw("class")), name, t.inherits(d.Inherits))
	body := t.braced(joinItems(nodes, cases))
	return lines(fixme, spaced(head, t.hoist(frame{owner: d}, d, statics, body, companionLast)))
}
