package syntax

func (p *parser) parseType() Type {
	start := p.start()
	attrs := p.parseAttributes()
	if (p.is("some") || p.is("any")) && p.peek(1).kind == tIdent && !p.peek(1).nlBefore {
		p.advance()
	}

	var t Type
	switch {
	case p.is("("):
		t = p.parseParenType(attrs)
	case p.is("["):
		p.advance()
		elem := p.parseType()
		if p.got(":") {
			d := &DictType{Key: elem, Value: p.parseType()}
			t = d
		} else {
			t = &ArrayType{Elem: elem}
		}
		p.want("]")
	default:
		t = p.parseTypeIdent()
	}
	p.finish(t.(ranged), start)

	for {
		switch {
		case p.is("?") && !p.tok().spaceBefore:
			p.advance()
			t = &OptionalType{Elem: t}
		case p.is("!") && !p.tok().spaceBefore:
			p.advance()
			t = &ImplicitlyUnwrappedType{Elem: t}
		case p.is(".") && (p.isAt(1, "Type") || p.isAt(1, "Protocol")):
			p.advance()
			t = &MetatypeType{Elem: t, Kind: p.advance().text}
		case p.is("&") && p.tok().spaceBefore:
			p.advance()
			c, ok := t.(*CompositionType)
			if !ok {
				c = &CompositionType{Types: []Type{t}}
			}
			c.Types = append(c.Types, p.parseTypeIdent())
			t = c
		default:
			return t
		}
		p.finish(t.(ranged), start)
	}
}

func (p *parser) parseTypeIdent() *TypeIdent {
	start := p.start()
	ti := &TypeIdent{}
	for {
		ps := p.start()
		part := &TypePart{}
		switch t := p.tok(); {
		case t.kind == tIdent, t.text == "Self", t.text == "Any":
			part.Name = p.advance().text
		default:
			p.errorf("expected type")
		}
		if p.is("<") && !p.tok().spaceBefore {
			part.Args = p.parseGenericArgs()
		}
		p.finish(part, ps)
		ti.Parts = append(ti.Parts, part)
		if !p.is(".") || p.isAt(1, "Type") || p.isAt(1, "Protocol") || p.peek(1).kind != tIdent {
			break
		}
		p.advance()
	}
	p.finish(ti, start)
	return ti
}

// parseTupleTypeBody parses "(label: T, U)" as used in tuple types,
// function parameter lists and enum case payloads.
func (p *parser) parseTupleTypeBody() *TupleType {
	start := p.start()
	p.want("(")
	tt := &TupleType{}
	for !p.got(")") {
		es := p.start()
		e := &TupleTypeElem{}
		if (p.isIdent() || p.at(tKeyword)) && p.isAt(1, ":") {
			e.Label = p.advance().text
			p.advance()
		} else if p.isIdent() && p.peek(1).kind == tIdent && p.isAt(2, ":") {
			// _ name: T or label name: T
			e.Label = p.advance().text
			p.advance()
			p.advance()
		}
		if e.Label == "_" {
			e.Label = ""
		}
		p.parseAttributes()
		if p.got("inout") {
			e.Inout = true
		}
		e.Type = p.parseType()
		if p.is("...") {
			p.advance()
			e.Variadic = true
		}
		if p.got("=") {
			p.parseExpr() // default values in enum payloads
		}
		p.finish(e, es)
		tt.Elems = append(tt.Elems, e)
		if !p.got(",") {
			p.want(")")
			break
		}
	}
	p.finish(tt, start)
	return tt
}

func (p *parser) parseParenType(attrs []*Attribute) Type {
	start := p.start()
	tt := p.parseTupleTypeBody()
	if p.is("throws") || p.is("rethrows") || p.is("->") {
		f := &FuncType{Attrs: attrs, Params: tt.Elems}
		f.Throws = p.parseThrows() != ""
		p.want("->")
		f.Result = p.parseType()
		p.finish(f, start)
		return f
	}
	if len(tt.Elems) == 1 && tt.Elems[0].Label == "" && !tt.Elems[0].Variadic {
		return tt.Elems[0].Type
	}
	return tt
}
