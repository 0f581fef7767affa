package syntax

import (
	"fmt"
	"strings"
)

// Parser turns Swift source text into a syntax tree. The translator only
// depends on this interface, so any parser producing the same tree fits.
type Parser interface {
	ParseFile(name, src string) (*File, error)
}

// NewParser returns the built-in recursive-descent Swift parser.
func NewParser() Parser { return swiftParser{} }

type swiftParser struct{}

// ParseFile parses a complete Swift source unit. Failures are returned as
// *ParseError, which wraps errors.ErrParse.
func (swiftParser) ParseFile(name, src string) (*File, error) {
	return ParseFile(name, src)
}

// ParseFile parses src with the built-in parser.
func ParseFile(name, src string) (f *File, err error) {
	toks, err := lex(name, src)
	if err != nil {
		return nil, err
	}
	p := &parser{file: name, src: src, toks: toks}
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			f, err = nil, pe
		}
	}()
	return p.parseFile(), nil
}

// ParseExpr parses src as a single expression. It is used to re-parse the
// contents of string interpolation segments.
func ParseExpr(src string) (x Expr, err error) {
	toks, err := lex("", src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			x, err = nil, pe
		}
	}()
	x = p.parseExpr()
	if !p.at(tEOF) {
		p.errorf("unexpected %s after expression", p.tok().kind)
	}
	return x, nil
}

type parser struct {
	file string
	src  string
	toks []token
	pos  int

	// noTrailing > 0 while parsing if/guard/while/switch heads, where a
	// '{' starts the statement body rather than a trailing closure.
	noTrailing int
}

type ranged interface {
	setRange(Range)
}

func (p *parser) tok() token { return p.toks[p.pos] }

func (p *parser) peek(n int) token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *parser) at(k tokKind) bool { return p.tok().kind == k }

// is reports whether the current token is the non-literal text s.
func (p *parser) is(s string) bool {
	t := p.tok()
	return t.text == s && t.kind != tString
}

func (p *parser) isAt(n int, s string) bool {
	t := p.peek(n)
	return t.text == s && t.kind != tString
}

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if t.kind != tEOF {
		p.pos++
	}
	return t
}

func (p *parser) got(s string) bool {
	if p.is(s) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) want(s string) token {
	if !p.is(s) {
		p.errorf("expected %q", s)
	}
	return p.advance()
}

func (p *parser) start() Position { return p.tok().rng.Start }

// prevEnd is the end of the last consumed token.
func (p *parser) prevEnd() Position {
	if p.pos == 0 {
		return p.tok().rng.Start
	}
	return p.toks[p.pos-1].rng.End
}

func (p *parser) finish(n ranged, start Position) {
	n.setRange(Range{Start: start, End: p.prevEnd()})
}

func (p *parser) errorf(format string, args ...interface{}) {
	t := p.tok()
	err := NewParseError(ErrorKindSyntax, fmt.Sprintf(format, args...)).
		WithFile(p.file).
		WithRange(t.rng)
	if t.kind != tEOF {
		err = err.WithToken(t.text)
	} else {
		err = err.WithToken("end of file")
	}
	panic(err)
}

// speculate runs fn and rewinds on a parse error.
func (p *parser) speculate(fn func()) (ok bool) {
	toks, pos, nt := p.toks, p.pos, p.noTrailing
	defer func() {
		if r := recover(); r != nil {
			if _, isPE := r.(*ParseError); !isPE {
				panic(r)
			}
			p.toks, p.pos, p.noTrailing = toks, pos, nt
			ok = false
		}
	}()
	fn()
	return true
}

// ident consumes an identifier. Keywords are accepted where Swift allows
// them as names (member names, argument labels) when anyKeyword is set.
func (p *parser) ident(anyKeyword bool) string {
	t := p.tok()
	if t.kind == tIdent || (anyKeyword && t.kind == tKeyword) {
		p.advance()
		return t.text
	}
	p.errorf("expected identifier")
	return ""
}

func (p *parser) isIdent() bool { return p.at(tIdent) }

// wantCloseAngle consumes a '>' closing a generic clause, splitting
// '>>', '>=' and similar tokens.
func (p *parser) wantCloseAngle() {
	t := p.tok()
	if t.kind != tOperator || !strings.HasPrefix(t.text, ">") {
		p.errorf("expected '>'")
	}
	if t.text == ">" {
		p.advance()
		return
	}
	rest := t
	rest.text = t.text[1:]
	rest.spaceBefore, rest.nlBefore = false, false
	rest.rng.Start.Character++
	rest.rng.Start.Offset++
	toks := make([]token, 0, len(p.toks)+1)
	toks = append(toks, p.toks[:p.pos]...)
	first := t
	first.text = ">"
	first.rng.End = rest.rng.Start
	toks = append(toks, first, rest)
	toks = append(toks, p.toks[p.pos+1:]...)
	p.toks = toks
	p.advance()
}

// rawFrom returns the source text from start to the end of the last token.
func (p *parser) rawFrom(start Position) string {
	return p.src[start.Offset:p.prevEnd().Offset]
}

// skipBalanced consumes a bracketed group starting at the current opener.
func (p *parser) skipBalanced(open, close string) {
	p.want(open)
	depth := 1
	for depth > 0 {
		if p.at(tEOF) {
			p.errorf("expected %q", close)
		}
		t := p.advance()
		if t.kind == tString {
			continue
		}
		switch t.text {
		case open:
			depth++
		case close:
			depth--
		}
	}
}

// ----------------------------------------------------------------------------
// Files and blocks

func (p *parser) parseFile() *File {
	start := p.start()
	f := &File{Name: p.file}
	for !p.at(tEOF) {
		if p.got(";") {
			continue
		}
		f.Items = append(f.Items, p.parseStmt())
	}
	p.finish(f, start)
	return f
}

func (p *parser) parseBlock() *Block {
	start := p.start()
	p.want("{")
	saved := p.noTrailing
	p.noTrailing = 0
	b := &Block{Stmts: p.parseStmtsUntil("}")}
	p.noTrailing = saved
	p.want("}")
	p.finish(b, start)
	return b
}

func (p *parser) parseStmtsUntil(stops ...string) []Stmt {
	var list []Stmt
	for !p.at(tEOF) {
		if p.got(";") {
			continue
		}
		for _, s := range stops {
			if p.is(s) {
				return list
			}
		}
		list = append(list, p.parseStmt())
	}
	return list
}

// ----------------------------------------------------------------------------
// Declarations

var declKeywords = map[string]bool{
	"import": true, "let": true, "var": true, "func": true, "init": true,
	"deinit": true, "class": true, "struct": true, "enum": true,
	"protocol": true, "extension": true, "typealias": true,
	"associatedtype": true, "subscript": true,
}

// declKeywordAt scans past attributes and modifiers and returns the
// offset of the declaration keyword, or -1 if none follows.
func (p *parser) declKeywordAt(allowCase bool) int {
	i := 0
	for {
		t := p.peek(i)
		switch {
		case t.kind == tPunct && t.text == "@":
			i += 2
			if p.isAt(i, "(") && !p.peek(i).spaceBefore {
				depth := 0
				for {
					tt := p.peek(i)
					if tt.kind == tEOF {
						return -1
					}
					i++
					if tt.kind == tPunct && tt.text == "(" {
						depth++
					} else if tt.kind == tPunct && tt.text == ")" {
						depth--
						if depth == 0 {
							break
						}
					}
				}
			}
		case t.text == "class" && t.kind == tKeyword:
			next := p.peek(i + 1)
			if declKeywords[next.text] || declModifiers[next.text] {
				i++
				continue
			}
			return i
		case t.kind == tIdent && declModifiers[t.text]:
			i++
			if p.isAt(i, "(") {
				i += 3 // private(set)
			}
		case t.kind == tKeyword && declKeywords[t.text]:
			return i
		case allowCase && t.text == "case" && t.kind == tKeyword:
			return i
		default:
			return -1
		}
	}
}

func (p *parser) isDeclStart() bool { return p.declKeywordAt(false) >= 0 }

func (p *parser) parseAttributes() []*Attribute {
	var attrs []*Attribute
	for p.is("@") {
		start := p.start()
		p.advance()
		a := &Attribute{Name: p.ident(true)}
		if p.is("(") && !p.tok().spaceBefore {
			argStart := p.toks[p.pos].rng.End
			p.skipBalanced("(", ")")
			a.Args = p.src[argStart.Offset : p.prevEnd().Offset-1]
		}
		p.finish(a, start)
		attrs = append(attrs, a)
	}
	return attrs
}

func (p *parser) parseDecorations() Decorations {
	var d Decorations
	for {
		switch t := p.tok(); {
		case t.text == "@" && t.kind == tPunct:
			d.Attrs = append(d.Attrs, p.parseAttributes()...)
		case t.text == "class" && (declKeywords[p.peek(1).text] || declModifiers[p.peek(1).text]):
			p.advance()
			d.Mods = append(d.Mods, "class")
		case t.kind == tIdent && declModifiers[t.text] && p.declKeywordAt(true) >= 0:
			p.advance()
			mod := t.text
			if p.is("(") {
				p.advance()
				mod += "(" + p.ident(true) + ")"
				p.want(")")
			}
			d.Mods = append(d.Mods, mod)
		default:
			return d
		}
	}
}

func (p *parser) parseDecl() Decl {
	start := p.start()
	dec := p.parseDecorations()
	var d Decl
	switch kw := p.tok().text; kw {
	case "import":
		d = p.parseImport(dec)
	case "let", "var":
		d = p.parseVarDecl(dec)
	case "func":
		d = p.parseFuncDecl(dec)
	case "init":
		d = p.parseInitDecl(dec)
	case "deinit":
		p.advance()
		d = &DeinitDecl{Decorations: dec, Body: p.parseBlock()}
	case "class":
		c := &ClassDecl{Decorations: dec}
		p.advance()
		c.Name = p.ident(false)
		c.Generics = p.parseGenericParams()
		c.Inherits = p.parseInherits()
		c.Where = p.parseWhere()
		c.Members = p.parseMembers(nil)
		d = c
	case "struct":
		s := &StructDecl{Decorations: dec}
		p.advance()
		s.Name = p.ident(false)
		s.Generics = p.parseGenericParams()
		s.Inherits = p.parseInherits()
		s.Where = p.parseWhere()
		s.Members = p.parseMembers(nil)
		d = s
	case "protocol":
		pr := &ProtocolDecl{Decorations: dec}
		p.advance()
		pr.Name = p.ident(false)
		pr.Inherits = p.parseInherits()
		p.parseWhere()
		pr.Members = p.parseMembers(nil)
		d = pr
	case "extension":
		e := &ExtensionDecl{Decorations: dec}
		p.advance()
		e.Type = p.parseTypeIdent()
		e.Inherits = p.parseInherits()
		e.Where = p.parseWhere()
		e.Members = p.parseMembers(nil)
		d = e
	case "enum":
		e := &EnumDecl{Decorations: dec, Indirect: dec.HasModifier("indirect")}
		p.advance()
		e.Name = p.ident(false)
		e.Generics = p.parseGenericParams()
		e.Inherits = p.parseInherits()
		e.Where = p.parseWhere()
		e.Members = p.parseMembers(e)
		d = e
	case "typealias", "associatedtype":
		t := &TypealiasDecl{Decorations: dec, Assoc: kw == "associatedtype"}
		p.advance()
		t.Name = p.ident(false)
		t.Generics = p.parseGenericParams()
		if t.Assoc && p.got(":") {
			p.parseType()
		}
		if p.got("=") {
			t.Type = p.parseType()
		}
		if t.Assoc {
			p.parseWhere()
		}
		d = t
	case "subscript":
		d = p.parseSubscript(dec)
	default:
		p.errorf("expected declaration")
	}
	p.finish(d.(ranged), start)
	return d
}

func (p *parser) parseImport(dec Decorations) *ImportDecl {
	p.want("import")
	d := &ImportDecl{Decorations: dec}
	switch p.tok().text {
	case "class", "struct", "enum", "protocol", "func", "var", "let", "typealias":
		d.Kind = p.advance().text
	}
	path := []string{p.ident(true)}
	for p.got(".") {
		path = append(path, p.ident(true))
	}
	d.Path = strings.Join(path, ".")
	return d
}

// parseMembers parses a braced member list. Enum bodies also accept case
// declarations, collected into enum.Cases.
func (p *parser) parseMembers(enum *EnumDecl) []Decl {
	p.want("{")
	var members []Decl
	for !p.is("}") {
		if p.at(tEOF) {
			p.errorf("expected '}'")
		}
		if p.got(";") {
			continue
		}
		if enum != nil {
			if at := p.declKeywordAt(true); at >= 0 && p.isAt(at, "case") {
				p.parseEnumCases(enum)
				continue
			}
		}
		if !p.isDeclStart() {
			p.errorf("expected member declaration")
		}
		members = append(members, p.parseDecl())
	}
	p.want("}")
	return members
}

func (p *parser) parseEnumCases(e *EnumDecl) {
	dec := p.parseDecorations()
	p.want("case")
	indirect := dec.HasModifier("indirect")
	for {
		start := p.start()
		c := &EnumCase{Indirect: indirect, Name: p.ident(true)}
		if p.is("(") {
			c.Payload = p.parseTupleTypeBody()
		}
		if p.got("=") {
			c.Raw = p.parseExpr()
		}
		p.finish(c, start)
		e.Cases = append(e.Cases, c)
		if !p.got(",") {
			return
		}
	}
}

func (p *parser) parseInherits() []Type {
	if !p.got(":") {
		return nil
	}
	list := []Type{p.parseType()}
	for p.got(",") {
		list = append(list, p.parseType())
	}
	return list
}

func (p *parser) parseGenericParams() *GenericParams {
	if !p.is("<") {
		return nil
	}
	start := p.start()
	p.advance()
	g := &GenericParams{}
	for {
		gs := p.start()
		gp := &GenericParam{Name: p.ident(false)}
		if p.got(":") {
			gp.Constraint = p.parseType()
		}
		p.finish(gp, gs)
		g.Params = append(g.Params, gp)
		if !p.got(",") {
			break
		}
	}
	g.Where = p.parseWhere()
	p.wantCloseAngle()
	p.finish(g, start)
	return g
}

func (p *parser) parseWhere() []*Requirement {
	if !p.got("where") {
		return nil
	}
	var reqs []*Requirement
	for {
		start := p.start()
		r := &Requirement{Left: p.parseType()}
		switch {
		case p.got(":"):
			r.Op = ":"
		case p.got("=="):
			r.Op = "=="
		default:
			p.errorf("expected ':' or '==' in where clause")
		}
		r.Right = p.parseType()
		p.finish(r, start)
		reqs = append(reqs, r)
		if !p.got(",") {
			return reqs
		}
	}
}

func (p *parser) parseVarDecl(dec Decorations) *VarDecl {
	v := &VarDecl{Decorations: dec, Immutable: p.advance().text == "let"}
	for {
		start := p.start()
		pi := &PatternInit{Pattern: p.parseBindingPattern()}
		if p.got(":") {
			pi.Type = p.parseType()
		}
		if p.got("=") {
			pi.Init = p.parseExpr()
		}
		p.finish(pi, start)

		if name, ok := pi.Pattern.(*IdentPattern); ok && len(v.Inits) == 0 && p.is("{") {
			v.Name, v.Type, v.Init = name.Name, pi.Type, pi.Init
			p.parseVarBody(v)
			return v
		}
		v.Inits = append(v.Inits, pi)
		if !p.got(",") {
			return v
		}
	}
}

func (p *parser) isAccessorStart() bool {
	i := 1
	for {
		t := p.peek(i)
		switch {
		case t.text == "@":
			i += 2
		case t.kind == tIdent && (t.text == "mutating" || t.text == "nonmutating"):
			i++
		case t.kind == tIdent && (t.text == "get" || t.text == "set" || t.text == "willSet" || t.text == "didSet"):
			return true
		default:
			return false
		}
	}
}

// parseVarBody parses the braced body of a computed, accessor-based,
// observed or protocol-requirement variable.
func (p *parser) parseVarBody(v *VarDecl) {
	if !p.isAccessorStart() {
		start := p.start()
		body := p.parseBlock()
		v.Kind = VarComputed
		v.Getter = &Accessor{Body: body}
		p.finish(v.Getter, start)
		return
	}

	p.want("{")
	hasBody := false
	for !p.got("}") {
		start := p.start()
		p.parseAttributes()
		acc := &Accessor{}
		for p.is("mutating") || p.is("nonmutating") {
			acc.Mods = append(acc.Mods, p.advance().text)
		}
		kind := p.ident(false)
		if p.got("(") {
			acc.Param = p.ident(false)
			p.want(")")
		}
		if p.is("{") {
			acc.Body = p.parseBlock()
			hasBody = true
		}
		p.finish(acc, start)
		switch kind {
		case "get":
			v.Getter = acc
		case "set":
			v.Setter = acc
		case "willSet":
			v.WillSet = acc
		case "didSet":
			v.DidSet = acc
		default:
			p.errorf("unknown accessor %q", kind)
		}
		p.got(";")
	}

	switch {
	case v.WillSet != nil || v.DidSet != nil:
		v.Kind = VarObserved
	case !hasBody:
		v.Kind = VarRequirement
		v.Settable = v.Setter != nil
	case v.Setter != nil:
		v.Kind = VarAccessors
	default:
		v.Kind = VarComputed
	}
}

func (p *parser) parseFuncDecl(dec Decorations) *FuncDecl {
	p.want("func")
	f := &FuncDecl{Decorations: dec}
	if p.at(tOperator) {
		f.Name = p.advance().text
	} else {
		f.Name = p.ident(false)
	}
	f.Generics = p.parseGenericParams()
	f.Params = p.parseParams()
	f.Throws = p.parseThrows()
	if p.got("->") {
		f.Result = p.parseType()
	}
	f.Where = p.parseWhere()
	if p.is("{") {
		f.Body = p.parseBlock()
	}
	return f
}

func (p *parser) parseThrows() string {
	if p.is("throws") || p.is("rethrows") {
		return p.advance().text
	}
	return ""
}

func (p *parser) parseInitDecl(dec Decorations) *InitDecl {
	p.want("init")
	d := &InitDecl{Decorations: dec}
	if (p.is("?") || p.is("!")) && !p.tok().spaceBefore {
		d.Failable = p.advance().text
	}
	d.Generics = p.parseGenericParams()
	d.Params = p.parseParams()
	d.Throws = p.parseThrows()
	p.parseWhere()
	if p.is("{") {
		d.Body = p.parseBlock()
	}
	return d
}

func (p *parser) parseSubscript(dec Decorations) *SubscriptDecl {
	p.want("subscript")
	s := &SubscriptDecl{Decorations: dec}
	s.Params = p.parseParams()
	p.want("->")
	s.Result = p.parseType()
	if p.is("{") {
		v := &VarDecl{}
		p.parseVarBody(v)
		s.Getter, s.Setter = v.Getter, v.Setter
	}
	return s
}

func (p *parser) parseParams() []*Param {
	p.want("(")
	var params []*Param
	for !p.got(")") {
		start := p.start()
		prm := &Param{Attrs: p.parseAttributes()}
		first := p.ident(true)
		if p.is(":") {
			prm.Name = first
		} else {
			prm.Label = first
			prm.Name = p.ident(true)
		}
		p.want(":")
		prm.Attrs = append(prm.Attrs, p.parseAttributes()...)
		if p.got("inout") {
			prm.Inout = true
		}
		prm.Type = p.parseType()
		if p.is("...") {
			p.advance()
			prm.Variadic = true
		}
		if p.got("=") {
			prm.Default = p.parseExpr()
		}
		p.finish(prm, start)
		params = append(params, prm)
		if !p.got(",") {
			p.want(")")
			break
		}
	}
	return params
}
