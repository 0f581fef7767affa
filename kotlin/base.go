package kotlin

import (
	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

var (
	space = tokens.Space
	nl    = tokens.Newline
)

func seqOf(ts ...tokens.Token) tokens.Sequence { return tokens.New(ts...) }

// spaced joins the non-empty parts with single spaces.
func spaced(parts ...tokens.Sequence) tokens.Sequence {
	return tokens.Join(parts, space())
}

// lines joins the non-empty parts with linebreaks.
func lines(parts ...tokens.Sequence) tokens.Sequence {
	return tokens.Join(parts, nl())
}

// commaList joins parts with ", ".
func commaList(parts []tokens.Sequence) tokens.Sequence {
	return tokens.Join(parts, tokens.Delim(","), space())
}

func parens(s tokens.Sequence) tokens.Sequence {
	return s.Prefix(tokens.Open("(")).Suffix(tokens.Close(")"))
}

func angles(s tokens.Sequence) tokens.Sequence {
	return s.Prefix(tokens.Open("<")).Suffix(tokens.Close(">"))
}

// braced wraps body in an indented brace block; an empty body gives "{}".
func (t *Translator) braced(body tokens.Sequence) tokens.Sequence {
	if body.IsEmpty() {
		return seqOf(tokens.Open("{"), tokens.Close("}"))
	}
	return body.Prefix(nl()).Indent(t.indent).
		Prefix(tokens.Open("{")).
		Suffix(nl(), tokens.Close("}"))
}

func (t *Translator) block(f frame, b *syntax.Block) tokens.Sequence {
	if b == nil {
		return seqOf(tokens.Open("{"), tokens.Close("}"))
	}
	return t.braced(t.stmts(f, b.Stmts)).WithOrigin(b)
}

// stmts translates a statement list, one statement per line. Statements
// following a defer run inside try with the deferred block as finally.
func (t *Translator) stmts(f frame, list []syntax.Stmt) tokens.Sequence {
	for i, s := range list {
		d, ok := s.(*syntax.DeferStmt)
		if !ok || i == len(list)-1 {
			continue
		}
		guarded := spaced(
			seqOf(tokens.Kw("try")),
			t.braced(t.stmts(f, list[i+1:])),
			seqOf(tokens.Kw("finally")),
			t.block(f, d.Body),
		).WithOrigin(d)
		return lines(t.stmts(f, list[:i]), guarded)
	}
	nodes := make([]syntax.Node, len(list))
	seqs := make([]tokens.Sequence, len(list))
	for i, s := range list {
		nodes[i] = s
		seqs[i] = t.stmt(f, s)
	}
	return joinItems(nodes, seqs)
}

// members translates declarations or top-level items; see joinItems.
func (t *Translator) members(f frame, items []syntax.Node) tokens.Sequence {
	seqs := make([]tokens.Sequence, len(items))
	for i, n := range items {
		switch n := n.(type) {
		case syntax.Decl:
			seqs[i] = t.checked(t.decl(f, n), n)
		case syntax.Stmt:
			seqs[i] = t.checked(t.stmt(f, n), n)
		default:
			fail(n, "unexpected member %T", n)
		}
	}
	return joinItems(items, seqs)
}

// joinItems separates items with a linebreak, and with a blank line
// around type and function declarations. Empty translations are dropped.
func joinItems(items []syntax.Node, seqs []tokens.Sequence) tokens.Sequence {
	var out []tokens.Sequence
	var prev syntax.Node
	for i, s := range seqs {
		if s.IsEmpty() {
			continue
		}
		if prev != nil {
			if isBlockDecl(prev) || isBlockDecl(items[i]) {
				out = append(out, seqOf(nl(), nl()))
			} else {
				out = append(out, seqOf(nl()))
			}
		}
		out = append(out, s)
		prev = items[i]
	}
	return tokens.Concat(out...)
}

func isBlockDecl(n syntax.Node) bool {
	if ds, ok := n.(*syntax.DeclStmt); ok {
		n = ds.Decl
	}
	switch n.(type) {
	case *syntax.FuncDecl, *syntax.InitDecl, *syntax.DeinitDecl, *syntax.ClassDecl,
		*syntax.StructDecl, *syntax.EnumDecl, *syntax.ProtocolDecl, *syntax.ExtensionDecl:
		return true
	}
	return false
}

func stmtsAsItems(list []syntax.Stmt) []syntax.Node {
	items := make([]syntax.Node, len(list))
	for i, s := range list {
		items[i] = s
	}
	return items
}

func declsAsItems(list []syntax.Decl) []syntax.Node {
	items := make([]syntax.Node, len(list))
	for i, d := range list {
		items[i] = d
	}
	return items
}

// droppedAttributes have no Kotlin counterpart.
var droppedAttributes = map[string]bool{
	"escaping":          true,
	"autoclosure":       true,
	"discardableResult": true,
}

func (t *Translator) attributes(attrs []*syntax.Attribute) tokens.Sequence {
	var parts []tokens.Sequence
	for _, a := range attrs {
		if droppedAttributes[a.Name] {
			continue
		}
		s := seqOf(tokens.Sym("@"), tokens.Ident(a.Name))
		if a.Args != "" {
			s = s.Append(parens(seqOf(tokens.Ident(a.Args))))
		}
		parts = append(parts, s.WithOrigin(a))
	}
	return spaced(parts...)
}

// modifierNames maps Swift declaration modifiers to Kotlin. Modifiers
// missing from the map are dropped.
var modifierNames = map[string]string{
	"public":      "public",
	"private":     "private",
	"fileprivate": "private",
	"internal":    "internal",
	"open":        "open",
	"final":       "final",
	"override":    "override",
}

func (t *Translator) modifiers(dec *syntax.Decorations, skip ...string) tokens.Sequence {
	var parts []tokens.Sequence
outer:
	for _, m := range dec.Mods {
		for _, s := range skip {
			if m == s {
				continue outer
			}
		}
		if k, ok := modifierNames[m]; ok {
			parts = append(parts, seqOf(tokens.Kw(k)))
		}
	}
	return spaced(parts...)
}

// head renders attributes and modifiers of a declaration.
func (t *Translator) head(dec *syntax.Decorations, skip ...string) tokens.Sequence {
	return spaced(t.attributes(dec.Attrs), t.modifiers(dec, skip...))
}
