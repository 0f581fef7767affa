package kotlin

import (
	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

type companionPlacement int

const (
	companionLast  companionPlacement = iota // before the closing brace
	companionFirst                           // after the opening brace
)

// splitStatic separates type-level members from instance members,
// keeping declaration order within each group.
func splitStatic(members []syntax.Decl) (instance, static []syntax.Decl) {
	for _, m := range members {
		if syntax.IsStatic(m) {
			static = append(static, m)
		} else {
			instance = append(instance, m)
		}
	}
	return instance, static
}

// hoist splices a companion object holding statics into an already
// translated type body. Synthesized members in extra come first.
func (t *Translator) hoist(f frame, owner syntax.Node, statics []syntax.Decl, body tokens.Sequence, at companionPlacement, extra ...tokens.Sequence) tokens.Sequence {
	if len(statics) == 0 && len(extra) == 0 {
		return body
	}
	var members []tokens.Sequence
	var nodes []syntax.Node
	for _, s := range extra {
		members = append(members, s)
		nodes = append(nodes, owner)
	}
	for _, s := range statics {
		members = append(members, t.checked(t.decl(f, s), s))
		nodes = append(nodes, s)
	}
	companion := seqOf(tokens.Kw("companion"), space(), tokens.Kw("object"), space()).
		Append(t.braced(joinItems(nodes, members))).
		WithOrigin(owner)
	insertion := companion.Prefix(nl()).Indent(t.indent)

	open := body.Index(0, func(tok tokens.Token) bool { return tok.Is(tokens.StartOfScope, "{") })
	if open < 0 {
		fail(owner, "type body without opening brace")
	}
	end, ok := body.BalancedScopeEnd("{", "}", open)
	if !ok {
		fail(owner, "type body without closing brace")
	}
	empty := end == open+1
	head, tail := body.Slice(0, open+1), body.Slice(end, body.Len())

	switch {
	case empty:
		return head.Append(insertion).Suffix(nl()).Append(tail)
	case at == companionFirst:
		return head.Append(insertion).Suffix(nl()).Append(body.Slice(open+1, body.Len()))
	default:
		// The body ends with a linebreak before its closing brace.
		inner := body.Slice(0, end-1)
		return inner.Suffix(nl()).Append(insertion).Suffix(nl()).Append(tail)
	}
}
